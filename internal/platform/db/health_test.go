package db

import (
	"encoding/json"
	"testing"
	"time"
)

// fakeStat satisfies poolStat without a live pool.
type fakeStat struct {
	total, idle, acquired, max int32
	acquires                   int64
	wait                       time.Duration
}

func (f fakeStat) TotalConns() int32              { return f.total }
func (f fakeStat) IdleConns() int32               { return f.idle }
func (f fakeStat) AcquiredConns() int32           { return f.acquired }
func (f fakeStat) MaxConns() int32                { return f.max }
func (f fakeStat) AcquireCount() int64            { return f.acquires }
func (f fakeStat) AcquireDuration() time.Duration { return f.wait }

func TestPoolHealth_Snapshot(t *testing.T) {
	got := poolHealth(fakeStat{
		total:    10,
		idle:     6,
		acquired: 4,
		max:      20,
		acquires: 150,
		wait:     250 * time.Millisecond,
	})

	if got.TotalConns != 10 || got.IdleConns != 6 || got.AcquiredConns != 4 {
		t.Errorf("unexpected connection counts: %+v", got)
	}
	if got.MaxConns != 20 {
		t.Errorf("expected max_conns 20, got %d", got.MaxConns)
	}
	if got.AcquireCount != 150 {
		t.Errorf("expected acquire_count 150, got %d", got.AcquireCount)
	}
	if got.AcquireWait != "250ms" {
		t.Errorf("expected acquire_wait 250ms, got %q", got.AcquireWait)
	}
}

func TestPoolHealth_JSONShape(t *testing.T) {
	data, err := json.Marshal(poolHealth(fakeStat{max: 5, wait: time.Second}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"total_conns", "idle_conns", "acquired_conns", "max_conns", "acquire_count", "acquire_wait"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected %q in pool snapshot", key)
		}
	}
	if m["acquire_wait"] != "1s" {
		t.Errorf("expected acquire_wait as a duration string, got %v", m["acquire_wait"])
	}
}
