package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestSweeper(repo Repository) *Sweeper {
	sw := NewSweeper(newTestService(repo), zerolog.Nop())
	sw.Interval = 10 * time.Millisecond
	sw.RetryDelay = 5 * time.Millisecond
	return sw
}

func TestSweeper_MarksOverdueAppointments(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	in := validCreateInput()
	in.Time = time.Now().UTC().Add(-2 * time.Hour)
	in.Duration = "30m"
	a := mustCreate(t, svc, in)

	sw := newTestSweeper(repo)
	sw.Start(context.Background())
	defer sw.Stop()

	deadline := time.After(2 * time.Second)
	for {
		got, err := svc.GetByID(context.Background(), a.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status == StatusMissed {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("sweeper did not mark appointment missed, status %q", got.Status)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSweeper_RetriesAfterFailure(t *testing.T) {
	repo := newMockRepo()
	repo.listErr = fmt.Errorf("connection refused")

	svc := newTestService(repo)
	in := validCreateInput()
	in.Time = time.Now().UTC().Add(-2 * time.Hour)
	in.Duration = "30m"
	a := mustCreate(t, svc, in)

	sw := newTestSweeper(repo)
	sw.Start(context.Background())
	defer sw.Stop()

	// Let a few failing cycles run, then heal the repo.
	time.Sleep(30 * time.Millisecond)
	repo.mu.Lock()
	repo.listErr = nil
	repo.mu.Unlock()

	deadline := time.After(2 * time.Second)
	for {
		got, err := svc.GetByID(context.Background(), a.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status == StatusMissed {
			return
		}
		select {
		case <-deadline:
			t.Fatal("sweeper did not recover after repository failure")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSweeper_StartIsIdempotent(t *testing.T) {
	sw := newTestSweeper(newMockRepo())
	sw.Start(context.Background())
	sw.Start(context.Background())
	sw.Stop()
}

func TestSweeper_StopWithoutStart(t *testing.T) {
	sw := newTestSweeper(newMockRepo())
	sw.Stop()
}

func TestSweeper_StopIsPrompt(t *testing.T) {
	sw := newTestSweeper(newMockRepo())
	sw.Interval = time.Hour

	sw.Start(context.Background())

	done := make(chan struct{})
	go func() {
		sw.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return promptly")
	}
}

func TestSweeper_RestartAfterStop(t *testing.T) {
	sw := newTestSweeper(newMockRepo())
	sw.Start(context.Background())
	sw.Stop()
	sw.Start(context.Background())
	sw.Stop()
}
