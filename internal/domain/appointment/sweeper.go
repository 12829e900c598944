package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper periodically runs the overdue sweep so appointments whose window
// has passed are marked missed without anyone touching them. A cycle that
// fails is retried after a shorter delay instead of waiting a full interval.
type Sweeper struct {
	svc    *Service
	logger zerolog.Logger

	// Interval is the pause between successful sweep cycles.
	Interval time.Duration
	// RetryDelay is the pause after a failed cycle.
	RetryDelay time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(svc *Service, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		svc:        svc,
		logger:     logger.With().Str("component", "sweeper").Logger(),
		Interval:   5 * time.Minute,
		RetryDelay: 1 * time.Minute,
	}
}

// Start launches the sweep loop in its own goroutine. Calling Start on a
// running sweeper is a no-op.
func (sw *Sweeper) Start(ctx context.Context) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.cancel != nil {
		sw.logger.Warn().Msg("sweeper already running")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	sw.cancel = cancel
	sw.done = make(chan struct{})

	go sw.run(ctx, sw.done)
	sw.logger.Info().Dur("interval", sw.Interval).Msg("sweeper started")
}

// Stop cancels the loop and waits for the in-flight cycle to finish.
// Stopping a sweeper that is not running is a no-op.
func (sw *Sweeper) Stop() {
	sw.mu.Lock()
	cancel, done := sw.cancel, sw.done
	sw.cancel, sw.done = nil, nil
	sw.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	sw.logger.Info().Msg("sweeper stopped")
}

func (sw *Sweeper) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		delay := sw.Interval
		if err := sw.cycle(ctx); err != nil && ctx.Err() == nil {
			sw.logger.Error().Err(err).Dur("retry_in", sw.RetryDelay).Msg("sweep cycle failed")
			delay = sw.RetryDelay
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (sw *Sweeper) cycle(ctx context.Context) error {
	swept, err := sw.svc.SweepOverdue(ctx, time.Time{})
	if err != nil {
		return err
	}
	sw.logger.Debug().Int("swept", len(swept)).Msg("sweep cycle complete")
	return nil
}
