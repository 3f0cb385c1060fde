package clock

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is how often displayed times are refreshed
const DefaultInterval = time.Second

// LiveClock repeatedly reports the current time to a callback while a screen
// has something running. Only one loop is ever active per LiveClock.
type LiveClock struct {
	interval time.Duration
	clock    Clock
	log      *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a stopped LiveClock. A non-positive interval falls back to DefaultInterval.
func New(interval time.Duration, clk Clock, log *zap.Logger) *LiveClock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clk == nil {
		clk = System
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LiveClock{
		interval: interval,
		clock:    clk,
		log:      log,
	}
}

// Interval returns the tick cadence
func (l *LiveClock) Interval() time.Duration {
	return l.interval
}

// Running reports whether a ticking loop is active
func (l *LiveClock) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}

// Start begins calling fn with the current time, once immediately and then
// every interval. It returns false and does nothing if a loop is already active.
// fn runs on the clock's goroutine and must not call Stop.
func (l *LiveClock) Start(fn func(time.Time)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	l.cancel = cancel
	l.done = done

	l.log.Debug("live clock started", zap.Duration("interval", l.interval))
	go l.run(ctx, done, fn)
	return true
}

func (l *LiveClock) run(ctx context.Context, done chan struct{}, fn func(time.Time)) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	fn(l.clock.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Stop may race with a pending tick; don't deliver after cancellation
			if ctx.Err() != nil {
				return
			}
			fn(l.clock.Now())
		}
	}
}

// Stop cancels the loop and waits for it to exit. Calling it on a stopped
// clock is a no-op.
func (l *LiveClock) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel = nil
	l.done = nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	l.log.Debug("live clock stopped")
}

// Sync starts the clock when shouldRun is true and stops it otherwise
func (l *LiveClock) Sync(shouldRun bool, fn func(time.Time)) {
	if shouldRun {
		l.Start(fn)
		return
	}
	l.Stop()
}
