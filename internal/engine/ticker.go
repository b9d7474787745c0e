package engine

import (
	"context"
	"sync"
	"time"
)

// Ticker produces clamped frame deltas. It can run its own goroutine (Start)
// or be driven by a host loop that already owns a frame clock (Advance).
type Ticker struct {
	interval time.Duration
	maxDelta time.Duration

	mu     sync.Mutex
	last   time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTicker creates a ticker with the given cadence and delta clamp.
// Non-positive values fall back to 60 Hz and two frames.
func NewTicker(interval, maxDelta time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second / 60
	}
	if maxDelta <= 0 {
		maxDelta = 2 * interval
	}
	return &Ticker{interval: interval, maxDelta: maxDelta}
}

// Interval returns the target frame interval.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Clamp bounds a raw delta to [0, maxDelta].
func (t *Ticker) Clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return min(d, t.maxDelta)
}

// Advance returns the clamped delta since the previous call. The first call
// after construction or Rebase returns zero.
func (t *Ticker) Advance(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	d := t.Clamp(now.Sub(t.last))
	t.last = now
	return d
}

// Rebase makes the next delta start at now. Used on resume so the paused
// gap is never delivered as simulation time.
func (t *Ticker) Rebase(now time.Time) {
	t.mu.Lock()
	t.last = now
	t.mu.Unlock()
}

// Start runs onTick on every interval until ctx is cancelled or Stop is
// called. onTick must not block. Start on a running ticker restarts it.
func (t *Ticker) Start(ctx context.Context, onTick func(time.Duration)) {
	t.Stop()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.mu.Lock()
	t.cancel = cancel
	t.done = done
	t.last = time.Now()
	t.mu.Unlock()

	go func() {
		defer close(done)
		tk := time.NewTicker(t.interval)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-tk.C:
				onTick(t.Advance(now))
			}
		}
	}()
}

// Stop halts a running ticker and waits for its goroutine to exit.
// It must not be called from onTick; cancel the context passed to Start instead.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
