package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerAdvanceClamps(t *testing.T) {
	frame := time.Second / 60
	tk := NewTicker(frame, 2*frame)
	base := time.Unix(1000, 0)

	if d := tk.Advance(base); d != 0 {
		t.Errorf("first Advance = %v, expected 0", d)
	}
	if d := tk.Advance(base.Add(frame)); d != frame {
		t.Errorf("Advance one frame = %v, expected %v", d, frame)
	}

	// A stall is clamped to two frames
	if d := tk.Advance(base.Add(frame + 5*time.Second)); d != 2*frame {
		t.Errorf("Advance after stall = %v, expected %v", d, 2*frame)
	}

	// Clock going backwards yields an empty tick
	if d := tk.Advance(base); d != 0 {
		t.Errorf("Advance backwards = %v, expected 0", d)
	}
}

func TestTickerRebase(t *testing.T) {
	frame := time.Second / 60
	tk := NewTicker(frame, 2*frame)
	base := time.Unix(1000, 0)

	tk.Advance(base)
	// Paused for a minute, resumed at base+60s
	resume := base.Add(time.Minute)
	tk.Rebase(resume)

	if d := tk.Advance(resume.Add(5 * time.Millisecond)); d != 5*time.Millisecond {
		t.Errorf("delta after rebase = %v, expected 5ms", d)
	}
}

func TestTickerDefaults(t *testing.T) {
	tk := NewTicker(0, 0)
	if tk.Interval() != time.Second/60 {
		t.Errorf("default interval = %v", tk.Interval())
	}
	if got := tk.Clamp(time.Second); got != 2*(time.Second/60) {
		t.Errorf("default clamp = %v", got)
	}
}

func TestTickerStartStop(t *testing.T) {
	tk := NewTicker(time.Millisecond, 2*time.Millisecond)

	var ticks atomic.Int32
	var maxSeen atomic.Int64
	tk.Start(context.Background(), func(d time.Duration) {
		ticks.Add(1)
		if int64(d) > maxSeen.Load() {
			maxSeen.Store(int64(d))
		}
	})

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	tk.Stop()

	n := ticks.Load()
	if n < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", n)
	}
	if time.Duration(maxSeen.Load()) > 2*time.Millisecond {
		t.Errorf("delta %v exceeds clamp", time.Duration(maxSeen.Load()))
	}

	time.Sleep(10 * time.Millisecond)
	if ticks.Load() != n {
		t.Error("ticks delivered after Stop")
	}

	// Stop on a stopped ticker is a no-op
	tk.Stop()
}
