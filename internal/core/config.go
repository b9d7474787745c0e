package core

import "time"

// RuntimeConfig contains configuration passed to the engine and UI shells.
// Hosts use this to size the screen and to make simulation deterministic.
type RuntimeConfig struct {
	ScreenW       int   // Screen width in characters
	ScreenH       int   // Screen height in characters
	TickRate      int   // Target ticks per second (default 60)
	MaxDeltaTicks int   // Largest delta delivered to one tick, in frames
	Seed          int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:       80,
		ScreenH:       24,
		TickRate:      60,
		MaxDeltaTicks: 2,
		Seed:          0, // 0 means use current time in platform layer
	}
}

// FrameInterval returns the nominal duration of one tick.
func (c RuntimeConfig) FrameInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// MaxDelta returns the clamp applied to tick deltas after a stall.
func (c RuntimeConfig) MaxDelta() time.Duration {
	frames := c.MaxDeltaTicks
	if frames <= 0 {
		frames = 2
	}
	return c.FrameInterval() * time.Duration(frames)
}
