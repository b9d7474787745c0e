package config

import (
	"math"
	"time"
)

// Scaler calculates level-dependent parameters. Level 1 uses the base values
// and the last level applies the full scaling.
type Scaler struct {
	cfg      ScalingConfig
	maxLevel int
}

// NewScaler creates a scaler for levels 1..maxLevel.
func NewScaler(cfg ScalingConfig, maxLevel int) Scaler {
	return Scaler{cfg: cfg, maxLevel: max(maxLevel, 1)}
}

// Progress returns how far level is through the range (0.0 to 1.0).
func (s Scaler) Progress(level int) float64 {
	if s.maxLevel <= 1 {
		return 0
	}
	return clampF(float64(level-1)/float64(s.maxLevel-1), 0.0, 1.0)
}

// Speed returns base increased by up to SpeedMultiplier at the last level.
func (s Scaler) Speed(base float64, level int) float64 {
	return base * (1.0 + s.Progress(level)*s.cfg.SpeedMultiplier)
}

// Interval returns base shortened by up to IntervalReduction at the last
// level. It never drops below a quarter of base.
func (s Scaler) Interval(base time.Duration, level int) time.Duration {
	factor := math.Max(1.0-s.Progress(level)*s.cfg.IntervalReduction, 0.25)
	return time.Duration(float64(base) * factor)
}

// Count returns base plus up to CountGrowth at the last level.
func (s Scaler) Count(base, level int) int {
	return base + int(math.Round(s.Progress(level)*float64(s.cfg.CountGrowth)))
}

// Millis converts a YAML millisecond value to a duration.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
