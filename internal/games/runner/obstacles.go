package runner

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/config"
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
)

// Spawner drops ground obstacles at the right edge on a fixed interval.
// Sizes come from the session RNG so a seed replays the same course.
type Spawner struct {
	cfg      config.RunnerObstacles
	ground   float64
	speed    float64
	interval time.Duration
	rng      *rand.Rand
	elapsed  time.Duration
}

// NewSpawner creates a spawner. The first obstacle appears after one interval.
func NewSpawner(cfg config.RunnerObstacles, ground, speed float64, interval time.Duration, rng *rand.Rand) *Spawner {
	return &Spawner{
		cfg:      cfg,
		ground:   ground,
		speed:    speed,
		interval: interval,
		rng:      rng,
	}
}

// Update advances the spawn timer and spawns every obstacle that is due.
func (s *Spawner) Update(w *engine.World, dt time.Duration) int {
	if s.interval <= 0 {
		return 0
	}
	s.elapsed += dt
	n := 0
	for s.elapsed >= s.interval {
		s.elapsed -= s.interval
		s.spawn(w)
		n++
	}
	return n
}

func (s *Spawner) spawn(w *engine.World) {
	width := s.between(s.cfg.MinWidth, s.cfg.MaxWidth)
	height := s.between(s.cfg.MinHeight, s.cfg.MaxHeight)

	w.Spawn(engine.KindObstacle,
		core.V(core.FieldSize+width/2, s.ground-height/2),
		core.V(-s.speed, 0),
		engine.Size(width, height),
		engine.WithTag(TagObstacle),
		engine.WithEdges(engine.Edges{}.With(engine.SideLeft, engine.EdgeRemove)),
		engine.Lethal(),
	)
}

func (s *Spawner) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
