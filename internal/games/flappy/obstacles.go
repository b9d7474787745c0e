package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/config"
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
)

// Pipe describes one pipe pair by its gap.
type Pipe struct {
	X      float64 // Horizontal centre
	GapTop float64 // Top edge of the passable gap
	Gap    float64 // Height of the passable gap
}

// GapBottom returns the bottom edge of the gap.
func (p Pipe) GapBottom() float64 { return p.GapTop + p.Gap }

// PipeSpawner drops pipe pairs at the right edge on a fixed interval.
// A gate collectible fills each gap and scores when the bird flies through.
type PipeSpawner struct {
	cfg      config.FlappyPipes
	speed    float64
	maxGap   float64
	interval time.Duration
	rng      *rand.Rand
	elapsed  time.Duration
}

// NewPipeSpawner creates a spawner. The first pipe appears after one
// interval. maxGap caps the random gap height for the level.
func NewPipeSpawner(cfg config.FlappyPipes, speed, maxGap float64, interval time.Duration, rng *rand.Rand) *PipeSpawner {
	return &PipeSpawner{
		cfg:      cfg,
		speed:    speed,
		maxGap:   max(maxGap, cfg.MinGap),
		interval: interval,
		rng:      rng,
	}
}

// Update advances the spawn timer and returns the pipes spawned this tick.
func (s *PipeSpawner) Update(w *engine.World, dt time.Duration) []Pipe {
	if s.interval <= 0 {
		return nil
	}
	s.elapsed += dt
	var spawned []Pipe
	for s.elapsed >= s.interval {
		s.elapsed -= s.interval
		spawned = append(spawned, s.spawn(w))
	}
	return spawned
}

// NextPipe rolls a gap without spawning it.
func (s *PipeSpawner) NextPipe() Pipe {
	gap := s.cfg.MinGap
	if s.maxGap > s.cfg.MinGap {
		gap += s.rng.Float64() * (s.maxGap - s.cfg.MinGap)
	}

	lo := s.cfg.Margin
	hi := core.FieldSize - s.cfg.Margin - gap
	top := lo
	if hi > lo {
		top += s.rng.Float64() * (hi - lo)
	}
	return Pipe{X: core.FieldSize + s.cfg.Width/2, GapTop: top, Gap: gap}
}

func (s *PipeSpawner) spawn(w *engine.World) Pipe {
	p := s.NextPipe()
	vel := core.V(-s.speed, 0)
	edges := engine.Edges{}.With(engine.SideLeft, engine.EdgeRemove)

	w.Spawn(engine.KindObstacle,
		core.V(p.X, p.GapTop/2),
		vel,
		engine.Size(s.cfg.Width, p.GapTop),
		engine.WithTag(TagPipe), engine.WithEdges(edges), engine.Lethal(),
	)
	bottom := core.FieldSize - p.GapBottom()
	w.Spawn(engine.KindObstacle,
		core.V(p.X, p.GapBottom()+bottom/2),
		vel,
		engine.Size(s.cfg.Width, bottom),
		engine.WithTag(TagPipe), engine.WithEdges(edges), engine.Lethal(),
	)
	// Gate trails the pair so it is collected once the bird is through
	w.Spawn(engine.KindCollectible,
		core.V(p.X+s.cfg.Width/2+1, p.GapTop+p.Gap/2),
		vel,
		engine.Size(1, p.Gap),
		engine.WithTag(TagGate), engine.WithEdges(edges), engine.WithPoints(s.cfg.GatePoints),
	)
	return p
}
