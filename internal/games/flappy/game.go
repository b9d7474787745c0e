// Package flappy implements a Flappy Bird-style variant.
// The player flaps a bird through gaps in scrolling pipe pairs.
package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/config"
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/registry"
)

// ID is the variant identifier.
const ID = "flappy"

// Entity tags.
const (
	TagBird = "bird"
	TagPipe = "pipe"
	TagGate = "gate"
)

// Descriptor builds the flappy variant from a configuration.
func Descriptor(cfg config.FlappyConfig) engine.Descriptor {
	scaler := config.NewScaler(cfg.Scaling, cfg.MaxLevel)

	return engine.Descriptor{
		ID:       ID,
		Title:    "Flappy Bird",
		Summary:  "Flap through the pipes and cover the distance",
		MaxLevel: cfg.MaxLevel,
		Stake:    cfg.Stake,
		Controls: []engine.Controls{
			{Keys: "Space/↑", Description: "Flap"},
		},
		Rewards: engine.RewardTable(cfg.Rewards),
		Physics: func(level int) engine.Physics {
			return engine.Physics{
				Gravity:      cfg.Physics.Gravity,
				MaxFall:      cfg.Physics.MaxFall,
				JumpVelocity: cfg.Physics.FlapVelocity,
				Speed:        scaler.Speed(cfg.Physics.Speed, level),
				SpawnEvery:   scaler.Interval(config.Millis(cfg.Pipes.SpawnEveryMs), level),
				Budget:       cfg.Lives,
				Target:       int(cfg.Goal * (1 + 0.5*float64(level-1))),
			}
		},
		Rules: func(level int, ph engine.Physics) engine.Rules {
			return engine.Rules{
				Points:    map[engine.EventKind]int{engine.EventCollect: cfg.Pipes.GatePoints},
				Costs:     map[engine.EventKind]int{engine.EventDamage: 1},
				SideCosts: map[engine.Side]int{engine.SideBottom: 1},
				Win:       engine.DistanceAtLeast(float64(ph.Target)),
				Lose:      engine.BudgetExhausted(),
			}
		},
		NewPlay: func(level int, ph engine.Physics, rng *rand.Rand) engine.Play {
			// Gaps narrow from MaxGap toward MinGap
			p := cfg.Pipes
			maxGap := p.MaxGap - (p.MaxGap-p.MinGap)*scaler.Progress(level)
			return &Play{
				cfg:     cfg,
				ph:      ph,
				spawner: NewPipeSpawner(p, ph.Speed, maxGap, ph.SpawnEvery, rng),
			}
		},
	}
}

// Play is one flight.
type Play struct {
	cfg     config.FlappyConfig
	ph      engine.Physics
	spawner *PipeSpawner

	bird engine.EntityID
}

// Spawn places the bird mid-screen.
func (p *Play) Spawn(w *engine.World) {
	p.spawnBird(w)
}

func (p *Play) spawnBird(w *engine.World) {
	edges := engine.Edges{}.
		With(engine.SideTop, engine.EdgeClamp).
		With(engine.SideBottom, engine.EdgeRemovePenalize)
	p.bird = w.Spawn(engine.KindPlayer,
		core.V(p.cfg.Player.X, core.FieldSize/2),
		core.Vec{},
		engine.Size(p.cfg.Player.Size, p.cfg.Player.Size),
		engine.WithTag(TagBird),
		engine.WithEdges(edges),
		engine.Falling(),
	)
}

// Step flaps the bird, spawns pipes and reports distance.
func (p *Play) Step(w *engine.World, in core.Intents, dt time.Duration) []engine.Event {
	if bird, ok := w.Get(p.bird); ok {
		if in.Has(core.IntentJump) || in.Has(core.IntentUp) {
			bird.Vel.Y = p.ph.JumpVelocity
		}
	}
	p.spawner.Update(w, dt)

	return []engine.Event{{Kind: engine.EventDistance, Amount: p.ph.Speed * dt.Seconds()}}
}

// After serves a new bird when the last one fell and lives remain.
func (p *Play) After(w *engine.World, events []engine.Event, prog engine.Progress) {
	for _, ev := range events {
		if ev.Kind == engine.EventFall && ev.A == p.bird && prog.Budget > 0 {
			p.spawnBird(w)
		}
	}
}

func init() {
	registry.Register(ID, func(configPath string) (engine.Descriptor, error) {
		cfg, err := config.LoadFlappy(configPath)
		if err != nil {
			return engine.Descriptor{}, err
		}
		return Descriptor(cfg), nil
	})
}
