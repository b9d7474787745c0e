// Package runner implements an endless runner: jump over ground obstacles
// until the distance goal is reached.
package runner

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/config"
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/registry"
)

// ID is the variant identifier.
const ID = "runner"

// Entity tags.
const (
	TagRunner   = "runner"
	TagObstacle = "obstacle"
)

// Descriptor builds the runner variant from a configuration.
func Descriptor(cfg config.RunnerConfig) engine.Descriptor {
	scaler := config.NewScaler(cfg.Scaling, cfg.MaxLevel)

	return engine.Descriptor{
		ID:       ID,
		Title:    "Runner",
		Summary:  "Jump the obstacles and cover the distance",
		MaxLevel: cfg.MaxLevel,
		Stake:    cfg.Stake,
		Controls: []engine.Controls{
			{Keys: "Space/↑", Description: "Jump"},
		},
		Rewards: engine.RewardTable(cfg.Rewards),
		Physics: func(level int) engine.Physics {
			return engine.Physics{
				Gravity:      cfg.Physics.Gravity,
				MaxFall:      cfg.Physics.MaxFall,
				JumpVelocity: cfg.Physics.JumpVelocity,
				Speed:        scaler.Speed(cfg.Physics.Speed, level),
				SpawnEvery:   scaler.Interval(config.Millis(cfg.Obstacles.SpawnEveryMs), level),
				Budget:       cfg.Lives,
				Target:       int(cfg.Goal * (1 + 0.5*float64(level-1))),
				Edges:        engine.AllEdges(engine.EdgeClamp),
			}
		},
		Rules: func(level int, ph engine.Physics) engine.Rules {
			return engine.Rules{
				Costs:          map[engine.EventKind]int{engine.EventDamage: 1},
				DistancePoints: 1,
				Win:            engine.DistanceAtLeast(float64(ph.Target)),
				Lose:           engine.BudgetExhausted(),
			}
		},
		NewPlay: func(level int, ph engine.Physics, rng *rand.Rand) engine.Play {
			return &Play{
				cfg:     cfg,
				ph:      ph,
				spawner: NewSpawner(cfg.Obstacles, cfg.Physics.Ground, ph.Speed, ph.SpawnEvery, rng),
			}
		},
	}
}

// Play is one run.
type Play struct {
	cfg     config.RunnerConfig
	ph      engine.Physics
	spawner *Spawner

	runner   engine.EntityID
	grounded bool
}

// Spawn places the runner on the ground.
func (p *Play) Spawn(w *engine.World) {
	pl := p.cfg.Player
	p.runner = w.Spawn(engine.KindPlayer,
		core.V(pl.X, p.cfg.Physics.Ground-pl.Height/2),
		core.Vec{},
		engine.Size(pl.Width, pl.Height),
		engine.WithTag(TagRunner),
		engine.Falling(),
	)
	p.grounded = true
}

// Step handles jumps, spawns obstacles and reports distance.
func (p *Play) Step(w *engine.World, in core.Intents, dt time.Duration) []engine.Event {
	if r, ok := w.Get(p.runner); ok && p.grounded {
		if in.Has(core.IntentJump) || in.Has(core.IntentUp) {
			r.Vel.Y = p.ph.JumpVelocity
			p.grounded = false
		}
	}
	p.spawner.Update(w, dt)

	return []engine.Event{{Kind: engine.EventDistance, Amount: p.ph.Speed * dt.Seconds()}}
}

// After lands the runner on the ground.
func (p *Play) After(w *engine.World, _ []engine.Event, _ engine.Progress) {
	r, ok := w.Get(p.runner)
	if !ok {
		return
	}
	floor := p.cfg.Physics.Ground - r.Bounds.H/2
	if r.Pos.Y >= floor {
		r.Pos.Y = floor
		r.Vel.Y = 0
		p.grounded = true
	}
}

// Grounded reports whether the runner is standing on the ground.
func (p *Play) Grounded() bool { return p.grounded }

func init() {
	registry.Register(ID, func(configPath string) (engine.Descriptor, error) {
		cfg, err := config.LoadRunner(configPath)
		if err != nil {
			return engine.Descriptor{}, err
		}
		return Descriptor(cfg), nil
	})
}
