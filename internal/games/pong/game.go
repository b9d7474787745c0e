// Package pong implements Pong against a CPU opponent.
// The player controls the left paddle, the CPU controls the right paddle.
package pong

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/config"
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/registry"
)

// ID is the variant identifier.
const ID = "pong"

// Entity tags.
const (
	TagPaddle = "paddle"
	TagCPU    = "cpu"
	TagBall   = "ball"
)

const (
	holdWindow = 150 * time.Millisecond
	speedUp    = 1.02 // Ball speed gain per paddle hit
	maxBoost   = 1.5  // Cap on accumulated speed gain
)

// Descriptor builds the pong variant from a configuration.
func Descriptor(cfg config.PongConfig) engine.Descriptor {
	scaler := config.NewScaler(cfg.Scaling, cfg.MaxLevel)

	return engine.Descriptor{
		ID:       ID,
		Title:    "Pong",
		Summary:  "First to the target score beats the CPU",
		MaxLevel: cfg.MaxLevel,
		Stake:    cfg.Stake,
		Controls: []engine.Controls{
			{Keys: "↑/↓", Description: "Move paddle"},
		},
		Rewards: engine.RewardTable(cfg.Rewards),
		Physics: func(level int) engine.Physics {
			return engine.Physics{
				Speed:       scaler.Speed(cfg.Physics.BallSpeed, level),
				PlayerSpeed: cfg.Physics.PaddleSpeed,
				MaxSpin:     scaler.Speed(cfg.Physics.MaxSpin, level),
				// CPU tracks faster and aims better at higher levels
				Jitter:     cfg.CPU.Jitter * (1 - 0.5*scaler.Progress(level)),
				SpawnEvery: config.Millis(cfg.Gameplay.ServeDelayMs),
				Budget:     cfg.Gameplay.WinScore,
				Target:     cfg.Gameplay.WinScore,
				Edges:      engine.AllEdges(engine.EdgeClamp),
			}
		},
		Rules: func(level int, ph engine.Physics) engine.Rules {
			return engine.Rules{
				SidePoints: map[engine.Side]int{engine.SideRight: 1},
				SideCosts:  map[engine.Side]int{engine.SideLeft: 1},
				Win:        engine.ScoreAtLeast(ph.Target),
				Lose:       engine.BudgetExhausted(),
			}
		},
		NewPlay: func(level int, ph engine.Physics, rng *rand.Rand) engine.Play {
			return &Play{
				cfg:      cfg,
				ph:       ph,
				cpuSpeed: scaler.Speed(cfg.CPU.Speed, level),
				rng:      rng,
				hold:     core.Hold{Window: holdWindow},
			}
		},
	}
}

// Play is one match.
type Play struct {
	cfg      config.PongConfig
	ph       engine.Physics
	cpuSpeed float64
	rng      *rand.Rand
	hold     core.Hold

	paddle engine.EntityID
	cpu    engine.EntityID
	ball   engine.EntityID

	serveIn  time.Duration // Time until the waiting ball is served
	serveDir float64       // -1 serves toward the player, +1 toward the CPU
	aim      float64       // CPU aim error for the current rally
}

// Spawn places both paddles and a ball waiting to be served at the player.
func (p *Play) Spawn(w *engine.World) {
	pd := p.cfg.Paddles
	size := engine.Size(pd.Width, pd.Height)

	p.paddle = w.Spawn(engine.KindPlayer, core.V(pd.Offset, core.FieldSize/2), core.Vec{}, size,
		engine.WithTag(TagPaddle))
	p.cpu = w.Spawn(engine.KindPlayer, core.V(core.FieldSize-pd.Offset, core.FieldSize/2), core.Vec{}, size,
		engine.WithTag(TagCPU))
	p.spawnBall(w, -1)
}

func (p *Play) spawnBall(w *engine.World, dir float64) {
	edges := engine.AllEdges(engine.EdgeReflect).
		With(engine.SideLeft, engine.EdgeRemovePenalize).
		With(engine.SideRight, engine.EdgeRemovePenalize)
	p.ball = w.Spawn(engine.KindProjectile,
		core.V(core.FieldSize/2, core.FieldSize/2),
		core.Vec{},
		engine.Radius(p.cfg.Physics.BallRadius),
		engine.WithTag(TagBall),
		engine.WithEdges(edges),
		engine.Reflective(),
	)
	p.serveIn = p.ph.SpawnEvery
	p.serveDir = dir
}

// Serving reports whether the ball is waiting to be served.
func (p *Play) Serving() bool { return p.serveIn > 0 }

// Step moves both paddles and serves the ball once the delay has passed.
func (p *Play) Step(w *engine.World, in core.Intents, dt time.Duration) []engine.Event {
	if paddle, ok := w.Get(p.paddle); ok {
		if pt, ok := in.Last(core.IntentPoint); ok {
			paddle.Pos.Y = pt.Target.Y
			paddle.Vel.Y = 0
			p.hold.Release()
		} else {
			switch p.hold.Update(in, dt) {
			case core.IntentUp:
				paddle.Vel.Y = -p.ph.PlayerSpeed
			case core.IntentDown:
				paddle.Vel.Y = p.ph.PlayerSpeed
			default:
				paddle.Vel.Y = 0
			}
		}
	}

	ball, ok := w.Get(p.ball)
	if !ok {
		return nil
	}
	if p.serveIn > 0 {
		p.serveIn -= dt
		if p.serveIn <= 0 {
			p.serve(ball)
		}
	}
	p.trackBall(w, ball, dt)
	return nil
}

func (p *Play) serve(ball *engine.Entity) {
	angle := (p.rng.Float64() - 0.5) * 0.6
	ball.Vel = core.V(p.serveDir*p.ph.Speed, angle*p.ph.Speed)
	p.aim = (p.rng.Float64()*2 - 1) * p.ph.Jitter
}

// trackBall moves the CPU paddle toward the ball while it approaches.
func (p *Play) trackBall(w *engine.World, ball *engine.Entity, dt time.Duration) {
	cpu, ok := w.Get(p.cpu)
	if !ok {
		return
	}
	cpu.Vel.Y = 0
	if ball.Vel.X <= 0 {
		return
	}
	diff := ball.Pos.Y + p.aim - cpu.Pos.Y
	step := p.cpuSpeed * dt.Seconds()
	if math.Abs(diff) <= step {
		return
	}
	cpu.Vel.Y = math.Copysign(p.cpuSpeed, diff)
}

// After speeds up the ball on paddle hits and serves after a point.
func (p *Play) After(w *engine.World, events []engine.Event, prog engine.Progress) {
	for _, ev := range events {
		switch ev.Kind {
		case engine.EventBounce:
			if ball, ok := w.Get(ev.B); ok {
				if ball.Vel.Len() < p.ph.Speed*maxBoost {
					ball.Vel.X *= speedUp
				}
				p.aim = (p.rng.Float64()*2 - 1) * p.ph.Jitter
			}
		case engine.EventFall:
			if ev.A != p.ball || prog.Budget == 0 || prog.Score >= p.ph.Target {
				continue
			}
			// Serve toward whoever conceded
			dir := 1.0
			if ev.Side == engine.SideLeft {
				dir = -1
			}
			p.spawnBall(w, dir)
		}
	}
}

func init() {
	registry.Register(ID, func(configPath string) (engine.Descriptor, error) {
		cfg, err := config.LoadPong(configPath)
		if err != nil {
			return engine.Descriptor{}, err
		}
		return Descriptor(cfg), nil
	})
}
