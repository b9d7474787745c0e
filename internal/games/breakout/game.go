package breakout

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
const ID = "breakout"

// Entity tags.
const (
	TagPaddle = "paddle"
	TagBall   = "ball"
	TagBrick  = "brick"
	TagWall   = "wall"
)

// holdWindow keeps the paddle moving between terminal key repeats.
const holdWindow = 150 * time.Millisecond

// launchDir is the serve direction: up and to the right, 2:-3.
var launchDir = core.V(2, -3).Scale(1 / math.Hypot(2, 3))

// Descriptor builds the breakout variant from a configuration.
func Descriptor(cfg config.BreakoutConfig) engine.Descriptor {
	scaler := config.NewScaler(cfg.Scaling, cfg.MaxLevel)

	return engine.Descriptor{
		ID:       ID,
		Title:    "Breakout",
		Summary:  "Clear every brick without dropping the ball",
		MaxLevel: cfg.MaxLevel,
		Stake:    cfg.Stake,
		Controls: []engine.Controls{
			{Keys: "←/→", Description: "Move paddle"},
			{Keys: "Space", Description: "Launch ball"},
		},
		Rewards: engine.RewardTable(cfg.Rewards),
		Physics: func(level int) engine.Physics {
			return engine.Physics{
				Speed:       scaler.Speed(cfg.Physics.BallSpeed, level),
				PlayerSpeed: cfg.Physics.PaddleSpeed,
				MaxSpin:     scaler.Speed(cfg.Physics.MaxSpin, level),
				Rows:        cfg.Bricks.Rows + level - 1,
				Cols:        cfg.Bricks.Cols,
				Budget:      cfg.Lives,
				Edges:       engine.AllEdges(engine.EdgeClamp),
			}
		},
		Rules: func(level int, ph engine.Physics) engine.Rules {
			return engine.Rules{
				Points:    map[engine.EventKind]int{engine.EventScore: cfg.Bricks.Points},
				SideCosts: map[engine.Side]int{engine.SideBottom: 1},
				Win:       engine.Cleared(),
				Lose:      engine.BudgetExhausted(),
			}
		},
		NewPlay: func(level int, ph engine.Physics, rng *rand.Rand) engine.Play {
			return &Play{cfg: cfg, ph: ph, layout: GridLayout(ph.Rows, ph.Cols, level), hold: core.Hold{Window: holdWindow}}
		},
	}
}

// Play is one level of breakout.
type Play struct {
	cfg    config.BreakoutConfig
	ph     engine.Physics
	layout Layout
	hold   core.Hold

	paddle engine.EntityID
	ball   engine.EntityID
	stuck  bool // Ball rides the paddle until launched
}

// Spawn places the paddle, a ball resting on it, and the brick grid.
func (p *Play) Spawn(w *engine.World) {
	p.paddle = w.Spawn(engine.KindPlayer,
		core.V(core.FieldSize/2, p.cfg.Paddle.Y),
		core.Vec{},
		engine.Size(p.cfg.Paddle.Width, p.cfg.Paddle.Height),
		engine.WithTag(TagPaddle),
		engine.WithEdges(engine.AllEdges(engine.EdgeClamp)),
	)
	p.spawnBall(w)

	b := p.cfg.Bricks
	cols := p.layout.Cols()
	total := float64(cols)*b.Width + float64(cols-1)*b.Gap
	left := (core.FieldSize-total)/2 + b.Width/2

	for row, bricks := range p.layout {
		for col, brick := range bricks {
			pos := core.V(left+float64(col)*(b.Width+b.Gap), b.Top+float64(row)*(b.Height+b.Gap))
			size := engine.Size(b.Width, b.Height)
			switch brick.Type {
			case BrickNormal:
				w.Spawn(engine.KindObstacle, pos, core.Vec{}, size,
					engine.WithTag(TagBrick), engine.Breakable(), engine.WithPoints(brick.Points), engine.WithValue(row))
			case BrickSolid:
				w.Spawn(engine.KindObstacle, pos, core.Vec{}, size, engine.WithTag(TagWall))
			}
		}
	}
}

func (p *Play) spawnBall(w *engine.World) {
	edges := engine.AllEdges(engine.EdgeReflect).With(engine.SideBottom, engine.EdgeRemovePenalize)
	p.ball = w.Spawn(engine.KindProjectile,
		p.restingBall(w),
		core.Vec{},
		engine.Radius(p.cfg.Physics.BallRadius),
		engine.WithTag(TagBall),
		engine.WithEdges(edges),
		engine.Reflective(),
	)
	p.stuck = true
}

func (p *Play) restingBall(w *engine.World) core.Vec {
	pos := core.V(core.FieldSize/2, p.cfg.Paddle.Y)
	if paddle, ok := w.Get(p.paddle); ok {
		pos = paddle.Pos
	}
	pos.Y -= p.cfg.Paddle.Height/2 + p.cfg.Physics.BallRadius + 0.1
	return pos
}

// Step moves the paddle and launches or carries the ball.
func (p *Play) Step(w *engine.World, in core.Intents, dt time.Duration) []engine.Event {
	paddle, ok := w.Get(p.paddle)
	if !ok {
		return nil
	}

	if pt, ok := in.Last(core.IntentPoint); ok {
		paddle.Pos.X = pt.Target.X
		paddle.Vel.X = 0
		p.hold.Release()
	} else {
		switch p.hold.Update(in, dt) {
		case core.IntentLeft:
			paddle.Vel.X = -p.ph.PlayerSpeed
		case core.IntentRight:
			paddle.Vel.X = p.ph.PlayerSpeed
		default:
			paddle.Vel.X = 0
		}
	}

	ball, ok := w.Get(p.ball)
	if !ok || !p.stuck {
		return nil
	}
	if in.Has(core.IntentJump) {
		ball.Vel = launchDir.Scale(p.ph.Speed)
		p.stuck = false
		return nil
	}
	// Carry the ball where the paddle will be after integration
	ball.Pos = p.restingBall(w).Add(paddle.Vel.Scale(dt.Seconds()))
	ball.Vel = core.Vec{}
	return nil
}

// After serves a new ball when the last one fell and lives remain.
func (p *Play) After(w *engine.World, events []engine.Event, prog engine.Progress) {
	for _, ev := range events {
		if ev.Kind == engine.EventFall && ev.A == p.ball && prog.Budget > 0 {
			p.spawnBall(w)
		}
	}
	// Keep the ball from locking into a horizontal path
	if ball, ok := w.Get(p.ball); ok && !p.stuck {
		minVY := p.ph.Speed * 0.2
		if math.Abs(ball.Vel.Y) < minVY {
			if ball.Vel.Y < 0 {
				ball.Vel.Y = -minVY
			} else {
				ball.Vel.Y = minVY
			}
		}
	}
}

func init() {
	registry.Register(ID, func(configPath string) (engine.Descriptor, error) {
		cfg, err := config.LoadBreakout(configPath)
		if err != nil {
			return engine.Descriptor{}, err
		}
		return Descriptor(cfg), nil
	})
}
