// Package snake implements Snake on a wrapping grid. Levels chain within a
// session: each level raises the score target and the pace.
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/config"
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/registry"
)

// ID is the variant identifier.
const ID = "snake"

// Entity tags.
const (
	TagHead = "head"
	TagBody = "body"
	TagFood = "food"
)

// fill is the fraction of a cell an entity covers; neighbours never touch.
const fill = 0.9

// Descriptor builds the snake variant from a configuration.
func Descriptor(cfg config.SnakeConfig) engine.Descriptor {
	scaler := config.NewScaler(cfg.Scaling, cfg.MaxLevel)

	return engine.Descriptor{
		ID:             ID,
		Title:          "Snake",
		Summary:        "Eat to grow, never bite yourself",
		MaxLevel:       cfg.MaxLevel,
		Stake:          cfg.Stake,
		ChainInSession: true,
		Controls: []engine.Controls{
			{Keys: "←/↑/→/↓", Description: "Turn"},
		},
		Rewards: engine.RewardTable(cfg.Rewards),
		Physics: func(level int) engine.Physics {
			return engine.Physics{
				StepEvery: scaler.Interval(config.Millis(cfg.StepEveryMs), level),
				Cols:      cfg.Cells,
				Rows:      cfg.Cells,
				Budget:    1,
				Target:    cfg.Target * level,
				Edges:     engine.AllEdges(engine.EdgeWrap),
			}
		},
		Rules: func(level int, ph engine.Physics) engine.Rules {
			return engine.Rules{
				Points: map[engine.EventKind]int{engine.EventCollect: cfg.FoodPoints},
				Costs:  map[engine.EventKind]int{engine.EventDamage: 1},
				Win:    engine.ScoreAtLeast(ph.Target),
				Lose:   engine.BudgetExhausted(),
			}
		},
		NewPlay: func(level int, ph engine.Physics, rng *rand.Rand) engine.Play {
			return &Play{
				cfg:  cfg,
				ph:   ph,
				grid: Grid{Cells: ph.Cols},
				rng:  rng,
			}
		},
	}
}

// Play is one level of snake.
type Play struct {
	cfg  config.SnakeConfig
	ph   engine.Physics
	grid Grid
	rng  *rand.Rand

	body    []Point           // Head at index 0
	segs    []engine.EntityID // Entities for body[1:]
	head    engine.EntityID
	food    engine.EntityID
	foodAt  Point
	dir     Direction
	nextDir Direction // Buffered turn applied on the next move
	growing int
	acc     time.Duration
}

// Spawn lays the snake out heading right from the centre and places food.
func (p *Play) Spawn(w *engine.World) {
	mid := p.grid.Cells / 2
	n := max(p.cfg.StartLength, 1)
	p.body = make([]Point, n)
	for i := range n {
		p.body[i] = Point{X: mid - i, Y: mid}
	}
	p.dir, p.nextDir = DirRight, DirRight

	p.head = w.Spawn(engine.KindPlayer, p.grid.Center(p.body[0]), core.Vec{}, p.cellSize(),
		engine.WithTag(TagHead))
	p.segs = p.segs[:0]
	for _, pt := range p.body[1:] {
		p.segs = append(p.segs, p.spawnSegment(w, pt))
	}
	p.spawnFood(w)
}

func (p *Play) cellSize() engine.Bounds {
	s := p.grid.CellSize() * fill
	return engine.Size(s, s)
}

func (p *Play) spawnSegment(w *engine.World, at Point) engine.EntityID {
	return w.Spawn(engine.KindObstacle, p.grid.Center(at), core.Vec{}, p.cellSize(),
		engine.WithTag(TagBody), engine.Lethal())
}

// spawnFood places food at a random empty cell.
func (p *Play) spawnFood(w *engine.World) {
	occupied := make(map[Point]bool, len(p.body))
	for _, pt := range p.body {
		occupied[pt] = true
	}
	empty := make([]Point, 0, p.grid.Cells*p.grid.Cells-len(p.body))
	for y := range p.grid.Cells {
		for x := range p.grid.Cells {
			if pt := (Point{X: x, Y: y}); !occupied[pt] {
				empty = append(empty, pt)
			}
		}
	}
	if len(empty) == 0 {
		return
	}
	p.foodAt = empty[p.rng.Intn(len(empty))]
	p.food = w.Spawn(engine.KindCollectible, p.grid.Center(p.foodAt), core.Vec{}, p.cellSize(),
		engine.WithTag(TagFood), engine.WithPoints(p.cfg.FoodPoints))
}

// Step buffers turns and moves the snake one cell per StepEvery.
func (p *Play) Step(w *engine.World, in core.Intents, dt time.Duration) []engine.Event {
	if d, ok := fromIntent(in.Direction()); ok && !d.Opposite(p.dir) {
		p.nextDir = d
	}

	p.acc += dt
	if p.acc < p.ph.StepEvery {
		return nil
	}
	p.acc -= p.ph.StepEvery
	p.move(w)
	return nil
}

// move advances the head; the old head cell becomes a body segment and the
// tail is dropped unless the snake is growing.
func (p *Play) move(w *engine.World) {
	p.dir = p.nextDir
	next := p.grid.Next(p.body[0], p.dir)

	p.segs = append([]engine.EntityID{p.spawnSegment(w, p.body[0])}, p.segs...)
	p.body = append([]Point{next}, p.body...)
	if head, ok := w.Get(p.head); ok {
		head.Pos = p.grid.Center(next)
	}

	if p.growing > 0 {
		p.growing--
		return
	}
	w.Remove(p.segs[len(p.segs)-1])
	p.segs = p.segs[:len(p.segs)-1]
	p.body = p.body[:len(p.body)-1]
}

// After grows the snake and replaces eaten food.
func (p *Play) After(w *engine.World, events []engine.Event, _ engine.Progress) {
	for _, ev := range events {
		if ev.Kind == engine.EventCollect && ev.B == p.food {
			p.growing++
			p.spawnFood(w)
		}
	}
}

// Body returns the occupied cells, head first.
func (p *Play) Body() []Point { return p.body }

// Direction returns the current heading.
func (p *Play) Direction() Direction { return p.dir }

func init() {
	registry.Register(ID, func(configPath string) (engine.Descriptor, error) {
		cfg, err := config.LoadSnake(configPath)
		if err != nil {
			return engine.Descriptor{}, err
		}
		return Descriptor(cfg), nil
	})
}
