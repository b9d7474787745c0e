// Package merge implements a 2048-style sliding tile game. Reaching the
// level's target tile wins; a board with no move left loses.
package merge

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/config"
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/registry"
)

// ID is the variant identifier.
const ID = "merge"

// TagTile tags tile entities.
const TagTile = "tile"

const (
	spawnFourChance = 0.1
	margin          = 5.0
)

// Descriptor builds the merge variant from a configuration.
func Descriptor(cfg config.MergeConfig) engine.Descriptor {
	return engine.Descriptor{
		ID:       ID,
		Title:    "Merge",
		Summary:  "Slide and merge tiles up to the target",
		MaxLevel: cfg.MaxLevel,
		Stake:    cfg.Stake,
		Controls: []engine.Controls{
			{Keys: "←/↑/→/↓", Description: "Slide tiles"},
		},
		Rewards: engine.RewardTable(cfg.Rewards),
		Physics: func(level int) engine.Physics {
			return engine.Physics{
				Rows:   cfg.Size,
				Cols:   cfg.Size,
				Target: cfg.Target << (max(level, 1) - 1),
			}
		},
		Rules: func(level int, ph engine.Physics) engine.Rules {
			return engine.Rules{
				Win:  engine.GoalReached(),
				Lose: engine.Fatal(),
			}
		},
		NewPlay: func(level int, ph engine.Physics, rng *rand.Rand) engine.Play {
			return &Play{ph: ph, rng: rng, board: NewBoard(ph.Cols)}
		},
	}
}

// Play is one board.
type Play struct {
	ph    engine.Physics
	rng   *rand.Rand
	board Board
	tiles []engine.EntityID
}

// Spawn places the two opening tiles.
func (p *Play) Spawn(w *engine.World) {
	p.spawnTile()
	p.spawnTile()
	p.sync(w)
}

// spawnTile puts a 2 (sometimes a 4) in a random empty cell.
func (p *Play) spawnTile() {
	empty := EmptyCells(p.board)
	if len(empty) == 0 {
		return
	}
	cell := empty[p.rng.Intn(len(empty))]
	value := 2
	if p.rng.Float64() < spawnFourChance {
		value = 4
	}
	p.board[cell.Y][cell.X] = value
}

// sync replaces the tile entities with the current board.
func (p *Play) sync(w *engine.World) {
	for _, id := range p.tiles {
		w.Remove(id)
	}
	p.tiles = p.tiles[:0]

	n := p.board.Size()
	cell := (core.FieldSize - 2*margin) / float64(n)
	for y, row := range p.board {
		for x, v := range row {
			if v == 0 {
				continue
			}
			pos := core.V(margin+(float64(x)+0.5)*cell, margin+(float64(y)+0.5)*cell)
			p.tiles = append(p.tiles, w.Spawn(engine.KindObstacle, pos, core.Vec{},
				engine.Size(cell*0.9, cell*0.9), engine.WithTag(TagTile), engine.WithValue(v)))
		}
	}
}

// Step applies at most one slide per tick.
func (p *Play) Step(w *engine.World, in core.Intents, _ time.Duration) []engine.Event {
	dir, ok := fromIntent(in.Direction())
	if !ok {
		return nil
	}
	next, score, changed := Slide(p.board, dir)
	if !changed {
		return nil
	}
	p.board = next

	events := []engine.Event{{Kind: engine.EventMove, Tag: TagTile}}
	if score > 0 {
		events = append(events, engine.Event{Kind: engine.EventScore, Tag: TagTile, Points: score})
	}

	if MaxTile(p.board) >= p.ph.Target {
		events = append(events, engine.Event{Kind: engine.EventGoal, Tag: TagTile, Amount: float64(MaxTile(p.board))})
	} else {
		p.spawnTile()
		if !CanMove(p.board) {
			events = append(events, engine.Event{Kind: engine.EventFatal, Tag: TagTile})
		}
	}
	p.sync(w)
	return events
}

// After is a no-op; the board changes only on slides.
func (p *Play) After(*engine.World, []engine.Event, engine.Progress) {}

// Board returns a copy of the current board.
func (p *Play) Board() Board { return p.board.Clone() }

func fromIntent(k core.IntentKind) (Direction, bool) {
	switch k {
	case core.IntentUp:
		return DirUp, true
	case core.IntentDown:
		return DirDown, true
	case core.IntentLeft:
		return DirLeft, true
	case core.IntentRight:
		return DirRight, true
	default:
		return 0, false
	}
}

func init() {
	registry.Register(ID, func(configPath string) (engine.Descriptor, error) {
		cfg, err := config.LoadMerge(configPath)
		if err != nil {
			return engine.Descriptor{}, err
		}
		return Descriptor(cfg), nil
	})
}
