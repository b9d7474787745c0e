// Package memory implements a card matching game: flip two face-down cards
// per move and clear every pair before the move budget runs out.
package memory

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/config"
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/registry"
)

// ID is the variant identifier.
const ID = "memory"

// Entity tags.
const (
	TagCard   = "card"
	TagCursor = "cursor"
)

// Descriptor builds the memory variant from a configuration.
func Descriptor(cfg config.MemoryConfig) engine.Descriptor {
	scaler := config.NewScaler(cfg.Scaling, cfg.MaxLevel)

	return engine.Descriptor{
		ID:       ID,
		Title:    "Memory",
		Summary:  "Match every pair within the move budget",
		MaxLevel: cfg.MaxLevel,
		Stake:    cfg.Stake,
		Controls: []engine.Controls{
			{Keys: "←/↑/→/↓", Description: "Move cursor"},
			{Keys: "Space/Enter", Description: "Flip card"},
		},
		Rewards: engine.RewardTable(cfg.Rewards),
		Physics: func(level int) engine.Physics {
			pairs := scaler.Count(cfg.Pairs, level)
			return engine.Physics{
				Count: pairs,
				// Budget grows with the board so every level is winnable
				Budget:    cfg.Moves + 2*(pairs-cfg.Pairs),
				FlipDelay: config.Millis(cfg.FlipDelayMs),
				Target:    pairs,
			}
		},
		Rules: func(level int, ph engine.Physics) engine.Rules {
			return engine.Rules{
				Points: map[engine.EventKind]int{engine.EventScore: cfg.PairPoints},
				Costs:  map[engine.EventKind]int{engine.EventMove: 1},
				Win:    engine.Cleared(),
				Lose:   engine.BudgetExhausted(),
			}
		},
		NewPlay: func(level int, ph engine.Physics, rng *rand.Rand) engine.Play {
			return &Play{cfg: cfg, ph: ph, board: NewBoard(ph.Count, rng)}
		},
	}
}

// Play is one board.
type Play struct {
	cfg   config.MemoryConfig
	ph    engine.Physics
	board Board

	cards  []engine.EntityID // Entity per slot; 0 once matched
	cursor engine.EntityID
	at     int // Cursor slot

	first    int           // Slot of the first face-up card, -1 if none
	second   int           // Slot of a mismatched second card, -1 if none
	flipBack time.Duration // Time until a mismatched pair turns face-down
	held     core.Intents  // Intents waiting for the flip-back
}

// Spawn deals the cards face-down and places the cursor on the first slot.
func (p *Play) Spawn(w *engine.World) {
	cw, ch := p.board.CardSize()
	p.cards = make([]engine.EntityID, p.board.Len())
	for slot, sym := range p.board.Symbols {
		p.cards[slot] = w.Spawn(engine.KindObstacle, p.board.Center(slot), core.Vec{}, engine.Size(cw, ch),
			engine.WithTag(TagCard), engine.WithValue(sym), engine.Breakable(), engine.Hidden())
	}
	p.cursor = w.Spawn(engine.KindObstacle, p.board.Center(0), core.Vec{}, engine.Size(cw*1.1, ch*1.1),
		engine.WithTag(TagCursor), engine.WithValue(0))
	p.first, p.second = -1, -1
	p.held = nil
}

// maxHeld bounds the intents kept while a mismatched pair is showing.
const maxHeld = 8

// Step turns a mismatched pair back after the delay, moves the cursor and
// flips the selected cards. Intents that arrive while a mismatch is showing
// are held and applied once the pair turns face-down.
func (p *Play) Step(w *engine.World, in core.Intents, dt time.Duration) []engine.Event {
	queue := append(p.held, in...)
	p.held = nil

	if p.second >= 0 {
		p.flipBack -= dt
		if p.flipBack > 0 {
			p.hold(queue)
			return nil
		}
		p.hide(w, p.first)
		p.hide(w, p.second)
		p.first, p.second = -1, -1
	}

	var events []engine.Event
	for i, intent := range queue {
		switch intent.Kind {
		case core.IntentLeft, core.IntentRight, core.IntentUp, core.IntentDown:
			p.moveCursor(w, p.board.Move(p.at, intent.Kind))
		case core.IntentJump:
			events = p.flip(w, p.at, events)
		case core.IntentSelect:
			slot := intent.Index
			if slot < 0 {
				slot = p.at
			} else if slot < p.board.Len() {
				p.moveCursor(w, slot)
			}
			events = p.flip(w, slot, events)
		}
		if p.second >= 0 {
			p.hold(queue[i+1:])
			break
		}
	}
	return events
}

// hold keeps the newest intents for a later tick.
func (p *Play) hold(in core.Intents) {
	if len(in) > maxHeld {
		in = in[len(in)-maxHeld:]
	}
	p.held = append(core.Intents(nil), in...)
}

func (p *Play) moveCursor(w *engine.World, slot int) {
	p.at = slot
	if c, ok := w.Get(p.cursor); ok {
		c.Pos = p.board.Center(slot)
		c.Value = slot
	}
}

// flip reveals the card in slot. The second card of a move emits EventMove
// and, on a match, EventScore for the removed pair.
func (p *Play) flip(w *engine.World, slot int, events []engine.Event) []engine.Event {
	if slot < 0 || slot >= len(p.cards) || slot == p.first {
		return events
	}
	card, ok := w.Get(p.cards[slot])
	if !ok || !card.Hidden {
		return events
	}
	card.Hidden = false

	if p.first < 0 {
		p.first = slot
		return events
	}

	events = append(events, engine.Event{Kind: engine.EventMove, A: p.cards[p.first], B: card.ID, Tag: TagCard})
	if p.board.Symbols[p.first] == p.board.Symbols[slot] {
		events = append(events, engine.Event{
			Kind: engine.EventScore, A: p.cards[p.first], B: card.ID, Tag: TagCard, Points: p.cfg.PairPoints,
		})
		w.Remove(p.cards[p.first])
		w.Remove(card.ID)
		p.cards[p.first], p.cards[slot] = 0, 0
		p.first = -1
		return events
	}

	p.second = slot
	p.flipBack = p.ph.FlipDelay
	return events
}

func (p *Play) hide(w *engine.World, slot int) {
	if slot < 0 {
		return
	}
	if card, ok := w.Get(p.cards[slot]); ok {
		card.Hidden = true
	}
}

// After is a no-op; matching happens when the second card is flipped.
func (p *Play) After(*engine.World, []engine.Event, engine.Progress) {}

// Board returns the dealt board.
func (p *Play) Board() Board { return p.board }

// FaceUp reports whether the card in slot is currently revealed.
func (p *Play) FaceUp(w *engine.World, slot int) bool {
	if slot < 0 || slot >= len(p.cards) {
		return false
	}
	card, ok := w.Get(p.cards[slot])
	return ok && !card.Hidden
}

func init() {
	registry.Register(ID, func(configPath string) (engine.Descriptor, error) {
		cfg, err := config.LoadMemory(configPath)
		if err != nil {
			return engine.Descriptor{}, err
		}
		return Descriptor(cfg), nil
	})
}
