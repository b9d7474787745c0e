package engine

import (
	"math"

	"github.com/vovakirdan/arcade-engine/internal/core"
)

// EventKind classifies a collision or progression event.
type EventKind int

const (
	EventDamage   EventKind = iota // Player touched a lethal obstacle
	EventScore                     // Projectile broke an obstacle, or a variant scored
	EventCollect                   // Player picked up a collectible
	EventBounce                    // Projectile reflected off a player
	EventFall                      // Entity left the playfield under EdgeRemovePenalize
	EventMove                      // A move was spent (memory flips, merge slides)
	EventDistance                  // Distance travelled; Amount carries the units
	EventGoal                      // A variant-specific goal was reached
	EventFatal                     // The variant can no longer continue
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventDamage:
		return "damage"
	case EventScore:
		return "score"
	case EventCollect:
		return "collect"
	case EventBounce:
		return "bounce"
	case EventFall:
		return "fall"
	case EventMove:
		return "move"
	case EventDistance:
		return "distance"
	case EventGoal:
		return "goal"
	case EventFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Event is produced during one tick and consumed by the rules in the same tick.
type Event struct {
	Kind   EventKind
	A, B   EntityID // Actor and target; zero when not entity-bound
	Side   Side     // Edge for EventFall
	Tag    string   // Tag of the target (or of A for EventFall)
	Points int      // Score carried by the consumed entity; 0 uses the rules table
	Amount float64  // Units for EventDistance
}

// Resolve tests every alive player and projectile against every alive target
// and applies the outcome. Each overlapping pair yields at most one event.
// maxSpin is the horizontal (or vertical, for upright paddles) speed imparted
// by a paddle contact at its extreme edge.
func Resolve(w *World, maxSpin float64) []Event {
	var events []Event
	for _, a := range w.entities {
		if !a.Alive {
			continue
		}
		switch a.Kind {
		case KindPlayer:
			events = resolvePlayer(w, a, maxSpin, events)
		case KindProjectile:
			events = resolveProjectile(w, a, events)
		}
	}
	return events
}

func resolvePlayer(w *World, p *Entity, maxSpin float64, events []Event) []Event {
	for _, t := range w.entities {
		if !p.Alive {
			break
		}
		if !t.Alive || t == p || !p.Overlaps(t) {
			continue
		}
		switch t.Kind {
		case KindObstacle:
			if !t.Lethal {
				continue
			}
			t.Alive = false
			events = append(events, Event{Kind: EventDamage, A: p.ID, B: t.ID, Tag: t.Tag})
		case KindCollectible:
			t.Alive = false
			events = append(events, Event{Kind: EventCollect, A: p.ID, B: t.ID, Tag: t.Tag, Points: t.Points})
		case KindProjectile:
			if ReflectOffPaddle(t, p, maxSpin) {
				events = append(events, Event{Kind: EventBounce, A: p.ID, B: t.ID, Tag: t.Tag})
			}
		}
	}
	return events
}

func resolveProjectile(w *World, a *Entity, events []Event) []Event {
	var flippedX, flippedY bool
	for _, t := range w.entities {
		if !a.Alive {
			break
		}
		if !t.Alive || t.Kind != KindObstacle || !a.Overlaps(t) {
			continue
		}

		if t.Breakable {
			t.Alive = false
			events = append(events, Event{Kind: EventScore, A: a.ID, B: t.ID, Tag: t.Tag, Points: t.Points})
		}

		if !a.Reflective {
			a.Alive = false
			continue
		}

		// Bounce on the axis of least penetration, at most once per axis per tick.
		dx, dy := a.Box().Overlap(t.Box())
		if dx < dy {
			if !flippedX {
				a.Vel.X = awayFrom(a.Vel.X, a.Pos.X, t.Pos.X)
				flippedX = true
			}
		} else if !flippedY {
			a.Vel.Y = awayFrom(a.Vel.Y, a.Pos.Y, t.Pos.Y)
			flippedY = true
		}
	}
	return events
}

// awayFrom returns v with its sign pointing from other toward self.
func awayFrom(v, self, other float64) float64 {
	if self < other {
		return -math.Abs(v)
	}
	return math.Abs(v)
}

// ReflectOffPaddle bounces a ball off a paddle. The spin component is set
// from the contact offset relative to the paddle center: zero at the center,
// maxSpin at either extreme. Paddles taller than wide deflect horizontally.
// Returns false when the ball is moving away from the paddle.
func ReflectOffPaddle(ball, paddle *Entity, maxSpin float64) bool {
	pb := paddle.Box()

	if pb.H > pb.W {
		dir := 1.0
		if ball.Pos.X < paddle.Pos.X {
			dir = -1
		}
		if ball.Vel.X*dir >= 0 {
			return false
		}
		offset := core.ClampF((ball.Pos.Y-paddle.Pos.Y)/(pb.H/2), -1, 1)
		ball.Vel.X = dir * math.Abs(ball.Vel.X)
		ball.Vel.Y = offset * maxSpin
		ball.Pos.X = paddle.Pos.X + dir*(pb.W/2+ball.Bounds.W/2)
		return true
	}

	dir := -1.0
	if ball.Pos.Y > paddle.Pos.Y {
		dir = 1
	}
	if ball.Vel.Y*dir >= 0 {
		return false
	}
	offset := core.ClampF((ball.Pos.X-paddle.Pos.X)/(pb.W/2), -1, 1)
	ball.Vel.Y = dir * math.Abs(ball.Vel.Y)
	ball.Vel.X = offset * maxSpin
	ball.Pos.Y = paddle.Pos.Y + dir*(pb.H/2+ball.Bounds.H/2)
	return true
}
