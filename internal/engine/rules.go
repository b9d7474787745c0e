package engine

import (
	"math"
	"time"
)

// Verdict is the outcome of evaluating one tick.
type Verdict int

const (
	VerdictNone    Verdict = iota // Keep playing
	VerdictWon                    // Win predicate passed
	VerdictLost                   // Lose predicate passed
	VerdictLevelUp                // Win predicate passed and the variant chains levels in-session
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictNone:
		return "none"
	case VerdictWon:
		return "won"
	case VerdictLost:
		return "lost"
	case VerdictLevelUp:
		return "level_up"
	default:
		return "unknown"
	}
}

// Progress is the scoring state the rules read and produce.
type Progress struct {
	Score     int
	Level     int
	Budget    int // Lives or moves remaining
	Moves     int // Moves spent
	Remaining int // Alive breakable entities after collisions
	Distance  float64
	Elapsed   time.Duration
	Goal      bool // A variant signalled EventGoal
	Fatal     bool // A variant signalled EventFatal
}

// Predicate decides a win or loss from progress.
type Predicate func(Progress) bool

// ScoreAtLeast passes once the score reaches target.
func ScoreAtLeast(target int) Predicate {
	return func(p Progress) bool { return p.Score >= target }
}

// Cleared passes when no breakable entities remain.
func Cleared() Predicate {
	return func(p Progress) bool { return p.Remaining == 0 }
}

// DistanceAtLeast passes once the travelled distance reaches goal.
func DistanceAtLeast(goal float64) Predicate {
	return func(p Progress) bool { return p.Distance >= goal }
}

// GoalReached passes once a variant reported EventGoal.
func GoalReached() Predicate {
	return func(p Progress) bool { return p.Goal }
}

// BudgetExhausted passes when no lives or moves remain.
func BudgetExhausted() Predicate {
	return func(p Progress) bool { return p.Budget <= 0 }
}

// TimeUp passes once elapsed time reaches limit.
func TimeUp(limit time.Duration) Predicate {
	return func(p Progress) bool { return limit > 0 && p.Elapsed >= limit }
}

// Fatal passes once a variant reported EventFatal.
func Fatal() Predicate {
	return func(p Progress) bool { return p.Fatal }
}

// AnyOf passes when any of preds passes.
func AnyOf(preds ...Predicate) Predicate {
	return func(p Progress) bool {
		for _, pred := range preds {
			if pred != nil && pred(p) {
				return true
			}
		}
		return false
	}
}

// Rules is the per-variant scoring table and terminal predicates.
type Rules struct {
	Points     map[EventKind]int // Score per event (used when the event carries no Points)
	Costs      map[EventKind]int // Budget spent per event
	SidePoints map[Side]int      // Score per EventFall, by edge
	SideCosts  map[Side]int      // Budget spent per EventFall, by edge

	DistancePoints float64 // Score per unit of distance
	Win            Predicate
	Lose           Predicate
}

// Evaluate applies one tick of events to p and decides the verdict.
// It does not touch the world and gives the same result for the same inputs.
// The score never decreases and the budget never drops below zero.
func (r Rules) Evaluate(p Progress, events []Event, elapsed time.Duration) (Progress, Verdict) {
	p.Elapsed += elapsed

	for _, ev := range events {
		gain, cost := 0, 0
		switch ev.Kind {
		case EventFall:
			gain, cost = r.SidePoints[ev.Side], r.SideCosts[ev.Side]
		case EventDistance:
			before := math.Floor(p.Distance * r.DistancePoints)
			p.Distance += ev.Amount
			gain = int(math.Floor(p.Distance*r.DistancePoints) - before)
			cost = r.Costs[ev.Kind]
		default:
			gain = ev.Points
			if gain == 0 {
				gain = r.Points[ev.Kind]
			}
			cost = r.Costs[ev.Kind]
		}

		switch ev.Kind {
		case EventMove:
			p.Moves++
		case EventGoal:
			p.Goal = true
		case EventFatal:
			p.Fatal = true
		}

		if gain > 0 {
			p.Score += gain
		}
		if cost > 0 {
			p.Budget = max(p.Budget-cost, 0)
		}
	}

	if r.Win != nil && r.Win(p) {
		return p, VerdictWon
	}
	if r.Lose != nil && r.Lose(p) {
		return p, VerdictLost
	}
	return p, VerdictNone
}
