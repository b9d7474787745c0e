package engine

import (
	"math/rand"
	"testing"
	"time"
)

func TestEvaluateScoring(t *testing.T) {
	r := Rules{
		Points:     map[EventKind]int{EventScore: 10, EventCollect: 5},
		Costs:      map[EventKind]int{EventDamage: 1},
		SidePoints: map[Side]int{SideRight: 1},
		SideCosts:  map[Side]int{SideBottom: 1},
	}

	tests := []struct {
		name       string
		events     []Event
		wantScore  int
		wantBudget int
	}{
		{"empty tick", nil, 0, 3},
		{"table points", []Event{{Kind: EventScore}, {Kind: EventCollect}}, 15, 3},
		{"carried points win over table", []Event{{Kind: EventScore, Points: 3}}, 3, 3},
		{"damage costs budget", []Event{{Kind: EventDamage}, {Kind: EventDamage}}, 0, 1},
		{"budget floors at zero", []Event{{Kind: EventDamage}, {Kind: EventDamage}, {Kind: EventDamage}, {Kind: EventDamage}}, 0, 0},
		{"fall by side", []Event{{Kind: EventFall, Side: SideRight}, {Kind: EventFall, Side: SideBottom}}, 1, 2},
		{"negative points ignored", []Event{{Kind: EventScore, Points: -50}}, 0, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, _ := r.Evaluate(Progress{Budget: 3}, tc.events, time.Millisecond)
			if p.Score != tc.wantScore {
				t.Errorf("score = %d, expected %d", p.Score, tc.wantScore)
			}
			if p.Budget != tc.wantBudget {
				t.Errorf("budget = %d, expected %d", p.Budget, tc.wantBudget)
			}
		})
	}
}

func TestEvaluateScoreIsMonotonic(t *testing.T) {
	r := Rules{
		Points: map[EventKind]int{EventScore: 10, EventBounce: 1},
		Costs:  map[EventKind]int{EventDamage: 1},
	}
	kinds := []EventKind{EventDamage, EventScore, EventCollect, EventBounce, EventFall, EventMove, EventDistance}
	rng := rand.New(rand.NewSource(7))

	p := Progress{Budget: 1000}
	for tick := 0; tick < 500; tick++ {
		n := rng.Intn(4)
		events := make([]Event, n)
		for i := range events {
			events[i] = Event{Kind: kinds[rng.Intn(len(kinds))], Points: rng.Intn(21) - 10, Amount: rng.Float64()}
		}
		before := p.Score
		p, _ = r.Evaluate(p, events, 16*time.Millisecond)
		if p.Score < before {
			t.Fatalf("tick %d: score decreased from %d to %d", tick, before, p.Score)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	r := Rules{
		Points:         map[EventKind]int{EventScore: 10},
		DistancePoints: 0.5,
		Win:            DistanceAtLeast(100),
	}
	events := []Event{{Kind: EventScore}, {Kind: EventDistance, Amount: 3.3}, {Kind: EventMove}}

	p1, v1 := r.Evaluate(Progress{Level: 2}, events, 20*time.Millisecond)
	p2, v2 := r.Evaluate(Progress{Level: 2}, events, 20*time.Millisecond)
	if p1 != p2 || v1 != v2 {
		t.Errorf("same inputs gave %+v/%v and %+v/%v", p1, v1, p2, v2)
	}
	if p1.Score != 11 || p1.Moves != 1 || p1.Elapsed != 20*time.Millisecond {
		t.Errorf("unexpected progress %+v", p1)
	}
}

func TestEvaluateDistanceScoring(t *testing.T) {
	r := Rules{DistancePoints: 1}

	p := Progress{}
	for i := 0; i < 10; i++ {
		p, _ = r.Evaluate(p, []Event{{Kind: EventDistance, Amount: 0.25}}, time.Millisecond)
	}
	if p.Score != 2 {
		t.Errorf("2.5 units should score 2, got %d", p.Score)
	}
}

func TestEvaluateVerdicts(t *testing.T) {
	r := Rules{
		Points: map[EventKind]int{EventScore: 1},
		Costs:  map[EventKind]int{EventDamage: 1},
		Win:    AnyOf(ScoreAtLeast(3), GoalReached()),
		Lose:   AnyOf(BudgetExhausted(), TimeUp(time.Second), Fatal()),
	}

	tests := []struct {
		name   string
		start  Progress
		events []Event
		dt     time.Duration
		want   Verdict
	}{
		{"nothing", Progress{Budget: 1}, nil, 0, VerdictNone},
		{"score target", Progress{Score: 2, Budget: 1}, []Event{{Kind: EventScore}}, 0, VerdictWon},
		{"goal event", Progress{Budget: 1}, []Event{{Kind: EventGoal}}, 0, VerdictWon},
		{"last life", Progress{Budget: 1}, []Event{{Kind: EventDamage}}, 0, VerdictLost},
		{"timer", Progress{Budget: 1, Elapsed: 990 * time.Millisecond}, nil, 10 * time.Millisecond, VerdictLost},
		{"fatal", Progress{Budget: 1}, []Event{{Kind: EventFatal}}, 0, VerdictLost},
		{"win checked before lose", Progress{Score: 2, Budget: 1}, []Event{{Kind: EventScore}, {Kind: EventDamage}}, 0, VerdictWon},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, got := r.Evaluate(tc.start, tc.events, tc.dt)
			if got != tc.want {
				t.Errorf("verdict = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestClearedPredicate(t *testing.T) {
	if !Cleared()(Progress{Remaining: 0}) {
		t.Error("Cleared should pass with nothing remaining")
	}
	if Cleared()(Progress{Remaining: 1}) {
		t.Error("Cleared should fail with bricks remaining")
	}
	if TimeUp(0)(Progress{Elapsed: time.Hour}) {
		t.Error("zero limit disables the timer")
	}
}

func TestRewardTableDelta(t *testing.T) {
	table := RewardTable{Win: 20, Lose: 2, PerLevel: 5, ScorePerToken: 100}

	tests := []struct {
		verdict State
		level   int
		score   int
		want    int
	}{
		{StateWon, 1, 0, 20},
		{StateWon, 3, 0, 30},
		{StateWon, 1, 250, 22},
		{StateLost, 5, 999, 2},
	}
	for _, tc := range tests {
		if got := table.Delta(tc.verdict, tc.level, tc.score); got != tc.want {
			t.Errorf("Delta(%v, %d, %d) = %d, expected %d", tc.verdict, tc.level, tc.score, got, tc.want)
		}
	}
}
