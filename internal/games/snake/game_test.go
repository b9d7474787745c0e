package snake

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/config"
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
)

const frame = time.Second / 60

type wallet struct{ balance int }

func (w *wallet) AddTokens(_ context.Context, n int) error { w.balance += n; return nil }

func (w *wallet) UseTokens(_ context.Context, n int) (bool, error) {
	if w.balance < n {
		return false, nil
	}
	w.balance -= n
	return true, nil
}

func (w *wallet) Balance(context.Context) (int, error) { return w.balance, nil }

type catalog map[string]engine.Descriptor

func (c catalog) Lookup(id string) (engine.Descriptor, bool) {
	d, ok := c[id]
	return d, ok
}

func newPlay(t *testing.T, cfg config.SnakeConfig) (*Play, *engine.World, engine.Physics) {
	t.Helper()
	d := Descriptor(cfg)
	ph := d.Physics(1)
	w := engine.NewWorld(ph.Edges)
	p := d.NewPlay(1, ph, rand.New(rand.NewSource(1))).(*Play)
	p.Spawn(w)
	return p, w, ph
}

func TestInitialLayout(t *testing.T) {
	p, w, _ := newPlay(t, config.DefaultSnakeConfig())

	if got := len(p.Body()); got != 3 {
		t.Fatalf("snake length = %d, expected 3", got)
	}
	if got := len(w.Tagged(TagBody)); got != 2 {
		t.Errorf("body segments = %d, expected 2", got)
	}
	for _, pt := range p.Body() {
		if pt == p.foodAt {
			t.Errorf("food spawned on the snake at %+v", pt)
		}
	}
	if _, ok := w.First(TagFood); !ok {
		t.Error("food not spawned")
	}
}

func TestMovesOncePerStep(t *testing.T) {
	p, w, ph := newPlay(t, config.DefaultSnakeConfig())
	start := p.Body()[0]

	p.Step(w, nil, ph.StepEvery-time.Millisecond)
	if p.Body()[0] != start {
		t.Fatal("snake moved before the step interval")
	}
	p.Step(w, nil, time.Millisecond)
	if got, want := p.Body()[0], (Point{X: start.X + 1, Y: start.Y}); got != want {
		t.Errorf("head = %+v, expected %+v", got, want)
	}
	if got := len(w.Tagged(TagBody)); got != 2 {
		t.Errorf("body segments = %d after a plain move, expected 2", got)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	p, w, ph := newPlay(t, config.DefaultSnakeConfig())

	p.Step(w, core.Intents{core.Move(core.IntentLeft)}, ph.StepEvery)
	if p.Direction() != DirRight {
		t.Errorf("direction = %v, reversal should be ignored", p.Direction())
	}

	p.Step(w, core.Intents{core.Move(core.IntentUp)}, ph.StepEvery)
	if p.Direction() != DirUp {
		t.Errorf("direction = %v, expected up", p.Direction())
	}
}

func TestGridWraps(t *testing.T) {
	g := Grid{Cells: 20}
	tests := []struct {
		from Point
		dir  Direction
		want Point
	}{
		{Point{19, 5}, DirRight, Point{0, 5}},
		{Point{0, 5}, DirLeft, Point{19, 5}},
		{Point{3, 0}, DirUp, Point{3, 19}},
		{Point{3, 19}, DirDown, Point{3, 0}},
		{Point{3, 3}, DirDown, Point{3, 4}},
	}
	for _, tt := range tests {
		if got := g.Next(tt.from, tt.dir); got != tt.want {
			t.Errorf("Next(%+v, %v) = %+v, expected %+v", tt.from, tt.dir, got, tt.want)
		}
	}
}

func TestEatingGrows(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	p, w, ph := newPlay(t, cfg)
	rules := Descriptor(cfg).Rules(1, ph)

	// Put the food right in front of the head
	food, _ := w.Get(p.food)
	p.foodAt = p.grid.Next(p.Body()[0], DirRight)
	food.Pos = p.grid.Center(p.foodAt)

	p.Step(w, nil, ph.StepEvery)
	events := engine.Resolve(w, 0)
	prog, _ := rules.Evaluate(engine.Progress{Level: 1, Budget: ph.Budget}, events, ph.StepEvery)
	p.After(w, events, prog)
	w.Sweep()

	if prog.Score != cfg.FoodPoints {
		t.Errorf("score = %d, expected %d", prog.Score, cfg.FoodPoints)
	}
	if _, ok := w.First(TagFood); !ok {
		t.Error("new food should be placed")
	}

	p.Step(w, nil, ph.StepEvery)
	if got := len(p.Body()); got != 4 {
		t.Errorf("length = %d after eating, expected 4", got)
	}
}

func TestSelfCollisionLoses(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.StartLength = 5
	d := Descriptor(cfg)
	e := engine.New(catalog{ID: d}, &wallet{})
	ctx := context.Background()

	s, err := e.CreateSession(ctx, ID)
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}

	head := func() core.Vec {
		for _, ev := range s.Snapshot().Entities {
			if ev.Tag == TagHead {
				return ev.Box.Center
			}
		}
		return core.Vec{}
	}

	// Down, left, up turns the head back into its own body
	for _, turn := range []core.IntentKind{core.IntentDown, core.IntentLeft, core.IntentUp} {
		if err := e.HandleInput(s, core.Move(turn)); err != nil {
			t.Fatalf("HandleInput(%v) failed: %v", turn, err)
		}
		before := head()
		for i := 0; i < 20 && head() == before && !s.State().Done(); i++ {
			if err := e.Tick(ctx, s, frame); err != nil {
				t.Fatalf("Tick() failed: %v", err)
			}
		}
	}

	if s.Verdict() != engine.StateLost {
		t.Fatalf("verdict = %v, expected lost", s.Verdict())
	}
}

func TestLevelsChainInSession(t *testing.T) {
	d := Descriptor(config.DefaultSnakeConfig())
	if !d.ChainInSession {
		t.Fatal("snake should chain levels within a session")
	}
	if d.Physics(2).Target != 2*d.Physics(1).Target {
		t.Errorf("targets %d, %d", d.Physics(1).Target, d.Physics(2).Target)
	}
	if d.Physics(5).StepEvery >= d.Physics(1).StepEvery {
		t.Error("snake should speed up with level")
	}
}
