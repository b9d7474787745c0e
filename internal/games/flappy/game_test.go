package flappy

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

func TestPipeGapsStayInBounds(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	s := NewPipeSpawner(cfg.Pipes, 25, cfg.Pipes.MaxGap, time.Second, rand.New(rand.NewSource(42)))

	for i := 0; i < 200; i++ {
		p := s.NextPipe()
		if p.Gap < cfg.Pipes.MinGap || p.Gap > cfg.Pipes.MaxGap {
			t.Fatalf("gap %v outside [%v, %v]", p.Gap, cfg.Pipes.MinGap, cfg.Pipes.MaxGap)
		}
		if p.GapTop < cfg.Pipes.Margin || p.GapBottom() > core.FieldSize-cfg.Pipes.Margin {
			t.Fatalf("gap [%v, %v] violates margin %v", p.GapTop, p.GapBottom(), cfg.Pipes.Margin)
		}
	}
}

func TestSpawnCreatesPairAndGate(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	w := engine.NewWorld(engine.Edges{})
	s := NewPipeSpawner(cfg.Pipes, 25, cfg.Pipes.MaxGap, time.Second, rand.New(rand.NewSource(1)))

	pipes := s.Update(w, time.Second)
	if len(pipes) != 1 {
		t.Fatalf("spawned %d pipes, expected 1", len(pipes))
	}
	if got := len(w.Tagged(TagPipe)); got != 2 {
		t.Errorf("pipe halves = %d, expected 2", got)
	}
	gate, ok := w.First(TagGate)
	if !ok {
		t.Fatal("gate not spawned")
	}
	if gate.Kind != engine.KindCollectible || gate.Points != cfg.Pipes.GatePoints {
		t.Errorf("gate = %+v", gate)
	}
	for _, half := range w.Tagged(TagPipe) {
		if half.Box().Intersects(gate.Box()) {
			t.Error("gate should not overlap the pipe halves")
		}
	}
}

func TestFlyingThroughGateScores(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	d := Descriptor(cfg)
	ph := d.Physics(1)
	w := engine.NewWorld(ph.Edges)
	p := d.NewPlay(1, ph, rand.New(rand.NewSource(1))).(*Play)
	p.Spawn(w)

	pipe := p.spawner.spawn(w)
	bird, _ := w.Get(p.bird)
	gate, _ := w.First(TagGate)
	bird.Pos = core.V(gate.Pos.X, pipe.GapTop+pipe.Gap/2)

	events := engine.Resolve(w, ph.MaxSpin)
	prog, _ := d.Rules(1, ph).Evaluate(engine.Progress{Level: 1, Budget: ph.Budget}, events, frame)

	if prog.Score != cfg.Pipes.GatePoints {
		t.Errorf("score = %d, expected %d", prog.Score, cfg.Pipes.GatePoints)
	}
	if prog.Budget != ph.Budget {
		t.Errorf("gate should not cost a life, budget = %d", prog.Budget)
	}
}

func TestFallingOffLoses(t *testing.T) {
	d := Descriptor(config.DefaultFlappyConfig())
	e := engine.New(catalog{ID: d}, &wallet{})
	ctx := context.Background()

	s, err := e.CreateSession(ctx, ID)
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	for i := 0; i < 300 && !s.State().Done(); i++ {
		if err := e.Tick(ctx, s, frame); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
	}
	if s.Verdict() != engine.StateLost {
		t.Fatalf("verdict = %v, expected lost", s.Verdict())
	}
	if s.Budget() != 0 {
		t.Errorf("budget = %d, expected 0", s.Budget())
	}
}

func TestFlapMovesUp(t *testing.T) {
	d := Descriptor(config.DefaultFlappyConfig())
	ph := d.Physics(1)
	w := engine.NewWorld(ph.Edges)
	p := d.NewPlay(1, ph, rand.New(rand.NewSource(1))).(*Play)
	p.Spawn(w)
	bird, _ := w.Get(p.bird)
	start := bird.Pos.Y

	p.Step(w, core.Intents{core.Jump()}, frame)
	w.Integrate(frame, ph.Gravity, ph.MaxFall)

	if bird.Pos.Y >= start {
		t.Errorf("flap should move the bird up, y %v -> %v", start, bird.Pos.Y)
	}
}

func TestDeterministicRuns(t *testing.T) {
	d := Descriptor(config.DefaultFlappyConfig())
	run := func() engine.Snapshot {
		e := engine.New(catalog{ID: d}, &wallet{})
		ctx := context.Background()
		s, err := e.CreateSession(ctx, ID, engine.WithSeed(12345))
		if err != nil {
			t.Fatalf("CreateSession() failed: %v", err)
		}
		for i := 0; i < 400 && !s.State().Done(); i++ {
			if i%20 == 0 {
				e.HandleInput(s, core.Jump())
			}
			e.Tick(ctx, s, frame)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Distance != b.Distance || a.State != b.State {
		t.Errorf("runs differ: %+v vs %+v", a, b)
	}
	if len(a.Entities) != len(b.Entities) {
		t.Fatalf("entity counts differ: %d vs %d", len(a.Entities), len(b.Entities))
	}
	for i := range a.Entities {
		if a.Entities[i].Box != b.Entities[i].Box {
			t.Errorf("entity %d differs: %+v vs %+v", i, a.Entities[i], b.Entities[i])
		}
	}
}
