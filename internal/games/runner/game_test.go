package runner

import (
	"context"
	"math"
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

func find(snap engine.Snapshot, tag string) (engine.EntityView, bool) {
	for _, e := range snap.Entities {
		if e.Tag == tag {
			return e, true
		}
	}
	return engine.EntityView{}, false
}

func TestSpawnerCadence(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	w := engine.NewWorld(engine.AllEdges(engine.EdgeClamp))
	s := NewSpawner(cfg.Obstacles, cfg.Physics.Ground, 30, 900*time.Millisecond, rand.New(rand.NewSource(1)))

	if n := s.Update(w, 800*time.Millisecond); n != 0 {
		t.Errorf("spawned %d obstacles before the first interval", n)
	}
	if n := s.Update(w, 100*time.Millisecond); n != 1 {
		t.Errorf("spawned %d obstacles at the first interval, expected 1", n)
	}
	if n := s.Update(w, 1800*time.Millisecond); n != 2 {
		t.Errorf("spawned %d obstacles after two intervals, expected 2", n)
	}

	for _, o := range w.Tagged(TagObstacle) {
		box := o.Box()
		if math.Abs(box.Bottom()-cfg.Physics.Ground) > 1e-9 {
			t.Errorf("obstacle bottom = %v, expected ground %v", box.Bottom(), cfg.Physics.Ground)
		}
		if box.Left() < core.FieldSize-1e-9 {
			t.Errorf("obstacle should spawn past the right edge, left = %v", box.Left())
		}
		if o.Vel.X != -30 || !o.Lethal {
			t.Errorf("obstacle not scrolling or not lethal: %+v", o)
		}
	}
}

func TestJumpLandsOnGround(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	d := Descriptor(cfg)
	ph := d.Physics(1)
	w := engine.NewWorld(ph.Edges)
	p := d.NewPlay(1, ph, rand.New(rand.NewSource(1))).(*Play)
	p.Spawn(w)

	p.Step(w, core.Intents{core.Jump()}, frame)
	if p.Grounded() {
		t.Fatal("runner should leave the ground on jump")
	}

	peak := core.FieldSize
	for i := 0; i < 120 && !p.Grounded(); i++ {
		w.Integrate(frame, ph.Gravity, ph.MaxFall)
		p.After(w, nil, engine.Progress{})
		r, _ := w.Get(p.runner)
		peak = min(peak, r.Box().Bottom())
		p.Step(w, nil, frame)
	}

	if !p.Grounded() {
		t.Fatal("runner never landed")
	}
	r, _ := w.Get(p.runner)
	if r.Box().Bottom() != cfg.Physics.Ground || r.Vel.Y != 0 {
		t.Errorf("runner should rest on the ground, bottom=%v vy=%v", r.Box().Bottom(), r.Vel.Y)
	}
	if rise := cfg.Physics.Ground - peak; rise < 5 {
		t.Errorf("jump rose %v units, expected at least 5", rise)
	}
}

func TestDistanceAndLevels(t *testing.T) {
	d := Descriptor(config.DefaultRunnerConfig())
	if d.Physics(1).Target != 600 || d.Physics(3).Target != 1200 {
		t.Errorf("targets = %d, %d", d.Physics(1).Target, d.Physics(3).Target)
	}
	if d.Physics(5).SpawnEvery >= d.Physics(1).SpawnEvery {
		t.Error("spawn interval should shrink with level")
	}

	ph := d.Physics(1)
	p := d.NewPlay(1, ph, rand.New(rand.NewSource(1)))
	w := engine.NewWorld(ph.Edges)
	p.Spawn(w)
	events := p.Step(w, nil, time.Second)
	if len(events) != 1 || events[0].Kind != engine.EventDistance || events[0].Amount != ph.Speed {
		t.Errorf("events = %+v, expected one distance event of %v", events, ph.Speed)
	}
}

// A jump started just before contact still collides while airborne: the
// obstacle is taller than the runner's early rise.
func TestCollisionMidJumpLoses(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	d := Descriptor(cfg)
	e := engine.New(catalog{ID: d}, &wallet{})
	ctx := context.Background()

	s, err := e.CreateSession(ctx, ID, engine.WithSeed(7))
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}

	jumped := false
	for i := 0; i < 600 && !s.State().Done(); i++ {
		if !jumped {
			snap := s.Snapshot()
			r, _ := find(snap, TagRunner)
			if o, ok := find(snap, TagObstacle); ok && o.Box.Left()-r.Box.Right() < 1 {
				if err := e.HandleInput(s, core.Jump()); err != nil {
					t.Fatalf("HandleInput() failed: %v", err)
				}
				jumped = true
			}
		}
		if err := e.Tick(ctx, s, frame); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
	}

	if !jumped {
		t.Fatal("no obstacle reached the runner")
	}
	if s.Verdict() != engine.StateLost {
		t.Fatalf("verdict = %v, expected lost", s.Verdict())
	}
	r, ok := find(s.Snapshot(), TagRunner)
	if !ok {
		t.Fatal("runner missing from final snapshot")
	}
	if r.Box.Bottom() >= cfg.Physics.Ground {
		t.Errorf("runner should be airborne at impact, bottom = %v", r.Box.Bottom())
	}
	if st := e.Stats(ID); st.Attempts != 1 || st.Losses != 1 {
		t.Errorf("stats = %+v, expected one lost attempt", st)
	}
}
