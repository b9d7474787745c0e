package pong

import (
	"context"
	"errors"
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

// aceingPlay knocks every served ball past the CPU.
type aceingPlay struct {
	*Play
}

func (a aceingPlay) Step(w *engine.World, in core.Intents, dt time.Duration) []engine.Event {
	events := a.Play.Step(w, in, dt)
	if ball, ok := w.Get(a.ball); ok && ball.Vel != (core.Vec{}) {
		ball.Pos.X = core.FieldSize + 5
	}
	return events
}

func newPlay(t *testing.T) (*Play, *engine.World, engine.Physics) {
	t.Helper()
	d := Descriptor(config.DefaultPongConfig())
	ph := d.Physics(1)
	w := engine.NewWorld(ph.Edges)
	p := d.NewPlay(1, ph, rand.New(rand.NewSource(1))).(*Play)
	p.Spawn(w)
	return p, w, ph
}

func TestServeWaitsForDelay(t *testing.T) {
	p, w, ph := newPlay(t)
	ball, _ := w.Get(p.ball)

	p.Step(w, nil, ph.SpawnEvery/2)
	if ball.Vel != (core.Vec{}) || !p.Serving() {
		t.Fatal("ball should wait during the serve delay")
	}
	p.Step(w, nil, ph.SpawnEvery/2)
	if p.Serving() {
		t.Fatal("ball should be served after the delay")
	}
	if ball.Vel.X >= 0 {
		t.Errorf("first serve should head to the player, vx = %v", ball.Vel.X)
	}
}

func TestPaddleReturnsBallWithSpin(t *testing.T) {
	p, w, ph := newPlay(t)
	paddle, _ := w.Get(p.paddle)
	ball, _ := w.Get(p.ball)

	ball.Pos = core.V(paddle.Pos.X+1, paddle.Pos.Y+paddle.Bounds.H/2-1)
	ball.Vel = core.V(-ph.Speed, 0)

	events := engine.Resolve(w, ph.MaxSpin)
	if len(events) != 1 || events[0].Kind != engine.EventBounce {
		t.Fatalf("events = %+v, expected one bounce", events)
	}
	if ball.Vel.X <= 0 {
		t.Errorf("ball should head right after the hit, vx = %v", ball.Vel.X)
	}
	if ball.Vel.Y <= 0 {
		t.Errorf("hit below centre should spin downward, vy = %v", ball.Vel.Y)
	}

	vx := ball.Vel.X
	p.After(w, events, engine.Progress{Budget: ph.Budget})
	if ball.Vel.X <= vx {
		t.Error("paddle hit should speed the ball up")
	}
}

func TestCPUTracksApproachingBall(t *testing.T) {
	p, w, ph := newPlay(t)
	p.Step(w, nil, ph.SpawnEvery)
	ball, _ := w.Get(p.ball)
	cpu, _ := w.Get(p.cpu)
	p.aim = 0

	ball.Pos = core.V(60, 20)
	ball.Vel = core.V(ph.Speed, 0)
	p.Step(w, nil, frame)
	if cpu.Vel.Y >= 0 {
		t.Errorf("CPU should move up toward the ball, vy = %v", cpu.Vel.Y)
	}

	ball.Vel = core.V(-ph.Speed, 0)
	p.Step(w, nil, frame)
	if cpu.Vel.Y != 0 {
		t.Errorf("CPU should wait while the ball moves away, vy = %v", cpu.Vel.Y)
	}
}

func TestPointsAndConcessions(t *testing.T) {
	d := Descriptor(config.DefaultPongConfig())
	ph := d.Physics(1)
	rules := d.Rules(1, ph)
	start := engine.Progress{Level: 1, Budget: ph.Budget}

	tests := []struct {
		name       string
		side       engine.Side
		wantScore  int
		wantBudget int
	}{
		{"ball past CPU", engine.SideRight, 1, ph.Budget},
		{"ball past player", engine.SideLeft, 0, ph.Budget - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, v := rules.Evaluate(start, []engine.Event{{Kind: engine.EventFall, Side: tt.side, Tag: TagBall}}, frame)
			if prog.Score != tt.wantScore || prog.Budget != tt.wantBudget {
				t.Errorf("score=%d budget=%d, expected %d/%d", prog.Score, prog.Budget, tt.wantScore, tt.wantBudget)
			}
			if v != engine.VerdictNone {
				t.Errorf("verdict = %v", v)
			}
		})
	}
}

func TestMatchWonAgainstCPU(t *testing.T) {
	cfg := config.DefaultPongConfig()
	d := Descriptor(cfg)
	inner := d.NewPlay
	d.NewPlay = func(level int, ph engine.Physics, rng *rand.Rand) engine.Play {
		return aceingPlay{inner(level, ph, rng).(*Play)}
	}
	store := &wallet{balance: cfg.Stake}
	e := engine.New(catalog{ID: d}, store)
	ctx := context.Background()

	s, err := e.CreateSession(ctx, ID)
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	if store.balance != 0 {
		t.Fatalf("stake not taken, balance = %d", store.balance)
	}
	for i := 0; i < 1000 && !s.State().Done(); i++ {
		if err := e.Tick(ctx, s, frame); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
	}

	if s.Verdict() != engine.StateWon {
		t.Fatalf("verdict = %v, expected won", s.Verdict())
	}
	if s.Score() != cfg.Gameplay.WinScore {
		t.Errorf("score = %d, expected %d", s.Score(), cfg.Gameplay.WinScore)
	}
	if store.balance != cfg.Rewards.Win {
		t.Errorf("balance = %d, expected %d", store.balance, cfg.Rewards.Win)
	}
}

func TestStakeRequired(t *testing.T) {
	d := Descriptor(config.DefaultPongConfig())
	e := engine.New(catalog{ID: d}, &wallet{balance: d.Stake - 1})

	_, err := e.CreateSession(context.Background(), ID)
	if !errors.Is(err, engine.ErrInsufficientStake) {
		t.Errorf("err = %v, expected ErrInsufficientStake", err)
	}
}
