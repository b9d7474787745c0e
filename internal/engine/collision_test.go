package engine

import (
	"math"
	"testing"

	"github.com/vovakirdan/arcade-engine/internal/core"
)

const testSpin = 40.0

func TestPaddleOffsetReflection(t *testing.T) {
	tests := []struct {
		name     string
		ballX    float64
		wantSpin float64
	}{
		{"center", 50, 0},
		{"left extreme", 42, -testSpin},
		{"right extreme", 58, testSpin},
		{"half right", 54, testSpin / 2},
		{"beyond extreme is capped", 58.5, testSpin},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(AllEdges(EdgeNone))
			w.Spawn(KindPlayer, core.V(50, 90), core.Vec{}, Size(16, 2), WithTag("paddle"))
			ball := w.Spawn(KindProjectile, core.V(tc.ballX, 89), core.V(10, 30), Radius(1), Reflective())

			events := Resolve(w, testSpin)

			if len(events) != 1 || events[0].Kind != EventBounce {
				t.Fatalf("expected one bounce event, got %v", events)
			}
			b, _ := w.Get(ball)
			if math.Abs(b.Vel.X-tc.wantSpin) > 1e-9 {
				t.Errorf("spin = %v, expected %v", b.Vel.X, tc.wantSpin)
			}
			if b.Vel.Y != -30 {
				t.Errorf("vy = %v, expected -30", b.Vel.Y)
			}
			if b.Pos.Y != 88 {
				t.Errorf("ball should sit on the paddle at y=88, got %v", b.Pos.Y)
			}
		})
	}
}

func TestVerticalPaddleReflection(t *testing.T) {
	w := NewWorld(AllEdges(EdgeNone))
	w.Spawn(KindPlayer, core.V(3, 50), core.Vec{}, Size(2, 16))
	ball := w.Spawn(KindProjectile, core.V(4.5, 58), core.V(-30, 0), Radius(1))

	Resolve(w, testSpin)

	b, _ := w.Get(ball)
	if b.Vel.X != 30 {
		t.Errorf("vx = %v, expected 30", b.Vel.X)
	}
	if b.Vel.Y != testSpin {
		t.Errorf("vy = %v, expected %v", b.Vel.Y, testSpin)
	}
}

func TestBallLeavingPaddleIsIgnored(t *testing.T) {
	w := NewWorld(AllEdges(EdgeNone))
	w.Spawn(KindPlayer, core.V(50, 90), core.Vec{}, Size(16, 2))
	ball := w.Spawn(KindProjectile, core.V(50, 89), core.V(0, -30), Radius(1))

	if events := Resolve(w, testSpin); len(events) != 0 {
		t.Errorf("expected no events, got %v", events)
	}
	b, _ := w.Get(ball)
	if b.Vel != core.V(0, -30) {
		t.Errorf("velocity changed to %v", b.Vel)
	}
}

func TestProjectileBreaksObstacle(t *testing.T) {
	w := NewWorld(AllEdges(EdgeNone))
	brick := w.Spawn(KindObstacle, core.V(50, 20), core.Vec{}, Size(8, 3), Breakable(), WithPoints(7))
	wall := w.Spawn(KindObstacle, core.V(10, 20), core.Vec{}, Size(8, 3))
	ball := w.Spawn(KindProjectile, core.V(50, 22), core.V(5, -30), Radius(1), Reflective())

	events := Resolve(w, testSpin)

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if ev := events[0]; ev.Kind != EventScore || ev.B != brick || ev.Points != 7 {
		t.Errorf("unexpected event %+v", ev)
	}
	if _, ok := w.Get(brick); ok {
		t.Error("consumed brick must not stay alive")
	}
	if _, ok := w.Get(wall); !ok {
		t.Error("untouched wall should stay alive")
	}
	b, _ := w.Get(ball)
	if b.Vel != core.V(5, 30) {
		t.Errorf("ball should bounce down, velocity %v", b.Vel)
	}
}

func TestNonReflectiveProjectileIsConsumed(t *testing.T) {
	w := NewWorld(AllEdges(EdgeNone))
	w.Spawn(KindObstacle, core.V(50, 20), core.Vec{}, Size(8, 3), Breakable())
	shot := w.Spawn(KindProjectile, core.V(50, 21), core.V(0, -50), Size(1, 2))

	Resolve(w, testSpin)

	if _, ok := w.Get(shot); ok {
		t.Error("projectile should be consumed on impact")
	}
}

func TestPlayerCollisions(t *testing.T) {
	w := NewWorld(AllEdges(EdgeNone))
	player := w.Spawn(KindPlayer, core.V(20, 80), core.Vec{}, Size(4, 4))
	spike := w.Spawn(KindObstacle, core.V(22, 80), core.Vec{}, Size(2, 2), Lethal())
	coin := w.Spawn(KindCollectible, core.V(18, 78), core.Vec{}, Size(2, 2), WithTag("coin"))
	w.Spawn(KindObstacle, core.V(19, 81), core.Vec{}, Size(2, 2)) // scenery

	events := Resolve(w, testSpin)

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %v", events)
	}
	if events[0].Kind != EventDamage || events[0].A != player || events[0].B != spike {
		t.Errorf("first event %+v, expected damage", events[0])
	}
	if events[1].Kind != EventCollect || events[1].B != coin || events[1].Tag != "coin" {
		t.Errorf("second event %+v, expected collect", events[1])
	}
	if _, ok := w.Get(coin); ok {
		t.Error("collected coin should be removed")
	}

	// Same overlaps next tick produce nothing new
	if again := Resolve(w, testSpin); len(again) != 0 {
		t.Errorf("consumed entities should not collide again, got %v", again)
	}
}
