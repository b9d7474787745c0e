package engine

import (
	"testing"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/core"
)

func TestSpawnAssignsUniqueIDs(t *testing.T) {
	w := NewWorld(AllEdges(EdgeNone))

	seen := make(map[EntityID]bool)
	for i := 0; i < 10; i++ {
		id := w.Spawn(KindObstacle, core.V(float64(i), 10), core.Vec{}, Size(1, 1))
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}

	// Removed IDs are never reused
	first := EntityID(1)
	if !w.Remove(first) {
		t.Fatal("Remove(1) should succeed")
	}
	w.Sweep()
	id := w.Spawn(KindObstacle, core.V(1, 1), core.Vec{}, Size(1, 1))
	if id == first {
		t.Error("spawn reused a removed id")
	}
	if w.Len() != 10 {
		t.Errorf("Len() = %d, expected 10", w.Len())
	}
}

func TestRemoveTwice(t *testing.T) {
	w := NewWorld(AllEdges(EdgeNone))
	id := w.Spawn(KindCollectible, core.V(5, 5), core.Vec{}, Size(1, 1))

	if !w.Remove(id) {
		t.Fatal("first Remove should succeed")
	}
	if w.Remove(id) {
		t.Error("second Remove should report false")
	}
	if _, ok := w.Get(id); ok {
		t.Error("removed entity should not be returned by Get")
	}
}

func TestIntegrate(t *testing.T) {
	w := NewWorld(AllEdges(EdgeNone))
	id := w.Spawn(KindProjectile, core.V(10, 10), core.V(20, -10), Radius(1))
	faller := w.Spawn(KindPlayer, core.V(50, 50), core.Vec{}, Size(2, 2), Falling())

	w.Integrate(500*time.Millisecond, 40, 15)

	e, _ := w.Get(id)
	if e.Pos != core.V(20, 5) {
		t.Errorf("projectile at %v, expected (20, 5)", e.Pos)
	}

	f, _ := w.Get(faller)
	if f.Vel.Y != 15 {
		t.Errorf("fall speed = %v, expected cap 15", f.Vel.Y)
	}
	if f.Pos.Y != 57.5 {
		t.Errorf("faller y = %v, expected 57.5", f.Pos.Y)
	}
}

func TestReflectAtEdge(t *testing.T) {
	tests := []struct {
		name    string
		pos     core.Vec
		vel     core.Vec
		wantVel core.Vec
	}{
		{"top edge exactly", core.V(50, 1), core.V(2, -3), core.V(2, 3)},
		{"bottom edge exactly", core.V(50, 99), core.V(2, 3), core.V(2, -3)},
		{"left edge exactly", core.V(1, 50), core.V(-2, 3), core.V(2, 3)},
		{"right edge past", core.V(99.5, 50), core.V(2, 3), core.V(-2, 3)},
		{"moving away keeps velocity", core.V(50, 1), core.V(2, 3), core.V(2, 3)},
		{"inside untouched", core.V(50, 50), core.V(2, -3), core.V(2, -3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(AllEdges(EdgeReflect))
			id := w.Spawn(KindProjectile, tc.pos, tc.vel, Radius(1))

			if events := w.ResolveBounds(); len(events) != 0 {
				t.Errorf("reflect should not emit events, got %v", events)
			}
			e, _ := w.Get(id)
			if e.Vel != tc.wantVel {
				t.Errorf("velocity = %v, expected %v", e.Vel, tc.wantVel)
			}
			b := e.Box()
			if b.Left() < 0 || b.Right() > core.FieldSize || b.Top() < 0 || b.Bottom() > core.FieldSize {
				t.Errorf("entity left the field: %+v", b)
			}
		})
	}
}

func TestClampAtEdge(t *testing.T) {
	w := NewWorld(AllEdges(EdgeClamp))
	id := w.Spawn(KindPlayer, core.V(-3, 50), core.V(-10, 4), Size(10, 2))

	w.ResolveBounds()

	e, _ := w.Get(id)
	if e.Pos.X != 5 {
		t.Errorf("x = %v, expected 5", e.Pos.X)
	}
	if e.Vel != core.V(0, 4) {
		t.Errorf("velocity = %v, expected (0, 4)", e.Vel)
	}
}

func TestWrap(t *testing.T) {
	w := NewWorld(AllEdges(EdgeWrap))
	a := w.Spawn(KindPlayer, core.V(101, 50), core.V(1, 0), Size(5, 5))
	b := w.Spawn(KindPlayer, core.V(50, -2), core.V(0, -1), Size(5, 5))

	w.ResolveBounds()

	ea, _ := w.Get(a)
	if ea.Pos != core.V(1, 50) {
		t.Errorf("wrapped right to %v, expected (1, 50)", ea.Pos)
	}
	eb, _ := w.Get(b)
	if eb.Pos != core.V(50, 98) {
		t.Errorf("wrapped top to %v, expected (50, 98)", eb.Pos)
	}
}

func TestRemoveAndPenalize(t *testing.T) {
	edges := AllEdges(EdgeReflect).With(SideBottom, EdgeRemovePenalize).With(SideLeft, EdgeRemove)
	w := NewWorld(edges)

	ball := w.Spawn(KindProjectile, core.V(50, 102), core.V(0, 5), Radius(1), WithTag("ball"))
	partly := w.Spawn(KindProjectile, core.V(50, 100), core.V(0, 5), Radius(1))
	scrolled := w.Spawn(KindObstacle, core.V(-3, 50), core.V(-5, 0), Size(4, 4), WithEdges(Edges{EdgeRemove}))

	events := w.ResolveBounds()

	if len(events) != 1 {
		t.Fatalf("expected 1 fall event, got %d", len(events))
	}
	ev := events[0]
	if ev.Kind != EventFall || ev.A != ball || ev.Side != SideBottom || ev.Tag != "ball" {
		t.Errorf("unexpected event %+v", ev)
	}
	if _, ok := w.Get(ball); ok {
		t.Error("fallen ball should be removed")
	}
	if _, ok := w.Get(partly); !ok {
		t.Error("partly visible entity should stay")
	}
	if _, ok := w.Get(scrolled); ok {
		t.Error("scrolled obstacle should be removed")
	}
}

func TestRemainingAndSweep(t *testing.T) {
	w := NewWorld(AllEdges(EdgeNone))
	for i := 0; i < 5; i++ {
		w.Spawn(KindObstacle, core.V(float64(10*i), 10), core.Vec{}, Size(8, 3), Breakable())
	}
	w.Spawn(KindObstacle, core.V(50, 50), core.Vec{}, Size(8, 3))

	if got := w.Remaining(); got != 5 {
		t.Fatalf("Remaining() = %d, expected 5", got)
	}
	w.Remove(2)
	w.Remove(3)
	w.Sweep()

	if got := w.Remaining(); got != 3 {
		t.Errorf("Remaining() after removal = %d, expected 3", got)
	}
	if got := w.Count(KindObstacle); got != 4 {
		t.Errorf("Count(obstacle) = %d, expected 4", got)
	}
	if len(w.entities) != 4 {
		t.Errorf("Sweep should drop dead entities, %d stored", len(w.entities))
	}
}
