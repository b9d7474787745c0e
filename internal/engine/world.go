package engine

import (
	"time"

	"github.com/vovakirdan/arcade-engine/internal/core"
)

// World is the entity store for one session. It is only handed to variant
// hooks while a tick is being processed; everything else sees snapshots.
type World struct {
	entities []*Entity // Spawn order, which is also ID order
	index    map[EntityID]*Entity
	nextID   EntityID
	edges    Edges
}

// NewWorld creates an empty world whose spawns default to the given edges.
func NewWorld(defaults Edges) *World {
	return &World{
		index:  make(map[EntityID]*Entity),
		nextID: 1,
		edges:  defaults,
	}
}

// Spawn adds an entity and returns its ID.
func (w *World) Spawn(kind Kind, pos, vel core.Vec, b Bounds, opts ...SpawnOption) EntityID {
	e := &Entity{
		ID:     w.nextID,
		Kind:   kind,
		Pos:    pos,
		Vel:    vel,
		Bounds: b,
		Alive:  true,
		Edges:  w.edges,
	}
	for _, opt := range opts {
		opt(e)
	}
	w.nextID++
	w.entities = append(w.entities, e)
	w.index[e.ID] = e
	return e.ID
}

// Remove marks an entity dead. Returns false if it was not alive.
func (w *World) Remove(id EntityID) bool {
	e, ok := w.index[id]
	if !ok || !e.Alive {
		return false
	}
	e.Alive = false
	return true
}

// Get returns an alive entity by ID.
func (w *World) Get(id EntityID) (*Entity, bool) {
	e, ok := w.index[id]
	if !ok || !e.Alive {
		return nil, false
	}
	return e, true
}

// Each calls fn for every alive entity in spawn order.
func (w *World) Each(fn func(*Entity)) {
	for _, e := range w.entities {
		if e.Alive {
			fn(e)
		}
	}
}

// Tagged returns alive entities with the given tag in spawn order.
func (w *World) Tagged(tag string) []*Entity {
	var out []*Entity
	for _, e := range w.entities {
		if e.Alive && e.Tag == tag {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first alive entity with the given tag.
func (w *World) First(tag string) (*Entity, bool) {
	for _, e := range w.entities {
		if e.Alive && e.Tag == tag {
			return e, true
		}
	}
	return nil, false
}

// Count returns the number of alive entities of a kind.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, e := range w.entities {
		if e.Alive && e.Kind == kind {
			n++
		}
	}
	return n
}

// Remaining returns the number of alive breakable entities.
func (w *World) Remaining() int {
	n := 0
	for _, e := range w.entities {
		if e.Alive && e.Breakable {
			n++
		}
	}
	return n
}

// Integrate moves every alive entity by vel*dt, applying gravity first to
// entities that fall. maxFall caps downward speed when positive.
func (w *World) Integrate(dt time.Duration, gravity, maxFall float64) {
	secs := dt.Seconds()
	for _, e := range w.entities {
		if !e.Alive {
			continue
		}
		if e.Gravity {
			e.Vel.Y += gravity * secs
			if maxFall > 0 && e.Vel.Y > maxFall {
				e.Vel.Y = maxFall
			}
		}
		e.Pos = e.Pos.Add(e.Vel.Scale(secs))
	}
}

// ResolveBounds applies each entity's edge policy and returns EventFall for
// entities removed under EdgeRemovePenalize.
func (w *World) ResolveBounds() []Event {
	var events []Event
	for _, e := range w.entities {
		if !e.Alive {
			continue
		}
		for side := SideLeft; side <= SideBottom; side++ {
			if !e.Alive {
				break
			}
			if fell := applyEdge(e, side); fell {
				events = append(events, Event{Kind: EventFall, A: e.ID, Side: side, Tag: e.Tag})
			}
		}
	}
	return events
}

// applyEdge resolves one side for one entity. Returns true if the entity
// was removed with a penalty.
func applyEdge(e *Entity, side Side) bool {
	policy := e.Edges[side]
	if policy == EdgeNone {
		return false
	}

	b := e.Box()
	halfW, halfH := e.Bounds.W/2, e.Bounds.H/2

	// Distance past the edge (>= 0 means touching or beyond) and the
	// outward velocity component for this side.
	var past, outward, fullyOut float64
	switch side {
	case SideLeft:
		past, outward, fullyOut = -b.Left(), -e.Vel.X, -b.Right()
	case SideRight:
		past, outward, fullyOut = b.Right()-core.FieldSize, e.Vel.X, b.Left()-core.FieldSize
	case SideTop:
		past, outward, fullyOut = -b.Top(), -e.Vel.Y, -b.Bottom()
	case SideBottom:
		past, outward, fullyOut = b.Bottom()-core.FieldSize, e.Vel.Y, b.Top()-core.FieldSize
	}

	switch policy {
	case EdgeReflect:
		if past < 0 {
			return false
		}
		snapInside(e, side, halfW, halfH)
		if outward > 0 {
			flipNormal(e, side)
		}
	case EdgeClamp:
		if past <= 0 {
			return false
		}
		snapInside(e, side, halfW, halfH)
		if outward > 0 {
			stopNormal(e, side)
		}
	case EdgeWrap:
		switch side {
		case SideLeft:
			if e.Pos.X < 0 {
				e.Pos.X += core.FieldSize
			}
		case SideRight:
			if e.Pos.X >= core.FieldSize {
				e.Pos.X -= core.FieldSize
			}
		case SideTop:
			if e.Pos.Y < 0 {
				e.Pos.Y += core.FieldSize
			}
		case SideBottom:
			if e.Pos.Y >= core.FieldSize {
				e.Pos.Y -= core.FieldSize
			}
		}
	case EdgeRemove, EdgeRemovePenalize:
		if fullyOut < 0 {
			return false
		}
		e.Alive = false
		return policy == EdgeRemovePenalize
	}
	return false
}

func snapInside(e *Entity, side Side, halfW, halfH float64) {
	switch side {
	case SideLeft:
		e.Pos.X = halfW
	case SideRight:
		e.Pos.X = core.FieldSize - halfW
	case SideTop:
		e.Pos.Y = halfH
	case SideBottom:
		e.Pos.Y = core.FieldSize - halfH
	}
}

func flipNormal(e *Entity, side Side) {
	if side == SideLeft || side == SideRight {
		e.Vel.X = -e.Vel.X
		return
	}
	e.Vel.Y = -e.Vel.Y
}

func stopNormal(e *Entity, side Side) {
	if side == SideLeft || side == SideRight {
		e.Vel.X = 0
		return
	}
	e.Vel.Y = 0
}

// Sweep drops dead entities from storage.
func (w *World) Sweep() {
	alive := w.entities[:0]
	for _, e := range w.entities {
		if e.Alive {
			alive = append(alive, e)
			continue
		}
		delete(w.index, e.ID)
	}
	for i := len(alive); i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = alive
}

// Clear removes every entity and sets new spawn defaults. IDs keep increasing.
func (w *World) Clear(defaults Edges) {
	w.entities = nil
	w.index = make(map[EntityID]*Entity)
	w.edges = defaults
}

// Len returns the number of alive entities.
func (w *World) Len() int {
	n := 0
	for _, e := range w.entities {
		if e.Alive {
			n++
		}
	}
	return n
}
