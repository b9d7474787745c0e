package engine

import "github.com/vovakirdan/arcade-engine/internal/core"

// EntityID identifies an entity within one session. IDs are never reused.
type EntityID int

// Kind classifies an entity for collision resolution.
type Kind int

const (
	KindPlayer Kind = iota
	KindObstacle
	KindCollectible
	KindProjectile
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	case KindCollectible:
		return "collectible"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Bounds is the collision size of an entity. Circles use W as the diameter.
type Bounds struct {
	W, H   float64
	Circle bool
}

// Size returns rectangular bounds.
func Size(w, h float64) Bounds {
	return Bounds{W: w, H: h}
}

// Radius returns circular bounds.
func Radius(r float64) Bounds {
	return Bounds{W: 2 * r, H: 2 * r, Circle: true}
}

// Side names a playfield edge.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// String returns the edge name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Edge is the boundary policy applied when an entity reaches a playfield edge.
type Edge int

const (
	EdgeNone           Edge = iota // Ignore the edge
	EdgeReflect                    // Bounce: flip the normal velocity component
	EdgeClamp                      // Stop at the edge
	EdgeWrap                       // Teleport to the opposite edge
	EdgeRemove                     // Remove once fully outside
	EdgeRemovePenalize             // Remove once fully outside and emit EventFall
)

// Edges holds one policy per side, indexed by Side.
type Edges [4]Edge

// AllEdges applies the same policy to every side.
func AllEdges(e Edge) Edges {
	return Edges{e, e, e, e}
}

// With returns a copy with one side replaced.
func (e Edges) With(side Side, policy Edge) Edges {
	e[side] = policy
	return e
}

// Entity is a positioned actor in the playfield.
type Entity struct {
	ID     EntityID
	Kind   Kind
	Tag    string // Variant subtype ("paddle", "brick", "card", ...)
	Pos    core.Vec
	Vel    core.Vec // Game units per second
	Bounds Bounds
	Alive  bool
	Edges  Edges

	Lethal     bool // Damages a player on contact
	Breakable  bool // Consumed by projectiles; counts toward Remaining
	Reflective bool // Projectile bounces instead of being consumed
	Gravity    bool // Integrate applies the variant's gravity

	Points int  // Score awarded when consumed (0 uses the rules table)
	Value  int  // Variant payload: card symbol, tile value
	Hidden bool // Rendered face-down
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.Box {
	return core.Box{Center: e.Pos, W: e.Bounds.W, H: e.Bounds.H}
}

// Overlaps reports whether two entities intersect using their shapes.
func (e *Entity) Overlaps(o *Entity) bool {
	switch {
	case e.Bounds.Circle && o.Bounds.Circle:
		return core.CirclesOverlap(e.Pos, e.Bounds.W/2, o.Pos, o.Bounds.W/2)
	case e.Bounds.Circle:
		return core.CircleBoxOverlap(e.Pos, e.Bounds.W/2, o.Box())
	case o.Bounds.Circle:
		return core.CircleBoxOverlap(o.Pos, o.Bounds.W/2, e.Box())
	default:
		return e.Box().Intersects(o.Box())
	}
}

// SpawnOption customises an entity at spawn time.
type SpawnOption func(*Entity)

// WithTag sets the variant subtype tag.
func WithTag(tag string) SpawnOption {
	return func(e *Entity) { e.Tag = tag }
}

// WithEdges overrides the world's default edge policy.
func WithEdges(edges Edges) SpawnOption {
	return func(e *Entity) { e.Edges = edges }
}

// WithPoints sets the score awarded when the entity is consumed.
func WithPoints(n int) SpawnOption {
	return func(e *Entity) { e.Points = n }
}

// WithValue sets the variant payload.
func WithValue(v int) SpawnOption {
	return func(e *Entity) { e.Value = v }
}

// Lethal marks an obstacle as damaging.
func Lethal() SpawnOption {
	return func(e *Entity) { e.Lethal = true }
}

// Breakable marks an obstacle as consumable by projectiles.
func Breakable() SpawnOption {
	return func(e *Entity) { e.Breakable = true }
}

// Reflective makes a projectile bounce off obstacles.
func Reflective() SpawnOption {
	return func(e *Entity) { e.Reflective = true }
}

// Falling subjects the entity to gravity.
func Falling() SpawnOption {
	return func(e *Entity) { e.Gravity = true }
}

// Hidden spawns the entity face-down.
func Hidden() SpawnOption {
	return func(e *Entity) { e.Hidden = true }
}
