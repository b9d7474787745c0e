package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/core"
)

// Physics holds the level-dependent constants of a variant. Fields a variant
// does not use stay zero.
type Physics struct {
	Gravity      float64 // Units per second squared for falling entities
	MaxFall      float64 // Cap on downward speed; 0 disables
	Speed        float64 // Projectile or scroll speed, units per second
	PlayerSpeed  float64 // Player movement speed, units per second
	MaxSpin      float64 // Paddle spin at the paddle extreme
	JumpVelocity float64 // Initial vertical velocity of a jump (negative is up)
	Jitter       float64 // AI error amplitude in units

	SpawnEvery time.Duration // Obstacle spawn interval
	StepEvery  time.Duration // Grid step interval
	TimeLimit  time.Duration // Session time limit; 0 disables
	FlipDelay  time.Duration // Delay before mismatched cards turn back

	Count  int // Variant-defined entity count (pairs, gap size, ...)
	Rows   int
	Cols   int
	Budget int // Starting lives or moves
	Target int // Score, distance, or tile target

	Edges Edges // Default edge policy for spawned entities
}

// Play is the per-session behaviour of a variant. The engine calls it only
// from inside a tick (or at session start) while holding the session lock.
type Play interface {
	// Spawn creates the initial entities for the level.
	Spawn(w *World)
	// Step applies drained intents and variant timers before integration.
	// Events returned here are scored along with collision events.
	Step(w *World, in core.Intents, dt time.Duration) []Event
	// After observes the tick's events and progress once collisions have
	// been scored. It may reposition entities (e.g. respawn a ball).
	After(w *World, events []Event, p Progress)
}

// Controls is a short help line for a variant.
type Controls struct {
	Keys        string
	Description string
}

// Descriptor is the immutable registration of a game variant.
type Descriptor struct {
	ID      string
	Title   string
	Summary string

	MaxLevel       int
	Stake          int  // Entry cost deducted at start; 0 means free
	ChainInSession bool // Win at level < MaxLevel advances inside the same session
	CarryScore     bool // NextLevel keeps the previous score

	Controls []Controls
	Rewards  RewardTable

	Physics func(level int) Physics
	Rules   func(level int, ph Physics) Rules
	NewPlay func(level int, ph Physics, rng *rand.Rand) Play
}

// ErrInvalidDescriptor is returned by Validate.
var ErrInvalidDescriptor = errors.New("engine: invalid variant descriptor")

// Validate checks that a descriptor can drive sessions.
func (d Descriptor) Validate() error {
	switch {
	case d.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidDescriptor)
	case d.MaxLevel < 1:
		return fmt.Errorf("%w: %s: max level %d", ErrInvalidDescriptor, d.ID, d.MaxLevel)
	case d.Stake < 0:
		return fmt.Errorf("%w: %s: negative stake", ErrInvalidDescriptor, d.ID)
	case d.Physics == nil || d.Rules == nil || d.NewPlay == nil:
		return fmt.Errorf("%w: %s: missing physics, rules or play factory", ErrInvalidDescriptor, d.ID)
	}
	return nil
}

// ClampLevel bounds level to 1..MaxLevel.
func (d Descriptor) ClampLevel(level int) int {
	return core.Clamp(level, 1, max(d.MaxLevel, 1))
}

// NopPlay can be embedded by variants that do not need every hook.
type NopPlay struct{}

// Spawn does nothing.
func (NopPlay) Spawn(*World) {}

// Step does nothing.
func (NopPlay) Step(*World, core.Intents, time.Duration) []Event { return nil }

// After does nothing.
func (NopPlay) After(*World, []Event, Progress) {}
