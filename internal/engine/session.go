package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-engine/internal/core"
)

// State is the lifecycle state of a session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateWon
	StateLost
	StateSettled
	StateAbandoned
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	case StateSettled:
		return "settled"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further simulation can happen.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost || s == StateSettled
}

// Done reports whether the session has left play for good.
func (s State) Done() bool {
	return s.Terminal() || s == StateAbandoned
}

// Active reports whether the session holds the engine's active slot.
func (s State) Active() bool {
	return s == StateRunning || s == StatePaused
}

const (
	// DefaultSeed is used when a session is created without a seed.
	DefaultSeed int64 = 1

	maxQueuedIntents = 32
)

// SessionOption configures a new session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	level int
	seed  int64
	carry int
	owner string
}

// WithLevel starts the session at level (clamped to the variant's range).
func WithLevel(level int) SessionOption {
	return func(o *sessionOptions) { o.level = level }
}

// WithSeed sets the seed for spawn randomness and AI jitter.
func WithSeed(seed int64) SessionOption {
	return func(o *sessionOptions) { o.seed = seed }
}

// WithCarry starts the session with a score carried over from a previous level.
func WithCarry(score int) SessionOption {
	return func(o *sessionOptions) { o.carry = max(score, 0) }
}

// WithOwner tags the session with the connection or shell that started it.
func WithOwner(owner string) SessionOption {
	return func(o *sessionOptions) { o.owner = owner }
}

// Session is one play-through of a variant. All mutation goes through the
// Engine; the accessors are safe to call from any goroutine.
type Session struct {
	mu sync.Mutex

	id    string
	owner string
	desc  Descriptor
	seed  int64
	rng   *rand.Rand
	state State
	// verdict is StateWon or StateLost once the session is terminal.
	verdict State

	physics  Physics
	rules    Rules
	play     Play
	world    *World
	progress Progress
	intents  []core.Intent

	startedAt time.Time
	outcome   *RewardOutcome
	callbacks []func(RewardOutcome)

	// grantMu serialises ledger calls for the outcome. It is never taken
	// while the engine or session mutex is held.
	grantMu  sync.Mutex
	granting bool // The first grant attempt has not returned yet
}

func newSession(d Descriptor, opts sessionOptions) *Session {
	seed := opts.seed
	if seed == 0 {
		seed = DefaultSeed
	}
	level := d.ClampLevel(opts.level)
	ph := d.Physics(level)

	return &Session{
		id:      uuid.NewString(),
		owner:   opts.owner,
		desc:    d,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
		state:   StateIdle,
		physics: ph,
		rules:   d.Rules(level, ph),
		world:   NewWorld(ph.Edges),
		progress: Progress{
			Score:  opts.carry,
			Level:  level,
			Budget: ph.Budget,
		},
	}
}

// spawn creates the level's entities.
func (s *Session) spawn() {
	s.play = s.desc.NewPlay(s.progress.Level, s.physics, s.rng)
	s.play.Spawn(s.world)
}

// step runs one simulation tick. Caller holds s.mu and has checked the state.
func (s *Session) step(dt time.Duration) Verdict {
	in := core.Intents(s.intents)
	s.intents = nil

	events := s.play.Step(s.world, in, dt)
	s.world.Integrate(dt, s.physics.Gravity, s.physics.MaxFall)
	events = append(events, s.world.ResolveBounds()...)
	events = append(events, Resolve(s.world, s.physics.MaxSpin)...)

	p := s.progress
	p.Remaining = s.world.Remaining()
	p, verdict := s.rules.Evaluate(p, events, dt)
	s.progress = p

	s.play.After(s.world, events, p)
	s.world.Sweep()

	if verdict == VerdictWon && s.desc.ChainInSession && p.Level < s.desc.MaxLevel {
		s.advance()
		return VerdictLevelUp
	}
	return verdict
}

// advance regenerates the world at the next level, keeping score and elapsed time.
func (s *Session) advance() {
	level := s.progress.Level + 1
	s.physics = s.desc.Physics(level)
	s.rules = s.desc.Rules(level, s.physics)
	s.world.Clear(s.physics.Edges)
	s.progress = Progress{
		Score:   s.progress.Score,
		Level:   level,
		Budget:  s.physics.Budget,
		Moves:   s.progress.Moves,
		Elapsed: s.progress.Elapsed,
	}
	s.spawn()
}

func (s *Session) enqueue(in core.Intent) {
	if len(s.intents) >= maxQueuedIntents {
		s.intents = s.intents[1:]
	}
	s.intents = append(s.intents, in)
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Owner returns the tag given by WithOwner.
func (s *Session) Owner() string { return s.owner }

// VariantID returns the variant the session plays.
func (s *Session) VariantID() string { return s.desc.ID }

// Descriptor returns the variant descriptor.
func (s *Session) Descriptor() Descriptor { return s.desc }

// Seed returns the seed used for spawn randomness.
func (s *Session) Seed() int64 { return s.seed }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Verdict returns StateWon or StateLost for finished sessions, StateIdle otherwise.
func (s *Session) Verdict() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verdict
}

// Level returns the current level.
func (s *Session) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Level
}

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Score
}

// Budget returns the remaining lives or moves.
func (s *Session) Budget() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Budget
}

// Moves returns the number of moves spent.
func (s *Session) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Moves
}

// StartedAt returns when the session left idle.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// Elapsed returns simulated time. Paused time is not counted.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Elapsed
}

// Outcome returns the settlement outcome once the session is settled.
func (s *Session) Outcome() (RewardOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome == nil {
		return RewardOutcome{}, false
	}
	return *s.outcome, true
}

// OnTerminal registers fn to receive the outcome when settlement completes.
// If the session is already settled fn is called immediately. Abandoned
// sessions never call fn.
func (s *Session) OnTerminal(fn func(RewardOutcome)) {
	s.mu.Lock()
	if s.outcome == nil || s.granting {
		s.callbacks = append(s.callbacks, fn)
		s.mu.Unlock()
		return
	}
	out := *s.outcome
	s.mu.Unlock()
	fn(out)
}

// EntityView is a read-only copy of an entity for rendering.
type EntityView struct {
	ID     EntityID
	Kind   Kind
	Tag    string
	Box    core.Box
	Circle bool
	Value  int
	Hidden bool
}

// Snapshot is an immutable copy of a session taken between ticks.
type Snapshot struct {
	SessionID string
	VariantID string
	Title     string
	State     State
	Verdict   State
	Level     int
	MaxLevel  int
	Score     int
	Budget    int
	Moves     int
	Target    int
	Distance  float64
	Elapsed   time.Duration
	Entities  []EntityView
	Outcome   *RewardOutcome
}

// Snapshot copies the session state for presentation.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID: s.id,
		VariantID: s.desc.ID,
		Title:     s.desc.Title,
		State:     s.state,
		Verdict:   s.verdict,
		Level:     s.progress.Level,
		MaxLevel:  s.desc.MaxLevel,
		Score:     s.progress.Score,
		Budget:    s.progress.Budget,
		Moves:     s.progress.Moves,
		Target:    s.physics.Target,
		Distance:  s.progress.Distance,
		Elapsed:   s.progress.Elapsed,
		Entities:  make([]EntityView, 0, s.world.Len()),
	}
	s.world.Each(func(e *Entity) {
		snap.Entities = append(snap.Entities, EntityView{
			ID:     e.ID,
			Kind:   e.Kind,
			Tag:    e.Tag,
			Box:    e.Box(),
			Circle: e.Bounds.Circle,
			Value:  e.Value,
			Hidden: e.Hidden,
		})
	})
	if s.outcome != nil {
		out := *s.outcome
		snap.Outcome = &out
	}
	return snap
}
