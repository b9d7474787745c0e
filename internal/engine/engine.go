// Package engine is the variant-agnostic core shared by every arcade game:
// the ticker, the entity store, collision resolution, scoring, the session
// state machine and reward settlement.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-engine/internal/core"
)

// Catalog resolves variant IDs to descriptors.
type Catalog interface {
	Lookup(id string) (Descriptor, bool)
}

// Stats counts finished sessions per variant.
type Stats struct {
	Attempts  int // Sessions that reached won or lost
	Wins      int
	Losses    int
	Abandoned int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRecorder archives every settlement.
func WithRecorder(r SettlementRecorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithClock overrides the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithConfig sets the tick cadence and delta clamp.
func WithConfig(cfg core.RuntimeConfig) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// Engine runs sessions for one player. At most one session is active at a time.
type Engine struct {
	mu sync.Mutex

	catalog  Catalog
	store    ProfileStore
	recorder SettlementRecorder
	ledger   *Ledger
	logger   *log.Logger
	now      func() time.Time
	cfg      core.RuntimeConfig

	active *Session
	ticker *Ticker
	stats  map[string]Stats
}

// New creates an engine over a variant catalog and a profile store.
func New(catalog Catalog, store ProfileStore, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		store:   store,
		now:     time.Now,
		cfg:     core.DefaultConfig(),
		stats:   make(map[string]Stats),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	e.ledger = NewLedger(store, e.recorder)
	return e
}

// Logger returns the engine logger.
func (e *Engine) Logger() *log.Logger {
	return e.logger
}

// Config returns the runtime configuration.
func (e *Engine) Config() core.RuntimeConfig {
	return e.cfg
}

// Balance returns the player's token balance.
func (e *Engine) Balance(ctx context.Context) (int, error) {
	return e.store.Balance(ctx)
}

// Active returns the running or paused session, if any.
func (e *Engine) Active() (*Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active, e.active != nil
}

// Stats returns counters for a variant.
func (e *Engine) Stats(variantID string) Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats[variantID]
}

// NewSession builds an idle session. Nothing is spawned and no stake is taken.
func (e *Engine) NewSession(variantID string, opts ...SessionOption) (*Session, error) {
	d, ok := e.catalog.Lookup(variantID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variantID)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	s := newSession(d, o)
	e.logger.Debug("session created", "session", s.id, "variant", d.ID, "level", s.progress.Level, "seed", s.seed)
	return s, nil
}

// Start moves an idle session to running: the stake is deducted and the
// level's entities are spawned. On ErrInsufficientStake the session stays idle.
func (e *Engine) Start(ctx context.Context, s *Session) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil && e.active != s {
		return fmt.Errorf("%w: %s", ErrSessionAlreadyActive, e.active.id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return e.invalid(s, "start")
	}
	if err := e.ledger.Stake(ctx, s.desc.Stake); err != nil {
		e.logger.Info("stake refused", "session", s.id, "variant", s.desc.ID, "stake", s.desc.Stake, "err", err)
		return err
	}

	s.spawn()
	s.state = StateRunning
	s.startedAt = e.now()
	e.active = s
	e.logger.Debug("session started", "session", s.id, "variant", s.desc.ID, "stake", s.desc.Stake, "entities", s.world.Len())
	return nil
}

// CreateSession builds and starts a session in one call.
func (e *Engine) CreateSession(ctx context.Context, variantID string, opts ...SessionOption) (*Session, error) {
	s, err := e.NewSession(variantID, opts...)
	if err != nil {
		return nil, err
	}
	if err := e.Start(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// HandleInput queues an intent for the next tick. Only running sessions
// accept input; the queue keeps the most recent intents.
func (e *Engine) HandleInput(s *Session, in core.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return fmt.Errorf("%w: input in %s", ErrInvalidTransition, s.state)
	}
	s.enqueue(in)
	return nil
}

// Tick advances a running session by dt (clamped to the configured maximum).
// Ticks on a paused session are dropped. Ticks on any other state are
// rejected with ErrInvalidTransition and change nothing.
// A terminal verdict settles the session before Tick returns; a failed grant
// is reported as ErrRewardSettlementFailed.
func (e *Engine) Tick(ctx context.Context, s *Session, dt time.Duration) error {
	e.mu.Lock()
	s.mu.Lock()

	switch s.state {
	case StateRunning:
	case StatePaused:
		s.mu.Unlock()
		e.mu.Unlock()
		return nil
	default:
		err := e.invalid(s, "tick")
		s.mu.Unlock()
		e.mu.Unlock()
		return err
	}

	dt = e.clampDelta(dt)
	before := s.progress.Level
	switch s.step(dt) {
	case VerdictLevelUp:
		e.logger.Debug("level up", "session", s.id, "from", before, "to", s.progress.Level, "score", s.progress.Score)
	case VerdictWon:
		s.state, s.verdict = StateWon, StateWon
	case VerdictLost:
		s.state, s.verdict = StateLost, StateLost
	}

	if !s.state.Terminal() {
		s.mu.Unlock()
		e.mu.Unlock()
		return nil
	}

	e.finish(s)
	e.settle(s)
	s.mu.Unlock()
	e.mu.Unlock()

	_, err := e.payout(ctx, s)
	return err
}

// Pause freezes a running session.
func (e *Engine) Pause(s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return e.invalid(s, "pause")
	}
	s.state = StatePaused
	e.logger.Debug("session paused", "session", s.id)
	return nil
}

// Resume continues a paused session. The engine's own ticker, if running,
// measures the next delta from now.
func (e *Engine) Resume(s *Session) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePaused {
		return e.invalid(s, "resume")
	}
	s.state = StateRunning
	if e.ticker != nil && e.active == s {
		e.ticker.Rebase(e.now())
	}
	e.logger.Debug("session resumed", "session", s.id)
	return nil
}

// Abandon discards a session without settlement. A deducted stake is
// forfeited and no outcome is ever produced.
func (e *Engine) Abandon(s *Session) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Done() {
		return e.invalid(s, "abandon")
	}
	wasActive := s.state.Active()
	s.state = StateAbandoned
	s.intents = nil
	s.callbacks = nil
	if e.active == s {
		e.active = nil
	}
	if wasActive {
		st := e.stats[s.desc.ID]
		st.Abandoned++
		e.stats[s.desc.ID] = st
	}
	e.logger.Info("session abandoned", "session", s.id, "variant", s.desc.ID, "score", s.progress.Score, "forfeit", wasActive && s.desc.Stake > 0)
	return nil
}

// Settle returns the session's outcome. Sessions settle automatically on
// their terminal tick, so this only reads the cached outcome, waiting for a
// grant in progress; calling it any number of times never grants again.
func (e *Engine) Settle(ctx context.Context, s *Session) (RewardOutcome, error) {
	e.mu.Lock()
	s.mu.Lock()

	if s.outcome != nil {
		s.mu.Unlock()
		e.mu.Unlock()
		s.grantMu.Lock()
		defer s.grantMu.Unlock()
		out, _ := s.Outcome()
		return out, nil
	}
	if s.state != StateWon && s.state != StateLost {
		err := e.invalid(s, "settle")
		s.mu.Unlock()
		e.mu.Unlock()
		return RewardOutcome{}, err
	}

	e.settle(s)
	s.mu.Unlock()
	e.mu.Unlock()
	return e.payout(ctx, s)
}

// RetryGrant runs whatever settlement step failed: the token grant, the
// archive record, or both. The token delta is the one computed at
// settlement; nothing is recomputed and nothing is granted twice.
func (e *Engine) RetryGrant(ctx context.Context, s *Session) (RewardOutcome, error) {
	s.grantMu.Lock()
	defer s.grantMu.Unlock()

	s.mu.Lock()
	if s.outcome == nil {
		err := e.invalid(s, "retry grant")
		s.mu.Unlock()
		return RewardOutcome{}, err
	}
	s.mu.Unlock()

	out, err := e.grant(ctx, s)
	if err != nil {
		e.logger.Error("grant retry failed", "session", s.id, "tokens", out.TokensDelta, "applied", out.Applied, "err", err)
		return out, err
	}
	e.logger.Info("grant retried", "session", s.id, "tokens", out.TokensDelta)
	return out, nil
}

// NextLevel starts a new session one level above a won, settled session.
// The score carries over when the variant accumulates score across levels,
// and the owner always does.
func (e *Engine) NextLevel(ctx context.Context, prev *Session) (*Session, error) {
	prev.mu.Lock()
	state, verdict := prev.state, prev.verdict
	level, score, seed := prev.progress.Level, prev.progress.Score, prev.seed
	d := prev.desc
	prev.mu.Unlock()

	if state != StateSettled || verdict != StateWon || level >= d.MaxLevel {
		return nil, fmt.Errorf("%w: %s at level %d is %s", ErrNoNextLevel, d.ID, level, verdict)
	}

	opts := []SessionOption{WithLevel(level + 1), WithSeed(seed + 1), WithOwner(prev.owner)}
	if d.CarryScore {
		opts = append(opts, WithCarry(score))
	}
	return e.CreateSession(ctx, d.ID, opts...)
}

// Run drives a started session with the engine's ticker until it settles,
// is abandoned, or ctx is cancelled. Pause and Resume may be called while
// Run is in progress.
func (e *Engine) Run(ctx context.Context, s *Session) error {
	t := NewTicker(e.cfg.FrameInterval(), e.cfg.MaxDelta())
	e.mu.Lock()
	e.ticker = t
	e.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var runErr error
	t.Start(ctx, func(dt time.Duration) {
		if err := e.Tick(ctx, s, dt); err != nil {
			if !errors.Is(err, ErrInvalidTransition) {
				runErr = err
			}
			cancel()
			return
		}
		if s.State().Done() {
			cancel()
		}
	})
	<-ctx.Done()
	t.Stop()

	e.mu.Lock()
	if e.ticker == t {
		e.ticker = nil
	}
	e.mu.Unlock()
	return runErr
}

func (e *Engine) clampDelta(dt time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	return min(dt, e.cfg.MaxDelta())
}

// finish records a terminal verdict. Caller holds e.mu and s.mu.
func (e *Engine) finish(s *Session) {
	if e.active == s {
		e.active = nil
	}
	st := e.stats[s.desc.ID]
	st.Attempts++
	if s.verdict == StateWon {
		st.Wins++
	} else {
		st.Losses++
	}
	e.stats[s.desc.ID] = st
	e.logger.Info("session finished", "session", s.id, "variant", s.desc.ID, "verdict", s.verdict, "level", s.progress.Level, "score", s.progress.Score)
}

// settle fixes the outcome and marks the session settled. No store is
// called here. Caller holds e.mu and s.mu and must call payout after
// unlocking.
func (e *Engine) settle(s *Session) {
	out := e.ledger.Compute(s.desc, s.id, s.progress.Level, s.progress.Score, s.verdict, e.now())
	s.outcome = &out
	s.state = StateSettled
	s.granting = true
}

// payout makes the first grant attempt for a freshly settled session and
// then hands the outcome to the terminal callbacks, whatever the result.
// No engine or session lock may be held.
func (e *Engine) payout(ctx context.Context, s *Session) (RewardOutcome, error) {
	s.grantMu.Lock()
	out, err := e.grant(ctx, s)
	s.mu.Lock()
	s.granting = false
	callbacks := s.callbacks
	s.callbacks = nil
	s.mu.Unlock()
	s.grantMu.Unlock()

	if err != nil {
		e.logger.Error("settlement failed", "session", s.id, "tokens", out.TokensDelta, "applied", out.Applied, "err", err)
	} else {
		e.logger.Debug("session settled", "session", s.id, "tokens", out.TokensDelta)
	}
	for _, fn := range callbacks {
		fn(out)
	}
	return out, err
}

// grant runs the ledger steps still owed for s's outcome and stores the
// result. Caller holds s.grantMu only.
func (e *Engine) grant(ctx context.Context, s *Session) (RewardOutcome, error) {
	s.mu.Lock()
	out := *s.outcome
	s.mu.Unlock()
	if !out.Pending() {
		return out, nil
	}

	out, err := e.ledger.Apply(ctx, out)
	s.mu.Lock()
	*s.outcome = out
	s.mu.Unlock()
	return out, err
}

func (e *Engine) invalid(s *Session, op string) error {
	e.logger.Warn("invalid transition", "session", s.id, "op", op, "state", s.state)
	return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, op, s.state)
}
