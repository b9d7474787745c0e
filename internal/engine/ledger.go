package engine

import (
	"context"
	"fmt"
	"time"
)

// ProfileStore is the external token balance owner.
type ProfileStore interface {
	AddTokens(ctx context.Context, n int) error
	// UseTokens deducts n if the balance allows it and reports whether it did.
	UseTokens(ctx context.Context, n int) (bool, error)
	Balance(ctx context.Context) (int, error)
}

// SettlementRecorder archives settled outcomes. Optional.
type SettlementRecorder interface {
	RecordSettlement(ctx context.Context, out RewardOutcome) error
}

// RewardTable is a variant's base payout.
type RewardTable struct {
	Win           int // Tokens for a win at level 1
	Lose          int // Consolation tokens for a loss (may be 0)
	PerLevel      int // Extra win tokens for each level above 1
	ScorePerToken int // One bonus win token per this many points; 0 disables
}

// Delta computes the token delta for a verdict at a level with a score.
func (t RewardTable) Delta(verdict State, level, score int) int {
	if verdict != StateWon {
		return max(t.Lose, 0)
	}
	delta := t.Win + t.PerLevel*(max(level, 1)-1)
	if t.ScorePerToken > 0 {
		delta += score / t.ScorePerToken
	}
	return max(delta, 0)
}

// RewardOutcome is produced exactly once when a session settles.
type RewardOutcome struct {
	SessionID   string
	VariantID   string
	Level       int
	Score       int
	Verdict     State // StateWon or StateLost
	TokensDelta int
	Applied     bool // AddTokens succeeded (or nothing needed granting)
	Recorded    bool // The recorder archived it (or there is no recorder)
	SettledAt   time.Time
}

// Pending reports whether the grant or the archive record is still owed.
func (o RewardOutcome) Pending() bool {
	return !o.Applied || !o.Recorded
}

// Ledger converts terminal sessions into token grants.
type Ledger struct {
	store    ProfileStore
	recorder SettlementRecorder
}

// NewLedger creates a ledger over store. recorder may be nil.
func NewLedger(store ProfileStore, recorder SettlementRecorder) *Ledger {
	return &Ledger{store: store, recorder: recorder}
}

// Stake deducts an entry cost. Returns ErrInsufficientStake when the store
// refuses the deduction.
func (l *Ledger) Stake(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	ok, err := l.store.UseTokens(ctx, n)
	if err != nil {
		return fmt.Errorf("stake %d: %w", n, err)
	}
	if !ok {
		return fmt.Errorf("%w: need %d", ErrInsufficientStake, n)
	}
	return nil
}

// Compute builds the outcome for a terminal verdict without touching the store.
func (l *Ledger) Compute(d Descriptor, id string, level, score int, verdict State, at time.Time) RewardOutcome {
	return RewardOutcome{
		SessionID:   id,
		VariantID:   d.ID,
		Level:       level,
		Score:       score,
		Verdict:     verdict,
		TokensDelta: d.Rewards.Delta(verdict, level, score),
		SettledAt:   at,
	}
}

// Apply runs the steps still owed for out: the grant of out.TokensDelta,
// then the archive record. Steps already done are skipped and the delta is
// never recomputed. Either failure is reported as ErrRewardSettlementFailed.
func (l *Ledger) Apply(ctx context.Context, out RewardOutcome) (RewardOutcome, error) {
	if !out.Applied {
		if out.TokensDelta > 0 {
			if err := l.store.AddTokens(ctx, out.TokensDelta); err != nil {
				return out, fmt.Errorf("%w: session %s: %w", ErrRewardSettlementFailed, out.SessionID, err)
			}
		}
		out.Applied = true
	}

	if !out.Recorded {
		if l.recorder != nil {
			if err := l.recorder.RecordSettlement(ctx, out); err != nil {
				return out, fmt.Errorf("%w: record session %s: %w", ErrRewardSettlementFailed, out.SessionID, err)
			}
		}
		out.Recorded = true
	}
	return out, nil
}
