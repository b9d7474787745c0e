package engine

import "errors"

var (
	// ErrInsufficientStake is returned when the entry stake exceeds the balance.
	// The session stays idle.
	ErrInsufficientStake = errors.New("engine: insufficient stake")

	// ErrSessionAlreadyActive is returned when a session is started while
	// another one is running or paused.
	ErrSessionAlreadyActive = errors.New("engine: session already active")

	// ErrInvalidTransition is returned when an operation does not apply to
	// the session's current state. It is never fatal.
	ErrInvalidTransition = errors.New("engine: invalid transition")

	// ErrRewardSettlementFailed wraps a profile store failure during
	// settlement. The session is settled regardless.
	ErrRewardSettlementFailed = errors.New("engine: reward settlement failed")

	// ErrUnknownVariant is returned for variant IDs missing from the catalog.
	ErrUnknownVariant = errors.New("engine: unknown variant")

	// ErrNoNextLevel is returned by NextLevel when the previous session
	// was not won or was already at the last level.
	ErrNoNextLevel = errors.New("engine: no next level")
)
