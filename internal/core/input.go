package core

import "time"

// IntentKind is a semantic player intent, abstracted from physical key presses
// or pointer events. Intents are queued by UI shells and consumed at the start
// of the next simulation tick.
type IntentKind int

const (
	IntentNone   IntentKind = iota
	IntentLeft              // A, Left arrow - move left / slide left
	IntentRight             // D, Right arrow - move right / slide right
	IntentUp                // W, Up arrow - move up / slide up
	IntentDown              // S, Down arrow - move down / slide down
	IntentJump              // Space - jump, flap, launch
	IntentSelect            // Enter or click - select a tile by index
	IntentPoint             // Pointer - move the player toward a game-space point
	IntentBet               // +/- - change the wager for the next round
)

// String returns a human-readable name for the intent.
func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "None"
	case IntentLeft:
		return "Left"
	case IntentRight:
		return "Right"
	case IntentUp:
		return "Up"
	case IntentDown:
		return "Down"
	case IntentJump:
		return "Jump"
	case IntentSelect:
		return "Select"
	case IntentPoint:
		return "Point"
	case IntentBet:
		return "Bet"
	default:
		return "Unknown"
	}
}

// Intent is a single queued player intent.
type Intent struct {
	Kind   IntentKind
	Index  int // Tile index for IntentSelect
	Target Vec // Game-space point for IntentPoint
	Amount int // Wager delta for IntentBet
}

// Move creates a directional intent.
func Move(kind IntentKind) Intent {
	return Intent{Kind: kind}
}

// Jump creates a jump intent.
func Jump() Intent {
	return Intent{Kind: IntentJump}
}

// Select creates a tile selection intent.
func Select(index int) Intent {
	return Intent{Kind: IntentSelect, Index: index}
}

// PointAt creates a pointer intent aimed at a game-space point.
func PointAt(x, y float64) Intent {
	return Intent{Kind: IntentPoint, Target: Vec{X: x, Y: y}}
}

// Intents is the batch of intents drained for one tick.
type Intents []Intent

// Has returns true if an intent of the given kind is in the batch.
func (in Intents) Has(kind IntentKind) bool {
	for _, i := range in {
		if i.Kind == kind {
			return true
		}
	}
	return false
}

// Last returns the most recent intent of the given kind.
func (in Intents) Last(kind IntentKind) (Intent, bool) {
	for i := len(in) - 1; i >= 0; i-- {
		if in[i].Kind == kind {
			return in[i], true
		}
	}
	return Intent{}, false
}

// Direction returns the most recent directional intent, or IntentNone.
func (in Intents) Direction() IntentKind {
	for i := len(in) - 1; i >= 0; i-- {
		switch in[i].Kind {
		case IntentLeft, IntentRight, IntentUp, IntentDown:
			return in[i].Kind
		}
	}
	return IntentNone
}

// Hold turns discrete directional presses into a held direction. Terminals
// report key repeats but no releases, so a direction lapses once no press
// arrives within Window.
type Hold struct {
	Window time.Duration
	dir    IntentKind
	left   time.Duration
}

// Update feeds one tick of intents and returns the held direction.
func (h *Hold) Update(in Intents, dt time.Duration) IntentKind {
	if d := in.Direction(); d != IntentNone {
		h.dir, h.left = d, h.Window
		return h.dir
	}
	h.left -= dt
	if h.left <= 0 {
		h.dir, h.left = IntentNone, 0
	}
	return h.dir
}

// Release clears the held direction.
func (h *Hold) Release() {
	h.dir, h.left = IntentNone, 0
}
