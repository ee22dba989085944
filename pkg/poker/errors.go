package poker

import "errors"

// Validation failures reject at the point of the call and cause no state
// mutation.
var (
	// ErrTableFull is returned when a join would exceed table capacity.
	ErrTableFull = errors.New("poker: table is full")

	// ErrDuplicateName is returned when the display name is already taken
	// by a seated player or spectator at the table.
	ErrDuplicateName = errors.New("poker: display name already in use at table")

	// ErrNoChips is returned when joining with a non-positive buy-in.
	ErrNoChips = errors.New("poker: buy-in must be positive")

	// ErrNotEnoughPlayers is returned when a hand start requires at least
	// two seated players.
	ErrNotEnoughPlayers = errors.New("poker: need at least 2 players to start a hand")

	// ErrHandInProgress is returned when a hand start is requested while a
	// hand is already running.
	ErrHandInProgress = errors.New("poker: hand already in progress")

	// ErrNotYourTurn is returned when an action is submitted by anyone but
	// the current turn holder.
	ErrNotYourTurn = errors.New("poker: not your turn to act")

	// ErrInsufficientChips is returned when a bet exceeds the player's
	// stack. Short calls and raises are not rejected; they convert to
	// all-in instead.
	ErrInsufficientChips = errors.New("poker: insufficient chips")

	// ErrDeckExhausted is returned when drawing from an empty deck.
	// Unreachable while table capacity stays at 8.
	ErrDeckExhausted = errors.New("poker: deck exhausted")

	// ErrPlayerNotFound is returned when the player id is unknown at the
	// table.
	ErrPlayerNotFound = errors.New("poker: player not found at table")
)
