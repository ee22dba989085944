package poker

// Player represents one seat's state. The same struct serves two roles:
// the table-level seat (join order, live chip balance between hands) and
// the per-hand snapshot inside a GameState. Hand snapshots are copies;
// seat balances are synced back when the hand resolves.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Chips     int64  `json:"chips"`
	HoleCards []Card `json:"holeCards,omitempty"`

	Folded     bool   `json:"folded"`
	AllIn      bool   `json:"allIn"`
	BetAmount  int64  `json:"betAmount"`
	LastAction string `json:"lastAction"`
}

// NewPlayer creates a player with the given starting chips
func NewPlayer(id, name string, chips int64) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Chips: chips,
	}
}

// forHand returns a fresh per-hand copy of the seat, carrying the current
// chip balance and cleared hand state.
func (p *Player) forHand() *Player {
	return &Player{
		ID:        p.ID,
		Name:      p.Name,
		Chips:     p.Chips,
		HoleCards: make([]Card, 0, 2),
	}
}

// canAct reports whether the player can still take a betting action this
// hand.
func (p *Player) canAct() bool {
	return !p.Folded && !p.AllIn
}
