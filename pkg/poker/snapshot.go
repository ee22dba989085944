package poker

// PublicPlayer is one seat's state as visible to a particular viewer.
// HoleCards carries the player's own cards only for the viewer's seat,
// or for everyone once the hand reaches showdown.
type PublicPlayer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Chips      int64  `json:"chips"`
	HoleCards  []Card `json:"holeCards,omitempty"`
	Folded     bool   `json:"folded"`
	AllIn      bool   `json:"allIn"`
	BetAmount  int64  `json:"betAmount"`
	LastAction string `json:"lastAction,omitempty"`
}

// PublicGameState is a viewer-specific projection of a table's hand
type PublicGameState struct {
	TableID            string         `json:"tableId"`
	Stage              Stage          `json:"stage"`
	CommunityCards     []Card         `json:"communityCards"`
	Pot                int64          `json:"pot"`
	CurrentPlayerIndex int            `json:"currentPlayerIndex"`
	BigBlind           int64          `json:"bigBlind"`
	Players            []PublicPlayer `json:"players"`
}

// TableInfo is the lobby summary of one table
type TableInfo struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Players        []string `json:"players"`
	AvailableSpots int      `json:"availableSpots"`
}

// Snapshot returns the table's game state as visible to viewerID. The
// projection masks every other player's hole cards until showdown;
// viewerID need not belong to any seated player.
func (t *Table) Snapshot(viewerID string) PublicGameState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	g := t.game
	if g == nil {
		g = newWaitingState(t.seats, t.cfg.BigBlind)
	}

	players := make([]PublicPlayer, len(g.Players))
	for i, p := range g.Players {
		pub := PublicPlayer{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			BetAmount:  p.BetAmount,
			LastAction: p.LastAction,
		}
		if p.ID == viewerID || g.Stage == StageShowdown {
			pub.HoleCards = p.HoleCards
		}
		players[i] = pub
	}

	community := g.CommunityCards
	if community == nil {
		community = []Card{}
	}

	return PublicGameState{
		TableID:            t.cfg.ID,
		Stage:              g.Stage,
		CommunityCards:     community,
		Pot:                g.Pot,
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		BigBlind:           g.BigBlind,
		Players:            players,
	}
}

// Info returns the lobby summary for this table
func (t *Table) Info() TableInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, len(t.seats))
	for i, p := range t.seats {
		names[i] = p.Name
	}
	return TableInfo{
		ID:             t.cfg.ID,
		Name:           t.Name(),
		Players:        names,
		AvailableSpots: t.cfg.MaxPlayers - len(t.seats),
	}
}
