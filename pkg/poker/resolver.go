package poker

// ShowdownHand is one contender's revealed hand at showdown
type ShowdownHand struct {
	PlayerID  string    `json:"playerId"`
	Name      string    `json:"name"`
	HoleCards []Card    `json:"holeCards"`
	Value     HandValue `json:"value"`
	Rank      string    `json:"rank"`
}

// HandResult describes how a hand concluded: either a showdown
// comparison or everyone else folding.
type HandResult struct {
	TableID        string         `json:"tableId"`
	WinnerID       string         `json:"winnerId"`
	WinnerName     string         `json:"winnerName"`
	Pot            int64          `json:"pot"`
	Showdown       bool           `json:"showdown"`
	CommunityCards []Card         `json:"communityCards"`
	Hands          []ShowdownHand `json:"hands,omitempty"`
}

// resolveShowdown ranks every contender's 7 cards and awards the pot to
// the single best hand. Exact ties resolve to the first maximum in seat
// order; the pot is never split, and there are no side pots: the best
// hand takes the full pot regardless of how much its owner could cover.
func (g *GameState) resolveShowdown() *HandResult {
	contenders := g.contenders()

	hands := make([]ShowdownHand, 0, len(contenders))
	winner := -1
	var best HandValue
	for i, p := range contenders {
		cards := make([]Card, 0, 7)
		cards = append(cards, p.HoleCards...)
		cards = append(cards, g.CommunityCards...)
		value := EvaluateHand(cards)

		hands = append(hands, ShowdownHand{
			PlayerID:  p.ID,
			Name:      p.Name,
			HoleCards: p.HoleCards,
			Value:     value,
			Rank:      value.Category.String(),
		})

		if winner < 0 || CompareHands(value, best) > 0 {
			winner = i
			best = value
		}
	}

	won := contenders[winner]
	won.Chips += g.Pot

	return &HandResult{
		WinnerID:       won.ID,
		WinnerName:     won.Name,
		Pot:            g.Pot,
		Showdown:       true,
		CommunityCards: g.CommunityCards,
		Hands:          hands,
	}
}

// resolveFoldOut awards the pot to the single remaining contender
// without evaluating any hands.
func (g *GameState) resolveFoldOut() *HandResult {
	won := g.contenders()[0]
	won.Chips += g.Pot

	return &HandResult{
		WinnerID:       won.ID,
		WinnerName:     won.Name,
		Pot:            g.Pot,
		Showdown:       false,
		CommunityCards: g.CommunityCards,
	}
}
