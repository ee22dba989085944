package poker

import (
	"github.com/thoas/go-funk"
)

// Stage identifies where a hand is in its lifecycle. Stages are linear
// with no back-edges; WAITING is both the initial stage and the stage a
// table returns to after a hand concludes.
type Stage string

const (
	StageWaiting  Stage = "WAITING"
	StagePreFlop  Stage = "PRE-FLOP"
	StageFlop     Stage = "FLOP"
	StageTurn     Stage = "TURN"
	StageRiver    Stage = "RIVER"
	StageShowdown Stage = "SHOWDOWN"
)

// GameState holds the state of a single hand. Players is an immutable
// snapshot of the seats taken at hand start: joins and leaves during the
// hand touch only the table's seat list and take effect next hand.
type GameState struct {
	Stage              Stage
	CommunityCards     []Card
	Pot                int64
	CurrentPlayerIndex int
	BigBlind           int64
	Players            []*Player

	deck *Deck
	// Seat that opened the current betting round; the round is complete
	// when the turn returns here with all live bets equal.
	bettingRoundStart int
}

// newWaitingState builds a fresh WAITING GameState reflecting the given
// seats' current balances.
func newWaitingState(seats []*Player, bigBlind int64) *GameState {
	players := make([]*Player, len(seats))
	for i, p := range seats {
		players[i] = p.forHand()
	}
	return &GameState{
		Stage:    StageWaiting,
		BigBlind: bigBlind,
		Players:  players,
	}
}

// InProgress reports whether a hand is currently being played
func (g *GameState) InProgress() bool {
	return g.Stage != StageWaiting
}

func (g *GameState) currentPlayer() *Player {
	return g.Players[g.CurrentPlayerIndex]
}

// maxBet returns the highest current-round commitment across the hand
func (g *GameState) maxBet() int64 {
	var max int64
	for _, p := range g.Players {
		if p.BetAmount > max {
			max = p.BetAmount
		}
	}
	return max
}

// contenders returns the players still contesting the pot
func (g *GameState) contenders() []*Player {
	return funk.Filter(g.Players, func(p *Player) bool {
		return !p.Folded
	}).([]*Player)
}

// allBetsEqual reports whether every contender has matched the same
// current-round commitment.
func (g *GameState) allBetsEqual() bool {
	contenders := g.contenders()
	for _, p := range contenders {
		if p.BetAmount != contenders[0].BetAmount {
			return false
		}
	}
	return true
}

// advanceTurn moves the turn to the next seat, skipping folded and
// all-in players. If no seat can act the index is left unchanged.
func (g *GameState) advanceTurn() {
	next := g.CurrentPlayerIndex
	for i := 0; i < len(g.Players); i++ {
		next = (next + 1) % len(g.Players)
		if g.Players[next].canAct() {
			break
		}
	}
	g.CurrentPlayerIndex = next
}

func (g *GameState) dealCommunity(n int) error {
	for i := 0; i < n; i++ {
		card, err := g.deck.Draw()
		if err != nil {
			return err
		}
		g.CommunityCards = append(g.CommunityCards, card)
	}
	return nil
}

// advanceStage moves the hand to the next street and deals its community
// cards. Current-round commitments reset to zero; the pot already holds
// every contributed chip. The RIVER to SHOWDOWN edge deals nothing; the
// caller runs the resolver.
func (g *GameState) advanceStage() error {
	switch g.Stage {
	case StagePreFlop:
		if err := g.dealCommunity(3); err != nil {
			return err
		}
		g.Stage = StageFlop
	case StageFlop:
		if err := g.dealCommunity(1); err != nil {
			return err
		}
		g.Stage = StageTurn
	case StageTurn:
		if err := g.dealCommunity(1); err != nil {
			return err
		}
		g.Stage = StageRiver
	case StageRiver:
		g.Stage = StageShowdown
	}

	for _, p := range g.Players {
		p.BetAmount = 0
	}
	return nil
}
