package poker

import (
	"fmt"
)

// ActionKind identifies one of the six betting actions
type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionBet   ActionKind = "bet"
	ActionRaise ActionKind = "raise"
	ActionAllIn ActionKind = "all-in"
)

// Action is a closed variant over the action kinds. Only bet carries an
// amount; every other kind ignores it.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Amount int64      `json:"amount,omitempty"`
}

// applyAction mutates the hand state for one action by the given player.
// Validation failures reject atomically with no state change.
//
// A check is never rejected even with a bet outstanding; gating checks
// is the caller's concern. A call or raise the stack cannot cover is
// converted into an all-in rather than rejected.
func (g *GameState) applyAction(p *Player, action Action) error {
	switch action.Kind {
	case ActionFold:
		p.Folded = true
		p.LastAction = "Fold"

	case ActionCheck:
		p.LastAction = "Check"

	case ActionCall:
		callAmount := g.maxBet() - p.BetAmount
		if p.Chips >= callAmount {
			p.Chips -= callAmount
			p.BetAmount += callAmount
			g.Pot += callAmount
			p.LastAction = fmt.Sprintf("Call %d", callAmount)
			if p.Chips == 0 {
				p.AllIn = true
			}
		} else {
			g.allInFor(p)
		}

	case ActionBet:
		if action.Amount < 0 || action.Amount > p.Chips {
			return ErrInsufficientChips
		}
		p.Chips -= action.Amount
		p.BetAmount += action.Amount
		g.Pot += action.Amount
		p.LastAction = fmt.Sprintf("Bet %d", action.Amount)
		// A new wager reopens the round: completion is now measured from
		// the bettor's seat.
		g.bettingRoundStart = g.CurrentPlayerIndex
		if p.Chips == 0 {
			p.AllIn = true
		}

	case ActionRaise:
		desired := g.maxBet() * 2
		additional := desired - p.BetAmount
		if p.Chips >= additional {
			p.Chips -= additional
			p.BetAmount += additional
			g.Pot += additional
			p.LastAction = fmt.Sprintf("Raise to %d", desired)
			if p.Chips == 0 {
				p.AllIn = true
			}
		} else {
			g.allInFor(p)
		}

	case ActionAllIn:
		g.allInFor(p)

	default:
		return fmt.Errorf("poker: unknown action kind %q", action.Kind)
	}

	return nil
}

// allInFor commits the player's entire remaining stack
func (g *GameState) allInFor(p *Player) {
	g.Pot += p.Chips
	p.BetAmount += p.Chips
	p.Chips = 0
	p.AllIn = true
	p.LastAction = "All-In"
}

// noneCanBet reports whether every contender is all-in or felted, in
// which case the hand fast-forwards to showdown.
func (g *GameState) noneCanBet() bool {
	for _, p := range g.contenders() {
		if !p.AllIn && p.Chips > 0 {
			return false
		}
	}
	return true
}

// roundComplete reports whether the betting round is finished: the turn
// has returned to the seat that opened the round and every contender has
// matched the same commitment.
func (g *GameState) roundComplete() bool {
	return g.CurrentPlayerIndex == g.bettingRoundStart && g.allBetsEqual()
}
