package poker

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/decred/slog"
	"github.com/google/uuid"
	"github.com/thoas/go-funk"
)

// Defaults applied by NewTable where the config leaves them zero.
const (
	DefaultMaxPlayers = 8
	DefaultBigBlind   = 10
)

// TableConfig holds configuration for a new table
type TableConfig struct {
	ID         string
	Name       string
	Log        slog.Logger
	MaxPlayers int
	BigBlind   int64
	Seed       int64 // deterministic decks when non-zero
}

// Table owns one game's mutable state across hands: the seated players
// in join order, pending spectators, and the active hand. All mutations
// serialize on the table's lock; tables share no state with one another,
// so cross-table operations need no coordination.
type Table struct {
	log slog.Logger
	cfg TableConfig

	mu         sync.RWMutex
	seats      []*Player
	spectators []*Player
	// Seat that posts the small blind next hand; rotates every hand.
	startingIndex int
	game          *GameState
	rng           *rand.Rand
}

// NewTable creates a table with no seated players and no active hand
func NewTable(cfg TableConfig) *Table {
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	if cfg.MaxPlayers == 0 {
		cfg.MaxPlayers = DefaultMaxPlayers
	}
	if cfg.BigBlind == 0 {
		cfg.BigBlind = DefaultBigBlind
	}
	if cfg.Log == nil {
		cfg.Log = slog.Disabled
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Table{
		log: cfg.Log,
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// ID returns the table identifier
func (t *Table) ID() string {
	return t.cfg.ID
}

// Name returns the table display name
func (t *Table) Name() string {
	if t.cfg.Name != "" {
		return t.cfg.Name
	}
	return t.cfg.ID
}

// Join seats a player with the given display name and buy-in. If a hand
// is in progress the player is parked as a spectator instead and
// promoted to a seat when the hand concludes; seated reports which of
// the two happened.
func (t *Table) Join(displayName string, chips int64) (player *Player, seated bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if chips <= 0 {
		return nil, false, ErrNoChips
	}

	taken := funk.Contains(t.seats, func(p *Player) bool { return p.Name == displayName }) ||
		funk.Contains(t.spectators, func(p *Player) bool { return p.Name == displayName })
	if taken {
		return nil, false, ErrDuplicateName
	}

	p := NewPlayer(uuid.New().String(), displayName, chips)

	if t.game != nil && t.game.InProgress() {
		t.spectators = append(t.spectators, p)
		t.log.Debugf("table %s: %s spectating with %d chips", t.cfg.ID, displayName, chips)
		return p, false, nil
	}

	if len(t.seats) >= t.cfg.MaxPlayers {
		return nil, false, ErrTableFull
	}

	t.seats = append(t.seats, p)
	t.log.Debugf("table %s: %s seated with %d chips (%d/%d seats)",
		t.cfg.ID, displayName, chips, len(t.seats), t.cfg.MaxPlayers)
	return p, true, nil
}

// PlayerName returns the display name of a seated player or spectator
func (t *Table) PlayerName(playerID string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, p := range t.seats {
		if p.ID == playerID {
			return p.Name, nil
		}
	}
	for _, p := range t.spectators {
		if p.ID == playerID {
			return p.Name, nil
		}
	}
	return "", ErrPlayerNotFound
}

// Leave removes a player from the seats or the spectator list and
// returns the chips they take with them. Leaving during a hand folds the
// player's in-hand seat and cashes out its live stack only; chips already
// committed stay in the pot for the remaining contenders. The forced fold
// can conclude the hand like any other, so the winner of a hand is always
// still seated when balances sync back.
func (t *Table) Leave(playerID string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, p := range t.seats {
		if p.ID != playerID {
			continue
		}
		t.seats = append(t.seats[:i], t.seats[i+1:]...)

		chips := p.Chips
		if g := t.game; g != nil && g.InProgress() {
			for _, hp := range g.Players {
				if hp.ID != playerID {
					continue
				}
				chips = hp.Chips
				hp.Chips = 0
				if !hp.Folded {
					hp.Folded = true
					hp.LastAction = "Fold"
					t.departed(g, playerID)
				}
				break
			}
		}
		t.log.Debugf("table %s: %s left with %d chips", t.cfg.ID, p.Name, chips)
		return chips, nil
	}
	for i, p := range t.spectators {
		if p.ID == playerID {
			t.spectators = append(t.spectators[:i], t.spectators[i+1:]...)
			return p.Chips, nil
		}
	}
	return 0, ErrPlayerNotFound
}

// departed drives the hand forward after a mid-hand leaver's forced
// fold: resolution when the fold ends the hand, turn advancement when
// the leaver held the turn.
func (t *Table) departed(g *GameState, playerID string) {
	if g.noneCanBet() || len(g.contenders()) == 1 || g.currentPlayer().ID == playerID {
		if _, err := t.progress(g); err != nil {
			t.log.Errorf("table %s: advancing after departure: %v", t.cfg.ID, err)
		}
	}
}

// StartHand moves the table from WAITING into PRE-FLOP: it snapshots the
// seats, shuffles a fresh deck, deals hole cards and posts blinds.
func (t *Table) StartHand() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.game != nil && t.game.InProgress() {
		return ErrHandInProgress
	}
	if len(t.seats) < 2 {
		return ErrNotEnoughPlayers
	}

	if t.startingIndex >= len(t.seats) {
		t.startingIndex = 0
	}
	start := t.startingIndex
	t.startingIndex = (t.startingIndex + 1) % len(t.seats)

	g := newWaitingState(t.seats, t.cfg.BigBlind)
	g.deck = NewDeck(t.rng)
	g.deck.Shuffle()

	// Two full passes, one card per player per pass, in seat order.
	for pass := 0; pass < 2; pass++ {
		for _, p := range g.Players {
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}
			p.HoleCards = append(p.HoleCards, card)
		}
	}
	g.Stage = StagePreFlop

	if len(g.Players) >= 3 {
		n := len(g.Players)
		t.postBlind(g, start, g.BigBlind/2, "Small Blind")
		t.postBlind(g, (start+1)%n, g.BigBlind, "Big Blind")
		g.CurrentPlayerIndex = (start + 2) % n
	} else {
		// Heads-up hands post no blinds; the rotating start seat acts
		// first.
		g.CurrentPlayerIndex = start
	}
	g.bettingRoundStart = g.CurrentPlayerIndex

	t.game = g
	t.log.Infof("table %s: hand started with %d players, first to act seat %d",
		t.cfg.ID, len(g.Players), g.CurrentPlayerIndex)
	return nil
}

// postBlind posts a forced bet for the given seat. A seat whose stack
// cannot cover the blind skips the post entirely; there is no partial
// all-in blind.
func (t *Table) postBlind(g *GameState, seat int, amount int64, label string) {
	p := g.Players[seat]
	if p.Chips < amount {
		t.log.Debugf("table %s: seat %d cannot cover %s %d, post skipped", t.cfg.ID, seat, label, amount)
		return
	}
	p.Chips -= amount
	p.BetAmount = amount
	g.Pot += amount
	p.LastAction = fmt.Sprintf("%s (%d)", label, amount)
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// HandleAction applies one betting action for the current turn holder
// and drives the hand forward: it advances the turn, transitions the
// stage when the round completes, and resolves the hand when betting
// concludes or a single contender remains. The returned HandResult is
// non-nil exactly when this action concluded the hand.
func (t *Table) HandleAction(playerID string, action Action) (*HandResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g := t.game
	if g == nil || !g.InProgress() || g.Stage == StageShowdown {
		return nil, ErrNotYourTurn
	}

	actor := g.currentPlayer()
	if actor.ID != playerID {
		return nil, ErrNotYourTurn
	}

	if err := g.applyAction(actor, action); err != nil {
		return nil, err
	}
	t.log.Debugf("table %s: %s -> %s (pot %d)", t.cfg.ID, actor.Name, actor.LastAction, g.Pot)

	return t.progress(g)
}

// progress runs the post-action sequence of the betting state machine
func (t *Table) progress(g *GameState) (*HandResult, error) {
	// Every contender all-in or felted: run out the remaining community
	// cards and go straight to showdown.
	if g.noneCanBet() {
		for g.Stage != StageShowdown {
			if err := g.advanceStage(); err != nil {
				return nil, err
			}
		}
		return t.finishHand(g.resolveShowdown()), nil
	}

	// A single contender takes the pot without any hand comparison.
	if len(g.contenders()) == 1 {
		return t.finishHand(g.resolveFoldOut()), nil
	}

	g.advanceTurn()

	if g.roundComplete() {
		if err := g.advanceStage(); err != nil {
			return nil, err
		}
		if g.Stage == StageShowdown {
			return t.finishHand(g.resolveShowdown()), nil
		}
	}
	return nil, nil
}

// finishHand syncs hand balances back to the seats, removes felted
// players, promotes waiting spectators and resets the table to WAITING.
func (t *Table) finishHand(result *HandResult) *HandResult {
	result.TableID = t.cfg.ID

	for _, seat := range t.seats {
		for _, p := range t.game.Players {
			if p.ID == seat.ID {
				seat.Chips = p.Chips
				break
			}
		}
	}

	t.seats = funk.Filter(t.seats, func(p *Player) bool {
		return p.Chips > 0
	}).([]*Player)

	for len(t.spectators) > 0 && len(t.seats) < t.cfg.MaxPlayers {
		t.seats = append(t.seats, t.spectators[0])
		t.spectators = t.spectators[1:]
	}

	t.game = newWaitingState(t.seats, t.cfg.BigBlind)

	t.log.Infof("table %s: %s wins pot of %d (showdown=%v)",
		t.cfg.ID, result.WinnerName, result.Pot, result.Showdown)
	return result
}
