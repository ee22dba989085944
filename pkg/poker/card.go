package poker

import (
	"encoding/json"
	"fmt"
)

// Suit represents a card suit
type Suit byte

const (
	Clubs    Suit = 'C'
	Diamonds Suit = 'D'
	Hearts   Suit = 'H'
	Spades   Suit = 'S'
)

// Suits lists all suits in canonical deck order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the one-symbol representation of the suit
func (s Suit) String() string {
	return string(s)
}

// Rank represents a card rank as a zero-based index; Two is the lowest
// rank and Ace the highest. Aces never rank low.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankSymbols = [...]string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A"}

// Ranks lists all ranks in ascending order.
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// String returns the one-symbol representation of the rank
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return rankSymbols[r]
}

// Card represents a playing card
type Card struct {
	rank Rank
	suit Suit
}

// NewCard creates a card with the given rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card{rank: rank, suit: suit}
}

// Rank returns the card's rank
func (c Card) Rank() Rank {
	return c.rank
}

// Suit returns the card's suit
func (c Card) Suit() Suit {
	return c.suit
}

// Code returns the two-symbol wire representation of the card, rank
// symbol first: Ten of Spades -> "TS".
func (c Card) Code() string {
	return c.rank.String() + c.suit.String()
}

// String returns a string representation of the card
func (c Card) String() string {
	return c.Code()
}

// ParseCard parses a two-symbol card code such as "TS" or "9H"
func ParseCard(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}

	var rank Rank = -1
	for i, sym := range rankSymbols {
		if sym == string(code[0]) {
			rank = Rank(i)
			break
		}
	}
	if rank < 0 {
		return Card{}, fmt.Errorf("invalid rank symbol %q", code[0])
	}

	switch Suit(code[1]) {
	case Clubs, Diamonds, Hearts, Spades:
		return Card{rank: rank, suit: Suit(code[1])}, nil
	default:
		return Card{}, fmt.Errorf("invalid suit symbol %q", code[1])
	}
}

// MarshalJSON implements json.Marshaler; cards serialize as their
// two-symbol code.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Code())
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Card) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	card, err := ParseCard(code)
	if err != nil {
		return err
	}
	*c = card
	return nil
}
