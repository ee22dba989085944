package poker

import (
	"math/rand"
)

// Deck represents a deck of cards. Cards are dealt from the back of the
// slice; dealt cards are removed and never replaced within a hand.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a full 52-card deck in canonical order (suits C,D,H,S,
// ranks ascending) with the given random number generator. The deck is
// not shuffled; call Shuffle before dealing.
func NewDeck(rng *rand.Rand) *Deck {
	deck := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}

	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck.cards = append(deck.cards, Card{rank: rank, suit: suit})
		}
	}

	return deck
}

// Shuffle randomizes the order of cards in the deck with a Fisher-Yates
// pass over the remaining cards.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card from the deck. It returns
// ErrDeckExhausted if the deck is empty.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Size returns the number of cards remaining in the deck
func (d *Deck) Size() int {
	return len(d.cards)
}
