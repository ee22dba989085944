package poker

import (
	"testing"
)

func mustCards(t *testing.T, codes ...string) []Card {
	t.Helper()
	cards := make([]Card, 0, len(codes))
	for _, code := range codes {
		c, err := ParseCard(code)
		if err != nil {
			t.Fatalf("bad card code %q: %v", code, err)
		}
		cards = append(cards, c)
	}
	return cards
}

func tiebreaks(vals ...int) [5]int {
	tb := [5]int{noRank, noRank, noRank, noRank, noRank}
	copy(tb[:], vals)
	return tb
}

func TestEvaluateHandCategories(t *testing.T) {
	tests := []struct {
		name      string
		cards     []string
		category  HandCategory
		tiebreaks [5]int
	}{
		{
			name:      "high card",
			cards:     []string{"2C", "5D", "7H", "9S", "JC", "QD", "AH"},
			category:  HighCard,
			tiebreaks: tiebreaks(int(Ace), int(Queen), int(Jack), int(Nine), int(Seven)),
		},
		{
			name:      "pair with kickers",
			cards:     []string{"8C", "8D", "AH", "KS", "4C", "3D", "2H"},
			category:  Pair,
			tiebreaks: tiebreaks(int(Eight), int(Ace), int(King), int(Four)),
		},
		{
			name:      "two pair",
			cards:     []string{"8C", "8D", "3H", "3S", "AC", "7D", "5H"},
			category:  TwoPair,
			tiebreaks: tiebreaks(int(Eight), int(Three), int(Ace)),
		},
		{
			// The third pair is not part of the category but its rank is
			// still the best kicker.
			name:      "three pairs",
			cards:     []string{"KC", "KD", "9H", "9S", "5C", "5D", "2H"},
			category:  TwoPair,
			tiebreaks: tiebreaks(int(King), int(Nine), int(Five)),
		},
		{
			name:      "three of a kind",
			cards:     []string{"7C", "7D", "7H", "AS", "KC", "4D", "2H"},
			category:  ThreeOfAKind,
			tiebreaks: tiebreaks(int(Seven), int(Ace), int(King)),
		},
		{
			// Two sets of trips with no pair group: stays three of a kind,
			// and the lower trips fill both kicker slots.
			name:      "double trips",
			cards:     []string{"9C", "9D", "9H", "4S", "4C", "4D", "AH"},
			category:  ThreeOfAKind,
			tiebreaks: tiebreaks(int(Nine), int(Ace), int(Four)),
		},
		{
			name:      "full house",
			cards:     []string{"TC", "TD", "TH", "6S", "6C", "AD", "2H"},
			category:  FullHouse,
			tiebreaks: tiebreaks(int(Ten), int(Six)),
		},
		{
			name:      "straight",
			cards:     []string{"5C", "6D", "7H", "8S", "9C", "KD", "2H"},
			category:  Straight,
			tiebreaks: tiebreaks(int(Nine)),
		},
		{
			// Seven-card run: the straight is valued by its highest card.
			name:      "long straight",
			cards:     []string{"4C", "5D", "6H", "7S", "8C", "9D", "TH"},
			category:  Straight,
			tiebreaks: tiebreaks(int(Ten)),
		},
		{
			// Aces never rank low, so A-2-3-4-5 is no straight.
			name:      "wheel is not a straight",
			cards:     []string{"AC", "2D", "3H", "4S", "5C", "9D", "JH"},
			category:  HighCard,
			tiebreaks: tiebreaks(int(Ace), int(Jack), int(Nine), int(Five), int(Four)),
		},
		{
			name:      "flush takes top five",
			cards:     []string{"2H", "5H", "9H", "JH", "KH", "3C", "8D"},
			category:  Flush,
			tiebreaks: tiebreaks(int(King), int(Jack), int(Nine), int(Five), int(Two)),
		},
		{
			name:      "four of a kind",
			cards:     []string{"QC", "QD", "QH", "QS", "7C", "4D", "2H"},
			category:  FourOfAKind,
			tiebreaks: tiebreaks(int(Queen), int(Seven)),
		},
		{
			name:      "straight flush",
			cards:     []string{"5H", "6H", "7H", "8H", "9H", "KC", "2D"},
			category:  StraightFlush,
			tiebreaks: tiebreaks(int(Nine)),
		},
		{
			// Straight and flush detected over different cards still rank
			// as a straight flush: the hearts make the flush, the 9-to-K
			// run crosses suits.
			name:      "disjoint straight and flush",
			cards:     []string{"2H", "3H", "JH", "QH", "KH", "9S", "TC"},
			category:  StraightFlush,
			tiebreaks: tiebreaks(int(King)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hv := EvaluateHand(mustCards(t, tt.cards...))
			if hv.Category != tt.category {
				t.Fatalf("category = %v, want %v", hv.Category, tt.category)
			}
			if hv.Tiebreaks != tt.tiebreaks {
				t.Errorf("tiebreaks = %v, want %v", hv.Tiebreaks, tt.tiebreaks)
			}
		})
	}
}

func TestCompareHands(t *testing.T) {
	flush := EvaluateHand(mustCards(t, "2H", "5H", "9H", "JH", "KH", "3C", "8D"))
	straight := EvaluateHand(mustCards(t, "5C", "6D", "7H", "8S", "9C", "KD", "2H"))
	if CompareHands(flush, straight) != 1 {
		t.Errorf("flush should beat straight")
	}
	if CompareHands(straight, flush) != -1 {
		t.Errorf("straight should lose to flush")
	}

	highPair := EvaluateHand(mustCards(t, "KC", "KD", "9H", "7S", "5C", "3D", "2H"))
	lowPair := EvaluateHand(mustCards(t, "QC", "QD", "9H", "7S", "5C", "3D", "2H"))
	if CompareHands(highPair, lowPair) != 1 {
		t.Errorf("pair of kings should beat pair of queens")
	}

	// Same category, same pair, kicker decides.
	aceKicker := EvaluateHand(mustCards(t, "8C", "8D", "AH", "KS", "4C", "3D", "2H"))
	queenKicker := EvaluateHand(mustCards(t, "8H", "8S", "QH", "KC", "4D", "3H", "2S"))
	if CompareHands(aceKicker, queenKicker) != 1 {
		t.Errorf("ace kicker should beat queen kicker")
	}

	// Genuinely tied hands compare equal.
	a := EvaluateHand(mustCards(t, "8C", "8D", "AH", "KS", "4C", "3D", "2H"))
	b := EvaluateHand(mustCards(t, "8H", "8S", "AD", "KC", "4D", "3H", "2S"))
	if CompareHands(a, b) != 0 {
		t.Errorf("identical ranks should tie, got %d", CompareHands(a, b))
	}
}

func TestEvaluateHandDeterministic(t *testing.T) {
	cards := mustCards(t, "TC", "TD", "TH", "6S", "6C", "AD", "2H")
	first := EvaluateHand(cards)
	for i := 0; i < 10; i++ {
		if got := EvaluateHand(cards); got != first {
			t.Fatalf("evaluation not deterministic: %v vs %v", got, first)
		}
	}
}
