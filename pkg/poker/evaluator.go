package poker

import (
	"fmt"
	"sort"
)

// HandCategory represents the category of a poker hand
type HandCategory int

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	"High Card",
	"Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
}

// String returns a human-readable description of the category
func (c HandCategory) String() string {
	if c < HighCard || c > StraightFlush {
		return "Unknown"
	}
	return categoryNames[c]
}

// noRank marks unused tiebreak slots; it is below every real rank index
// so missing trailing elements compare lowest.
const noRank = -1

// HandValue is the strength of a 7-card hand. Values are totally ordered
// by CompareHands: category first, then the tiebreak ranks element by
// element. Two HandValues are equal only for genuinely tied hands.
//
// The tiebreak list is category-specific: quads carry [quad rank, best
// kicker], a full house [trips rank, pair rank], flushes and high cards
// the top five ranks descending, straights the top rank of the run,
// trips [trips rank, 2 kickers], two pair [high pair, low pair, kicker],
// one pair [pair rank, 3 kickers].
type HandValue struct {
	Category  HandCategory
	Tiebreaks [5]int
}

// String returns a short description such as "Full House [K over 9]"
func (hv HandValue) String() string {
	return fmt.Sprintf("%s %v", hv.Category, hv.Tiebreaks)
}

// CompareHands compares two hand values and returns:
//
//	-1 if a is worse than b
//	 0 if a and b are exactly tied
//	 1 if a is better than b
func CompareHands(a, b HandValue) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a.Tiebreaks); i++ {
		if a.Tiebreaks[i] != b.Tiebreaks[i] {
			if a.Tiebreaks[i] < b.Tiebreaks[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// EvaluateHand scores a 7-card set (2 hole cards plus 5 community cards)
// into a HandValue. It is deterministic and side-effect free, and always
// produces a value for any syntactically valid input.
//
// A straight and a flush are detected independently over the full 7
// cards; a hand holding both anywhere is classified as a straight flush
// without co-verifying that the same 5 cards form both.
func EvaluateHand(cards []Card) HandValue {
	rankCount := make(map[Rank]int, len(cards))
	suitCount := make(map[Suit]int, 4)
	for _, c := range cards {
		rankCount[c.rank]++
		suitCount[c.suit]++
	}

	// All rank indices ascending, duplicates kept. Kickers are selected
	// from this list, so a leftover pair can occupy two kicker slots.
	indices := make([]int, 0, len(cards))
	for _, c := range cards {
		indices = append(indices, int(c.rank))
	}
	sort.Ints(indices)

	unique := make([]int, 0, len(indices))
	for i, v := range indices {
		if i == 0 || v != indices[i-1] {
			unique = append(unique, v)
		}
	}

	// Longest run of consecutive rank indices; 5 or more is a straight.
	// topStraight is the highest index terminating a qualifying run.
	isStraight := false
	topStraight := noRank
	run := 1
	for i := 1; i < len(unique); i++ {
		if unique[i] == unique[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run >= 5 {
			isStraight = true
			if unique[i] > topStraight {
				topStraight = unique[i]
			}
		}
	}

	hasFlush := false
	var flushRanks []int
	for _, suit := range Suits {
		if suitCount[suit] < 5 {
			continue
		}
		hasFlush = true
		for _, c := range cards {
			if c.suit == suit {
				flushRanks = append(flushRanks, int(c.rank))
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(flushRanks)))
		flushRanks = flushRanks[:5]
		break
	}

	// Grouped ranks by exact multiplicity, each descending. A rank held
	// four times is not also a pair.
	var pairs, trips, quads []int
	for rank, n := range rankCount {
		switch n {
		case 2:
			pairs = append(pairs, int(rank))
		case 3:
			trips = append(trips, int(rank))
		case 4:
			quads = append(quads, int(rank))
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(pairs)))
	sort.Sort(sort.Reverse(sort.IntSlice(trips)))
	sort.Sort(sort.Reverse(sort.IntSlice(quads)))

	var category HandCategory
	switch {
	case isStraight && hasFlush:
		category = StraightFlush
	case len(quads) > 0:
		category = FourOfAKind
	case len(trips) > 0 && len(pairs) > 0:
		category = FullHouse
	case hasFlush:
		category = Flush
	case isStraight:
		category = Straight
	case len(trips) > 0:
		category = ThreeOfAKind
	case len(pairs) >= 2:
		category = TwoPair
	case len(pairs) == 1:
		category = Pair
	default:
		category = HighCard
	}

	var tiebreak []int
	switch category {
	case StraightFlush, Straight:
		tiebreak = []int{topStraight}
	case FourOfAKind:
		tiebreak = append([]int{quads[0]}, bestKickers(indices, 1, quads[0])...)
	case FullHouse:
		tiebreak = []int{trips[0], pairs[0]}
	case Flush:
		tiebreak = flushRanks
	case ThreeOfAKind:
		tiebreak = append([]int{trips[0]}, bestKickers(indices, 2, trips[0])...)
	case TwoPair:
		tiebreak = append([]int{pairs[0], pairs[1]}, bestKickers(indices, 1, pairs[0], pairs[1])...)
	case Pair:
		tiebreak = append([]int{pairs[0]}, bestKickers(indices, 3, pairs[0])...)
	default:
		tiebreak = bestKickers(indices, 5)
	}

	hv := HandValue{Category: category}
	for i := range hv.Tiebreaks {
		hv.Tiebreaks[i] = noRank
	}
	for i, v := range tiebreak {
		if i >= len(hv.Tiebreaks) {
			break
		}
		hv.Tiebreaks[i] = v
	}
	return hv
}

// bestKickers returns the n highest entries of the ascending index list,
// descending, after removing every occurrence of the excluded ranks.
func bestKickers(indices []int, n int, excluded ...int) []int {
	kept := make([]int, 0, len(indices))
outer:
	for _, v := range indices {
		for _, ex := range excluded {
			if v == ex {
				continue outer
			}
		}
		kept = append(kept, v)
	}

	if n > len(kept) {
		n = len(kept)
	}
	out := make([]int, 0, n)
	for i := len(kept) - 1; i >= len(kept)-n; i-- {
		out = append(out, kept[i])
	}
	return out
}
