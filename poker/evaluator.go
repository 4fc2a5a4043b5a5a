package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
)

// ErrTooFewCards is returned when fewer than five cards are evaluated.
var ErrTooFewCards = errors.New("at least five cards are required")

// Result is the best five-card hand found in a set of cards. Key holds the
// ranks that break ties inside the category, most significant first.
type Result struct {
	Category Category
	Key      []Rank
}

// Compare returns 1 if r beats other, -1 if other beats r and 0 for a tie.
func (r Result) Compare(other Result) int {
	switch {
	case r.Category > other.Category:
		return 1
	case r.Category < other.Category:
		return -1
	}
	return compareKeys(r.Key, other.Key)
}

// Less reports whether r is weaker than other.
func (r Result) Less(other Result) bool { return r.Compare(other) < 0 }

// Greater reports whether r is stronger than other.
func (r Result) Greater(other Result) bool { return r.Compare(other) > 0 }

// Equal reports whether both results share category and tie-break key.
func (r Result) Equal(other Result) bool { return r.Compare(other) == 0 }

// String returns the category followed by the tie-break ranks, e.g. "Two Pair [Q 6 K]".
func (r Result) String() string {
	return fmt.Sprintf("%s %v", r.Category, r.Key)
}

// CompareHands compares two results and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b Result) int {
	return a.Compare(b)
}

type extractor func(p *profile) ([]Rank, bool)

// categoryCheckers is tried strongest first; the first match is the hand.
var categoryCheckers = [...]struct {
	category Category
	extract  extractor
}{
	{StraightFlush, straightFlushKey},
	{FourOfAKind, fourOfAKindKey},
	{FullHouse, fullHouseKey},
	{Flush, flushKey},
	{Straight, straightKey},
	{ThreeOfAKind, threeOfAKindKey},
	{TwoPair, twoPairKey},
	{OnePair, onePairKey},
	{HighCard, highCardKey},
}

// Evaluate returns the best five-card hand that can be made from cards.
// Any number of cards from five upwards is accepted; duplicates are not checked.
func Evaluate(cards []Card) (Result, error) {
	if len(cards) < 5 {
		return Result{}, fmt.Errorf("%w: got %d", ErrTooFewCards, len(cards))
	}
	for _, c := range cards {
		if !c.Valid() {
			return Result{}, fmt.Errorf("%w: rank %d suit %d", ErrInvalidCard, c.Rank, c.Suit)
		}
	}

	p := newProfile(cards)
	for _, checker := range categoryCheckers {
		if key, ok := checker.extract(&p); ok {
			return Result{Category: checker.category, Key: key}, nil
		}
	}
	// highCardKey always matches
	panic("poker: no category matched")
}

// MustEvaluate evaluates cards and panics on error (for tests)
func MustEvaluate(cards []Card) Result {
	result, err := Evaluate(cards)
	if err != nil {
		panic(fmt.Sprintf("failed to evaluate %s: %v", FormatCards(cards), err))
	}
	return result
}

// BestHand evaluates hole cards together with the community board.
func BestHand(hole, board []Card) (Result, error) {
	cards := make([]Card, 0, len(hole)+len(board))
	cards = append(cards, hole...)
	cards = append(cards, board...)
	return Evaluate(cards)
}

// Winners returns the indexes of every result tied for the best hand.
func Winners(results []Result) []int {
	if len(results) == 0 {
		return nil
	}
	best := results[0]
	winners := []int{0}
	for i := 1; i < len(results); i++ {
		switch cmp := results[i].Compare(best); {
		case cmp > 0:
			best = results[i]
			winners = winners[:0]
			winners = append(winners, i)
		case cmp == 0:
			winners = append(winners, i)
		}
	}
	return winners
}

// profile summarises a card set. Masks use bit r for rank r, and an ace also
// sets bit 1 so that wheel straights fall out of the same scan.
type profile struct {
	counts    [Ace + 1]uint8
	rankMask  uint16
	suitMasks [Diamonds + 1]uint16
	suited    [Diamonds + 1][]Rank
}

func newProfile(cards []Card) profile {
	var p profile
	for _, c := range cards {
		bit := uint16(1) << c.Rank
		if c.Rank == Ace {
			bit |= 1 << lowAce
		}
		p.counts[c.Rank]++
		p.rankMask |= bit
		p.suitMasks[c.Suit] |= bit
		p.suited[c.Suit] = append(p.suited[c.Suit], c.Rank)
	}
	return p
}

// highestWithCount returns the highest rank held at least n times, skipping except.
func (p *profile) highestWithCount(n uint8, except ...Rank) Rank {
	for r := Ace; r >= Two; r-- {
		if p.counts[r] >= n && !slices.Contains(except, r) {
			return r
		}
	}
	return 0
}

// kickers returns up to n distinct ranks in descending order, excluding used.
func (p *profile) kickers(n int, used ...Rank) []Rank {
	out := make([]Rank, 0, n)
	for r := Ace; r >= Two && len(out) < n; r-- {
		if p.counts[r] > 0 && !slices.Contains(used, r) {
			out = append(out, r)
		}
	}
	return out
}

// straightHigh returns the top rank of the best straight in mask (0 if none).
func straightHigh(mask uint16) Rank {
	// Bitwise cascade identifies consecutive sequences in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq == 0 {
		return 0
	}
	low := bits.Len16(seq) - 1
	return Rank(low + 4)
}

func straightFlushKey(p *profile) ([]Rank, bool) {
	var best Rank
	for _, s := range Suits {
		if high := straightHigh(p.suitMasks[s]); high > best {
			best = high
		}
	}
	if best == 0 {
		return nil, false
	}
	return []Rank{best}, true
}

func fourOfAKindKey(p *profile) ([]Rank, bool) {
	quad := p.highestWithCount(4)
	if quad == 0 {
		return nil, false
	}
	return append([]Rank{quad}, p.kickers(1, quad)...), true
}

func fullHouseKey(p *profile) ([]Rank, bool) {
	three := p.highestWithCount(3)
	if three == 0 {
		return nil, false
	}
	two := p.highestWithCount(2, three)
	if two == 0 {
		return nil, false
	}
	return []Rank{three, two}, true
}

func flushKey(p *profile) ([]Rank, bool) {
	var best []Rank
	for _, s := range Suits {
		ranks := p.suited[s]
		if len(ranks) < 5 {
			continue
		}
		top := slices.Clone(ranks)
		slices.SortFunc(top, func(a, b Rank) int { return int(b) - int(a) })
		top = top[:5]
		if best == nil || compareKeys(top, best) > 0 {
			best = top
		}
	}
	return best, best != nil
}

func straightKey(p *profile) ([]Rank, bool) {
	high := straightHigh(p.rankMask)
	if high == 0 {
		return nil, false
	}
	return []Rank{high}, true
}

func threeOfAKindKey(p *profile) ([]Rank, bool) {
	three := p.highestWithCount(3)
	if three == 0 {
		return nil, false
	}
	return append([]Rank{three}, p.kickers(2, three)...), true
}

func twoPairKey(p *profile) ([]Rank, bool) {
	high := p.highestWithCount(2)
	if high == 0 {
		return nil, false
	}
	low := p.highestWithCount(2, high)
	if low == 0 {
		return nil, false
	}
	return append([]Rank{high, low}, p.kickers(1, high, low)...), true
}

func onePairKey(p *profile) ([]Rank, bool) {
	pair := p.highestWithCount(2)
	if pair == 0 {
		return nil, false
	}
	return append([]Rank{pair}, p.kickers(3, pair)...), true
}

func highCardKey(p *profile) ([]Rank, bool) {
	return p.kickers(5), true
}

func compareKeys(a, b []Rank) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	switch {
	case len(a) > len(b):
		return 1
	case len(a) < len(b):
		return -1
	}
	return 0
}
