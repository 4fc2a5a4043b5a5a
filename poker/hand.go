package poker

import (
	"errors"
	"fmt"
	"slices"
)

// ErrIndexOutOfRange is returned when dropping a card the hand does not hold.
var ErrIndexOutOfRange = errors.New("card index out of range")

// Hand is an ordered collection of cards held by a player.
type Hand struct {
	cards []Card
}

// NewHand creates a hand holding the given cards.
func NewHand(cards ...Card) *Hand {
	return &Hand{cards: slices.Clone(cards)}
}

// Add appends cards to the hand.
func (h *Hand) Add(cards ...Card) {
	h.cards = append(h.cards, cards...)
}

// Drop removes the cards at the given indexes. Repeated indexes are removed
// once. Nothing is removed if any index is out of range.
func (h *Hand) Drop(indexes ...int) error {
	if len(indexes) == 0 {
		return nil
	}
	unique := slices.Clone(indexes)
	slices.Sort(unique)
	unique = slices.Compact(unique)
	if unique[0] < 0 || unique[len(unique)-1] >= len(h.cards) {
		return fmt.Errorf("%w: hand holds %d cards", ErrIndexOutOfRange, len(h.cards))
	}
	for i := len(unique) - 1; i >= 0; i-- {
		h.cards = slices.Delete(h.cards, unique[i], unique[i]+1)
	}
	return nil
}

// Sort orders the cards ascending by rank and then suit.
func (h *Hand) Sort() {
	slices.SortFunc(h.cards, Compare)
}

// Clear empties the hand.
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the held cards.
func (h *Hand) Cards() []Card {
	return slices.Clone(h.cards)
}

// Best evaluates the hand together with any community cards.
func (h *Hand) Best(community ...Card) (Result, error) {
	return BestHand(h.cards, community)
}

// String returns the cards in short notation.
func (h *Hand) String() string {
	return FormatCards(h.cards)
}
