package poker

import (
	"errors"
	rand "math/rand/v2"

	"github.com/lox/pokerhands/internal/randutil"
)

// ErrNoMoreCards is returned when drawing from an exhausted deck.
var ErrNoMoreCards = errors.New("there are no cards left")

// Deck represents a standard 52-card deck
type Deck struct {
	cards [52]Card // Fixed size array
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.fill()
	d.Shuffle()
	return d
}

// NewSeededDeck creates a shuffled deck whose order is fixed by seed.
func NewSeededDeck(seed int64) *Deck {
	return NewDeck(randutil.New(seed))
}

func (d *Deck) fill() {
	i := 0
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.next = 0
}

// Shuffle shuffles the undealt cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > d.next; i-- {
		var j int
		if d.rng != nil {
			j = d.next + d.rng.IntN(i-d.next+1)
		} else {
			j = d.next + rand.IntN(i-d.next+1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrNoMoreCards
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// Deal deals n cards from the deck. It fails without dealing anything when
// fewer than n cards remain.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, ErrNoMoreCards
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Reset restores all 52 cards and reshuffles the deck
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
