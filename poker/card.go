package poker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when card notation cannot be parsed.
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit. The numeric order only breaks ties between
// cards of equal rank; it never affects hand strength.
type Suit uint8

const (
	Hearts Suit = iota + 1
	Spades
	Clubs
	Diamonds
)

// Suits lists every suit in ascending order.
var Suits = [...]Suit{Hearts, Spades, Clubs, Diamonds}

var suitNames = [...]string{"?", "Hearts", "Spades", "Clubs", "Diamonds"}
var suitSymbols = [...]string{"?", "♥", "♠", "♣", "♦"}
var suitLetters = [...]byte{'?', 'h', 's', 'c', 'd'}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Hearts && s <= Diamonds
}

// String returns the suit name, e.g. "Hearts".
func (s Suit) String() string {
	if !s.Valid() {
		return suitNames[0]
	}
	return suitNames[s]
}

// Symbol returns the unicode suit glyph.
func (s Suit) Symbol() string {
	if !s.Valid() {
		return suitSymbols[0]
	}
	return suitSymbols[s]
}

// Letter returns the single letter used in card notation.
func (s Suit) Letter() byte {
	if !s.Valid() {
		return suitLetters[0]
	}
	return suitLetters[s]
}

// IsRed returns true for Hearts and Diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is the numeric strength of a card, 2 through 14. Aces are high (14)
// except when completing a five-high straight.
type Rank uint8

const (
	Two Rank = iota + 2
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

// lowAce is the value an ace takes at the bottom of a wheel straight.
const lowAce Rank = 1

var rankShort = [...]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7", Eight: "8",
	Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

var rankLong = [...]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7", Eight: "8",
	Nine: "9", Ten: "10", Jack: "Jack", Queen: "Queen", King: "King", Ace: "Ace",
}

// Valid reports whether r is between Two and Ace.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// String returns the single character rank, e.g. "T" or "A".
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return rankShort[r]
}

// Name returns the long rank name, e.g. "10" or "Queen".
func (r Rank) Name() string {
	if !r.Valid() {
		return "?"
	}
	return rankLong[r]
}

// Card is an immutable playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Valid reports whether both rank and suit are in range.
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

// String returns the short notation, e.g. "As".
func (c Card) String() string {
	return c.Rank.String() + string(c.Suit.Letter())
}

// Pretty returns the rank with the suit glyph, e.g. "A♠".
func (c Card) Pretty() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// Name returns the long form, e.g. "Ace of Spades".
func (c Card) Name() string {
	return fmt.Sprintf("%s of %s", c.Rank.Name(), c.Suit)
}

// Compare orders cards by rank and then suit. It returns -1, 0 or 1.
func Compare(a, b Card) int {
	switch {
	case a.Rank < b.Rank:
		return -1
	case a.Rank > b.Rank:
		return 1
	case a.Suit < b.Suit:
		return -1
	case a.Suit > b.Suit:
		return 1
	}
	return 0
}

// Less reports whether c orders before other.
func (c Card) Less(other Card) bool {
	return Compare(c, other) < 0
}

// ParseCard parses two-character notation such as "As", "Td" or "2c".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q must be two characters", ErrInvalidCard, s)
	}

	rank, err := parseRank(s[0])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: %v", ErrInvalidCard, s, err)
	}
	suit, err := parseSuit(s[1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: %v", ErrInvalidCard, s, err)
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses a run of cards. Whitespace and commas between cards are
// ignored, so "AsKs", "As Ks" and "As,Ks" are equivalent.
func ParseCards(s string) ([]Card, error) {
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == ',' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: card string length %d is odd", ErrInvalidCard, len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i/2, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// FormatCards joins the short notation of each card with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank %q", c)
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 'h', 'H':
		return Hearts, nil
	case 's', 'S':
		return Spades, nil
	case 'c', 'C':
		return Clubs, nil
	case 'd', 'D':
		return Diamonds, nil
	}
	return 0, fmt.Errorf("unknown suit %q", c)
}
