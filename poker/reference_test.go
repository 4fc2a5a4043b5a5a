package poker

import (
	"testing"

	refpoker "github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhands/internal/randutil"
)

var refSuits = map[Suit]refpoker.Suit{
	Hearts:   refpoker.Heart,
	Spades:   refpoker.Spade,
	Clubs:    refpoker.Club,
	Diamonds: refpoker.Diamond,
}

// toReference converts a seven-card set into the reference evaluator's
// representation, where aces are rank 1.
func toReference(t *testing.T, cards []Card) *[7]refpoker.Card {
	t.Helper()
	var out [7]refpoker.Card
	for i, c := range cards {
		rank := refpoker.Rank(c.Rank)
		if c.Rank == Ace {
			rank = 1
		}
		rc, err := refpoker.MakeCard(refSuits[c.Suit], rank)
		require.NoError(t, err)
		out[i] = rc
	}
	return &out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// TestMatchesReferenceEvaluator checks that hand ordering agrees with an
// independent seven-card evaluator on seeded random showdowns.
func TestMatchesReferenceEvaluator(t *testing.T) {
	t.Parallel()
	rng := randutil.New(2024)

	for i := 0; i < 5000; i++ {
		deck := NewDeck(rng)
		dealt, err := deck.Deal(9)
		require.NoError(t, err)

		board := dealt[4:]
		hero := append([]Card{dealt[0], dealt[1]}, board...)
		villain := append([]Card{dealt[2], dealt[3]}, board...)

		ours := MustEvaluate(hero).Compare(MustEvaluate(villain))
		ref := sign(int(refpoker.Eval7(toReference(t, hero))) - int(refpoker.Eval7(toReference(t, villain))))

		if ours != ref {
			t.Fatalf("ordering mismatch for hero %s vs villain %s: got %d, reference %d (%s vs %s)",
				FormatCards(hero), FormatCards(villain), ours, ref,
				MustEvaluate(hero), MustEvaluate(villain))
		}
	}
}
