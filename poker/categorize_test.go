package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeHoleCards(t *testing.T) {
	want := map[HoleCardCategory][]string{
		CategoryPremium: {"AsAh", "KdKc", "JhJd", "AcKh", "KsAs"},
		CategoryStrong:  {"TcTh", "AdQs", "JcAc"},
		CategoryMedium:  {"9c9h", "7d7s", "KsQs", "TdJd"},
		CategoryWeak:    {"6c6h", "2d2s", "7h6h", "9s7s"},
		CategoryTrash:   {"7c2h", "9d3s", "KhQd", "8c4c"},
	}

	for category, hands := range want {
		for _, hand := range hands {
			cards := MustParseCards(hand)
			assert.Equal(t, category, CategorizeHoleCards(cards[0], cards[1]), hand)
			assert.Equal(t, category, CategorizeHoleCards(cards[1], cards[0]), "order does not matter for %s", hand)
		}
	}
}

func TestCategorizeInvalidCards(t *testing.T) {
	assert.Equal(t, CategoryUnknown, CategorizeHoleCards(Card{}, MustParseCards("As")[0]))
}
