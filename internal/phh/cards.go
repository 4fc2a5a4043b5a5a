package phh

import (
	"strings"

	"github.com/lox/pokerhands/poker"
)

// hidden stands in for a card the recorder never saw.
const hidden = "??"

// FormatCards writes cards back to back, e.g. "AhKh".
func FormatCards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

// ParseCards reads the card list of a dealing or showdown action. It returns
// nil for hidden cards.
func ParseCards(s string) ([]poker.Card, error) {
	if strings.Contains(s, hidden) {
		return nil, nil
	}
	return poker.ParseCards(s)
}
