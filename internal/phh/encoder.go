package phh

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokerhands/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}
	return toml.NewEncoder(w).Encode(hand)
}

// EncodeSection writes hand as the table [n] of a session file.
func EncodeSection(w io.Writer, n int, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	return enc.Encode(map[string]*HandHistory{strconv.Itoa(n): hand})
}

// DecodeSession reads every hand of a session file in hand order.
func DecodeSession(r io.Reader) ([]HandHistory, error) {
	sections := make(map[string]HandHistory)
	if _, err := toml.NewDecoder(r).Decode(&sections); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}

	keys := make([]int, 0, len(sections))
	for k := range sections {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("phh: section %q is not a hand number", k)
		}
		keys = append(keys, n)
	}
	slices.Sort(keys)

	hands := make([]HandHistory, 0, len(keys))
	for _, n := range keys {
		hand := sections[strconv.Itoa(n)]
		if hand.HandID == "" {
			hand.HandID = fmt.Sprintf("hand-%d", n)
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

// FormatAction converts a game action to its PHH string. streetTotal is what
// the player has put in on this street after the action, which is how PHH
// expresses bets and raises. The boolean is false when there is nothing to
// record.
func FormatAction(seat int, action game.Action, streetTotal int) (string, bool) {
	player := fmt.Sprintf("p%d", seat+1)
	switch action {
	case game.Fold:
		return player + " f", true
	case game.Check, game.Call:
		return player + " cc", true
	case game.Bet:
		if streetTotal <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, streetTotal), true
	}
	return "", false
}

// DealtHole returns the dealing action for a player's hole cards.
func DealtHole(seat int, cards string) string {
	return fmt.Sprintf("d dh p%d %s", seat+1, cards)
}

// DealtBoard returns the dealing action for community cards.
func DealtBoard(cards string) string {
	return "d db " + cards
}

// ShowedHand returns the showdown action for a player.
func ShowedHand(seat int, cards string) string {
	return fmt.Sprintf("p%d sm %s", seat+1, cards)
}

// Board collects the community cards dealt in a hand's actions.
func (h *HandHistory) Board() string {
	var b strings.Builder
	for _, a := range h.Actions {
		if cards, ok := strings.CutPrefix(a, "d db "); ok {
			b.WriteString(cards)
		}
	}
	return b.String()
}

// WentToShowdown reports whether any player showed their hand.
func (h *HandHistory) WentToShowdown() bool {
	return slices.ContainsFunc(h.Actions, func(a string) bool {
		return strings.Contains(a, " sm ")
	})
}
