package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/lox/pokerhands/poker"
)

// CompareCmd ranks hole-card hands against a shared board.
type CompareCmd struct {
	Hands []string `arg:"" help:"Player hands such as 'AcKd' (two or more)"`
	Board string   `short:"b" help:"Community cards, e.g. 'Td7s8h2c'"`
}

func (cmd *CompareCmd) Run(a *app) error {
	if len(cmd.Hands) < 2 {
		return fmt.Errorf("compare needs at least 2 hands, got %d", len(cmd.Hands))
	}

	board, err := poker.ParseCards(cmd.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	hands, err := parseHands(cmd.Hands, 0)
	if err != nil {
		return err
	}
	if err := validateNoDuplicates(hands, board); err != nil {
		return err
	}

	results := make([]poker.Result, len(hands))
	for i, hand := range hands {
		res, err := poker.BestHand(hand, board)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		results[i] = res
	}
	winners := poker.Winners(results)

	if len(board) > 0 {
		fmt.Fprintf(a.out, "%s %s\n\n", headerStyle.Render("board"), renderCards(board))
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("best"),
		headerStyle.Render("result"))
	for i, hand := range hands {
		outcome := mutedStyle.Render("loses")
		for _, win := range winners {
			if win == i {
				outcome = winStyle.Render("wins")
				if len(winners) > 1 {
					outcome = tieStyle.Render("ties")
				}
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			handStyle.Render(poker.FormatCards(hand)),
			categoryStyle.Render(results[i].Category.String()),
			outcome)
	}
	return w.Flush()
}

// parseHands parses each hand string. A non-zero size requires exactly that
// many cards per hand.
func parseHands(handStrings []string, size int) ([][]poker.Card, error) {
	hands := make([][]poker.Card, 0, len(handStrings))
	for i, s := range handStrings {
		hand, err := poker.ParseCards(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if size > 0 && len(hand) != size {
			return nil, fmt.Errorf("hand %d: must contain exactly %d cards, got %d", i+1, size, len(hand))
		}
		if len(hand) == 0 {
			return nil, fmt.Errorf("hand %d is empty", i+1)
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func validateNoDuplicates(hands [][]poker.Card, board []poker.Card) error {
	seen := make(map[poker.Card]bool)

	for _, card := range board {
		if seen[card] {
			return fmt.Errorf("duplicate card on board: %s", card)
		}
		seen[card] = true
	}

	for i, hand := range hands {
		for _, card := range hand {
			if seen[card] {
				return fmt.Errorf("duplicate card found in hand %d: %s", i+1, card)
			}
			seen[card] = true
		}
	}
	return nil
}
