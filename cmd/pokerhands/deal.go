package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/lox/pokerhands/internal/randutil"
	"github.com/lox/pokerhands/poker"
)

// DealCmd deals hole cards to several players from a shuffled deck.
type DealCmd struct {
	Players int   `short:"n" default:"2" help:"Number of players (2-10)"`
	Board   int   `short:"b" default:"5" help:"Community cards to deal (0, 3, 4 or 5)"`
	Seed    int64 `help:"Random seed for reproducible deals"`
}

func (cmd *DealCmd) Validate() error {
	if cmd.Players < 2 || cmd.Players > 10 {
		return fmt.Errorf("players must be between 2 and 10, got %d", cmd.Players)
	}
	switch cmd.Board {
	case 0, 3, 4, 5:
		return nil
	}
	return fmt.Errorf("board must have 0, 3, 4 or 5 cards, got %d", cmd.Board)
}

func (cmd *DealCmd) Run(a *app) error {
	seed := randutil.Seed(cmd.Seed)
	a.logger.Debug("dealing", "seed", seed, "players", cmd.Players)
	deck := poker.NewSeededDeck(seed)

	hands := make([]*poker.Hand, cmd.Players)
	for i := range hands {
		hands[i] = poker.NewHand()
	}
	for range 2 {
		for _, h := range hands {
			c, err := deck.Draw()
			if err != nil {
				return err
			}
			h.Add(c)
		}
	}
	board, err := deck.Deal(cmd.Board)
	if err != nil {
		return err
	}

	var results []poker.Result
	var winners []int
	if len(board) > 0 {
		fmt.Fprintf(a.out, "%s %s\n\n", headerStyle.Render("board"), renderCards(board))
		for _, h := range hands {
			res, err := h.Best(board...)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		winners = poker.Winners(results)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for i, h := range hands {
		h.Sort()
		cards := h.Cards()
		fmt.Fprintf(w, "%s\t%s\t%s", headerStyle.Render(fmt.Sprintf("player %d", i+1)), renderCards(cards),
			mutedStyle.Render(string(poker.CategorizeHoleCards(cards[0], cards[1]))))
		if results != nil {
			fmt.Fprintf(w, "\t%s", categoryStyle.Render(results[i].Category.String()))
			for _, win := range winners {
				if win == i {
					fmt.Fprintf(w, "\t%s", winStyle.Render("winner"))
				}
			}
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n%s\n", mutedStyle.Render(fmt.Sprintf("seed %d", seed)))
	return nil
}
