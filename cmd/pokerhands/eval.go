package main

import (
	"fmt"
	"strings"

	"github.com/lox/pokerhands/poker"
)

// EvalCmd evaluates independent sets of five or more cards.
type EvalCmd struct {
	Cards   []string `arg:"" help:"Card sets such as 'AsKsQsJsTs' or 'Ah Kd 7c 7d 2s 9h 9c' (quote sets with spaces)"`
	Explain bool     `short:"e" help:"Spell out the tie-break ranks"`
}

func (cmd *EvalCmd) Run(a *app) error {
	for i, set := range cmd.Cards {
		cards, err := poker.ParseCards(set)
		if err != nil {
			return fmt.Errorf("set %d: %w", i+1, err)
		}
		res, err := poker.Evaluate(cards)
		if err != nil {
			return fmt.Errorf("set %d: %w", i+1, err)
		}
		a.logger.Debug("evaluated", "cards", poker.FormatCards(cards), "result", res)

		fmt.Fprintf(a.out, "%s  %s", handStyle.Render(poker.FormatCards(cards)), categoryStyle.Render(res.Category.String()))
		if cmd.Explain {
			fmt.Fprintf(a.out, "  %s", mutedStyle.Render(explainKey(res)))
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

func explainKey(res poker.Result) string {
	names := make([]string, len(res.Key))
	for i, r := range res.Key {
		names[i] = r.Name()
	}
	return strings.Join(names, ", ")
}
