package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/lox/pokerhands/internal/equity"
	"github.com/lox/pokerhands/poker"
)

// OddsCmd estimates showdown equity for known hole cards.
type OddsCmd struct {
	Hands         []string `arg:"" help:"Player hands in format 'AcKd QhJs' (space separated, quoted)"`
	Board         string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Possibilities bool     `short:"p" help:"Show detailed hand type probabilities"`
	Iterations    int      `short:"i" help:"Number of Monte Carlo iterations (overrides config)"`
	Opponents     int      `short:"o" help:"Random opponents to add to the table"`
	Workers       int      `short:"w" help:"Parallel workers (overrides config)"`
	Seed          int64    `help:"Random seed for reproducible results (overrides config)"`
}

func (cmd *OddsCmd) Run(ctx context.Context, a *app) error {
	hands, err := parseHands(cmd.Hands, 2)
	if err != nil {
		return err
	}
	board, err := poker.ParseCards(cmd.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}

	req := equity.Request{
		Hands:      hands,
		Board:      board,
		Opponents:  cmd.Opponents,
		Iterations: firstNonZero(cmd.Iterations, a.cfg.Odds.Iterations),
		Workers:    firstNonZero(cmd.Workers, a.cfg.Odds.Workers),
		Seed:       firstNonZero(cmd.Seed, a.cfg.Odds.Seed),
		Logger:     a.logger,
	}

	start := time.Now()
	report, err := equity.Calculate(ctx, req)
	if err != nil {
		return err
	}
	a.logger.Info("simulation complete", "seed", report.Seed, "workers", report.Workers, "elapsed", time.Since(start))

	displayReport(a, report, cmd.Possibilities, time.Since(start))
	return nil
}

func displayReport(a *app, report *equity.Report, showPossibilities bool, duration time.Duration) {
	if len(report.Board) > 0 {
		fmt.Fprintf(a.out, "%s\n", headerStyle.Render("board"))
		fmt.Fprintf(a.out, "%s\n\n", renderCards(report.Board))
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("equity"),
		headerStyle.Render("preflop"))

	for _, h := range report.Hands {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			handStyle.Render(poker.FormatCards(h.Hand)),
			winStyle.Render(fmt.Sprintf("%.1f%%", h.WinRate(report.Iterations)*100)),
			tieStyle.Render(fmt.Sprintf("%.1f%%", h.TieRate(report.Iterations)*100)),
			percentStyle.Render(fmt.Sprintf("%.1f%% ±%.1f", h.Equity*100, 1.96*h.StdError*100)),
			mutedStyle.Render(string(poker.CategorizeHoleCards(h.Hand[0], h.Hand[1]))))
	}
	w.Flush()

	if showPossibilities && len(report.Hands) > 0 {
		fmt.Fprintln(a.out)
		displayPossibilities(a, report)
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "%d iterations in %v (seed %d)\n", report.Iterations, duration.Truncate(time.Millisecond), report.Seed)
}

func displayPossibilities(a *app, report *equity.Report) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s", categoryStyle.Render("hand"))
	for _, h := range report.Hands {
		fmt.Fprintf(w, "\t%s", handStyle.Render(poker.FormatCards(h.Hand)))
	}
	fmt.Fprintln(w)

	for _, category := range poker.Categories {
		seen := false
		for _, h := range report.Hands {
			if h.Categories[category] > 0 {
				seen = true
			}
		}
		if !seen {
			continue
		}

		fmt.Fprintf(w, "%s", categoryStyle.Render(category.String()))
		for _, h := range report.Hands {
			count := h.Categories[category]
			if count == 0 {
				fmt.Fprintf(w, "\t%s", percentStyle.Render("."))
				continue
			}
			pct := float64(count) / float64(report.Iterations) * 100
			fmt.Fprintf(w, "\t%s", percentStyle.Render(fmt.Sprintf("%.1f%%", pct)))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func firstNonZero[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
