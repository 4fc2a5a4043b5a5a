package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lox/pokerhands/internal/bot"
	"github.com/lox/pokerhands/internal/simulator"
)

// SimulateCmd plays two bots against each other with duplicate deals.
type SimulateCmd struct {
	Hero    string `arg:"" help:"Bot to measure (${bots})"`
	Villain string `arg:"" help:"Opposing bot (${bots})"`
	Rounds  int    `short:"r" default:"1000" help:"Deals to play, each from both seats"`
	Money   int    `short:"m" help:"Starting money per round (overrides config)"`
	Seed    int64  `help:"Random seed for reproducible runs (overrides config)"`
	History string `type:"path" help:"Write a PHH hand history of every round to this file"`
}

func (cmd *SimulateCmd) Run(ctx context.Context, a *app) error {
	cfg := simulator.Config{
		Rounds:        cmd.Rounds,
		Hero:          cmd.Hero,
		Villain:       cmd.Villain,
		StartingMoney: firstNonZero(cmd.Money, a.cfg.Game.StartingMoney),
		Seed:          firstNonZero(cmd.Seed, a.cfg.Game.Seed),
		Logger:        a.logger,
	}
	if cmd.History != "" {
		f, err := os.Create(filepath.Clean(cmd.History))
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer f.Close()
		cfg.History = f
	}

	sim, err := simulator.New(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	lo, hi := res.Net.ConfidenceInterval95()
	fmt.Fprintf(a.out, "%s vs %s\n\n", handStyle.Render(cmd.Hero), handStyle.Render(cmd.Villain))
	fmt.Fprintf(a.out, "%s %s per round (95%% CI %.2f to %.2f)\n",
		headerStyle.Render("net"),
		percentStyle.Render(fmt.Sprintf("%+.2f", res.Net.Mean())), lo, hi)
	fmt.Fprintf(a.out, "%s %s  %s %d  %s %d\n",
		headerStyle.Render("won"), winStyle.Render(fmt.Sprint(res.Wins)),
		headerStyle.Render("lost"), res.Losses,
		headerStyle.Render("split"), res.Splits)
	fmt.Fprintf(a.out, "%s %d of %d\n", headerStyle.Render("showdowns"), res.Showdowns, res.Rounds)
	fmt.Fprintf(a.out, "\n%s\n", mutedStyle.Render(fmt.Sprintf("%d rounds in %v (seed %d)", res.Rounds, time.Since(start).Truncate(time.Millisecond), res.Seed)))
	return nil
}

func botList() string {
	return strings.Join(bot.Kinds, ", ")
}
