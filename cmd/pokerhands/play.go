package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pokerhands/internal/game"
	"github.com/lox/pokerhands/internal/phh"
	"github.com/lox/pokerhands/internal/randutil"
	"github.com/lox/pokerhands/poker"
)

// PlayCmd runs a heads-up game driven by commands typed on stdin. Both
// players share the terminal, so each player's hole cards are shown when it
// is their turn.
type PlayCmd struct {
	Players []string `short:"p" help:"The two player names (overrides config)"`
	Money   int      `short:"m" help:"Starting money per player (overrides config)"`
	Seed    int64    `help:"Random seed for reproducible shuffles (overrides config)"`
	History string   `type:"path" help:"Write a PHH hand history of the session to this file"`
}

const playHelp = "commands: check, bet <amount>, call, fold, status, help, quit"

func (cmd *PlayCmd) Run(ctx context.Context, a *app) (retErr error) {
	names := a.cfg.Game.Players
	if len(cmd.Players) > 0 {
		names = cmd.Players
	}
	if len(names) != 2 {
		return fmt.Errorf("play needs exactly 2 player names, got %d", len(names))
	}
	seed := randutil.Seed(firstNonZero(cmd.Seed, a.cfg.Game.Seed))

	var rec *phh.Recorder
	if cmd.History != "" {
		r, closeHistory, err := openHistory(cmd.History, a.logger)
		if err != nil {
			return err
		}
		rec = r
		defer func() {
			if err := closeHistory(); err != nil && retErr == nil {
				retErr = err
			}
		}()
	}

	g, err := game.NewGame([2]string{names[0], names[1]},
		game.WithStartingMoney(firstNonZero(cmd.Money, a.cfg.Game.StartingMoney)),
		game.WithSeed(seed),
		game.WithLogger(a.logger),
		game.WithObserver(func(ev game.Event) {
			printEvent(a, ev)
			if rec != nil {
				rec.Observe(ev)
			}
		}),
	)
	if err != nil {
		return err
	}
	if rec != nil {
		rec.Attach(g)
	}
	a.logger.Info("game started", "seed", seed)

	p := &playLoop{app: a, game: g, scanner: bufio.NewScanner(a.in)}
	return p.run(ctx)
}

type playLoop struct {
	app     *app
	game    *game.Game
	scanner *bufio.Scanner
}

func (p *playLoop) run(ctx context.Context) error {
	fmt.Fprintln(p.app.out, mutedStyle.Render(playHelp))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.advance(); err != nil {
			return err
		}
		if p.game.State() == game.Finished {
			return nil
		}

		p.prompt()
		if !p.scanner.Scan() {
			return p.scanner.Err()
		}
		quit, err := p.handle(p.scanner.Text())
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(p.app.out, percentStyle.Render(err.Error()))
		}
	}
}

// advance performs the transitions that need no player input.
func (p *playLoop) advance() error {
	for {
		switch p.game.State() {
		case game.RevealFlop, game.RevealTurn, game.RevealRiver:
			if err := p.game.Reveal(); err != nil {
				return err
			}
		case game.Showdown:
			players := p.game.Players()
			for _, pl := range players {
				fmt.Fprintf(p.app.out, "%s shows %s\n", pl.Name, renderCards(pl.Hand.Cards()))
			}
			if _, err := p.game.Showdown(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *playLoop) prompt() {
	players := p.game.Players()
	me := players[p.game.Active()]
	cards := me.Hand.Cards()

	fmt.Fprintf(p.app.out, "\n%s  %s  %s  %s\n",
		headerStyle.Render(me.Name),
		renderCards(cards),
		mutedStyle.Render(string(poker.CategorizeHoleCards(cards[0], cards[1]))),
		mutedStyle.Render(fmt.Sprintf("money %d, pot %d, to call %d", me.Money, p.game.Pot(), p.game.Owed())))
	if board := p.game.Board(); len(board) > 0 {
		res, err := me.Hand.Best(board...)
		if err == nil {
			fmt.Fprintf(p.app.out, "board %s  %s\n", renderCards(board), categoryStyle.Render(res.Category.String()))
		}
	}
	fmt.Fprint(p.app.out, "> ")
}

func (p *playLoop) handle(line string) (bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "check", "k":
		return false, p.game.Check()
	case "call", "c":
		return false, p.game.Call()
	case "fold", "f":
		_, err := p.game.Fold()
		return false, err
	case "bet", "raise", "b", "r":
		if len(fields) != 2 {
			return false, errors.New("usage: bet <amount>")
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("invalid amount %q", fields[1])
		}
		return false, p.game.Bet(amount)
	case "status", "s":
		for _, pl := range p.game.Players() {
			fmt.Fprintf(p.app.out, "%s: %d\n", pl.Name, pl.Money)
		}
		return false, nil
	case "help", "h", "?":
		fmt.Fprintln(p.app.out, playHelp)
		return false, nil
	case "quit", "q", "exit":
		return true, nil
	}
	return false, fmt.Errorf("unknown command %q, type help", fields[0])
}

func printEvent(a *app, ev game.Event) {
	switch ev.Type {
	case game.EventTypeRoundStarted:
		fmt.Fprintf(a.out, "\n%s\n", headerStyle.Render(fmt.Sprintf("round %d", ev.Round)))
	case game.EventTypeRevealed:
		fmt.Fprintf(a.out, "%s %s\n", categoryStyle.Render("board"), renderCards(ev.Cards))
	case game.EventTypeWon, game.EventTypeFinished:
		fmt.Fprintln(a.out, winStyle.Render(ev.String()))
	default:
		fmt.Fprintln(a.out, ev.String())
	}
}
