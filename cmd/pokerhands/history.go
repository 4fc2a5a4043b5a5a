package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhands/internal/gameid"
	"github.com/lox/pokerhands/internal/phh"
)

// HistoryCmd summarises a PHH session file written by play or simulate.
type HistoryCmd struct {
	File  string `arg:"" type:"existingfile" help:"Path to a .phhs session file"`
	Limit int    `help:"Maximum number of hands to show (0 = all)"`
}

func (cmd *HistoryCmd) Run(a *app) error {
	f, err := os.Open(filepath.Clean(cmd.File))
	if err != nil {
		return err
	}
	defer f.Close()

	hands, err := phh.DecodeSession(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cmd.File, err)
	}
	if len(hands) == 0 {
		return fmt.Errorf("no hands found in %s", cmd.File)
	}

	limit := len(hands)
	if cmd.Limit > 0 && cmd.Limit < limit {
		limit = cmd.Limit
	}

	totals := make(map[string]int)
	var order []string
	showdowns := 0

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, hand := range hands[:limit] {
		net := hand.Net()
		parts := make([]string, 0, len(hand.Players))
		for i, name := range hand.Players {
			if i >= len(net) {
				break
			}
			if _, ok := totals[name]; !ok {
				order = append(order, name)
			}
			totals[name] += net[i]
			parts = append(parts, fmt.Sprintf("%s %+d", name, net[i]))
		}

		board := "-"
		if cards, err := phh.ParseCards(hand.Board()); err == nil && len(cards) > 0 {
			board = renderCards(cards)
		}
		end := mutedStyle.Render("fold")
		if hand.WentToShowdown() {
			end = categoryStyle.Render("showdown")
			showdowns++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", headerStyle.Render(hand.HandID), strings.Join(parts, "  "), board, end)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	for _, name := range order {
		fmt.Fprintf(a.out, "%s %s\n", handStyle.Render(name), winStyle.Render(fmt.Sprintf("%+d", totals[name])))
	}
	fmt.Fprintf(a.out, "\n%s\n", mutedStyle.Render(fmt.Sprintf("%d of %d hands, %d showdowns", limit, len(hands), showdowns)))
	return nil
}

// openHistory records hand histories to path, replacing any existing file.
// The returned close function detaches the recorder and reports any write
// error.
func openHistory(path string, logger *log.Logger) (*phh.Recorder, func() error, error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}

	session := gameid.Generate()
	logger.Info("recording hand history", "file", path, "session", session)

	rec := phh.NewRecorder(f, session, logger)
	return rec, func() error {
		rec.Detach()
		closeErr := f.Close()
		if err := rec.Err(); err != nil {
			return err
		}
		return closeErr
	}, nil
}
