package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhands/internal/config"
	"github.com/lox/pokerhands/poker"
)

func newTestApp(input string) (*app, *bytes.Buffer) {
	var out bytes.Buffer
	return &app{
		configPath: filepath.Join(os.TempDir(), config.DefaultFilename),
		cfg:        config.Default(),
		logger:     log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
		out:        &out,
		in:         strings.NewReader(input),
	}, &out
}

func TestParseHands(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		size    int
		wantErr string
	}{
		{name: "valid pair", input: []string{"AcKd", "Qh Js"}, size: 2},
		{name: "any size", input: []string{"AcKdQh"}, size: 0},
		{name: "wrong size", input: []string{"AcKdQh"}, size: 2, wantErr: "exactly 2 cards"},
		{name: "bad card", input: []string{"AcKx"}, size: 2, wantErr: "hand 1"},
		{name: "empty", input: []string{"  "}, size: 0, wantErr: "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hands, err := parseHands(tt.input, tt.size)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, hands, len(tt.input))
		})
	}
}

func TestValidateNoDuplicates(t *testing.T) {
	hands := [][]poker.Card{poker.MustParseCards("AsKs"), poker.MustParseCards("QdQc")}

	require.NoError(t, validateNoDuplicates(hands, poker.MustParseCards("2c3c4c")))

	err := validateNoDuplicates(hands, poker.MustParseCards("Qd7h2c"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hand 2")

	err = validateNoDuplicates(hands, poker.MustParseCards("7h7h"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board")
}

func TestEvalCmd(t *testing.T) {
	a, out := newTestApp("")
	cmd := &EvalCmd{Cards: []string{"AsKsQsJsTs", "7h 7d 7c 7s 2d"}, Explain: true}
	require.NoError(t, cmd.Run(a))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Straight Flush")
	assert.Contains(t, lines[0], "Ace")
	assert.Contains(t, lines[1], "Four of a Kind")
	assert.Contains(t, lines[1], "7, 2")
}

func TestEvalCmdErrors(t *testing.T) {
	a, _ := newTestApp("")

	err := (&EvalCmd{Cards: []string{"AsKs"}}).Run(a)
	require.ErrorIs(t, err, poker.ErrTooFewCards)

	err = (&EvalCmd{Cards: []string{"AsKsQsJsT"}}).Run(a)
	require.ErrorIs(t, err, poker.ErrInvalidCard)
}

func TestCompareCmd(t *testing.T) {
	a, out := newTestApp("")
	cmd := &CompareCmd{Hands: []string{"AsAh", "KcKd"}, Board: "2c 7d 9h 3s 4c"}
	require.NoError(t, cmd.Run(a))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	last := lines[len(lines)-2:]
	assert.Contains(t, last[0], "As Ah")
	assert.Contains(t, last[0], "wins")
	assert.Contains(t, last[1], "loses")
}

func TestCompareCmdTie(t *testing.T) {
	a, out := newTestApp("")
	cmd := &CompareCmd{Hands: []string{"AsKh", "AdKd"}, Board: "2c 7d 9h 3s 4c"}
	require.NoError(t, cmd.Run(a))
	assert.Equal(t, 2, strings.Count(out.String(), "ties"))
}

func TestCompareCmdRejectsDuplicates(t *testing.T) {
	a, _ := newTestApp("")
	cmd := &CompareCmd{Hands: []string{"AsKh", "AsKd"}}
	require.Error(t, cmd.Run(a))
}

func TestOddsCmd(t *testing.T) {
	a, out := newTestApp("")
	cmd := &OddsCmd{
		Hands:         []string{"AsAh", "KcKd"},
		Board:         "2c 7d 9h 3s 4c",
		Iterations:    100,
		Seed:          5,
		Possibilities: true,
	}
	require.NoError(t, cmd.Run(context.Background(), a))

	s := out.String()
	assert.Contains(t, s, "100.0%")
	assert.Contains(t, s, "One Pair")
	assert.Contains(t, s, "100 iterations")
	assert.Contains(t, s, "seed 5")
}

func TestDealCmdIsReproducible(t *testing.T) {
	a1, out1 := newTestApp("")
	a2, out2 := newTestApp("")

	cmd := &DealCmd{Players: 3, Board: 5, Seed: 11}
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.Run(a1))
	require.NoError(t, cmd.Run(a2))

	assert.Equal(t, out1.String(), out2.String())
	assert.Contains(t, out1.String(), "player 3")
	assert.Contains(t, out1.String(), "winner")
}

func TestDealCmdValidate(t *testing.T) {
	assert.Error(t, (&DealCmd{Players: 1, Board: 5}).Validate())
	assert.Error(t, (&DealCmd{Players: 11, Board: 5}).Validate())
	assert.Error(t, (&DealCmd{Players: 2, Board: 2}).Validate())
	assert.NoError(t, (&DealCmd{Players: 2, Board: 0}).Validate())
}

func TestPlayCmdScriptedSession(t *testing.T) {
	a, out := newTestApp("check\ncheck\nbet 0\nbogus\nstatus\nquit\n")
	cmd := &PlayCmd{Players: []string{"Alice", "Bob"}, Seed: 3}
	require.NoError(t, cmd.Run(context.Background(), a))

	s := out.String()
	assert.Contains(t, s, "round 1")
	assert.Contains(t, s, "Alice check")
	assert.Contains(t, s, "Bob check")
	assert.Contains(t, s, "board")
	assert.Contains(t, s, "invalid amount")
	assert.Contains(t, s, `unknown command "bogus"`)
	assert.Contains(t, s, "Alice: 1000")
}

func TestPlayCmdAllInToTheEnd(t *testing.T) {
	a, out := newTestApp("bet 100\ncall\n")
	cmd := &PlayCmd{Players: []string{"Alice", "Bob"}, Money: 100, Seed: 8}
	require.NoError(t, cmd.Run(context.Background(), a))

	s := out.String()
	assert.Contains(t, s, "Alice shows")
	assert.Contains(t, s, "Bob shows")
	// Either someone busts or the pot is split and input runs out.
	assert.True(t, strings.Contains(s, "game over") || strings.Contains(s, "round 2"))
}

func TestPlayCmdStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, _ := newTestApp("check\n")
	err := (&PlayCmd{Players: []string{"Alice", "Bob"}, Seed: 1}).Run(ctx, a)
	require.ErrorIs(t, err, context.Canceled)
}

func TestConfigInitCmd(t *testing.T) {
	a, out := newTestApp("")
	path := filepath.Join(t.TempDir(), "pokerhands.hcl")

	require.NoError(t, (&ConfigInitCmd{Path: path}).Run(a))
	assert.Contains(t, out.String(), "wrote "+path)

	require.Error(t, (&ConfigInitCmd{Path: path}).Run(a))
	require.NoError(t, (&ConfigInitCmd{Path: path, Force: true}).Run(a))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestConfigShowCmd(t *testing.T) {
	a, out := newTestApp("")
	require.NoError(t, (&ConfigShowCmd{}).Run(a))
	assert.Contains(t, out.String(), "log_level")
	assert.Contains(t, out.String(), "starting_money")
}

func TestSimulateCmd(t *testing.T) {
	a, out := newTestApp("")
	cmd := &SimulateCmd{Hero: "tag", Villain: "call", Rounds: 20, Seed: 4}
	require.NoError(t, cmd.Run(context.Background(), a))

	s := out.String()
	assert.Contains(t, s, "tag vs call")
	assert.Contains(t, s, "40 rounds")
	assert.Contains(t, s, "seed 4")

	err := (&SimulateCmd{Hero: "tag", Villain: "nobody", Rounds: 1}).Run(context.Background(), a)
	assert.ErrorContains(t, err, "unknown bot")
}

func TestPlayRecordsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.phhs")
	a, _ := newTestApp("bet 10\nraise 10\nfold\nquit\n")
	cmd := &PlayCmd{Players: []string{"Alice", "Bob"}, Seed: 3, History: path}
	require.NoError(t, cmd.Run(context.Background(), a))

	b, out := newTestApp("")
	require.NoError(t, (&HistoryCmd{File: path}).Run(b))

	s := out.String()
	assert.Contains(t, s, "Alice -10")
	assert.Contains(t, s, "Bob +10")
	assert.Contains(t, s, "fold")
	assert.Contains(t, s, "1 of 1 hands, 0 showdowns")
}

func TestSimulateRecordsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.phhs")
	a, _ := newTestApp("")
	cmd := &SimulateCmd{Hero: "call", Villain: "call", Rounds: 2, Seed: 1, History: path}
	require.NoError(t, cmd.Run(context.Background(), a))

	b, out := newTestApp("")
	require.NoError(t, (&HistoryCmd{File: path, Limit: 3}).Run(b))
	assert.Contains(t, out.String(), "3 of 4 hands, 3 showdowns")
	assert.Contains(t, out.String(), "hero:call")
}

func TestHistoryCmdRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.phhs")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	a, _ := newTestApp("")
	assert.ErrorContains(t, (&HistoryCmd{File: path}).Run(a), "no hands")
}
