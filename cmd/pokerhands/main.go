package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/pokerhands/cmd/pokerhands/shared"
	"github.com/lox/pokerhands/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"${config_file}" help:"Path to HCL configuration file"`
	LogLevel string           `short:"l" help:"Log level: debug, info, warn, error (overrides config)"`
	NoColor  bool             `help:"Disable colored output"`

	Eval     EvalCmd     `cmd:"" help:"Evaluate the best hand in each set of cards"`
	Compare  CompareCmd  `cmd:"" help:"Compare hands against a shared board and pick the winner"`
	Odds     OddsCmd     `cmd:"" help:"Estimate win and tie odds with a Monte Carlo simulation"`
	Deal     DealCmd     `cmd:"" help:"Deal random hole cards and a board"`
	Play     PlayCmd     `cmd:"" help:"Play a heads-up game in the terminal"`
	Simulate SimulateCmd `cmd:"" help:"Measure one bot against another over many deals"`
	History  HistoryCmd  `cmd:"" help:"Summarise a recorded PHH session file"`
	Cfg      ConfigCmd   `cmd:"config" help:"Manage the configuration file"`
}

// app carries the resolved configuration and I/O into every command.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *log.Logger
	out        io.Writer
	in         io.Reader
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerhands"),
		kong.Description("Poker hand evaluation, odds and heads-up play"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFilename,
			"bots":        botList(),
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	a, err := newApp(&cli, ctx.Command())
	ctx.FatalIfErrorf(err)

	runCtx, cancel := shared.SetupSignalHandler(a.logger)
	defer cancel()

	ctx.BindTo(runCtx, (*context.Context)(nil))
	err = ctx.Run(a)
	ctx.FatalIfErrorf(err)
}

func newApp(cli *CLI, command string) (*app, error) {
	initializing := strings.HasPrefix(command, "config init")

	cfg, err := config.Load(cli.Config)
	if err != nil && !initializing {
		return nil, fmt.Errorf("loading %s: %w", cli.Config, err)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if !initializing {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	logger := shared.SetupLogger(os.Stderr, shared.ParseLevel(cfg.LogLevel, log.WarnLevel))
	logger.Debug("configuration loaded", "file", cli.Config, "command", command)

	return &app{
		configPath: cli.Config,
		cfg:        cfg,
		logger:     logger,
		out:        os.Stdout,
		in:         os.Stdin,
	}, nil
}
