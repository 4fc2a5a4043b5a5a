// Package config loads the HCL settings shared by the pokerhands commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/lox/pokerhands/internal/fileutil"
)

// DefaultFilename is looked up in the working directory when no path is given.
const DefaultFilename = "pokerhands.hcl"

// Config is the root of the configuration file.
type Config struct {
	LogLevel string        `hcl:"log_level,optional"`
	Game     *GameSettings `hcl:"game,block"`
	Odds     *OddsSettings `hcl:"odds,block"`
}

// GameSettings configures the heads-up game.
type GameSettings struct {
	Players       []string `hcl:"players,optional"`
	StartingMoney int      `hcl:"starting_money,optional"`
	Seed          int64    `hcl:"seed,optional"`
}

// OddsSettings configures equity simulations.
type OddsSettings struct {
	Iterations int   `hcl:"iterations,optional"`
	Workers    int   `hcl:"workers,optional"`
	Seed       int64 `hcl:"seed,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Game: &GameSettings{
			Players:       []string{"Player 1", "Player 2"},
			StartingMoney: 1000,
		},
		Odds: &OddsSettings{
			Iterations: 100_000,
		},
	}
}

// Load reads filename, falling back to defaults when it does not exist.
// Settings missing from the file keep their default values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}

	if c.Game == nil {
		c.Game = defaults.Game
	}
	if len(c.Game.Players) == 0 {
		c.Game.Players = defaults.Game.Players
	}
	if c.Game.StartingMoney == 0 {
		c.Game.StartingMoney = defaults.Game.StartingMoney
	}

	if c.Odds == nil {
		c.Odds = defaults.Odds
	}
	if c.Odds.Iterations == 0 {
		c.Odds.Iterations = defaults.Odds.Iterations
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if len(c.Game.Players) != 2 {
		return fmt.Errorf("game needs exactly 2 players, got %d", len(c.Game.Players))
	}
	if slices.Contains(c.Game.Players, "") {
		return fmt.Errorf("player names cannot be empty")
	}
	if c.Game.Players[0] == c.Game.Players[1] {
		return fmt.Errorf("player names must differ")
	}
	if c.Game.StartingMoney <= 0 {
		return fmt.Errorf("starting money must be positive")
	}

	if c.Odds.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive")
	}
	if c.Odds.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	return nil
}

// Level returns the parsed log level, defaulting to warn.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// Encode renders the configuration as HCL.
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}

// WriteDefault writes the default configuration to filename. An existing
// file is only replaced when overwrite is set.
func WriteDefault(filename string, overwrite bool) error {
	data := Default().Encode()
	if overwrite {
		return fileutil.WriteFileAtomic(filename, data, 0o644)
	}
	return fileutil.CreateFileAtomic(filename, data, 0o644)
}
