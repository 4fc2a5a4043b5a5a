package main

import (
	"fmt"

	"github.com/lox/pokerhands/internal/config"
)

// ConfigCmd groups configuration file utilities.
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"init" help:"Write a configuration file with the default settings"`
	Show ConfigShowCmd `cmd:"show" help:"Print the effective configuration"`
}

type ConfigInitCmd struct {
	Path  string `arg:"" optional:"" help:"Where to write the file (defaults to --config)"`
	Force bool   `short:"f" help:"Overwrite an existing file"`
}

func (cmd *ConfigInitCmd) Run(a *app) error {
	path := cmd.Path
	if path == "" {
		path = a.configPath
	}
	if err := config.WriteDefault(path, cmd.Force); err != nil {
		return fmt.Errorf("writing %s: %w (use --force to overwrite)", path, err)
	}
	a.logger.Info("wrote default configuration", "file", path)
	fmt.Fprintf(a.out, "wrote %s\n", path)
	return nil
}

type ConfigShowCmd struct{}

func (cmd *ConfigShowCmd) Run(a *app) error {
	_, err := a.out.Write(a.cfg.Encode())
	return err
}
