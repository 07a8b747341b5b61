package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dbtr/internal/config"
)

// PingCommand handles the ping command
type PingCommand struct {
	config *config.Config
	env    *Environment
}

// NewPingCommand creates a new PingCommand
func NewPingCommand(cfg *config.Config, env *Environment) *PingCommand {
	return &PingCommand{
		config: cfg,
		env:    env,
	}
}

// Execute runs the command
func (pc *PingCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := pc.env.Open(); err != nil {
		return err
	}

	if !pc.env.Runner().CanConnect(cmd.Context()) {
		return fmt.Errorf("cannot connect to %s database configured in %s", pc.config.Dialect, pc.config.SettingsPath)
	}

	color.Green("✓ Connected to %s database", pc.config.Dialect)
	return nil
}
