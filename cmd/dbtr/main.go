package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dbtr/internal/cli"
	"dbtr/internal/cli/commands"
	"dbtr/internal/config"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "dbtr",
		Short:         "Stored procedure test runner",
		Long:          `Discover stored procedures in the Tests schema and run each one as a unit test inside a transaction that is always rolled back.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "dbtr",
		Level:  hclog.Info,
		Output: os.Stderr,
	})

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, logger)
	defer cmds.Close()

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
