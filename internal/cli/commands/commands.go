package commands

import (
	"dbtr/internal/cli"
	"dbtr/internal/config"
	"dbtr/internal/discovery"
	"dbtr/internal/parser"
	"dbtr/internal/storage"
	"dbtr/internal/ui"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	List   *ListCommand
	Ping   *PingCommand
	Faills *FaillsCommand

	env *Environment
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, log hclog.Logger) *Commands {
	env := NewEnvironment(cfg, log)
	filter := discovery.NewFilter()
	dbErrorParser := parser.NewDBErrorParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:    NewRunCommand(cfg, env, filter, dbErrorParser, jsonStorage, formatter, log.Named("run")),
		List:   NewListCommand(cfg, env, filter, jsonStorage, formatter),
		Ping:   NewPingCommand(cfg, env),
		Faills: NewFaillsCommand(jsonStorage, errorViewer),
		env:    env,
	}
}

// Close releases the database connection, if any command opened it
func (c *Commands) Close() error {
	return c.env.Close()
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.Flags = flags.ToConfigFlags()
		return nil
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", config.DefaultSettingsFile, "Path to the JSON settings file holding ConnectionStrings:Database")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error); overrides Logging:LogLevel:Default")

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run every test procedure, rolling back after each",
		Long:    "Discover stored procedures in the test schema and execute each inside its own transaction, which is always rolled back",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., 'Check*' or '*Order*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	runCmd.Flags().BoolVar(&flags.NoSave, "no-save", false, "Do not write the results file")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered tests",
		Long:    "Query the catalog and list test procedures without executing them",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., 'Check*' or '*Order*')")
	rootCmd.AddCommand(listCmd)

	// Ping command
	pingCmd := &cobra.Command{
		Use:     "ping",
		Short:   "Check that the database is reachable",
		Long:    "Open the configured connection and ping the database without running any test",
		RunE:    c.Ping.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(pingCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last test run in an interactive viewer",
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)
}
