package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dbtr/internal/config"
	"dbtr/internal/discovery"
	"dbtr/internal/storage"
	"dbtr/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	env       *Environment
	filter    *discovery.Filter
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	env *Environment,
	filter *discovery.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		env:       env,
		filter:    filter,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := lc.env.Open(); err != nil {
		return err
	}

	tests, err := lc.env.Discoverer().ListTests(cmd.Context())
	if err != nil {
		return err
	}
	tests = lc.filter.FilterByName(tests, lc.config.Flags.NameFilter)

	if len(tests) == 0 {
		color.Yellow("No tests found in schema %s", lc.config.Schema)
		return nil
	}

	// Mark failures from the last run when a results file exists
	var failed map[string]struct{}
	if last, err := lc.storage.Load(); err == nil {
		failed = last.FailedTests()
	}

	lc.formatter.PrintTestList(tests, failed)
	return nil
}
