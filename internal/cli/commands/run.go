package commands

import (
	"errors"
	"fmt"

	"dbtr/internal/config"
	"dbtr/internal/discovery"
	"dbtr/internal/domain"
	"dbtr/internal/execution"
	"dbtr/internal/parser"
	"dbtr/internal/storage"
	"dbtr/internal/ui"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// ErrNoTests is returned when discovery finds nothing to run
var ErrNoTests = errors.New("no tests found")

// ErrTestsFailed is returned when at least one test failed
var ErrTestsFailed = errors.New("tests failed")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	env       *Environment
	filter    *discovery.Filter
	parser    parser.Parser
	storage   storage.Storage
	formatter *ui.Formatter
	log       hclog.Logger

	// progress is created per run when nil
	progress execution.Progress
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	env *Environment,
	filter *discovery.Filter,
	parser parser.Parser,
	st storage.Storage,
	formatter *ui.Formatter,
	log hclog.Logger,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		env:       env,
		filter:    filter,
		parser:    parser,
		storage:   st,
		formatter: formatter,
		log:       log,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := rc.env.Open(); err != nil {
		return err
	}

	// Discover tests
	tests, err := rc.env.Discoverer().ListTests(ctx)
	if err != nil {
		return err
	}
	tests = rc.filter.FilterByName(tests, rc.config.Flags.NameFilter)

	if len(tests) == 0 {
		return fmt.Errorf("%w in schema %s", ErrNoTests, rc.config.Schema)
	}
	rc.log.Info("discovered tests", "count", len(tests), "schema", rc.config.Schema)

	suite := execution.NewSuite(rc.env.Runner(), rc.log)
	if rc.progress != nil {
		suite.SetProgress(rc.progress)
	} else {
		suite.SetProgress(ui.NewProgressBar(len(tests)))
	}

	// Execute tests; a cancelled run still reports the tests that finished
	results, duration, runErr := suite.ExecuteWithOptions(ctx, tests, rc.config.Flags.FailFast)
	if runErr != nil {
		rc.log.Warn("run interrupted", "completed", len(results), "total", len(tests), "error", runErr)
		if len(results) == 0 {
			return runErr
		}
	}

	// Parse failures
	failures := []domain.TestFailure{}
	for _, result := range results {
		if !result.Success {
			failures = append(failures, rc.parser.ParseFailure(result))
		}
	}

	if !rc.config.Flags.NoSave {
		if err := rc.storage.Save(results, failures, duration); err != nil {
			return fmt.Errorf("failed to save test results: %w", err)
		}
	}

	rc.formatter.PrintMetaStats(&domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			TotalTests:      len(results),
			PassedTests:     len(results) - len(failures),
			FailedTests:     len(failures),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Dialect:         rc.config.Dialect,
			Schema:          rc.config.Schema,
		},
		Details: failures,
	})

	if runErr != nil {
		return fmt.Errorf("run interrupted after %d of %d test(s): %w", len(results), len(tests), runErr)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrTestsFailed, len(failures), len(results))
	}
	return nil
}
