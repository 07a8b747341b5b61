package execution

import (
	"context"
	"time"

	"dbtr/internal/domain"

	"github.com/hashicorp/go-hclog"
)

// Suite runs tests one at a time, each in its own transaction
type Suite struct {
	runner   TestRunner
	progress Progress
	log      hclog.Logger
}

// NewSuite creates a new Suite
func NewSuite(runner TestRunner, log hclog.Logger) *Suite {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Suite{runner: runner, log: log}
}

// SetProgress sets the progress reporter for the suite
func (s *Suite) SetProgress(progress Progress) {
	s.progress = progress
}

// Execute runs every test; a failing test does not stop the rest.
func (s *Suite) Execute(ctx context.Context, tests []domain.TestReference) ([]domain.TestResult, time.Duration, error) {
	return s.ExecuteWithOptions(ctx, tests, false)
}

// ExecuteWithOptions runs tests in order, optionally stopping after the first failure.
// Cancelling ctx stops before the next test and returns the results so far.
func (s *Suite) ExecuteWithOptions(ctx context.Context, tests []domain.TestReference, failFast bool) ([]domain.TestResult, time.Duration, error) {
	if len(tests) == 0 {
		return nil, 0, nil
	}

	startTime := time.Now()
	results := make([]domain.TestResult, 0, len(tests))
	var successCount, failCount int

	defer func() {
		if s.progress != nil {
			s.progress.Finish()
		}
	}()

	for _, test := range tests {
		if err := ctx.Err(); err != nil {
			return results, time.Since(startTime), err
		}

		result := s.runner.Run(ctx, test)
		results = append(results, result)

		if result.Success {
			successCount++
		} else {
			failCount++
			s.log.Debug("test failed", "test", test.String(), "error", result.Error)
		}
		if s.progress != nil {
			s.progress.Update(successCount, failCount)
		}

		if failFast && !result.Success {
			s.log.Info("stopping after first failure", "test", test.String(), "remaining", len(tests)-len(results))
			break
		}
	}

	return results, time.Since(startTime), nil
}
