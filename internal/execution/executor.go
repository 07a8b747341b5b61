package execution

import (
	"context"
	"time"

	"dbtr/internal/domain"
)

// Executor executes tests and returns results
type Executor interface {
	Execute(ctx context.Context, tests []domain.TestReference) ([]domain.TestResult, time.Duration, error)
}

// TestRunner runs a single test in isolation
type TestRunner interface {
	Run(ctx context.Context, test domain.TestReference) domain.TestResult
}

// Progress receives pass/fail counts as tests complete
type Progress interface {
	Update(successCount, failCount int)
	Finish()
}
