package domain

import "time"

// TestResult represents the outcome of executing one test procedure
type TestResult struct {
	Test     TestReference // Procedure that was executed
	Success  bool          // Whether the procedure completed without a database error
	Error    error         // Execution or teardown error, nil on success
	Duration time.Duration // Time taken including begin and rollback
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Dialect         string  `json:"dialect"`
	Schema          string  `json:"schema"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}

// FailedTests returns the set of test names that failed in this output
func (o *TestResultsOutput) FailedTests() map[string]struct{} {
	failed := make(map[string]struct{}, len(o.Details))
	for _, d := range o.Details {
		failed[d.TestName] = struct{}{}
	}
	return failed
}
