package parser

import "dbtr/internal/domain"

// Parser extracts failure details from test results
type Parser interface {
	ParseFailure(result domain.TestResult) domain.TestFailure
}
