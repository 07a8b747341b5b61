package parser

import (
	"errors"
	"fmt"
	"testing"

	"dbtr/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/stretchr/testify/assert"
)

const testName domain.TestReference = "Tests.CheckOrderTotals"

func failed(cause error) domain.TestResult {
	return domain.TestResult{Test: testName, Error: domain.NewExecutionError(testName, cause)}
}

func TestDBErrorParser_ParseFailure(t *testing.T) {
	p := NewDBErrorParser()

	tests := []struct {
		name     string
		result   domain.TestResult
		expected domain.TestFailure
	}{
		{
			name: "sql server",
			result: failed(mssql.Error{
				Number:   50000,
				State:    1,
				Class:    16,
				Message:  "Order totals do not match line items",
				ProcName: "CheckOrderTotals",
				LineNo:   12,
			}),
			expected: domain.TestFailure{
				TestName:  "Tests.CheckOrderTotals",
				Message:   "Order totals do not match line items",
				Number:    50000,
				State:     "1",
				Severity:  "16",
				Procedure: "CheckOrderTotals",
				Line:      12,
			},
		},
		{
			name: "postgres",
			result: failed(&pgconn.PgError{
				Severity: "ERROR",
				Code:     "P0001",
				Message:  "order totals do not match",
				Detail:   "order 7",
				Where:    `PL/pgSQL function "Tests"."CheckOrderTotals"() line 5 at RAISE`,
			}),
			expected: domain.TestFailure{
				TestName:  "Tests.CheckOrderTotals",
				Message:   "order totals do not match\norder 7",
				State:     "P0001",
				Severity:  "ERROR",
				Procedure: `PL/pgSQL function "Tests"."CheckOrderTotals"() line 5 at RAISE`,
			},
		},
		{
			name: "mysql",
			result: failed(&mysql.MySQLError{
				Number:   1644,
				SQLState: [5]byte{'4', '5', '0', '0', '0'},
				Message:  "order totals do not match",
			}),
			expected: domain.TestFailure{
				TestName: "Tests.CheckOrderTotals",
				Message:  "order totals do not match",
				Number:   1644,
				State:    "45000",
			},
		},
		{
			name:   "plain driver error",
			result: failed(errors.New("no such table: orders")),
			expected: domain.TestFailure{
				TestName: "Tests.CheckOrderTotals",
				Message:  "no such table: orders",
			},
		},
		{
			name:   "teardown error",
			result: domain.TestResult{Test: testName, Error: fmt.Errorf("failed to begin transaction for %s: %w", testName, errors.New("connection reset"))},
			expected: domain.TestFailure{
				TestName: "Tests.CheckOrderTotals",
				Message:  "failed to begin transaction for Tests.CheckOrderTotals: connection reset",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.ParseFailure(tt.result))
		})
	}
}

func TestDBErrorParser_JoinsSQLServerMessages(t *testing.T) {
	first := mssql.Error{Number: 50000, Class: 16, Message: "first check failed"}
	second := mssql.Error{Number: 3902, Class: 16, Message: "The COMMIT TRANSACTION request has no corresponding BEGIN TRANSACTION."}
	err := second
	err.All = []mssql.Error{first, second}

	failure := NewDBErrorParser().ParseFailure(failed(err))

	assert.Equal(t, "first check failed\nThe COMMIT TRANSACTION request has no corresponding BEGIN TRANSACTION.", failure.Message)
	assert.Equal(t, 3902, failure.Number)
}
