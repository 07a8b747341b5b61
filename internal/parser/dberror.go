package parser

import (
	"errors"
	"strconv"
	"strings"

	"dbtr/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	mssql "github.com/microsoft/go-mssqldb"
)

// DBErrorParser reads server error details out of driver errors
type DBErrorParser struct{}

// NewDBErrorParser creates a new DBErrorParser
func NewDBErrorParser() *DBErrorParser {
	return &DBErrorParser{}
}

// ParseFailure describes a failed result. Server details are filled in when
// the error chain holds a SQL Server, PostgreSQL or MySQL driver error.
func (p *DBErrorParser) ParseFailure(result domain.TestResult) domain.TestFailure {
	failure := domain.TestFailure{TestName: result.Test.String()}
	if result.Error == nil {
		failure.Message = "test failed without an error"
		return failure
	}
	failure.Message = result.Error.Error()

	var execErr *domain.ExecutionError
	if errors.As(result.Error, &execErr) {
		failure.Message = execErr.Message
	}

	var sqlServerErr mssql.Error
	var pgErr *pgconn.PgError
	var mysqlErr *mysql.MySQLError

	switch {
	case errors.As(result.Error, &sqlServerErr):
		failure.Message = sqlServerMessage(sqlServerErr)
		failure.Number = int(sqlServerErr.Number)
		failure.State = optional(int(sqlServerErr.State))
		failure.Severity = optional(int(sqlServerErr.Class))
		failure.Procedure = sqlServerErr.ProcName
		failure.Line = int(sqlServerErr.LineNo)
	case errors.As(result.Error, &pgErr):
		failure.Message = pgErr.Message
		if pgErr.Detail != "" {
			failure.Message += "\n" + pgErr.Detail
		}
		failure.State = pgErr.Code
		failure.Severity = pgErr.Severity
		failure.Procedure = pgErr.Where
	case errors.As(result.Error, &mysqlErr):
		failure.Message = mysqlErr.Message
		failure.Number = int(mysqlErr.Number)
		failure.State = strings.TrimRight(string(mysqlErr.SQLState[:]), "\x00")
	}

	return failure
}

// sqlServerMessage joins every message the server sent with the error
func sqlServerMessage(err mssql.Error) string {
	if len(err.All) <= 1 {
		return err.Message
	}
	messages := make([]string, 0, len(err.All))
	for _, e := range err.All {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "\n")
}

// optional formats n, leaving zero values empty
func optional(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
