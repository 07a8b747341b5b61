package database

import (
	"fmt"
	"strings"

	"dbtr/internal/domain"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// Dialect describes how one database engine lists and invokes test procedures
type Dialect interface {
	// Name is the value used for Database:Dialect
	Name() string
	// Open returns the gorm dialector for a connection string
	Open(dsn string) gorm.Dialector
	// ListTestsQuery selects "<schema>.<procedure>" as column test for every
	// procedure owned by the schema bound to its single placeholder
	ListTestsQuery() string
	// InvokeStatement executes the procedure with no arguments
	InvokeStatement(ref domain.TestReference) string
}

// DialectFor returns the dialect registered under name
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "", "sqlserver", "mssql":
		return SQLServer{}, nil
	case "postgres", "postgresql":
		return Postgres{}, nil
	case "mysql":
		return MySQL{}, nil
	}
	return nil, fmt.Errorf("unsupported dialect %q", name)
}

// SQLServer lists procedures from sys.procedures and runs them with EXEC
type SQLServer struct{}

func (SQLServer) Name() string { return "sqlserver" }

func (SQLServer) Open(dsn string) gorm.Dialector { return sqlserver.Open(dsn) }

func (SQLServer) ListTestsQuery() string {
	return `SELECT CONCAT(s.name, '.', p.name) AS test
	FROM sys.procedures AS p
	JOIN sys.schemas AS s ON p.schema_id = s.schema_id
	WHERE s.name = ?`
}

func (SQLServer) InvokeStatement(ref domain.TestReference) string {
	return fmt.Sprintf("EXEC %s.%s", quote(ref.Schema(), "[", "]"), quote(ref.Procedure(), "[", "]"))
}

// Postgres lists procedures from information_schema and runs them with CALL
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) Open(dsn string) gorm.Dialector { return postgres.Open(dsn) }

func (Postgres) ListTestsQuery() string {
	return `SELECT routine_schema || '.' || routine_name AS test
	FROM information_schema.routines
	WHERE routine_type = 'PROCEDURE' AND routine_schema = ?`
}

func (Postgres) InvokeStatement(ref domain.TestReference) string {
	return fmt.Sprintf("CALL %s.%s()", quote(ref.Schema(), `"`, `"`), quote(ref.Procedure(), `"`, `"`))
}

// MySQL lists procedures from information_schema and runs them with CALL
type MySQL struct{}

func (MySQL) Name() string { return "mysql" }

func (MySQL) Open(dsn string) gorm.Dialector { return mysql.Open(dsn) }

func (MySQL) ListTestsQuery() string {
	return "SELECT CONCAT(routine_schema, '.', routine_name) AS test\n" +
		"\tFROM information_schema.routines\n" +
		"\tWHERE routine_type = 'PROCEDURE' AND routine_schema = ?"
}

func (MySQL) InvokeStatement(ref domain.TestReference) string {
	return fmt.Sprintf("CALL %s.%s()", quote(ref.Schema(), "`", "`"), quote(ref.Procedure(), "`", "`"))
}

// quote delimits an identifier, doubling any closing delimiter inside it
func quote(ident, open, close string) string {
	return open + strings.ReplaceAll(ident, close, close+close) + close
}
