// Package databasetest provides an in-memory SQLite database that emulates a
// procedure catalog, so discovery and execution can be exercised without a
// database server.
package databasetest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"dbtr/internal/database"
	"dbtr/internal/domain"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const schemaSQL = `
CREATE TABLE procedures (schema_name TEXT NOT NULL, name TEXT NOT NULL, body TEXT NOT NULL, PRIMARY KEY (schema_name, name));
CREATE TABLE orders (id INTEGER PRIMARY KEY, total INTEGER NOT NULL);
CREATE TABLE assertions (ok INTEGER NOT NULL CHECK (ok = 1));
`

// SQLite is a Dialect whose procedures are rows of the procedures table.
// Invoking a procedure executes its body.
type SQLite struct {
	bodies map[domain.TestReference]string
}

func (d *SQLite) Name() string { return "sqlite" }

func (d *SQLite) Open(dsn string) gorm.Dialector { return sqlite.Open(dsn) }

func (d *SQLite) ListTestsQuery() string {
	return `SELECT schema_name || '.' || name AS test FROM procedures WHERE schema_name = ?`
}

func (d *SQLite) InvokeStatement(ref domain.TestReference) string {
	if body, ok := d.bodies[ref]; ok {
		return body
	}
	// Unknown procedures fail the way a server would
	return fmt.Sprintf(`SELECT * FROM "could not find stored procedure %s"`, ref)
}

var databases atomic.Int64

// New opens an empty in-memory catalog with orders and assertions tables.
// Insert into assertions with ok = 0 to make a procedure fail.
//
// The database is a named shared-cache memory database, so every connection
// the handle opens sees the same tables. A separate handle holds it open
// while no test connection exists.
func New(t *testing.T) (*gorm.DB, *SQLite) {
	t.Helper()

	dsn := fmt.Sprintf("file:databasetest%d?mode=memory&cache=shared", databases.Add(1))
	keepAlive, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(keepAlive) })

	dialect := &SQLite{bodies: make(map[domain.TestReference]string)}
	db, err := database.OpenDialect(dialect, dsn, hclog.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, db.Exec(schemaSQL).Error)
	return db, dialect
}

// CreateProcedure registers a procedure with the given body
func (d *SQLite) CreateProcedure(t *testing.T, db *gorm.DB, schema, name, body string) domain.TestReference {
	t.Helper()

	ref := domain.NewTestReference(schema, name)
	require.NoError(t, db.Exec("INSERT INTO procedures (schema_name, name, body) VALUES (?, ?, ?)", schema, name, body).Error)
	d.bodies[ref] = body
	return ref
}

// CountOrders returns the number of rows in orders
func CountOrders(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM orders").Scan(&n).Error)
	return n
}
