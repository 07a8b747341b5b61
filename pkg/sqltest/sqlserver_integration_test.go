//go:build integration

package sqltest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"dbtr/internal/database"
	"dbtr/internal/discovery"
	"dbtr/internal/domain"
	"dbtr/internal/execution"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mssql"
	"gorm.io/gorm"
)

const sqlServerImage = "mcr.microsoft.com/mssql/server:2022-CU14-ubuntu-22.04"

var fixtureBatches = []string{
	`CREATE TABLE dbo.Orders (Id INT IDENTITY PRIMARY KEY, Email NVARCHAR(100) NOT NULL, Total INT NOT NULL)`,
	`INSERT INTO dbo.Orders (Email, Total) VALUES ('a@example.com', 10), ('b@example.com', 20)`,
	`CREATE SCHEMA Tests`,
	`CREATE PROCEDURE Tests.CheckOrderTotals AS
BEGIN
	UPDATE dbo.Orders SET Total = Total * 2;
	IF EXISTS (SELECT 1 FROM dbo.Orders WHERE Total < 0)
		THROW 50001, 'negative order total', 1;
END`,
	`CREATE PROCEDURE Tests.CheckNoDuplicateEmails AS
BEGIN
	IF EXISTS (SELECT Email FROM dbo.Orders GROUP BY Email HAVING COUNT(*) > 1)
		THROW 50002, 'duplicate order emails', 1;
END`,
}

func startSQLServer(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := mssql.Run(ctx, sqlServerImage,
		mssql.WithAcceptEULA(),
		mssql.WithPassword("Sqltest@Passw0rd"),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	return dsn
}

func openSQLServer(t *testing.T, dsn string) (*gorm.DB, Dialect) {
	t.Helper()

	dialect := database.SQLServer{}
	db, err := database.OpenDialect(dialect, dsn, hclog.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	for _, batch := range fixtureBatches {
		require.NoError(t, db.Exec(batch).Error)
	}
	return db, dialect
}

func orderTotal(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var total int64
	require.NoError(t, db.Raw("SELECT SUM(Total) FROM dbo.Orders").Scan(&total).Error)
	return total
}

func TestSQLServer_Run(t *testing.T) {
	dsn := startSQLServer(t)
	db, _ := openSQLServer(t, dsn)

	dir := t.TempDir()
	settings := filepath.Join(dir, "appsettings.json")
	content := fmt.Sprintf(`{"ConnectionStrings": {"Database": %q}}`, dsn)
	require.NoError(t, os.WriteFile(settings, []byte(content), 0644))

	Run(t, WithSettings(settings))

	assert.Equal(t, int64(30), orderTotal(t, db), "procedure changes must be rolled back")
}

func TestSQLServer_FailingProcedure(t *testing.T) {
	db, dialect := openSQLServer(t, startSQLServer(t))
	require.NoError(t, db.Exec(`CREATE PROCEDURE Tests.FailsAfterDelete AS
BEGIN
	DELETE FROM dbo.Orders;
	THROW 50003, 'orders vanished', 1;
END`).Error)

	ctx := context.Background()
	tests, err := discovery.NewDiscoverer(db, dialect, domain.DefaultSchema).ListTests(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TestReference{
		"Tests.CheckNoDuplicateEmails",
		"Tests.CheckOrderTotals",
		"Tests.FailsAfterDelete",
	}, tests)

	results, _, err := execution.NewSuite(execution.NewRunner(db, dialect, nil), nil).Execute(ctx, tests)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.False(t, results[2].Success)
	assert.ErrorContains(t, results[2].Error, "orders vanished")

	assert.Equal(t, int64(30), orderTotal(t, db))
}

func TestSQLServer_MissingSchema(t *testing.T) {
	dsn := startSQLServer(t)
	dialect := database.SQLServer{}
	db, err := database.OpenDialect(dialect, dsn, nil)
	require.NoError(t, err)
	defer database.Close(db)

	tests, err := ListTests(context.Background(), db, dialect)
	require.NoError(t, err)
	assert.Empty(t, tests)
}
