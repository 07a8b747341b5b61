package database_test

import (
	"context"
	"testing"

	"dbtr/internal/database"
	"dbtr/internal/database/databasetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDialect_SingleConnection(t *testing.T) {
	db, _ := databasetest.New(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpenDialect_NoIdleConnections(t *testing.T) {
	db, _ := databasetest.New(t)
	require.NoError(t, db.Exec("SELECT 1").Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	stats := sqlDB.Stats()
	assert.Equal(t, 0, stats.Idle)
	assert.Equal(t, 0, stats.OpenConnections)
	assert.Positive(t, stats.MaxIdleClosed)
}

func TestPing(t *testing.T) {
	db, _ := databasetest.New(t)

	require.NoError(t, database.Ping(context.Background(), db))
}

func TestPing_Closed(t *testing.T) {
	db, _ := databasetest.New(t)
	require.NoError(t, database.Close(db))

	assert.Error(t, database.Ping(context.Background(), db))
}
