package database

import (
	"context"
	"fmt"

	"dbtr/internal/config"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open establishes the database layer for the configured dialect.
// The underlying handle allows a single open connection and keeps none idle:
// each test acquires a fresh session for its transaction, which is closed at
// teardown so session state never reaches the next test.
func Open(cfg *config.Config, log hclog.Logger) (*gorm.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Dialect)
	if err != nil {
		return nil, nil, err
	}

	db, err := OpenDialect(dialect, cfg.ConnectionString, log)
	if err != nil {
		return nil, nil, err
	}

	log.Debug("opened database", "dialect", dialect.Name(), "schema", cfg.Schema)
	return db, dialect, nil
}

// OpenDialect opens dsn with the given dialect
func OpenDialect(dialect Dialect, dsn string, log hclog.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	}
	if log != nil {
		gormConfig.Logger = NewGormLogger(log.Named("gorm"))
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialect.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(0)

	return db, nil
}

// Ping verifies the database is reachable
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close releases the underlying connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	return sqlDB.Close()
}
