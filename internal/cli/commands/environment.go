package commands

import (
	"fmt"

	"dbtr/internal/config"
	"dbtr/internal/database"
	"dbtr/internal/discovery"
	"dbtr/internal/execution"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
)

// Environment opens the database on first use, after flags are parsed
type Environment struct {
	config  *config.Config
	log     hclog.Logger
	db      *gorm.DB
	dialect database.Dialect
}

// NewEnvironment creates an Environment that has not connected yet
func NewEnvironment(cfg *config.Config, log hclog.Logger) *Environment {
	return &Environment{config: cfg, log: log}
}

// Open reads the settings file and opens the database layer.
// Settings errors surface here, before any test runs.
func (e *Environment) Open() error {
	if e.db != nil {
		return nil
	}

	if err := e.config.LoadSettings(e.config.Flags.ConfigPath); err != nil {
		return err
	}
	e.log.SetLevel(e.config.GetLogLevel())

	db, dialect, err := database.Open(e.config, e.log)
	if err != nil {
		return fmt.Errorf("connect to %s database: %w", e.config.Dialect, err)
	}
	e.db = db
	e.dialect = dialect
	return nil
}

// useDatabase installs an already opened database, skipping settings
func (e *Environment) useDatabase(db *gorm.DB, dialect database.Dialect) {
	e.db = db
	e.dialect = dialect
}

// Close releases the database if it was opened
func (e *Environment) Close() error {
	if e.db == nil {
		return nil
	}
	err := database.Close(e.db)
	e.db = nil
	return err
}

// Discoverer returns a Discoverer for the configured schema
func (e *Environment) Discoverer() *discovery.Discoverer {
	return discovery.NewDiscoverer(e.db, e.dialect, e.config.Schema)
}

// Runner returns a Runner over the open database
func (e *Environment) Runner() *execution.Runner {
	return execution.NewRunner(e.db, e.dialect, e.log.Named("runner"))
}
