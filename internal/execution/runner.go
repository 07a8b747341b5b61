package execution

import (
	"context"
	"fmt"
	"time"

	"dbtr/internal/database"
	"dbtr/internal/domain"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"
)

// Runner executes one test procedure inside its own transaction
type Runner struct {
	db      *gorm.DB
	dialect database.Dialect
	log     hclog.Logger
}

// NewRunner creates a new Runner
func NewRunner(db *gorm.DB, dialect database.Dialect, log hclog.Logger) *Runner {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Runner{db: db, dialect: dialect, log: log}
}

// Run begins a transaction, executes the procedure with no arguments and
// always rolls back, so the database is left as it was found whatever the outcome.
// The test passes when neither the procedure nor the rollback returns an error.
func (r *Runner) Run(ctx context.Context, test domain.TestReference) (result domain.TestResult) {
	start := time.Now()
	result.Test = test
	defer func() { result.Duration = time.Since(start) }()

	if err := test.Validate(); err != nil {
		result.Error = err
		return result
	}

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		result.Error = fmt.Errorf("failed to begin transaction for %s: %w", test, tx.Error)
		return result
	}

	rolledBack := false
	defer func() {
		// Reached only when Exec panics
		if !rolledBack {
			tx.Rollback()
		}
	}()

	log := r.log.With("test", test.String())
	log.Debug("executing test")

	var err error
	if execErr := tx.Exec(r.dialect.InvokeStatement(test)).Error; execErr != nil {
		err = domain.NewExecutionError(test, execErr)
	}

	rolledBack = true
	if rbErr := tx.Rollback().Error; rbErr != nil {
		log.Warn("rollback failed", "error", rbErr)
		err = multierror.Append(err, fmt.Errorf("failed to roll back %s: %w", test, rbErr))
	}

	result.Success = err == nil
	result.Error = err
	log.Debug("test finished", "success", result.Success, "elapsed", time.Since(start))
	return result
}

// CanConnect reports whether the database answers a ping
func (r *Runner) CanConnect(ctx context.Context) bool {
	if err := database.Ping(ctx, r.db); err != nil {
		r.log.Warn("connectivity check failed", "error", err)
		return false
	}
	return true
}
