package database

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm/logger"
)

// slowStatement is the elapsed time after which a statement is logged as slow
const slowStatement = 2 * time.Second

// gormHclogAdapter adapts hclog.Logger to gorm.logger.Interface.
type gormHclogAdapter struct {
	logger hclog.Logger
	level  logger.LogLevel
}

// NewGormLogger creates a new GORM logger that uses hclog.
func NewGormLogger(log hclog.Logger) logger.Interface {
	return &gormHclogAdapter{
		logger: log,
		level:  logger.Info,
	}
}

func (g *gormHclogAdapter) LogMode(level logger.LogLevel) logger.Interface {
	return &gormHclogAdapter{
		logger: g.logger,
		level:  level,
	}
}

func (g *gormHclogAdapter) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Info {
		g.logger.Info(msg, data...)
	}
}

func (g *gormHclogAdapter) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Warn {
		g.logger.Warn(msg, data...)
	}
}

func (g *gormHclogAdapter) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Error {
		g.logger.Error(msg, data...)
	}
}

// Trace logs statements and their execution time. Statement errors are
// logged at debug: a failing test procedure is reported by the runner, not here.
func (g *gormHclogAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil:
		g.logger.Debug("statement returned error", "error", err, "elapsed", elapsed, "sql", sql)
	case elapsed > slowStatement && g.level >= logger.Warn:
		g.logger.Warn("slow statement", "elapsed", elapsed, "rows", rows, "sql", sql)
	case g.level >= logger.Info:
		g.logger.Trace("statement", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
