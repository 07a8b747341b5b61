// Package sqltest runs the stored procedures of a database test schema as
// go test subtests.
//
//	func TestDatabase(t *testing.T) {
//		sqltest.Run(t, sqltest.WithSettings("appsettings.json"))
//	}
//
// Run registers three kinds of subtests: CanConnect, ListTests_NotEmpty and
// one SqlTest/<schema>.<procedure> per discovered procedure. Each procedure
// runs in its own transaction, which is rolled back when it returns.
package sqltest

import (
	"context"
	"testing"

	"dbtr/internal/config"
	"dbtr/internal/database"
	"dbtr/internal/discovery"
	"dbtr/internal/domain"
	"dbtr/internal/execution"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
)

// Dialect describes how to query the procedure catalog and invoke a procedure
type Dialect = database.Dialect

// DialectFor returns the built-in dialect named name (sqlserver, postgres or mysql)
func DialectFor(name string) (Dialect, error) {
	return database.DialectFor(name)
}

type options struct {
	settingsPath string
	db           *gorm.DB
	dialect      Dialect
	schema       string
	log          hclog.Logger
}

// Option configures Run
type Option func(*options)

// WithSettings reads the connection from the JSON settings file at path
func WithSettings(path string) Option {
	return func(o *options) { o.settingsPath = path }
}

// WithDatabase runs against an already opened database instead of a settings file
func WithDatabase(db *gorm.DB, dialect Dialect) Option {
	return func(o *options) {
		o.db = db
		o.dialect = dialect
	}
}

// WithSchema discovers procedures in schema instead of Tests
func WithSchema(schema string) Option {
	return func(o *options) { o.schema = schema }
}

// WithLogger sets the logger, which otherwise writes to t.Log
func WithLogger(log hclog.Logger) Option {
	return func(o *options) { o.log = log }
}

// ListTests returns the procedures in the Tests schema of db
func ListTests(ctx context.Context, db *gorm.DB, dialect Dialect) ([]domain.TestReference, error) {
	return discovery.NewDiscoverer(db, dialect, domain.DefaultSchema).ListTests(ctx)
}

// Run connects, discovers the test procedures and runs each as a subtest of t.
// Configuration errors fail t before any subtest runs.
func Run(t *testing.T, opts ...Option) {
	t.Helper()

	o := &options{settingsPath: config.DefaultSettingsFile}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = hclog.New(&hclog.LoggerOptions{
			Name:   "sqltest",
			Level:  hclog.Warn,
			Output: testWriter{t},
		})
	}

	db, dialect, schema := o.db, o.dialect, o.schema
	if db == nil {
		cfg, err := config.Load(o.settingsPath)
		if err != nil {
			t.Fatalf("sqltest: %v", err)
		}
		o.log.SetLevel(cfg.GetLogLevel())

		db, dialect, err = database.Open(cfg, o.log)
		if err != nil {
			t.Fatalf("sqltest: %v", err)
		}
		t.Cleanup(func() { _ = database.Close(db) })

		if schema == "" {
			schema = cfg.Schema
		}
	}

	ctx := context.Background()
	runner := execution.NewRunner(db, dialect, o.log)

	t.Run("CanConnect", func(t *testing.T) {
		if !runner.CanConnect(ctx) {
			t.Fatal("cannot connect to the database")
		}
	})

	discoverer := discovery.NewDiscoverer(db, dialect, schema)
	tests, err := discoverer.ListTests(ctx)
	if err != nil {
		t.Fatalf("sqltest: %v", err)
	}

	t.Run("ListTests_NotEmpty", func(t *testing.T) {
		if len(tests) == 0 {
			t.Fatalf("no test procedures found in schema %s", discoverer.Schema())
		}
	})

	t.Run("SqlTest", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.String(), func(t *testing.T) {
				if err := check(ctx, runner, test); err != nil {
					t.Error(err)
				}
			})
		}
	})
}

// check runs a single test procedure and returns its failure, if any
func check(ctx context.Context, runner execution.TestRunner, test domain.TestReference) error {
	if result := runner.Run(ctx, test); !result.Success {
		return result.Error
	}
	return nil
}

// testWriter sends log lines to the test log
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
