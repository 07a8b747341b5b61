package discovery

import (
	"context"
	"fmt"
	"sort"

	"dbtr/internal/database"
	"dbtr/internal/domain"

	"gorm.io/gorm"
)

// Discoverer lists the test procedures owned by a schema
type Discoverer struct {
	db      *gorm.DB
	dialect database.Dialect
	schema  string
}

// NewDiscoverer creates a new Discoverer for schema (domain.DefaultSchema when empty)
func NewDiscoverer(db *gorm.DB, dialect database.Dialect, schema string) *Discoverer {
	if schema == "" {
		schema = domain.DefaultSchema
	}
	return &Discoverer{db: db, dialect: dialect, schema: schema}
}

// testRow is one row of the catalog query
type testRow struct {
	Test string
}

// ListTests returns the qualified names of every procedure in the schema,
// sorted so repeated calls against an unchanged schema agree.
// A missing schema yields an empty list.
func (d *Discoverer) ListTests(ctx context.Context) ([]domain.TestReference, error) {
	var rows []testRow
	if err := d.db.WithContext(ctx).Raw(d.dialect.ListTestsQuery(), d.schema).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tests in schema %s: %w", d.schema, err)
	}

	tests := make([]domain.TestReference, 0, len(rows))
	for _, row := range rows {
		ref := domain.TestReference(row.Test)
		if err := ref.Validate(); err != nil {
			return nil, err
		}
		tests = append(tests, ref)
	}

	sort.Slice(tests, func(i, j int) bool { return tests[i] < tests[j] })
	return tests, nil
}

// Schema returns the schema the discoverer reads
func (d *Discoverer) Schema() string {
	return d.schema
}
