package ui

import (
	"errors"
	"testing"
	"time"

	"dbtr/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	saved   *domain.TestResultsOutput
	saveErr error
}

func (s *memoryStorage) Save([]domain.TestResult, []domain.TestFailure, time.Duration) error {
	return nil
}

func (s *memoryStorage) Load() (*domain.TestResultsOutput, error) { return s.saved, nil }

func (s *memoryStorage) SaveOutput(output *domain.TestResultsOutput) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = output
	return nil
}

func TestFormatFailureDetails(t *testing.T) {
	details := FormatFailureDetails(domain.TestFailure{
		TestName:  "Tests.CheckOrderTotals",
		Message:   "Order totals do not match [order 7]",
		Number:    50000,
		State:     "1",
		Severity:  "16",
		Procedure: "CheckOrderTotals",
		Line:      12,
	})

	assert.Contains(t, details, "✗ Test: Tests.CheckOrderTotals")
	assert.Contains(t, details, "[cyan]Error:[white] 50000")
	assert.Contains(t, details, "[yellow]Location:[white] CheckOrderTotals:12")
	// Brackets from the server message must not be read as color tags
	assert.Contains(t, details, "Order totals do not match [order 7[]")
}

func TestFormatFailureDetails_MessageOnly(t *testing.T) {
	details := FormatFailureDetails(domain.TestFailure{TestName: "Tests.CheckOrderTotals", Message: "no such table"})

	assert.NotContains(t, details, "Error:")
	assert.NotContains(t, details, "Location:")
	assert.Contains(t, details, "no such table")
}

func TestListItemText(t *testing.T) {
	failure := domain.TestFailure{TestName: "Tests.CheckOrderTotals"}
	assert.Equal(t, "[yellow]1.[white] Tests.CheckOrderTotals", listItemText(failure, 0))

	failure.Resolved = true
	assert.Equal(t, "[gray]✓ [yellow]2.[gray] Tests.CheckOrderTotals[white]", listItemText(failure, 1))
}

func TestCountUnresolved(t *testing.T) {
	failures := []domain.TestFailure{{Resolved: true}, {}, {}}
	assert.Equal(t, 2, countUnresolved(failures))
}

func TestErrorViewer_ToggleResolved(t *testing.T) {
	st := &memoryStorage{}
	viewer := NewErrorViewer(st)
	results := &domain.TestResultsOutput{Details: []domain.TestFailure{{TestName: "Tests.CheckOrderTotals"}}}

	require.NoError(t, viewer.toggleResolved(results, 0))

	assert.True(t, results.Details[0].Resolved)
	require.NotNil(t, st.saved)
	assert.True(t, st.saved.Details[0].Resolved)
}

func TestErrorViewer_ToggleResolved_SaveFails(t *testing.T) {
	st := &memoryStorage{saveErr: errors.New("read-only file system")}
	viewer := NewErrorViewer(st)
	results := &domain.TestResultsOutput{Details: []domain.TestFailure{{TestName: "Tests.CheckOrderTotals"}}}

	err := viewer.toggleResolved(results, 0)

	require.Error(t, err)
	assert.True(t, results.Details[0].Resolved)
	assert.Contains(t, headerText(results.Details, err), "[red]failed to save resolved state: read-only file system[white]")
}

func TestHeaderText(t *testing.T) {
	failures := []domain.TestFailure{{Resolved: true}, {}}
	assert.Contains(t, headerText(failures, nil), "Test Failures (2 total, 1 unresolved)")
}
