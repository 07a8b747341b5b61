package ui

import (
	"fmt"
	"strings"

	"dbtr/internal/domain"
	"dbtr/internal/storage"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(st storage.Storage) *ErrorViewer {
	return &ErrorViewer{storage: st}
}

// View displays test failures in an interactive TUI.
// Marking a failure resolved with R is saved back to the results file.
func (ev *ErrorViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	for i := range results.Details {
		list.AddItem(listItemText(results.Details[i], i), "", 0, nil)
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)

	var saveErr error
	updateHeader := func() {
		headerView.SetText(headerText(results.Details, saveErr))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			detailsView.SetText(FormatFailureDetails(results.Details[index]))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					saveErr = ev.toggleResolved(results, index)
					list.SetItemText(index, listItemText(results.Details[index], index), "")
					updateHeader()
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// toggleResolved flips the resolved flag of one failure and saves the results.
// The flag stays flipped on screen when the save fails; the next toggle saves again.
func (ev *ErrorViewer) toggleResolved(results *domain.TestResultsOutput, index int) error {
	results.Details[index].Resolved = !results.Details[index].Resolved
	if err := ev.storage.SaveOutput(results); err != nil {
		return fmt.Errorf("failed to save resolved state: %w", err)
	}
	return nil
}

func headerText(failures []domain.TestFailure, saveErr error) string {
	if saveErr != nil {
		return fmt.Sprintf(" [red]%s[white] | Ctrl+C exit ", tview.Escape(saveErr.Error()))
	}
	return fmt.Sprintf(" Test Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, Ctrl+C exit ",
		len(failures), countUnresolved(failures))
}

func listItemText(failure domain.TestFailure, index int) string {
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, failure.TestName)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, failure.TestName)
}

func countUnresolved(failures []domain.TestFailure) int {
	count := 0
	for _, f := range failures {
		if !f.Resolved {
			count++
		}
	}
	return count
}

// FormatFailureDetails formats a test failure using tview color tags
func FormatFailureDetails(failure domain.TestFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Test: %s[white]\n\n", tview.Escape(failure.TestName))

	if failure.Number != 0 {
		fmt.Fprintf(&b, "[cyan]Error:[white] %d\n", failure.Number)
	}
	if failure.State != "" {
		fmt.Fprintf(&b, "[cyan]State:[white] %s\n", tview.Escape(failure.State))
	}
	if failure.Severity != "" {
		fmt.Fprintf(&b, "[cyan]Severity:[white] %s\n", tview.Escape(failure.Severity))
	}
	if failure.Procedure != "" {
		location := failure.Procedure
		if failure.Line > 0 {
			location = fmt.Sprintf("%s:%d", location, failure.Line)
		}
		fmt.Fprintf(&b, "[yellow]Location:[white] %s\n", tview.Escape(location))
	}
	b.WriteString("\n")

	if failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n", tview.Escape(failure.Message))
	}

	return b.String()
}
