package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"dbtr/internal/domain"

	"github.com/fatih/color"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to the color-aware stdout
func NewFormatter() *Formatter {
	return &Formatter{out: color.Output}
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// PrintMetaStats displays the statistics of a finished run and its failures
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta

	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Test Execution Statistics                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Total Tests", fmt.Sprint(meta.TotalTests), white},
		{"Passed Tests", fmt.Sprint(meta.PassedTests), green},
		{"Failed Tests", fmt.Sprint(meta.FailedTests), red},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Dialect", meta.Dialect, white},
		{"Schema", meta.Schema, white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedTests == 0 {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}

	red.Fprintf(f.out, "✗ %d of %d test(s) failed\n\n", meta.FailedTests, meta.TotalTests)
	for _, failure := range output.Details {
		red.Fprintf(f.out, "  ✗ %s\n", failure.TestName)
		for _, line := range strings.Split(strings.TrimSpace(failure.Message), "\n") {
			fmt.Fprintf(f.out, "      %s\n", line)
		}
	}
}

// PrintTestList prints discovered tests grouped by schema.
// failed is optional; tests in it are marked with [F] in red (from last run).
func (f *Formatter) PrintTestList(tests []domain.TestReference, failed map[string]struct{}) {
	green.Fprintf(f.out, "Found %d test(s):\n\n", len(tests))

	bySchema := make(map[string][]domain.TestReference)
	for _, test := range tests {
		bySchema[test.Schema()] = append(bySchema[test.Schema()], test)
	}

	schemas := make([]string, 0, len(bySchema))
	for schema := range bySchema {
		schemas = append(schemas, schema)
	}
	sort.Strings(schemas)

	for i, schema := range schemas {
		isLastSchema := i == len(schemas)-1
		if isLastSchema {
			cyan.Fprintf(f.out, "└── %s\n", schema)
		} else {
			cyan.Fprintf(f.out, "├── %s\n", schema)
		}

		procs := bySchema[schema]
		for j, test := range procs {
			var prefix string
			switch {
			case isLastSchema && j == len(procs)-1:
				prefix = "    └── "
			case isLastSchema:
				prefix = "    ├── "
			case j == len(procs)-1:
				prefix = "│   └── "
			default:
				prefix = "│   ├── "
			}

			failMarker := ""
			if _, ok := failed[test.String()]; ok {
				failMarker = " " + red.Sprint("[F]")
			}
			fmt.Fprintf(f.out, "%s%s%s\n", prefix, yellow.Sprint(test.Procedure()), failMarker)
		}
	}
}
