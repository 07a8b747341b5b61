package discovery

import (
	"path"
	"strings"

	"dbtr/internal/domain"
)

// Filter filters tests by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters tests by name pattern using wildcard matching.
// The pattern is tried against both the procedure name and the qualified name,
// so "Check*" and "Tests.Check*" select the same tests.
// A pattern without wildcards matches names containing it.
func (f *Filter) FilterByName(tests []domain.TestReference, pattern string) []domain.TestReference {
	if pattern == "" {
		return tests
	}

	var filtered []domain.TestReference
	for _, test := range tests {
		if f.matches(test, pattern) {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

func (f *Filter) matches(test domain.TestReference, pattern string) bool {
	names := []string{test.Procedure(), test.String()}

	if !strings.ContainsAny(pattern, "*?[") {
		for _, name := range names {
			if strings.Contains(name, pattern) {
				return true
			}
		}
		return false
	}

	for _, name := range names {
		// path.Match supports *, ? and [] classes
		if matched, err := path.Match(pattern, name); err == nil && matched {
			return true
		}
	}

	// Fall back to ordered substring matching for patterns like "*Order*"
	parts := strings.FieldsFunc(pattern, func(r rune) bool { return r == '*' })
	if len(parts) == 0 {
		return true
	}
	for _, name := range names {
		if containsInOrder(name, parts) {
			return true
		}
	}
	return false
}

// containsInOrder reports whether every part occurs in s, in order
func containsInOrder(s string, parts []string) bool {
	for _, part := range parts {
		i := strings.Index(s, part)
		if i < 0 {
			return false
		}
		s = s[i+len(part):]
	}
	return true
}
