package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigurationError_Error(t *testing.T) {
	cause := errors.New("open appsettings.json: no such file or directory")
	err := &ConfigurationError{Path: "appsettings.json", Key: "ConnectionStrings:Database", Reason: "setting is missing", Cause: cause}

	msg := err.Error()
	for _, part := range []string{"appsettings.json", "ConnectionStrings:Database", "setting is missing", "no such file"} {
		if !strings.Contains(msg, part) {
			t.Errorf("expected %q in error message, got %q", part, msg)
		}
	}
	if !errors.Is(err, cause) {
		t.Error("expected ConfigurationError to unwrap to its cause")
	}
}

func TestExecutionError_CarriesMessage(t *testing.T) {
	cause := errors.New("Order totals do not match line items")
	err := NewExecutionError("Tests.CheckOrderTotals", cause)

	if err.Message != cause.Error() {
		t.Errorf("expected message %q, got %q", cause.Error(), err.Message)
	}
	if !strings.Contains(err.Error(), "Tests.CheckOrderTotals") {
		t.Errorf("expected test name in %q", err.Error())
	}

	var execErr *ExecutionError
	if !errors.As(error(err), &execErr) {
		t.Fatal("expected errors.As to match *ExecutionError")
	}
	if !errors.Is(err, cause) {
		t.Error("expected ExecutionError to unwrap to its cause")
	}
}
