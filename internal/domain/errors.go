package domain

import "fmt"

// ConfigurationError is returned when the settings source is missing or malformed.
// It is fatal and surfaces before any test runs.
type ConfigurationError struct {
	Path   string // Settings file that was read
	Key    string // Setting that was looked up, if any
	Reason string
	Cause  error
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Path != "" {
		msg = fmt.Sprintf("%s in %s", msg, e.Path)
	}
	if e.Key != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Key)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// ExecutionError is returned when a test procedure raises a database error.
// It fails that test only.
type ExecutionError struct {
	Test    TestReference
	Message string // Database error message
	Cause   error
}

// NewExecutionError wraps a database error raised while executing test
func NewExecutionError(test TestReference, cause error) *ExecutionError {
	return &ExecutionError{
		Test:    test,
		Message: cause.Error(),
		Cause:   cause,
	}
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Test, e.Message)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}
