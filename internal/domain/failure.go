package domain

// TestFailure represents a failed test procedure
type TestFailure struct {
	TestName  string `json:"test_name"`
	Message   string `json:"message"`
	Number    int    `json:"number,omitempty"`    // Driver error number or code
	State     string `json:"state,omitempty"`     // SQLSTATE or server state
	Severity  string `json:"severity,omitempty"`  // Server severity or class
	Procedure string `json:"procedure,omitempty"` // Server-side procedure that raised the error
	Line      int    `json:"line,omitempty"`
	Resolved  bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}
