package domain

import (
	"fmt"
	"strings"
)

// DefaultSchema is the schema that owns test procedures
const DefaultSchema = "Tests"

// TestReference names a schema-qualified stored procedure: <schema>.<procedure>
type TestReference string

// NewTestReference joins a schema and procedure name
func NewTestReference(schema, procedure string) TestReference {
	return TestReference(schema + "." + procedure)
}

// Schema returns the part before the first dot
func (r TestReference) Schema() string {
	schema, _, _ := strings.Cut(string(r), ".")
	return schema
}

// Procedure returns the part after the first dot
func (r TestReference) Procedure() string {
	_, procedure, _ := strings.Cut(string(r), ".")
	return procedure
}

// String implements fmt.Stringer
func (r TestReference) String() string {
	return string(r)
}

// Validate reports whether the reference is a usable <schema>.<procedure> name.
// The schema ends at the first dot; later dots belong to the procedure name.
func (r TestReference) Validate() error {
	schema, procedure, ok := strings.Cut(string(r), ".")
	if !ok {
		return fmt.Errorf("test reference %q is not schema-qualified", string(r))
	}
	if schema == "" || procedure == "" {
		return fmt.Errorf("test reference %q has an empty schema or procedure", string(r))
	}
	return nil
}
