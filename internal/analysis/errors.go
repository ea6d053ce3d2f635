package analysis

import (
	"fmt"
	"strings"
)

// MissingFieldError reports inquiry attributes absent at prompt-build time.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required inquiry fields: %s", strings.Join(e.Fields, ", "))
}

// NoJSONFoundError means no brace-delimited candidate was found in the
// provider output.
type NoJSONFoundError struct{}

func (e *NoJSONFoundError) Error() string {
	return "no valid JSON found in provider response"
}

// MalformedJSONError wraps the parser diagnostic for a candidate that failed
// to parse.
type MalformedJSONError struct {
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("failed to parse provider response as JSON: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}

// InvalidShapeError reports a financial series or score that does not match
// the required shape.
type InvalidShapeError struct {
	Field  string
	Reason string
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// MissingFieldsError names every required top-level key absent from the
// parsed response.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
