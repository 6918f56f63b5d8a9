// Package validation checks generated documents before they are accepted and guards prompts
// against injected instructions.
package validation

import (
	"fmt"
	"strings"
)

// Error is returned when a generated document is unusable
type Error struct {
	Message    string
	Violations []Violation
	Cause      error
}

func (e *Error) Error() string {
	msg := "validation error: " + e.Message
	if len(e.Violations) > 0 {
		details := make([]string, 0, len(e.Violations))
		for _, v := range e.Violations {
			details = append(details, v.Details)
		}
		msg += " (" + strings.Join(details, "; ") + ")"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Violation is one structural or content problem in a generated document
type Violation struct {
	Type       string `json:"type"`
	Details    string `json:"details"`
	LineNumber *int   `json:"line_number,omitempty"`
}

// Violation types
const (
	ViolationEmpty           = "empty"
	ViolationMissingSection  = "missing_section"
	ViolationForbiddenPhrase = "forbidden_phrase"
	ViolationStructure       = "structure"
)
