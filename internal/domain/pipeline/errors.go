package pipeline

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("candidate not found")
	ErrInvalidTransition = errors.New("stage transition not allowed")
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every violated field check, never just the first.
type ValidationError struct {
	Issues []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
