package posts

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when no post exists under the requested id
	ErrNotFound = errors.New("post not found")

	// ErrInvalidPage is returned for list requests with a page below 1
	ErrInvalidPage = errors.New("page must be 1 or greater")
)

// FieldError describes a single violated field in a create request
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violated field of a create request so the
// client sees all problems at once
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
