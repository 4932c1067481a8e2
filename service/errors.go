package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by mock-mode update/delete when no record with
// the requested id exists in the working set.
var ErrNotFound = errors.New("patient record not found")

// ValidationError reports the required fields missing from a create or
// update payload. It is raised before any network or store call, so a
// rejected mutation leaves both sources untouched.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid required fields: %s", strings.Join(e.Fields, ", "))
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
