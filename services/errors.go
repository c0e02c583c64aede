// services/errors.go - Error kinds shared by the service layer
package services

import "errors"

// ErrNotFound is returned when a record does not exist or the caller is not
// allowed to see it. Handlers map it to 404.
var ErrNotFound = errors.New("record not found")

// ValidationError rejects bad input before any write is attempted. Handlers
// map it to 400 and surface Reason to the initiating action.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
