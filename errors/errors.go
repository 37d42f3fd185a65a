// Package errors defines the errors returned to event server clients. Each
// sentinel maps to one HTTP status; wrapped sentinels keep their status.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned for unknown files and event numbers out of range.
	ErrNotFound = fmt.Errorf("notfound")
	// ErrMalformed is returned for missing or unparsable request parameters and
	// for uploads which are not HepMC files.
	ErrMalformed = fmt.Errorf("malformed")
	// ErrInvalidForm form error.
	ErrInvalidForm = fmt.Errorf("formerror")
	// ErrInternalServerError hides storage failures from clients.
	ErrInternalServerError = fmt.Errorf("internal")
)

// FormError lists the invalid fields of a submitted form, field name to reason.
type FormError map[string]string

// NewFormError returns a FormError with no invalid fields yet.
func NewFormError() FormError {
	return FormError{"reason": ErrInvalidForm.Error()}
}

// Error ...
func (fe FormError) Error() string {
	return fmt.Sprintf("%+v", map[string]string(fe))
}

// Unwrap makes FormError match ErrInvalidForm.
func (fe FormError) Unwrap() error {
	return ErrInvalidForm
}

// MarshalJSON ...
func (fe FormError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string(fe))
}

// Status returns the HTTP status code for err. Errors not wrapping one of the
// sentinels are internal.
func Status(err error) int {
	switch {
	case stderrors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, ErrMalformed), stderrors.Is(err, ErrInvalidForm):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
