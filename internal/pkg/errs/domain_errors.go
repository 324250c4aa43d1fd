package errs

import "errors"

// Error kinds shared by every layer. Concrete errors are marked with one of
// these so the HTTP boundary can map them without knowing their origin.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrTransaction  = errors.New("transaction failed")
	ErrUnavailable  = errors.New("storage unavailable")
)

// ValidationError is a client-recoverable failure, optionally tied to a request field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// AsValidation extracts the first ValidationError in err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Kind marks err with one of the shared kinds above, keeping its message.
func Kind(err error, kind error) error {
	return Mark(err, kind)
}
