package domain

import (
	"errors"
	"fmt"
)

// ErrInternal reports a broken post-condition after a mutation that
// should have succeeded.
var ErrInternal = errors.New("internal fault")

// ValidationError reports a payload the caller has to fix.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an identifier that does not resolve to a record.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("book not found: %s", e.ID)
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err carries a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
