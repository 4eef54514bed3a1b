package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDeclined  = errors.New("action declined")
	ErrBadTab    = errors.New("unknown tab")
	ErrBadModal  = errors.New("unknown modal")
	ErrBadFilter = errors.New("unknown borrowing filter")
)

// APIError is a response the library API answered with success=false.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("library api %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("library api %s: %s", e.Op, e.Message)
}

// Is matches ErrNotFound for 404 answers.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}
