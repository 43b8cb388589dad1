package services

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both missing entities and entities owned by someone
// else; callers cannot tell the two apart.
var ErrNotFound = errors.New("not found")

// ConflictError is a business-rule violation whose message is safe to show
// to the user (duplicate course code, duplicate membership, removing the
// last project owner, unknown invitee email).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func conflictf(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}
