package account

import "errors"

var (
	// ErrAccountNotFound is returned when no account exists for the given id.
	ErrAccountNotFound = errors.New("account not found")
)
