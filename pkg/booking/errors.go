package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound is returned when no booking exists for the given id.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidRole is returned when a party holds the wrong role for the
	// operation, e.g. a provider trying to create a booking.
	ErrInvalidRole = errors.New("account role not valid for this operation")

	// ErrInvalidCategory is returned when a booking names an unknown service
	// category.
	ErrInvalidCategory = errors.New("invalid service category")

	// ErrStatusConflict is returned by Storage.Update when the stored status
	// no longer matches the expected one, meaning a concurrent transition won.
	ErrStatusConflict = errors.New("booking status changed concurrently")
)

// InvalidTransitionError reports an operation applied to a booking whose
// current status does not allow it.
type InvalidTransitionError struct {
	Op      string
	Current Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s booking", e.Op, e.Current)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}
