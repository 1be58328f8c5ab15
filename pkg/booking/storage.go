package booking

import "context"

// Storage persists bookings. Implementations must be safe for concurrent use.
type Storage interface {
	// Create stores a new booking.
	Create(ctx context.Context, b Booking) error

	// Get returns a booking by id, or ErrBookingNotFound.
	Get(ctx context.Context, id string) (*Booking, error)

	// Update writes the booking only if its stored status still equals
	// expected. A mismatch returns ErrStatusConflict and leaves the stored
	// booking untouched; this is what serializes concurrent transitions.
	Update(ctx context.Context, b Booking, expected Status) error

	// ListByRequester returns a requester's bookings, newest first.
	ListByRequester(ctx context.Context, requesterID string) ([]Booking, error)

	// ListByProvider returns a provider's bookings, newest first.
	ListByProvider(ctx context.Context, providerID string) ([]Booking, error)
}
