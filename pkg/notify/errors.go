package notify

import "errors"

var (
	// ErrNotificationNotFound is returned when a notification doesn't exist.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrEmptyReceiverID is returned when a notification has no receiver.
	ErrEmptyReceiverID = errors.New("receiver id cannot be empty")

	// ErrInvalidReceiverRole is returned when a notification's receiver role
	// is not a known account role.
	ErrInvalidReceiverRole = errors.New("invalid receiver role")

	// ErrDeliveryFailed marks a failed best-effort delivery. It is logged by
	// the dispatcher and never returned to callers of Send.
	ErrDeliveryFailed = errors.New("notification delivery failed")
)
