package notify

import (
	"context"

	"github.com/quickhelper/bookingkit/pkg/account"
)

// ListOptions filters and paginates notification queries.
type ListOptions struct {
	// OnlyUnread restricts results to unread notifications.
	OnlyUnread bool
	// Limit caps the number of results. Zero means no limit.
	Limit int
	// Offset skips that many results, for pagination.
	Offset int
}

// Storage persists notifications. Implementations must be safe for
// concurrent use.
//
// Receiver-scoped queries always take the (receiverID, role) pair: ids from
// the requester and provider namespaces may collide, so the id alone does not
// identify a receiver.
type Storage interface {
	// Create stores a new notification.
	Create(ctx context.Context, n Notification) error

	// Get returns a notification by id, or ErrNotificationNotFound.
	Get(ctx context.Context, id string) (*Notification, error)

	// List returns a receiver's notifications in reverse chronological order.
	List(ctx context.Context, receiverID string, role account.Role, opts ListOptions) ([]Notification, error)

	// MarkRead marks a notification as read. Marking an already-read
	// notification is a no-op; a missing one is ErrNotificationNotFound.
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead marks all of a receiver's unread notifications as read.
	MarkAllRead(ctx context.Context, receiverID string, role account.Role) error

	// CountUnread returns the number of unread notifications for a receiver.
	CountUnread(ctx context.Context, receiverID string, role account.Role) (int, error)

	// Delete removes a notification by id, or returns ErrNotificationNotFound.
	Delete(ctx context.Context, id string) error
}
