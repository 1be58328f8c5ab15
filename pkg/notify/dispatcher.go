package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quickhelper/bookingkit/pkg/account"
	"github.com/quickhelper/bookingkit/pkg/async"
	"github.com/quickhelper/bookingkit/pkg/logger"
)

const defaultDeliveryTimeout = 3 * time.Second

// Dispatcher persists notifications and pushes them to receivers.
//
// Persistence is the durability point: once Send returns nil the
// notification is stored and will show up in the receiver's list queries.
// Live delivery happens asynchronously after the store and is best-effort;
// its failures are logged, never returned.
type Dispatcher struct {
	storage         Storage
	deliverer       Deliverer
	resolver        account.Resolver
	logger          *slog.Logger
	deliveryTimeout time.Duration
	wg              sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger for delivery failures and debug output.
func WithLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.logger = log
		}
	}
}

// WithDeliveryTimeout bounds how long a single live delivery may take before
// it is abandoned and logged as failed.
func WithDeliveryTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.deliveryTimeout = timeout
		}
	}
}

// NewDispatcher creates a dispatcher. The resolver guards against
// notifications addressed to receivers that do not exist.
func NewDispatcher(storage Storage, deliverer Deliverer, resolver account.Resolver, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		storage:         storage,
		deliverer:       deliverer,
		resolver:        resolver,
		logger:          slog.New(slog.DiscardHandler),
		deliveryTimeout: defaultDeliveryTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send validates and persists the notification, then schedules best-effort
// live delivery. The returned notification carries the assigned id and
// timestamp.
//
// An error means the notification was NOT stored. A nil return says nothing
// about live delivery, which may still fail silently.
func (d *Dispatcher) Send(ctx context.Context, n Notification) (*Notification, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	acc, err := d.resolver.Resolve(ctx, n.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("resolve receiver %s: %w", n.ReceiverID, err)
	}
	if acc.Role != n.ReceiverRole {
		// The id exists in the other role's namespace; for this role the
		// receiver does not exist.
		return nil, fmt.Errorf("resolve receiver %s: %w", n.ReceiverID, account.ErrAccountNotFound)
	}

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	if err := d.storage.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("store notification: %w", err)
	}

	d.deliver(ctx, n)

	return &n, nil
}

// deliver pushes the stored notification off the caller's critical path.
// The delivery context is detached from the caller's so an ending request
// does not cancel an in-flight push.
func (d *Dispatcher) deliver(ctx context.Context, n Notification) {
	deliveryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.deliveryTimeout)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		future := async.Async(deliveryCtx, n, func(ctx context.Context, n Notification) (struct{}, error) {
			return struct{}{}, d.deliverer.Deliver(ctx, n)
		})

		if _, err := future.AwaitWithTimeout(d.deliveryTimeout); err != nil {
			d.logger.LogAttrs(deliveryCtx, slog.LevelWarn, "notification delivery failed",
				logger.NotificationID(n.ID),
				logger.ReceiverID(n.ReceiverID),
				logger.Role(n.ReceiverRole),
				logger.EventType(string(n.Type)),
				logger.Topic(Topic(n.ReceiverRole, n.ReceiverID)),
				logger.Error(errors.Join(ErrDeliveryFailed, err)),
			)
			return
		}

		d.logger.LogAttrs(deliveryCtx, slog.LevelDebug, "notification delivered",
			logger.NotificationID(n.ID),
			logger.Topic(Topic(n.ReceiverRole, n.ReceiverID)),
		)
	}()
}

// Get returns a stored notification by id.
func (d *Dispatcher) Get(ctx context.Context, id string) (*Notification, error) {
	return d.storage.Get(ctx, id)
}

// List returns a receiver's notifications, newest first.
func (d *Dispatcher) List(ctx context.Context, receiverID string, role account.Role, opts ListOptions) ([]Notification, error) {
	return d.storage.List(ctx, receiverID, role, opts)
}

// ListUnread returns a receiver's unread notifications, newest first.
func (d *Dispatcher) ListUnread(ctx context.Context, receiverID string, role account.Role) ([]Notification, error) {
	return d.storage.List(ctx, receiverID, role, ListOptions{OnlyUnread: true})
}

// MarkRead marks a notification as read. Marking an already-read
// notification is a no-op.
func (d *Dispatcher) MarkRead(ctx context.Context, id string) error {
	return d.storage.MarkRead(ctx, id)
}

// MarkAllRead marks all of a receiver's unread notifications as read.
func (d *Dispatcher) MarkAllRead(ctx context.Context, receiverID string, role account.Role) error {
	return d.storage.MarkAllRead(ctx, receiverID, role)
}

// CountUnread returns the number of unread notifications for a receiver.
func (d *Dispatcher) CountUnread(ctx context.Context, receiverID string, role account.Role) (int, error) {
	return d.storage.CountUnread(ctx, receiverID, role)
}

// Delete removes a notification by id.
func (d *Dispatcher) Delete(ctx context.Context, id string) error {
	return d.storage.Delete(ctx, id)
}

// Close waits for in-flight deliveries to finish. It does not close the
// underlying storage or deliverer.
func (d *Dispatcher) Close() error {
	d.wg.Wait()
	return nil
}
