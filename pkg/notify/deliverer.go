package notify

import (
	"context"
	"errors"
)

// Deliverer pushes a stored notification to the receiver's live channel.
//
// Delivery is best-effort: the dispatcher logs failures and moves on, so
// implementations should not retry internally unless the transport is cheap
// to retry.
type Deliverer interface {
	Deliver(ctx context.Context, n Notification) error
}

// NoopDeliverer discards notifications. Useful when only durable storage is
// wanted, and in tests.
type NoopDeliverer struct{}

func (NoopDeliverer) Deliver(ctx context.Context, n Notification) error {
	return nil
}

// MultiDeliverer fans a notification out to several deliverers. Every
// deliverer is attempted; errors are joined.
type MultiDeliverer []Deliverer

func (m MultiDeliverer) Deliver(ctx context.Context, n Notification) error {
	var errs []error
	for _, d := range m {
		if err := d.Deliver(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
