package notify

import (
	"context"

	"github.com/quickhelper/bookingkit/pkg/account"
	"github.com/quickhelper/bookingkit/pkg/broadcast"
)

// BroadcastDeliverer delivers notifications to in-process subscribers through
// a topic hub. It backs single-instance deployments where WebSocket or SSE
// handlers subscribe directly to a receiver's topic.
type BroadcastDeliverer struct {
	hub *broadcast.Hub[Notification]
}

// NewBroadcastDeliverer creates a deliverer whose subscribers buffer up to
// bufferSize notifications each.
func NewBroadcastDeliverer(bufferSize int) *BroadcastDeliverer {
	return &BroadcastDeliverer{
		hub: broadcast.NewHub[Notification](bufferSize),
	}
}

func (d *BroadcastDeliverer) Deliver(ctx context.Context, n Notification) error {
	return d.hub.Publish(ctx, Topic(n.ReceiverRole, n.ReceiverID), n)
}

// Subscribe attaches to a receiver's notification topic. The subscription is
// detached when ctx is cancelled or the subscriber is closed.
func (d *BroadcastDeliverer) Subscribe(ctx context.Context, role account.Role, receiverID string) (*broadcast.Subscriber[Notification], error) {
	return d.hub.Subscribe(ctx, Topic(role, receiverID))
}

// SubscriberCount returns the number of live subscribers for a receiver.
func (d *BroadcastDeliverer) SubscriberCount(role account.Role, receiverID string) int {
	return d.hub.SubscriberCount(Topic(role, receiverID))
}

// Close shuts down the hub and all subscriptions.
func (d *BroadcastDeliverer) Close() error {
	return d.hub.Close()
}
