package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisDeliverer publishes notifications to Redis pub/sub channels, one
// channel per receiver topic. It backs multi-instance deployments where the
// instance holding the client connection is not the one dispatching.
type RedisDeliverer struct {
	client redis.UniversalClient
}

// NewRedisDeliverer creates a deliverer publishing through the given client.
func NewRedisDeliverer(client redis.UniversalClient) *RedisDeliverer {
	return &RedisDeliverer{client: client}
}

func (d *RedisDeliverer) Deliver(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", n.ID, err)
	}

	if err := d.client.Publish(ctx, Topic(n.ReceiverRole, n.ReceiverID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID, err)
	}
	return nil
}
