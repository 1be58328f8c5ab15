// Package broadcast provides a type-safe in-process topic hub for one-to-many
// message fan-out.
//
// Publishers address messages to string topics; subscribers attach to a topic
// and receive every message published to it while they are attached. Delivery
// is non-blocking: when a subscriber's buffer is full the message is dropped
// for that subscriber and it is detached, so one slow consumer can never stall
// a publisher.
//
// Basic usage:
//
//	hub := broadcast.NewHub[string](16)
//	defer hub.Close()
//
//	sub, err := hub.Subscribe(ctx, "requester/42/notifications")
//	if err != nil {
//		return err
//	}
//	defer sub.Close()
//
//	hub.Publish(ctx, "requester/42/notifications", "hello")
//
//	for msg := range sub.Messages() {
//		fmt.Println(msg.Payload)
//	}
//
// Subscriptions are cleaned up automatically when the subscribing context is
// cancelled or the hub is closed.
package broadcast
