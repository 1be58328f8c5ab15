package broadcast

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Hub routes published messages to topic subscribers.
// The zero value is not usable; construct with NewHub.
type Hub[T any] struct {
	topics     map[string]map[string]*Subscriber[T]
	bufferSize int
	closed     bool
	mu         sync.RWMutex
	wg         sync.WaitGroup
}

// NewHub creates a hub whose subscribers buffer up to bufferSize messages.
// A minimum buffer of 1 is enforced so sends stay non-blocking.
func NewHub[T any](bufferSize int) *Hub[T] {
	return &Hub[T]{
		topics:     make(map[string]map[string]*Subscriber[T]),
		bufferSize: max(bufferSize, 1),
	}
}

// Subscribe attaches a new subscriber to the given topic. The subscription is
// detached automatically when ctx is cancelled.
func (h *Hub[T]) Subscribe(ctx context.Context, topic string) (*Subscriber[T], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}

	sub := &Subscriber[T]{
		id:       uuid.New().String(),
		topic:    topic,
		messages: make(chan Message[T], h.bufferSize),
		done:     make(chan struct{}),
		hub:      h,
	}

	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[string]*Subscriber[T])
		h.topics[topic] = subs
	}
	subs[sub.id] = sub

	if ctx.Done() != nil {
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			select {
			case <-ctx.Done():
				_ = sub.Close()
			case <-sub.done:
			}
		}()
	}

	return sub, nil
}

// Publish sends payload to every subscriber of topic. Delivery is
// non-blocking: subscribers whose buffers are full miss the message and are
// detached. Publishing to a topic with no subscribers is not an error.
func (h *Hub[T]) Publish(ctx context.Context, topic string, payload T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return ErrClosed
	}
	subs := make([]*Subscriber[T], 0, len(h.topics[topic]))
	for _, sub := range h.topics[topic] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	msg := newMessage(topic, payload)
	for _, sub := range subs {
		if !sub.send(msg) {
			// Detach asynchronously so a full buffer never blocks the
			// publisher on the hub's write lock.
			h.wg.Add(1)
			go func(s *Subscriber[T]) {
				defer h.wg.Done()
				_ = s.Close()
			}(sub)
		}
	}

	return nil
}

// SubscriberCount returns the number of subscribers attached to topic.
func (h *Hub[T]) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Close shuts down the hub and closes all subscribers.
// Close is idempotent.
func (h *Hub[T]) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true

	subs := make([]*Subscriber[T], 0)
	for _, topicSubs := range h.topics {
		for _, sub := range topicSubs {
			subs = append(subs, sub)
		}
	}
	clear(h.topics)
	h.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}

	h.wg.Wait()
	return nil
}

func (h *Hub[T]) detach(sub *Subscriber[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[sub.topic]
	if !ok {
		return
	}
	delete(subs, sub.id)
	if len(subs) == 0 {
		delete(h.topics, sub.topic)
	}
}
