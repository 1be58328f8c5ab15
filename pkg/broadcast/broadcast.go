package broadcast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message wraps a payload of type T published to a topic.
type Message[T any] struct {
	ID      string    `json:"id"`
	Topic   string    `json:"topic"`
	Payload T         `json:"payload"`
	SentAt  time.Time `json:"sent_at"`
}

func newMessage[T any](topic string, payload T) Message[T] {
	return Message[T]{
		ID:      uuid.New().String(),
		Topic:   topic,
		Payload: payload,
		SentAt:  time.Now(),
	}
}

// Subscriber receives messages published to a single topic.
// All methods are safe for concurrent use.
type Subscriber[T any] struct {
	id        string
	topic     string
	messages  chan Message[T]
	done      chan struct{}
	hub       *Hub[T]
	closed    bool
	mu        sync.RWMutex
	closeOnce sync.Once
}

// Messages returns the channel on which published messages arrive.
// The channel is closed when the subscriber is closed.
func (s *Subscriber[T]) Messages() <-chan Message[T] {
	return s.messages
}

// Topic returns the topic this subscriber is attached to.
func (s *Subscriber[T]) Topic() string {
	return s.topic
}

// Close detaches the subscriber from the hub and closes its message channel.
// Close is idempotent.
func (s *Subscriber[T]) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.hub.detach(s)

		s.mu.Lock()
		s.closed = true
		close(s.messages)
		s.mu.Unlock()
	})
	return nil
}

// send delivers a message without blocking. A false return means the
// subscriber is closed or its buffer is full and it should be detached.
func (s *Subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.messages <- msg:
		return true
	default:
		return false
	}
}
