package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/quickhelper/bookingkit/pkg/account"
)

type receiverKey struct {
	id   string
	role account.Role
}

// MemoryStorage is an in-memory Storage implementation.
// Suitable for development and testing.
type MemoryStorage struct {
	byReceiver map[receiverKey][]*Notification
	byID       map[string]*Notification
	mu         sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byReceiver: make(map[receiverKey][]*Notification),
		byID:       make(map[string]*Notification),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, n Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := n
	key := receiverKey{id: n.ReceiverID, role: n.ReceiverRole}
	s.byReceiver[key] = append(s.byReceiver[key], &stored)
	s.byID[n.ID] = &stored
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, id string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.byID[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}
	// Copy out so callers cannot mutate stored state
	out := *n
	return &out, nil
}

func (s *MemoryStorage) List(ctx context.Context, receiverID string, role account.Role, opts ListOptions) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byReceiver[receiverKey{id: receiverID, role: role}]
	result := make([]Notification, 0, len(stored))
	for _, n := range stored {
		if opts.OnlyUnread && n.Read {
			continue
		}
		result = append(result, *n)
	}

	// Newest first
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(result) {
			return []Notification{}, nil
		}
		result = result[opts.Offset:]
	}
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.byID[id]
	if !ok {
		return ErrNotificationNotFound
	}
	if n.Read {
		return nil
	}
	now := time.Now().UTC()
	n.Read = true
	n.ReadAt = &now
	return nil
}

func (s *MemoryStorage) MarkAllRead(ctx context.Context, receiverID string, role account.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, n := range s.byReceiver[receiverKey{id: receiverID, role: role}] {
		if n.Read {
			continue
		}
		n.Read = true
		n.ReadAt = &now
	}
	return nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, receiverID string, role account.Role) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.byReceiver[receiverKey{id: receiverID, role: role}] {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.byID[id]
	if !ok {
		return ErrNotificationNotFound
	}
	delete(s.byID, id)

	key := receiverKey{id: n.ReceiverID, role: n.ReceiverRole}
	stored := s.byReceiver[key]
	for i, candidate := range stored {
		if candidate.ID == id {
			s.byReceiver[key] = append(stored[:i], stored[i+1:]...)
			break
		}
	}
	if len(s.byReceiver[key]) == 0 {
		delete(s.byReceiver, key)
	}
	return nil
}
