package booking

import (
	"context"
	"sort"
	"sync"
)

// MemoryStorage is an in-memory Storage implementation.
// Suitable for development and testing.
type MemoryStorage struct {
	bookings map[string]Booking
	mu       sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		bookings: make(map[string]Booking),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, b Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, id string) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

func (s *MemoryStorage) Update(ctx context.Context, b Booking, expected Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.bookings[b.ID]
	if !ok {
		return ErrBookingNotFound
	}
	if stored.Status != expected {
		return ErrStatusConflict
	}
	s.bookings[b.ID] = b
	return nil
}

func (s *MemoryStorage) ListByRequester(ctx context.Context, requesterID string) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Booking, 0)
	for _, b := range s.bookings {
		if b.RequesterID == requesterID {
			result = append(result, b)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *MemoryStorage) ListByProvider(ctx context.Context, providerID string) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Booking, 0)
	for _, b := range s.bookings {
		if b.ProviderID == providerID {
			result = append(result, b)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(bookings []Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}
