package account

import (
	"context"
	"sync"
)

// MemoryResolver is an in-memory Resolver implementation.
// Suitable for development and testing.
type MemoryResolver struct {
	accounts map[string]Account
	mu       sync.RWMutex
}

// NewMemoryResolver creates an empty in-memory resolver.
func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{
		accounts: make(map[string]Account),
	}
}

// Add registers an account, replacing any previous entry with the same id.
func (r *MemoryResolver) Add(acc Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[acc.ID] = acc
}

func (r *MemoryResolver) Resolve(ctx context.Context, id string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	// Return a copy to prevent external mutation of stored data
	out := acc
	return &out, nil
}
