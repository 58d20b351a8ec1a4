package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"expenses/internal/core"
	"expenses/internal/store"
)

// Store keeps expenses in a slice guarded by a single-writer lock. Contents
// are lost when the process exits.
type Store struct {
	mu    sync.RWMutex
	newID store.IDGenerator
	items []core.Expense
}

func New() *Store {
	return NewWithIDs(uuid.NewString)
}

// NewWithIDs lets callers choose how identifiers are generated.
func NewWithIDs(gen store.IDGenerator) *Store {
	return &Store{newID: gen}
}

// Add stores the expense and returns the stored record.
func (s *Store) Add(_ context.Context, n core.NewExpense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := n.Build(s.newID())
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}
	s.items = append(s.items, e)
	return e, nil
}

// List returns a copy of the matching expenses in insertion order.
func (s *Store) List(_ context.Context, filter core.Filter) ([]core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter.Apply(s.items), nil
}

// Len returns the number of stored expenses.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

var _ store.Store = (*Store)(nil)
