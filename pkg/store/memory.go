package store

import (
	"context"
	"sync"
	"time"

	"github.com/lmarchetti/cardflow/pkg/board"
	"github.com/lmarchetti/cardflow/pkg/errors"
	"github.com/lmarchetti/cardflow/pkg/observability"
)

// MemoryStore is an in-memory store for tests and single-process development.
// It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]*board.Board
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{boards: make(map[string]*board.Board)}
}

// Get retrieves a board by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (b *board.Board, err error) {
	defer func(start time.Time) {
		observability.Store().OnLoad(ctx, id, time.Since(start), err)
	}(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.boards[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeBoardNotFound, "board %s not found", id)
	}
	return clone(stored), nil
}

// Put saves a board.
func (s *MemoryStore) Put(ctx context.Context, b *board.Board) (err error) {
	defer func(start time.Time) {
		observability.Store().OnSave(ctx, b.ID, len(b.Cards), time.Since(start), err)
	}(time.Now())

	if err := board.Validate(b); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[b.ID] = clone(b)
	return nil
}

// Delete removes a board.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, id)
	return nil
}

// List returns all stored board IDs.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.boards))
	for id := range s.boards {
		ids = append(ids, id)
	}
	return ids, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// clone copies a board so callers cannot alias the stored value.
func clone(b *board.Board) *board.Board {
	c := *b
	c.Cards = make([]board.Card, len(b.Cards))
	copy(c.Cards, b.Cards)
	return &c
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
