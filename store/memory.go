package store

import (
	"context"
	"sync"

	"github.com/plus3/blockfall/tetris"
)

// MemoryStore keeps the record in process memory, along with every game
// recorded through it.
type MemoryStore struct {
	mu       sync.Mutex
	lifetime tetris.Lifetime
	games    []tetris.GameSummary
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (tetris.Lifetime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifetime, nil
}

func (s *MemoryStore) Save(_ context.Context, l tetris.Lifetime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lifetime = l
	return nil
}

func (s *MemoryStore) UpdateLifetime(_ context.Context, fn func(l *tetris.Lifetime)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.lifetime)
	return nil
}

func (s *MemoryStore) RecordGame(_ context.Context, g tetris.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games = append(s.games, g)
	return nil
}

// Games returns the recorded games, oldest first.
func (s *MemoryStore) Games() []tetris.GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]tetris.GameSummary(nil), s.games...)
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	return s.Save(ctx, tetris.Lifetime{})
}

func (s *MemoryStore) Close() error {
	return nil
}
