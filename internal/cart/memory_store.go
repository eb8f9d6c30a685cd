package cart

import (
	"context"
	"sync"
)

// MemoryStore is the in-process Store used by tests and by deployments
// without Redis (single node, file-backed storage).
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]Line
}

// NewMemoryStore builds an empty in-process cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string][]Line{}}
}

func (s *MemoryStore) Lines(ctx context.Context, sessionID string) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.carts[sessionID]), nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, lines []Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = cloneLines(lines)
	return nil
}

func (s *MemoryStore) Take(ctx context.Context, sessionID string) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sessionID]
	delete(s.carts, sessionID)
	return lines, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func cloneLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
