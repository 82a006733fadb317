package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fastfingers/typerace/internal/model"
	"github.com/fastfingers/typerace/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu      sync.RWMutex
	results []*model.GameResult
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveResult(ctx context.Context, result *model.GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *result
	s.results = append(s.results, &saved)
	return nil
}

func (s *Storage) TopResults(ctx context.Context, n int) ([]*model.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return nil, nil
	}

	sorted := make([]*model.GameResult, len(s.results))
	copy(sorted, s.results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WPM > sorted[j].WPM
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]*model.GameResult, n)
	for i := range out {
		copied := *sorted[i]
		out[i] = &copied
	}
	return out, nil
}

func (s *Storage) ResultCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results), nil
}
