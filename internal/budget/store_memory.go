package budget

import (
	"context"
	"sync"
)

// memoryStore keeps per-day totals in memory. Suitable for dev and
// tests; data does not survive restarts.
type memoryStore struct {
	mu     sync.Mutex
	totals map[string]float64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{totals: make(map[string]float64)}
}

func (s *memoryStore) Total(ctx context.Context, day string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals[day], nil
}

func (s *memoryStore) Add(ctx context.Context, day string, cost float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals[day] += cost
	return s.totals[day], nil
}
