package stats

import (
	"context"
	"fmt"
	"sync"
)

type memRepo struct {
	mu     sync.Mutex
	totals map[string]FullStatistic // pairKey -> 累计
	runs   map[string]FullStatistic // runID -> 单次
}

func NewMemoryRepo() Repo {
	return &memRepo{
		totals: make(map[string]FullStatistic),
		runs:   make(map[string]FullStatistic),
	}
}

func memKey(first, second string) string {
	return fmt.Sprintf("%s|%s", first, second)
}

func (m *memRepo) Add(ctx context.Context, stat FullStatistic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memKey(stat.First, stat.Second)
	total := m.totals[key]
	total.Merge(stat)
	m.totals[key] = total
	return nil
}

func (m *memRepo) Load(ctx context.Context, first, second string) (FullStatistic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.totals[memKey(first, second)]; ok {
		return s, nil
	}
	return NewFullStatistic(first, second), nil
}

func (m *memRepo) SaveRun(ctx context.Context, runID string, stat FullStatistic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// 内存版不做过期
	m.runs[runID] = stat
	return nil
}

func (m *memRepo) LoadRun(ctx context.Context, runID string) (FullStatistic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.runs[runID]
	if !ok {
		return FullStatistic{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return s, nil
}
