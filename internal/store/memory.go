package store

import (
	"context"
	"sync"
	"time"

	"github.com/JonMunkholm/stickers/internal/core"
)

// DefaultMemoryCapacity bounds the in-memory history.
const DefaultMemoryCapacity = core.MaxHistoryLimit

// Memory is a core.RunStore that keeps the most recent runs in process.
type Memory struct {
	mu       sync.RWMutex
	runs     []core.Run // oldest first
	capacity int
}

// NewMemory returns an empty store holding at most capacity runs.
// A non-positive capacity uses DefaultMemoryCapacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &Memory{capacity: capacity}
}

func (m *Memory) SaveRun(_ context.Context, run core.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs = append(m.runs, run)
	if over := len(m.runs) - m.capacity; over > 0 {
		m.runs = append(m.runs[:0:0], m.runs[over:]...)
	}
	return nil
}

func (m *Memory) RecentRuns(_ context.Context, limit int) ([]core.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.runs) {
		limit = len(m.runs)
	}
	out := make([]core.Run, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

func (m *Memory) PurgeRuns(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.runs[:0]
	var purged int64
	for _, run := range m.runs {
		if run.CreatedAt.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, run)
	}
	m.runs = kept
	return purged, nil
}

// Len returns the number of stored runs.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}
