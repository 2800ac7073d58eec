package forward

import (
	"sync"

	"github.com/d8barcelos/file-watcher/internal/watch"
)

// Memory is an in-memory forwarder that keeps every record it receives,
// making it useful for testing. Safe for concurrent use.
type Memory struct {
	watchID string
	dir     string
	mu      sync.RWMutex
	records []Record
}

// NewMemory creates a new in-memory forwarder.
func NewMemory(watchID, dir string) *Memory {
	return &Memory{watchID: watchID, dir: dir}
}

// Emit appends the event's record to the buffer.
func (m *Memory) Emit(event watch.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, newRecord(m.watchID, m.dir, event))
	return nil
}

// Records returns a copy of everything received so far.
func (m *Memory) Records() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Compile-time check that Memory implements watch.Sink
var _ watch.Sink = (*Memory)(nil)
