package testutil

import (
	"sync"

	"github.com/d8barcelos/file-watcher/internal/watch"
)

// RecordingSink captures every emitted event in order. Safe for concurrent
// use. EmitErr, when set, is returned by Emit without recording; FlushErr
// likewise fails Flush.
type RecordingSink struct {
	mu      sync.Mutex
	events  []watch.Event
	flushes int

	EmitErr  error
	FlushErr error
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Emit(event watch.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EmitErr != nil {
		return s.EmitErr
	}
	s.events = append(s.events, event)
	return nil
}

func (s *RecordingSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FlushErr != nil {
		return s.FlushErr
	}
	s.flushes++
	return nil
}

// Events returns a copy of the recorded events.
func (s *RecordingSink) Events() []watch.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]watch.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Flushes reports how many times Flush succeeded.
func (s *RecordingSink) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}
