package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"
)

// Poller drives an Engine on a fixed interval and hands each cycle's events
// to the configured sinks. It implements suture.Service; errors that cannot
// heal by retrying (the directory became unlistable, a sink rejected an
// event) terminate the whole supervisor tree instead of restarting the
// service into the same failure.
type Poller struct {
	engine   *Engine
	sinks    []Sink
	interval time.Duration
	quiet    bool
	logger   Logger
}

// NewPoller wires an Engine to its sinks. With quiet set, Modified events
// are dropped before delivery; Created and Deleted always pass through.
func NewPoller(engine *Engine, sinks []Sink, interval time.Duration, quiet bool, logger Logger) *Poller {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Poller{
		engine:   engine,
		sinks:    sinks,
		interval: interval,
		quiet:    quiet,
		logger:   logger,
	}
}

// Serve runs one cycle immediately, then one per interval until ctx is
// canceled. Each cycle waits out the full interval regardless of how long
// the scan itself took.
func (p *Poller) Serve(ctx context.Context) error {
	for {
		events, err := p.engine.RunCycle()
		if err != nil {
			return &fatalError{err: err}
		}
		if err := p.deliver(events); err != nil {
			return &fatalError{err: err}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.interval):
		}
	}
}

func (p *Poller) deliver(events []Event) error {
	delivered := 0
	for _, event := range events {
		if p.quiet && event.Kind == Modified {
			continue
		}
		for _, sink := range p.sinks {
			if err := sink.Emit(event); err != nil {
				return fmt.Errorf("emit %s %s: %w", event.Kind, event.Name, err)
			}
		}
		delivered++
	}

	for _, sink := range p.sinks {
		f, ok := sink.(Flusher)
		if !ok {
			continue
		}
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush sink: %w", err)
		}
	}

	if delivered > 0 {
		p.logger.Debug("cycle delivered events", "dir", p.engine.Dir(), "count", delivered)
	}
	return nil
}

func (p *Poller) String() string {
	return fmt.Sprintf("poller(%s)", p.engine.Dir())
}

// fatalError tells suture to tear the tree down rather than restart us.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }

func (e *fatalError) Unwrap() error { return e.err }

func (e *fatalError) Is(target error) bool {
	return target == suture.ErrTerminateSupervisorTree
}
