package watch

// Sink receives change events. Delivery is synchronous: the poller does not
// start the next cycle until every sink has accepted the current cycle's
// events, so a sink sees each event exactly once and in detection order.
type Sink interface {
	Emit(Event) error
}

// Flusher is implemented by sinks that buffer writes. The poller flushes
// each such sink once per cycle, after the cycle's last event.
type Flusher interface {
	Flush() error
}
