// Package forward ships watch events to an external destination: an
// in-memory buffer, an append-only NDJSON file, or an S3 bucket.
package forward

import (
	"time"

	"github.com/d8barcelos/file-watcher/internal/watch"
)

// Record is the JSON object written for one event. Every forwarder uses the
// same shape so downstream consumers can switch destinations without
// reparsing.
type Record struct {
	WatchID    string    `json:"watch_id"`
	Dir        string    `json:"dir"`
	Kind       string    `json:"kind"`
	Name       string    `json:"name"`
	ObservedAt time.Time `json:"observed_at"`
}

func newRecord(watchID, dir string, event watch.Event) Record {
	return Record{
		WatchID:    watchID,
		Dir:        dir,
		Kind:       event.Kind.String(),
		Name:       event.Name,
		ObservedAt: event.Time,
	}
}
