package watch

import (
	"fmt"
	"time"
)

// Kind classifies a detected change.
type Kind int

const (
	// Created means the file is present now but was absent from the
	// previous snapshot. This includes every file found on the first
	// cycle after startup.
	Created Kind = iota
	// Modified means the file is present in both snapshots but its
	// fingerprint changed.
	Modified
	// Deleted means the file was present in the previous snapshot but is
	// absent now.
	Deleted
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "CREATED"
	case Modified:
		return "MODIFIED"
	case Deleted:
		return "DELETED"
	default:
		return fmt.Sprintf("KIND(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event records one observed change to one file.
type Event struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"` // base name within the watched directory

	// Time is when the change was observed, not when it happened on disk.
	Time time.Time `json:"observed_at"`
}
