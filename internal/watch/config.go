package watch

import (
	"fmt"
	"time"
)

// Config is the resolved watch configuration for one directory. The CLI and
// the config file are merged into it before the core starts; a validation
// failure there is fatal and the watcher never runs.
type Config struct {
	// Dir is the directory whose immediate entries are watched.
	Dir string

	// Interval is the pause between the end of one polling cycle and the
	// start of the next.
	Interval time.Duration

	// Recursive is accepted but not implemented; the watcher covers the top
	// level only and warns when the flag is set.
	Recursive bool

	// IgnorePatterns hide a file from watching when any pattern occurs as a
	// substring of its name.
	IgnorePatterns []string

	// Quiet suppresses Modified events at the delivery boundary. Detection
	// and snapshot upkeep are unaffected.
	Quiet bool

	// Timestamps controls whether sinks render the observation time.
	Timestamps bool

	// Workers is the number of concurrent fingerprint computations within
	// one cycle. 1 keeps the cycle fully sequential.
	Workers int
}

// Validate reports the first configuration problem, if any.
func (c Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("watch directory is required")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.Interval)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
