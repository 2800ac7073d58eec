package forward

import (
	"context"
	"fmt"

	"github.com/d8barcelos/file-watcher/internal/config"
	"github.com/d8barcelos/file-watcher/internal/watch"
)

// NewFromConfig creates an event forwarder based on the forward config type.
// Type "none" (or empty) returns a nil sink: forwarding is disabled.
func NewFromConfig(ctx context.Context, cfg config.ForwardConfig, watchID, runID, dir string, clock watch.Clock) (watch.Sink, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "memory":
		return NewMemory(watchID, dir), nil
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file forwarder requires file_path to be set")
		}
		return NewFile(cfg.FilePath, watchID, dir)
	case "s3":
		return NewS3(ctx, cfg, watchID, runID, dir, clock)
	default:
		return nil, fmt.Errorf("unknown forward type: %s", cfg.Type)
	}
}
