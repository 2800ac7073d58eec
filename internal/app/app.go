package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"
	"github.com/thejerf/suture/v4"
	"golang.org/x/term"

	"github.com/d8barcelos/file-watcher/internal/config"
	"github.com/d8barcelos/file-watcher/internal/forward"
	"github.com/d8barcelos/file-watcher/internal/journal"
	"github.com/d8barcelos/file-watcher/internal/render"
	"github.com/d8barcelos/file-watcher/internal/watch"
)

// App is the application layer between the CLI and the watch engine.
// It constructs all dependencies from config, supervises the poller,
// and manages sink lifecycles on Close.
type App struct {
	cfg       *config.Config
	sup       *suture.Supervisor
	jrnl      *journal.Journal
	forwarder watch.Sink
	pool      *ants.Pool
	logFile   *os.File
	logger    watch.Logger
}

// NewApp creates a fully wired App from the given config and watch settings.
// The caller must call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, wcfg watch.Config) (*App, error) {
	if err := wcfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid watch settings: %w", err)
	}

	runID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, runID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger}

	fsys := afero.NewOsFs()

	// The ignore file itself never shows up as an event. Patterns from the
	// config and from the ignore file in the watched directory are merged.
	patterns := append([]string{watch.IgnoreFileName}, wcfg.IgnorePatterns...)
	filePatterns, err := watch.ParseIgnoreFile(fsys, filepath.Join(wcfg.Dir, watch.IgnoreFileName))
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	patterns = append(patterns, filePatterns...)

	var pool *ants.Pool
	if wcfg.Workers > 1 {
		pool, err = ants.NewPool(wcfg.Workers)
		if err != nil {
			logFile.Close()
			return nil, fmt.Errorf("creating worker pool: %w", err)
		}
	}

	engine := watch.NewEngine(fsys, wcfg.Dir, watch.NewMatcher(patterns), pool, watch.RealClock{}, log)

	color := term.IsTerminal(int(os.Stdout.Fd()))
	sinks := []watch.Sink{render.NewConsole(os.Stdout, wcfg.Timestamps, color)}

	var jrnl *journal.Journal
	if cfg.Journal.Enabled {
		jrnl, err = journal.Open(cfg.Journal.Path, cfg.WatchID, wcfg.Dir, watch.RealClock{})
		if err != nil {
			if pool != nil {
				pool.Release()
			}
			logFile.Close()
			return nil, fmt.Errorf("opening journal: %w", err)
		}
		sinks = append(sinks, jrnl)
	}

	forwarder, err := forward.NewFromConfig(ctx, cfg.Forward, cfg.WatchID, runID, wcfg.Dir, watch.RealClock{})
	if err != nil {
		if jrnl != nil {
			jrnl.Close()
		}
		if pool != nil {
			pool.Release()
		}
		logFile.Close()
		return nil, fmt.Errorf("creating forwarder: %w", err)
	}
	if forwarder != nil {
		sinks = append(sinks, forwarder)
	}

	if wcfg.Recursive {
		log.Warn("recursive watching is not implemented, watching the top level only", "dir", wcfg.Dir)
	}

	poller := watch.NewPoller(engine, sinks, wcfg.Interval, wcfg.Quiet, log)

	sup := suture.New("fwatch", suture.Spec{
		EventHook: func(e suture.Event) {
			log.Warn("supervisor event", "event", e.String())
		},
		Timeout:                  10 * time.Second,
		PassThroughPanics:        true,
		DontPropagateTermination: false,
	})
	sup.Add(poller)

	log.Info("watch starting",
		"dir", wcfg.Dir,
		"interval", wcfg.Interval,
		"workers", wcfg.Workers,
	)

	return &App{
		cfg:       cfg,
		sup:       sup,
		jrnl:      jrnl,
		forwarder: forwarder,
		pool:      pool,
		logFile:   logFile,
		logger:    log,
	}, nil
}

// Run starts the supervised poller and blocks until ctx is canceled or the
// poller fails fatally. A canceled context is a normal shutdown, not an error.
func (a *App) Run(ctx context.Context) error {
	if err := a.sup.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close closes all resources owned by the app.
func (a *App) Close() error {
	var firstErr error

	if a.jrnl != nil {
		if err := a.jrnl.Close(); err != nil {
			firstErr = fmt.Errorf("closing journal: %w", err)
		}
	}

	if c, ok := a.forwarder.(io.Closer); ok {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing forwarder: %w", err)
		}
	}

	if a.pool != nil {
		a.pool.Release()
	}

	a.logger.Info("watch stopped")
	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
