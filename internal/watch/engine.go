package watch

import (
	"path/filepath"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"
)

// Engine diffs a directory against the snapshot of its previous cycle and
// emits the difference as events. It owns its Snapshot exclusively: RunCycle
// must not be called concurrently, and nothing else may mutate the snapshot
// between cycles.
type Engine struct {
	fsys    afero.Fs
	dir     string
	matcher *Matcher
	pool    *ants.Pool // nil computes fingerprints inline
	clock   Clock
	logger  Logger
	snap    *Snapshot
}

// NewEngine creates an Engine for dir with an empty snapshot, so the first
// cycle reports every existing file as created. pool may be nil, in which
// case fingerprints are computed sequentially.
func NewEngine(fsys afero.Fs, dir string, matcher *Matcher, pool *ants.Pool, clock Clock, logger Logger) *Engine {
	if matcher == nil {
		matcher = NewMatcher(nil)
	}
	if logger == nil {
		logger = NopLogger{}
	}
	return &Engine{
		fsys:    fsys,
		dir:     dir,
		matcher: matcher,
		pool:    pool,
		clock:   clock,
		logger:  logger,
		snap:    NewSnapshot(),
	}
}

// Dir returns the watched directory.
func (e *Engine) Dir() string { return e.dir }

// Snapshot returns the engine's state between cycles. Callers must not use
// it while a cycle is running.
func (e *Engine) Snapshot() *Snapshot { return e.snap }

type candidate struct {
	name string
	path string
}

type fpResult struct {
	fp  Fingerprint
	err error
}

// RunCycle performs one polling pass: list the directory, fingerprint every
// non-ignored regular file, compare against the snapshot, and return the
// changes. Created and Modified events come first in directory-listing
// order, then Deleted events in sorted name order.
//
// A listing failure returns a *DirAccessError and leaves the snapshot
// untouched. A single unreadable file is skipped for this cycle only: no
// event, no snapshot change, so a file that stays gone surfaces as Deleted
// on a later cycle and one that reappears is simply tracked again.
func (e *Engine) RunCycle() ([]Event, error) {
	entries, err := afero.ReadDir(e.fsys, e.dir)
	if err != nil {
		return nil, &DirAccessError{Dir: e.dir, Err: err}
	}
	now := e.clock.Now()

	// afero.ReadDir returns entries sorted by name, which fixes the
	// Created/Modified event order.
	seen := make(map[string]struct{}, len(entries))
	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		name := entry.Name()
		if e.matcher.Match(name) {
			continue
		}
		// Seen before fingerprinting: a file that turns unreadable this
		// cycle must not be reported as deleted.
		seen[name] = struct{}{}
		candidates = append(candidates, candidate{name: name, path: filepath.Join(e.dir, name)})
	}

	results := e.fingerprints(candidates)

	var events []Event
	for i, c := range candidates {
		if results[i].err != nil {
			e.logger.Debug("file unreadable, skipped for this cycle", "name", c.name, "error", results[i].err)
			continue
		}
		fp := results[i].fp
		prev, ok := e.snap.Get(c.name)
		switch {
		case !ok:
			events = append(events, Event{Kind: Created, Name: c.name, Time: now})
			e.snap.Put(c.name, fp)
		case !prev.Equal(fp):
			events = append(events, Event{Kind: Modified, Name: c.name, Time: now})
			e.snap.Put(c.name, fp)
		}
	}

	for _, name := range e.snap.Names() {
		if _, ok := seen[name]; ok {
			continue
		}
		events = append(events, Event{Kind: Deleted, Name: name, Time: now})
		e.snap.Remove(name)
	}

	return events, nil
}

// fingerprints computes one result per candidate, positionally, so the diff
// that follows is identical whether the reads ran inline or on the pool.
func (e *Engine) fingerprints(candidates []candidate) []fpResult {
	results := make([]fpResult, len(candidates))

	if e.pool == nil || len(candidates) < 2 {
		for i, c := range candidates {
			results[i].fp, results[i].err = ComputeFingerprint(e.fsys, c.path)
		}
		return results
	}

	var wg sync.WaitGroup
	for i, c := range candidates {
		i, c := i, c // pin per iteration: task may outlive it (go.mod targets go 1.21 loop semantics)
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i].fp, results[i].err = ComputeFingerprint(e.fsys, c.path)
		}
		if err := e.pool.Submit(task); err != nil {
			// Pool released or saturated: compute inline rather than skip.
			task()
		}
	}
	wg.Wait()

	return results
}
