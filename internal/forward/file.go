package forward

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/d8barcelos/file-watcher/internal/watch"
)

// File appends records to an NDJSON file, one JSON object per line. Writes
// go through a buffer that is flushed after each poll cycle, so a consumer
// tailing the file sees whole cycles, not partial lines.
type File struct {
	watchID string
	dir     string
	file    *os.File
	w       *bufio.Writer
	enc     *json.Encoder
}

// NewFile opens (creating if necessary) the NDJSON file at path for
// appending. Records from earlier runs are preserved.
func NewFile(path, watchID, dir string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating forward directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening forward file: %w", err)
	}

	w := bufio.NewWriter(f)
	return &File{
		watchID: watchID,
		dir:     dir,
		file:    f,
		w:       w,
		enc:     json.NewEncoder(w),
	}, nil
}

// Emit writes one record line into the buffer.
func (f *File) Emit(event watch.Event) error {
	if err := f.enc.Encode(newRecord(f.watchID, f.dir, event)); err != nil {
		return fmt.Errorf("encoding event record: %w", err)
	}
	return nil
}

// Flush pushes buffered lines to disk.
func (f *File) Flush() error {
	if err := f.w.Flush(); err != nil {
		return fmt.Errorf("flushing forward file: %w", err)
	}
	return nil
}

// Close flushes any buffered lines and closes the file.
func (f *File) Close() error {
	var firstErr error
	if err := f.w.Flush(); err != nil {
		firstErr = fmt.Errorf("flushing forward file: %w", err)
	}
	if err := f.file.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing forward file: %w", err)
	}
	return firstErr
}

// Compile-time checks that File implements watch.Sink and watch.Flusher
var (
	_ watch.Sink    = (*File)(nil)
	_ watch.Flusher = (*File)(nil)
)
