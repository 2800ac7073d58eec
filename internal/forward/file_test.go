package forward

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/d8barcelos/file-watcher/internal/watch"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func TestFile_EmitWritesNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ndjson")
	observed := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	f, err := NewFile(path, "watch-1", "/watch")
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	defer f.Close()

	events := []watch.Event{
		{Kind: watch.Created, Name: "a.txt", Time: observed},
		{Kind: watch.Deleted, Name: "b.txt", Time: observed},
	}
	for _, ev := range events {
		if err := f.Emit(ev); err != nil {
			t.Fatalf("Emit() error = %v", err)
		}
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	wantKinds := []string{"CREATED", "DELETED"}
	wantNames := []string{"a.txt", "b.txt"}
	for i, line := range lines {
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if rec.WatchID != "watch-1" {
			t.Errorf("line %d: WatchID = %q, want %q", i, rec.WatchID, "watch-1")
		}
		if rec.Dir != "/watch" {
			t.Errorf("line %d: Dir = %q, want %q", i, rec.Dir, "/watch")
		}
		if rec.Kind != wantKinds[i] {
			t.Errorf("line %d: Kind = %q, want %q", i, rec.Kind, wantKinds[i])
		}
		if rec.Name != wantNames[i] {
			t.Errorf("line %d: Name = %q, want %q", i, rec.Name, wantNames[i])
		}
		if !rec.ObservedAt.Equal(observed) {
			t.Errorf("line %d: ObservedAt = %v, want %v", i, rec.ObservedAt, observed)
		}
	}
}

func TestFile_FlushMakesLinesVisible(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ndjson")

	f, err := NewFile(path, "watch-1", "/watch")
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	defer f.Close()

	if err := f.Emit(watch.Event{Kind: watch.Created, Name: "a.txt"}); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if lines := readLines(t, path); len(lines) != 0 {
		t.Fatalf("got %d lines before flush, want 0", len(lines))
	}

	if err := f.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if lines := readLines(t, path); len(lines) != 1 {
		t.Errorf("got %d lines after flush, want 1", len(lines))
	}
}

func TestFile_AppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ndjson")

	f1, err := NewFile(path, "watch-1", "/watch")
	if err != nil {
		t.Fatalf("first NewFile() error = %v", err)
	}
	if err := f1.Emit(watch.Event{Kind: watch.Created, Name: "a.txt"}); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if err := f1.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f2, err := NewFile(path, "watch-1", "/watch")
	if err != nil {
		t.Fatalf("second NewFile() error = %v", err)
	}
	if err := f2.Emit(watch.Event{Kind: watch.Deleted, Name: "a.txt"}); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if err := f2.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Errorf("got %d lines after two runs, want 2", len(lines))
	}
}

func TestFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "events.ndjson")

	f, err := NewFile(path, "watch-1", "/watch")
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	defer f.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("parent directory was not created: %v", err)
	}
}
