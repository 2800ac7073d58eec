package watch

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"

	"github.com/d8barcelos/file-watcher/internal/polyhash"
)

// Fingerprint captures the observable state of one file: its modification
// time, its size, and a checksum of its content. Two fingerprints are equal
// iff all three fields are equal; that equality is the engine's only
// criterion for "unchanged".
//
// The checksum is not redundant next to mtime+size: copies can preserve the
// size, and filesystem timestamp granularity can be coarser than a polling
// interval. Reading every file each cycle is the documented cost of catching
// those cases.
type Fingerprint struct {
	ModTime time.Time
	Size    int64
	Hash    uint64
}

// Equal reports whether both fingerprints describe the same file state.
func (fp Fingerprint) Equal(other Fingerprint) bool {
	return fp.ModTime.Equal(other.ModTime) && fp.Size == other.Size && fp.Hash == other.Hash
}

// ComputeFingerprint stats and reads the file at path. Any failure, from a
// missing file to one that stops being regular by the time it is read, is
// reported as an *AccessError so the engine can skip the file for the
// current cycle.
func ComputeFingerprint(fsys afero.Fs, path string) (Fingerprint, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return Fingerprint{}, &AccessError{Name: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return Fingerprint{}, &AccessError{Name: path, Err: fmt.Errorf("not a regular file")}
	}

	f, err := fsys.Open(path)
	if err != nil {
		return Fingerprint{}, &AccessError{Name: path, Err: err}
	}
	defer f.Close()

	h := polyhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return Fingerprint{}, &AccessError{Name: path, Err: err}
	}

	return Fingerprint{
		ModTime: info.ModTime(),
		Size:    info.Size(),
		Hash:    h.Sum64(),
	}, nil
}
