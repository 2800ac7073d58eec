package watch

import "sort"

// Snapshot holds the fingerprint last observed for each file in the watched
// directory. It is the engine's only state between cycles; it is rebuilt
// empty on every start, so existing files are reported as created on the
// first cycle.
type Snapshot struct {
	files map[string]Fingerprint
}

func NewSnapshot() *Snapshot {
	return &Snapshot{files: make(map[string]Fingerprint)}
}

func (s *Snapshot) Get(name string) (Fingerprint, bool) {
	fp, ok := s.files[name]
	return fp, ok
}

func (s *Snapshot) Put(name string, fp Fingerprint) {
	s.files[name] = fp
}

func (s *Snapshot) Remove(name string) {
	delete(s.files, name)
}

func (s *Snapshot) Len() int { return len(s.files) }

// Names returns the tracked file names in sorted order, so that deletions
// are reported deterministically.
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
