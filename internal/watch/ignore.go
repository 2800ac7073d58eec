package watch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// IgnoreFileName is the optional per-directory ignore file. Its patterns are
// merged with the configured ones, and the file itself is always ignored so
// that editing it does not show up as change noise.
const IgnoreFileName = ".fwatchignore"

// Matcher decides whether a file name is excluded from watching. A name is
// excluded when it contains any pattern as a substring; matching is
// case-sensitive and an empty pattern set excludes nothing.
type Matcher struct {
	patterns []string
}

// NewMatcher builds a Matcher from raw pattern lines. Surrounding whitespace
// is trimmed, and blank lines and '#' comments are dropped.
func NewMatcher(raw []string) *Matcher {
	var patterns []string
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		patterns = append(patterns, p)
	}
	return &Matcher{patterns: patterns}
}

// Match reports whether name should be ignored.
func (m *Matcher) Match(name string) bool {
	for _, p := range m.patterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// Patterns returns the effective pattern list, mostly for logging.
func (m *Matcher) Patterns() []string { return m.patterns }

// ParseIgnoreFile reads raw pattern lines from path. A missing file is not
// an error; it returns no patterns.
func ParseIgnoreFile(fsys afero.Fs, path string) ([]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file %s: %w", path, err)
	}
	return lines, nil
}
