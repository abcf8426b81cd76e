// Package match implements glob-style path matching and exclusion testing.
// All comparisons are case-insensitive and operate on paths whose
// separators have been normalized to forward slashes.
package match

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"ordnung/internal/log"
	"ordnung/pkg/types"
)

// Matcher compiles glob patterns once and reuses them across the run.
// The engine is sequential, so the cache needs no locking.
type Matcher struct {
	cache map[string]glob.Glob
}

func New() *Matcher {
	return &Matcher{
		cache: make(map[string]glob.Glob),
	}
}

// Normalize lower-cases a path and converts its separators to forward
// slashes so patterns behave the same across platforms.
func Normalize(path string) string {
	return strings.ToLower(filepath.ToSlash(path))
}

// Matches reports whether path matches the glob pattern. `*` matches any
// run of characters including separators, `?` a single character. An
// uncompilable pattern never matches; the error is logged once.
func (m *Matcher) Matches(path, pattern string) bool {
	if strings.TrimSpace(path) == "" || strings.TrimSpace(pattern) == "" {
		return false
	}
	g, ok := m.compiled(pattern)
	if !ok {
		return false
	}
	return g.Match(Normalize(path))
}

// IsExcluded reports whether any non-blank pattern in the set matches the
// path. An empty path or empty pattern list excludes nothing. Matching
// errors are treated as "not excluded" so a bad pattern can never silently
// halt organization; they are surfaced through the log instead.
func (m *Matcher) IsExcluded(path string, patterns []string) bool {
	if strings.TrimSpace(path) == "" || len(patterns) == 0 {
		return false
	}
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		if m.Matches(path, pattern) {
			return true
		}
	}
	return false
}

// FileExcluded tests a path against the set's file patterns.
func (m *Matcher) FileExcluded(path string, set types.ExclusionSet) bool {
	return m.IsExcluded(path, set.FilePatterns)
}

// FolderExcluded tests a path against the set's folder patterns.
func (m *Matcher) FolderExcluded(path string, set types.ExclusionSet) bool {
	return m.IsExcluded(path, set.FolderPatterns)
}

func (m *Matcher) compiled(pattern string) (glob.Glob, bool) {
	key := Normalize(pattern)
	if g, ok := m.cache[key]; ok {
		return g, g != nil
	}
	g, err := glob.Compile(key)
	if err != nil {
		log.Warn("Invalid glob pattern %q: %v", pattern, err)
		m.cache[key] = nil
		return nil, false
	}
	m.cache[key] = g
	return g, true
}
