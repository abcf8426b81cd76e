package types

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Candidate is a point-in-time snapshot of one filesystem entry. It is
// captured once before rule evaluation so that a decision is never split
// across two stat calls.
type Candidate struct {
	Path      string
	Name      string
	Extension string // lower case, with leading dot; empty for folders
	Modified  time.Time
	Created   time.Time // zero when the platform cannot provide it
	IsDir     bool
}

// NewCandidate builds a snapshot from a path and its stat result.
func NewCandidate(path string, info os.FileInfo) Candidate {
	c := Candidate{
		Path:     path,
		Name:     info.Name(),
		Modified: info.ModTime(),
		Created:  creationTime(info),
		IsDir:    info.IsDir(),
	}
	if !c.IsDir {
		c.Extension = strings.ToLower(filepath.Ext(c.Name))
	}
	return c
}

// Snapshot stats a path and builds a Candidate from the result.
func Snapshot(path string) (Candidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Candidate{}, err
	}
	return NewCandidate(path, info), nil
}

// EffectiveDate returns the timestamp used for all age-based decisions:
// the last-write time, falling back to the creation time. The second
// return value is false when neither is available.
func (c Candidate) EffectiveDate() (time.Time, bool) {
	if !c.Modified.IsZero() {
		return c.Modified, true
	}
	if !c.Created.IsZero() {
		return c.Created, true
	}
	return time.Time{}, false
}
