package types

import "strings"

// DuplicateStrategy decides what happens when a move's destination path
// already exists as a file.
type DuplicateStrategy string

const (
	// DuplicateSkip leaves both files untouched.
	DuplicateSkip DuplicateStrategy = "skip"
	// DuplicateRenameWithTimestamp moves the source under a timestamped name.
	DuplicateRenameWithTimestamp DuplicateStrategy = "rename_with_timestamp"
	// DuplicateOverwrite replaces the destination with the source.
	DuplicateOverwrite DuplicateStrategy = "overwrite"
	// DuplicateAsk would prompt; unattended runs treat it as skip.
	DuplicateAsk DuplicateStrategy = "ask"
)

// ParseDuplicateStrategy maps a raw configuration string onto a strategy.
// Matching is case-insensitive and ignores "_" and "-". The second return
// value is false for unknown values; callers degrade those to skip.
func ParseDuplicateStrategy(s string) (DuplicateStrategy, bool) {
	key := strings.ToLower(s)
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, "-", "")
	switch key {
	case "skip":
		return DuplicateSkip, true
	case "renamewithtimestamp":
		return DuplicateRenameWithTimestamp, true
	case "overwrite":
		return DuplicateOverwrite, true
	case "ask":
		return DuplicateAsk, true
	}
	return DuplicateSkip, false
}

// String returns the canonical configuration spelling.
func (d DuplicateStrategy) String() string {
	return string(d)
}
