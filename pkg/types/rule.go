package types

import "strings"

// FileRule describes one ordered file-organization rule from the
// configuration. All filter fields are optional; a rule that declares no
// filter at all is inert and never matches.
type FileRule struct {
	Extensions        []string           `yaml:"extensions,omitempty"`         // Extensions to match, e.g. [".pdf", "jpg"] (normalized at load).
	NamePatterns      []string           `yaml:"name_patterns,omitempty"`      // Glob patterns matched against the file name, OR-combined.
	OlderThanDays     int                `yaml:"older_than_days,omitempty"`    // Minimum age in days; <= 0 disables the filter.
	NewerThanDays     int                `yaml:"newer_than_days,omitempty"`    // Maximum age in days; <= 0 disables the filter.
	Action            string             `yaml:"action,omitempty"`             // Only "move" is executable; defaults to "move" when empty.
	TargetFolder      string             `yaml:"target_folder,omitempty"`      // First path segment under the root directory.
	SubFolder         string             `yaml:"sub_folder,omitempty"`         // Second path segment, appended after TargetFolder.
	OrganizeByDate    bool               `yaml:"organize_by_date,omitempty"`   // Append YYYY/YYYY-MM segments from the file's effective date.
	DuplicateHandling *DuplicateStrategy `yaml:"duplicate_handling,omitempty"` // Per-rule override of the global strategy.
}

// HasFilter reports whether the rule declares at least one usable filter.
// Rules without any filter are skipped during evaluation.
func (r *FileRule) HasFilter() bool {
	for _, ext := range r.Extensions {
		if strings.TrimSpace(ext) != "" {
			return true
		}
	}
	for _, p := range r.NamePatterns {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return r.OlderThanDays > 0 || r.NewerThanDays > 0
}

// Executable reports whether the rule's action is one the engine can
// perform. Only "move" is supported; anything else disqualifies the rule.
func (r *FileRule) Executable() bool {
	return r.Action == "" || strings.EqualFold(r.Action, "move")
}

// FolderRule describes one ordered folder rule. It carries two independent
// sub-rules: a rename sub-rule and a move sub-rule. At most one of them
// fires per folder; rename is tested first.
type FolderRule struct {
	RenamePattern       string `yaml:"rename_pattern,omitempty"`         // Glob matched against the folder name.
	RenameOlderThanDays int    `yaml:"rename_older_than_days,omitempty"` // Minimum folder age for the rename to fire; <= 0 disables.
	NewNameTemplate     string `yaml:"new_name_template,omitempty"`      // Template with {OriginalName}, {JJJJ}, {MM}, {TT}, {JJJJ-MM}.

	MovePattern       string `yaml:"move_pattern,omitempty"`         // Glob matched against the folder name.
	MoveOlderThanDays int    `yaml:"move_older_than_days,omitempty"` // Minimum folder age for the move to fire; <= 0 disables.
	TargetFolder      string `yaml:"target_folder,omitempty"`        // Destination resolved relative to the organize root.
}

// ExclusionSet holds the glob patterns that shield paths from any
// organization action. Blank patterns are ignored; an empty set excludes
// nothing.
type ExclusionSet struct {
	FilePatterns   []string `yaml:"file_patterns,omitempty"`
	FolderPatterns []string `yaml:"folder_patterns,omitempty"`
}
