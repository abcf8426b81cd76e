// Package config loads and validates the organization configuration.
// The configuration is read once at startup and stays immutable for the
// rest of the run.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ordnung/internal/log"
	"ordnung/pkg/types"
)

// DefaultTargetFolder receives files that match none of the file rules.
const DefaultTargetFolder = "Sonstiges"

// Config is the root configuration object. It aggregates the candidate
// root directories, the global exclusions, the global duplicate strategy,
// and the ordered file and folder rules.
type Config struct {
	Directories             []string                `yaml:"directories"`
	GlobalExclusions        types.ExclusionSet      `yaml:"global_exclusions"`
	GlobalDuplicateHandling types.DuplicateStrategy `yaml:"global_duplicate_handling"`
	FileRules               []types.FileRule        `yaml:"file_rules"`
	DefaultTargetFolder     string                  `yaml:"default_target_folder"`
	FolderRules             []types.FolderRule      `yaml:"folder_rules"`

	Settings struct {
		LogFile   string `yaml:"log_file"`   // Append-only log file, empty disables file logging
		HistoryDB string `yaml:"history_db"` // bbolt journal path, empty disables the journal
		DebugLog  bool   `yaml:"debug_log"`  // Enable debug log lines
	} `yaml:"settings"`

	Watch struct {
		DebounceSeconds int `yaml:"debounce_seconds"` // Quiet period before a changed root is re-organized
	} `yaml:"watch"`
}

// LoadConfigFile loads configuration from a specific file path. A missing
// or unparseable file is an error; organization must never start from a
// half-read configuration.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// defaultConfig returns the configuration defaults applied underneath the
// loaded document.
func defaultConfig() *Config {
	cfg := &Config{
		GlobalDuplicateHandling: types.DuplicateSkip,
		DefaultTargetFolder:     DefaultTargetFolder,
	}
	cfg.Watch.DebounceSeconds = 5
	return cfg
}

// normalize case-normalizes strategy strings and extension lists once at
// load time so the engine never re-checks raw configuration text.
func (c *Config) normalize() {
	c.GlobalDuplicateHandling = normalizeStrategy(string(c.GlobalDuplicateHandling), "global_duplicate_handling")

	for i := range c.FileRules {
		rule := &c.FileRules[i]
		rule.Extensions = normalizeExtensions(rule.Extensions)
		if rule.DuplicateHandling != nil {
			s := normalizeStrategy(string(*rule.DuplicateHandling), fmt.Sprintf("file_rules[%d].duplicate_handling", i))
			rule.DuplicateHandling = &s
		}
	}

	if strings.TrimSpace(c.DefaultTargetFolder) == "" {
		c.DefaultTargetFolder = DefaultTargetFolder
	}
}

func normalizeStrategy(raw, field string) types.DuplicateStrategy {
	if strings.TrimSpace(raw) == "" {
		return types.DuplicateSkip
	}
	strategy, ok := types.ParseDuplicateStrategy(raw)
	if !ok {
		log.Warn("Unknown duplicate handling value %q in %s, using %s", raw, field, types.DuplicateSkip)
	}
	return strategy
}

// normalizeExtensions lower-cases extensions and guarantees the leading
// dot. Blank entries are dropped.
func normalizeExtensions(exts []string) []string {
	var out []string
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	// Inert rules are legal; they are skipped at evaluation time. Flag them
	// here so a dead rule does not go unnoticed.
	for i, rule := range c.FileRules {
		if !rule.HasFilter() {
			log.Info("File rule %d declares no filters and will never match", i)
		}
		if !rule.Executable() {
			log.Info("File rule %d has unsupported action %q and will never match", i, rule.Action)
		}
	}
	for i, rule := range c.FolderRules {
		if strings.TrimSpace(rule.MovePattern) != "" && strings.TrimSpace(rule.TargetFolder) == "" {
			log.Warn("Folder rule %d: move_pattern without target_folder, move will never fire", i)
		}
	}

	if c.Watch.DebounceSeconds < 1 {
		return fmt.Errorf("watch debounce must be >= 1 second")
	}

	return nil
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	strategy := types.DuplicateOverwrite
	cfg.FileRules = []types.FileRule{
		{Extensions: []string{".txt"}, TargetFolder: "Documents"},
		{Extensions: []string{".jpg"}, TargetFolder: "Images", DuplicateHandling: &strategy},
	}
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
