// Package rules evaluates the ordered file and folder rules against
// candidate entries. Rule order is the entire conflict-resolution policy:
// a plain linear scan, first match wins.
package rules

import (
	"path/filepath"
	"slices"
	"strings"
	"time"

	"ordnung/internal/config"
	"ordnung/internal/log"
	"ordnung/internal/match"
	"ordnung/pkg/types"
)

// Evaluator tests candidates against the configured rules and derives the
// effective destination and duplicate strategy.
type Evaluator struct {
	cfg     *config.Config
	matcher *match.Matcher
	now     func() time.Time
}

func NewEvaluator(cfg *config.Config, matcher *match.Matcher) *Evaluator {
	return &Evaluator{
		cfg:     cfg,
		matcher: matcher,
		now:     time.Now,
	}
}

// SetClock overrides the time source, used by tests for age filters.
func (e *Evaluator) SetClock(now func() time.Time) {
	e.now = now
}

// FileDecision is the outcome of evaluating a file candidate: the matched
// rule (nil for default routing), the destination folder, and the
// effective duplicate strategy.
type FileDecision struct {
	Rule        *types.FileRule
	RuleIndex   int // -1 when no rule matched
	Destination string
	Strategy    types.DuplicateStrategy
}

// EvaluateFile scans the file rules in order and returns the decision for
// the first match. A file matching no rule is routed to the default target
// folder directly under the root, using the global duplicate strategy.
func (e *Evaluator) EvaluateFile(root string, c types.Candidate) FileDecision {
	for i := range e.cfg.FileRules {
		rule := &e.cfg.FileRules[i]
		if !rule.HasFilter() {
			// Inert rule, skipped entirely.
			continue
		}
		if !e.fileRuleMatches(rule, c) {
			continue
		}

		strategy := e.cfg.GlobalDuplicateHandling
		if rule.DuplicateHandling != nil {
			strategy = *rule.DuplicateHandling
		}
		return FileDecision{
			Rule:        rule,
			RuleIndex:   i,
			Destination: e.fileDestination(root, rule, c),
			Strategy:    strategy,
		}
	}

	return FileDecision{
		RuleIndex:   -1,
		Destination: filepath.Join(root, e.cfg.DefaultTargetFolder),
		Strategy:    e.cfg.GlobalDuplicateHandling,
	}
}

// fileRuleMatches applies the rule's filters conjunctively, short-circuiting
// on the first failure.
func (e *Evaluator) fileRuleMatches(rule *types.FileRule, c types.Candidate) bool {
	if len(rule.Extensions) > 0 && !slices.Contains(rule.Extensions, c.Extension) {
		return false
	}

	if len(rule.NamePatterns) > 0 && !e.anyPatternMatches(c.Name, rule.NamePatterns) {
		return false
	}

	if rule.OlderThanDays > 0 && !e.olderThan(c, rule.OlderThanDays) {
		return false
	}
	if rule.NewerThanDays > 0 && !e.newerThan(c, rule.NewerThanDays) {
		return false
	}

	if !rule.Executable() {
		log.Debug("Rule action %q is not executable, skipping for %s", rule.Action, c.Path)
		return false
	}
	return true
}

func (e *Evaluator) anyPatternMatches(name string, patterns []string) bool {
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if e.matcher.Matches(name, p) {
			return true
		}
	}
	return false
}

// olderThan reports whether the candidate's effective date lies strictly
// more than the given number of days in the past. An entry aged exactly
// `days` days does not qualify.
func (e *Evaluator) olderThan(c types.Candidate, days int) bool {
	eff, ok := c.EffectiveDate()
	if !ok {
		log.Warn("No usable timestamp for %s, age filter fails", c.Path)
		return false
	}
	return eff.Before(e.now().AddDate(0, 0, -days))
}

// newerThan reports whether the candidate's effective date is at most the
// given number of days in the past (inclusive).
func (e *Evaluator) newerThan(c types.Candidate, days int) bool {
	eff, ok := c.EffectiveDate()
	if !ok {
		log.Warn("No usable timestamp for %s, age filter fails", c.Path)
		return false
	}
	return !eff.Before(e.now().AddDate(0, 0, -days))
}

// fileDestination builds the destination folder for a matched rule:
// root, then target folder, then sub folder, then the YYYY/YYYY-MM date
// segments when organize_by_date is set.
func (e *Evaluator) fileDestination(root string, rule *types.FileRule, c types.Candidate) string {
	dest := root
	if t := strings.TrimSpace(rule.TargetFolder); t != "" {
		dest = filepath.Join(dest, t)
	}
	if s := strings.TrimSpace(rule.SubFolder); s != "" {
		dest = filepath.Join(dest, s)
	}
	if rule.OrganizeByDate {
		if eff, ok := c.EffectiveDate(); ok {
			dest = filepath.Join(dest, eff.Format("2006"), eff.Format("2006-01"))
		} else {
			log.Warn("No usable timestamp for %s, organize_by_date skipped", c.Path)
		}
	}
	return dest
}

// FolderActionKind distinguishes the two folder sub-rule actions.
type FolderActionKind int

const (
	FolderRename FolderActionKind = iota
	FolderMove
)

// FolderDecision is the outcome of evaluating a folder candidate.
type FolderDecision struct {
	Kind      FolderActionKind
	RuleIndex int
	// NewName is the computed folder name for a rename, in the same parent.
	NewName string
	// Destination is the full target path for a move, resolved relative to
	// the organize root, with the folder's own name appended.
	Destination string
}

// EvaluateFolder scans the folder rules in order. Within a rule the rename
// sub-rule is tested first; if it fires, the move sub-rule of the same rule
// is skipped. The first rule that fires any action wins and evaluation
// stops for this folder.
func (e *Evaluator) EvaluateFolder(root string, c types.Candidate) (FolderDecision, bool) {
	for i := range e.cfg.FolderRules {
		rule := &e.cfg.FolderRules[i]

		if newName, ok := e.renameFires(rule, c); ok {
			return FolderDecision{
				Kind:      FolderRename,
				RuleIndex: i,
				NewName:   newName,
			}, true
		}

		if e.moveFires(rule, c) {
			return FolderDecision{
				Kind:        FolderMove,
				RuleIndex:   i,
				Destination: filepath.Join(root, strings.TrimSpace(rule.TargetFolder), c.Name),
			}, true
		}
	}
	return FolderDecision{}, false
}

func (e *Evaluator) renameFires(rule *types.FolderRule, c types.Candidate) (string, bool) {
	if strings.TrimSpace(rule.RenamePattern) == "" {
		return "", false
	}
	if !e.matcher.Matches(c.Name, rule.RenamePattern) {
		return "", false
	}
	if rule.RenameOlderThanDays > 0 && !e.olderThan(c, rule.RenameOlderThanDays) {
		return "", false
	}

	ts, hasDate := c.EffectiveDate()
	newName := ExpandNameTemplate(rule.NewNameTemplate, c.Name, ts, hasDate)
	if newName == c.Name || strings.TrimSpace(newName) == "" {
		// Renaming to the same (or an empty) name is not a match.
		return "", false
	}
	return newName, true
}

func (e *Evaluator) moveFires(rule *types.FolderRule, c types.Candidate) bool {
	if strings.TrimSpace(rule.MovePattern) == "" {
		return false
	}
	if !e.matcher.Matches(c.Name, rule.MovePattern) {
		return false
	}
	if strings.TrimSpace(rule.TargetFolder) == "" {
		return false
	}
	if rule.MoveOlderThanDays > 0 && !e.olderThan(c, rule.MoveOlderThanDays) {
		return false
	}
	return true
}
