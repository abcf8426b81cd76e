// Package organize contains the organization engine: per-root traversal,
// rule-driven file moves, folder rename/move actions, and the optional
// empty-folder cleanup pass. Execution is strictly sequential; every
// filesystem operation completes before the next decision is made.
package organize

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"ordnung/internal/config"
	"ordnung/internal/errors"
	"ordnung/internal/log"
	"ordnung/internal/match"
	"ordnung/internal/rules"
	"ordnung/pkg/types"
)

// Engine handles file and folder organization operations
type Engine struct {
	cfg      *config.Config
	matcher  *match.Matcher
	eval     *rules.Evaluator
	preview  bool
	roots    []string
	now      func() time.Time
	observer func(types.ActionResult)
}

// NewWithConfig creates a new organization engine for the given
// configuration. The configuration is treated as read-only.
func NewWithConfig(cfg *config.Config) *Engine {
	m := match.New()
	return &Engine{
		cfg:     cfg,
		matcher: m,
		eval:    rules.NewEvaluator(cfg, m),
		now:     time.Now,
	}
}

// SetPreview sets whether operations should be performed or only logged.
func (e *Engine) SetPreview(preview bool) {
	e.preview = preview
}

// IsPreview returns whether the engine is in preview mode.
func (e *Engine) IsPreview() bool {
	return e.preview
}

// SetObserver registers a callback invoked for every action result, used
// by the CLI for progress display.
func (e *Engine) SetObserver(fn func(types.ActionResult)) {
	e.observer = fn
}

// Evaluator exposes the rule evaluator, mainly so tests can pin its clock.
func (e *Engine) Evaluator() *rules.Evaluator {
	return e.eval
}

// SetClock overrides the engine's time source (duplicate timestamps).
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// SetRoots declares the run's top-level organize directories. Folder
// rules never rename or move these, so callers that drive OrganizeRoot
// directly (the watcher) must declare the full root set up front.
func (e *Engine) SetRoots(roots []string) {
	e.roots = nil
	for _, root := range roots {
		e.roots = append(e.roots, filepath.Clean(root))
	}
}

// Run organizes every root directory in order and, when deleteEmpty is
// set, prunes empty directories afterwards. A failure inside one root
// aborts the whole run; already-completed actions are not rolled back.
func (e *Engine) Run(roots []string, deleteEmpty bool) ([]types.ActionResult, error) {
	e.SetRoots(roots)

	var results []types.ActionResult
	for _, root := range e.roots {
		res, err := e.OrganizeRoot(root)
		results = append(results, res...)
		if err != nil {
			return results, errors.Wrapf(err, "organizing %s failed", root)
		}
	}

	if deleteEmpty {
		results = append(results, e.RemoveEmptyFolders()...)
	}
	return results, nil
}

// OrganizeRoot runs the per-root state machine: validate the root, process
// its immediate files, then apply folder rules to all descendant folders.
// A root that does not exist or is excluded is skipped without side
// effects; errors reading the root abort the run.
func (e *Engine) OrganizeRoot(root string) ([]types.ActionResult, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		log.Warn("Root directory %s does not exist, skipping", root)
		return nil, nil
	}
	if e.matcher.FolderExcluded(root, e.cfg.GlobalExclusions) {
		log.Info("Root directory %s is excluded, skipping", root)
		return nil, nil
	}

	log.Info("Organizing %s", root)

	results, err := e.processFiles(root)
	if err != nil {
		return results, err
	}

	folderResults := e.processFolders(root)
	results = append(results, folderResults...)

	log.Info("Finished %s", root)
	return results, nil
}

// processFiles enumerates the immediate (non-recursive) file children of
// the root and moves each according to the first matching rule, or into
// the default target folder.
func (e *Engine) processFiles(root string) ([]types.ActionResult, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.NewFileError("error reading root directory", root, errors.FileOperationFailed, err)
	}

	var results []types.ActionResult
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(root, entry.Name())
		if e.matcher.FileExcluded(path, e.cfg.GlobalExclusions) {
			log.Debug("File %s is excluded, skipping", path)
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Error("Failed to stat %s: %v", path, err)
			continue
		}
		candidate := types.NewCandidate(path, info)

		decision := e.eval.EvaluateFile(root, candidate)
		if decision.Rule != nil {
			log.Debug("File %s matched rule %d", path, decision.RuleIndex)
		} else {
			log.Debug("File %s matched no rule, using default target", path)
		}

		dest := filepath.Join(decision.Destination, candidate.Name)
		e.record(&results, e.moveFile(path, dest, decision.Strategy))
	}
	return results, nil
}

// processFolders enumerates all descendant directories recursively and
// applies the folder rules. The folder list is snapshotted before any
// action, so a folder renamed mid-pass is not re-evaluated under its new
// name within the same run.
func (e *Engine) processFolders(root string) []types.ActionResult {
	folders := e.collectFolders(root)

	var results []types.ActionResult
	for _, candidate := range folders {
		if e.isRunRoot(candidate.Path) {
			// Top-level organize directories are never renamed or moved.
			continue
		}

		decision, ok := e.eval.EvaluateFolder(root, candidate)
		if !ok {
			continue
		}

		switch decision.Kind {
		case rules.FolderRename:
			newPath := filepath.Join(filepath.Dir(candidate.Path), decision.NewName)
			e.record(&results, e.renameFolder(candidate.Path, newPath))
		case rules.FolderMove:
			e.record(&results, e.moveFolder(candidate.Path, decision.Destination))
		}
	}
	return results
}

// collectFolders walks the tree below root and snapshots every
// non-excluded directory. Excluded directories are not descended into.
func (e *Engine) collectFolders(root string) []types.Candidate {
	var folders []types.Candidate
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Error("Error walking %s: %v", path, err)
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if e.matcher.FolderExcluded(path, e.cfg.GlobalExclusions) {
			log.Debug("Folder %s is excluded, skipping subtree", path)
			return filepath.SkipDir
		}
		info, err := d.Info()
		if err != nil {
			log.Error("Failed to stat %s: %v", path, err)
			return nil
		}
		folders = append(folders, types.NewCandidate(path, info))
		return nil
	})
	if err != nil {
		log.Error("Error walking %s: %v", root, err)
	}
	return folders
}

// RemoveEmptyFolders recursively deletes directories below the run's roots
// that contain no entries, depth-first so emptied parents are removed too.
// The roots themselves are never deleted.
func (e *Engine) RemoveEmptyFolders() []types.ActionResult {
	var results []types.ActionResult
	for _, root := range e.roots {
		e.pruneEmpty(root, true, &results)
	}
	return results
}

func (e *Engine) pruneEmpty(dir string, isRoot bool, results *[]types.ActionResult) {
	if e.matcher.FolderExcluded(dir, e.cfg.GlobalExclusions) {
		log.Debug("Folder %s is excluded, not pruning", dir)
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Error("Failed to read %s: %v", dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			e.pruneEmpty(filepath.Join(dir, entry.Name()), false, results)
		}
	}
	if isRoot {
		return
	}
	if res, acted := e.removeEmptyFolder(dir); acted {
		e.record(results, res)
	}
}

// isRunRoot reports whether path is one of the run's top-level organize
// directories. Comparison is case-insensitive.
func (e *Engine) isRunRoot(path string) bool {
	clean := filepath.Clean(path)
	for _, root := range e.roots {
		if strings.EqualFold(clean, root) {
			return true
		}
	}
	return false
}

func (e *Engine) record(results *[]types.ActionResult, res types.ActionResult) {
	*results = append(*results, res)
	if e.observer != nil {
		e.observer(res)
	}
}
