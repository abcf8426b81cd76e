package organize

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"ordnung/internal/errors"
	"ordnung/internal/log"
	"ordnung/pkg/types"
)

// Every operation in this file re-checks exclusion for each path it
// touches. A rule's computed destination is derived data and may land
// inside an excluded tree, so exclusion is validated at the point of
// action, not only at selection time.

// driveRootPattern matches a bare drive root like "C:\" or "d:/".
var driveRootPattern = regexp.MustCompile(`^[a-zA-Z]:[\\/]?$`)

// createFolder ensures a destination folder exists. In preview mode it
// logs the intent and reports success optimistically so downstream logic
// can proceed through a dry run.
func (e *Engine) createFolder(path string) error {
	if e.matcher.FolderExcluded(path, e.cfg.GlobalExclusions) {
		log.Info("Skipping folder creation, %s is excluded", path)
		return errors.NewFileError("folder is excluded", path, errors.InvalidPath, nil)
	}
	if e.preview {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Info("Would create folder %s", path)
		}
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.NewFileError("failed to create folder", path, errors.FileOperationFailed, err)
	}
	return nil
}

// moveFile moves one file to its destination, resolving duplicates with
// the given strategy when the destination already exists.
func (e *Engine) moveFile(src, dst string, strategy types.DuplicateStrategy) types.ActionResult {
	res := types.ActionResult{Action: types.ActionMoveFile, SourcePath: src, DestinationPath: dst}

	if e.matcher.FileExcluded(src, e.cfg.GlobalExclusions) ||
		e.matcher.FileExcluded(dst, e.cfg.GlobalExclusions) ||
		e.matcher.FolderExcluded(filepath.Dir(dst), e.cfg.GlobalExclusions) {
		log.Info("Skipping move %s -> %s, an involved path is excluded", src, dst)
		res.Reason = "excluded"
		return res
	}

	if strings.EqualFold(filepath.Clean(src), filepath.Clean(dst)) {
		log.Debug("Source and destination are the same, skipping: %s", src)
		res.Reason = "source equals destination"
		return res
	}

	// Check the source before touching the destination, so a file that
	// vanished mid-pass does not leave a freshly created folder behind.
	if _, err := os.Stat(src); err != nil {
		log.Warn("Source %s no longer exists, skipping move", src)
		res.Reason = "source missing"
		return res
	}

	if err := e.createFolder(filepath.Dir(dst)); err != nil {
		log.Error("Cannot prepare destination for %s: %v", src, err)
		res.Error = err
		return res
	}

	if e.preview {
		log.Info("Would move %s -> %s", src, dst)
		res.Reason = "preview"
		return res
	}

	if _, err := os.Stat(dst); err == nil {
		final, reason := e.resolveDuplicate(strategy, src, dst)
		if final == "" {
			res.Reason = reason
			return res
		}
		dst = final
		res.DestinationPath = final
	} else if !os.IsNotExist(err) {
		log.Error("Error checking destination %s: %v", dst, err)
		res.Error = errors.NewFileError("error checking destination", dst, errors.FileOperationFailed, err)
		return res
	}

	if err := os.Rename(src, dst); err != nil {
		log.Error("Failed to move %s -> %s: %v", src, dst, err)
		res.Error = errors.NewFileError("failed to move file", src, errors.FileOperationFailed, err)
		return res
	}

	log.Info("Moved %s -> %s", src, dst)
	res.Performed = true
	return res
}

// renameFolder renames a folder in place within its parent.
func (e *Engine) renameFolder(oldPath, newPath string) types.ActionResult {
	res := types.ActionResult{Action: types.ActionRenameFolder, SourcePath: oldPath, DestinationPath: newPath}

	if e.matcher.FolderExcluded(oldPath, e.cfg.GlobalExclusions) ||
		e.matcher.FolderExcluded(newPath, e.cfg.GlobalExclusions) {
		log.Info("Skipping rename %s -> %s, an involved path is excluded", oldPath, newPath)
		res.Reason = "excluded"
		return res
	}

	if _, err := os.Stat(newPath); err == nil {
		log.Warn("Rename target %s already exists, skipping %s", newPath, oldPath)
		res.Reason = "target exists"
		return res
	}

	if e.preview {
		log.Info("Would rename folder %s -> %s", oldPath, newPath)
		res.Reason = "preview"
		return res
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		log.Error("Failed to rename folder %s -> %s: %v", oldPath, newPath, err)
		res.Error = errors.NewFileError("failed to rename folder", oldPath, errors.FileOperationFailed, err)
		return res
	}

	log.Info("Renamed folder %s -> %s", oldPath, newPath)
	res.Performed = true
	return res
}

// moveFolder moves a folder to its destination path, which already
// includes the folder's own name.
func (e *Engine) moveFolder(src, dst string) types.ActionResult {
	res := types.ActionResult{Action: types.ActionMoveFolder, SourcePath: src, DestinationPath: dst}

	if e.matcher.FolderExcluded(src, e.cfg.GlobalExclusions) ||
		e.matcher.FolderExcluded(dst, e.cfg.GlobalExclusions) ||
		e.matcher.FolderExcluded(filepath.Dir(dst), e.cfg.GlobalExclusions) {
		log.Info("Skipping folder move %s -> %s, an involved path is excluded", src, dst)
		res.Reason = "excluded"
		return res
	}

	if strings.EqualFold(filepath.Clean(src), filepath.Clean(dst)) {
		log.Warn("Folder move source and destination are identical, skipping: %s", src)
		res.Reason = "source equals destination"
		return res
	}
	if _, err := os.Stat(dst); err == nil {
		log.Warn("Folder move destination %s already exists, skipping %s", dst, src)
		res.Reason = "destination exists"
		return res
	}

	// The folder list is snapshotted, so an earlier action may have moved
	// this source already. Skip before creating any destination folder.
	if _, err := os.Stat(src); err != nil {
		log.Warn("Source folder %s no longer exists, skipping move", src)
		res.Reason = "source missing"
		return res
	}

	if err := e.createFolder(filepath.Dir(dst)); err != nil {
		log.Error("Cannot prepare destination for folder %s: %v", src, err)
		res.Error = err
		return res
	}

	if e.preview {
		log.Info("Would move folder %s -> %s", src, dst)
		res.Reason = "preview"
		return res
	}
	if err := os.Rename(src, dst); err != nil {
		log.Error("Failed to move folder %s -> %s: %v", src, dst, err)
		res.Error = errors.NewFileError("failed to move folder", src, errors.FileOperationFailed, err)
		return res
	}

	log.Info("Moved folder %s -> %s", src, dst)
	res.Performed = true
	return res
}

// removeEmptyFolder deletes a directory if it contains no entries. The
// second return value reports whether a decision worth recording was made.
// Deleting a filesystem root is refused unconditionally.
func (e *Engine) removeEmptyFolder(path string) (types.ActionResult, bool) {
	res := types.ActionResult{Action: types.ActionRemoveFolder, SourcePath: path}

	if isFilesystemRoot(path) {
		log.Warn("Refusing to remove filesystem root %s", path)
		res.Reason = "filesystem root"
		return res, true
	}
	if e.matcher.FolderExcluded(path, e.cfg.GlobalExclusions) {
		log.Debug("Folder %s is excluded, not removing", path)
		res.Reason = "excluded"
		return res, true
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		log.Error("Failed to read %s: %v", path, err)
		res.Error = errors.NewFileError("failed to read folder", path, errors.FileOperationFailed, err)
		return res, true
	}
	if len(entries) > 0 {
		return res, false
	}

	if e.preview {
		log.Info("Would remove empty folder %s", path)
		res.Reason = "preview"
		return res, true
	}

	if err := os.Remove(path); err != nil {
		log.Error("Failed to remove empty folder %s: %v", path, err)
		res.Error = errors.NewFileError("failed to remove folder", path, errors.FileOperationFailed, err)
		return res, true
	}

	log.Info("Removed empty folder %s", path)
	res.Performed = true
	return res, true
}

// isFilesystemRoot reports whether path is a filesystem root ("/" or a
// bare drive letter). Such paths are never deleted, regardless of preview
// or exclusion state.
func isFilesystemRoot(path string) bool {
	clean := filepath.Clean(path)
	if clean == "/" || clean == string(filepath.Separator) {
		return true
	}
	return driveRootPattern.MatchString(clean)
}
