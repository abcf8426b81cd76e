package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"ordnung/internal/history"
	"ordnung/internal/log"
	"ordnung/internal/match"
	"ordnung/internal/organize"
	"ordnung/pkg/types"
)

// NewOrganizeCmd creates the organize command
func NewOrganizeCmd() *cobra.Command {
	var (
		preview     bool
		deleteEmpty bool
	)

	cmd := &cobra.Command{
		Use:   "organize [directory...]",
		Short: "Organize files and folders in the configured directories",
		Long: `Apply the configured file and folder rules to one or more root
directories. Directories given as arguments take precedence over the
configuration's directory list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, err := resolveRoots(args)
			if err != nil {
				return err
			}

			engine := organize.NewWithConfig(cfg)
			engine.SetPreview(preview)

			var bar *pb.ProgressBar
			if !preview {
				if total := countTopLevelFiles(roots); total > 0 {
					bar = pb.StartNew(total)
					engine.SetObserver(func(res types.ActionResult) {
						if res.Action == types.ActionMoveFile {
							bar.Increment()
						}
					})
				}
			}

			results, runErr := engine.Run(roots, deleteEmpty)
			if bar != nil {
				bar.Finish()
			}

			if !preview && cfg.Settings.HistoryDB != "" {
				journalRun(roots, results)
			}

			printSummary(results, preview)
			return runErr
		},
	}

	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "log intended actions without touching the filesystem")
	cmd.Flags().BoolVar(&deleteEmpty, "delete-empty", false, "remove empty directories after organizing")

	return cmd
}

// resolveRoots applies the directory selection precedence: explicit
// arguments, then the configuration's directories, then discovery. Each
// candidate is filtered through existence and exclusion checks; ending up
// with zero directories is fatal.
func resolveRoots(args []string) ([]string, error) {
	candidates := args
	if len(candidates) == 0 {
		candidates = cfg.Directories
	}
	if len(candidates) == 0 {
		candidates = discoverRoots()
	}

	matcher := match.New()
	var roots []string
	for _, dir := range candidates {
		abs, err := filepath.Abs(dir)
		if err != nil {
			log.Warn("Cannot resolve %s: %v", dir, err)
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			log.Warn("Directory %s does not exist, skipping", abs)
			continue
		}
		if matcher.FolderExcluded(abs, cfg.GlobalExclusions) {
			log.Info("Directory %s is excluded, skipping", abs)
			continue
		}
		roots = append(roots, abs)
	}

	if len(roots) == 0 {
		return nil, fmt.Errorf("no eligible directories to organize")
	}
	return roots, nil
}

// discoverRoots returns the fallback directories organized when neither
// arguments nor configuration name any: the user's home directory.
func discoverRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("Cannot determine home directory: %v", err)
		return nil
	}
	log.Info("No directories configured, defaulting to %s", home)
	return []string{home}
}

// countTopLevelFiles sizes the progress bar from the immediate file
// children of each root.
func countTopLevelFiles(roots []string) int {
	total := 0
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				total++
			}
		}
	}
	return total
}

func journalRun(roots []string, results []types.ActionResult) {
	store, err := history.Open(cfg.Settings.HistoryDB)
	if err != nil {
		log.Error("Cannot open history journal: %v", err)
		return
	}
	defer store.Close()

	rec := history.NewRunRecord(roots)
	for _, res := range results {
		rec.Add(res)
	}
	if err := store.Append(rec); err != nil {
		log.Error("Cannot journal run: %v", err)
	}
}

func printSummary(results []types.ActionResult, preview bool) {
	performed, skipped, failed := 0, 0, 0
	for _, res := range results {
		switch {
		case res.Error != nil:
			failed++
		case res.Performed:
			performed++
		default:
			skipped++
		}
	}
	if preview {
		planned := 0
		for _, res := range results {
			if res.Reason == "preview" {
				planned++
			}
		}
		fmt.Printf("Preview: %d planned actions, %d skipped\n", planned, len(results)-planned)
		return
	}
	fmt.Printf("Done: %d actions performed, %d skipped, %d failed\n", performed, skipped, failed)
}
