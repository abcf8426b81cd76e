package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ordnung/internal/organize"
	"ordnung/internal/watch"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [directory...]",
		Short: "Watch the configured directories and organize on changes",
		Long: `Run continuously: watch the root directories and re-apply the
organization rules to a root once its contents have settled for the
configured debounce window. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, err := resolveRoots(args)
			if err != nil {
				return err
			}

			engine := organize.NewWithConfig(cfg)
			debounce := time.Duration(cfg.Watch.DebounceSeconds) * time.Second

			watcher, err := watch.New(engine, roots, debounce)
			if err != nil {
				return err
			}
			watcher.Start()
			defer watcher.Stop()

			fmt.Printf("Watching %d directories, press Ctrl-C to stop\n", len(roots))
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan
			return nil
		},
	}
}
