package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ordnung/internal/config"
	"ordnung/internal/log"
)

var (
	cfgFile string
	logFile string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ordnung",
		Short: "Organize files and folders with declarative, ordered rules",
		Long: `Ordnung organizes files and folders under one or more root
directories according to ordered rules from a configuration file:
file rules route files into target folders, folder rules rename or
archive whole folders, and an optional cleanup pass prunes empty
directories. Run with --preview to see what would happen first.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetDebug(debug)

			path := cfgFile
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				path = filepath.Join(home, ".config", "ordnung", "config.yaml")
			}

			// An unreadable or malformed configuration is fatal before any
			// filesystem action.
			var err error
			cfg, err = config.LoadConfigFile(path)
			if err != nil {
				return err
			}

			if logFile == "" {
				logFile = cfg.Settings.LogFile
			}
			if logFile != "" {
				if err := log.SetFile(logFile); err != nil {
					return err
				}
			}
			if cfg.Settings.DebugLog {
				log.SetDebug(true)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ordnung/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "append-only log file (overrides the configured one)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug log output")

	rootCmd.AddCommand(NewOrganizeCmd())
	rootCmd.AddCommand(NewRulesCmd())
	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewHistoryCmd())

	return rootCmd
}
