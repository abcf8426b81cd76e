package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewRulesCmd creates the rules command
func NewRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the configured file and folder rules in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(cfg.FileRules) == 0 {
				fmt.Println("No file rules configured.")
			} else {
				fmt.Println("File rules (first match wins):")
				for i, rule := range cfg.FileRules {
					var filters []string
					if len(rule.Extensions) > 0 {
						filters = append(filters, "ext: "+strings.Join(rule.Extensions, ","))
					}
					if len(rule.NamePatterns) > 0 {
						filters = append(filters, "name: "+strings.Join(rule.NamePatterns, "|"))
					}
					if rule.OlderThanDays > 0 {
						filters = append(filters, fmt.Sprintf("older than %dd", rule.OlderThanDays))
					}
					if rule.NewerThanDays > 0 {
						filters = append(filters, fmt.Sprintf("newer than %dd", rule.NewerThanDays))
					}
					if len(filters) == 0 {
						filters = append(filters, "no filters (inert)")
					}

					target := rule.TargetFolder
					if rule.SubFolder != "" {
						target += "/" + rule.SubFolder
					}
					if rule.OrganizeByDate {
						target += "/<YYYY>/<YYYY-MM>"
					}
					fmt.Printf("  %2d. [%s] -> %s\n", i+1, strings.Join(filters, ", "), target)
					if rule.DuplicateHandling != nil {
						fmt.Printf("      duplicates: %s\n", *rule.DuplicateHandling)
					}
				}
			}
			fmt.Printf("Unmatched files go to: %s (duplicates: %s)\n\n", cfg.DefaultTargetFolder, cfg.GlobalDuplicateHandling)

			if len(cfg.FolderRules) == 0 {
				fmt.Println("No folder rules configured.")
				return nil
			}
			fmt.Println("Folder rules (first action wins):")
			for i, rule := range cfg.FolderRules {
				if rule.RenamePattern != "" {
					fmt.Printf("  %2d. rename %q -> %q", i+1, rule.RenamePattern, rule.NewNameTemplate)
					if rule.RenameOlderThanDays > 0 {
						fmt.Printf(" (older than %dd)", rule.RenameOlderThanDays)
					}
					fmt.Println()
				}
				if rule.MovePattern != "" {
					fmt.Printf("  %2d. move   %q -> %s/\n", i+1, rule.MovePattern, rule.TargetFolder)
				}
			}
			return nil
		},
	}
}
