// Package cli implements the tascade command layer. Each command reads
// the task document, invokes one engine operation, and reports the
// result; the document itself stays the single source of truth.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/tascade/tascade/internal/config"
	"github.com/tascade/tascade/internal/version"
)

var docFile string

var rootCmd = &cobra.Command{
	Use:     "tascade",
	Short:   "Track and run hierarchical checkbox task lists",
	Long:    `Tascade tracks the execution of checkbox task documents (group, subgroup, leaf). It derives aggregate status, finds the next executable task, and performs byte-preserving status edits.`,
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&docFile, "file", "f", "", "Path to the task document (overrides config)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(failCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
}

// documentPath resolves the task document path from the --file flag or
// the loaded config.
func documentPath() (string, error) {
	if docFile != "" {
		return docFile, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Document, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
