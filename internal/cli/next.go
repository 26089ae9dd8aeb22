package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tascade/tascade/internal/task"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the next executable task",
	Long:  `Scan the document in order and print the first unblocked not-started task, falling back to the first unblocked queued task.`,
	Args:  cobra.NoArgs,
	RunE:  runNext,
}

func runNext(cmd *cobra.Command, args []string) error {
	path, err := documentPath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read task document: %w", err)
	}

	doc := task.Parse(string(data))
	task.Aggregate(doc)

	next := task.FindNextExecutableTask(doc)
	if next == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No executable tasks.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", next.ID, next.Label)
	return nil
}
