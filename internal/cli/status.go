package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tascade/tascade/internal/display"
	"github.com/tascade/tascade/internal/task"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the task tree with derived statuses",
	Long:  `Parse the task document and print every group, subgroup, and task with derived aggregate status, completion counts, and blocking flags.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	if len(doc.Groups) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No tasks found in %s\n", path)
		return nil
	}

	if locked, err := task.NewDocumentLock(path).IsLocked(); err == nil && locked {
		fmt.Fprintln(cmd.OutOrStdout(), "A run is currently in progress for this document.")
	}

	fmt.Fprint(cmd.OutOrStdout(), display.RenderDocument(doc))
	return nil
}
