package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tascade/tascade/internal/task"
)

var setCmd = &cobra.Command{
	Use:   "set <task-id> <status>",
	Short: "Set a single task's status",
	Long:  `Rewrite one task's status marker in place. Valid statuses: not_started, in_progress, completed, failed, queued.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	path, err := documentPath()
	if err != nil {
		return err
	}

	status, err := parseStatusArg(args[1])
	if err != nil {
		return err
	}

	if err := task.UpdateTaskStatus(path, args[0], status); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task %s set to %s\n", args[0], status)
	return nil
}

// parseStatusArg maps a user-supplied status name to a Status. Partial is
// rejected because it only exists as a derived aggregate.
func parseStatusArg(arg string) (task.Status, error) {
	switch s := task.Status(arg); s {
	case task.StatusNotStarted, task.StatusInProgress, task.StatusCompleted,
		task.StatusFailed, task.StatusQueued:
		return s, nil
	}
	return "", fmt.Errorf("invalid status %q (valid: not_started, in_progress, completed, failed, queued)", arg)
}
