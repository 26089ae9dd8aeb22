package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tascade/tascade/internal/task"
)

var failCmd = &cobra.Command{
	Use:   "fail <group-id> <task-id>",
	Short: "Record a task failure and cascade it through its group",
	Long:  `Mark the group and the named task as failed, and revert any queued tasks after the failure point back to not started. Work before the failure point is untouched.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runFail,
}

func runFail(cmd *cobra.Command, args []string) error {
	path, err := documentPath()
	if err != nil {
		return err
	}

	if err := task.HandleTaskFailure(path, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded failure of %s in group %s\n", args[1], args[0])
	return nil
}
