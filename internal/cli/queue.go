package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tascade/tascade/internal/task"
)

var queueCmd = &cobra.Command{
	Use:   "queue <group-id>",
	Short: "Queue all eligible tasks in a group",
	Long:  `Mark every not-started leaf task under the named group as queued. Tasks in any other status are left untouched.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQueue,
}

func runQueue(cmd *cobra.Command, args []string) error {
	path, err := documentPath()
	if err != nil {
		return err
	}

	if err := task.QueueGroupTasks(path, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Queued eligible tasks in group %s\n", args[0])
	return nil
}
