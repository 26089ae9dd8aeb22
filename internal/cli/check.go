package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tascade/tascade/internal/verify"
)

var checkCmd = &cobra.Command{
	Use:   "check <task-id> <status>",
	Short: "Verify that a task has the expected status",
	Long:  `Re-read the document with an independent line scan and check that the named task's status equals the expected value. Exits non-zero on mismatch.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path, err := documentPath()
	if err != nil {
		return err
	}

	want, err := parseStatusArg(args[1])
	if err != nil {
		return err
	}

	if err := verify.TaskStatus(path, args[0], want); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task %s is %s\n", args[0], want)
	return nil
}
