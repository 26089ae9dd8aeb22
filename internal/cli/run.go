package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tascade/tascade/internal/config"
	"github.com/tascade/tascade/internal/display"
	"github.com/tascade/tascade/internal/sequencer"
	"github.com/tascade/tascade/internal/task"
	"github.com/tascade/tascade/internal/tui"
)

var (
	runCommand string
	runNoTUI   bool
)

func init() {
	runCmd.Flags().StringVar(&runCommand, "cmd", "", "Shell command executed per task ($TASCADE_TASK_ID is set)")
	runCmd.Flags().BoolVar(&runNoTUI, "no-tui", false, "Print plain progress lines instead of the live monitor")
}

var runCmd = &cobra.Command{
	Use:   "run <group-id>",
	Short: "Queue and execute a group's tasks in document order",
	Long: `Queue every eligible task in the named group, then execute them strictly
sequentially with the configured command. Each task's outcome is written to the
document before the next task starts. On the first failure the remaining queued
tasks are reverted to not started; tasks after the failure are still attempted
but their results stand on their own.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	groupID := args[0]

	path, err := documentPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	command := runCommand
	if command == "" {
		command = cfg.Run.Command
	}
	if command == "" {
		return fmt.Errorf("no run command given (use --cmd or set run.command in .tascade.yaml)")
	}

	lock := task.NewDocumentLock(path)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	// Speculatively queue the group, then pick up exactly the queued
	// leaves in document order.
	if err := task.QueueGroupTasks(path, groupID); err != nil {
		return err
	}
	taskIDs, err := queuedLeaves(path, groupID)
	if err != nil {
		return err
	}
	if len(taskIDs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No runnable tasks in group %s\n", groupID)
		return nil
	}

	executors := make(map[string]sequencer.Executor, len(taskIDs))
	for _, id := range taskIDs {
		executors[id] = shellExecutor(command, id)
	}

	seq := sequencer.New(path, executors)
	if cfg.Run.ProgressLog != "" {
		logger := sequencer.NewProgressLogger(cfg.Run.ProgressLog)
		logger.RunStarted(path, len(taskIDs))
		seq = seq.WithProgressLogger(logger)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var results []sequencer.Result
	if cfg.Run.UseTUI && !runNoTUI {
		results, err = tui.RunMonitor(ctx, seq, taskIDs)
	} else {
		seq = seq.WithEvents(&printEvents{out: cmd.OutOrStdout()})
		results, err = seq.Run(ctx, taskIDs)
	}
	if err != nil {
		return err
	}

	// A failure invalidates the group's remaining speculative queue.
	for _, r := range results {
		if r.Status != task.StatusFailed {
			continue
		}
		if cascadeErr := task.HandleTaskFailure(path, groupID, r.TaskID); cascadeErr != nil {
			return cascadeErr
		}
		return fmt.Errorf("task %s failed: %s", r.TaskID, r.Message)
	}
	return nil
}

// queuedLeaves returns the identifiers of the group's queued leaf tasks
// in document order.
func queuedLeaves(path, groupID string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task document: %w", err)
	}

	doc := task.Parse(string(data))
	task.Aggregate(doc)
	g := doc.FindGroup(groupID)
	if g == nil {
		return nil, fmt.Errorf("%w: %s", task.ErrGroupNotFound, groupID)
	}

	var ids []string
	for _, leaf := range g.Leaves() {
		if leaf.Status == task.StatusQueued && !leaf.Blocked {
			ids = append(ids, leaf.ID)
		}
	}
	return ids, nil
}

// shellExecutor runs the configured command with the task identifier in
// the environment.
func shellExecutor(command, taskID string) sequencer.Executor {
	return func(ctx context.Context) error {
		c := exec.CommandContext(ctx, "sh", "-c", command)
		c.Env = append(os.Environ(), "TASCADE_TASK_ID="+taskID)
		output, err := c.CombinedOutput()
		if err != nil {
			if len(output) > 0 {
				return fmt.Errorf("%s: %s", err, output)
			}
			return err
		}
		return nil
	}
}

// printEvents writes plain progress lines, used when the TUI is off.
type printEvents struct {
	out io.Writer
}

func (e *printEvents) OnTaskStart(taskNum, total int, taskID string) {
	fmt.Fprintf(e.out, "Task %d/%d: %s\n", taskNum, total, taskID)
}

func (e *printEvents) OnTaskComplete(taskID string) {
	fmt.Fprintf(e.out, "  %s %s\n", display.Glyph(task.StatusCompleted), taskID)
}

func (e *printEvents) OnTaskFailed(taskID string, err error) {
	fmt.Fprintf(e.out, "  %s %s: %v\n", display.Glyph(task.StatusFailed), taskID, err)
}

func (e *printEvents) OnRunComplete(succeeded, total int, duration time.Duration) {
	fmt.Fprintf(e.out, "Done: %d/%d tasks succeeded (%s)\n", succeeded, total, duration.Round(time.Second))
}
