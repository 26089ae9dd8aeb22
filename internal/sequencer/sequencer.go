// Package sequencer runs caller-supplied executors per task identifier in
// order, persisting each outcome to the task document before the next
// identifier begins.
package sequencer

import (
	"context"
	"errors"
	"time"

	"github.com/tascade/tascade/internal/task"
)

// NoExecutorMessage is the diagnostic recorded for a task identifier that
// has no executor supplied.
const NoExecutorMessage = "No executor found"

// Executor performs the work for one task identifier.
type Executor func(ctx context.Context) error

// Events receives callbacks during a run.
// Implement this interface in the TUI to receive updates.
type Events interface {
	// OnTaskStart is called before a task's executor is invoked.
	OnTaskStart(taskNum, total int, taskID string)

	// OnTaskComplete is called after a task's completion is persisted.
	OnTaskComplete(taskID string)

	// OnTaskFailed is called after a task's failure is persisted.
	OnTaskFailed(taskID string, err error)

	// OnRunComplete is called once the whole batch has been attempted.
	OnRunComplete(succeeded, total int, duration time.Duration)
}

// Result records the outcome for one task identifier.
type Result struct {
	TaskID string

	// Status is StatusCompleted or StatusFailed.
	Status task.Status

	// Message is the failure diagnostic; empty on success.
	Message string
}

// Sequencer executes a batch of task identifiers strictly sequentially.
// One task's failure does not prevent subsequent identifiers from being
// attempted.
type Sequencer struct {
	docPath   string
	executors map[string]Executor
	events    Events
	logger    *ProgressLogger
}

// New creates a Sequencer for the document at docPath with the given
// executor map.
func New(docPath string, executors map[string]Executor) *Sequencer {
	return &Sequencer{
		docPath:   docPath,
		executors: executors,
	}
}

// WithEvents sets an event sink for run progress.
func (s *Sequencer) WithEvents(ev Events) *Sequencer {
	s.events = ev
	return s
}

// WithProgressLogger sets a progress log for run events.
func (s *Sequencer) WithProgressLogger(l *ProgressLogger) *Sequencer {
	s.logger = l
	return s
}

// Run processes the identifiers in the given order, blocking on each
// executor before persisting its result and moving on. Every identifier
// yields exactly one Result; a missing executor counts as a failure with
// NoExecutorMessage. Run only returns an error when persisting a result
// fails (a storage error), in which case the results so far accompany it.
func (s *Sequencer) Run(ctx context.Context, taskIDs []string) ([]Result, error) {
	start := time.Now()
	results := make([]Result, 0, len(taskIDs))
	succeeded := 0

	for i, id := range taskIDs {
		if s.events != nil {
			s.events.OnTaskStart(i+1, len(taskIDs), id)
		}
		if s.logger != nil {
			s.logger.TaskStarted(id)
		}

		runErr := s.execute(ctx, id)
		if runErr != nil {
			if err := task.UpdateTaskStatus(s.docPath, id, task.StatusFailed); err != nil {
				return results, err
			}
			results = append(results, Result{TaskID: id, Status: task.StatusFailed, Message: runErr.Error()})
			if s.events != nil {
				s.events.OnTaskFailed(id, runErr)
			}
			if s.logger != nil {
				s.logger.TaskFailed(id, runErr.Error())
			}
			continue
		}

		if err := task.UpdateTaskStatus(s.docPath, id, task.StatusCompleted); err != nil {
			return results, err
		}
		succeeded++
		results = append(results, Result{TaskID: id, Status: task.StatusCompleted})
		if s.events != nil {
			s.events.OnTaskComplete(id)
		}
		if s.logger != nil {
			s.logger.TaskCompleted(id)
		}
	}

	duration := time.Since(start)
	if s.events != nil {
		s.events.OnRunComplete(succeeded, len(taskIDs), duration)
	}
	if s.logger != nil {
		s.logger.RunCompleted(len(taskIDs), succeeded, duration)
	}
	return results, nil
}

// execute invokes the executor for one identifier, or fails immediately
// when none was supplied.
func (s *Sequencer) execute(ctx context.Context, taskID string) error {
	exec, ok := s.executors[taskID]
	if !ok || exec == nil {
		return errors.New(NoExecutorMessage)
	}
	return exec(ctx)
}
