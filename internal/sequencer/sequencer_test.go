package sequencer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tascade/tascade/internal/task"
)

const testDoc = "- [ ] 1 Group\n  - [ ] 1.1 Sub\n    - [~] 1.1.1 A\n    - [~] 1.1.2 B\n    - [~] 1.1.3 C\n"

func writeTestDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.md")
	if err := os.WriteFile(path, []byte(testDoc), 0644); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
	return path
}

func parseDoc(t *testing.T, path string) *task.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read document: %v", err)
	}
	return task.Parse(string(data))
}

// recordingEvents captures event callbacks for assertions.
type recordingEvents struct {
	started   []string
	completed []string
	failed    []string
	runDone   bool
	succeeded int
	total     int
}

func (r *recordingEvents) OnTaskStart(taskNum, total int, taskID string) {
	r.started = append(r.started, taskID)
}
func (r *recordingEvents) OnTaskComplete(taskID string) {
	r.completed = append(r.completed, taskID)
}
func (r *recordingEvents) OnTaskFailed(taskID string, err error) {
	r.failed = append(r.failed, taskID)
}
func (r *recordingEvents) OnRunComplete(succeeded, total int, duration time.Duration) {
	r.runDone = true
	r.succeeded = succeeded
	r.total = total
}

func TestRunAllSucceed(t *testing.T) {
	path := writeTestDoc(t)

	var order []string
	exec := func(id string) Executor {
		return func(ctx context.Context) error {
			order = append(order, id)
			return nil
		}
	}
	seq := New(path, map[string]Executor{
		"1.1.1": exec("1.1.1"),
		"1.1.2": exec("1.1.2"),
		"1.1.3": exec("1.1.3"),
	})

	results, err := seq.Run(context.Background(), []string{"1.1.1", "1.1.2", "1.1.3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results: got %d, want 3", len(results))
	}
	for i, id := range []string{"1.1.1", "1.1.2", "1.1.3"} {
		if order[i] != id {
			t.Errorf("execution order[%d]: got %q, want %q", i, order[i], id)
		}
		if results[i].Status != task.StatusCompleted {
			t.Errorf("result %s: got %q, want completed", id, results[i].Status)
		}
	}

	doc := parseDoc(t, path)
	for _, id := range []string{"1.1.1", "1.1.2", "1.1.3"} {
		if got := doc.FindTask(id).Status; got != task.StatusCompleted {
			t.Errorf("persisted status %s: got %q, want completed", id, got)
		}
	}
}

func TestRunFailureDoesNotShortCircuit(t *testing.T) {
	path := writeTestDoc(t)

	seq := New(path, map[string]Executor{
		"1.1.1": func(ctx context.Context) error { return errors.New("boom") },
		"1.1.2": func(ctx context.Context) error { return nil },
	})

	results, err := seq.Run(context.Background(), []string{"1.1.1", "1.1.2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2", len(results))
	}
	if results[0].Status != task.StatusFailed || results[0].Message != "boom" {
		t.Errorf("result 0: got %q %q", results[0].Status, results[0].Message)
	}
	if results[1].Status != task.StatusCompleted {
		t.Errorf("result 1: got %q, want completed", results[1].Status)
	}

	doc := parseDoc(t, path)
	if got := doc.FindTask("1.1.1").Status; got != task.StatusFailed {
		t.Errorf("persisted 1.1.1: got %q, want failed", got)
	}
	if got := doc.FindTask("1.1.2").Status; got != task.StatusCompleted {
		t.Errorf("persisted 1.1.2: got %q, want completed", got)
	}
}

func TestRunMissingExecutor(t *testing.T) {
	path := writeTestDoc(t)

	seq := New(path, map[string]Executor{})
	results, err := seq.Run(context.Background(), []string{"1.1.1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results: got %d, want 1", len(results))
	}
	if results[0].Status != task.StatusFailed {
		t.Errorf("status: got %q, want failed", results[0].Status)
	}
	if results[0].Message != NoExecutorMessage {
		t.Errorf("message: got %q, want %q", results[0].Message, NoExecutorMessage)
	}

	if got := parseDoc(t, path).FindTask("1.1.1").Status; got != task.StatusFailed {
		t.Errorf("persisted status: got %q, want failed", got)
	}
}

func TestRunEvents(t *testing.T) {
	path := writeTestDoc(t)

	ev := &recordingEvents{}
	seq := New(path, map[string]Executor{
		"1.1.1": func(ctx context.Context) error { return nil },
		"1.1.2": func(ctx context.Context) error { return errors.New("nope") },
	}).WithEvents(ev)

	if _, err := seq.Run(context.Background(), []string{"1.1.1", "1.1.2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ev.started) != 2 {
		t.Errorf("started events: got %d, want 2", len(ev.started))
	}
	if len(ev.completed) != 1 || ev.completed[0] != "1.1.1" {
		t.Errorf("completed events: got %v", ev.completed)
	}
	if len(ev.failed) != 1 || ev.failed[0] != "1.1.2" {
		t.Errorf("failed events: got %v", ev.failed)
	}
	if !ev.runDone || ev.succeeded != 1 || ev.total != 2 {
		t.Errorf("run complete: done=%v succeeded=%d total=%d", ev.runDone, ev.succeeded, ev.total)
	}
}

func TestRunStorageErrorAborts(t *testing.T) {
	// Point the sequencer at a document that doesn't exist: the first
	// persist fails and the run aborts with the results so far.
	path := filepath.Join(t.TempDir(), "missing.md")

	seq := New(path, map[string]Executor{
		"1.1.1": func(ctx context.Context) error { return nil },
	})
	results, err := seq.Run(context.Background(), []string{"1.1.1", "1.1.2"})
	if err == nil {
		t.Fatal("expected storage error, got nil")
	}
	if len(results) != 0 {
		t.Errorf("results: got %d, want 0", len(results))
	}
}

func TestRunUnknownTaskIDIsStorageError(t *testing.T) {
	path := writeTestDoc(t)

	seq := New(path, map[string]Executor{
		"9.9.9": func(ctx context.Context) error { return nil },
	})
	_, err := seq.Run(context.Background(), []string{"9.9.9"})
	if !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("got %v, want ErrTaskNotFound", err)
	}
}
