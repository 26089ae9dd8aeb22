package sequencer

import (
	"encoding/json"
	"os"
	"time"
)

// Event type constants for progress logging.
const (
	EventRunStarted    = "run_started"
	EventRunCompleted  = "run_completed"
	EventTaskStarted   = "task_started"
	EventTaskCompleted = "task_completed"
	EventTaskFailed    = "task_failed"
)

// ProgressEvent represents a single progress log entry.
type ProgressEvent struct {
	Timestamp time.Time              `json:"timestamp"`
	Event     string                 `json:"event"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// ProgressLogger appends run events to a JSON Lines file.
type ProgressLogger struct {
	path string
}

// NewProgressLogger creates a progress logger writing to the given path.
func NewProgressLogger(path string) *ProgressLogger {
	return &ProgressLogger{path: path}
}

// Log appends a progress event to the log file.
func (p *ProgressLogger) Log(event string, data map[string]interface{}) error {
	entry := ProgressEvent{
		Timestamp: time.Now(),
		Event:     event,
		Data:      data,
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	jsonBytes = append(jsonBytes, '\n')

	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(jsonBytes)
	return err
}

// RunStarted logs a run_started event.
func (p *ProgressLogger) RunStarted(docPath string, totalTasks int) error {
	return p.Log(EventRunStarted, map[string]interface{}{
		"document":    docPath,
		"total_tasks": totalTasks,
	})
}

// TaskStarted logs a task_started event.
func (p *ProgressLogger) TaskStarted(taskID string) error {
	return p.Log(EventTaskStarted, map[string]interface{}{
		"task_id": taskID,
	})
}

// TaskCompleted logs a task_completed event.
func (p *ProgressLogger) TaskCompleted(taskID string) error {
	return p.Log(EventTaskCompleted, map[string]interface{}{
		"task_id": taskID,
	})
}

// TaskFailed logs a task_failed event with the failure diagnostic.
func (p *ProgressLogger) TaskFailed(taskID, message string) error {
	return p.Log(EventTaskFailed, map[string]interface{}{
		"task_id": taskID,
		"message": message,
	})
}

// RunCompleted logs a run_completed event with summary statistics.
func (p *ProgressLogger) RunCompleted(totalTasks, succeededTasks int, duration time.Duration) error {
	return p.Log(EventRunCompleted, map[string]interface{}{
		"total_tasks":     totalTasks,
		"succeeded_tasks": succeededTasks,
		"duration_ms":     duration.Milliseconds(),
	})
}
