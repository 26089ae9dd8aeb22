package task

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for targeted edits that reference missing entries.
var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrGroupNotFound = errors.New("group not found")
)

// ReplaceTaskStatus rewrites the marker character of the line whose
// identifier equals taskID and returns the complete updated document.
// Every byte outside the marker span is preserved. Returns
// ErrTaskNotFound (wrapped) when no line matches; the document is not
// modified in that case.
func ReplaceTaskStatus(document, taskID string, s Status) (string, error) {
	marker, ok := MarkerFor(s)
	if !ok {
		return "", fmt.Errorf("status %q has no marker character", s)
	}

	lines := strings.Split(document, "\n")
	for i, line := range lines {
		m := taskLinePattern.FindStringSubmatchIndex(line)
		if m == nil || line[m[8]:m[9]] != taskID {
			continue
		}
		lines[i] = line[:m[4]] + string(marker) + line[m[5]:]
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
}

// UpdateTaskStatus applies ReplaceTaskStatus to the document at path and
// writes the result back atomically. On any error the file keeps its
// prior content.
func UpdateTaskStatus(path, taskID string, s Status) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read task document: %w", err)
	}

	updated, err := ReplaceTaskStatus(string(data), taskID, s)
	if err != nil {
		return err
	}
	return writeDocument(path, updated)
}

// QueueGroupTasks marks every not_started leaf task under the named group
// as queued. Tasks in any other status are left untouched.
func QueueGroupTasks(path, groupID string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read task document: %w", err)
	}

	doc := Parse(string(data))
	g := doc.FindGroup(groupID)
	if g == nil {
		return fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}

	text := string(data)
	changed := false
	for _, leaf := range g.Leaves() {
		if leaf.Status != StatusNotStarted {
			continue
		}
		if text, err = ReplaceTaskStatus(text, leaf.ID, StatusQueued); err != nil {
			return err
		}
		changed = true
	}
	if !changed {
		return nil
	}
	return writeDocument(path, text)
}

// HandleTaskFailure records a failure in the named group: the group's own
// marker and the failed task's marker are set to failed, and every queued
// task under the group that appears after the failure point reverts to
// not_started. Tasks before the failure point keep their status. The
// document is only written once the full edit has been assembled, so a
// missing identifier leaves it untouched.
func HandleTaskFailure(path, groupID, failedTaskID string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read task document: %w", err)
	}

	doc := Parse(string(data))
	g := doc.FindGroup(groupID)
	if g == nil {
		return fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}

	ordered := g.allTasks()
	failedIdx := -1
	for i, t := range ordered {
		if t.ID == failedTaskID {
			failedIdx = i
			break
		}
	}
	if failedIdx == -1 {
		return fmt.Errorf("%w: %s in group %s", ErrTaskNotFound, failedTaskID, groupID)
	}

	text := string(data)
	if text, err = ReplaceTaskStatus(text, groupID, StatusFailed); err != nil {
		return err
	}
	if text, err = ReplaceTaskStatus(text, failedTaskID, StatusFailed); err != nil {
		return err
	}
	for _, t := range ordered[failedIdx+1:] {
		if t.Status != StatusQueued {
			continue
		}
		if text, err = ReplaceTaskStatus(text, t.ID, StatusNotStarted); err != nil {
			return err
		}
	}
	return writeDocument(path, text)
}

// allTasks returns every task under the group (depth-2 entries and their
// depth-3 children) in document order.
func (g *Group) allTasks() []*ParsedTask {
	var all []*ParsedTask
	for ti := range g.Tasks {
		all = append(all, &g.Tasks[ti])
		if sg := g.subgroup(g.Tasks[ti].ID); sg != nil {
			for ci := range sg.Tasks {
				all = append(all, &sg.Tasks[ci])
			}
		}
	}
	return all
}

// writeDocument replaces the document atomically via a temp file and
// rename, so a crash mid-write cannot leave a truncated document.
func writeDocument(path, content string) error {
	tmpPath := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())

	if err := os.WriteFile(tmpPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
