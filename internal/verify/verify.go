// Package verify re-reads task documents and asserts expected state. It
// deliberately performs its own line scan instead of reusing the parsed
// tree, so the document's textual grammar stays the compatibility
// contract between writers and checkers.
package verify

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/tascade/tascade/internal/task"
)

// statusLinePattern recognizes a checkbox task line just enough to pull
// out its marker and identifier.
var statusLinePattern = regexp.MustCompile(`^ *- \[(.)\]\*? (\d+(?:\.\d+)*) `)

// TaskStatus reads the document at path and checks that the named task's
// parsed status equals want. A marker outside the five valid characters
// is reported as a mismatch, not a parse failure.
func TaskStatus(path, taskID string, want task.Status) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read task document: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		m := statusLinePattern.FindStringSubmatch(line)
		if m == nil || m[2] != taskID {
			continue
		}
		got, ok := task.StatusForMarker(m[1][0])
		if !ok {
			return fmt.Errorf("task %s has unparseable status marker %q", taskID, m[1])
		}
		if got != want {
			return fmt.Errorf("task %s status: got %q, want %q", taskID, got, want)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", task.ErrTaskNotFound, taskID)
}

// FileExists checks that a regular file exists at path.
func FileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("expected a file, found a directory: %s", path)
	}
	return nil
}

// FileContains checks that the file at path contains the given substring.
func FileContains(path, substr string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !strings.Contains(string(data), substr) {
		return fmt.Errorf("%s does not contain %q", path, substr)
	}
	return nil
}
