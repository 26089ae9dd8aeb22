package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTaskLifecycle(t *testing.T) {
	m := NewModel([]string{"1.1.1", "1.1.2"}, nil)

	next, _ := m.Update(TaskStartedMsg{TaskNum: 1, Total: 2, TaskID: "1.1.1"})
	m = next.(Model)
	if m.rows[0].state != rowRunning {
		t.Errorf("row 0 state: got %q, want running", m.rows[0].state)
	}

	next, _ = m.Update(TaskCompletedMsg{TaskID: "1.1.1"})
	m = next.(Model)
	if m.rows[0].state != rowCompleted {
		t.Errorf("row 0 state: got %q, want completed", m.rows[0].state)
	}

	next, _ = m.Update(TaskFailedMsg{TaskID: "1.1.2", Err: errors.New("boom")})
	m = next.(Model)
	if m.rows[1].state != rowFailed {
		t.Errorf("row 1 state: got %q, want failed", m.rows[1].state)
	}
	if m.rows[1].errMsg != "boom" {
		t.Errorf("row 1 error: got %q, want boom", m.rows[1].errMsg)
	}
}

func TestModelRunComplete(t *testing.T) {
	m := NewModel([]string{"1.1.1"}, nil)

	next, _ := m.Update(RunCompleteMsg{Succeeded: 1, Total: 1, Duration: 3 * time.Second})
	m = next.(Model)
	if !m.done {
		t.Error("model should be done after RunCompleteMsg")
	}

	view := m.View()
	if !strings.Contains(view, "1/1 succeeded") {
		t.Errorf("view missing summary:\n%s", view)
	}
}

func TestModelViewShowsTasks(t *testing.T) {
	m := NewModel([]string{"2.1.1", "2.1.2"}, nil)

	view := m.View()
	for _, id := range []string{"2.1.1", "2.1.2"} {
		if !strings.Contains(view, id) {
			t.Errorf("view missing task %s:\n%s", id, view)
		}
	}
}

func TestModelCancelInvokesCancelFunc(t *testing.T) {
	cancelled := false
	m := NewModel([]string{"1.1.1"}, func() { cancelled = true })

	next, _ := m.Update(keyMsg("ctrl+c"))
	m = next.(Model)
	if !m.cancelling {
		t.Error("model should be cancelling")
	}
	if !cancelled {
		t.Error("cancel func should have been called")
	}

	view := m.View()
	if !strings.Contains(view, "Cancelling") {
		t.Errorf("view missing cancel notice:\n%s", view)
	}
}
