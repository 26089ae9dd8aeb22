// Package tui provides the live execution monitor shown while a group of
// tasks runs.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tascade/tascade/internal/sequencer"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAFAF")).MarginBottom(1)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AF87"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AF5F5F"))
)

// Per-row execution states.
const (
	rowPending   = "pending"
	rowRunning   = "running"
	rowCompleted = "completed"
	rowFailed    = "failed"
)

// Messages sent by the sequencer events adapter.

// TaskStartedMsg is sent when a task begins execution.
type TaskStartedMsg struct {
	TaskNum int
	Total   int
	TaskID  string
}

// TaskCompletedMsg is sent when a task completes successfully.
type TaskCompletedMsg struct {
	TaskID string
}

// TaskFailedMsg is sent when a task fails.
type TaskFailedMsg struct {
	TaskID string
	Err    error
}

// RunCompleteMsg signals that the whole batch has been attempted.
type RunCompleteMsg struct {
	Succeeded int
	Total     int
	Duration  time.Duration
}

// finishedMsg signals that the sequencer goroutine has returned.
type finishedMsg struct{}

type taskRow struct {
	id     string
	state  string
	errMsg string
}

// Model is the bubbletea model for the execution monitor.
type Model struct {
	spinner    spinner.Model
	rows       []taskRow
	current    int // 1-indexed current task number, 0 before the first
	total      int
	succeeded  int
	duration   time.Duration
	done       bool
	cancelling bool
	cancel     context.CancelFunc
}

// NewModel creates a monitor model for the given batch.
func NewModel(taskIDs []string, cancel context.CancelFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	rows := make([]taskRow, len(taskIDs))
	for i, id := range taskIDs {
		rows[i] = taskRow{id: id, state: rowPending}
	}
	return Model{
		spinner: sp,
		rows:    rows,
		total:   len(taskIDs),
		cancel:  cancel,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.done {
				return m, tea.Quit
			}
			if !m.cancelling {
				m.cancelling = true
				if m.cancel != nil {
					m.cancel()
				}
			}
			return m, nil
		}

	case TaskStartedMsg:
		m.current = msg.TaskNum
		m.setRowState(msg.TaskID, rowRunning, "")
		return m, nil

	case TaskCompletedMsg:
		m.setRowState(msg.TaskID, rowCompleted, "")
		return m, nil

	case TaskFailedMsg:
		m.setRowState(msg.TaskID, rowFailed, msg.Err.Error())
		return m, nil

	case RunCompleteMsg:
		m.done = true
		m.succeeded = msg.Succeeded
		m.duration = msg.Duration
		return m, nil

	case finishedMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Running tasks"))
	b.WriteString("\n")

	for _, row := range m.rows {
		switch row.state {
		case rowRunning:
			fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), row.id)
		case rowCompleted:
			fmt.Fprintf(&b, "%s %s\n", successStyle.Render("✓"), row.id)
		case rowFailed:
			fmt.Fprintf(&b, "%s %s %s\n", errorStyle.Render("✗"), row.id, subtleStyle.Render(row.errMsg))
		default:
			fmt.Fprintf(&b, "%s %s\n", subtleStyle.Render("○"), row.id)
		}
	}

	b.WriteString("\n")
	switch {
	case m.done:
		fmt.Fprintf(&b, "%s\n", subtleStyle.Render(fmt.Sprintf(
			"Done: %d/%d succeeded (%s) — press q to exit", m.succeeded, m.total, m.duration.Round(time.Second))))
	case m.cancelling:
		b.WriteString(subtleStyle.Render("Cancelling...") + "\n")
	default:
		fmt.Fprintf(&b, "%s\n", subtleStyle.Render(fmt.Sprintf(
			"Task %d of %d — ctrl+c to cancel", m.current, m.total)))
	}
	return b.String()
}

func (m *Model) setRowState(taskID, state, errMsg string) {
	for i := range m.rows {
		if m.rows[i].id == taskID {
			m.rows[i].state = state
			m.rows[i].errMsg = errMsg
			return
		}
	}
}

// programEvents adapts sequencer events to bubbletea messages.
type programEvents struct {
	p *tea.Program
}

func (e programEvents) OnTaskStart(taskNum, total int, taskID string) {
	e.p.Send(TaskStartedMsg{TaskNum: taskNum, Total: total, TaskID: taskID})
}

func (e programEvents) OnTaskComplete(taskID string) {
	e.p.Send(TaskCompletedMsg{TaskID: taskID})
}

func (e programEvents) OnTaskFailed(taskID string, err error) {
	e.p.Send(TaskFailedMsg{TaskID: taskID, Err: err})
}

func (e programEvents) OnRunComplete(succeeded, total int, duration time.Duration) {
	e.p.Send(RunCompleteMsg{Succeeded: succeeded, Total: total, Duration: duration})
}

// RunMonitor executes the sequencer batch while displaying the live
// monitor. Ctrl+C cancels the batch's context; the monitor stays up
// until the sequencer goroutine has returned, so no document write is
// ever abandoned mid-flight.
func RunMonitor(ctx context.Context, seq *sequencer.Sequencer, taskIDs []string) ([]sequencer.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(taskIDs, cancel))

	var results []sequencer.Result
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		results, runErr = seq.WithEvents(programEvents{p: p}).Run(runCtx, taskIDs)
		p.Send(finishedMsg{})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return results, err
	}
	<-done
	return results, runErr
}
