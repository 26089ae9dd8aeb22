// Package display renders the aggregated task tree for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tascade/tascade/internal/task"
)

var (
	// Colors
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors
	activeColor    = lipgloss.Color("#5FAFAF") // Teal for in-progress work
	queuedColor    = lipgloss.Color("#AFAF87") // Muted amber for queued

	groupStyle     = lipgloss.NewStyle().Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(secondaryColor)
	completedStyle = lipgloss.NewStyle().Foreground(successColor)
	failedStyle    = lipgloss.NewStyle().Foreground(errorColor)
	activeStyle    = lipgloss.NewStyle().Foreground(activeColor)
	queuedStyle    = lipgloss.NewStyle().Foreground(queuedColor)
)

// Glyph returns the display glyph for a status.
func Glyph(s task.Status) string {
	switch s {
	case task.StatusCompleted:
		return "✓"
	case task.StatusFailed:
		return "✗"
	case task.StatusInProgress:
		return "●"
	case task.StatusQueued:
		return "~"
	case task.StatusPartial:
		return "◐"
	case task.StatusNotStarted:
		return "○"
	}
	return "?"
}

// styleFor returns the lipgloss style for a status.
func styleFor(s task.Status) lipgloss.Style {
	switch s {
	case task.StatusCompleted:
		return completedStyle
	case task.StatusFailed:
		return failedStyle
	case task.StatusInProgress:
		return activeStyle
	case task.StatusQueued:
		return queuedStyle
	}
	return subtleStyle
}

// RenderStatus returns a styled glyph-and-name rendering of a status.
func RenderStatus(s task.Status) string {
	if s == "" {
		return failedStyle.Render("? unknown")
	}
	return styleFor(s).Render(Glyph(s) + " " + string(s))
}

// RenderDocument renders the aggregated tree, one line per group,
// subgroup, and leaf, with completion counts and blocking annotations.
// The document must be aggregated first.
func RenderDocument(d *task.Document) string {
	var b strings.Builder

	for gi := range d.Groups {
		g := &d.Groups[gi]
		fmt.Fprintf(&b, "%s %s\n",
			groupStyle.Render(fmt.Sprintf("%s %s", g.ID, g.Label)),
			subtleStyle.Render(fmt.Sprintf("[%d/%d] %s", g.CompletedTasks, g.TotalTasks, g.Status)))

		for ti := range g.Tasks {
			pt := &g.Tasks[ti]
			if sg := findSubgroup(g, pt.ID); sg != nil {
				fmt.Fprintf(&b, "  %s %s\n",
					fmt.Sprintf("%s %s", sg.ID, sg.Label),
					subtleStyle.Render(fmt.Sprintf("[%d/%d] %s", sg.CompletedTasks, sg.TotalTasks, sg.Status)))
				for ci := range sg.Tasks {
					b.WriteString(renderLeaf(&sg.Tasks[ci], "    "))
				}
				continue
			}
			b.WriteString(renderLeaf(pt, "  "))
		}
	}
	return b.String()
}

func findSubgroup(g *task.Group, id string) *task.Subgroup {
	for i := range g.Subgroups {
		if g.Subgroups[i].ID == id {
			return &g.Subgroups[i]
		}
	}
	return nil
}

func renderLeaf(pt *task.ParsedTask, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(styleFor(pt.Status).Render(Glyph(pt.Status)))
	fmt.Fprintf(&b, " %s %s", pt.ID, pt.Label)

	if pt.Optional {
		b.WriteString(subtleStyle.Render(" (optional)"))
	}
	if pt.Blocked {
		b.WriteString(failedStyle.Render(" (blocked)"))
	}
	if len(pt.Requirements) > 0 {
		b.WriteString(subtleStyle.Render(" [req: " + strings.Join(pt.Requirements, ", ") + "]"))
	}
	b.WriteString("\n")
	return b.String()
}
