package task

import (
	"regexp"
	"strings"
)

// ParsedTask is a single checkbox line of the document.
type ParsedTask struct {
	// ID is the dot-separated numeric identifier (e.g. "1.1.2").
	ID string

	// Depth is 1 (group), 2 (subgroup or direct task), or 3 (leaf),
	// derived from indentation width.
	Depth int

	// Label is the free text after the identifier.
	Label string

	// Status is the task's own status as read from its marker. It is the
	// zero value when the marker is not one of the five valid characters.
	Status Status

	// Marker is the raw marker character, preserved verbatim even when it
	// is not a valid status character.
	Marker byte

	// Optional indicates a task whose bracket is followed by an asterisk.
	Optional bool

	// Blocked is set during aggregation when an earlier sibling in the
	// same subgroup has failed.
	Blocked bool

	// Requirements holds identifiers harvested from an immediately
	// following "_Requirements: ..._" annotation line, verbatim.
	Requirements []string
}

// Subgroup is a depth-2 task that has depth-3 children.
type Subgroup struct {
	ID    string
	Label string

	// Tasks are the depth-3 children in document order.
	Tasks []ParsedTask

	TotalTasks     int
	CompletedTasks int
	FailedTasks    int

	// Status is derived from the children during aggregation.
	Status Status
}

// Group is a depth-1 task entry.
type Group struct {
	ID    string
	Label string

	// Tasks are the depth-2 entries in document order, used for counting.
	Tasks []ParsedTask

	// Subgroups holds the depth-2 entries that have depth-3 children.
	Subgroups []Subgroup

	TotalTasks     int
	CompletedTasks int
	FailedTasks    int

	// Status is derived from the effective status of each depth-2 task
	// during aggregation.
	Status Status
}

// Document is the parsed task tree. It is a pure projection of the
// document text, rebuilt on every parse and discarded after use.
type Document struct {
	Groups []Group
}

var (
	// taskLinePattern matches one checkbox task line. Submatches:
	// 1 indent, 2 marker, 3 optional asterisk, 4 identifier, 5 label.
	taskLinePattern = regexp.MustCompile(`^( *)- \[(.)\](\*)? (\d+(?:\.\d+)*) (.*)$`)

	// requirementsPattern matches the italic annotation line that lists
	// requirement references for the preceding task.
	requirementsPattern = regexp.MustCompile(`^[-*]?\s*_Requirements:\s*(.+?)_\s*$`)
)

// Parse builds the task tree from document text. Lines that do not match
// the checkbox grammar (headings, prose, blanks) are ignored, so the
// document may freely interleave other content. Parse never fails: a task
// line with an unrecognized marker is kept with an empty Status.
func Parse(content string) *Document {
	tasks := parseLines(content)

	doc := &Document{}
	for _, pt := range tasks {
		switch pt.Depth {
		case 1:
			doc.Groups = append(doc.Groups, Group{ID: pt.ID, Label: pt.Label})
		case 2:
			if len(doc.Groups) == 0 {
				continue
			}
			g := &doc.Groups[len(doc.Groups)-1]
			g.Tasks = append(g.Tasks, pt)
		case 3:
			if len(doc.Groups) == 0 {
				continue
			}
			g := &doc.Groups[len(doc.Groups)-1]
			if len(g.Tasks) == 0 {
				continue
			}
			parent := g.Tasks[len(g.Tasks)-1]
			if len(g.Subgroups) == 0 || g.Subgroups[len(g.Subgroups)-1].ID != parent.ID {
				g.Subgroups = append(g.Subgroups, Subgroup{ID: parent.ID, Label: parent.Label})
			}
			sg := &g.Subgroups[len(g.Subgroups)-1]
			sg.Tasks = append(sg.Tasks, pt)
		}
	}
	return doc
}

// parseLines runs the line parser over the whole document, attaching
// requirement annotations to the task line they follow.
func parseLines(content string) []ParsedTask {
	var tasks []ParsedTask

	for _, line := range strings.Split(content, "\n") {
		if m := taskLinePattern.FindStringSubmatch(line); m != nil {
			pt := ParsedTask{
				ID:       m[4],
				Depth:    depthForIndent(len(m[1])),
				Label:    m[5],
				Marker:   m[2][0],
				Optional: m[3] == "*",
			}
			if s, ok := StatusForMarker(pt.Marker); ok {
				pt.Status = s
			}
			if pt.Depth > 0 {
				tasks = append(tasks, pt)
			}
			continue
		}

		if m := requirementsPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil && len(tasks) > 0 {
			last := &tasks[len(tasks)-1]
			for _, ref := range strings.Split(m[1], ",") {
				if ref = strings.TrimSpace(ref); ref != "" {
					last.Requirements = append(last.Requirements, ref)
				}
			}
		}
	}
	return tasks
}

// depthForIndent maps indentation width (two spaces per level) to a tree
// depth. Returns 0 for indentation deeper than the three task levels.
func depthForIndent(spaces int) int {
	depth := spaces/2 + 1
	if depth > 3 {
		return 0
	}
	return depth
}

// FindGroup returns the group with the given identifier, or nil.
func (d *Document) FindGroup(id string) *Group {
	for i := range d.Groups {
		if d.Groups[i].ID == id {
			return &d.Groups[i]
		}
	}
	return nil
}

// FindTask returns the task with the given identifier at any depth, or nil.
func (d *Document) FindTask(id string) *ParsedTask {
	for gi := range d.Groups {
		g := &d.Groups[gi]
		for ti := range g.Tasks {
			if g.Tasks[ti].ID == id {
				return &g.Tasks[ti]
			}
		}
		for si := range g.Subgroups {
			sg := &g.Subgroups[si]
			for ti := range sg.Tasks {
				if sg.Tasks[ti].ID == id {
					return &sg.Tasks[ti]
				}
			}
		}
	}
	return nil
}

// subgroup returns the group's subgroup seeded by the given depth-2
// identifier, or nil when that task has no children.
func (g *Group) subgroup(id string) *Subgroup {
	for i := range g.Subgroups {
		if g.Subgroups[i].ID == id {
			return &g.Subgroups[i]
		}
	}
	return nil
}

// Leaves returns the group's executable leaf tasks in document order:
// depth-3 children, and depth-2 tasks that have no children.
func (g *Group) Leaves() []*ParsedTask {
	var leaves []*ParsedTask
	for ti := range g.Tasks {
		if sg := g.subgroup(g.Tasks[ti].ID); sg != nil {
			for ci := range sg.Tasks {
				leaves = append(leaves, &sg.Tasks[ci])
			}
			continue
		}
		leaves = append(leaves, &g.Tasks[ti])
	}
	return leaves
}

// Leaves returns every executable leaf task in the document in order.
func (d *Document) Leaves() []*ParsedTask {
	var leaves []*ParsedTask
	for gi := range d.Groups {
		leaves = append(leaves, d.Groups[gi].Leaves()...)
	}
	return leaves
}
