package task

// DeriveStatus reduces constituent statuses to a single aggregate using a
// fixed precedence: any failure wins, then any in-progress work; otherwise
// queued counts as not started, and the result is completed, partial
// (a mix of completed and not-yet-started), or not_started. A partial
// constituent contributes both sides of that mix, and an unparseable
// status counts as not started.
func DeriveStatus(statuses []Status) Status {
	var hasFailed, hasInProgress, hasCompleted, hasPending bool

	for _, s := range statuses {
		switch s {
		case StatusFailed:
			hasFailed = true
		case StatusInProgress:
			hasInProgress = true
		case StatusCompleted:
			hasCompleted = true
		case StatusPartial:
			hasCompleted = true
			hasPending = true
		default:
			// not_started, queued, or unparseable
			hasPending = true
		}
	}

	switch {
	case hasFailed:
		return StatusFailed
	case hasInProgress:
		return StatusInProgress
	case hasCompleted && !hasPending:
		return StatusCompleted
	case hasCompleted:
		return StatusPartial
	default:
		return StatusNotStarted
	}
}

// Aggregate annotates the tree with derived statuses, completion counts,
// and blocking flags. Subgroups are computed first so that each depth-2
// task's effective status is available for its group: a depth-2 task with
// children takes the subgroup's derived status, and its own marker is
// ignored (it is kept on the parsed task for display only).
func Aggregate(d *Document) {
	for gi := range d.Groups {
		g := &d.Groups[gi]

		for si := range g.Subgroups {
			sg := &g.Subgroups[si]
			sg.TotalTasks = len(sg.Tasks)
			sg.CompletedTasks = 0
			sg.FailedTasks = 0
			statuses := make([]Status, len(sg.Tasks))
			for ti := range sg.Tasks {
				statuses[ti] = sg.Tasks[ti].Status
				switch sg.Tasks[ti].Status {
				case StatusCompleted:
					sg.CompletedTasks++
				case StatusFailed:
					sg.FailedTasks++
				}
			}
			sg.Status = DeriveStatus(statuses)
			markBlocked(sg.Tasks)
		}

		g.TotalTasks = len(g.Tasks)
		g.CompletedTasks = 0
		g.FailedTasks = 0
		effective := make([]Status, len(g.Tasks))
		for ti := range g.Tasks {
			effective[ti] = g.EffectiveStatus(&g.Tasks[ti])
			switch effective[ti] {
			case StatusCompleted:
				g.CompletedTasks++
			case StatusFailed:
				g.FailedTasks++
			}
		}
		g.Status = DeriveStatus(effective)
	}
}

// EffectiveStatus returns the status used for aggregation and counting:
// the subgroup's derived status when the depth-2 task has children,
// otherwise the task's own status. Aggregate must have computed subgroup
// statuses before this is meaningful at the group level.
func (g *Group) EffectiveStatus(t *ParsedTask) Status {
	if sg := g.subgroup(t.ID); sg != nil {
		return sg.Status
	}
	return t.Status
}

// markBlocked flags every sibling after the first failed task. The failed
// task itself and everything before it stay unblocked.
func markBlocked(tasks []ParsedTask) {
	failed := false
	for i := range tasks {
		tasks[i].Blocked = failed
		if tasks[i].Status == StatusFailed {
			failed = true
		}
	}
}

// FindNextExecutableTask scans leaf tasks in document order, skipping
// blocked ones. A not_started task is preferred; failing that, the first
// eligible queued task is returned. Returns nil when there is no
// executable work. The document must be aggregated first so blocking
// flags are populated.
func FindNextExecutableTask(d *Document) *ParsedTask {
	var firstQueued *ParsedTask
	for _, leaf := range d.Leaves() {
		if leaf.Blocked {
			continue
		}
		switch leaf.Status {
		case StatusNotStarted:
			return leaf
		case StatusQueued:
			if firstQueued == nil {
				firstQueued = leaf
			}
		}
	}
	return firstQueued
}
