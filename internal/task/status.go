// Package task parses checkbox task documents into a three-level tree,
// derives aggregate status and blocking information, and performs
// byte-preserving status edits on the document text.
package task

// Status represents the life-cycle state of a task.
type Status string

// Task status constants. StatusPartial only exists as a derived
// group/subgroup aggregate and never appears on a task line.
const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusQueued     Status = "queued"
	StatusPartial    Status = "partial"
)

// Marker characters as written inside the checkbox brackets.
const (
	markerNotStarted = ' '
	markerInProgress = '-'
	markerCompleted  = 'x'
	markerFailed     = '!'
	markerQueued     = '~'
)

// MarkerFor returns the single-character marker for a status.
// ok is false for StatusPartial and unknown values, which have no marker.
func MarkerFor(s Status) (marker byte, ok bool) {
	switch s {
	case StatusNotStarted:
		return markerNotStarted, true
	case StatusInProgress:
		return markerInProgress, true
	case StatusCompleted:
		return markerCompleted, true
	case StatusFailed:
		return markerFailed, true
	case StatusQueued:
		return markerQueued, true
	}
	return 0, false
}

// StatusForMarker returns the status encoded by a marker character.
// ok is false for any character outside the five valid markers; callers
// treat such a line as having an unparseable status.
func StatusForMarker(c byte) (s Status, ok bool) {
	switch c {
	case markerNotStarted:
		return StatusNotStarted, true
	case markerInProgress:
		return StatusInProgress, true
	case markerCompleted:
		return StatusCompleted, true
	case markerFailed:
		return StatusFailed, true
	case markerQueued:
		return StatusQueued, true
	}
	return "", false
}
