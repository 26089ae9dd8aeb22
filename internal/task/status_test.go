package task

import "testing"

func TestStatusMarkerRoundTrip(t *testing.T) {
	statuses := []Status{
		StatusNotStarted,
		StatusInProgress,
		StatusCompleted,
		StatusFailed,
		StatusQueued,
	}

	seen := make(map[byte]Status)
	for _, s := range statuses {
		marker, ok := MarkerFor(s)
		if !ok {
			t.Fatalf("MarkerFor(%q) not defined", s)
		}
		if prev, dup := seen[marker]; dup {
			t.Errorf("marker %q shared by %q and %q", marker, prev, s)
		}
		seen[marker] = s

		back, ok := StatusForMarker(marker)
		if !ok {
			t.Fatalf("StatusForMarker(%q) not defined", marker)
		}
		if back != s {
			t.Errorf("round trip mismatch: got %q, want %q", back, s)
		}
	}
}

func TestMarkerForPartial(t *testing.T) {
	if _, ok := MarkerFor(StatusPartial); ok {
		t.Error("StatusPartial should have no marker")
	}
}

func TestStatusForMarkerInvalid(t *testing.T) {
	for _, c := range []byte{'?', 'X', '0', '.', '['} {
		if s, ok := StatusForMarker(c); ok {
			t.Errorf("StatusForMarker(%q) = %q, want not ok", c, s)
		}
	}
}
