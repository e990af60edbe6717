package stats

import "testing"

func TestCounterIncAndSnapshotReset(t *testing.T) {
	c := NewCounter()
	c.Inc("ingredient")
	c.Inc("ingredient")
	c.Inc("interaction")

	counts, since := c.Snapshot()
	if counts["ingredient"] != 2 || counts["interaction"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if since.IsZero() {
		t.Fatalf("window start not set")
	}

	counts, _ = c.Snapshot()
	if len(counts) != 0 {
		t.Fatalf("snapshot did not reset counts: %v", counts)
	}
}
