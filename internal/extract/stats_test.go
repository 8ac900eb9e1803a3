package extract

import (
	"errors"
	"testing"
	"time"
)

// steppedClock returns a clock that only moves when advanced.
func steppedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	for _, ms := range []int{100, 200, 300, 400, 500} {
		stats.Record("doc.pdf", time.Duration(ms)*time.Millisecond, nil)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestStatsFailuresAndFormats(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record("a.pdf", 40*time.Millisecond, nil)
	stats.Record("b.PDF", 900*time.Millisecond, errors.New("bad xref"))
	stats.Record("c.htm", 10*time.Millisecond, nil)
	stats.Record("d.markdown", 20*time.Millisecond, nil)
	stats.Record("README", 5*time.Millisecond, nil)

	snap := stats.Snapshot()
	if snap.Count != 4 || snap.Failed != 1 {
		t.Fatalf("expected 4 ok and 1 failed, got %d and %d", snap.Count, snap.Failed)
	}
	if snap.MaxMs != 40 {
		t.Errorf("expected failed sample excluded from latency, got max=%d", snap.MaxMs)
	}
	want := map[string]int{"pdf": 2, "html": 1, "md": 1, "unknown": 1}
	for k, v := range want {
		if snap.Formats[k] != v {
			t.Errorf("format %s: expected %d, got %d", k, v, snap.Formats[k])
		}
	}
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	now, advance := steppedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	stats := NewStats(time.Minute)
	stats.now = now

	stats.Record("old.pdf", 100*time.Millisecond, nil)
	advance(2 * time.Minute)

	if snap := stats.Snapshot(); snap.Count != 0 || len(snap.Formats) != 0 {
		t.Fatalf("expected empty window after prune, got %+v", snap)
	}

	stats.Record("new.pdf", 200*time.Millisecond, nil)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record("x.txt", -10*time.Millisecond, nil)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
