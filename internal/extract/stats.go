package extract

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

type sample struct {
	at     time.Time
	format string
	ms     int64
	failed bool
}

// StatsSnapshot aggregates the extractions still inside the window. Latency
// figures cover successful extractions only; Failed counts the rest.
type StatsSnapshot struct {
	Count   int            `json:"count"`
	Failed  int            `json:"failed"`
	Formats map[string]int `json:"formats"`
	MinMs   int64          `json:"min_ms"`
	MaxMs   int64          `json:"max_ms"`
	AvgMs   float64        `json:"avg_ms"`
	P50Ms   float64        `json:"p50_ms"`
	P95Ms   float64        `json:"p95_ms"`
	P99Ms   float64        `json:"p99_ms"`
}

// Stats is a rolling window of per-document extraction outcomes. It is the
// only state shared between concurrent API requests.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
	now     func() time.Time
}

// NewStats keeps samples for window; zero or negative means one hour.
func NewStats(window time.Duration) *Stats {
	if window <= 0 {
		window = time.Hour
	}
	return &Stats{
		samples: make([]sample, 0, 256),
		window:  window,
		now:     time.Now,
	}
}

// Record adds one extraction of the named document. err marks it failed.
// Negative durations count as zero.
func (s *Stats) Record(name string, d time.Duration, err error) {
	sm := sample{
		format: formatOf(name),
		ms:     max(d.Milliseconds(), 0),
		failed: err != nil,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sm.at = s.now()
	s.pruneLocked(sm.at)
	s.samples = append(s.samples, sm)
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())

	snap := StatsSnapshot{Formats: map[string]int{}}
	var values []int64
	var sum int64
	for _, sm := range s.samples {
		snap.Formats[sm.format]++
		if sm.failed {
			snap.Failed++
			continue
		}
		values = append(values, sm.ms)
		sum += sm.ms
	}
	if len(values) == 0 {
		return snap
	}
	slices.Sort(values)

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

// pruneLocked drops samples older than the window. Samples are appended in
// time order, so the expired ones form a prefix.
func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.samples) && s.samples[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.samples = append(s.samples[:0], s.samples[i:]...)
	}
}

func formatOf(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch ext {
	case "":
		return "unknown"
	case "htm":
		return "html"
	case "markdown":
		return "md"
	}
	return ext
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}
	pos := float64(len(sorted)-1) * pct / 100
	lower := int(pos)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*(pos-float64(lower))
}
