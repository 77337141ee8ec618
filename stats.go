package ember

import (
	"fmt"
	"time"
)

// stats.go consolidates render progress and diagnostics, in the style
// of the teacher's profile.go: a plain struct of counters zeroed by
// the owner between reporting intervals rather than a metrics client.

// Stats is returned by progress() and carries both the numbers
// spec.md §4.E requires ("bad-value count and total iterations are
// reported") and fields for wall-clock timings. The renderer does not
// set IterTime, FilterTime or ToneTime, so Progress reports them as zero.
type Stats struct {
	State State

	TotalIterations int64
	BadPoints       int64 // informational; not required to match CPU/GPU.

	SamplesDone int // temporal samples accumulated so far.

	IterTime   time.Duration
	FilterTime time.Duration
	ToneTime   time.Duration

	// Aborted is set once a cooperative abort has been observed between
	// sub-batches (spec.md §5 "Cancellation / timeout").
	Aborted bool
}

// Zero resets the counters for the next render, following the
// teacher's profile.Zero convention.
func (s *Stats) Zero() {
	*s = Stats{State: s.State}
}

// Dump prints a one-line human-readable summary, for development use
// (compare profile.go's Dump).
func (s *Stats) Dump() {
	fmt.Printf("state:%s iters:%d bad:%d samples:%d iter:%s filter:%s tone:%s\n",
		s.State, s.TotalIterations, s.BadPoints, s.SamplesDone,
		s.IterTime, s.FilterTime, s.ToneTime)
}

// BadPointRate returns the fraction of iterated points that were
// rejected as BadPoint, for diagnostics; 0 if no iterations have run.
func (s *Stats) BadPointRate() float64 {
	if s.TotalIterations == 0 {
		return 0
	}
	return float64(s.BadPoints) / float64(s.TotalIterations)
}
