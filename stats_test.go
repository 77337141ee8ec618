package ember

import "testing"

func TestStatsZeroPreservesState(t *testing.T) {
	s := &Stats{State: FilterDone, TotalIterations: 100, BadPoints: 5, SamplesDone: 2}
	s.Zero()
	if s.State != FilterDone {
		t.Errorf("Zero() reset State to %s, want FILTER_DONE preserved", s.State)
	}
	if s.TotalIterations != 0 || s.BadPoints != 0 || s.SamplesDone != 0 {
		t.Errorf("Zero() left counters nonzero: %+v", s)
	}
}

func TestStatsBadPointRate(t *testing.T) {
	s := &Stats{}
	if got := s.BadPointRate(); got != 0 {
		t.Errorf("BadPointRate() with no iterations = %v, want 0", got)
	}
	s.TotalIterations = 200
	s.BadPoints = 50
	if got := s.BadPointRate(); got != 0.25 {
		t.Errorf("BadPointRate() = %v, want 0.25", got)
	}
}
