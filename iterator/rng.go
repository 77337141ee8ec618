package iterator

import "math/rand"

// threadRNG wraps a per-thread *rand.Rand seeded deterministically
// from the render's single 64-bit seed (spec.md §6 "Random seed"),
// mirroring pthm-soup's and irfansharif-zellij's per-goroutine
// rand.New(rand.NewSource(seed)) pattern rather than sharing one
// global generator across workers.
type threadRNG struct {
	*rand.Rand
}

// newThreadRNG derives worker w's generator from seed so that the same
// seed and worker count always reproduce the same per-thread streams
// (spec.md §5 "identical inputs and RNG seeds ... must produce
// identical histograms").
func newThreadRNG(seed int64, worker int) *threadRNG {
	mixed := seed ^ (int64(worker+1) * -0x61C8864680B583EB) // bit pattern 0x9E3779B97F4A7C15
	return &threadRNG{rand.New(rand.NewSource(mixed))}
}

// U32n returns a uniform draw in [0, n).
func (r *threadRNG) U32n(n int) int {
	return r.Intn(n)
}

// Uniform11 returns a uniform draw in [-1, 1), used to reseed a
// bad-point's location (spec.md §4.E).
func (r *threadRNG) Uniform11() float64 {
	return r.Float64()*2 - 1
}
