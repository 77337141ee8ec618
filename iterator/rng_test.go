package iterator

import "testing"

func TestThreadRNGDeterministicPerSeedAndWorker(t *testing.T) {
	a := newThreadRNG(42, 0)
	b := newThreadRNG(42, 0)
	for i := 0; i < 10; i++ {
		if got, want := a.U32n(10000), b.U32n(10000); got != want {
			t.Fatalf("draw %d diverged: %d != %d", i, got, want)
		}
	}
}

func TestThreadRNGDiffersAcrossWorkers(t *testing.T) {
	a := newThreadRNG(42, 0)
	b := newThreadRNG(42, 1)
	same := true
	for i := 0; i < 20; i++ {
		if a.U32n(1<<30) != b.U32n(1<<30) {
			same = false
			break
		}
	}
	if same {
		t.Errorf("worker 0 and worker 1 streams matched over 20 draws")
	}
}

func TestThreadRNGUniform11Range(t *testing.T) {
	r := newThreadRNG(1, 0)
	for i := 0; i < 1000; i++ {
		v := r.Uniform11()
		if v < -1 || v >= 1 {
			t.Fatalf("Uniform11() = %v, out of [-1,1)", v)
		}
	}
}
