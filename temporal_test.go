package ember

import "testing"

func sumWeights(w []float64) float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

func TestTemporalWeightsSingleSample(t *testing.T) {
	w := TemporalWeights(TemporalBox, 1, 1, 1)
	if len(w) != 1 || w[0] != 1 {
		t.Errorf("TemporalWeights(n=1) = %v, want [1]", w)
	}
}

func TestTemporalWeightsBoxUniform(t *testing.T) {
	w := TemporalWeights(TemporalBox, 1, 1, 5)
	for i, v := range w {
		if abs(v-0.2) > 1e-9 {
			t.Errorf("box weight[%d] = %v, want 0.2", i, v)
		}
	}
}

func TestTemporalWeightsNormalized(t *testing.T) {
	for _, kind := range []TemporalFilterKind{TemporalBox, TemporalGaussian, TemporalExp} {
		w := TemporalWeights(kind, 2, 1.5, 7)
		if abs(sumWeights(w)-1) > 1e-9 {
			t.Errorf("kind %d: weights sum to %v, want 1", kind, sumWeights(w))
		}
	}
}

func TestTemporalWeightsGaussianPeaksAtCenter(t *testing.T) {
	w := TemporalWeights(TemporalGaussian, 2, 1, 5)
	mid := w[2]
	for i, v := range w {
		if i == 2 {
			continue
		}
		if v > mid {
			t.Errorf("gaussian weight[%d]=%v exceeds center weight %v", i, v, mid)
		}
	}
}
