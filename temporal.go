package ember

import "math"

// temporal.go derives per-sample weights from an Ember's temporal
// filter configuration. spec.md §3 declares the "temporal filter kind
// & width & exponent" field but the Component Design section does not
// specify how weights are derived from it; this is supplemented from
// original_source/Source/Ember/TemporalFilter.h (see SPEC_FULL.md
// "Temporal filter shaping"), which derives each filter's shape from
// sample index alone. width only spaces that file's m_Deltas vector
// (per-sample time offsets, not reproduced here since nothing in this
// package yet consumes per-sample time) and never enters any filter's
// weight formula, so it is accepted below for a stable signature but
// left unused in the shape computation, matching the original.
// TemporalFilter.h normalizes each entry by the bank's peak value and
// separately tracks an average (m_SumFilt) used to rescale accumulated
// samples; since this function's contract is a set of blend weights
// summing to 1 rather than an accumulate-and-rescale factor, the
// peak-normalized shape below is renormalized to sum 1 instead of
// carrying a separate SumFilt divisor.

// TemporalWeights returns n normalized weights (summing to 1), one per
// temporal sample, shaped per kind:
//
//   - box: uniform (BoxTemporalFilter).
//   - gaussian: GaussianFilter.Filter(1.5*|i-halfSteps|/halfSteps),
//     exponent unused (GaussianTemporalFilter).
//   - exp: ramp pow((i+1)/n, |exponent|) when exponent >= 0, or
//     pow((n-i)/n, |exponent|) otherwise (ExpTemporalFilter).
func TemporalWeights(kind TemporalFilterKind, width, exponent float64, n int) []float64 {
	_ = width // spaces per-sample time deltas in the original, not a weight input.

	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}

	peak := 0.0
	for i := 0; i < n; i++ {
		var v float64
		switch kind {
		case TemporalGaussian:
			halfSteps := float64(n) / 2
			t := 1.5 * math.Abs(float64(i)-halfSteps) / halfSteps
			v = math.Exp(-2*t*t) * math.Sqrt(2/math.Pi)
		case TemporalExp:
			var slope float64
			if exponent >= 0 {
				slope = (float64(i) + 1) / float64(n)
			} else {
				slope = float64(n-i) / float64(n)
			}
			v = math.Pow(slope, math.Abs(exponent))
		default: // TemporalBox
			v = 1
		}
		w[i] = v
		if v > peak {
			peak = v
		}
	}
	if peak > 0 {
		for i := range w {
			w[i] /= peak
		}
	}

	total := 0.0
	for _, v := range w {
		total += v
	}
	if total > 0 {
		for i := range w {
			w[i] /= total
		}
	}
	return w
}
