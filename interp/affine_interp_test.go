package interp

import (
	"math"
	"testing"

	"github.com/gazed/ember"
)

func TestBlendAffineLinearMidpoint(t *testing.T) {
	a := ember.Affine2D{A: 1, E: 1}
	b := ember.Affine2D{A: 3, E: 3}
	got := BlendAffine(a, b, 0.5, ember.AffineLinear)
	if math.Abs(got.A-2) > 1e-9 || math.Abs(got.E-2) > 1e-9 {
		t.Errorf("got %+v, want A=E=2", got)
	}
}

func TestBlendAffineAtEndpoints(t *testing.T) {
	a := ember.Affine2D{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	b := ember.Affine2D{A: 9, B: 8, C: 7, D: 6, E: 5, F: 4}
	got1 := BlendAffine(a, b, 1, ember.AffineLinear)
	if got1 != a {
		t.Errorf("w=1 should equal a, got %+v", got1)
	}
	got0 := BlendAffine(a, b, 0, ember.AffineLinear)
	if got0 != b {
		t.Errorf("w=0 should equal b, got %+v", got0)
	}
}

func TestBlendAngleShortestArc(t *testing.T) {
	got := blendAngle(3.0, -3.0, 0.5)
	if got < -math.Pi-0.01 || got > math.Pi+0.01 {
		t.Errorf("got %v, want a value near +/- pi", got)
	}
}

func TestBlendLogFallsBackNearZeroMagnitude(t *testing.T) {
	a := ember.Affine2D{A: 1e-12, E: 1}
	b := ember.Affine2D{A: 1, E: 1}
	got := BlendAffine(a, b, 0.5, ember.AffineLog)
	if math.IsNaN(got.A) || math.IsInf(got.A, 0) {
		t.Errorf("expected finite fallback result, got %v", got.A)
	}
}
