package ember

import "testing"

func TestAffine2DApply(t *testing.T) {
	a := Affine2D{A: 2, B: 0, C: 1, D: 0, E: 3, F: -1}
	x, y := a.Apply(1, 1)
	if x != 3 || y != 2 {
		t.Errorf("Apply(1,1) = (%v,%v), want (3,2)", x, y)
	}
}

func TestIdentityAffine2DIsIdentity(t *testing.T) {
	if !IdentityAffine2D().IsIdentity() {
		t.Errorf("IdentityAffine2D() not reported as identity")
	}
	a := Affine2D{A: 1, E: 1, C: 0.5}
	if a.IsIdentity() {
		t.Errorf("affine with nonzero translation reported as identity")
	}
}

func TestAffine2DDet(t *testing.T) {
	a := Affine2D{A: 2, B: 0, D: 0, E: 3}
	if got := a.Det(); got != 6 {
		t.Errorf("Det() = %v, want 6", got)
	}
}

func TestFlip180NegatesLinearPart(t *testing.T) {
	a := Affine2D{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	f := a.Flip180()
	want := Affine2D{A: -1, B: -2, C: 3, D: -4, E: -5, F: 6}
	if f != want {
		t.Errorf("Flip180() = %+v, want %+v", f, want)
	}
}

func TestDecomposeRecomposeRoundTrip(t *testing.T) {
	a := Affine2D{A: 0.5, B: -0.2, C: 1.5, D: 0.3, E: 0.7, F: -2}
	m0, ang0, m1, ang1, tx, ty := a.Decompose()
	got := Recompose(m0, ang0, m1, ang1, tx, ty)
	const eps = 1e-9
	if abs(got.A-a.A) > eps || abs(got.B-a.B) > eps || abs(got.C-a.C) > eps ||
		abs(got.D-a.D) > eps || abs(got.E-a.E) > eps || abs(got.F-a.F) > eps {
		t.Errorf("Recompose(Decompose(a)) = %+v, want %+v", got, a)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
