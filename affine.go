// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package ember

import (
	"math"

	"github.com/gazed/ember/math/lin"
)

// affine.go implements the six-coefficient 2D affine map used by both
// an xform's pre/post transforms and the camera's world-to-raster
// rotation (spec.md §3 Affine2D). This is plain closed-form 2x2+t
// arithmetic specific to the flame pipeline; math/lin's V3/matrix
// helpers are 3-vector and not a natural fit for a 2x3 map, so it is
// implemented directly here rather than forced through that package
// (see DESIGN.md).

// Affine2D encodes (x,y) ↦ (ax+by+c, dx+ey+f).
type Affine2D struct {
	A, B, C float64
	D, E, F float64
}

// IdentityAffine2D returns the identity map.
func IdentityAffine2D() Affine2D {
	return Affine2D{A: 1, E: 1}
}

// IsIdentity reports whether the affine is close enough to the
// identity map that step 8 of Apply can skip the post-affine multiply
// entirely (spec.md §4.B, §3 Xform "is-identity flag"). Interpolated
// affines rarely land on an exact 1/0 pattern, so this uses the
// engine's almost-equals comparison (lin.Aeq) rather than exact float
// equality.
func (a Affine2D) IsIdentity() bool {
	return lin.Aeq(a.A, 1) && lin.AeqZ(a.B) && lin.AeqZ(a.C) &&
		lin.AeqZ(a.D) && lin.Aeq(a.E, 1) && lin.AeqZ(a.F)
}

// Apply maps (x,y) through the affine.
func (a Affine2D) Apply(x, y float64) (float64, float64) {
	return a.A*x + a.B*y + a.C, a.D*x + a.E*y + a.F
}

// Det returns the determinant of the affine's linear (2x2) part. Used
// by the interpolator to order xforms by orientation when aligning
// keyframes (spec.md §4.D "ties broken by affine determinant").
func (a Affine2D) Det() float64 { return a.A*a.E - a.B*a.D }

// Flip180 returns a copy of a with its linear part negated, i.e.
// composed with a 180° rotation about the origin. This is the
// "linear(-1) with a 180° flip" identity-safe substitute the
// interpolator uses when padding a keyframe's xform list (spec.md
// §4.D).
func (a Affine2D) Flip180() Affine2D {
	return Affine2D{A: -a.A, B: -a.B, C: a.C, D: -a.D, E: -a.E, F: a.F}
}

// Decompose splits the affine's linear columns into (magnitude, angle)
// pairs plus the translation, as used by LOG-mode affine interpolation
// (spec.md §4.D). Column 0 is (A,D), column 1 is (B,E).
func (a Affine2D) Decompose() (mag0, ang0, mag1, ang1, tx, ty float64) {
	mag0 = math.Hypot(a.A, a.D)
	ang0 = math.Atan2(a.D, a.A)
	mag1 = math.Hypot(a.B, a.E)
	ang1 = math.Atan2(a.E, a.B)
	tx, ty = a.C, a.F
	return
}

// Recompose is the inverse of Decompose.
func Recompose(mag0, ang0, mag1, ang1, tx, ty float64) Affine2D {
	return Affine2D{
		A: mag0 * math.Cos(ang0), D: mag0 * math.Sin(ang0),
		B: mag1 * math.Cos(ang1), E: mag1 * math.Sin(ang1),
		C: tx, F: ty,
	}
}
