// Package interp blends keyframe Embers across time: xform-list
// alignment, affine coefficient interpolation (LINEAR or LOG mode),
// and Catmull-Rom/linear blending of the remaining scalar fields
// (spec.md §4.D).
package interp

import (
	"math"

	"github.com/gazed/ember"
	"github.com/gazed/ember/math/lin"
)

// logMagnitudeFloor is the threshold below which LOG mode falls back
// to linear interpolation of a column's magnitude, since log(0) is
// undefined and very small magnitudes make the log blend unstable
// (spec.md §4.D "falling back to linear if any magnitude is below
// e^-10").
var logMagnitudeFloor = math.Exp(-10)

// BlendAffine interpolates two affines with weight w applied to a (so
// the result is a at w=1 and b at w=0), per the ember's configured
// mode (spec.md §4.D "Affine interpolation").
func BlendAffine(a, b ember.Affine2D, w float64, mode ember.AffineInterpMode) ember.Affine2D {
	if mode == ember.AffineLog {
		return blendLog(a, b, w)
	}
	return blendLinear(a, b, w)
}

func blendLinear(a, b ember.Affine2D, w float64) ember.Affine2D {
	// lin.Lerp(x, y, ratio) returns x at ratio=0; BlendAffine's
	// convention is the opposite (a at w=1), so ratio is 1-w.
	lerp := func(x, y float64) float64 { return lin.Lerp(x, y, 1-w) }
	return ember.Affine2D{
		A: lerp(a.A, b.A), B: lerp(a.B, b.B), C: lerp(a.C, b.C),
		D: lerp(a.D, b.D), E: lerp(a.E, b.E), F: lerp(a.F, b.F),
	}
}

func blendLog(a, b ember.Affine2D, w float64) ember.Affine2D {
	aMag0, aAng0, aMag1, aAng1, aTx, aTy := a.Decompose()
	bMag0, bAng0, bMag1, bAng1, bTx, bTy := b.Decompose()

	mag0 := blendMagnitude(aMag0, bMag0, w)
	mag1 := blendMagnitude(aMag1, bMag1, w)
	ang0 := blendAngle(aAng0, bAng0, w)
	ang1 := blendAngle(aAng1, bAng1, w)
	tx := lin.Lerp(aTx, bTx, 1-w)
	ty := lin.Lerp(aTy, bTy, 1-w)

	return ember.Recompose(mag0, ang0, mag1, ang1, tx, ty)
}

func blendMagnitude(a, b, w float64) float64 {
	if a < logMagnitudeFloor || b < logMagnitudeFloor {
		return lin.Lerp(a, b, 1-w)
	}
	return math.Exp(lin.Lerp(math.Log(a), math.Log(b), 1-w))
}

// blendAngle interpolates along the shorter arc, resolving the ±π
// discontinuity (spec.md §4.D "angle along the shorter arc (adjusting
// the ±π discontinuity")). A per-xform wind bias is an Open Question
// left to the caller (see affine_interp's BlendAngleWithWind); plain
// shortest-arc blending is used here. lin.Nang folds the raw
// difference back into [-π, π] before it is scaled.
func blendAngle(a, b, w float64) float64 {
	diff := lin.Nang(b - a)
	return a + diff*(1-w)
}

// BlendAngleWithWind is blendAngle with an explicit integer wind
// count added to b's angle before the shortest-arc adjustment, letting
// a caller bias which way an asymmetric rotation should resolve
// (spec.md §4.D "a per-xform wind reference biases asymmetric cases").
func BlendAngleWithWind(a, b float64, wind int, w float64) float64 {
	return blendAngle(a, b+float64(wind)*2*math.Pi, w)
}
