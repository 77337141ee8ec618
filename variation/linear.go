package variation

import (
	"math"
	"math/rand"
)

// linearVariation is the identity variation: it passes its input
// through unchanged. It needs no precalc fields. Negating its weight
// ("linear(-1)") combined with a 180° post-affine flip is the
// interpolator's standard identity-safe substitute for xform slots
// that have no counterpart on the other side of a blend (spec.md
// §4.D).
type linearVariation struct{}

func (linearVariation) ID() int              { return 0 }
func (linearVariation) Name() string         { return "linear" }
func (linearVariation) Precalc() Precalc     { return 0 }
func (linearVariation) DefaultParams() Params { return nil }

func (linearVariation) Eval(h *Helper, _ Params, _ *rand.Rand) (x, y, z float64) {
	return h.X, h.Y, h.Z
}

// flattenVariation zeroes the Z coordinate, collapsing a 3D point onto
// the render plane. An xform may carry at most one per category, and
// it must run last in that category's list (spec.md §3 invariants).
type flattenVariation struct{}

func (flattenVariation) ID() int              { return 1 }
func (flattenVariation) Name() string         { return "flatten" }
func (flattenVariation) Precalc() Precalc     { return 0 }
func (flattenVariation) DefaultParams() Params { return nil }

func (flattenVariation) Eval(h *Helper, _ Params, _ *rand.Rand) (x, y, z float64) {
	return h.X, h.Y, 0
}

// sphericalVariation is the classic flam3 "spherical" variation:
// p' = p / r². It is one of the variations the interpolator treats as
// "likely to distort an identity" when choosing padding substitutes
// (spec.md §4.D).
type sphericalVariation struct{}

func (sphericalVariation) ID() int              { return 2 }
func (sphericalVariation) Name() string         { return "spherical" }
func (sphericalVariation) Precalc() Precalc     { return NeedsR2 }
func (sphericalVariation) DefaultParams() Params { return nil }

func (sphericalVariation) Eval(h *Helper, _ Params, _ *rand.Rand) (x, y, z float64) {
	r2 := h.R2
	if r2 < 1e-300 {
		r2 = 1e-300
	}
	inv := 1 / r2
	return h.X * inv, h.Y * inv, h.Z
}

// sinusoidalVariation applies sin() to each coordinate.
type sinusoidalVariation struct{}

func (sinusoidalVariation) ID() int              { return 3 }
func (sinusoidalVariation) Name() string         { return "sinusoidal" }
func (sinusoidalVariation) Precalc() Precalc     { return 0 }
func (sinusoidalVariation) DefaultParams() Params { return nil }

func (sinusoidalVariation) Eval(h *Helper, _ Params, _ *rand.Rand) (x, y, z float64) {
	return math.Sin(h.X), math.Sin(h.Y), h.Z
}
