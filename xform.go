package ember

import (
	"math"
	"math/rand"

	"github.com/gazed/ember/variation"
)

// Xform owns the pre/post affine maps and the three variation lists
// that together implement the per-step transform of the chaotic game
// (spec.md §3 Xform, §4.B Apply). It mirrors the teacher's pattern of
// a struct with cached derived fields recomputed by setters rather
// than on every read (compare math/lin's V3 in-place mutators).
type Xform struct {
	Pre, Post Affine2D

	PreVars, RegularVars, PostVars []variation.Entry

	Weight      float64 // selection weight, w >= 0.
	ColorCoord  float64 // c_x in [0,1].
	ColorSpeed  float64 // in [0,1].
	Opacity     float64 // in [0,1].
	Animate     float64 // animate flag; not read by Apply or package interp.
	DirectColor float64 // direct-color weight.

	// Xaos is this xform's row of per-destination multipliers, keyed by
	// destination xform index. A missing entry means 1 (spec.md §3).
	Xaos []float64

	// Motion is the optional set of child xforms applied via periodic
	// functions of time (spec.md §3 Ember "motion elements").
	// MotionElement.Eval computes a perturbation; neither Apply nor
	// package interp applies Motion.
	Motion []MotionElement

	colorSpeedCache float64 // ColorSpeed * ColorCoord.
	oneMinusCache   float64 // 1 - ColorSpeed.
	postIsIdentity  bool
}

// MotionElement perturbs a base xform's affine coefficients by a
// periodic function of time, scaled by an amplitude (spec.md §3 Ember
// "motion elements", supplemented from original_source/ motion
// elements; see SPEC_FULL.md).
type MotionElement struct {
	Freq      float64
	Func      MotionFunc
	Offsets   Affine2D // amplitude applied to each affine coefficient.
}

// MotionFunc names the periodic shape of a motion element.
type MotionFunc uint8

const (
	MotionSin MotionFunc = iota
	MotionTriangle
	MotionCos
)

// Eval returns the affine perturbation at time t (in [0,1] across one
// loop of the animation).
func (m MotionElement) Eval(t float64) Affine2D {
	var s float64
	switch m.Func {
	case MotionCos:
		s = math.Cos(2 * math.Pi * m.Freq * t)
	case MotionTriangle:
		phase := math.Mod(m.Freq*t, 1)
		s = 4*math.Abs(phase-0.5) - 1
	default:
		s = math.Sin(2 * math.Pi * m.Freq * t)
	}
	o := m.Offsets
	return Affine2D{A: o.A * s, B: o.B * s, C: o.C * s, D: o.D * s, E: o.E * s, F: o.F * s}
}

// SetColor updates the color coordinate and speed, recomputing the
// derived caches (spec.md §3 Xform "Derived caches ... recomputed on
// any color field change").
func (x *Xform) SetColor(coord, speed float64) *Xform {
	x.ColorCoord = coord
	x.ColorSpeed = speed
	x.colorSpeedCache = speed * coord
	x.oneMinusCache = 1 - speed
	return x
}

// SetPost replaces the post-affine and refreshes the identity cache.
func (x *Xform) SetPost(a Affine2D) *Xform {
	x.Post = a
	x.postIsIdentity = a.IsIdentity()
	return x
}

// ErrBadPoint is returned by Apply when the result point has escaped
// the representable range (spec.md §4.B step 10).
var ErrBadPoint = newSentinel("ember: bad point")

func precalcUnion(entries []variation.Entry) variation.Precalc {
	var need variation.Precalc
	for _, e := range entries {
		need |= e.Var.Precalc()
	}
	return need
}

func fillPrecalc(h *variation.Helper, need variation.Precalc) {
	if need.Has(variation.NeedsR2) || need.Has(variation.NeedsR) || need.Has(variation.NeedsSinCos) {
		h.R2 = h.X*h.X + h.Y*h.Y
	}
	if need.Has(variation.NeedsR) || need.Has(variation.NeedsSinCos) {
		h.R = math.Sqrt(h.R2)
	}
	if need.Has(variation.NeedsSinCos) {
		r := h.R
		if r < epsilon {
			r = epsilon
		}
		h.SinA = h.X / r
		h.CosA = h.Y / r
	}
	if need.Has(variation.NeedsAtanYX) {
		h.AtanYX = math.Atan2(h.Y, h.X)
	}
	if need.Has(variation.NeedsAtanXY) {
		h.AtanXY = math.Atan2(h.X, h.Y)
	}
}

const epsilon = 1e-10

func runList(entries []variation.Entry, h *variation.Helper, rng *rand.Rand, sumInto bool) (float64, float64, float64) {
	x, y, z := h.X, h.Y, h.Z
	if sumInto {
		x, y, z = 0, 0, 0
	}
	for _, e := range entries {
		ex, ey, ez := e.Run(h, rng)
		switch e.Assign {
		case variation.Set:
			x, y, z = ex, ey, ez
		default:
			x, y, z = x+ex, y+ey, z+ez
		}
	}
	return x, y, z
}

// Apply runs the ten-step xform evaluation described in spec.md §4.B,
// reading in and writing out. in and out may not alias.
func (x *Xform) Apply(in, out *Point, rng *rand.Rand) error {
	out.Color = x.colorSpeedCache + x.oneMinusCache*in.Color

	if len(x.PreVars) == 0 && len(x.RegularVars) == 0 {
		out.X, out.Y = x.Pre.Apply(in.X, in.Y)
		out.Z = in.Z
	} else {
		tx, ty := x.Pre.Apply(in.X, in.Y)
		tz := in.Z

		helperColor := out.Color
		for _, e := range x.PreVars {
			h := &variation.Helper{X: tx, Y: ty, Z: tz, Color: helperColor}
			fillPrecalc(h, e.Var.Precalc())
			ex, ey, ez := e.Run(h, rng)
			switch e.Assign {
			case variation.Set:
				tx, ty, tz = ex, ey, ez
			default:
				tx, ty, tz = tx+ex, ty+ey, tz+ez
			}
		}

		if len(x.RegularVars) > 0 {
			h := &variation.Helper{X: tx, Y: ty, Z: tz, Color: helperColor}
			fillPrecalc(h, precalcUnion(x.RegularVars))
			out.X, out.Y, out.Z = runList(x.RegularVars, h, rng, true)
		} else {
			out.X, out.Y, out.Z = tx, ty, tz
		}
	}

	for _, e := range x.PostVars {
		h := &variation.Helper{X: out.X, Y: out.Y, Z: out.Z, Color: out.Color}
		fillPrecalc(h, e.Var.Precalc())
		ex, ey, ez := e.Run(h, rng)
		switch e.Assign {
		case variation.Set:
			out.X, out.Y, out.Z = ex, ey, ez
		default:
			out.X, out.Y, out.Z = out.X+ex, out.Y+ey, out.Z+ez
		}
	}

	if !x.postIsIdentity {
		out.X, out.Y = x.Post.Apply(out.X, out.Y)
	}

	// Step 9 (spec.md §4.B) blends out.Color with the helper's color,
	// which variations write back into on the original renderer's direct-
	// color path. This interface's Variation.Eval never mutates color, so
	// the helper's value is always out.Color itself and the blend is a
	// no-op by construction; no assignment is needed.

	if math.IsNaN(out.X) || math.IsNaN(out.Y) || math.Abs(out.X) > 1e10 || math.Abs(out.Y) > 1e10 {
		return ErrBadPoint
	}
	return nil
}
