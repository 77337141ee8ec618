package interp

import (
	"sort"

	"github.com/gazed/ember"
	"github.com/gazed/ember/variation"
)

// Keyframe pairs a time value with the Ember active at that time
// (spec.md §4.D "Keyframes are (t_i, ember_i) pairs sorted by t").
type Keyframe struct {
	T     float64
	Ember *ember.Ember
}

// Mode selects the blend shape used between bracketing keyframes
// (spec.md §4.D).
type Mode uint8

const (
	Linear Mode = iota
	Smooth
)

// At returns the Ember interpolated at time t from a sorted list of
// keyframes, following the configured Mode.
func At(keyframes []Keyframe, t float64, mode Mode) *ember.Ember {
	i := bracket(keyframes, t)
	lo, hi := keyframes[i], keyframes[i+1]
	w := (hi.T - t) / (hi.T - lo.T)

	if mode == Smooth && len(keyframes) >= 4 && i > 0 && i+2 < len(keyframes) {
		return catmullRom(keyframes[i-1], lo, hi, keyframes[i+2], w)
	}
	return Blend(lo.Ember, hi.Ember, w)
}

// bracket locates the index i such that keyframes[i].T <= t <=
// keyframes[i+1].T, clamping at the ends.
func bracket(keyframes []Keyframe, t float64) int {
	for i := 0; i < len(keyframes)-1; i++ {
		if t <= keyframes[i+1].T {
			return i
		}
	}
	return len(keyframes) - 2
}

// catmullRom blends the four surrounding keyframes with a Catmull-Rom
// spline, evaluated componentwise on each scalar field and via the two
// nearest embers' aligned xform lists (spec.md §4.D "Smooth mode").
func catmullRom(p0, p1, p2, p3 Keyframe, w float64) *ember.Ember {
	// Catmull-Rom basis in terms of the local parameter u = 1-w, with
	// p1 at u=0 and p2 at u=1.
	u := 1 - w
	u2 := u * u
	u3 := u2 * u
	b0 := -0.5*u3 + u2 - 0.5*u
	b1 := 1.5*u3 - 2.5*u2 + 1
	b2 := -1.5*u3 + 2*u2 + 0.5*u
	b3 := 0.5*u3 - 0.5*u2

	scale := func(f func(*ember.Ember) float64) float64 {
		return b0*f(p0.Ember) + b1*f(p1.Ember) + b2*f(p2.Ember) + b3*f(p3.Ember)
	}

	base := Blend(p1.Ember, p2.Ember, w)
	base.CenterX = scale(func(e *ember.Ember) float64 { return e.CenterX })
	base.CenterY = scale(func(e *ember.Ember) float64 { return e.CenterY })
	base.Zoom = scale(func(e *ember.Ember) float64 { return e.Zoom })
	base.Rotation = scale(func(e *ember.Ember) float64 { return e.Rotation })
	return base
}

// Blend linearly interpolates two embers with weight w applied to a
// (spec.md §4.D "Linear mode: combine two embers with weights (w,
// 1-w)"). The result is a structural copy; neither input is mutated.
func Blend(a, b *ember.Ember, w float64) *ember.Ember {
	lerp := func(x, y float64) float64 { return x*w + y*(1-w) }

	out := *a // shallow copy of scalar fields; slices reassigned below.
	out.CenterX = lerp(a.CenterX, b.CenterX)
	out.CenterY = lerp(a.CenterY, b.CenterY)
	out.Zoom = lerp(a.Zoom, b.Zoom)
	out.Rotation = lerp(a.Rotation, b.Rotation)
	out.Quality = lerp(a.Quality, b.Quality)
	out.PixelsPerUnit = lerp(a.PixelsPerUnit, b.PixelsPerUnit)

	out.Camera = ember.Camera{
		Yaw:         lerp(a.Camera.Yaw, b.Camera.Yaw),
		Pitch:       lerp(a.Camera.Pitch, b.Camera.Pitch),
		ZPos:        lerp(a.Camera.ZPos, b.Camera.ZPos),
		Perspective: lerp(a.Camera.Perspective, b.Camera.Perspective),
		DepthBlur:   lerp(a.Camera.DepthBlur, b.Camera.DepthBlur),
	}

	out.Palette = blendPalette(a.Palette, b.Palette, w, a.PaletteInterp)

	alignedA, alignedB := AlignXforms(a.Xforms, b.Xforms)
	out.Xforms = make([]*ember.Xform, len(alignedA))
	for i := range alignedA {
		out.Xforms[i] = blendXform(alignedA[i], alignedB[i], w, a.AffineInterp)
	}
	if a.Final != nil && b.Final != nil {
		out.Final = blendXform(a.Final, b.Final, w, a.AffineInterp)
	}
	return &out
}

func blendPalette(a, b ember.Palette, w float64, mode ember.PaletteInterp) ember.Palette {
	var out ember.Palette
	for i := range out {
		if mode == ember.PaletteSweep && w < 0.5 {
			out[i] = a[i]
			continue
		}
		out[i] = ember.RGBA{
			R: a[i].R*w + b[i].R*(1-w),
			G: a[i].G*w + b[i].G*(1-w),
			B: a[i].B*w + b[i].B*(1-w),
			A: a[i].A*w + b[i].A*(1-w),
		}
	}
	return out
}

func blendXform(a, b *ember.Xform, w float64, mode ember.AffineInterpMode) *ember.Xform {
	lerp := func(x, y float64) float64 { return x*w + y*(1-w) }
	out := &ember.Xform{
		Pre:         BlendAffine(a.Pre, b.Pre, w, mode),
		Weight:      lerp(a.Weight, b.Weight),
		Opacity:     lerp(a.Opacity, b.Opacity),
		DirectColor: lerp(a.DirectColor, b.DirectColor),
	}
	out.SetColor(lerp(a.ColorCoord, b.ColorCoord), lerp(a.ColorSpeed, b.ColorSpeed))
	out.SetPost(BlendAffine(a.Post, b.Post, w, mode))
	out.Xaos = blendXaos(a.Xaos, b.Xaos, w)
	out.PreVars = blendVariations(a.PreVars, b.PreVars, w)
	out.RegularVars = blendVariations(a.RegularVars, b.RegularVars, w)
	out.PostVars = blendVariations(a.PostVars, b.PostVars, w)
	return out
}

// blendXaos interpolates two xaos rows cellwise, clamping negatives to
// 0 (spec.md §4.D "Xaos matrices interpolate cellwise; negatives are
// clamped to 0").
func blendXaos(a, b []float64, w float64) []float64 {
	if a == nil && b == nil {
		return nil
	}
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		av, bv := 1.0, 1.0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		v := av*w + bv*(1-w)
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}

// blendVariations interpolates two aligned variation lists, blending
// weights and named parameters componentwise; a variation present on
// only one side contributes with zero weight on the other (spec.md
// §4.D "variations present in only one side contribute with zero
// weight on the other").
func blendVariations(a, b []variation.Entry, w float64) []variation.Entry {
	byName := func(list []variation.Entry) map[string]variation.Entry {
		m := make(map[string]variation.Entry, len(list))
		for _, e := range list {
			m[e.Var.Name()] = e
		}
		return m
	}
	am, bm := byName(a), byName(b)
	seen := make(map[string]bool)
	var out []variation.Entry
	order := append(append([]variation.Entry{}, a...), b...)
	for _, e := range order {
		name := e.Var.Name()
		if seen[name] {
			continue
		}
		seen[name] = true
		ae, aok := am[name]
		be, bok := bm[name]
		var weight float64
		var v variation.Variation
		var params variation.Params
		switch {
		case aok && bok:
			v = ae.Var
			weight = ae.Weight*w + be.Weight*(1-w)
			params = blendParams(ae.Params, be.Params, w)
		case aok:
			v = ae.Var
			weight = ae.Weight * w
			params = ae.Params
		default:
			v = be.Var
			weight = be.Weight * (1 - w)
			params = be.Params
		}
		out = append(out, variation.Entry{Var: v, Weight: weight, Params: params})
	}
	return out
}

func blendParams(a, b variation.Params, w float64) variation.Params {
	if a == nil && b == nil {
		return nil
	}
	out := make(variation.Params)
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			bv = av
		}
		out[k] = av*w + bv*(1-w)
	}
	for k, bv := range b {
		if _, ok := a[k]; !ok {
			out[k] = bv * (1 - w)
		}
	}
	return out
}

// xformSortKey orders xforms by color speed (primary), then affine
// determinant and orientation angle as tie-breakers, so interpolation
// aligns xforms with similar color roles (spec.md §4.D).
func xformSortKey(x *ember.Xform) [3]float64 {
	det := x.Pre.Det()
	_, ang, _, _, _, _ := x.Pre.Decompose()
	return [3]float64{x.ColorSpeed, det, ang}
}

// AlignXforms extends both xform lists to the maximum count, padding
// the shorter with identity substitutes, after sorting each by
// xformSortKey (spec.md §4.D "Alignment precedes blending").
func AlignXforms(a, b []*ember.Xform) ([]*ember.Xform, []*ember.Xform) {
	sa := append([]*ember.Xform{}, a...)
	sb := append([]*ember.Xform{}, b...)
	sort.Slice(sa, func(i, j int) bool { return less(xformSortKey(sa[i]), xformSortKey(sa[j])) })
	sort.Slice(sb, func(i, j int) bool { return less(xformSortKey(sb[i]), xformSortKey(sb[j])) })

	n := len(sa)
	if len(sb) > n {
		n = len(sb)
	}
	for len(sa) < n {
		sa = append(sa, identitySubstitute(neighborDistorts(sb, len(sa))))
	}
	for len(sb) < n {
		sb = append(sb, identitySubstitute(neighborDistorts(sa, len(sb))))
	}
	return sa, sb
}

func less(a, b [3]float64) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}

// distortingNames are variations likely to distort an identity map,
// so a padded alignment slot near them gets the flipped-linear
// substitute rather than plain identity (spec.md §4.D).
var distortingNames = map[string]bool{
	"spherical": true, "ngon": true, "julian": true, "rings2": true,
	"fan2": true, "blob": true, "curl": true, "perspective": true,
	"super_shape": true, "rectangles": true,
}

func neighborDistorts(list []*ember.Xform, idx int) bool {
	if idx < 0 || idx >= len(list) {
		return false
	}
	for _, e := range list[idx].RegularVars {
		if distortingNames[e.Var.Name()] {
			return true
		}
	}
	return false
}

// identitySubstitute returns a padding xform: plain identity, or
// linear(-1) with a 180 degree flip when the aligned neighbor is
// likely to distort it (spec.md §4.D).
func identitySubstitute(flip bool) *ember.Xform {
	x := &ember.Xform{Pre: ember.IdentityAffine2D(), Weight: 0}
	x.SetPost(ember.IdentityAffine2D())
	lin, ok := variation.Lookup("linear")
	if !ok {
		return x
	}
	weight := 1.0
	post := ember.IdentityAffine2D()
	if flip {
		weight = -1
		post = post.Flip180()
	}
	x.RegularVars = []variation.Entry{{Var: lin, Weight: weight}}
	x.SetPost(post)
	return x
}
