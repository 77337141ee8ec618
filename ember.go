package ember

import "fmt"

// ember.go defines the Flame record (spec.md §3 "Ember (Flame)") that
// the control surface consumes. It is a plain data record plus
// validation, in the teacher's style of scene.go holding a tree of
// plain fields validated by the caller rather than a builder DSL.

// SpatialFilterKind names the compile-time-selected spatial filter
// (spec.md §4.J). The kernel banks themselves live in package filter.
type SpatialFilterKind uint8

const (
	FilterGaussian SpatialFilterKind = iota
	FilterHermite
	FilterBox
	FilterTriangle
	FilterBell
	FilterBSpline
	FilterLanczos2
	FilterLanczos3
	FilterMitchell
	FilterBlackman
	FilterCatrom
	FilterHamming
	FilterHanning
	FilterQuadratic
)

// TemporalFilterKind names the shape used to weight temporal samples
// (spec.md §9, supplemented from original_source/; see SPEC_FULL.md).
type TemporalFilterKind uint8

const (
	TemporalBox TemporalFilterKind = iota
	TemporalGaussian
	TemporalExp
)

// AffineInterpMode selects how an xform's affine pair is blended
// during keyframe interpolation (spec.md §4.D).
type AffineInterpMode uint8

const (
	AffineLinear AffineInterpMode = iota
	AffineLog
)

// Camera holds the optional 3D projection parameters. All fields
// default to zero, which spec.md §6 defines as "2D" (no projection
// applied).
type Camera struct {
	Yaw, Pitch   float64
	ZPos         float64
	Perspective  float64
	DepthBlur    float64
}

// Enabled reports whether any 3D camera flag is non-zero (spec.md
// §4.E "If any 3D camera flag is non-zero, apply the camera
// projection").
func (c Camera) Enabled() bool {
	return c.Yaw != 0 || c.Pitch != 0 || c.ZPos != 0 || c.Perspective != 0 || c.DepthBlur != 0
}

// DensityFilterParams configures the density-estimation filter bank
// (spec.md §4.H/I).
type DensityFilterParams struct {
	MinRadius float64
	MaxRadius float64
	Curve     float64
}

// SpatialFilterParams configures the fixed-radius spatial filter
// (spec.md §4.J).
type SpatialFilterParams struct {
	Kind   SpatialFilterKind
	Radius float64
}

// TemporalFilterParams configures how samples across the temporal
// (motion-blur) axis are weighted before accumulation (spec.md §9).
type TemporalFilterParams struct {
	Kind     TemporalFilterKind
	Width    float64
	Exponent float64
}

// ToneParams configures the tone mapper (spec.md §4.K).
type ToneParams struct {
	Gamma          float64
	GammaThreshold float64
	Vibrancy       float64
	HighlightPower float64
	Background     RGBA
	Transparency   bool
	Channels       int // 3 or 4.
	EarlyClip      bool

	// Brightness and Contrast feed the density filter's per-cell
	// log_scale constants K1/K2 (spec.md §4.H/I "K1,K2 are the ember's
	// brightness-derived constants"); spec.md §3's Ember field list
	// does not separately name them, so they are carried here as the
	// tone stage's own brightness knobs (see DESIGN.md "density filter
	// K1/K2" for the resolved formula). Defaults matching the
	// reference renderer: Brightness 4, Contrast 1.
	Brightness float64
	Contrast   float64
}

// Ember is one keyframe of the scene: everything the renderer needs to
// produce a single still (spec.md §3 Ember, §6 "Scene input").
type Ember struct {
	Width, Height         int // final raster size.
	OrigWidth, OrigHeight int // original size, for aspect preservation.

	Supersample int // S in {1,2,3,4}.
	Quality     float64

	PixelsPerUnit float64
	Zoom          float64
	CenterX       float64
	CenterY       float64
	Rotation      float64

	Camera Camera

	Background RGBA

	Spatial  SpatialFilterParams
	Density  DensityFilterParams
	Temporal TemporalFilterParams
	Tone     ToneParams

	Palette       Palette
	PaletteInterp PaletteInterp
	PaletteLookup PaletteLookup

	// PaletteRotation rotates the palette's entries by a fraction in
	// [0,1) of its length before lookup (see EffectivePalette), applied
	// once per palette rather than per sample (supplemented from original_source/; see
	// SPEC_FULL.md "Temporal filter shaping" section neighbor).
	PaletteRotation float64

	AffineInterp AffineInterpMode

	// FinalXformOnly renders every sample from the final xform's output,
	// bypassing the probabilistic opacity gate (spec.md §4.E), for
	// preview renders of the capstone transform (supplemented from
	// original_source/; see SPEC_FULL.md).
	FinalXformOnly bool

	// YUp flips the output buffer's row order so row 0 is the bottom of
	// the image instead of the top (spec.md §6 "row-major, top-to-bottom
	// by default (configurable y-up)").
	YUp bool

	Xforms []*Xform
	Final  *Xform // optional; does not feed back into iteration.
}

// EffectivePalette returns the palette rotated by PaletteRotation,
// ready for STEP/LINEAR lookup (spec.md §4.G).
func (e *Ember) EffectivePalette() Palette {
	if e.PaletteRotation == 0 {
		return e.Palette
	}
	shift := int(e.PaletteRotation*256) % 256
	if shift < 0 {
		shift += 256
	}
	var out Palette
	for i := range out {
		out[i] = e.Palette[(i+shift)%256]
	}
	return out
}

// Validate checks the structural invariants spec.md §7 requires the
// control surface to enforce at set_ember time, wrapping
// ErrConfigInvalid with the first violation found.
func (e *Ember) Validate() error {
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Errorf("%w: raster size must be positive, got %dx%d", ErrConfigInvalid, e.Width, e.Height)
	}
	switch e.Supersample {
	case 1, 2, 3, 4:
	default:
		return fmt.Errorf("%w: supersample must be in {1,2,3,4}, got %d", ErrConfigInvalid, e.Supersample)
	}
	if e.Density.MaxRadius < e.Density.MinRadius {
		return fmt.Errorf("%w: density max radius %v < min radius %v", ErrConfigInvalid, e.Density.MaxRadius, e.Density.MinRadius)
	}
	if e.Density.Curve <= 0 {
		return fmt.Errorf("%w: density curve must be > 0, got %v", ErrConfigInvalid, e.Density.Curve)
	}
	if len(e.Xforms) == 0 {
		return fmt.Errorf("%w: ember has no xforms", ErrConfigInvalid)
	}
	sum := 0.0
	for _, x := range e.Xforms {
		if x.Weight < 0 {
			return fmt.Errorf("%w: xform weight must be >= 0, got %v", ErrConfigInvalid, x.Weight)
		}
		sum += x.Weight
	}
	if sum == 0 {
		return fmt.Errorf("%w: all xform weights are zero", ErrConfigInvalid)
	}
	if e.Tone.Channels != 3 && e.Tone.Channels != 4 {
		return fmt.Errorf("%w: tone channels must be 3 or 4, got %d", ErrConfigInvalid, e.Tone.Channels)
	}
	return nil
}

// GutterCells returns the number of extra cells allocated on every
// side of the histogram/accumulator so out-of-bounds density-filter
// taps are a no-op by construction (spec.md §4.H "Gutter").
func (e *Ember) GutterCells() int {
	rMax := e.Density.MaxRadius*float64(e.Supersample) + 1
	g := int(rMax)
	if float64(g) < rMax {
		g++
	}
	return g
}

// BufferWidth and BufferHeight return the dimensions of the
// histogram/accumulator buffers: S*W_f + 2*G and S*H_f + 2*G (spec.md
// §3 "Histogram / Accumulator").
func (e *Ember) BufferWidth() int {
	return e.Supersample*e.Width + 2*e.GutterCells()
}

func (e *Ember) BufferHeight() int {
	return e.Supersample*e.Height + 2*e.GutterCells()
}
