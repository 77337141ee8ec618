package ember

import "math"

// PaletteLookup selects how a continuous color index is resolved to a
// palette entry (spec.md §4.G).
type PaletteLookup uint8

const (
	PaletteStep PaletteLookup = iota
	PaletteLinear
)

// PaletteInterp controls how two palettes are blended during keyframe
// interpolation (spec.md §3 Ember). Blending itself lives in package
// interp; this is just the tag the Ember struct carries.
type PaletteInterp uint8

const (
	PaletteHSV PaletteInterp = iota
	PaletteSweep
)

// RGBA is a float color in [0,1] per channel, matching the palette's
// storage precision (spec.md §3 Ember "256 RGBA entries, float in
// [0,1]").
type RGBA struct {
	R, G, B, A float64
}

// Palette is a fixed 256 entry color table.
type Palette [256]RGBA

// Lookup resolves a color index c ∈ [0,1] to an RGBA sample using the
// given mode (spec.md §4.G).
func (p *Palette) Lookup(c float64, mode PaletteLookup) RGBA {
	switch mode {
	case PaletteLinear:
		return p.lookupLinear(c)
	default:
		return p.lookupStep(c)
	}
}

func (p *Palette) lookupStep(c float64) RGBA {
	i := int(math.Floor(c * 256))
	if i < 0 {
		i = 0
	}
	if i > 255 {
		i = 255
	}
	return p[i]
}

func (p *Palette) lookupLinear(c float64) RGBA {
	f := c * 256
	i := int(math.Floor(f))
	frac := f - float64(i)
	if i < 0 {
		i, frac = 0, 0
	}
	if i > 255 {
		i, frac = 255, 0
	}
	j := i + 1
	if j > 255 {
		j, frac = 255, 0
	}
	a, b := p[i], p[j]
	return RGBA{
		R: a.R + (b.R-a.R)*frac,
		G: a.G + (b.G-a.G)*frac,
		B: a.B + (b.B-a.B)*frac,
		A: a.A + (b.A-a.A)*frac,
	}
}

// VizAdjust transforms an opacity into the contribution weight used
// when accumulating into the histogram, so that o == 0 contributes
// nothing and o == 1 contributes exactly 1 (spec.md §4.G).
func VizAdjust(o float64) float64 {
	if o == 0 {
		return 0
	}
	return math.Pow(2, -math.Log2(1/o))
}
