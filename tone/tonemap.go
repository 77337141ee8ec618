// Package tone implements the per-pixel tone mapping described in
// spec.md §4.K: gamma correction, vibrancy-weighted hue-preserving
// highlight compression, and background blending.
package tone

import (
	"math"

	"github.com/gazed/ember"
	"github.com/gazed/ember/math/lin"
	"github.com/gazed/ember/raster"
)

// Mapper holds the precomputed tone-mapping parameters for one render
// (spec.md §4.K).
type Mapper struct {
	Params ember.ToneParams
}

// NewMapper returns a Mapper for the given parameters.
func NewMapper(p ember.ToneParams) *Mapper { return &Mapper{Params: p} }

// Pixel is one 8-bit-per-channel output sample, written in [R,G,B[,A]]
// order (spec.md §6 "Image output").
type Pixel struct {
	R, G, B, A uint8
}

// Map converts one accumulated histogram cell into a final pixel
// (spec.md §4.K steps 1-5).
func (m *Mapper) Map(cell raster.Cell) Pixel {
	p := m.Params
	a := cell.A

	var alpha float64
	switch {
	case a <= 0:
		alpha = 0
	case a < p.GammaThreshold && p.GammaThreshold > 0:
		eg := p.GammaThreshold
		alpha = (1-a/eg)*a*(math.Pow(eg, p.Gamma)/eg) + (a/eg)*math.Pow(a, p.Gamma)
	default:
		alpha = math.Pow(a, p.Gamma)
	}

	ls := 0.0
	if a > 0 {
		ls = p.Vibrancy * 256 * alpha / a
	}
	alpha = clamp01(alpha)

	r, g, b := cell.R*ls, cell.G*ls, cell.B*ls
	if maxRGB := math.Max(r, math.Max(g, b)); maxRGB > 255 {
		if p.HighlightPower >= 0 {
			lsPrime := 255 / math.Max(cell.R, math.Max(cell.G, cell.B))
			r, g, b = hueReduceSaturation(cell.R, cell.G, cell.B, ls, lsPrime, p.HighlightPower)
		} else {
			lsPrime := 255 / math.Max(cell.R, math.Max(cell.G, cell.B))
			t := clampRange(-p.HighlightPower, 0, 1)
			blended := ls + (lsPrime-ls)*t
			r, g, b = cell.R*blended, cell.G*blended, cell.B*blended
		}
	}

	out := [3]float64{r, g, b}
	raw := [3]float64{cell.R, cell.G, cell.B}
	for i := range out {
		out[i] += (1 - p.Vibrancy) * 256 * math.Pow(clipPositive(raw[i]), p.Gamma)
		if p.Transparency {
			if alpha > 0 {
				out[i] /= alpha
			}
		} else {
			bgChan := [3]float64{p.Background.R, p.Background.G, p.Background.B}[i] * 255
			out[i] += (1 - alpha) * bgChan
		}
		out[i] = clampRange(out[i], 0, 255)
	}

	px := Pixel{R: uint8(out[0]), G: uint8(out[1]), B: uint8(out[2])}
	if p.Transparency {
		px.A = uint8(alpha * 255)
	} else {
		px.A = 255
	}
	return px
}

// hueReduceSaturation renormalizes rgb hue-preserving when the naive
// scale overflows 255 (spec.md §4.K step 3, h >= 0 branch): convert to
// HSV, reduce saturation by (ls'/ls)^h, convert back, scale by 255.
func hueReduceSaturation(r, g, b, ls, lsPrime, h float64) (float64, float64, float64) {
	hh, s, v := rgbToHSV(r*lsPrime/255, g*lsPrime/255, b*lsPrime/255)
	if ls != 0 {
		s *= math.Pow(lsPrime/ls, h)
	}
	rr, gg, bb := hsvToRGB(hh, s, v)
	return rr * 255, gg * 255, bb * 255
}

func rgbToHSV(r, g, b float64) (h, s, v float64) {
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	v = maxc
	delta := maxc - minc
	if maxc == 0 || delta == 0 {
		return 0, 0, v
	}
	s = delta / maxc
	switch maxc {
	case r:
		h = math.Mod((g-b)/delta, 6)
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, v
}

func hsvToRGB(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r1, g1, b1 float64
	switch {
	case h < 60:
		r1, g1, b1 = c, x, 0
	case h < 120:
		r1, g1, b1 = x, c, 0
	case h < 180:
		r1, g1, b1 = 0, c, x
	case h < 240:
		r1, g1, b1 = 0, x, c
	case h < 300:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}
	return r1 + m, g1 + m, b1 + m
}

func clamp01(v float64) float64 { return clampRange(v, 0, 1) }

// clampRange is a thin wrapper over the engine's shared lin.Clamp,
// kept under this package's own name since every call site here reads
// as "clamp into [lo,hi]" rather than the library's general signature.
func clampRange(v, lo, hi float64) float64 { return lin.Clamp(v, lo, hi) }

func clipPositive(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
