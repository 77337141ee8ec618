package filter

import (
	"math"

	"github.com/gazed/ember"
	"github.com/gazed/ember/raster"
)

// kernel1D evaluates one of the named spatial filter shapes at offset
// t (in kernel-radius units), following the standard resampling
// kernel definitions (spec.md §4.J).
func kernel1D(kind ember.SpatialFilterKind, t float64) float64 {
	at := math.Abs(t)
	switch kind {
	case ember.FilterBox:
		if at <= 0.5 {
			return 1
		}
		return 0
	case ember.FilterTriangle:
		if at < 1 {
			return 1 - at
		}
		return 0
	case ember.FilterHermite:
		if at < 1 {
			return (2*at-3)*at*at + 1
		}
		return 0
	case ember.FilterBell:
		if at < 0.5 {
			return 0.75 - at*at
		}
		if at < 1.5 {
			v := at - 1.5
			return 0.5 * v * v
		}
		return 0
	case ember.FilterBSpline:
		if at < 1 {
			return (0.5*at*at*at - at*at + 2.0/3.0)
		}
		if at < 2 {
			v := 2 - at
			return v * v * v / 6
		}
		return 0
	case ember.FilterLanczos2:
		return lanczos(at, 2)
	case ember.FilterLanczos3:
		return lanczos(at, 3)
	case ember.FilterMitchell:
		return mitchell(at)
	case ember.FilterBlackman:
		return windowed(at, func(x float64) float64 {
			return 0.42 + 0.5*math.Cos(math.Pi*x) + 0.08*math.Cos(2*math.Pi*x)
		})
	case ember.FilterCatrom:
		return catrom(at)
	case ember.FilterHamming:
		return windowed(at, func(x float64) float64 { return 0.54 + 0.46*math.Cos(math.Pi*x) })
	case ember.FilterHanning:
		return windowed(at, func(x float64) float64 { return 0.5 + 0.5*math.Cos(math.Pi*x) })
	case ember.FilterQuadratic:
		if at < 0.5 {
			return 0.75 - at*at
		}
		if at < 1.5 {
			v := at - 1.5
			return 0.5 * v * v
		}
		return 0
	default: // Gaussian
		return math.Exp(-2*at*at) * math.Sqrt(2/math.Pi)
	}
}

func windowed(at float64, w func(float64) float64) float64 {
	if at >= 1 {
		return 0
	}
	return w(at)
}

func lanczos(at, a float64) float64 {
	if at == 0 {
		return 1
	}
	if at >= a {
		return 0
	}
	pix := math.Pi * at
	return a * math.Sin(pix) * math.Sin(pix/a) / (pix * pix)
}

func mitchell(at float64) float64 {
	const b, c = 1.0 / 3.0, 1.0 / 3.0
	if at < 1 {
		return ((12-9*b-6*c)*at*at*at + (-18+12*b+6*c)*at*at + (6 - 2*b)) / 6
	}
	if at < 2 {
		return ((-b-6*c)*at*at*at + (6*b+30*c)*at*at + (-12*b-48*c)*at + (8*b + 24*c)) / 6
	}
	return 0
}

func catrom(at float64) float64 {
	if at < 1 {
		return 1.5*at*at*at - 2.5*at*at + 1
	}
	if at < 2 {
		return -0.5*at*at*at + 2.5*at*at - 4*at + 2
	}
	return 0
}

// SpatialKernel is the precomputed 2D coefficient table convolved over
// the accumulator (spec.md §4.J).
type SpatialKernel struct {
	Width int // discrete kernel width, 2*ceil(...)+1, plus 1 when needed to match the supersample's parity.
	Coef  []float64
}

// BuildSpatialKernel constructs the outer-product kernel for the given
// filter kind, support radius, supersample factor, and aspect
// correction (spec.md §4.J). support is the kernel's natural half-width
// in samples (e.g. 1 for Box/Triangle, 2 for Lanczos2, 3 for Lanczos3).
func BuildSpatialKernel(kind ember.SpatialFilterKind, support, radius, aspect float64, supersample int) *SpatialKernel {
	fw := 2*int(math.Ceil(support*float64(supersample)*radius/aspect)) + 1
	if (fw % 2) != (supersample % 2) {
		fw++
	}
	center := float64(fw-1) / 2

	row := make([]float64, fw)
	col := make([]float64, fw)
	for i := 0; i < fw; i++ {
		t := (float64(i) - center) / (float64(supersample) * radius)
		row[i] = kernel1D(kind, t)
		col[i] = kernel1D(kind, t*aspect)
	}

	coef := make([]float64, fw*fw)
	total := 0.0
	for y := 0; y < fw; y++ {
		for x := 0; x < fw; x++ {
			v := row[x] * col[y]
			coef[x+fw*y] = v
			total += v
		}
	}
	if total != 0 {
		for i := range coef {
			coef[i] /= total
		}
	}
	return &SpatialKernel{Width: fw, Coef: coef}
}

// Convolve applies the spatial kernel over accum, producing one
// W_f x H_f buffer of raw (still linear, un-tonemapped) cells (spec.md
// §4.J "For each final pixel ...").
func Convolve(k *SpatialKernel, accum *raster.Histogram, gutter, supersample, finalW, finalH int) *raster.Histogram {
	out := raster.NewHistogram(finalW, finalH)
	for q := 0; q < finalH; q++ {
		for p := 0; p < finalW; p++ {
			var sum raster.Cell
			originX := gutter + p*supersample
			originY := gutter + q*supersample
			for ky := 0; ky < k.Width; ky++ {
				sy := originY + ky
				if sy < 0 || sy >= accum.Height {
					continue
				}
				for kx := 0; kx < k.Width; kx++ {
					sx := originX + kx
					if sx < 0 || sx >= accum.Width {
						continue
					}
					c := k.Coef[kx+k.Width*ky]
					if c == 0 {
						continue
					}
					src := accum.Cells[sx+accum.Width*sy]
					sum.R += src.R * c
					sum.G += src.G * c
					sum.B += src.B * c
					sum.A += src.A * c
				}
			}
			out.Cells[p+finalW*q] = sum
		}
	}
	return out
}
