package filter

import (
	"math"

	"github.com/gazed/ember/raster"
)

// ApplyDensity runs the density-estimation filter over hist, writing
// weighted Gaussian contributions into accum (spec.md §4.H/I,
// Application steps 1-4). hist and accum must have identical
// dimensions; K1/K2 are the ember's brightness-derived log-scale
// constants.
func ApplyDensity(bank *DensityBank, hist *raster.Histogram, accum *raster.Histogram, supersample int, k1, k2 float64) {
	s := supersample
	half := s / 2
	winSide := 2*half + 1
	evenScale := 1.0
	if s%2 == 0 {
		evenScale = (float64(s) / float64(s+1)) * (float64(s) / float64(s+1))
	}

	w, h := hist.Width, hist.Height
	start := s - 1
	for v := start; v < h; v++ {
		for u := start; u < w; u++ {
			idx := u + w*v
			alpha := hist.Cells[idx].A

			rho := alpha
			if s > 1 {
				rho = windowDensity(hist, u, v, half, winSide)
				rho *= evenScale
			}
			if alpha == 0 {
				continue
			}

			k := densityKernelIndex(rho, bank.Curve, bank.KMax)
			logScale := k1 * math.Log(1+alpha*k2) / alpha

			bucket := hist.Cells[idx]
			kernelHalf := bank.Half()
			for dj := -kernelHalf; dj <= kernelHalf; dj++ {
				vv := v + dj
				if vv < 0 || vv >= h {
					continue
				}
				for di := -kernelHalf; di <= kernelHalf; di++ {
					uu := u + di
					if uu < 0 || uu >= w {
						continue
					}
					c := bank.Coef(k, di, dj)
					if c == 0 {
						continue
					}
					dst := &accum.Cells[uu+w*vv]
					weight := c * logScale
					dst.R += bucket.R * weight
					dst.G += bucket.G * weight
					dst.B += bucket.B * weight
					dst.A += bucket.A * weight
				}
			}
		}
	}
}

// windowDensity computes the local alpha density over a (2*half+1)^2
// window centered at (u,v) (spec.md §4.H Application step 1).
func windowDensity(hist *raster.Histogram, u, v, half, winSide int) float64 {
	sum := 0.0
	for dj := -half; dj <= half; dj++ {
		vv := v + dj
		if vv < 0 || vv >= hist.Height {
			continue
		}
		for di := -half; di <= half; di++ {
			uu := u + di
			if uu < 0 || uu >= hist.Width {
				continue
			}
			sum += hist.Cells[uu+hist.Width*vv].A
		}
	}
	return sum / float64(winSide*winSide)
}

// densityKernelIndex chooses the kernel index for a local density rho
// (spec.md §4.H Application step 2).
func densityKernelIndex(rho, curve float64, kMax int) int {
	var k int
	if rho <= 100 {
		k = int(math.Ceil(rho)) - 1
	} else {
		k = 100 + int(math.Floor(math.Pow(rho-100, curve)))
	}
	if k < 0 {
		k = 0
	}
	if k > kMax {
		k = kMax
	}
	return k
}
