// Package filter implements the two post-iteration passes described
// in spec.md §4.H/I/J: a variable-radius density-estimation filter
// bank and a fixed-radius spatial filter, both built the way the
// teacher's render package precomputes immutable coefficient tables
// once and reuses them across a render rather than recomputing per
// pixel.
package filter

import (
	"fmt"
	"math"
)

// MaxKernels bounds the density filter's kernel count; building more
// is refused outright (spec.md §4.H "refuse to build if N >
// 10_000_000").
const MaxKernels = 10_000_000

// DensityBank is the precomputed bank of Gaussian kernels whose radius
// varies with hit count (spec.md §4.H).
type DensityBank struct {
	RMin, RMax float64
	Curve      float64
	KMax       int // highest useful kernel index.

	width int // full square side, 2*ceil(RMax)-1.
	// coef holds each kernel's packed upper-triangle quadrant; indexed
	// by coefIndex(k, i, j).
	coef [][]float64
	// indices maps a (di,dj) offset within the full square (both in
	// [0,width)) to a packed entry index shared by every kernel.
	indices [][]int
}

// BuildDensityBank constructs the kernel bank for the given
// configuration (spec.md §4.H). It returns an error if the kernel
// count would exceed MaxKernels.
func BuildDensityBank(rMin, rMax, curve float64, supersample int) (*DensityBank, error) {
	s := float64(supersample)
	Rmin := rMin*s + 1
	Rmax := rMax*s + 1
	if Rmin <= 0 {
		Rmin = 1
	}

	nf := math.Ceil(math.Pow(Rmax/Rmin, 1/curve))
	if nf > MaxKernels {
		return nil, fmt.Errorf("ember: density filter kernel count %v exceeds %d", nf, MaxKernels)
	}
	n := int(nf)
	if n < 1 {
		n = 1
	}

	width := 2*int(math.Ceil(Rmax)) - 1
	half := width / 2

	indices := make([][]int, width)
	for i := range indices {
		indices[i] = make([]int, width)
	}
	// Assign packed indices to the upper-triangle quadrant (di <= dj,
	// both >= 0) once, then mirror to every (i,j) offset.
	quadrant := make(map[[2]int]int)
	nextIdx := 0
	for di := 0; di <= half; di++ {
		for dj := di; dj <= half; dj++ {
			quadrant[[2]int{di, dj}] = nextIdx
			nextIdx++
		}
	}
	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			di, dj := absInt(i-half), absInt(j-half)
			if di > dj {
				di, dj = dj, di
			}
			indices[i][j] = quadrant[[2]int{di, dj}]
		}
	}
	packedLen := nextIdx

	bank := &DensityBank{
		RMin: Rmin, RMax: Rmax, Curve: curve,
		width: width, indices: indices,
		coef: make([][]float64, n),
	}

	kMax := n - 1
	for k := 0; k < n; k++ {
		hk := kernelRadius(k, Rmax, curve)
		clamped := false
		if hk < Rmin {
			hk = Rmin
			clamped = true
		}
		bank.coef[k] = tabulateKernel(hk, width, half, packedLen, quadrant)
		if clamped {
			kMax = k
			break
		}
	}
	bank.KMax = kMax
	if bank.KMax >= len(bank.coef) {
		bank.KMax = len(bank.coef) - 1
	}
	return bank, nil
}

func kernelRadius(k int, rMax, curve float64) float64 {
	if k < 100 {
		return rMax / math.Pow(float64(k+1), curve)
	}
	shat := math.Pow(float64(k-100), 1/curve) + 100
	return rMax / math.Pow(shat+1, curve)
}

func tabulateKernel(h float64, width, half, packedLen int, quadrant map[[2]int]int) []float64 {
	sums := make([]float64, packedLen)
	for di := 0; di <= half; di++ {
		for dj := di; dj <= half; dj++ {
			d := math.Hypot(float64(di), float64(dj))
			t := d / h
			v := 0.0
			if t <= 1 {
				v = math.Exp(-2*t*t) * math.Sqrt(2/math.Pi)
			}
			sums[quadrant[[2]int{di, dj}]] = v
		}
	}
	total := 0.0
	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			di, dj := absInt(i-half), absInt(j-half)
			if di > dj {
				di, dj = dj, di
			}
			total += sums[quadrant[[2]int{di, dj}]]
		}
	}
	if total > 0 {
		for i := range sums {
			sums[i] /= total
		}
	}
	return sums
}

// Coef returns kernel k's weight for offset (di,dj), where di,dj are
// in [-half, half] relative to the kernel center.
func (b *DensityBank) Coef(k, di, dj int) float64 {
	half := b.width / 2
	i, j := di+half, dj+half
	if i < 0 || i >= b.width || j < 0 || j >= b.width {
		return 0
	}
	return b.coef[k][b.indices[i][j]]
}

// Half returns the kernel support's half-width, i.e. the maximum |di|
// or |dj| for which Coef can be non-zero.
func (b *DensityBank) Half() int { return b.width / 2 }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
