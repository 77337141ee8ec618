package filter

import (
	"math"
	"testing"

	"github.com/gazed/ember"
	"github.com/gazed/ember/raster"
)

func TestSpatialKernelsNormalize(t *testing.T) {
	kinds := []ember.SpatialFilterKind{
		ember.FilterGaussian, ember.FilterBox, ember.FilterTriangle,
		ember.FilterMitchell, ember.FilterCatrom, ember.FilterLanczos2,
	}
	for _, kind := range kinds {
		k := BuildSpatialKernel(kind, 2, 1.0, 1.0, 1)
		sum := 0.0
		for _, c := range k.Coef {
			sum += c
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Errorf("kind %v sums to %v, want 1", kind, sum)
		}
	}
}

func TestConvolveProducesFinalSize(t *testing.T) {
	k := BuildSpatialKernel(ember.FilterGaussian, 1.5, 1.0, 1.0, 1)
	gutter := k.Width
	accum := raster.NewHistogram(10+2*gutter, 10+2*gutter)
	for i := range accum.Cells {
		accum.Cells[i] = raster.Cell{R: 1, G: 1, B: 1, A: 1}
	}
	out := Convolve(k, accum, gutter, 1, 10, 10)
	if out.Width != 10 || out.Height != 10 {
		t.Fatalf("got %dx%d, want 10x10", out.Width, out.Height)
	}
	c := out.Cells[5+10*5]
	if math.Abs(c.A-1) > 1e-6 {
		t.Errorf("uniform input should convolve to ~1, got %v", c.A)
	}
}
