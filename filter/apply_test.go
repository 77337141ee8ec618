package filter

import (
	"testing"

	"github.com/gazed/ember/raster"
)

func TestApplyDensitySpreadsMass(t *testing.T) {
	bank, err := BuildDensityBank(1, 9, 1.0, 1)
	if err != nil {
		t.Fatalf("BuildDensityBank: %v", err)
	}
	size := 40
	hist := raster.NewHistogram(size, size)
	accum := raster.NewHistogram(size, size)
	hist.Cells[size/2+size*(size/2)] = raster.Cell{R: 1, G: 1, B: 1, A: 10}

	ApplyDensity(bank, hist, accum, 1, 1, 1)

	total := 0.0
	for _, c := range accum.Cells {
		total += c.A
	}
	if total <= 0 {
		t.Errorf("expected density filter to spread mass into the accumulator, got total alpha %v", total)
	}
}

func TestApplyDensitySkipsEmptyCells(t *testing.T) {
	bank, _ := BuildDensityBank(1, 9, 1.0, 1)
	hist := raster.NewHistogram(20, 20)
	accum := raster.NewHistogram(20, 20)
	ApplyDensity(bank, hist, accum, 1, 1, 1)
	for _, c := range accum.Cells {
		if c != (raster.Cell{}) {
			t.Fatalf("expected no contribution from an all-empty histogram, got %+v", c)
		}
	}
}
