package ember

import "testing"

func uniformPalette(c RGBA) Palette {
	var p Palette
	for i := range p {
		p[i] = c
	}
	return p
}

func TestPaletteLookupStepRoundTrip(t *testing.T) {
	var p Palette
	p[128] = RGBA{R: 1, G: 1, B: 1, A: 1}
	got := p.Lookup((128.0+0.5)/256, PaletteStep)
	if got != p[128] {
		t.Errorf("STEP lookup at (i+0.5)/256 = %+v, want %+v", got, p[128])
	}
}

func TestPaletteLookupStepClampsBounds(t *testing.T) {
	var p Palette
	p[0] = RGBA{R: 1}
	p[255] = RGBA{B: 1}
	if got := p.Lookup(-1, PaletteStep); got != p[0] {
		t.Errorf("negative c = %+v, want %+v", got, p[0])
	}
	if got := p.Lookup(2, PaletteStep); got != p[255] {
		t.Errorf("c>1 = %+v, want %+v", got, p[255])
	}
}

func TestPaletteLookupLinearBlends(t *testing.T) {
	var p Palette
	p[10] = RGBA{R: 0}
	p[11] = RGBA{R: 1}
	c := (10.5) / 256
	got := p.Lookup(c, PaletteLinear)
	if abs(got.R-0.5) > 1e-9 {
		t.Errorf("linear blend at midpoint R = %v, want 0.5", got.R)
	}
}

func TestPaletteLookupLinearClampsAtTopBoundary(t *testing.T) {
	var p Palette
	p[255] = RGBA{R: 1}
	got := p.Lookup(1.0, PaletteLinear)
	if got.R != 1 {
		t.Errorf("linear lookup at c=1 = %+v, want R=1 (clamped)", got)
	}
}

func TestVizAdjust(t *testing.T) {
	if got := VizAdjust(0); got != 0 {
		t.Errorf("VizAdjust(0) = %v, want 0", got)
	}
	if got := VizAdjust(1); abs(got-1) > 1e-9 {
		t.Errorf("VizAdjust(1) = %v, want 1", got)
	}
	if got := VizAdjust(0.5); got <= 0 || got >= 1 {
		t.Errorf("VizAdjust(0.5) = %v, want in (0,1)", got)
	}
}
