package tone

import (
	"testing"

	"github.com/gazed/ember"
	"github.com/gazed/ember/raster"
)

func baseParams() ember.ToneParams {
	return ember.ToneParams{
		Gamma:          2.2,
		GammaThreshold: 0.01,
		Vibrancy:       1,
		HighlightPower: -1,
		Background:     ember.RGBA{},
		Channels:       3,
		EarlyClip:      true,
	}
}

func TestMapZeroAlphaIsBackground(t *testing.T) {
	m := NewMapper(baseParams())
	px := m.Map(raster.Cell{})
	if px.R != 0 || px.G != 0 || px.B != 0 {
		t.Errorf("got %+v, want background black", px)
	}
}

func TestMapOpaqueWhiteSaturates(t *testing.T) {
	p := baseParams()
	m := NewMapper(p)
	px := m.Map(raster.Cell{R: 1000, G: 1000, B: 1000, A: 1000})
	if px.R < 200 || px.G < 200 || px.B < 200 {
		t.Errorf("expected near-white output, got %+v", px)
	}
}

func TestMapTransparencyProducesAlpha(t *testing.T) {
	p := baseParams()
	p.Transparency = true
	m := NewMapper(p)
	px := m.Map(raster.Cell{R: 5, G: 5, B: 5, A: 1})
	if px.A == 0 {
		t.Errorf("expected nonzero alpha under transparency mode")
	}
}
