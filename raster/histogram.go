package raster

import "github.com/gazed/ember"

// Cell is one RGBA32F histogram/accumulator entry (spec.md §3
// "Histogram / Accumulator").
type Cell struct {
	R, G, B, A float64
}

// Histogram is the dense write-accumulated buffer the iterator feeds
// and the density filter later reads (spec.md §3).
type Histogram struct {
	Width, Height int
	Cells         []Cell
}

// NewHistogram allocates a zeroed buffer of the given dimensions. The
// caller is responsible for sizing it per Ember.BufferWidth/Height,
// including the density-filter gutter (spec.md §4.H "Gutter").
func NewHistogram(width, height int) *Histogram {
	return &Histogram{Width: width, Height: height, Cells: make([]Cell, width*height)}
}

// Accumulate adds one sample's palette color into the histogram,
// weighted by the opacity-derived contribution described in spec.md
// §4.G.
func (h *Histogram) Accumulate(mapper *Mapper, pal *ember.Palette, lookup ember.PaletteLookup, x, y, colorIndex, opacity float64) {
	idx, ok := mapper.Map(x, y)
	if !ok {
		return
	}
	c := pal.Lookup(colorIndex, lookup)
	viz := ember.VizAdjust(opacity)
	cell := &h.Cells[idx]
	cell.R += c.R * viz
	cell.G += c.G * viz
	cell.B += c.B * viz
	cell.A += viz
}

// Reset zeroes the buffer in place for reuse across temporal samples
// that are not being combined (e.g. after a full restart).
func (h *Histogram) Reset() {
	for i := range h.Cells {
		h.Cells[i] = Cell{}
	}
}
