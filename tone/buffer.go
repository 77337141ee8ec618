package tone

import (
	"image"

	"github.com/gazed/ember/raster"
)

// MapEarly runs Map over every cell of accum in place, turning it from
// linear accumulation into clipped 8-bit-equivalent values stored back
// as floats, before the spatial filter runs (spec.md §4.K "Early clip
// runs steps 1-4 in place on the accumulator before the spatial
// filter").
func (m *Mapper) MapEarly(accum *raster.Histogram) {
	for i, cell := range accum.Cells {
		px := m.Map(cell)
		accum.Cells[i] = raster.Cell{R: float64(px.R), G: float64(px.G), B: float64(px.B), A: float64(px.A)}
	}
}

// MapLate runs Map over every cell of a post-spatial-filter buffer,
// producing the final image (spec.md §4.K "late clip runs them per
// final pixel after the spatial filter").
func (m *Mapper) MapLate(final *raster.Histogram) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, final.Width, final.Height))
	for i, cell := range final.Cells {
		px := m.Map(cell)
		o := i * 4
		img.Pix[o+0] = px.R
		img.Pix[o+1] = px.G
		img.Pix[o+2] = px.B
		img.Pix[o+3] = px.A
	}
	return img
}

// CopyRaw converts an already early-clipped buffer directly to an
// image, without running Map again.
func CopyRaw(final *raster.Histogram) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, final.Width, final.Height))
	for i, cell := range final.Cells {
		o := i * 4
		img.Pix[o+0] = uint8(clampRange(cell.R, 0, 255))
		img.Pix[o+1] = uint8(clampRange(cell.G, 0, 255))
		img.Pix[o+2] = uint8(clampRange(cell.B, 0, 255))
		img.Pix[o+3] = uint8(clampRange(cell.A, 0, 255))
	}
	return img
}
