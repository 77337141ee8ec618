// Package raster maps chaotic-game samples into the histogram buffer:
// the Cartesian-to-raster coordinate mapper (spec.md §4.F) and the
// palette-driven accumulator (spec.md §4.G).
package raster

import "math"

// Mapper converts world-space (x,y) into a flat histogram cell index,
// applying the camera-plane rotation described in spec.md §4.F.
type Mapper struct {
	CenterX, CenterY float64
	PxPerUnitX       float64
	PxPerUnitY       float64
	Rotation         float64

	worldLLX, worldLLY float64
	width              int // W_super, the buffer's row stride.
	height             int

	sin, cos float64
}

// NewMapper builds a Mapper for a buffer of the given dimensions. The
// world lower-left corner is derived from the center and the buffer's
// extent in world units, so (centerX, centerY) maps to the buffer's
// midpoint.
func NewMapper(centerX, centerY, pxPerUnitX, pxPerUnitY, rotation float64, width, height int) *Mapper {
	m := &Mapper{
		CenterX: centerX, CenterY: centerY,
		PxPerUnitX: pxPerUnitX, PxPerUnitY: pxPerUnitY,
		Rotation: rotation,
		width:    width, height: height,
	}
	m.sin, m.cos = math.Sincos(rotation)
	m.worldLLX = centerX - float64(width)/2/pxPerUnitX
	m.worldLLY = centerY - float64(height)/2/pxPerUnitY
	return m
}

// Map returns the flat index of (x,y) in the buffer, or ok=false if
// the rotated point falls outside [ll, ur) (spec.md §4.F).
func (m *Mapper) Map(x, y float64) (index int, ok bool) {
	dx, dy := x-m.CenterX, y-m.CenterY
	rx := dx*m.cos - dy*m.sin
	ry := dx*m.sin + dy*m.cos
	xp := rx + m.CenterX
	yp := ry + m.CenterY

	col := int(math.Floor((xp - m.worldLLX) * m.PxPerUnitX))
	row := int(math.Floor((yp - m.worldLLY) * m.PxPerUnitY))
	if col < 0 || col >= m.width || row < 0 || row >= m.height {
		return 0, false
	}
	return col + m.width*row, true
}
