package iterator

import (
	"math"

	"github.com/gazed/ember/math/lin"
)

// Camera applies the optional 3D projection (yaw/pitch rotation,
// perspective divide, depth-blur jitter) to a sample point without
// touching the feedback point used by the next iteration step
// (spec.md §4.E).
type Camera struct {
	Yaw, Pitch  float64
	ZPos        float64
	Perspective float64
	DepthBlur   float64

	sinYaw, cosYaw     float64
	sinPitch, cosPitch float64
}

// NewCamera precomputes the rotation trig once since every sample
// reuses it.
func NewCamera(yaw, pitch, zpos, perspective, depthBlur float64) *Camera {
	c := &Camera{Yaw: yaw, Pitch: pitch, ZPos: zpos, Perspective: perspective, DepthBlur: depthBlur}
	c.sinYaw, c.cosYaw = math.Sincos(yaw)
	c.sinPitch, c.cosPitch = math.Sincos(pitch)
	return c
}

// Enabled reports whether the camera has any non-zero projection
// field (spec.md §4.E "if any 3D camera flag is non-zero").
func (c *Camera) Enabled() bool {
	return c.Yaw != 0 || c.Pitch != 0 || c.ZPos != 0 || c.Perspective != 0 || c.DepthBlur != 0
}

// Project rotates (x,y,z) by yaw then pitch, jitters the rotated x/y
// with depth-blur sampled from two uniforms u0, u1 via
// sincos(2*pi*u0)*0.1*DepthBlur*z*u1, then applies the perspective
// divide relative to ZPos to the jittered sum (spec.md §4.E). The
// rotated point is carried in a lin.V3 so the two plane rotations
// below read as vector component swaps rather than six independent
// scalars.
func (c *Camera) Project(x, y, z, u0, u1 float64) (px, py float64) {
	p := lin.V3{X: x, Y: y, Z: z}

	// Yaw: rotate about the vertical (y) axis in the xz plane.
	rotYaw := lin.V3{
		X: p.X*c.cosYaw + p.Z*c.sinYaw,
		Y: p.Y,
		Z: -p.X*c.sinYaw + p.Z*c.cosYaw,
	}

	// Pitch: rotate about the horizontal (x) axis in the yz plane.
	rotated := lin.V3{
		X: rotYaw.X,
		Y: rotYaw.Y*c.cosPitch - rotYaw.Z*c.sinPitch,
		Z: rotYaw.Y*c.sinPitch + rotYaw.Z*c.cosPitch,
	}

	jx, jy := rotated.X, rotated.Y
	if c.DepthBlur != 0 {
		k := 0.1 * c.DepthBlur
		s, cs := math.Sincos(2 * math.Pi * u0)
		dr := k * rotated.Z * u1
		jx += dr * s
		jy += dr * cs
	}

	depth := c.ZPos - rotated.Z
	scale := 1.0
	if c.Perspective != 0 && depth != 0 {
		scale = c.Perspective / depth
	}
	screen := lin.V3{}
	screen.Scale(&lin.V3{X: jx, Y: jy}, scale)
	px, py = screen.X, screen.Y
	return px, py
}
