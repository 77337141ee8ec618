// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package ember

// point.go - the Point type mutated in place by the chaotic game.
// Mirrors the teacher's mutate-in-place, receiver-returning style
// (see math/lin.V3) rather than allocating a new point per step.

// Point is the running state of the chaotic-game iteration: a world
// space location, a scalar color index used as a palette lookup key,
// and the index of the xform that produced it (spec.md §3 Point).
type Point struct {
	X, Y, Z    float64
	Color      float64 // palette lookup key, in [0,1].
	LastXform  int     // index of the xform that produced this point, -1 if none yet.
}

// Set copies a into p and returns p, following the engine's
// set-returns-receiver convention.
func (p *Point) Set(a *Point) *Point {
	*p = *a
	return p
}

// SetXY overwrites p's location, leaving color and xform bookkeeping
// untouched. Used by the iterator's bad-point reseed path (spec.md
// §4.E), which replaces the location but preserves color.
func (p *Point) SetXY(x, y float64) *Point {
	p.X, p.Y = x, y
	return p
}
