// Package gpu models the data-parallel GPU execution path described in
// spec.md §5: a tile of lanes that iterate in lockstep and exchange
// points via a cross-lane shuffle instead of per-lane random branching.
// It mirrors the teacher's render.Renderer seam (a small interface the
// engine drives, with a software implementation standing in for a real
// device) rather than binding directly to a graphics API.
package gpu

import (
	"context"

	"github.com/gazed/ember"
	"github.com/gazed/ember/iterator"
)

// Backend is the seam between the renderer and a concrete execution
// device. The core ships only Software, a CPU emulation of the tile
// model useful for testing the cross-lane shuffle's statistics; a real
// GPU backend would implement the same interface over compute kernels.
type Backend interface {
	// RunTile iterates one block of TileWidth*TileHeight lanes for
	// iterations steps each, writing one Sample per lane per step into
	// out (ordered lane-major then step-major). Returns ErrBackendFailure
	// (wrapped) if the device cannot execute the request.
	RunTile(ctx context.Context, xforms []*ember.Xform, table *iterator.Table, seed int64, steps int, out []iterator.Sample) error
}
