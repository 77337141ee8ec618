package gpu

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/gazed/ember"
	"github.com/gazed/ember/iterator"
)

// TileWidth and TileHeight match the reference 32x8 = 256 lane block
// described in spec.md §5 "GPU path".
const (
	TileWidth  = 32
	TileHeight = 8
	LanesPerTile = TileWidth * TileHeight
)

// Software is a CPU emulation of the tile/lane execution model: every
// lane applies one xform per step to its own point, writes it to a
// shared scratch array, then reads back a neighbor's point through a
// deterministic permutation keyed by the step index. This is how the
// reference design gets per-lane randomization without divergent
// branches (spec.md §5).
type Software struct{}

// RunTile implements Backend by simulating LanesPerTile lanes in
// lockstep for steps iterations each. xaos is intentionally
// unsupported here: when in use each lane must pick its own xform
// independently (spec.md §5 "Exception: when xaos is in use ..."),
// which this shared-table emulation does not model; callers with xaos
// configured should use the CPU iterator path instead. RunTile also
// takes no camera and no final xform: samples are the raw lane points.
func (Software) RunTile(ctx context.Context, xforms []*ember.Xform, table *iterator.Table, seed int64, steps int, out []iterator.Sample) error {
	if len(out) < LanesPerTile*steps {
		return fmt.Errorf("%w: output buffer too small for %d lanes * %d steps", ember.ErrBackendFailure, LanesPerTile, steps)
	}

	points := make([]*ember.Point, LanesPerTile)
	rngs := make([]*rand.Rand, LanesPerTile)
	for lane := range points {
		rngs[lane] = rand.New(rand.NewSource(seed ^ int64(lane)*0x2545F4914F6CDD1D))
		points[lane] = &ember.Point{
			X: rngs[lane].Float64()*2 - 1,
			Y: rngs[lane].Float64()*2 - 1,
			LastXform: -1,
		}
	}

	scratch := make([]ember.Point, LanesPerTile)
	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		idx := table.Pick(-1, int(uint32(seed)+uint32(step))%iterator.TableSize)
		x := xforms[idx%len(xforms)]

		for lane := 0; lane < LanesPerTile; lane++ {
			var res ember.Point
			_ = x.Apply(points[lane], &res, rngs[lane])
			scratch[lane] = res
		}

		for lane := 0; lane < LanesPerTile; lane++ {
			src := shuffle(lane, step)
			p := scratch[src]
			p.LastXform = idx
			points[lane].Set(&p)
			out[lane*steps+step] = iterator.Sample{X: p.X, Y: p.Y, Color: p.Color, LastXform: idx}
		}
	}
	return nil
}

// shuffle returns the lane a given lane reads its post-step point from
// at the given step: a deterministic permutation so every lane agrees
// on the mapping without communication beyond the shared scratch
// array (spec.md §5 "a deterministic permutation parameterized by the
// step index").
func shuffle(lane, step int) int {
	return (lane + 1 + step%(LanesPerTile-1)) % LanesPerTile
}
