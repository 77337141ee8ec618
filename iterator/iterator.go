package iterator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gazed/ember"
)

// maxRetries is the number of times a BadPoint is resampled before the
// iterator gives up and accepts a random location outright (spec.md
// §4.E).
const maxRetries = 5

// badValueLimit is the magnitude above which a coordinate is
// considered to have escaped (spec.md §4.B step 10).
const badValueLimit = 1e10

// Sample is one entry of a caller-owned output array: the world-space
// point (camera-projected when a camera is enabled; raster.Mapper maps
// it to a cell later), its palette color index, and the xform that
// produced it (spec.md §3 Point, §4.G).
type Sample struct {
	X, Y      float64
	Color     float64
	LastXform int
}

// Stats reports the informational counters spec.md §4.E requires:
// total iterations attempted and the number rejected as BadPoint.
type Stats struct {
	TotalIterations int64
	BadPoints       int64
}

// Job describes one worker's share of a batch: its own output slice
// and fuse/iteration counts. Workers never communicate during
// iteration (spec.md §5 "Scheduling").
type Job struct {
	Out      []Sample
	Fuse     int
	Seed     int64
	WorkerID int
}

// FinalXformParams configures how the optional final xform
// contributes samples.
type FinalXformParams struct {
	Xform   *ember.Xform
	Opacity float64
	// Only, if set, renders every sample from Xform's output, bypassing
	// the opacity gate (spec.md §4.E; supplemented "Final-xform-only
	// render" in SPEC_FULL.md).
	Only bool
}

// Batch runs the chaotic game for each Job concurrently, following a
// worker-pool pattern of independent goroutines draining
// disjoint slices rather than a shared channel of results. xforms is
// the full ordered xform list (used both for Apply and as the
// selection table's index space). cam, if non-nil and enabled,
// projects each sample only.
func Batch(ctx context.Context, xforms []*ember.Xform, final FinalXformParams, table *Table, cam *Camera, jobs []Job) (Stats, error) {
	var total Stats
	g, ctx := errgroup.WithContext(ctx)
	results := make([]Stats, len(jobs))
	for i := range jobs {
		i := i
		g.Go(func() error {
			s, err := runWorker(ctx, xforms, final, table, cam, jobs[i])
			results[i] = s
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return total, err
	}
	for _, s := range results {
		total.TotalIterations += s.TotalIterations
		total.BadPoints += s.BadPoints
	}
	return total, nil
}

func runWorker(ctx context.Context, xforms []*ember.Xform, final FinalXformParams, table *Table, cam *Camera, job Job) (Stats, error) {
	rng := newThreadRNG(job.Seed, job.WorkerID)
	var stats Stats

	p := &ember.Point{LastXform: -1}
	p.X, p.Y = rng.Uniform11(), rng.Uniform11()

	step := func() (ok bool) {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		idx := table.Pick(p.LastXform, rng.U32n(TableSize))
		x := xforms[idx]
		out := &ember.Point{}
		stats.TotalIterations++
		if err := x.Apply(p, out, rng.Rand); err != nil {
			candidate := &ember.Point{Color: p.Color}
			resolved := false
			for r := 0; r < maxRetries; r++ {
				stats.BadPoints++
				candidate.SetXY(rng.Uniform11(), rng.Uniform11())
				stats.TotalIterations++
				retryIdx := table.Pick(-1, rng.U32n(TableSize))
				if err2 := xforms[retryIdx].Apply(candidate, out, rng.Rand); err2 == nil {
					idx = retryIdx
					resolved = true
					break
				}
			}
			if !resolved {
				out.SetXY(rng.Uniform11(), rng.Uniform11())
				out.Color = p.Color
			}
		}
		out.LastXform = idx
		p.Set(out)
		return true
	}

	for i := 0; i < job.Fuse; i++ {
		if !step() {
			return stats, ctx.Err()
		}
	}

	for i := 0; i < len(job.Out); i++ {
		if !step() {
			return stats, ctx.Err()
		}
		sx, sy, scolor, sxf := p.X, p.Y, p.Color, p.LastXform
		if final.Xform != nil && (final.Only || rng.Float64() < final.Opacity) {
			out := &ember.Point{}
			if err := final.Xform.Apply(p, out, rng.Rand); err == nil {
				sx, sy, scolor = out.X, out.Y, out.Color
			}
		}
		if cam != nil && cam.Enabled() {
			sx, sy = cam.Project(sx, sy, p.Z, rng.Float64(), rng.Float64())
		}
		job.Out[i] = Sample{X: sx, Y: sy, Color: scolor, LastXform: sxf}
	}
	return stats, nil
}
