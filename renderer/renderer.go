// Package renderer is the control-surface orchestrator described in
// spec.md §6: it owns one Ember, the buffers allocated for it, and
// wires the iterator, raster, filter, and tone packages together per
// the control flow in spec.md §2. It mirrors the teacher's
// engine/frames double-buffer relationship (see the pack's frame.go)
// but is single-threaded at the orchestration level; concurrency lives
// inside iterator.Batch, and filter.ApplyDensity runs on the caller's
// goroutine.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"

	"github.com/gazed/ember"
	"github.com/gazed/ember/filter"
	"github.com/gazed/ember/gpu"
	"github.com/gazed/ember/iterator"
	"github.com/gazed/ember/raster"
	"github.com/gazed/ember/tone"
)

// fuseIterations is the number of discarded warm-up steps each worker
// runs before it starts writing samples (spec.md §4.E "Fuse"). The
// reference renderer this core is grounded on defaults to 20; spec.md
// leaves the exact count to the implementer.
const fuseIterations = 20

// spatialSupport maps a spatial filter kind to its natural half-width
// in samples, used to size the discrete kernel (spec.md §4.J). Kinds
// not listed default to 1 (a compact, non-ringing footprint).
var spatialSupport = map[ember.SpatialFilterKind]float64{
	ember.FilterBSpline:  2,
	ember.FilterLanczos2: 2,
	ember.FilterLanczos3: 3,
	ember.FilterMitchell: 2,
	ember.FilterCatrom:   2,
}

func supportFor(kind ember.SpatialFilterKind) float64 {
	if s, ok := spatialSupport[kind]; ok {
		return s
	}
	return 1
}

// Renderer drives one Ember through the control surface of spec.md §6:
// SetEmber/Run/Abort/Progress/ReadFinal. It is safe for one caller to
// drive at a time; it does not itself provide cross-goroutine access
// beyond what Abort/Progress need.
type Renderer struct {
	cfg     ember.EngineConfig
	logger  *slog.Logger
	backend gpu.Backend // optional; nil means the CPU iterator path only.

	mu      sync.Mutex
	flame   *ember.Ember
	action  ember.Action
	state   ember.State
	samples int  // temporal samples accumulated into the current histogram.
	hasXaos bool // set by allocate; the GPU backend can't model per-lane xaos selection.

	hist   *raster.Histogram
	accum  *raster.Histogram
	final  *raster.Histogram
	image  *image.NRGBA

	table  *iterator.Table
	cam    *iterator.Camera
	mapper *raster.Mapper
	bank   *filter.DensityBank
	kernel *filter.SpatialKernel
	tm     *tone.Mapper

	stats ember.Stats

	// cancelMu guards cancel/aborted separately from mu, so Abort can
	// reach an in-flight Run from another goroutine without waiting for
	// Run's own lock to free up (spec.md §5 "Cancellation / timeout").
	cancelMu sync.Mutex
	cancel   context.CancelFunc
	aborted  bool
}

// New returns a Renderer using cfg for its ambient concurrency/backend
// settings. A nil logger defaults to slog.Default() (spec.md ambient
// stack: "renderer.Renderer accepts an optional *slog.Logger").
func New(cfg ember.EngineConfig, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{cfg: cfg, logger: logger}
}

// SetBackend installs a gpu.Backend to drive iteration instead of the
// CPU worker pool (spec.md §5 "GPU path"). It only engages for embers
// without xaos, a final xform, or an enabled camera, since
// gpu.Backend.RunTile models none of those (see gpu.Software's doc
// comment); runIterate falls back to the CPU path otherwise.
func (r *Renderer) SetBackend(b gpu.Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend = b
}

// SetEmber validates e and resolves the requested action against the
// renderer's current state (spec.md §6 "Control surface", §7
// "ConfigInvalid"). On ErrConfigInvalid the renderer keeps its prior
// state untouched. A resolved FullRender reallocates every buffer and
// rebuilds every precomputed table; the other actions reuse whatever
// the previous FullRender (or KeepIterating/FilterAndAccum) built,
// only swapping in e for the parameter reads each stage needs (tone
// settings, palette, filter radii).
func (r *Renderer) SetEmber(e *ember.Ember, requested ember.Action) error {
	if err := e.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	resolved := ember.ResolveAction(requested, r.state, r.samples)
	if resolved != requested {
		r.logger.Debug(ember.InvalidTransitionError(requested, r.state).Error(), "samples", r.samples, "resolved", resolved)
	}

	if resolved == ember.FullRender {
		if err := r.allocate(e); err != nil {
			return err
		}
		r.samples = 0
		r.state = ember.Idle
	}
	r.flame = e
	r.action = resolved
	r.tm = tone.NewMapper(e.Tone)
	return nil
}

// allocate (re)builds every buffer and precomputed table sized off e.
// Called only when a FullRender is about to run.
func (r *Renderer) allocate(e *ember.Ember) error {
	bw, bh := e.BufferWidth(), e.BufferHeight()
	const maxCells = 1 << 28 // guards against pathological supersample/gutter combinations.
	if int64(bw)*int64(bh) > maxCells {
		return fmt.Errorf("%w: buffer %dx%d exceeds the allocation ceiling", ember.ErrResourceExhausted, bw, bh)
	}

	weights := make([]float64, len(e.Xforms))
	xaos := make([][]float64, len(e.Xforms))
	for i, x := range e.Xforms {
		weights[i] = x.Weight
		xaos[i] = x.Xaos
	}
	hasXaos := false
	for _, row := range xaos {
		if row != nil {
			hasXaos = true
		}
	}
	if !hasXaos {
		xaos = nil
	}
	r.hasXaos = hasXaos

	bank, err := filter.BuildDensityBank(e.Density.MinRadius, e.Density.MaxRadius, e.Density.Curve, e.Supersample)
	if err != nil {
		return fmt.Errorf("%w: %v", ember.ErrResourceExhausted, err)
	}

	aspect := 1.0
	if e.OrigHeight > 0 && e.OrigWidth > 0 {
		aspect = float64(e.OrigWidth) / float64(e.OrigHeight)
	}
	kernel := filter.BuildSpatialKernel(e.Spatial.Kind, supportFor(e.Spatial.Kind), e.Spatial.Radius, aspect, e.Supersample)

	px := e.PixelsPerUnit * e.Zoom * float64(e.Supersample)
	mapper := raster.NewMapper(e.CenterX, e.CenterY, px, px, e.Rotation, bw, bh)

	var cam *iterator.Camera
	if e.Camera.Enabled() {
		cam = iterator.NewCamera(e.Camera.Yaw, e.Camera.Pitch, e.Camera.ZPos, e.Camera.Perspective, e.Camera.DepthBlur)
	}

	r.hist = raster.NewHistogram(bw, bh)
	r.accum = raster.NewHistogram(bw, bh)
	r.final = nil
	r.image = nil
	r.table = iterator.BuildTable(weights, xaos)
	r.cam = cam
	r.mapper = mapper
	r.bank = bank
	r.kernel = kernel
	r.stats = ember.Stats{}
	return nil
}

// Run executes whatever stages the last SetEmber call resolved,
// advancing r.state forward by one full pipeline step (spec.md §6
// "run() -> status"). seed derives every per-thread RNG (spec.md §6
// "Random seed").
func (r *Renderer) Run(ctx context.Context, seed int64) (Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.flame == nil {
		return StatusDone, fmt.Errorf("%w: no ember set", ember.ErrConfigInvalid)
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancelMu.Lock()
	r.cancel = cancel
	alreadyAborted := r.aborted
	r.aborted = false
	r.cancelMu.Unlock()
	if alreadyAborted {
		// Abort landed before this Run call installed its cancel func
		// (e.g. called from another goroutine right after SetEmber);
		// honor it immediately rather than losing the request.
		cancel()
	}
	defer func() {
		r.cancelMu.Lock()
		r.cancel = nil
		r.cancelMu.Unlock()
	}()

	doIterate := r.action == ember.FullRender || r.action == ember.KeepIterating
	doFilter := r.action == ember.FullRender || r.action == ember.FilterAndAccum
	doTone := r.action == ember.FullRender || r.action == ember.FilterAndAccum || r.action == ember.AccumOnly

	if doIterate {
		if err := r.runIterate(runCtx, seed); err != nil {
			if r.checkAborted(err) {
				return StatusAborted, nil
			}
			return StatusDone, err
		}
		r.state = ember.IterDone
		switch r.action {
		case ember.FullRender:
			r.samples = 1
		case ember.KeepIterating:
			r.samples++
		}
	}
	if r.isAborted(runCtx) {
		return StatusAborted, nil
	}

	if doFilter {
		r.runFilter()
		r.state = ember.FilterDone
	}
	if r.isAborted(runCtx) {
		return StatusAborted, nil
	}

	if doTone {
		r.runTone()
		r.state = ember.AccumDone
	}
	return StatusDone, nil
}

func (r *Renderer) checkAborted(err error) bool {
	return errors.Is(err, context.Canceled)
}

func (r *Renderer) isAborted(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (r *Renderer) runIterate(ctx context.Context, seed int64) error {
	e := r.flame
	if r.backend != nil && !r.hasXaos && e.Final == nil && !e.Camera.Enabled() {
		return r.runIterateGPU(ctx, seed)
	}

	total := int(math.Round(e.Quality * float64(e.Width*e.Height)))
	if total < 1 {
		total = 1
	}
	workers := r.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	per := total / workers
	if per < 1 {
		per = 1
	}

	jobs := make([]iterator.Job, workers)
	for w := range jobs {
		jobs[w] = iterator.Job{Out: make([]iterator.Sample, per), Fuse: fuseIterations, Seed: seed, WorkerID: w}
	}

	var finalParams iterator.FinalXformParams
	if e.Final != nil {
		finalParams = iterator.FinalXformParams{Xform: e.Final, Opacity: e.Final.Opacity, Only: e.FinalXformOnly}
	}

	stats, err := iterator.Batch(ctx, e.Xforms, finalParams, r.table, r.cam, jobs)
	if err != nil {
		return err
	}
	r.stats.TotalIterations += stats.TotalIterations
	r.stats.BadPoints += stats.BadPoints
	if stats.BadPoints > 0 {
		r.logger.Debug("bad points recovered during iteration", "count", stats.BadPoints, "total", stats.TotalIterations)
	}

	pal := e.EffectivePalette()
	for _, job := range jobs {
		for _, s := range job.Out {
			opacity := 1.0
			if s.LastXform >= 0 && s.LastXform < len(e.Xforms) {
				opacity = e.Xforms[s.LastXform].Opacity
			}
			r.hist.Accumulate(r.mapper, &pal, e.PaletteLookup, s.X, s.Y, s.Color, opacity)
		}
	}
	return nil
}

// runIterateGPU drives the configured gpu.Backend instead of the CPU
// worker pool. The backend produces TileWidth*TileHeight lanes per
// step with no fuse phase of its own, so every lane's first few
// samples are accepted as part of the tile's warm-up (spec.md §5 "GPU
// path" accepts this as a property of lockstep execution, not an
// error).
func (r *Renderer) runIterateGPU(ctx context.Context, seed int64) error {
	e := r.flame
	total := int(math.Round(e.Quality * float64(e.Width*e.Height)))
	if total < 1 {
		total = 1
	}
	steps := total / gpu.LanesPerTile
	if steps < 1 {
		steps = 1
	}

	out := make([]iterator.Sample, gpu.LanesPerTile*steps)
	if err := r.backend.RunTile(ctx, e.Xforms, r.table, seed, steps, out); err != nil {
		return err
	}
	r.stats.TotalIterations += int64(len(out))

	pal := e.EffectivePalette()
	for _, s := range out {
		opacity := 1.0
		if s.LastXform >= 0 && s.LastXform < len(e.Xforms) {
			opacity = e.Xforms[s.LastXform].Opacity
		}
		r.hist.Accumulate(r.mapper, &pal, e.PaletteLookup, s.X, s.Y, s.Color, opacity)
	}
	return nil
}

// k1k2 derives the density filter's brightness-driven log_scale
// constants (spec.md §4.H/I), resolving the Open Question of their
// exact formula per DESIGN.md "density filter K1/K2".
func (r *Renderer) k1k2() (float64, float64) {
	e := r.flame
	brightness, contrast := e.Tone.Brightness, e.Tone.Contrast
	if brightness <= 0 {
		brightness = 4
	}
	if contrast <= 0 {
		contrast = 1
	}
	k1 := brightness * 268.0 / 256.0
	k2 := 1.0 / (contrast * e.Quality * float64(e.Supersample*e.Supersample))
	return k1, k2
}

func (r *Renderer) runFilter() {
	r.accum.Reset()
	k1, k2 := r.k1k2()
	filter.ApplyDensity(r.bank, r.hist, r.accum, r.flame.Supersample, k1, k2)
}

func (r *Renderer) runTone() {
	e := r.flame
	gutter := e.GutterCells()

	if e.Tone.EarlyClip {
		r.tm.MapEarly(r.accum)
		r.final = filter.Convolve(r.kernel, r.accum, gutter, e.Supersample, e.Width, e.Height)
		r.image = tone.CopyRaw(r.final)
	} else {
		r.final = filter.Convolve(r.kernel, r.accum, gutter, e.Supersample, e.Width, e.Height)
		r.image = r.tm.MapLate(r.final)
	}
}

// Abort requests cooperative cancellation of an in-flight Run call.
// The iterator checks for it between iteration steps and Run checks
// between stages; the density and spatial filters run to completion
// once started (spec.md §5 "Cancellation / timeout", §7 "Aborted"). It is safe to call whether
// or not a render is in progress.
func (r *Renderer) Abort() {
	r.cancelMu.Lock()
	defer r.cancelMu.Unlock()
	r.aborted = true
	if r.cancel != nil {
		r.cancel()
	}
}

// Progress returns a snapshot of the current render's counters
// (spec.md §6 "progress()").
func (r *Renderer) Progress() ember.Stats {
	r.mu.Lock()
	s := r.stats
	s.State = r.state
	s.SamplesDone = r.samples
	r.mu.Unlock()

	r.cancelMu.Lock()
	s.Aborted = r.aborted
	r.cancelMu.Unlock()
	return s
}

// ReadFinal copies the rendered image into buf as a contiguous
// W_f x H_f x C buffer, R,G,B[,A] per pixel (spec.md §6 "Image
// output"). buf must be at least Width*Height*Channels bytes. Rows are
// top-to-bottom unless the ember requests YUp.
func (r *Renderer) ReadFinal(buf []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.image == nil {
		return fmt.Errorf("%w: no final image available, run() has not completed ACCUM_DONE", ember.ErrConfigInvalid)
	}
	e := r.flame
	channels := e.Tone.Channels
	need := e.Width * e.Height * channels
	if len(buf) < need {
		return fmt.Errorf("%w: output buffer too small: need %d bytes, got %d", ember.ErrConfigInvalid, need, len(buf))
	}

	for row := 0; row < e.Height; row++ {
		srcRow := row
		if e.YUp {
			srcRow = e.Height - 1 - row
		}
		for col := 0; col < e.Width; col++ {
			o := (row*e.Width + col) * channels
			i := r.image.PixOffset(col, srcRow)
			buf[o+0] = r.image.Pix[i+0]
			buf[o+1] = r.image.Pix[i+1]
			buf[o+2] = r.image.Pix[i+2]
			if channels == 4 {
				buf[o+3] = r.image.Pix[i+3]
			}
		}
	}
	return nil
}
