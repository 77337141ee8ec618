package ember

import "errors"

// errors.go collects the package's sentinel errors, following the
// teacher's plain fmt.Errorf/%w wrapping convention (see eng.go in the
// original gazed/vu tree) rather than a bespoke error-code hierarchy.

// newSentinel is a small helper so sentinel declarations below read as
// one line each; it is just errors.New under another name.
func newSentinel(msg string) error { return errors.New(msg) }

var (
	// ErrConfigInvalid is wrapped and returned when an Ember or
	// EngineConfig fails validation (spec.md §7).
	ErrConfigInvalid = newSentinel("ember: invalid configuration")

	// ErrResourceExhausted is wrapped and returned when a buffer
	// allocation would exceed the renderer's fixed cell-count ceiling or
	// the density filter would need more than filter.MaxKernels kernels
	// (spec.md §5, §7).
	ErrResourceExhausted = newSentinel("ember: resource exhausted")

	// ErrBackendFailure is wrapped and returned when a gpu.Backend
	// reports a failure the renderer cannot recover from (spec.md §7).
	ErrBackendFailure = newSentinel("ember: backend failure")
)
