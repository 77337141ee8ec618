package ember

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// config.go holds ambient, non-scene configuration: the XML scene
// format itself is out of scope, but a render still needs to know how
// many workers to run, what GPU tile shape to simulate, and so on.
// Loaded via yaml.v3, the same library the teacher's load package uses
// for its shader attribute descriptions (load/shd.go).

// RNGPolicy names how per-thread RNGs are derived from the render's
// single 64-bit seed. The iterator always uses the mixed derivation;
// no package reads this value.
type RNGPolicy string

const (
	// RNGPolicyMixed derives each worker's seed by XORing the render
	// seed with a per-worker constant (the default; see iterator.rng.go).
	RNGPolicyMixed RNGPolicy = "mixed"
	// RNGPolicySequential names sequential per-worker seeds starting at
	// the render seed. It passes Validate, but no seeding code uses it.
	RNGPolicySequential RNGPolicy = "sequential"
)

// EngineConfig is the renderer's ambient configuration, independent of
// any particular Ember scene. The renderer reads only Workers; the GPU
// tile size, RNG policy, default spatial filter and batch size are
// loaded and validated but not used by any package (package gpu has
// its own TileWidth/TileHeight constants).
type EngineConfig struct {
	Workers           int               `yaml:"workers"`
	GPUTileWidth      int               `yaml:"gpu_tile_width"`
	GPUTileHeight     int               `yaml:"gpu_tile_height"`
	RNGPolicy         RNGPolicy         `yaml:"rng_policy"`
	DefaultSpatial    SpatialFilterKind `yaml:"default_spatial_filter"`
	BatchSize         int               `yaml:"batch_size"`
}

// DefaultEngineConfig matches the reference CPU path: one worker per
// GOMAXPROCS, a 32x8 GPU tile, mixed RNG seeding, Gaussian spatial
// filter, ~65k-iteration batches (spec.md §5 "Suspension / blocking").
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Workers:        runtime.GOMAXPROCS(0),
		GPUTileWidth:   32,
		GPUTileHeight:  8,
		RNGPolicy:      RNGPolicyMixed,
		DefaultSpatial: FilterGaussian,
		BatchSize:      65536,
	}
}

// LoadEngineConfig reads an EngineConfig from a YAML file, filling any
// field the file omits from DefaultEngineConfig.
func LoadEngineConfig(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: reading engine config: %v", ErrConfigInvalid, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parsing engine config: %v", ErrConfigInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the structural invariants on an EngineConfig.
func (c EngineConfig) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be > 0, got %d", ErrConfigInvalid, c.Workers)
	}
	if c.GPUTileWidth <= 0 || c.GPUTileHeight <= 0 {
		return fmt.Errorf("%w: gpu tile dimensions must be positive, got %dx%d", ErrConfigInvalid, c.GPUTileWidth, c.GPUTileHeight)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be > 0, got %d", ErrConfigInvalid, c.BatchSize)
	}
	return nil
}
