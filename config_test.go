package ember

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultEngineConfigValidates(t *testing.T) {
	cfg := DefaultEngineConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultEngineConfig() failed validation: %v", err)
	}
}

func TestEngineConfigValidateRejectsBadFields(t *testing.T) {
	cases := []EngineConfig{
		{Workers: 0, GPUTileWidth: 1, GPUTileHeight: 1, BatchSize: 1},
		{Workers: 1, GPUTileWidth: 0, GPUTileHeight: 1, BatchSize: 1},
		{Workers: 1, GPUTileWidth: 1, GPUTileHeight: 1, BatchSize: 0},
	}
	for i, c := range cases {
		if err := c.Validate(); !errors.Is(err, ErrConfigInvalid) {
			t.Errorf("case %d: Validate() = %v, want ErrConfigInvalid", i, err)
		}
	}
}

func TestLoadEngineConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	if err := os.WriteFile(path, []byte("workers: 4\nbatch_size: 1000\n"), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	cfg, err := LoadEngineConfig(path)
	if err != nil {
		t.Fatalf("LoadEngineConfig: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.BatchSize != 1000 {
		t.Errorf("BatchSize = %d, want 1000", cfg.BatchSize)
	}
	if cfg.GPUTileWidth != DefaultEngineConfig().GPUTileWidth {
		t.Errorf("GPUTileWidth = %d, want default %d unchanged", cfg.GPUTileWidth, DefaultEngineConfig().GPUTileWidth)
	}
}

func TestLoadEngineConfigMissingFile(t *testing.T) {
	_, err := LoadEngineConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("LoadEngineConfig(missing) = %v, want ErrConfigInvalid", err)
	}
}

