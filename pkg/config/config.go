// Package config loads the TOML generation document.
//
// The document shape mirrors the generation pipeline: [board], [noise],
// [vignette], [components.*], [decoupling] feed the placement core, [randomization]
// declares per-sample parameter ranges, [dataset], [cache], and [output]
// configure orchestration. Everything has a default; an empty document is a
// valid single-sample run.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
	"github.com/zradlicz/pcb-dataset-generator/pkg/placement"
)

// Dataset configures a batch run.
type Dataset struct {
	// Samples is the number of boards to generate.
	Samples int `toml:"samples"`

	// BaseSeed anchors seed derivation: sample N uses BaseSeed + N.
	BaseSeed uint64 `toml:"base_seed"`

	// OutDir receives per-sample artifacts and the run manifest.
	OutDir string `toml:"out_dir"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	// Backend is one of "file", "redis", "none".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory.
	Dir string `toml:"dir"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// TTLHours expires entries; zero keeps them forever.
	TTLHours int `toml:"ttl_hours"`
}

// Output selects which artifacts each sample emits.
type Output struct {
	// Nets generates a synthetic netlist alongside placements.
	Nets bool `toml:"nets"`

	// MaxSignalNets caps netlist size when Nets is on.
	MaxSignalNets int `toml:"max_signal_nets"`

	// SVG renders a preview image per sample.
	SVG bool `toml:"svg"`

	// Labels draws reference designators on the preview.
	Labels bool `toml:"labels"`

	// PixelsPerMM scales the preview.
	PixelsPerMM float64 `toml:"pixels_per_mm"`
}

// Components groups the per-pass budgets.
type Components struct {
	Large      placement.CategoryConfig `toml:"large"`
	Medium     placement.CategoryConfig `toml:"medium"`
	Small      placement.CategoryConfig `toml:"small"`
	Connectors placement.CategoryConfig `toml:"connectors"`
	TestPoints placement.CategoryConfig `toml:"testpoints"`
}

// File is the whole configuration document.
type File struct {
	Board    board.Board              `toml:"board"`
	Noise    placement.NoiseConfig    `toml:"noise"`
	Vignette placement.VignetteConfig `toml:"vignette"`

	Components Components `toml:"components"`

	Decoupling placement.DecouplingConfig `toml:"decoupling"`

	EdgeToleranceMM float64 `toml:"edge_tolerance_mm"`
	RetryBudget     int     `toml:"retry_budget"`

	Randomization placement.Ranges `toml:"randomization"`

	Dataset Dataset `toml:"dataset"`
	Cache   Cache   `toml:"cache"`
	Output  Output  `toml:"output"`
}

// Default returns the configuration used when no document is given: a
// 100x80mm board with a typical component mix and file-backed caching.
func Default() *File {
	return &File{
		Board:    board.Board{WidthMM: 100, HeightMM: 80},
		Vignette: placement.VignetteConfig{Enabled: true, Strength: 0.5},
		Components: Components{
			Large:      placement.CategoryConfig{Count: 3, SpacingMM: 15},
			Medium:     placement.CategoryConfig{Count: 8, SpacingMM: 6},
			Small:      placement.CategoryConfig{Count: 40, SpacingMM: 2},
			Connectors: placement.CategoryConfig{Count: 3, SpacingMM: 4},
			TestPoints: placement.CategoryConfig{Count: 8, SpacingMM: 1.5},
		},
		Decoupling: placement.DecouplingConfig{Enabled: true},
		Dataset: Dataset{Samples: 1, OutDir: "out"},
		Cache:   Cache{Backend: "file", Dir: ".pcbgen-cache"},
		Output:  Output{SVG: true, MaxSignalNets: 30},
	}
}

// Load reads and validates a TOML document. Keys absent from the document
// keep their Default values.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading config file")
	}
	return Parse(data)
}

// Parse decodes a TOML document over the defaults.
func Parse(data []byte) (*File, error) {
	f := Default()
	if err := toml.Unmarshal(data, f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing config")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks orchestration settings; the placement core re-validates
// the resolved config per sample.
func (f *File) Validate() error {
	switch f.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"cache backend must be file, redis, or none, got %q", f.Cache.Backend)
	}
	if f.Dataset.Samples < 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"dataset samples must be >= 1, got %d", f.Dataset.Samples)
	}
	if f.Cache.TTLHours < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"cache ttl must be >= 0, got %d", f.Cache.TTLHours)
	}
	if err := f.Randomization.Validate(); err != nil {
		return err
	}
	pc := f.PlacementConfig()
	return pc.Validate()
}

// PlacementConfig assembles the base placement config. The run seed is
// stamped later, per sample, by the randomization layer.
func (f *File) PlacementConfig() placement.Config {
	cfg := placement.Config{
		Board:           f.Board,
		Noise:           f.Noise,
		Vignette:        f.Vignette,
		Large:           f.Components.Large,
		Medium:          f.Components.Medium,
		Small:           f.Components.Small,
		Connectors:      f.Components.Connectors,
		TestPoints:      f.Components.TestPoints,
		Decoupling:      f.Decoupling,
		EdgeToleranceMM: f.EdgeToleranceMM,
		RetryBudget:     f.RetryBudget,
	}
	cfg.SetDefaults()
	return cfg
}
