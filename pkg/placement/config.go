package placement

import (
	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
)

// Default values applied by Config.SetDefaults. These match the tuned
// parameters the dataset was originally generated with.
const (
	// DefaultRetryBudget bounds candidate attempts per component slot.
	// Exhausting it skips the slot (under-fill), never aborts the run.
	DefaultRetryBudget = 64

	DefaultScale       = 40.0
	DefaultOctaves     = 4
	DefaultPersistence = 0.5
	DefaultLacunarity  = 2.0

	// DefaultDecapClearanceMM is the gap between a large IC body edge and
	// the center of each decoupling capacitor.
	DefaultDecapClearanceMM = 3.0
)

// NoiseConfig parameterizes the coherent-noise density field.
type NoiseConfig struct {
	// Scale is the zoom level of the noise in millimeters: coordinates are
	// divided by Scale before sampling, so larger values produce broader
	// features. Must be > 0.
	Scale float64 `json:"scale" toml:"scale"`

	// Octaves is the number of layered noise contributions. Must be >= 1.
	Octaves int `json:"octaves" toml:"octaves"`

	// Persistence is the per-octave amplitude multiplier.
	Persistence float64 `json:"persistence" toml:"persistence"`

	// Lacunarity is the per-octave frequency multiplier.
	Lacunarity float64 `json:"lacunarity" toml:"lacunarity"`

	// Seed overrides the run seed for the noise field when non-nil.
	Seed *int64 `json:"seed,omitempty" toml:"seed"`
}

// Validate checks noise parameters. Violations are configuration errors
// reported before any sampling happens.
func (n NoiseConfig) Validate() error {
	if n.Octaves < 1 {
		return errors.New(errors.ErrCodeInvalidNoise, "octaves must be >= 1, got %d", n.Octaves)
	}
	if n.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidNoise, "scale must be > 0, got %g", n.Scale)
	}
	if n.Persistence <= 0 {
		return errors.New(errors.ErrCodeInvalidNoise, "persistence must be > 0, got %g", n.Persistence)
	}
	if n.Lacunarity <= 0 {
		return errors.New(errors.ErrCodeInvalidNoise, "lacunarity must be > 0, got %g", n.Lacunarity)
	}
	return nil
}

// VignetteConfig controls the radial density falloff.
type VignetteConfig struct {
	Enabled bool `json:"enabled" toml:"enabled"`

	// Strength in [0, 1]: 0 is the identity, 1 fully suppresses density at
	// the board's farthest corner.
	Strength float64 `json:"strength" toml:"strength"`
}

// Validate checks the vignette strength bounds.
func (v VignetteConfig) Validate() error {
	if v.Strength < 0 || v.Strength > 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"vignette strength must be in [0,1], got %g", v.Strength)
	}
	return nil
}

// CategoryConfig is the per-category placement budget.
type CategoryConfig struct {
	// Count is the target number of placements. Zero means the category is
	// skipped; the final count may be lower after retry exhaustion.
	Count int `json:"count" toml:"count"`

	// SpacingMM is the minimum center-to-center spacing radius. Pairs of
	// placements must be at least max(spacingA, spacingB) apart.
	SpacingMM float64 `json:"spacing_mm" toml:"spacing_mm"`

	// Types is the component vocabulary for this category. Defaults to the
	// library vocabulary when empty.
	Types []string `json:"types,omitempty" toml:"types"`
}

// DecouplingConfig controls the bypass-capacitor pass that follows the
// size-category passes. Each large IC gets two to four capacitors at the
// cardinal offsets around its body.
type DecouplingConfig struct {
	Enabled bool `json:"enabled" toml:"enabled"`

	// SpacingMM is the collision radius for the capacitors. Zero inherits
	// the small-category spacing.
	SpacingMM float64 `json:"spacing_mm" toml:"spacing_mm"`

	// ClearanceMM is the gap between the IC body edge and each capacitor
	// center. Zero means DefaultDecapClearanceMM.
	ClearanceMM float64 `json:"clearance_mm" toml:"clearance_mm"`
}

// Validate checks the decoupling pass parameters.
func (d DecouplingConfig) Validate() error {
	if d.SpacingMM < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"decoupling spacing must be >= 0, got %g", d.SpacingMM)
	}
	if d.ClearanceMM < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"decoupling clearance must be >= 0, got %g", d.ClearanceMM)
	}
	return nil
}

func (c CategoryConfig) validate(name string) error {
	if c.Count < 0 {
		return errors.New(errors.ErrCodeInvalidCategory,
			"%s count must be >= 0, got %d", name, c.Count)
	}
	if c.SpacingMM < 0 {
		return errors.New(errors.ErrCodeInvalidCategory,
			"%s spacing must be >= 0, got %g", name, c.SpacingMM)
	}
	return nil
}

// Config is the fully resolved parameter set for one placement pass.
// It is created once per sample (directly, or via randomize.Resolve) and is
// immutable for the duration of that sample.
type Config struct {
	Board    board.Board    `json:"board" toml:"board"`
	Noise    NoiseConfig    `json:"noise" toml:"noise"`
	Vignette VignetteConfig `json:"vignette" toml:"vignette"`

	Large  CategoryConfig `json:"large" toml:"large"`
	Medium CategoryConfig `json:"medium" toml:"medium"`
	Small  CategoryConfig `json:"small" toml:"small"`

	// Connectors and TestPoints are optional extra passes restored from the
	// full generator: connectors go in the edge strips, test points cluster
	// near interior components.
	Connectors CategoryConfig `json:"connectors" toml:"connectors"`
	TestPoints CategoryConfig `json:"testpoints" toml:"testpoints"`

	// Decoupling places bypass capacitors around each large IC after the
	// category passes.
	Decoupling DecouplingConfig `json:"decoupling" toml:"decoupling"`

	// EdgeToleranceMM permits a placement footprint to overflow the board
	// edge by up to this much. Zero (the default) forbids overflow.
	EdgeToleranceMM float64 `json:"edge_tolerance_mm" toml:"edge_tolerance_mm"`

	// RetryBudget is the per-slot candidate attempt bound.
	RetryBudget int `json:"retry_budget" toml:"retry_budget"`

	// Seed drives every random draw of the pass: sampler candidates,
	// rotations, type selection, and the noise field unless Noise.Seed
	// overrides it.
	Seed uint64 `json:"seed" toml:"seed"`
}

// Category returns the budget for a size category.
func (c *Config) Category(cat SizeCategory) CategoryConfig {
	switch cat {
	case SizeLarge:
		return c.Large
	case SizeMedium:
		return c.Medium
	default:
		return c.Small
	}
}

// MaxSpacing returns the largest configured spacing radius across all
// passes. The collision grid uses it as the cell size.
func (c *Config) MaxSpacing() float64 {
	spacing := c.Large.SpacingMM
	for _, s := range []float64{c.Medium.SpacingMM, c.Small.SpacingMM, c.Connectors.SpacingMM, c.TestPoints.SpacingMM, c.Decoupling.SpacingMM} {
		if s > spacing {
			spacing = s
		}
	}
	return spacing
}

// NoiseSeed returns the seed for the noise field: the explicit override if
// set, otherwise the run seed.
func (c *Config) NoiseSeed() int64 {
	if c.Noise.Seed != nil {
		return *c.Noise.Seed
	}
	return int64(c.Seed)
}

// SetDefaults fills zero-valued noise parameters and the retry budget.
func (c *Config) SetDefaults() {
	if c.Noise.Scale == 0 {
		c.Noise.Scale = DefaultScale
	}
	if c.Noise.Octaves == 0 {
		c.Noise.Octaves = DefaultOctaves
	}
	if c.Noise.Persistence == 0 {
		c.Noise.Persistence = DefaultPersistence
	}
	if c.Noise.Lacunarity == 0 {
		c.Noise.Lacunarity = DefaultLacunarity
	}
	if c.RetryBudget == 0 {
		c.RetryBudget = DefaultRetryBudget
	}
}

// Validate checks the whole configuration. It fails fast: the first
// violation is returned and nothing is sampled.
func (c *Config) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return err
	}
	if err := c.Noise.Validate(); err != nil {
		return err
	}
	if err := c.Vignette.Validate(); err != nil {
		return err
	}
	for _, cat := range []struct {
		name string
		cfg  CategoryConfig
	}{
		{"large", c.Large},
		{"medium", c.Medium},
		{"small", c.Small},
		{"connectors", c.Connectors},
		{"testpoints", c.TestPoints},
	} {
		if err := cat.cfg.validate(cat.name); err != nil {
			return err
		}
	}
	if err := c.Decoupling.Validate(); err != nil {
		return err
	}
	if c.EdgeToleranceMM < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"edge tolerance must be >= 0, got %g", c.EdgeToleranceMM)
	}
	if c.RetryBudget < 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"retry budget must be >= 1, got %d", c.RetryBudget)
	}
	return nil
}

// SpacingMonotone reports whether spacing follows the domain convention
// large >= medium >= small. The convention is not enforced; callers may
// log when it is broken.
func (c *Config) SpacingMonotone() bool {
	return c.Large.SpacingMM >= c.Medium.SpacingMM &&
		c.Medium.SpacingMM >= c.Small.SpacingMM
}
