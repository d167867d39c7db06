package placement

import (
	"math/rand/v2"

	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
)

// Range is a closed interval to draw a float parameter from. A nil *Range
// in Ranges means the parameter stays at its configured base value.
type Range struct {
	Min float64 `json:"min" toml:"min"`
	Max float64 `json:"max" toml:"max"`
}

func (r *Range) validate(name string) error {
	if r == nil {
		return nil
	}
	if r.Min > r.Max {
		return errors.New(errors.ErrCodeInvalidRange, "%s: min %g > max %g", name, r.Min, r.Max)
	}
	return nil
}

func (r *Range) draw(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// IntRange is the integer counterpart of Range; both bounds are inclusive.
type IntRange struct {
	Min int `json:"min" toml:"min"`
	Max int `json:"max" toml:"max"`
}

func (r *IntRange) validate(name string) error {
	if r == nil {
		return nil
	}
	if r.Min > r.Max {
		return errors.New(errors.ErrCodeInvalidRange, "%s: min %d > max %d", name, r.Min, r.Max)
	}
	return nil
}

func (r *IntRange) draw(rng *rand.Rand) int {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

// Ranges declares which parameters vary between samples and over what
// intervals. It is read-only input owned by the config loader; parameters
// without a range pass through from the base config unchanged.
type Ranges struct {
	// Enabled is the master switch. When false, Resolve is the identity
	// (apart from stamping the run seed).
	Enabled bool `json:"enabled" toml:"enabled"`

	BoardWidthMM  *Range `json:"board_width_mm,omitempty" toml:"board_width_mm"`
	BoardHeightMM *Range `json:"board_height_mm,omitempty" toml:"board_height_mm"`

	NoiseScale       *Range    `json:"noise_scale,omitempty" toml:"noise_scale"`
	NoiseOctaves     *IntRange `json:"noise_octaves,omitempty" toml:"noise_octaves"`
	NoisePersistence *Range    `json:"noise_persistence,omitempty" toml:"noise_persistence"`
	NoiseLacunarity  *Range    `json:"noise_lacunarity,omitempty" toml:"noise_lacunarity"`

	VignetteStrength *Range `json:"vignette_strength,omitempty" toml:"vignette_strength"`

	LargeCount     *IntRange `json:"large_count,omitempty" toml:"large_count"`
	MediumCount    *IntRange `json:"medium_count,omitempty" toml:"medium_count"`
	SmallCount     *IntRange `json:"small_count,omitempty" toml:"small_count"`
	ConnectorCount *IntRange `json:"connector_count,omitempty" toml:"connector_count"`
	TestPointCount *IntRange `json:"testpoint_count,omitempty" toml:"testpoint_count"`
}

// Validate checks every declared interval.
func (r Ranges) Validate() error {
	for _, c := range []struct {
		name string
		err  error
	}{
		{"board_width_mm", r.BoardWidthMM.validate("board_width_mm")},
		{"board_height_mm", r.BoardHeightMM.validate("board_height_mm")},
		{"noise_scale", r.NoiseScale.validate("noise_scale")},
		{"noise_octaves", r.NoiseOctaves.validate("noise_octaves")},
		{"noise_persistence", r.NoisePersistence.validate("noise_persistence")},
		{"noise_lacunarity", r.NoiseLacunarity.validate("noise_lacunarity")},
		{"vignette_strength", r.VignetteStrength.validate("vignette_strength")},
		{"large_count", r.LargeCount.validate("large_count")},
		{"medium_count", r.MediumCount.validate("medium_count")},
		{"small_count", r.SmallCount.validate("small_count")},
		{"connector_count", r.ConnectorCount.validate("connector_count")},
		{"testpoint_count", r.TestPointCount.validate("testpoint_count")},
	} {
		if c.err != nil {
			return c.err
		}
	}
	return nil
}

// Resolve derives the concrete configuration for one sample from a base
// config, declared ranges, and the sample's run seed. All draws come from a
// PCG stream seeded only by the run seed, in the fixed field order below, so
// the same (base, ranges, seed) triple always resolves identically. The
// stream is keyed differently from the sampler's so resolved parameters and
// placement draws stay uncorrelated.
//
// The resolved config has defaults applied and is fully validated; Resolve
// returning nil error means Generate will not fail on configuration.
func Resolve(base Config, ranges Ranges, seed uint64) (Config, error) {
	if err := ranges.Validate(); err != nil {
		return Config{}, err
	}

	cfg := base
	cfg.Seed = seed

	if ranges.Enabled {
		rng := rand.New(rand.NewPCG(seed, seed^0xfeedface))

		if r := ranges.BoardWidthMM; r != nil {
			cfg.Board.WidthMM = r.draw(rng)
		}
		if r := ranges.BoardHeightMM; r != nil {
			cfg.Board.HeightMM = r.draw(rng)
		}
		if r := ranges.NoiseScale; r != nil {
			cfg.Noise.Scale = r.draw(rng)
		}
		if r := ranges.NoiseOctaves; r != nil {
			cfg.Noise.Octaves = r.draw(rng)
		}
		if r := ranges.NoisePersistence; r != nil {
			cfg.Noise.Persistence = r.draw(rng)
		}
		if r := ranges.NoiseLacunarity; r != nil {
			cfg.Noise.Lacunarity = r.draw(rng)
		}
		if r := ranges.VignetteStrength; r != nil {
			cfg.Vignette.Strength = r.draw(rng)
			cfg.Vignette.Enabled = cfg.Vignette.Enabled || cfg.Vignette.Strength > 0
		}
		if r := ranges.LargeCount; r != nil {
			cfg.Large.Count = r.draw(rng)
		}
		if r := ranges.MediumCount; r != nil {
			cfg.Medium.Count = r.draw(rng)
		}
		if r := ranges.SmallCount; r != nil {
			cfg.Small.Count = r.draw(rng)
		}
		if r := ranges.ConnectorCount; r != nil {
			cfg.Connectors.Count = r.draw(rng)
		}
		if r := ranges.TestPointCount; r != nil {
			cfg.TestPoints.Count = r.draw(rng)
		}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
