package placement

import (
	"github.com/ojrac/opensimplex-go"
)

// Field is a deterministic density field over board-local millimeter
// coordinates. It layers octaves of OpenSimplex noise: octave i contributes
// at frequency lacunarity^i / scale with amplitude persistence^i, and the
// sum is normalized so output stays in [0, 1] regardless of octave count.
//
// A Field is immutable after construction and safe for concurrent reads.
// Identical (parameters, seed, coordinate) always yields identical output;
// dataset reproducibility depends on this.
type Field struct {
	noise   opensimplex.Noise
	scale   float64
	octaves int
	persist float64
	lacun   float64
	ampSum  float64
}

// NewField constructs a density field. Octaves < 1 or scale <= 0 are
// configuration errors, reported here rather than at sampling time.
func NewField(cfg NoiseConfig, seed int64) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ampSum := 0.0
	amp := 1.0
	for range cfg.Octaves {
		ampSum += amp
		amp *= cfg.Persistence
	}

	return &Field{
		noise:   opensimplex.New(seed),
		scale:   cfg.Scale,
		octaves: cfg.Octaves,
		persist: cfg.Persistence,
		lacun:   cfg.Lacunarity,
		ampSum:  ampSum,
	}, nil
}

// Sample returns the density at (x, y) in [0, 1].
func (f *Field) Sample(x, y float64) float64 {
	freq := 1.0 / f.scale
	amp := 1.0
	sum := 0.0
	for range f.octaves {
		sum += amp * f.noise.Eval2(x*freq, y*freq)
		freq *= f.lacun
		amp *= f.persist
	}

	// Eval2 stays within [-1, 1], so the normalized sum does too; map it
	// onto [0, 1].
	v := (sum/f.ampSum + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
