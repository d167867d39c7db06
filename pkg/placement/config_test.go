package placement

import (
	"testing"

	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
)

func baseConfig() Config {
	return Config{
		Board:  board.Board{WidthMM: 100, HeightMM: 80},
		Noise:  validNoise(),
		Large:  CategoryConfig{Count: 3, SpacingMM: 15},
		Medium: CategoryConfig{Count: 8, SpacingMM: 6},
		Small:  CategoryConfig{Count: 30, SpacingMM: 2},
		Seed:   42,
	}
}

func TestConfigSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	if cfg.Noise.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", cfg.Noise.Scale, DefaultScale)
	}
	if cfg.Noise.Octaves != DefaultOctaves {
		t.Errorf("Octaves = %v, want %v", cfg.Noise.Octaves, DefaultOctaves)
	}
	if cfg.Noise.Persistence != DefaultPersistence {
		t.Errorf("Persistence = %v, want %v", cfg.Noise.Persistence, DefaultPersistence)
	}
	if cfg.Noise.Lacunarity != DefaultLacunarity {
		t.Errorf("Lacunarity = %v, want %v", cfg.Noise.Lacunarity, DefaultLacunarity)
	}
	if cfg.RetryBudget != DefaultRetryBudget {
		t.Errorf("RetryBudget = %v, want %v", cfg.RetryBudget, DefaultRetryBudget)
	}

	// Explicit values survive.
	cfg = baseConfig()
	cfg.Noise.Scale = 25
	cfg.RetryBudget = 10
	cfg.SetDefaults()
	if cfg.Noise.Scale != 25 || cfg.RetryBudget != 10 {
		t.Errorf("SetDefaults overwrote explicit values: scale=%v budget=%v", cfg.Noise.Scale, cfg.RetryBudget)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode errors.Code
	}{
		{"zero-width board", func(c *Config) { c.Board.WidthMM = 0 }, errors.ErrCodeInvalidBoard},
		{"bad octaves", func(c *Config) { c.Noise.Octaves = 0 }, errors.ErrCodeInvalidNoise},
		{"bad scale", func(c *Config) { c.Noise.Scale = -1 }, errors.ErrCodeInvalidNoise},
		{"vignette strength too high", func(c *Config) { c.Vignette.Strength = 1.5 }, errors.ErrCodeInvalidConfig},
		{"negative count", func(c *Config) { c.Medium.Count = -1 }, errors.ErrCodeInvalidCategory},
		{"negative spacing", func(c *Config) { c.Small.SpacingMM = -0.5 }, errors.ErrCodeInvalidCategory},
		{"negative connector count", func(c *Config) { c.Connectors.Count = -2 }, errors.ErrCodeInvalidCategory},
		{"negative edge tolerance", func(c *Config) { c.EdgeToleranceMM = -1 }, errors.ErrCodeInvalidConfig},
		{"zero retry budget", func(c *Config) { c.RetryBudget = 0 }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.SetDefaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %v, want %v", got, tt.wantCode)
			}
		})
	}

	cfg := baseConfig()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestConfigMaxSpacing(t *testing.T) {
	cfg := baseConfig()
	if got := cfg.MaxSpacing(); got != 15 {
		t.Errorf("MaxSpacing() = %v, want 15", got)
	}

	cfg.TestPoints.SpacingMM = 20
	if got := cfg.MaxSpacing(); got != 20 {
		t.Errorf("MaxSpacing() with testpoint spacing 20 = %v, want 20", got)
	}
}

func TestConfigNoiseSeed(t *testing.T) {
	cfg := baseConfig()
	if got := cfg.NoiseSeed(); got != 42 {
		t.Errorf("NoiseSeed() = %v, want run seed 42", got)
	}

	override := int64(99)
	cfg.Noise.Seed = &override
	if got := cfg.NoiseSeed(); got != 99 {
		t.Errorf("NoiseSeed() with override = %v, want 99", got)
	}
}

func TestConfigSpacingMonotone(t *testing.T) {
	cfg := baseConfig()
	if !cfg.SpacingMonotone() {
		t.Error("large >= medium >= small spacing reported non-monotone")
	}

	cfg.Small.SpacingMM = 10
	if cfg.SpacingMonotone() {
		t.Error("small > medium spacing reported monotone")
	}
}
