package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
)

const sampleDoc = `
[board]
width_mm = 120.0
height_mm = 90.0

[noise]
scale = 30.0
octaves = 5

[vignette]
enabled = true
strength = 0.7

[components.large]
count = 4
spacing_mm = 16.0

[components.small]
count = 50
spacing_mm = 2.5
types = ["resistor_0402", "capacitor_0402"]

[decoupling]
enabled = true
clearance_mm = 4.0

[randomization]
enabled = true

[randomization.noise_scale]
min = 20.0
max = 60.0

[randomization.small_count]
min = 20
max = 60

[dataset]
samples = 10
base_seed = 1000
out_dir = "dataset"

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[output]
nets = true
svg = true
labels = true
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if f.Board.WidthMM != 120 || f.Board.HeightMM != 90 {
		t.Errorf("board = %+v, want 120x90", f.Board)
	}
	if f.Noise.Scale != 30 || f.Noise.Octaves != 5 {
		t.Errorf("noise = %+v", f.Noise)
	}
	if f.Vignette.Strength != 0.7 {
		t.Errorf("vignette strength = %g, want 0.7", f.Vignette.Strength)
	}
	if f.Components.Large.Count != 4 {
		t.Errorf("large count = %d, want 4", f.Components.Large.Count)
	}
	if len(f.Components.Small.Types) != 2 {
		t.Errorf("small types = %v", f.Components.Small.Types)
	}
	if !f.Decoupling.Enabled || f.Decoupling.ClearanceMM != 4 {
		t.Errorf("decoupling = %+v", f.Decoupling)
	}
	if !f.Randomization.Enabled || f.Randomization.NoiseScale == nil {
		t.Errorf("randomization = %+v", f.Randomization)
	}
	if f.Randomization.NoiseScale.Min != 20 || f.Randomization.NoiseScale.Max != 60 {
		t.Errorf("noise_scale range = %+v", f.Randomization.NoiseScale)
	}
	if f.Dataset.Samples != 10 || f.Dataset.BaseSeed != 1000 {
		t.Errorf("dataset = %+v", f.Dataset)
	}
	if f.Cache.Backend != "redis" || f.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", f.Cache)
	}
	if !f.Output.Nets || !f.Output.Labels {
		t.Errorf("output = %+v", f.Output)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	f, err := Parse([]byte(`[board]` + "\n" + `width_mm = 150.0` + "\n" + `height_mm = 100.0`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	def := Default()
	if f.Board.WidthMM != 150 {
		t.Errorf("width = %g, want 150", f.Board.WidthMM)
	}
	if f.Components.Small.Count != def.Components.Small.Count {
		t.Errorf("small count = %d, want default %d", f.Components.Small.Count, def.Components.Small.Count)
	}
	if f.Cache.Backend != "file" {
		t.Errorf("cache backend = %q, want default file", f.Cache.Backend)
	}
	if f.Dataset.Samples != 1 {
		t.Errorf("samples = %d, want 1", f.Dataset.Samples)
	}
}

func TestParseEmptyIsValid(t *testing.T) {
	if _, err := Parse(nil); err != nil {
		t.Errorf("empty document rejected: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantCode errors.Code
	}{
		{"malformed toml", "[board\nwidth", errors.ErrCodeInvalidFormat},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
		{"zero samples", "[dataset]\nsamples = 0", errors.ErrCodeInvalidConfig},
		{"negative board", "[board]\nwidth_mm = -5.0\nheight_mm = 80.0", errors.ErrCodeInvalidBoard},
		{"negative decap clearance", "[decoupling]\nenabled = true\nclearance_mm = -1.0", errors.ErrCodeInvalidConfig},
		{"inverted range", "[randomization]\nenabled = true\n[randomization.noise_scale]\nmin = 60.0\nmax = 20.0", errors.ErrCodeInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse accepted an invalid document")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %v, want %v", got, tt.wantCode)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pcbgen.toml")
	if err := os.WriteFile(path, []byte(sampleDoc), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Board.WidthMM != 120 {
		t.Errorf("width = %g, want 120", f.Board.WidthMM)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestPlacementConfig(t *testing.T) {
	f, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg := f.PlacementConfig()
	if cfg.Board != f.Board {
		t.Errorf("board not carried over: %+v", cfg.Board)
	}
	if cfg.Large.Count != 4 {
		t.Errorf("large count = %d, want 4", cfg.Large.Count)
	}
	if cfg.RetryBudget == 0 {
		t.Error("defaults not applied to placement config")
	}
	if !cfg.Decoupling.Enabled || cfg.Decoupling.ClearanceMM != 4 {
		t.Errorf("decoupling not carried over: %+v", cfg.Decoupling)
	}
	if cfg.Seed != 0 {
		t.Errorf("seed = %d, want 0 (stamped per sample)", cfg.Seed)
	}
}
