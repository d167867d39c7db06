package pipeline

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
	"github.com/zradlicz/pcb-dataset-generator/pkg/cache"
	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
	"github.com/zradlicz/pcb-dataset-generator/pkg/observability"
	"github.com/zradlicz/pcb-dataset-generator/pkg/placement"
)

func testOptions(seed uint64) Options {
	return Options{
		Base: placement.Config{
			Board:  board.Board{WidthMM: 100, HeightMM: 80},
			Large:  placement.CategoryConfig{Count: 2, SpacingMM: 14},
			Medium: placement.CategoryConfig{Count: 6, SpacingMM: 6},
			Small:  placement.CategoryConfig{Count: 20, SpacingMM: 2},
		},
		Seed: seed,
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := testOptions(1)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.PixelsPerMM != DefaultPixelsPerMM {
		t.Errorf("PixelsPerMM = %g, want default %g", opts.PixelsPerMM, DefaultPixelsPerMM)
	}
	if opts.Logger == nil {
		t.Error("logger not defaulted")
	}

	bad := testOptions(1)
	bad.PixelsPerMM = -1
	if err := bad.ValidateAndSetDefaults(); errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("negative scale error = %v, want INVALID_CONFIG", err)
	}

	inverted := testOptions(1)
	inverted.Ranges = placement.Ranges{Enabled: true, NoiseScale: &placement.Range{Min: 2, Max: 1}}
	if err := inverted.ValidateAndSetDefaults(); errors.GetCode(err) != errors.ErrCodeInvalidRange {
		t.Errorf("inverted range error = %v, want INVALID_RANGE", err)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	opts := testOptions(42)
	opts.Nets = true
	opts.SVG = true
	opts.Labels = true

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Config.Seed != 42 {
		t.Errorf("resolved seed = %d, want 42", result.Config.Seed)
	}
	if result.ConfigHash == "" {
		t.Error("no config hash")
	}
	if len(result.Placements) == 0 {
		t.Fatal("no placements")
	}
	if result.Placements[0].Reference == "" {
		t.Error("placements not assembled; references missing")
	}
	if result.Stats.PlacementCount != len(result.Placements) {
		t.Errorf("stats count %d != %d placements", result.Stats.PlacementCount, len(result.Placements))
	}
	if len(result.Nets) == 0 {
		t.Error("nets requested but absent")
	}

	for _, kind := range []string{ArtifactPlacements, ArtifactNets, ArtifactPreview} {
		if len(result.Artifacts[kind]) == 0 {
			t.Errorf("artifact %q missing", kind)
		}
	}

	var payload PlacementPayload
	if err := json.Unmarshal(result.Artifacts[ArtifactPlacements], &payload); err != nil {
		t.Fatalf("placements artifact is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(payload.Placements, result.Placements) {
		t.Error("placements artifact does not match result")
	}

	if !strings.HasPrefix(string(result.Artifacts[ArtifactPreview]), "<svg") {
		t.Error("preview artifact is not SVG")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	a, err := r.Execute(context.Background(), testOptions(7))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b, err := r.Execute(context.Background(), testOptions(7))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if a.ConfigHash != b.ConfigHash {
		t.Error("same options produced different config hashes")
	}
	if !reflect.DeepEqual(a.Placements, b.Placements) {
		t.Error("same options produced different placements")
	}

	c, err := r.Execute(context.Background(), testOptions(8))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if a.ConfigHash == c.ConfigHash {
		t.Error("different seeds produced the same config hash")
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	opts := testOptions(9)
	opts.SVG = true

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.PlacementHit || first.CacheInfo.PreviewHit {
		t.Errorf("first run reported cache hits: %+v", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.PlacementHit || !second.CacheInfo.PreviewHit {
		t.Errorf("second run missed the cache: %+v", second.CacheInfo)
	}
	if !reflect.DeepEqual(first.Placements, second.Placements) {
		t.Error("cached placements differ from computed ones")
	}

	// Refresh bypasses reads but still yields identical output.
	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.PlacementHit {
		t.Error("refresh run read from cache")
	}
	if !reflect.DeepEqual(first.Placements, third.Placements) {
		t.Error("refreshed placements differ")
	}
}

func TestExecuteRandomization(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	opts := testOptions(3)
	opts.Ranges = placement.Ranges{
		Enabled:    true,
		NoiseScale: &placement.Range{Min: 20, Max: 60},
		SmallCount: &placement.IntRange{Min: 10, Max: 30},
	}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Config.Noise.Scale < 20 || result.Config.Noise.Scale > 60 {
		t.Errorf("resolved scale %g outside range", result.Config.Noise.Scale)
	}
	if result.Config.Small.Count < 10 || result.Config.Small.Count > 30 {
		t.Errorf("resolved small count %d outside range", result.Config.Small.Count)
	}
}

func TestExecuteInvalidBase(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	opts := testOptions(1)
	opts.Base.Board.WidthMM = -10

	_, err := r.Execute(context.Background(), opts)
	if errors.GetCode(err) != errors.ErrCodeInvalidBoard {
		t.Errorf("error = %v, want INVALID_BOARD", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	stages []string
}

func (h *recordingHooks) OnResolveComplete(_ context.Context, _ uint64, _ time.Duration, _ error) {
	h.stages = append(h.stages, "resolve")
}

func (h *recordingHooks) OnPlaceComplete(_ context.Context, _ uint64, _ int, _ time.Duration, _ error) {
	h.stages = append(h.stages, "place")
}

func (h *recordingHooks) OnEmitComplete(_ context.Context, _ []string, _ time.Duration, _ error) {
	h.stages = append(h.stages, "emit")
}

func TestExecuteHooks(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetPipelineHooks(rec)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), testOptions(4)); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"resolve", "place", "emit"}
	if !reflect.DeepEqual(rec.stages, want) {
		t.Errorf("stages = %v, want %v", rec.stages, want)
	}
}

func TestPlace(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	payload, err := r.Place(context.Background(), testOptions(5))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(payload.Placements) == 0 {
		t.Error("no placements")
	}
}
