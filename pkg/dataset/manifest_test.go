package dataset

import (
	"testing"
	"time"

	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
)

func TestSeedFor(t *testing.T) {
	tests := []struct {
		base uint64
		id   int
		want uint64
	}{
		{0, 0, 0},
		{1000, 0, 1000},
		{1000, 7, 1007},
		{42, 100, 142},
	}

	for _, tt := range tests {
		if got := SeedFor(tt.base, tt.id); got != tt.want {
			t.Errorf("SeedFor(%d, %d) = %d, want %d", tt.base, tt.id, got, tt.want)
		}
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	m := NewManifest(1000)
	if m.RunID == "" {
		t.Fatal("manifest has no run ID")
	}
	m.Add(Sample{
		ID:          0,
		Seed:        SeedFor(1000, 0),
		Placements:  51,
		Shortfall:   2,
		Nets:        20,
		Artifacts:   map[string]string{"placements": "sample_0000/placements.json"},
		GeneratedAt: time.Now().UTC(),
	})
	m.Add(Sample{ID: 1, Seed: SeedFor(1000, 1), Placements: 48})

	if err := m.Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.RunID != m.RunID || got.BaseSeed != 1000 {
		t.Errorf("Read = %+v", got)
	}
	if len(got.Samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(got.Samples))
	}

	s, ok := got.Sample(0)
	if !ok {
		t.Fatal("sample 0 missing")
	}
	if s.Seed != 1000 || s.Placements != 51 || s.Artifacts["placements"] == "" {
		t.Errorf("sample 0 = %+v", s)
	}

	if _, ok := got.Sample(99); ok {
		t.Error("lookup of unknown sample succeeded")
	}
}

func TestReadMissing(t *testing.T) {
	_, err := Read(t.TempDir())
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}
