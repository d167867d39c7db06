// Package dataset tracks batch runs: which samples exist, the seed each one
// used, and where its artifacts landed. The manifest is the contract between
// generation and downstream training jobs.
package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
)

// ManifestName is the manifest filename inside a dataset directory.
const ManifestName = "manifest.json"

// SeedFor derives a sample's run seed from the base seed. The derivation is
// a pure function so any sample can be regenerated in isolation, including
// by array jobs that only know their own index.
func SeedFor(baseSeed uint64, sampleID int) uint64 {
	return baseSeed + uint64(sampleID)
}

// Sample records one generated board.
type Sample struct {
	ID   int    `json:"id"`
	Seed uint64 `json:"seed"`

	// Placements is the accepted component count; Shortfall the unfilled
	// slots across all passes.
	Placements int `json:"placements"`
	Shortfall  int `json:"shortfall,omitempty"`
	Nets       int `json:"nets,omitempty"`

	// Artifacts maps kind ("placements", "nets", "preview") to a path
	// relative to the dataset directory.
	Artifacts map[string]string `json:"artifacts"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Manifest describes a whole dataset run.
type Manifest struct {
	// RunID uniquely identifies this run across machines.
	RunID string `json:"run_id"`

	BaseSeed  uint64    `json:"base_seed"`
	CreatedAt time.Time `json:"created_at"`

	Samples []Sample `json:"samples"`
}

// NewManifest starts a manifest for a run.
func NewManifest(baseSeed uint64) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		BaseSeed:  baseSeed,
		CreatedAt: time.Now().UTC(),
	}
}

// Add appends a sample record.
func (m *Manifest) Add(s Sample) {
	m.Samples = append(m.Samples, s)
}

// Sample returns the record for a sample ID.
func (m *Manifest) Sample(id int) (Sample, bool) {
	for _, s := range m.Samples {
		if s.ID == id {
			return s, true
		}
	}
	return Sample{}, false
}

// Write stores the manifest in dir as indented JSON.
func (m *Manifest) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "creating dataset directory")
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding manifest")
	}
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", path)
	}
	return nil
}

// Read loads a manifest from a dataset directory.
func Read(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "no manifest in %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading %s", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing %s", path)
	}
	return &m, nil
}
