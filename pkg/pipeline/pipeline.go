// Package pipeline runs the complete resolve → place → emit flow for one
// sample. CLI, batch runs, and the HTTP API all go through it, so caching
// and artifact behavior stay consistent across entry points.
//
// # Stages
//
//  1. Resolve: apply randomization ranges to the base config for this
//     sample's seed and validate the result.
//  2. Place: run the placement passes and assemble the ordered, referenced
//     output. Cached by resolved-config hash.
//  3. Emit: encode placements as JSON and optionally derive a netlist and
//     render an SVG preview. Previews are cached by placement hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Base:   cfg.PlacementConfig(),
//	    Ranges: cfg.Randomization,
//	    Seed:   dataset.SeedFor(base, id),
//	    SVG:    true,
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zradlicz/pcb-dataset-generator/pkg/cache"
	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
	"github.com/zradlicz/pcb-dataset-generator/pkg/netlist"
	"github.com/zradlicz/pcb-dataset-generator/pkg/placement"
)

// Artifact kinds in Result.Artifacts.
const (
	ArtifactPlacements = "placements"
	ArtifactNets       = "nets"
	ArtifactPreview    = "preview"
)

// DefaultPixelsPerMM is the preview scale when none is requested.
const DefaultPixelsPerMM = 4.0

// Options configures one sample run.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Base is the placement config before randomization. Its Seed field is
	// ignored; Seed below wins.
	Base placement.Config `json:"base"`

	// Ranges declares per-sample parameter variation. Zero value disables
	// randomization.
	Ranges placement.Ranges `json:"ranges,omitempty"`

	// Seed drives this sample end to end.
	Seed uint64 `json:"seed"`

	// Nets derives a synthetic netlist from the placements.
	Nets          bool `json:"nets,omitempty"`
	MaxSignalNets int  `json:"max_signal_nets,omitempty"`

	// SVG renders a preview artifact.
	SVG         bool    `json:"svg,omitempty"`
	Labels      bool    `json:"labels,omitempty"`
	PixelsPerMM float64 `json:"pixels_per_mm,omitempty"`

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks the options and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Ranges.Validate(); err != nil {
		return err
	}
	if o.PixelsPerMM < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"pixels per mm must be >= 0, got %g", o.PixelsPerMM)
	}
	if o.PixelsPerMM == 0 {
		o.PixelsPerMM = DefaultPixelsPerMM
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns the cache key options for the preview artifact.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      "svg",
		PixelsPerMM: o.PixelsPerMM,
		Labels:      o.Labels,
		Nets:        o.Nets,
	}
}

// PlacementPayload is the cached and emitted placement stage output.
type PlacementPayload struct {
	Placements []placement.Placement `json:"placements"`
	Shortfall  map[string]int        `json:"shortfall,omitempty"`
}

// Result contains the outputs of one sample run.
type Result struct {
	// Config is the resolved configuration the sample actually used.
	Config placement.Config

	// ConfigHash identifies the resolved config; it keys the placement
	// cache entry.
	ConfigHash string

	// Placements is the assembled output sequence.
	Placements []placement.Placement

	// Shortfall records unfilled slots per pass.
	Shortfall map[string]int

	// Nets is present when Options.Nets was set.
	Nets []netlist.Net

	// Artifacts contains encoded outputs keyed by kind.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains execution statistics for one sample.
type Stats struct {
	PlacementCount int
	ShortfallTotal int
	NetCount       int
	ResolveTime    time.Duration
	PlaceTime      time.Duration
	EmitTime       time.Duration
}

// CacheInfo tracks cache hits per stage.
type CacheInfo struct {
	PlacementHit bool // placement payload came from cache
	PreviewHit   bool // preview artifact came from cache
}
