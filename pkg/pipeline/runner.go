package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zradlicz/pcb-dataset-generator/pkg/cache"
	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
	"github.com/zradlicz/pcb-dataset-generator/pkg/netlist"
	"github.com/zradlicz/pcb-dataset-generator/pkg/observability"
	"github.com/zradlicz/pcb-dataset-generator/pkg/placement"
	"github.com/zradlicz/pcb-dataset-generator/pkg/preview"
)

// Runner executes the sample pipeline with caching.
//
// The Runner is stateless except for the cache and logger; it stores no
// per-sample results. Multiple goroutines can safely share one Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer gets the DefaultKeyer; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete resolve → place → emit pipeline for one sample.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	hooks := observability.Pipeline()

	// Stage 1: Resolve
	resolveStart := time.Now()
	hooks.OnResolveStart(ctx, opts.Seed)
	cfg, err := placement.Resolve(opts.Base, opts.Ranges, opts.Seed)
	hooks.OnResolveComplete(ctx, opts.Seed, time.Since(resolveStart), err)
	if err != nil {
		return nil, err
	}
	configHash, err := cache.HashJSON(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hashing resolved config")
	}
	result.Config = cfg
	result.ConfigHash = configHash
	result.Stats.ResolveTime = time.Since(resolveStart)

	if !cfg.SpacingMonotone() {
		opts.Logger.Warn("spacing not monotone across categories",
			"large", cfg.Large.SpacingMM, "medium", cfg.Medium.SpacingMM, "small", cfg.Small.SpacingMM)
	}

	// Stage 2: Place
	placeStart := time.Now()
	hooks.OnPlaceStart(ctx, cfg.Seed)
	payload, placeHit, err := r.PlaceWithCacheInfo(ctx, cfg, configHash, opts.Refresh)
	hooks.OnPlaceComplete(ctx, cfg.Seed, len(payload.Placements), time.Since(placeStart), err)
	if err != nil {
		return nil, err
	}
	result.Placements = payload.Placements
	result.Shortfall = payload.Shortfall
	result.Stats.PlaceTime = time.Since(placeStart)
	result.Stats.PlacementCount = len(payload.Placements)
	for _, n := range payload.Shortfall {
		result.Stats.ShortfallTotal += n
	}
	result.CacheInfo.PlacementHit = placeHit

	opts.Logger.Info("placed components",
		"seed", cfg.Seed,
		"placements", result.Stats.PlacementCount,
		"shortfall", result.Stats.ShortfallTotal,
		"cached", placeHit,
		"duration", result.Stats.PlaceTime)

	// Stage 3: Emit
	emitStart := time.Now()
	kinds := []string{ArtifactPlacements}
	if opts.Nets {
		kinds = append(kinds, ArtifactNets)
	}
	if opts.SVG {
		kinds = append(kinds, ArtifactPreview)
	}
	hooks.OnEmitStart(ctx, kinds)
	err = r.emit(ctx, result, opts)
	hooks.OnEmitComplete(ctx, kinds, time.Since(emitStart), err)
	if err != nil {
		return nil, err
	}
	result.Stats.EmitTime = time.Since(emitStart)

	opts.Logger.Info("emitted artifacts",
		"kinds", len(result.Artifacts),
		"nets", result.Stats.NetCount,
		"duration", result.Stats.EmitTime)

	return result, nil
}

// PlaceWithCacheInfo runs the placement stage with caching and reports
// whether the payload came from cache. The config must already be resolved.
func (r *Runner) PlaceWithCacheInfo(ctx context.Context, cfg placement.Config, configHash string, refresh bool) (PlacementPayload, bool, error) {
	key := r.Keyer.PlacementKey(configHash)
	cacheHooks := observability.Cache()

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var payload PlacementPayload
			if err := json.Unmarshal(data, &payload); err == nil {
				cacheHooks.OnCacheHit(ctx, "placement")
				return payload, true, nil
			}
			// Corrupt entry: recompute and overwrite.
		}
	}
	cacheHooks.OnCacheMiss(ctx, "placement")

	genResult, err := placement.Generate(&cfg)
	if err != nil {
		return PlacementPayload{}, false, err
	}
	payload := PlacementPayload{
		Placements: placement.Assemble(genResult.Placements),
		Shortfall:  genResult.Shortfall,
	}

	if data, err := json.Marshal(payload); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLPlacement)
		cacheHooks.OnCacheSet(ctx, "placement", len(data))
	}
	return payload, false, nil
}

// Place is a convenience wrapper that resolves and places without emitting
// artifacts.
func (r *Runner) Place(ctx context.Context, opts Options) (PlacementPayload, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return PlacementPayload{}, err
	}
	cfg, err := placement.Resolve(opts.Base, opts.Ranges, opts.Seed)
	if err != nil {
		return PlacementPayload{}, err
	}
	configHash, err := cache.HashJSON(cfg)
	if err != nil {
		return PlacementPayload{}, errors.Wrap(errors.ErrCodeInternal, err, "hashing resolved config")
	}
	payload, _, err := r.PlaceWithCacheInfo(ctx, cfg, configHash, opts.Refresh)
	return payload, err
}

func (r *Runner) emit(ctx context.Context, result *Result, opts Options) error {
	payload := PlacementPayload{Placements: result.Placements, Shortfall: result.Shortfall}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding placements")
	}
	result.Artifacts[ArtifactPlacements] = data

	if opts.Nets {
		result.Nets = netlist.Generate(result.Placements, netlist.Options{
			MaxSignalNets: opts.MaxSignalNets,
		}, result.Config.Seed)
		result.Stats.NetCount = len(result.Nets)

		netData, err := json.MarshalIndent(result.Nets, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encoding nets")
		}
		result.Artifacts[ArtifactNets] = netData
	}

	if opts.SVG {
		svg, hit := r.renderPreview(ctx, result, opts)
		result.Artifacts[ArtifactPreview] = svg
		result.CacheInfo.PreviewHit = hit
	}
	return nil
}

// renderPreview renders the SVG artifact, cached by placement content hash.
func (r *Runner) renderPreview(ctx context.Context, result *Result, opts Options) ([]byte, bool) {
	placementHash := cache.Hash(result.Artifacts[ArtifactPlacements])
	key := r.Keyer.ArtifactKey(placementHash, opts.ArtifactKeyOpts())
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			return data, true
		}
	}
	cacheHooks.OnCacheMiss(ctx, "artifact")

	renderOpts := []preview.Option{preview.WithScale(opts.PixelsPerMM)}
	if opts.Labels {
		renderOpts = append(renderOpts, preview.WithLabels())
	}
	if opts.Nets {
		renderOpts = append(renderOpts, preview.WithNets(result.Nets))
	}
	svg := preview.RenderSVG(result.Config.Board, result.Placements, renderOpts...)

	_ = r.Cache.Set(ctx, key, svg, cache.TTLArtifact)
	cacheHooks.OnCacheSet(ctx, "artifact", len(svg))
	return svg, false
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
