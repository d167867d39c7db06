package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zradlicz/pcb-dataset-generator/pkg/config"
	"github.com/zradlicz/pcb-dataset-generator/pkg/pipeline"
)

// artifactFiles maps artifact kinds to their on-disk file names.
var artifactFiles = map[string]string{
	pipeline.ArtifactPlacements: "placements.json",
	pipeline.ArtifactNets:       "nets.json",
	pipeline.ArtifactPreview:    "preview.svg",
}

// artifactOrder fixes the display and manifest ordering of artifact kinds.
var artifactOrder = []string{
	pipeline.ArtifactPlacements,
	pipeline.ArtifactNets,
	pipeline.ArtifactPreview,
}

// generateCommand creates the generate command for a single sample.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		configPath string
		seed       uint64
		outDir     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a single board sample",
		Long: `Generate a single board sample.

The generate command runs the full pipeline once: it resolves the
configuration for the given seed, places components on the board, and
writes the resulting artifacts (placements, optional netlist, optional
SVG preview) to the output directory.

Placement results are cached locally for faster subsequent runs.

Use 'batch' to generate a whole dataset with a run manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.Dataset.OutDir = outDir
			}
			return c.runGenerate(cmd.Context(), cfg, seed, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "generation seed")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runGenerate executes the pipeline once and writes artifacts.
func (c *CLI) runGenerate(ctx context.Context, cfg *config.File, seed uint64, noCache, refresh bool) error {
	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipelineOptions(cfg, seed)
	opts.Refresh = refresh
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating sample (seed %d)...", seed))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	names, err := writeArtifacts(cfg.Dataset.OutDir, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Generated sample (seed %d)", result.Config.Seed)
	printStats(result.Stats.PlacementCount, result.Stats.NetCount, result.CacheInfo.PlacementHit)
	for _, kind := range artifactOrder {
		if name, ok := names[kind]; ok {
			printFile(filepath.Join(cfg.Dataset.OutDir, name))
		}
	}
	if total := result.Stats.ShortfallTotal; total > 0 {
		printWarning("%d requested placements did not fit", total)
	}
	return nil
}

// writeArtifacts writes each artifact into dir and returns the file name per
// artifact kind.
func writeArtifacts(dir string, artifacts map[string][]byte) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	names := make(map[string]string, len(artifacts))
	for kind, data := range artifacts {
		name, ok := artifactFiles[kind]
		if !ok {
			name = kind
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		names[kind] = name
	}
	return names, nil
}
