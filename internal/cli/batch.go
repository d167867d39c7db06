package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zradlicz/pcb-dataset-generator/pkg/config"
	"github.com/zradlicz/pcb-dataset-generator/pkg/dataset"
	"github.com/zradlicz/pcb-dataset-generator/pkg/pipeline"
)

// batchCommand creates the batch command for dataset generation.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		configPath string
		samples    int
		baseSeed   uint64
		outDir     string
		noCache    bool
		refresh    bool
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate a dataset of board samples",
		Long: `Generate a dataset of board samples.

The batch command runs the pipeline once per sample. Sample N uses seed
base_seed + N, so a dataset is fully reproducible from its base seed and
configuration. Each sample's artifacts go into sample_NNNN/ under the
output directory, and a manifest.json records the whole run.

Progress is shown interactively; use --plain for log-line output in
scripts and CI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if samples > 0 {
				cfg.Dataset.Samples = samples
			}
			if cmd.Flags().Changed("base-seed") {
				cfg.Dataset.BaseSeed = baseSeed
			}
			if outDir != "" {
				cfg.Dataset.OutDir = outDir
			}
			return c.runBatch(cmd.Context(), cfg, noCache, refresh, plain)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().IntVarP(&samples, "samples", "n", 0, "number of samples (overrides config)")
	cmd.Flags().Uint64Var(&baseSeed, "base-seed", 0, "base seed (overrides config)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&plain, "plain", false, "plain log output instead of interactive progress")

	return cmd
}

// runBatch generates all samples and writes the run manifest.
func (c *CLI) runBatch(ctx context.Context, cfg *config.File, noCache, refresh, plain bool) error {
	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	total := cfg.Dataset.Samples

	// The interactive view owns the terminal, so pipeline logging is
	// silenced there; plain mode logs through the CLI logger instead.
	sampleLogger := c.Logger
	if !plain {
		sampleLogger = log.NewWithOptions(io.Discard, log.Options{})
	}

	run := func(id int) (dataset.Sample, error) {
		seed := dataset.SeedFor(cfg.Dataset.BaseSeed, id)
		opts := pipelineOptions(cfg, seed)
		opts.Refresh = refresh
		opts.Logger = sampleLogger

		result, err := runner.Execute(ctx, opts)
		if err != nil {
			return dataset.Sample{}, fmt.Errorf("sample %d: %w", id, err)
		}

		subdir := fmt.Sprintf("sample_%04d", id)
		names, err := writeArtifacts(filepath.Join(cfg.Dataset.OutDir, subdir), result.Artifacts)
		if err != nil {
			return dataset.Sample{}, err
		}
		artifacts := make(map[string]string, len(names))
		for kind, name := range names {
			artifacts[kind] = filepath.Join(subdir, name)
		}

		return dataset.Sample{
			ID:          id,
			Seed:        seed,
			Placements:  result.Stats.PlacementCount,
			Shortfall:   result.Stats.ShortfallTotal,
			Nets:        result.Stats.NetCount,
			Artifacts:   artifacts,
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	var (
		generated []dataset.Sample
		cancelled bool
	)
	if plain {
		for id := range total {
			p := newProgress(c.Logger)
			s, err := run(id)
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Sample %04d: %d placements", id, s.Placements))
			generated = append(generated, s)
		}
	} else {
		program := tea.NewProgram(newBatchModel(total, run), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
		final, err := program.Run()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("batch: %w", err)
		}
		m := final.(batchModel)
		if m.err != nil {
			return m.err
		}
		generated = m.samples
		cancelled = m.cancelled
	}

	if len(generated) == 0 {
		printWarning("No samples generated")
		return nil
	}

	manifest := dataset.NewManifest(cfg.Dataset.BaseSeed)
	shortfall := 0
	for _, s := range generated {
		manifest.Add(s)
		shortfall += s.Shortfall
	}
	if err := manifest.Write(cfg.Dataset.OutDir); err != nil {
		return err
	}

	if cancelled {
		printWarning("Cancelled after %d of %d samples", len(generated), total)
	} else {
		printSuccess("Generated %d samples", len(generated))
	}
	printDetail("Run ID: %s", manifest.RunID)
	printFile(filepath.Join(cfg.Dataset.OutDir, dataset.ManifestName))
	if shortfall > 0 {
		printWarning("%d requested placements did not fit across the run", shortfall)
	}
	printNextStep("Inspect a sample", fmt.Sprintf("%s preview %s", appName,
		filepath.Join(cfg.Dataset.OutDir, "sample_0000", artifactFiles[pipeline.ArtifactPlacements])))
	return nil
}
