// Package cli implements the pcbgen command-line interface.
//
// This package provides commands for generating single placement samples,
// producing whole datasets, rendering previews from saved placements,
// managing the generation cache, and serving the placement API over HTTP.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Produce one board sample with its artifacts
//   - batch: Produce a dataset of samples plus a run manifest
//   - preview: Render an SVG preview from a saved placements file
//   - cache: Inspect and clear the generation cache
//   - serve: Run the placement HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zradlicz/pcb-dataset-generator/pkg/buildinfo"
	"github.com/zradlicz/pcb-dataset-generator/pkg/cache"
	"github.com/zradlicz/pcb-dataset-generator/pkg/config"
	"github.com/zradlicz/pcb-dataset-generator/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pcbgen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pcbgen",
		Short:        "Pcbgen generates synthetic PCB component placement datasets",
		Long:         `Pcbgen procedurally places electronic components on virtual circuit boards using coherent-noise density fields, producing labeled placement data, netlists, and SVG previews for machine learning datasets.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(cfg *config.File, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache selects the cache backend from configuration. A file backend that
// cannot be created degrades to no caching rather than failing the run.
func newCache(cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "redis" {
		return cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pcbgen/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadConfig loads the TOML document, or the built-in defaults when no path
// is given.
func loadConfig(path string) (*config.File, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// pipelineOptions builds the per-sample pipeline options from configuration.
func pipelineOptions(cfg *config.File, seed uint64) pipeline.Options {
	return pipeline.Options{
		Base:          cfg.PlacementConfig(),
		Ranges:        cfg.Randomization,
		Seed:          seed,
		Nets:          cfg.Output.Nets,
		MaxSignalNets: cfg.Output.MaxSignalNets,
		SVG:           cfg.Output.SVG,
		Labels:        cfg.Output.Labels,
		PixelsPerMM:   cfg.Output.PixelsPerMM,
	}
}
