package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
	"github.com/zradlicz/pcb-dataset-generator/pkg/config"
	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
	"github.com/zradlicz/pcb-dataset-generator/pkg/netlist"
	"github.com/zradlicz/pcb-dataset-generator/pkg/pipeline"
	"github.com/zradlicz/pcb-dataset-generator/pkg/placement"
)

// serveCommand creates the serve command for the placement HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the placement HTTP API",
		Long: `Run the placement HTTP API.

The server exposes the generation pipeline over HTTP:

  POST /v1/placements    Run the pipeline for the posted options
  GET  /v1/preview       Render an SVG preview for a seed
  GET  /healthz          Liveness probe

Placement results are cached with the configured backend, so repeated
requests for the same configuration are served from cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg, addr, noCache)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the HTTP server and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg *config.File, addr string, noCache bool) error {
	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	s := &server{cfg: cfg, runner: runner, cli: c}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/placements", s.handlePlacements)
		r.Get("/preview", s.handlePreview)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	c.Logger.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// server holds the HTTP handler state.
type server struct {
	cfg    *config.File
	runner *pipeline.Runner
	cli    *CLI
}

// logRequests logs one line per request through the CLI logger.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.cli.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// placementsResponse is the POST /v1/placements response body.
type placementsResponse struct {
	Seed       uint64                `json:"seed"`
	ConfigHash string                `json:"config_hash"`
	Placements []placement.Placement `json:"placements"`
	Shortfall  map[string]int        `json:"shortfall,omitempty"`
	Nets       []netlist.Net         `json:"nets,omitempty"`
	Cached     bool                  `json:"cached"`
}

// handlePlacements runs the pipeline for the posted options. An empty base
// config falls back to the server's configured base.
func (s *server) handlePlacements(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&opts); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "parsing request body: %v", err))
		return
	}

	if opts.Base.Board == (board.Board{}) {
		base := pipelineOptions(s.cfg, opts.Seed)
		base.Seed = opts.Seed
		base.Refresh = opts.Refresh
		if opts.Nets {
			base.Nets = true
		}
		opts = base
	}
	opts.SVG = false // previews go through /v1/preview
	opts.Logger = s.cli.Logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, placementsResponse{
		Seed:       result.Config.Seed,
		ConfigHash: result.ConfigHash,
		Placements: result.Placements,
		Shortfall:  result.Shortfall,
		Nets:       result.Nets,
		Cached:     result.CacheInfo.PlacementHit,
	})
}

// handlePreview renders the configured pipeline for ?seed=N as SVG.
func (s *server) handlePreview(w http.ResponseWriter, r *http.Request) {
	seed := uint64(0)
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidFormat, "parsing seed %q: %v", raw, err))
			return
		}
		seed = parsed
	}

	opts := pipelineOptions(s.cfg, seed)
	opts.SVG = true
	opts.Logger = s.cli.Logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.ArtifactPreview])
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		status = http.StatusBadRequest
	case code == errors.ErrCodeNotFound, code == errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: err.Error()})
}
