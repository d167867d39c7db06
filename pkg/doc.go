// Package pkg provides the core libraries for pcbgen dataset generation.
//
// # Overview
//
// Pcbgen procedurally places electronic components on virtual circuit
// boards to produce labeled synthetic datasets. The pkg directory is
// organized into four main areas:
//
//  1. [placement] - Domain logic (noise field, density shaping, sampling,
//     collision resolution, randomization)
//  2. [board], [netlist], [preview] - Supporting domain packages
//     (component library, synthetic netlists, SVG rendering)
//  3. [cache], [config], [dataset] - Infrastructure (content-addressed
//     caching, TOML configuration, run manifests)
//  4. [pipeline] - Orchestration (resolve → place → emit)
//
// # Architecture
//
// The typical data flow through pcbgen:
//
//	TOML config + seed
//	         ↓
//	    [placement] package (resolve ranges, sample placements)
//	         ↓
//	    [netlist] package (derive synthetic connectivity)
//	         ↓
//	    [preview] package (render SVG)
//	         ↓
//	    JSON/SVG artifacts + manifest
//
// # Quick Start
//
// Generate one sample through the pipeline:
//
//	import (
//	    "context"
//	    "github.com/zradlicz/pcb-dataset-generator/pkg/pipeline"
//	    "github.com/zradlicz/pcb-dataset-generator/pkg/placement"
//	    "github.com/zradlicz/pcb-dataset-generator/pkg/board"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Base: placement.Config{
//	        Board:  board.Board{WidthMM: 100, HeightMM: 80},
//	        Large:  placement.CategoryConfig{Count: 3, SpacingMM: 15},
//	        Medium: placement.CategoryConfig{Count: 8, SpacingMM: 6},
//	        Small:  placement.CategoryConfig{Count: 40, SpacingMM: 2},
//	    },
//	    Seed: 42,
//	    SVG:  true,
//	})
//
// # Main Packages
//
// [placement] - The generation core: coherent-noise density fields,
// vignette falloff, category-ordered rejection sampling, grid-bucketed
// collision resolution, per-sample parameter randomization, and output
// assembly with reference designators.
//
// [board] - Board geometry and the component footprint library.
//
// [netlist] - Synthetic netlists derived from placements: power and ground
// rails plus nearest-neighbor signal nets, with pad positions and dogleg
// routing for rendering.
//
// [preview] - SVG rendering of boards, components, labels, and traces.
//
// [cache] - Content-addressed caching with file, Redis, and null backends.
// Placement results are keyed by resolved-config hash, artifacts by
// placement hash plus render options.
//
// [config] - TOML configuration document covering the placement core,
// randomization ranges, dataset runs, caching, and output selection.
//
// [dataset] - Seed derivation and the per-run manifest.
//
// [pipeline] - Complete generation pipeline (resolve → place → emit) used
// by the CLI, batch runs, and the HTTP API. Ensures consistent behavior
// across all entry points.
//
// [observability] - Optional instrumentation hooks for pipeline stages and
// cache operations.
//
// [errors] - Structured error codes shared by CLI and API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/placement    # Specific package
//	go test -run Example       # Examples only
//
// [placement]: https://pkg.go.dev/github.com/zradlicz/pcb-dataset-generator/pkg/placement
// [board]: https://pkg.go.dev/github.com/zradlicz/pcb-dataset-generator/pkg/board
// [netlist]: https://pkg.go.dev/github.com/zradlicz/pcb-dataset-generator/pkg/netlist
// [preview]: https://pkg.go.dev/github.com/zradlicz/pcb-dataset-generator/pkg/preview
// [cache]: https://pkg.go.dev/github.com/zradlicz/pcb-dataset-generator/pkg/cache
// [config]: https://pkg.go.dev/github.com/zradlicz/pcb-dataset-generator/pkg/config
// [dataset]: https://pkg.go.dev/github.com/zradlicz/pcb-dataset-generator/pkg/dataset
// [pipeline]: https://pkg.go.dev/github.com/zradlicz/pcb-dataset-generator/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/zradlicz/pcb-dataset-generator/pkg/observability
// [errors]: https://pkg.go.dev/github.com/zradlicz/pcb-dataset-generator/pkg/errors
package pkg
