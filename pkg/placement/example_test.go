package placement_test

import (
	"fmt"

	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
	"github.com/zradlicz/pcb-dataset-generator/pkg/placement"
)

func ExampleGenerate() {
	cfg := &placement.Config{
		Board:    board.Board{WidthMM: 100, HeightMM: 80},
		Vignette: placement.VignetteConfig{Enabled: true, Strength: 0.5},
		Large:    placement.CategoryConfig{Count: 2, SpacingMM: 15},
		Medium:   placement.CategoryConfig{Count: 6, SpacingMM: 6},
		Small:    placement.CategoryConfig{Count: 20, SpacingMM: 2},
		Seed:     42,
	}

	result, err := placement.Generate(cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	// Same seed, same board every time. Under dense configs some slots may
	// go unfilled; check result.Shortfall rather than assuming full counts.
	for _, p := range placement.Assemble(result.Placements) {
		_ = p.Reference // R1, C2, U3, ...
	}
}

func ExampleResolve() {
	base := placement.Config{
		Board:  board.Board{WidthMM: 100, HeightMM: 80},
		Large:  placement.CategoryConfig{Count: 3, SpacingMM: 15},
		Medium: placement.CategoryConfig{Count: 8, SpacingMM: 6},
		Small:  placement.CategoryConfig{Count: 30, SpacingMM: 2},
	}

	// No ranges declared: Resolve stamps the seed and fills defaults.
	cfg, err := placement.Resolve(base, placement.Ranges{}, 7)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("seed:", cfg.Seed)
	fmt.Println("scale:", cfg.Noise.Scale)
	fmt.Println("octaves:", cfg.Noise.Octaves)
	fmt.Println("retry budget:", cfg.RetryBudget)
	// Output:
	// seed: 7
	// scale: 40
	// octaves: 4
	// retry budget: 64
}

func ExampleAssemble() {
	placements := []placement.Placement{
		{Category: placement.SizeSmall, Type: "resistor_0402"},
		{Category: placement.SizeLarge, Type: "qfp100"},
		{Category: placement.SizeSmall, Type: "capacitor_0603"},
	}

	for _, p := range placement.Assemble(placements) {
		fmt.Printf("%s %s\n", p.Reference, p.Type)
	}
	// Output:
	// U1 qfp100
	// R1 resistor_0402
	// C1 capacitor_0603
}
