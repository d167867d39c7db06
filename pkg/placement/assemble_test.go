package placement

import (
	"testing"
)

func TestAssembleOrdersByCategory(t *testing.T) {
	in := []Placement{
		{X: 1, Category: SizeSmall, Type: "resistor_0402"},
		{X: 2, Category: SizeLarge, Type: "qfp100"},
		{X: 3, Category: SizeSmall, Type: "capacitor_0402"},
		{X: 4, Category: SizeMedium, Type: "soic8"},
		{X: 5, Category: SizeLarge, Type: "bga100"},
	}

	out := Assemble(in)

	wantX := []float64{2, 5, 4, 1, 3}
	if len(out) != len(wantX) {
		t.Fatalf("got %d placements, want %d", len(out), len(wantX))
	}
	for i, x := range wantX {
		if out[i].X != x {
			t.Errorf("position %d: X = %g, want %g (stable category sort)", i, out[i].X, x)
		}
	}
}

func TestAssembleAssignsReferences(t *testing.T) {
	in := []Placement{
		{Category: SizeLarge, Type: "qfp100"},
		{Category: SizeMedium, Type: "soic8"},
		{Category: SizeSmall, Type: "resistor_0402"},
		{Category: SizeSmall, Type: "resistor_0603"},
		{Category: SizeSmall, Type: "capacitor_0402"},
		{Category: SizeSmall, Type: "led_0603"},
	}

	out := Assemble(in)

	want := []string{"U1", "U2", "R1", "R2", "C1", "D1"}
	for i, ref := range want {
		if out[i].Reference != ref {
			t.Errorf("placement %d: reference = %q, want %q", i, out[i].Reference, ref)
		}
	}
}

func TestAssembleUnknownTypeGetsPlaceholderPrefix(t *testing.T) {
	out := Assemble([]Placement{{Category: SizeSmall, Type: "mystery_part"}})
	if out[0].Reference != "X1" {
		t.Errorf("reference = %q, want X1", out[0].Reference)
	}
}

func TestAssembleDoesNotMutateInput(t *testing.T) {
	in := []Placement{
		{X: 1, Category: SizeSmall, Type: "resistor_0402"},
		{X: 2, Category: SizeLarge, Type: "qfp100"},
	}

	_ = Assemble(in)

	if in[0].X != 1 || in[0].Reference != "" || in[1].X != 2 {
		t.Errorf("input slice mutated: %+v", in)
	}
}

func TestAssembleEmpty(t *testing.T) {
	if out := Assemble(nil); len(out) != 0 {
		t.Errorf("Assemble(nil) = %v, want empty", out)
	}
}
