package placement

import (
	"slices"

	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
)

var categoryRank = map[SizeCategory]int{
	SizeLarge:  0,
	SizeMedium: 1,
	SizeSmall:  2,
}

// Assemble finalizes a placement sequence for board construction: a stable
// sort by category (large, medium, small) preserving acceptance order within
// each category, then reference designator assignment (R1, C2, U3) in the
// sorted order. The input slice is not modified.
//
// Assemble performs no validation; candidates were already vetted by the
// collision resolver.
func Assemble(placements []Placement) []Placement {
	out := slices.Clone(placements)
	slices.SortStableFunc(out, func(a, b Placement) int {
		return categoryRank[a.Category] - categoryRank[b.Category]
	})

	lib := board.NewLibrary()
	for i := range out {
		out[i].Reference = lib.NextReference(out[i].Type)
	}
	return out
}
