package placement

import (
	"math"

	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
)

// Resolver accepts or rejects placement candidates against the placements
// already on the board.
//
// A candidate at distance d from an accepted placement is compatible when
// d >= max(candidate spacing, accepted spacing): spacing is a pairwise max,
// not just the candidate's own radius. Candidates whose footprint
// (approximated by their spacing radius) would cross a board edge are
// rejected unless the configured edge tolerance permits the overflow.
//
// Accepted placements are bucketed into a uniform grid with cell size equal
// to the largest configured spacing, so each check scans at most the 3x3
// cell neighborhood. Any pair closer than its required distance is within
// one cell ring, so grid decisions are identical to a naive pairwise scan.
type Resolver struct {
	board   board.Board
	edgeTol float64

	cell    float64
	buckets map[cellKey][]occupant
	count   int
}

type cellKey struct{ cx, cy int }

type occupant struct {
	x, y    float64
	spacing float64
}

// NewResolver creates a resolver for a board. maxSpacingMM must be the
// largest spacing radius of any pass that will use the resolver (see
// Config.MaxSpacing); a smaller value would make the grid miss conflicts.
func NewResolver(b board.Board, edgeTolMM, maxSpacingMM float64) *Resolver {
	cell := maxSpacingMM
	if cell <= 0 {
		// All spacings are zero: only edge checks apply, but the grid
		// still needs a positive cell size.
		cell = 1
	}
	return &Resolver{
		board:   b,
		edgeTol: edgeTolMM,
		cell:    cell,
		buckets: make(map[cellKey][]occupant),
	}
}

// Accepts reports whether a candidate at (x, y) with the given spacing
// radius is compatible with the board edges and all accepted placements.
func (r *Resolver) Accepts(x, y, spacing float64) bool {
	if !r.board.Contains(x, y, spacing-r.edgeTol) {
		return false
	}
	return r.clear(x, y, spacing)
}

// AcceptsEdge is Accepts without the spacing-derived edge clearance: the
// center only has to sit on the board (tolerance still permits overflow).
// The edge passes use it for components that belong in the edge strips.
func (r *Resolver) AcceptsEdge(x, y, spacing float64) bool {
	if !r.board.Contains(x, y, -r.edgeTol) {
		return false
	}
	return r.clear(x, y, spacing)
}

func (r *Resolver) clear(x, y, spacing float64) bool {
	key := r.keyFor(x, y)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for _, o := range r.buckets[cellKey{key.cx + dx, key.cy + dy}] {
				required := max(spacing, o.spacing)
				if distSq(x, y, o.x, o.y) < required*required {
					return false
				}
			}
		}
	}
	return true
}

// Add records an accepted placement. Callers must have checked Accepts
// first; Add performs no validation.
func (r *Resolver) Add(x, y, spacing float64) {
	key := r.keyFor(x, y)
	r.buckets[key] = append(r.buckets[key], occupant{x: x, y: y, spacing: spacing})
	r.count++
}

// Len returns the number of recorded placements.
func (r *Resolver) Len() int { return r.count }

func (r *Resolver) keyFor(x, y float64) cellKey {
	return cellKey{
		cx: int(math.Floor(x / r.cell)),
		cy: int(math.Floor(y / r.cell)),
	}
}

func distSq(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}
