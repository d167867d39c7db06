// Package board describes the physical PCB area that placements target.
//
// A Board is a plain rectangle in millimeters with its origin at the
// bottom-left corner. The package also carries the component library: the
// fixed vocabulary of component types per size category, with footprint
// names and physical dimensions used by downstream board construction.
package board

import (
	"math"

	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
)

// DefaultEdgeMarginFraction is the fraction of the board width reserved as
// the edge zone. Connectors live inside this strip; interior passes keep out
// of it.
const DefaultEdgeMarginFraction = 0.1

// Board is a rectangular board area in millimeters.
// The origin is the bottom-left corner; X grows right, Y grows up.
type Board struct {
	WidthMM  float64 `json:"width_mm" toml:"width_mm"`
	HeightMM float64 `json:"height_mm" toml:"height_mm"`
}

// Validate checks that the board has positive area.
func (b Board) Validate() error {
	if b.WidthMM <= 0 || b.HeightMM <= 0 {
		return errors.New(errors.ErrCodeInvalidBoard,
			"board dimensions must be positive, got %.2fx%.2fmm", b.WidthMM, b.HeightMM)
	}
	return nil
}

// CenterX returns the horizontal center of the board.
func (b Board) CenterX() float64 { return b.WidthMM / 2 }

// CenterY returns the vertical center of the board.
func (b Board) CenterY() float64 { return b.HeightMM / 2 }

// CornerDistance returns the distance from the board center to a corner.
// This is the normalization constant for radial falloff.
func (b Board) CornerDistance() float64 {
	return math.Hypot(b.CenterX(), b.CenterY())
}

// Contains reports whether (x, y) lies within the board, inset by margin on
// every side. A negative margin permits overflow past the physical edge.
func (b Board) Contains(x, y, margin float64) bool {
	return x >= margin && x <= b.WidthMM-margin &&
		y >= margin && y <= b.HeightMM-margin
}

// EdgeMargin returns the width of the edge zone strip in millimeters.
// Matches the keep-out rule used by board construction: 10% of board width.
func (b Board) EdgeMargin() float64 {
	return b.WidthMM * DefaultEdgeMarginFraction
}

// InEdgeZone reports whether (x, y) lies inside one of the four edge strips.
func (b Board) InEdgeZone(x, y float64) bool {
	m := b.EdgeMargin()
	return x < m || x > b.WidthMM-m || y < m || y > b.HeightMM-m
}
