package netlist

import (
	"math"

	"github.com/zradlicz/pcb-dataset-generator/pkg/placement"
)

// padBodyMM is the nominal body size used to spread pads around a component
// perimeter. Pad positions are approximate; they feed previews, not board
// construction.
const padBodyMM = 3.0

// PadPosition estimates the board position of a component pin. Pins 0-3 sit
// at the left, right, top, and bottom edge midpoints; higher pins spread
// evenly around the perimeter.
func PadPosition(p placement.Placement, pin int) (x, y float64) {
	w, h := padBodyMM, padBodyMM
	if p.Rotation == 90 || p.Rotation == 270 {
		w, h = h, w
	}

	switch pin {
	case 0:
		return p.X - w/2, p.Y
	case 1:
		return p.X + w/2, p.Y
	case 2:
		return p.X, p.Y - h/2
	case 3:
		return p.X, p.Y + h/2
	}
	angle := float64(pin) / 8 * 2 * math.Pi
	radius := max(w, h) / 2
	return p.X + radius*math.Cos(angle), p.Y + radius*math.Sin(angle)
}

// Point is a trace waypoint in board millimeters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dogleg returns a two-segment Manhattan route between two points.
func Dogleg(start, end Point, horizontalFirst bool) []Point {
	mid := Point{X: start.X, Y: end.Y}
	if horizontalFirst {
		mid = Point{X: end.X, Y: start.Y}
	}
	return []Point{start, mid, end}
}
