package placement

import (
	"math"

	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
)

// Vignette attenuates density radially so placement thins out toward the
// board edges. Disabled or zero-strength vignettes are the identity.
//
// The falloff factor at a point is 1 - strength + strength*(1 - d), where d
// is the distance from the board center normalized by the center-to-corner
// distance. It decreases monotonically from 1 at the center to 1 - strength
// at the farthest corner, and never turns a non-negative density negative.
type Vignette struct {
	enabled  bool
	strength float64
	cx, cy   float64
	maxDist  float64
}

// NewVignette builds the density shaper for a board.
func NewVignette(cfg VignetteConfig, b board.Board) Vignette {
	return Vignette{
		enabled:  cfg.Enabled && cfg.Strength > 0,
		strength: cfg.Strength,
		cx:       b.CenterX(),
		cy:       b.CenterY(),
		maxDist:  b.CornerDistance(),
	}
}

// Shape returns the adjusted density at (x, y) for a raw density value.
func (v Vignette) Shape(x, y, raw float64) float64 {
	if !v.enabled {
		return raw
	}
	d := math.Hypot(x-v.cx, y-v.cy) / v.maxDist
	if d > 1 {
		d = 1
	}
	falloff := 1 - v.strength + v.strength*(1-d)
	return raw * falloff
}
