// Package preview renders placements as simple SVG images for eyeballing
// layouts. The output is schematic: board outline, category-colored component
// bodies, optional net traces. Pixel-accurate rendering is a downstream
// concern.
package preview

import (
	"bytes"
	"fmt"
	"math"

	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
	"github.com/zradlicz/pcb-dataset-generator/pkg/netlist"
	"github.com/zradlicz/pcb-dataset-generator/pkg/placement"
)

const defaultPixelsPerMM = 4.0

// Colors follow the usual soldermask palette: green board, dark IC bodies,
// tinted passives, gold test pads.
const (
	boardFill     = "#1a5c2a"
	boardStroke   = "#0e3317"
	connectorFill = "#b8b8b8"
	testPointFill = "#d4af37"
	labelColor    = "#e8e8e8"
	powerStroke   = "#cc3333"
	groundStroke  = "#3355cc"
	signalStroke  = "#c8a848"
)

var categoryFill = map[placement.SizeCategory]string{
	placement.SizeLarge:  "#1f1f1f",
	placement.SizeMedium: "#333333",
	placement.SizeSmall:  "#7a6a52",
}

// Option adjusts SVG rendering.
type Option func(*renderer)

// WithScale sets the pixels-per-millimeter factor.
func WithScale(pixelsPerMM float64) Option {
	return func(r *renderer) {
		if pixelsPerMM > 0 {
			r.scale = pixelsPerMM
		}
	}
}

// WithNets overlays net traces. Pads reference placement indices, so the
// nets must come from the same placement slice passed to RenderSVG.
func WithNets(nets []netlist.Net) Option {
	return func(r *renderer) { r.nets = nets }
}

// WithLabels draws reference designators on component bodies.
func WithLabels() Option {
	return func(r *renderer) { r.labels = true }
}

type renderer struct {
	scale  float64
	nets   []netlist.Net
	labels bool
}

// RenderSVG draws the board and its placements. Output is deterministic for
// identical inputs.
func RenderSVG(b board.Board, placements []placement.Placement, opts ...Option) []byte {
	r := renderer{scale: defaultPixelsPerMM}
	for _, opt := range opts {
		opt(&r)
	}

	lib := board.NewLibrary()
	w := b.WidthMM * r.scale
	h := b.HeightMM * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		w, h, boardFill, boardStroke, r.scale*0.5)

	r.renderNets(&buf, b, placements)
	for _, p := range placements {
		r.renderComponent(&buf, b, lib, p)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// px maps board coordinates (origin bottom-left, Y up) onto SVG pixel
// coordinates (origin top-left, Y down).
func (r *renderer) px(b board.Board, x, y float64) (float64, float64) {
	return x * r.scale, (b.HeightMM - y) * r.scale
}

func (r *renderer) renderComponent(buf *bytes.Buffer, b board.Board, lib *board.Library, p placement.Placement) {
	wMM, hMM := 2.0, 2.0
	prefix := ""
	if c, err := lib.Lookup(p.Type); err == nil {
		wMM, hMM = c.WidthMM, c.HeightMM
		prefix = c.Prefix
	}

	cx, cy := r.px(b, p.X, p.Y)

	// Test points are round pads.
	if prefix == "TP" {
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			cx, cy, wMM/2*r.scale, testPointFill)
		r.renderLabel(buf, p, cx, cy, hMM)
		return
	}

	fill := categoryFill[p.Category]
	if prefix == "J" {
		fill = connectorFill
	}

	w := wMM * r.scale
	h := hMM * r.scale
	// SVG rotation is clockwise; board rotation is counter-clockwise.
	rot := 0.0
	if p.Rotation != 0 {
		rot = -p.Rotation
	}
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" transform="rotate(%.1f %.1f %.1f)"/>`+"\n",
		cx-w/2, cy-h/2, w, h, fill, rot, cx, cy)
	r.renderLabel(buf, p, cx, cy, hMM)
}

func (r *renderer) renderLabel(buf *bytes.Buffer, p placement.Placement, cx, cy, hMM float64) {
	if !r.labels || p.Reference == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" text-anchor="middle">%s</text>`+"\n",
		cx, cy-(hMM/2+0.5)*r.scale, 1.8*r.scale, labelColor, p.Reference)
}

func (r *renderer) renderNets(buf *bytes.Buffer, b board.Board, placements []placement.Placement) {
	for _, net := range r.nets {
		stroke, width := signalStroke, 0.25
		switch net.Type {
		case netlist.TypePower:
			stroke, width = powerStroke, 0.4
		case netlist.TypeGround:
			stroke, width = groundStroke, 0.4
		}
		for i := 1; i < len(net.Pads); i++ {
			r.renderTrace(buf, b, placements, net.Pads[i-1], net.Pads[i], stroke, width)
		}
	}
}

func (r *renderer) renderTrace(buf *bytes.Buffer, b board.Board, placements []placement.Placement, from, to netlist.Pad, stroke string, widthMM float64) {
	if from.Component >= len(placements) || to.Component >= len(placements) {
		return
	}
	x1, y1 := netlist.PadPosition(placements[from.Component], from.Pin)
	x2, y2 := netlist.PadPosition(placements[to.Component], to.Pin)

	horizontalFirst := math.Abs(x2-x1) >= math.Abs(y2-y1)
	points := netlist.Dogleg(netlist.Point{X: x1, Y: y1}, netlist.Point{X: x2, Y: y2}, horizontalFirst)

	buf.WriteString(`  <polyline points="`)
	for i, pt := range points {
		if i > 0 {
			buf.WriteByte(' ')
		}
		px, py := r.px(b, pt.X, pt.Y)
		fmt.Fprintf(buf, "%.1f,%.1f", px, py)
	}
	fmt.Fprintf(buf, `" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n", stroke, widthMM*r.scale)
}
