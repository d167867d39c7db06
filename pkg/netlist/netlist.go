// Package netlist derives plausible electrical connectivity for a set of
// placements. The nets are synthetic: power and ground rails touch a random
// subset of components, signal nets connect nearby pins. Connectivity only,
// no electrical meaning.
package netlist

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/zradlicz/pcb-dataset-generator/pkg/placement"
)

// NetType classifies a net for track sizing and rendering.
type NetType string

const (
	TypePower  NetType = "power"
	TypeGround NetType = "ground"
	TypeSignal NetType = "signal"
)

// Pad identifies one endpoint of a net: a placement index and a pin number.
// Pins 0 and 1 are reserved for VCC and GND.
type Pad struct {
	Component int `json:"component"`
	Pin       int `json:"pin"`
}

// Net is a named set of connected pads.
type Net struct {
	Name string  `json:"name"`
	Type NetType `json:"type"`
	Pads []Pad   `json:"pads"`
}

// Options bound net generation. The zero value is usable.
type Options struct {
	// MaxSignalNets caps the signal net count. Defaults to 30. Fewer nets
	// come out when pins run short.
	MaxSignalNets int

	// PowerFraction is the probability that a component hangs off the
	// VCC/GND rails. Defaults to 0.4.
	PowerFraction float64
}

func (o *Options) setDefaults() {
	if o.MaxSignalNets == 0 {
		o.MaxSignalNets = 30
	}
	if o.PowerFraction == 0 {
		o.PowerFraction = 0.4
	}
}

// signal pins per component, pins 2..7
const signalPinLow, signalPinHigh = 2, 8

// Generate builds a netlist for the placements. All draws come from a PCG
// stream seeded by seed, so (placements, opts, seed) fully determines the
// output. An empty placement list yields no nets.
func Generate(placements []placement.Placement, opts Options, seed uint64) []Net {
	opts.setDefaults()
	if len(placements) == 0 {
		return nil
	}

	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	var nets []Net

	power := Net{Name: "VCC", Type: TypePower}
	ground := Net{Name: "GND", Type: TypeGround}
	for i := range placements {
		if rng.Float64() < opts.PowerFraction {
			power.Pads = append(power.Pads, Pad{Component: i, Pin: 0})
			ground.Pads = append(ground.Pads, Pad{Component: i, Pin: 1})
		}
	}
	nets = append(nets, power, ground)

	used := make(map[Pad]bool)
	counter := 1
	for range opts.MaxSignalNets {
		source := Pad{
			Component: rng.IntN(len(placements)),
			Pin:       signalPinLow + rng.IntN(signalPinHigh-signalPinLow),
		}
		if used[source] {
			continue
		}

		target, ok := nearestFreePad(placements, source, used, rng)
		if !ok {
			continue
		}

		used[source] = true
		used[target] = true
		nets = append(nets, Net{
			Name: fmt.Sprintf("NET_%d", counter),
			Type: TypeSignal,
			Pads: []Pad{source, target},
		})
		counter++
	}

	return nets
}

// nearestFreePad finds a connection target for source: candidates are the
// first free signal pin of every other component, sorted by distance, and the
// pick is drawn from the five nearest.
func nearestFreePad(placements []placement.Placement, source Pad, used map[Pad]bool, rng *rand.Rand) (Pad, bool) {
	type candidate struct {
		dist float64
		pad  Pad
	}
	var candidates []candidate

	src := placements[source.Component]
	for i, p := range placements {
		if i == source.Component {
			continue
		}
		for pin := signalPinLow; pin < signalPinHigh; pin++ {
			pad := Pad{Component: i, Pin: pin}
			if !used[pad] {
				candidates = append(candidates, candidate{
					dist: math.Hypot(src.X-p.X, src.Y-p.Y),
					pad:  pad,
				})
				break
			}
		}
	}
	if len(candidates) == 0 {
		return Pad{}, false
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		}
		return a.pad.Component - b.pad.Component
	})

	pick := min(rng.IntN(5), len(candidates)-1)
	return candidates[pick].pad, true
}

// Stats summarizes a netlist by type.
type Stats struct {
	Total  int `json:"total"`
	Power  int `json:"power"`
	Ground int `json:"ground"`
	Signal int `json:"signal"`
}

// Summarize counts nets per type.
func Summarize(nets []Net) Stats {
	s := Stats{Total: len(nets)}
	for _, n := range nets {
		switch n.Type {
		case TypePower:
			s.Power++
		case TypeGround:
			s.Ground++
		case TypeSignal:
			s.Signal++
		}
	}
	return s
}
