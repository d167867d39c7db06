package placement

import (
	"math"
	"math/rand/v2"

	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
)

// Test points cluster in a ring around an existing interior component.
const (
	testPointMinOffsetMM = 5.0
	testPointMaxOffsetMM = 15.0
)

// Decoupling capacitors are always 0402 bypass caps.
const decapType = "capacitor_0402"

// decapSlackMM nudges the capacitor offsets past the spacing radius so
// float rounding cannot reject the exact-distance candidates.
const decapSlackMM = 1e-6

// Generate runs one full placement pass over a board: the three size
// categories largest first, then decoupling capacitors around the large
// ICs, then connectors in the edge strips, then test points near interior
// components.
//
// Every random draw comes from a single PCG stream seeded by cfg.Seed, and
// draws happen in a fixed order per candidate, so identical configs produce
// identical results. Slots that exhaust the retry budget are recorded in
// Result.Shortfall and skipped; under-fill is never an error.
func Generate(cfg *Config) (Result, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	field, err := NewField(cfg.Noise, cfg.NoiseSeed())
	if err != nil {
		return Result{}, err
	}

	s := &sampler{
		cfg:    cfg,
		field:  field,
		vig:    NewVignette(cfg.Vignette, cfg.Board),
		res:    NewResolver(cfg.Board, cfg.EdgeToleranceMM, cfg.MaxSpacing()),
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xdeadbeef)),
		lib:    board.NewLibrary(),
		result: Result{Shortfall: make(map[string]int)},
	}

	for _, cat := range CategoryOrder {
		s.categoryPass(cat)
	}
	s.decouplingPass()

	// Test points anchor on placements made by the interior passes, not on
	// connectors, so capture the boundary before the connector pass runs.
	interior := len(s.result.Placements)
	s.connectorPass()
	s.testPointPass(interior)

	return s.result, nil
}

type sampler struct {
	cfg    *Config
	field  *Field
	vig    Vignette
	res    *Resolver
	rng    *rand.Rand
	lib    *board.Library
	result Result
}

func (s *sampler) categoryPass(cat SizeCategory) {
	c := s.cfg.Category(cat)
	types := c.Types
	if len(types) == 0 {
		types = s.lib.Types(string(cat))
	}
	for range c.Count {
		if !s.placeOne(cat, types, c.SpacingMM) {
			s.result.Shortfall[string(cat)]++
		}
	}
}

// placeOne attempts to fill a single category slot. Candidates are drawn
// uniformly over the interior zone; the edge strips stay reserved for the
// connector pass. Per candidate the draw order is fixed: position, density
// threshold, then (only for candidates that survive the density test)
// rotation and type.
func (s *sampler) placeOne(cat SizeCategory, types []string, spacing float64) bool {
	b := s.cfg.Board
	margin := b.EdgeMargin()
	w := b.WidthMM - 2*margin
	h := b.HeightMM - 2*margin
	if w <= 0 || h <= 0 {
		return false
	}
	for range s.cfg.RetryBudget {
		x := margin + s.rng.Float64()*w
		y := margin + s.rng.Float64()*h
		threshold := s.rng.Float64()
		if s.vig.Shape(x, y, s.field.Sample(x, y)) < threshold {
			continue
		}
		rot := s.rng.Float64() * 360
		typ := s.draw(types)
		if !s.res.Accepts(x, y, spacing) {
			continue
		}
		s.accept(x, y, rot, cat, typ, spacing)
		return true
	}
	return false
}

// decouplingPass drops bypass capacitors around each large IC, at the four
// cardinal offsets in right, left, up, down order. Each IC draws how many
// of the offsets to try (two to four). The pass is opportunistic: offsets
// that land in the edge keep-out or fail the spacing check are skipped
// without retries and without a shortfall entry.
func (s *sampler) decouplingPass() {
	d := s.cfg.Decoupling
	if !d.Enabled {
		return
	}
	spacing := d.SpacingMM
	if spacing == 0 {
		spacing = s.cfg.Small.SpacingMM
	}
	clearance := d.ClearanceMM
	if clearance == 0 {
		clearance = DefaultDecapClearanceMM
	}
	margin := s.cfg.Board.EdgeMargin()

	anchors := len(s.result.Placements)
	for i := range anchors {
		p := s.result.Placements[i]
		if p.Category != SizeLarge {
			continue
		}
		// The offset distance honors the pairwise spacing rule: the cap
		// must clear the anchor's own radius even when the body is small.
		dist := math.Max(s.cfg.Large.SpacingMM, s.icHalfExtent(p.Type)+clearance) + decapSlackMM
		offsets := [...][2]float64{{dist, 0}, {-dist, 0}, {0, dist}, {0, -dist}}
		n := 2 + s.rng.IntN(3)
		for _, off := range offsets[:n] {
			x := p.X + off[0]
			y := p.Y + off[1]
			if !s.cfg.Board.Contains(x, y, margin) {
				continue
			}
			if !s.res.Accepts(x, y, spacing) {
				continue
			}
			s.accept(x, y, 0, SizeSmall, decapType, spacing)
		}
	}
}

// icHalfExtent returns half the larger body dimension of a component type.
func (s *sampler) icHalfExtent(typ string) float64 {
	c, err := s.lib.Lookup(typ)
	if err != nil {
		return s.cfg.Large.SpacingMM / 2
	}
	return math.Max(c.WidthMM, c.HeightMM) / 2
}

func (s *sampler) connectorPass() {
	c := s.cfg.Connectors
	if c.Count == 0 {
		return
	}
	types := c.Types
	if len(types) == 0 {
		types = s.lib.Types(board.CategoryConnector)
	}
	for range c.Count {
		if !s.placeConnector(types, c.SpacingMM) {
			s.result.Shortfall[PassConnectors]++
		}
	}
}

// placeConnector draws a position inside one of the four edge strips.
// Connectors keep axis-aligned rotations so their pin rows face off-board.
func (s *sampler) placeConnector(types []string, spacing float64) bool {
	b := s.cfg.Board
	margin := b.EdgeMargin()
	rotations := [...]float64{0, 90, 180, 270}
	for range s.cfg.RetryBudget {
		edge := s.rng.IntN(4)
		along := s.rng.Float64()
		cross := s.rng.Float64() * margin
		var x, y float64
		switch edge {
		case 0: // left
			x = cross
			y = margin + along*(b.HeightMM-2*margin)
		case 1: // right
			x = b.WidthMM - cross
			y = margin + along*(b.HeightMM-2*margin)
		case 2: // bottom
			x = margin + along*(b.WidthMM-2*margin)
			y = cross
		default: // top
			x = margin + along*(b.WidthMM-2*margin)
			y = b.HeightMM - cross
		}
		rot := rotations[s.rng.IntN(len(rotations))]
		typ := s.draw(types)
		if !s.res.AcceptsEdge(x, y, spacing) {
			continue
		}
		s.accept(x, y, rot, SizeMedium, typ, spacing)
		return true
	}
	return false
}

func (s *sampler) testPointPass(interior int) {
	c := s.cfg.TestPoints
	if c.Count == 0 {
		return
	}
	types := c.Types
	if len(types) == 0 {
		types = s.lib.Types(board.CategoryTestPoint)
	}
	bases := s.result.Placements[:interior]
	for range c.Count {
		if !s.placeTestPoint(bases, types, c.SpacingMM) {
			s.result.Shortfall[PassTestPoints]++
		}
	}
}

// placeTestPoint drops a probe pad in a ring around a randomly chosen
// interior placement. With nothing to anchor on it falls back to uniform
// draws over the interior zone. Candidates outside the interior zone are
// rejected rather than clamped.
func (s *sampler) placeTestPoint(bases []Placement, types []string, spacing float64) bool {
	b := s.cfg.Board
	margin := b.EdgeMargin()
	for range s.cfg.RetryBudget {
		var x, y float64
		if len(bases) == 0 {
			x = margin + s.rng.Float64()*(b.WidthMM-2*margin)
			y = margin + s.rng.Float64()*(b.HeightMM-2*margin)
		} else {
			base := bases[s.rng.IntN(len(bases))]
			angle := s.rng.Float64() * 2 * math.Pi
			dist := testPointMinOffsetMM + s.rng.Float64()*(testPointMaxOffsetMM-testPointMinOffsetMM)
			x = base.X + dist*math.Cos(angle)
			y = base.Y + dist*math.Sin(angle)
		}
		if !b.Contains(x, y, margin) {
			continue
		}
		typ := s.draw(types)
		if !s.res.Accepts(x, y, spacing) {
			continue
		}
		s.accept(x, y, 0, SizeSmall, typ, spacing)
		return true
	}
	return false
}

func (s *sampler) draw(types []string) string {
	if len(types) == 0 {
		return ""
	}
	return types[s.rng.IntN(len(types))]
}

func (s *sampler) accept(x, y, rot float64, cat SizeCategory, typ string, spacing float64) {
	s.res.Add(x, y, spacing)
	s.result.Placements = append(s.result.Placements, Placement{
		X:        x,
		Y:        y,
		Rotation: rot,
		Category: cat,
		Type:     typ,
	})
}
