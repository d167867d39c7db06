package placement

// SizeCategory classifies a component for count and spacing policy.
// The category drives placement behavior only; rendering and material
// properties are downstream concerns.
type SizeCategory string

// Size categories, largest first. Placement processes categories in this
// order so large components get first claim on open board space. The order
// is a documented design bias: changing it changes output distributions
// even with a fixed seed.
const (
	SizeLarge  SizeCategory = "large"
	SizeMedium SizeCategory = "medium"
	SizeSmall  SizeCategory = "small"
)

// CategoryOrder is the fixed processing order for the category passes.
var CategoryOrder = []SizeCategory{SizeLarge, SizeMedium, SizeSmall}

// Valid reports whether c is a known size category.
func (c SizeCategory) Valid() bool {
	switch c {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Placement is a single accepted component position. Placements are
// immutable once created; downstream board construction consumes them
// read-only.
type Placement struct {
	// X, Y is the component center in board-local millimeters.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Rotation is in degrees, in [0, 360).
	Rotation float64 `json:"rotation"`

	// Category is the size class that produced this placement.
	Category SizeCategory `json:"size_category"`

	// Type is the component type drawn from the category vocabulary,
	// e.g. "resistor_0805".
	Type string `json:"component_type"`

	// Reference is the designator assigned at assembly (R1, C2, U3).
	// Empty until Assemble runs.
	Reference string `json:"reference,omitempty"`
}

// Pass names used in Result.Shortfall. The three size categories run
// first (largest to smallest), then the connector and test-point passes.
const (
	PassLarge      = "large"
	PassMedium     = "medium"
	PassSmall      = "small"
	PassConnectors = "connectors"
	PassTestPoints = "testpoints"
)

// Result is the output of one placement pass.
type Result struct {
	// Placements holds accepted placements in acceptance order.
	Placements []Placement

	// Shortfall records, per pass, how many requested slots could not be
	// filled before the retry budget ran out. Missing keys mean zero.
	Shortfall map[string]int
}

// ShortfallTotal returns the total number of unfilled slots.
func (r Result) ShortfallTotal() int {
	total := 0
	for _, n := range r.Shortfall {
		total += n
	}
	return total
}
