package board

import (
	"fmt"
	"sort"

	"github.com/zradlicz/pcb-dataset-generator/pkg/errors"
)

// Component describes one entry in the component library: a placeable part
// with its KiCad footprint name and physical dimensions.
type Component struct {
	Type      string  // Library key, e.g. "resistor_0805"
	Footprint string  // Full footprint identifier for board construction
	Prefix    string  // Reference designator prefix (R, C, U, J, TP, D, L)
	WidthMM   float64 // Body width in mm
	HeightMM  float64 // Body height in mm
	Pins      int
}

// Library maps component types to their physical descriptions and hands out
// sequential reference designators (R1, R2, C1, ...). The zero value is not
// usable; call NewLibrary.
type Library struct {
	components map[string]Component
	byCategory map[string][]string
	counters   map[string]int
}

// Categories recognized by the library. These mirror the placement size
// categories plus the two special passes.
const (
	CategorySmall     = "small"
	CategoryMedium    = "medium"
	CategoryLarge     = "large"
	CategoryConnector = "connector"
	CategoryTestPoint = "testpoint"
)

// NewLibrary builds the default component library. The selection is a
// condensed version of the full KiCad footprint set: the most common SMD
// passives, SO/QFP/BGA packages, pin headers, and test points.
func NewLibrary() *Library {
	l := &Library{
		components: make(map[string]Component),
		byCategory: make(map[string][]string),
		counters:   make(map[string]int),
	}

	add := func(category string, c Component) {
		l.components[c.Type] = c
		l.byCategory[category] = append(l.byCategory[category], c.Type)
	}

	// Small SMD passives
	add(CategorySmall, Component{"resistor_0402", "Resistor_SMD:R_0402_1005Metric", "R", 1.0, 0.5, 2})
	add(CategorySmall, Component{"resistor_0603", "Resistor_SMD:R_0603_1608Metric", "R", 1.6, 0.8, 2})
	add(CategorySmall, Component{"resistor_0805", "Resistor_SMD:R_0805_2012Metric", "R", 2.0, 1.25, 2})
	add(CategorySmall, Component{"capacitor_0402", "Capacitor_SMD:C_0402_1005Metric", "C", 1.0, 0.5, 2})
	add(CategorySmall, Component{"capacitor_0603", "Capacitor_SMD:C_0603_1608Metric", "C", 1.6, 0.8, 2})
	add(CategorySmall, Component{"capacitor_0805", "Capacitor_SMD:C_0805_2012Metric", "C", 2.0, 1.25, 2})
	add(CategorySmall, Component{"inductor_0805", "Inductor_SMD:L_0805_2012Metric", "L", 2.0, 1.25, 2})
	add(CategorySmall, Component{"diode_sod123", "Diode_SMD:D_SOD-123", "D", 2.7, 1.6, 2})
	add(CategorySmall, Component{"led_0603", "LED_SMD:LED_0603_1608Metric", "D", 1.6, 0.8, 2})
	add(CategorySmall, Component{"led_0805", "LED_SMD:LED_0805_2012Metric", "D", 2.0, 1.25, 2})

	// Medium ICs
	add(CategoryMedium, Component{"soic8", "Package_SO:SOIC-8_3.9x4.9mm_P1.27mm", "U", 3.9, 4.9, 8})
	add(CategoryMedium, Component{"soic14", "Package_SO:SOIC-14_3.9x8.7mm_P1.27mm", "U", 3.9, 8.7, 14})
	add(CategoryMedium, Component{"soic16", "Package_SO:SOIC-16_3.9x9.9mm_P1.27mm", "U", 3.9, 9.9, 16})
	add(CategoryMedium, Component{"tssop16", "Package_SO:TSSOP-16_4.4x5mm_P0.65mm", "U", 4.4, 5.0, 16})
	add(CategoryMedium, Component{"tssop20", "Package_SO:TSSOP-20_4.4x6.5mm_P0.65mm", "U", 4.4, 6.5, 20})
	add(CategoryMedium, Component{"qfp32", "Package_QFP:LQFP-32_7x7mm_P0.8mm", "U", 7.0, 7.0, 32})
	add(CategoryMedium, Component{"qfp48", "Package_QFP:LQFP-48_7x7mm_P0.5mm", "U", 7.0, 7.0, 48})
	add(CategoryMedium, Component{"qfp64", "Package_QFP:LQFP-64_10x10mm_P0.5mm", "U", 10.0, 10.0, 64})

	// Large ICs
	add(CategoryLarge, Component{"qfp100", "Package_QFP:LQFP-100_14x14mm_P0.5mm", "U", 14.0, 14.0, 100})
	add(CategoryLarge, Component{"qfp144", "Package_QFP:LQFP-144_20x20mm_P0.5mm", "U", 20.0, 20.0, 144})
	add(CategoryLarge, Component{"bga100", "Package_BGA:BGA-100_11.0x11.0mm_Layout10x10_P1.0mm_Ball0.5mm_Pad0.4mm_NSMD", "U", 11.0, 11.0, 100})
	add(CategoryLarge, Component{"bga144", "Package_BGA:BGA-144_13.0x13.0mm_Layout12x12_P1.0mm", "U", 13.0, 13.0, 144})
	add(CategoryLarge, Component{"bga256", "Package_BGA:BGA-256_17.0x17.0mm_Layout16x16_P1.0mm_Ball0.5mm_Pad0.4mm_NSMD", "U", 17.0, 17.0, 256})

	// Connectors (edge zone only)
	add(CategoryConnector, Component{"connector_2pin", "Connector_PinHeader_2.54mm:PinHeader_1x02_P2.54mm_Vertical", "J", 2.54, 5.08, 2})
	add(CategoryConnector, Component{"connector_4pin", "Connector_PinHeader_2.54mm:PinHeader_1x04_P2.54mm_Vertical", "J", 2.54, 10.16, 4})
	add(CategoryConnector, Component{"connector_6pin", "Connector_PinHeader_2.54mm:PinHeader_1x06_P2.54mm_Vertical", "J", 2.54, 15.24, 6})
	add(CategoryConnector, Component{"connector_8pin", "Connector_PinHeader_2.54mm:PinHeader_1x08_P2.54mm_Vertical", "J", 2.54, 20.32, 8})
	add(CategoryConnector, Component{"connector_2x5", "Connector_PinHeader_2.54mm:PinHeader_2x05_P2.54mm_Vertical", "J", 5.08, 12.7, 10})
	add(CategoryConnector, Component{"connector_2x8", "Connector_PinHeader_2.54mm:PinHeader_2x08_P2.54mm_Vertical", "J", 5.08, 20.32, 16})

	// Test points
	add(CategoryTestPoint, Component{"testpoint_1mm", "TestPoint:TestPoint_Pad_D1.0mm", "TP", 1.0, 1.0, 1})
	add(CategoryTestPoint, Component{"testpoint_1_5mm", "TestPoint:TestPoint_Pad_D1.5mm", "TP", 1.5, 1.5, 1})
	add(CategoryTestPoint, Component{"testpoint_2mm", "TestPoint:TestPoint_Pad_D2.0mm", "TP", 2.0, 2.0, 1})

	return l
}

// Lookup returns the component entry for the given type.
func (l *Library) Lookup(componentType string) (Component, error) {
	c, ok := l.components[componentType]
	if !ok {
		return Component{}, errors.New(errors.ErrCodeNotFound, "component type %q not in library", componentType)
	}
	return c, nil
}

// Types returns the component type vocabulary for a category, in a stable
// order so that indexed random draws are reproducible.
func (l *Library) Types(category string) []string {
	types := append([]string(nil), l.byCategory[category]...)
	sort.Strings(types)
	return types
}

// NextReference returns the next reference designator for the component's
// prefix, e.g. R1, R2, then C1 for the first capacitor.
func (l *Library) NextReference(componentType string) string {
	c, ok := l.components[componentType]
	prefix := "X"
	if ok {
		prefix = c.Prefix
	}
	l.counters[prefix]++
	return fmt.Sprintf("%s%d", prefix, l.counters[prefix])
}

// ResetReferences clears the designator counters. Each sample numbers its
// components from 1.
func (l *Library) ResetReferences() {
	l.counters = make(map[string]int)
}
