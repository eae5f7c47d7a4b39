package units

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedUnitKind is returned when a unit tag is not mass, length or time.
var ErrUnrecognizedUnitKind = errors.New("unrecognized unit kind")

// UnitKind tags the physical dimension of a quantity.
type UnitKind string

// Recognized unit kinds.
const (
	Mass   UnitKind = "mass"
	Length UnitKind = "length"
	Time   UnitKind = "time"
)

// ValidUnitKinds lists the accepted tags in a stable order.
var ValidUnitKinds = []UnitKind{Mass, Length, Time}

// UnitError reports the offending tag. It unwraps to ErrUnrecognizedUnitKind.
type UnitError struct {
	Kind string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s: %q (want one of %v)", ErrUnrecognizedUnitKind, e.Kind, ValidUnitKinds)
}

func (e *UnitError) Unwrap() error {
	return ErrUnrecognizedUnitKind
}

// ParseUnitKind converts a string tag into a UnitKind.
func ParseUnitKind(s string) (UnitKind, error) {
	for _, k := range ValidUnitKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", &UnitError{Kind: s}
}

// NaturalQuantity is a dimensionless value in Planck units, tagged with the
// dimension it was converted from.
type NaturalQuantity struct {
	Value float64  `json:"value"`
	Kind  UnitKind `json:"kind"`
}

// Converter maps SI values to natural units for one constant set.
// It is immutable and safe for concurrent use.
type Converter struct {
	constants PhysicalConstants
	scales    PlanckScales
}

// NewConverter derives the Planck scales for pc.
func NewConverter(pc PhysicalConstants) *Converter {
	return &Converter{
		constants: pc,
		scales:    DerivePlanckScales(pc),
	}
}

// Constants returns the constant set the converter was built from.
func (c *Converter) Constants() PhysicalConstants {
	return c.constants
}

// Scales returns the derived Planck scales.
func (c *Converter) Scales() PlanckScales {
	return c.scales
}

// Scale returns the Planck scale for kind.
func (c *Converter) Scale(kind UnitKind) (float64, error) {
	switch kind {
	case Mass:
		return c.scales.Mass, nil
	case Length:
		return c.scales.Length, nil
	case Time:
		return c.scales.Time, nil
	default:
		return 0, &UnitError{Kind: string(kind)}
	}
}

// ToNatural divides an SI value by the Planck scale of kind.
func (c *Converter) ToNatural(value float64, kind UnitKind) (NaturalQuantity, error) {
	scale, err := c.Scale(kind)
	if err != nil {
		return NaturalQuantity{}, err
	}
	return NaturalQuantity{Value: value / scale, Kind: kind}, nil
}

// FromNatural multiplies a natural quantity back into SI units.
func (c *Converter) FromNatural(q NaturalQuantity) (float64, error) {
	scale, err := c.Scale(q.Kind)
	if err != nil {
		return 0, err
	}
	return q.Value * scale, nil
}

// MustNatural is ToNatural for kinds known at compile time.
// Panics on an unrecognized kind.
func (c *Converter) MustNatural(value float64, kind UnitKind) float64 {
	q, err := c.ToNatural(value, kind)
	if err != nil {
		panic(err)
	}
	return q.Value
}
