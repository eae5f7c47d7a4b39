// Package observer implements the relativistic-observer formula set: dilation,
// apparent velocity, entanglement folding, modified uncertainty, double-slit
// interference and the frame-synchronization collapse model.
//
// All inputs are SI values. Every method converts through a units.Converter
// and evaluates in natural units where c = G = ħ = 1, unless a result field
// is documented as SI. Methods are pure and the Observer is safe for
// concurrent use.
package observer

import (
	"errors"

	"github.com/roach88/horizon/internal/metric"
	"github.com/roach88/horizon/internal/units"
)

// C is the speed of light in natural units. Velocities are fractions of it.
const C = 1.0

// ErrInvalidArgument is returned for inputs outside an operation's domain.
var ErrInvalidArgument = errors.New("invalid argument")

// Regime names the dominant length scale in entanglement folding.
type Regime string

const (
	RegimeQuantum       Regime = "quantum"
	RegimeGravitational Regime = "gravitational"
)

// Observer evaluates formulas against one constant set.
type Observer struct {
	conv *units.Converter
}

// New returns an Observer using conv for all unit conversions.
func New(conv *units.Converter) *Observer {
	return &Observer{conv: conv}
}

// Converter returns the converter the observer was built with.
func (o *Observer) Converter() *units.Converter {
	return o.conv
}

// Dilation returns τ = √(1 − Rs/r) for a mass (kg) seen at a length scale (m).
// It is exactly 0 when the length is at or inside the Schwarzschild radius.
func (o *Observer) Dilation(massKg, lengthM float64) float64 {
	m := o.conv.MustNatural(massKg, units.Mass)
	r := o.conv.MustNatural(lengthM, units.Length)
	return metric.TimeDilation(m, r)
}
