// Package dilation compares Schwarzschild time dilation between reference
// frames: a cosmonaut hovering near a black hole, an observer on Earth and a
// particle frame at nuclear scale.
//
// Everything is in geometric units (G = c = 1) with Earth's mass as the unit
// of mass and the kilometre as the unit of length.
package dilation

import (
	"math"

	"github.com/roach88/horizon/internal/grid"
	"github.com/roach88/horizon/internal/metric"
)

// Default scenario parameters.
const (
	DefaultEarthMass     = 1.0
	DefaultBlackHoleMass = 1000.0
	DefaultEarthRadius   = 6371.0
	NuclearScale         = 1e-15
)

// SweepPoints is the number of samples in each sweep.
const SweepPoints = 100

// Simulator holds the masses and radii of a dilation scenario.
type Simulator struct {
	EarthMass     float64
	EarthRadius   float64
	BlackHoleMass float64
}

// NewSimulator returns a simulator with a 1000 Earth-mass black hole.
func NewSimulator() *Simulator {
	return &Simulator{
		EarthMass:     DefaultEarthMass,
		EarthRadius:   DefaultEarthRadius,
		BlackHoleMass: DefaultBlackHoleMass,
	}
}

// CosmonautResult compares a cosmonaut's clock with an Earth clock.
type CosmonautResult struct {
	CosmonautDilation   float64 `json:"cosmonaut_dilation"`
	EarthDilation       float64 `json:"earth_dilation"`
	RelativeDilation    float64 `json:"relative_dilation"`
	CosmonautDistance   float64 `json:"cosmonaut_distance"`
	SchwarzschildRadius float64 `json:"schwarzschild_radius"`
}

// CosmonautVsEarth places the cosmonaut at distanceFactor Schwarzschild radii.
// A factor of 1 or less puts the cosmonaut on or inside the horizon, where the
// relative dilation τ_earth/τ_cosmonaut is +Inf.
func (s *Simulator) CosmonautVsEarth(distanceFactor float64) CosmonautResult {
	rs := metric.SchwarzschildRadius(s.BlackHoleMass)
	r := distanceFactor * rs

	cosmo := metric.TimeDilation(s.BlackHoleMass, r)
	earth := metric.TimeDilation(s.EarthMass, s.EarthRadius)

	return CosmonautResult{
		CosmonautDilation:   cosmo,
		EarthDilation:       earth,
		RelativeDilation:    ratio(earth, cosmo),
		CosmonautDistance:   r,
		SchwarzschildRadius: rs,
	}
}

// QuantumResult compares a macroscopic frame with a particle frame.
type QuantumResult struct {
	QuantumDilation         float64 `json:"quantum_dilation"`
	MacroDilation           float64 `json:"macro_dilation"`
	QuantumRelativeDilation float64 `json:"quantum_relative_dilation"`
	EffectiveQuantumMass    float64 `json:"effective_quantum_mass"`
}

// QuantumAnalogy treats curvatureFactor Earth masses as concentrated at
// nuclear scale and compares the resulting dilation with the Earth surface.
func (s *Simulator) QuantumAnalogy(curvatureFactor float64) QuantumResult {
	m := curvatureFactor * s.EarthMass

	quantum := metric.TimeDilation(m, NuclearScale)
	macro := metric.TimeDilation(s.EarthMass, s.EarthRadius)

	return QuantumResult{
		QuantumDilation:         quantum,
		MacroDilation:           macro,
		QuantumRelativeDilation: ratio(macro, quantum),
		EffectiveQuantumMass:    m,
	}
}

// CosmonautSweep samples the relative dilation from 1.01 to 10 Schwarzschild radii.
func (s *Simulator) CosmonautSweep() grid.Series {
	xs := grid.Linspace(1.01, 10, SweepPoints)
	ys := make([]float64, len(xs))
	for i, f := range xs {
		ys[i] = s.CosmonautVsEarth(f).RelativeDilation
	}
	return grid.Series{Label: "cosmonaut_vs_earth", X: xs, Y: ys}
}

// QuantumSweep samples the quantum analogy over curvature factors 10³..10⁸.
func (s *Simulator) QuantumSweep() grid.Series {
	xs := grid.Logspace(3, 8, SweepPoints)
	ys := make([]float64, len(xs))
	for i, f := range xs {
		ys[i] = s.QuantumAnalogy(f).QuantumRelativeDilation
	}
	return grid.Series{Label: "quantum_analogy", X: xs, Y: ys}
}

func ratio(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	return math.Inf(1)
}
