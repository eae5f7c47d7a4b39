package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/horizon/internal/grid"
)

// ErrUnknownSweep is returned by Sweep for a name not in SweepNames.
var ErrUnknownSweep = errors.New("unknown sweep")

// Interference sweep geometry: 1 µm slits, screen at 1 m.
const (
	SweepSlitSeparation = 1e-6
	SweepScreenDistance = 1.0
)

// SweepNames lists the available plot data series.
var SweepNames = []string{"cosmonaut", "entanglement", "interference", "quantum", "uncertainty", "velocity"}

// SweepOptions parameterizes mass-dependent sweeps.
type SweepOptions struct {
	// MassKg is the particle mass for the entanglement and uncertainty
	// sweeps. Zero means the electron mass of the engine's constant set.
	MassKg float64
}

// Sweep returns the named plot data series. Sweeps are not recorded.
func (e *Engine) Sweep(name string, opts SweepOptions) (grid.Series, error) {
	switch name {
	case "velocity":
		return e.kit.obs.VelocitySweep(), nil
	case "entanglement":
		mass, err := e.sweepMass(name, opts)
		if err != nil {
			return grid.Series{}, err
		}
		return e.kit.obs.EntanglementSweep(mass), nil
	case "uncertainty":
		mass, err := e.sweepMass(name, opts)
		if err != nil {
			return grid.Series{}, err
		}
		return e.kit.obs.UncertaintySweep(mass), nil
	case "cosmonaut":
		return e.kit.sim.CosmonautSweep(), nil
	case "quantum":
		return e.kit.sim.QuantumSweep(), nil
	case "interference":
		s := grid.Series{Label: "interference"}
		for x, intensity := range e.kit.obs.InterferenceSeq(SweepSlitSeparation, SweepScreenDistance) {
			s.X = append(s.X, x)
			s.Y = append(s.Y, intensity)
		}
		return s, nil
	default:
		return grid.Series{}, fmt.Errorf("%w %q (want one of %v)", ErrUnknownSweep, name, SweepNames)
	}
}

// sweepMass resolves the particle mass of a mass-dependent sweep.
func (e *Engine) sweepMass(name string, opts SweepOptions) (float64, error) {
	mass := opts.MassKg
	if mass == 0 {
		return e.set.Constants.ElectronMass, nil
	}
	if mass < 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return 0, invalidArgument("sweep."+name, "mass must be finite and > 0, got %v", mass)
	}
	return mass, nil
}
