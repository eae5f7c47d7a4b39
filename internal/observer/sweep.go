package observer

import (
	"math"

	"github.com/roach88/horizon/internal/grid"
)

// SweepPoints is the number of samples in every sweep.
const SweepPoints = 100

// PlotCap bounds ratios to c so log-scale series stay finite.
const PlotCap = 1000.0

// VelocitySweep returns v_coordinate/c for a 0.1c particle across dilation
// factors 1e-6..1, capped at PlotCap.
func (o *Observer) VelocitySweep() grid.Series {
	xs := grid.Logspace(-6, 0, SweepPoints)
	ys := make([]float64, len(xs))
	for i, tau := range xs {
		v := o.ApparentVelocity(0.1*C, tau)
		ys[i] = math.Min(v.VCoordinate/C, PlotCap)
	}
	return grid.Series{Label: "apparent_velocity", X: xs, Y: ys}
}

// EntanglementSweep returns apparent speed/c over separations 1e-9..1e-3 m.
func (o *Observer) EntanglementSweep(massKg float64) grid.Series {
	xs := grid.Logspace(-9, -3, SweepPoints)
	ys := make([]float64, len(xs))
	for i, d := range xs {
		ys[i] = o.Entanglement(d, massKg).ApparentSpeed / C
	}
	return grid.Series{Label: "entanglement", X: xs, Y: ys}
}

// UncertaintySweep returns the modified uncertainty product over position
// uncertainties 1e-15..1e-9 m.
func (o *Observer) UncertaintySweep(massKg float64) grid.Series {
	xs := grid.Logspace(-15, -9, SweepPoints)
	ys := make([]float64, len(xs))
	for i, dx := range xs {
		ys[i] = o.Uncertainty(dx, massKg).UncertaintyProduct
	}
	return grid.Series{Label: "uncertainty", X: xs, Y: ys}
}
