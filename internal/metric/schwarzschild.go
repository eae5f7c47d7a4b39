// Package metric evaluates the Schwarzschild metric in geometric units (G = c = 1).
//
// Masses and radii must already be expressed in the same natural unit system;
// package units does that conversion for SI inputs.
package metric

import "math"

// SchwarzschildRadius returns Rs = 2m.
func SchwarzschildRadius(m float64) float64 {
	return 2 * m
}

// TimeDilation returns τ = √(1 − Rs/r), the ratio of proper to coordinate time
// for a static observer at radius r outside a mass m.
//
// At or inside the horizon (r <= Rs) the result is exactly 0. That is the
// degenerate regime, not an error.
func TimeDilation(m, r float64) float64 {
	rs := SchwarzschildRadius(m)
	if r <= rs {
		return 0.0
	}
	return math.Sqrt(1 - rs/r)
}

// Components holds the diagonal time and radial metric coefficients.
type Components struct {
	GTT float64 `json:"g_tt"`
	GRR float64 `json:"g_rr"`
}

// MetricComponents returns g_tt = −(1 − Rs/r) and g_rr = (1 − Rs/r)⁻¹.
// At or inside the horizon g_tt is 0 and g_rr is +Inf.
func MetricComponents(m, r float64) Components {
	rs := SchwarzschildRadius(m)
	if r <= rs {
		return Components{GTT: 0, GRR: math.Inf(1)}
	}
	return Components{
		GTT: -(1 - rs/r),
		GRR: 1 / (1 - rs/r),
	}
}

// CurvatureParameter returns Rs/r, the dimensionless weak-field expansion parameter.
func CurvatureParameter(m, r float64) float64 {
	return SchwarzschildRadius(m) / r
}
