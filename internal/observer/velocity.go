package observer

import "math"

// MaxProperVelocity is the clamp applied to proper velocities, as a fraction of c.
const MaxProperVelocity = 0.99 * C

// Interpretation labels for coordinate velocities.
const (
	InterpretationClassical  = "classical"
	InterpretationProjection = "spacetime_projection"
)

// Velocity is a particle velocity seen from the particle frame and from a
// distant coordinate frame.
type Velocity struct {
	VProper         float64 `json:"v_proper"`
	VCoordinate     float64 `json:"v_coordinate"`
	CausalViolation bool    `json:"causal_violation"`
	Interpretation  string  `json:"interpretation"`
}

// ApparentVelocity projects a proper velocity through a dilation factor.
//
// The proper velocity is clamped to min(|v|, 0.99c). The coordinate velocity
// is v_proper/τ and may exceed c; that is a projection of the coordinate
// frame, so CausalViolation is always false. τ == 0 yields +Inf.
func (o *Observer) ApparentVelocity(properVelocity, dilation float64) Velocity {
	vp := math.Min(math.Abs(properVelocity), MaxProperVelocity)
	if math.IsNaN(vp) {
		// An undefined proper velocity is treated as rest so the clamp still holds.
		vp = 0
	}

	var vc float64
	if dilation == 0 {
		vc = math.Inf(1)
	} else {
		vc = vp / dilation
	}

	interp := InterpretationClassical
	if vc > C {
		interp = InterpretationProjection
	}

	return Velocity{
		VProper:         vp,
		VCoordinate:     vc,
		CausalViolation: false,
		Interpretation:  interp,
	}
}
