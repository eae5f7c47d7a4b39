package observer

import (
	"math"

	"github.com/roach88/horizon/internal/metric"
	"github.com/roach88/horizon/internal/units"
)

// MaxApparentSpeed caps the apparent entanglement speed so the result stays
// finite as the propagation time goes to zero.
const MaxApparentSpeed = 1000 * C

// EntanglementResult describes a particle pair in folded spacetime.
// Lengths and times are in natural units.
type EntanglementResult struct {
	Separation        float64 `json:"separation"`
	EffectiveDistance float64 `json:"effective_distance"`
	PropagationTime   float64 `json:"propagation_time"`
	ApparentSpeed     float64 `json:"apparent_speed"`
	FoldingFactor     float64 `json:"folding_factor"`
	Regime            Regime  `json:"regime"`
	CausalViolation   bool    `json:"causal_violation"`
}

// Entanglement models the pair as sharing a curved region whose effective
// separation is shortened by the dominant length scale of the particle mass.
//
// The folding factor is max(λ_Compton, Rs)/separation. Information still
// propagates at c along the effective distance, so CausalViolation is always
// false regardless of the apparent speed.
func (o *Observer) Entanglement(separationM, massKg float64) EntanglementResult {
	pc := o.conv.Constants()

	sep := o.conv.MustNatural(separationM, units.Length)
	m := o.conv.MustNatural(massKg, units.Mass)

	compton := o.conv.MustNatural(pc.Hbar/(massKg*pc.C), units.Length)
	rs := metric.SchwarzschildRadius(m)

	regime := RegimeGravitational
	scale := rs
	if compton > rs {
		regime = RegimeQuantum
		scale = compton
	}

	folding := scale / sep
	effective := sep / (1 + folding)
	propagation := effective / C

	apparent := C
	if propagation > 0 {
		apparent = sep / propagation
	}

	return EntanglementResult{
		Separation:        sep,
		EffectiveDistance: effective,
		PropagationTime:   propagation,
		ApparentSpeed:     math.Min(apparent, MaxApparentSpeed),
		FoldingFactor:     folding,
		Regime:            regime,
		CausalViolation:   false,
	}
}
