package observer

import (
	"math"

	"github.com/roach88/horizon/internal/units"
)

// UncertaintyResult is the Heisenberg baseline next to its dilation-modified
// counterpart. Position and momentum values are SI.
type UncertaintyResult struct {
	PositionUncertainty float64 `json:"position_uncertainty"`
	PositionNatural     float64 `json:"position_natural"`
	MomentumStandard    float64 `json:"momentum_uncertainty_standard"`
	MomentumModified    float64 `json:"momentum_uncertainty_modified"`
	UncertaintyProduct  float64 `json:"uncertainty_product"`
	DilationFactor      float64 `json:"dilation_factor"`
	EnhancementFactor   float64 `json:"enhancement_factor"`
}

// Uncertainty evaluates Δp = ħ/Δx and its modification Δp/τ, where τ is the
// dilation of the particle mass at the scale Δx.
//
// When τ == 0 the modified momentum, the product and the enhancement factor
// are all +Inf. The standard momentum never depends on τ.
func (o *Observer) Uncertainty(positionM, massKg float64) UncertaintyResult {
	hbar := o.conv.Constants().Hbar

	tau := o.Dilation(massKg, positionM)
	standard := hbar / positionM

	modified := math.Inf(1)
	product := math.Inf(1)
	enhancement := math.Inf(1)
	if tau > 0 {
		modified = standard / tau
		product = positionM * modified
		enhancement = product / hbar
	}

	return UncertaintyResult{
		PositionUncertainty: positionM,
		PositionNatural:     o.conv.MustNatural(positionM, units.Length),
		MomentumStandard:    standard,
		MomentumModified:    modified,
		UncertaintyProduct:  product,
		DilationFactor:      tau,
		EnhancementFactor:   enhancement,
	}
}
