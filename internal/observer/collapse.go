package observer

import "math"

// CollapseResult models measurement as synchronization of the observer frame
// with the particle frame.
type CollapseResult struct {
	ProperEvolutionTime float64 `json:"proper_evolution_time"`
	CollapseProbability float64 `json:"collapse_probability"`
	FrameSyncFactor     float64 `json:"frame_sync_factor"`
}

// Collapse returns the probability 1 − exp(−t/(t·τ)) that a measurement of
// duration t synchronizes the frames. A fully dilated frame (τ == 0) always
// collapses; a non-positive measurement time never does.
func (o *Observer) Collapse(measurementTime, frameDilation float64) CollapseResult {
	proper := measurementTime * frameDilation

	var p float64
	switch {
	case measurementTime <= 0:
		p = 0
	case proper <= 0:
		p = 1
	default:
		p = 1 - math.Exp(-measurementTime/proper)
	}

	return CollapseResult{
		ProperEvolutionTime: proper,
		CollapseProbability: p,
		FrameSyncFactor:     frameDilation,
	}
}
