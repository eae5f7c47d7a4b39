package observer

import (
	"fmt"
	"iter"
	"math"

	"github.com/roach88/horizon/internal/grid"
)

// ScreenSamples is the number of screen positions in an interference pattern.
const ScreenSamples = 1000

// ScreenHalfWidth is the half width of the sampled screen in slit separations.
const ScreenHalfWidth = 5

// LegacyCurvatureCorrection is the fixed correction coefficient used before
// the Planck-length-derived one.
const LegacyCurvatureCorrection = 1e-6

// hbarC is ħ·c in natural units.
const hbarC = 1.0

// Pattern is a double-slit intensity curve.
type Pattern struct {
	Positions      []float64 `json:"positions"`
	Intensity      []float64 `json:"intensity"`
	PathDifference []float64 `json:"path_difference"`
	Correction     float64   `json:"correction"`
}

type interferenceConfig struct {
	fixed    bool
	constant float64
}

// InterferenceOption configures the curvature correction term.
type InterferenceOption func(*interferenceConfig)

// WithFixedCorrection replaces the Planck-derived coefficient l_p/L with k.
func WithFixedCorrection(k float64) InterferenceOption {
	return func(c *interferenceConfig) {
		c.fixed = true
		c.constant = k
	}
}

// CurvatureCorrection returns the coefficient k in 1 + k·sin(Δ) for a screen
// at screenDistance metres.
func (o *Observer) CurvatureCorrection(screenDistance float64, opts ...InterferenceOption) float64 {
	cfg := interferenceConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fixed {
		return cfg.constant
	}
	return o.conv.Scales().Length / screenDistance
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be finite and positive, got %v", ErrInvalidArgument, name, v)
	}
	return nil
}

func validateSlits(slitSeparation, screenDistance float64) error {
	if err := positive("slit_separation", slitSeparation); err != nil {
		return err
	}
	return positive("screen_distance", screenDistance)
}

// sample evaluates the corrected path difference and intensity at screen position x.
func sample(x, d, l, k float64) (pathDiff, intensity float64) {
	path1 := math.Sqrt(l*l + (x-d/2)*(x-d/2))
	path2 := math.Sqrt(l*l + (x+d/2)*(x+d/2))
	diff := path2 - path1

	corrected := diff * (1 + k*math.Sin(diff))
	phase := 2 * math.Pi * corrected / hbarC
	cos := math.Cos(phase)
	return corrected, cos * cos
}

// InterferenceSeq yields (position, intensity) pairs lazily. The sequence is
// a pure function of its inputs, so it can be ranged over any number of times.
// Invalid inputs yield nothing; use Interference to get the error.
func (o *Observer) InterferenceSeq(slitSeparation, screenDistance float64, opts ...InterferenceOption) iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		if validateSlits(slitSeparation, screenDistance) != nil {
			return
		}
		k := o.CurvatureCorrection(screenDistance, opts...)
		lo, hi := -ScreenHalfWidth*slitSeparation, ScreenHalfWidth*slitSeparation
		for i := 0; i < ScreenSamples; i++ {
			x := grid.At(lo, hi, ScreenSamples, i)
			_, intensity := sample(x, slitSeparation, screenDistance, k)
			if !yield(x, intensity) {
				return
			}
		}
	}
}

// Interference samples the double-slit pattern over [-5d, 5d].
//
// Each classical path difference Δ is corrected to Δ·(1 + k·sin Δ) and the
// intensity is cos²(2πΔ'/(ħc)). Intensities are always within [0, 1].
func (o *Observer) Interference(slitSeparation, screenDistance float64, opts ...InterferenceOption) (Pattern, error) {
	if err := validateSlits(slitSeparation, screenDistance); err != nil {
		return Pattern{}, err
	}

	k := o.CurvatureCorrection(screenDistance, opts...)
	positions := grid.Linspace(-ScreenHalfWidth*slitSeparation, ScreenHalfWidth*slitSeparation, ScreenSamples)

	p := Pattern{
		Positions:      positions,
		Intensity:      make([]float64, len(positions)),
		PathDifference: make([]float64, len(positions)),
		Correction:     k,
	}
	for i, x := range positions {
		p.PathDifference[i], p.Intensity[i] = sample(x, slitSeparation, screenDistance, k)
	}
	return p, nil
}
