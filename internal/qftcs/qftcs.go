// Package qftcs evaluates the scalar-field quantities of quantum field theory
// on a Schwarzschild background: mode decomposition, canonical quantization,
// Bogoliubov coefficients, the flat-space and non-relativistic limits, and the
// observer-dependent vacuum.
//
// Metric quantities are in natural units. Velocities passed to
// NonRelativisticLimit and the modified uncertainty of ObserverVacuum are SI.
package qftcs

import (
	"math"

	"github.com/roach88/horizon/internal/metric"
	"github.com/roach88/horizon/internal/units"
)

// Formalism labels.
const (
	FormalismSchwarzschild = "schwarzschild_qftcs"
	FieldTheoryMinkowski   = "standard_minkowski"
	FieldTheoryCurved      = "curved_spacetime_required"
	MechanicsSchrodinger   = "standard_schrodinger"
	MechanicsRelativistic  = "relativistic_required"
)

// Vacuum states.
const (
	VacuumUnruh     = "unruh_modes"
	VacuumUndefined = "undefined"
)

// WeakFieldThreshold is the Rs/r below which curved-space QFT reduces to the
// Minkowski theory.
const WeakFieldThreshold = 1e-6

// Non-relativistic thresholds on β = v/c.
const (
	NonRelativisticBeta = 0.1
	UltraRelativistic   = 0.99
)

// Field evaluates QFTCS quantities against one constant set.
type Field struct {
	conv *units.Converter
}

// New returns a Field using conv.
func New(conv *units.Converter) *Field {
	return &Field{conv: conv}
}

// Modes is the Schwarzschild mode decomposition at one radius.
type Modes struct {
	GTT           float64 `json:"g_tt"`
	GRR           float64 `json:"g_rr"`
	RsNatural     float64 `json:"rs_natural"`
	RadiusNatural float64 `json:"radius_natural"`
	Formalism     string  `json:"formalism"`
}

// ModeDecomposition returns the metric coefficients for massKg seen at radiusM.
func (f *Field) ModeDecomposition(massKg, radiusM float64) Modes {
	m := f.conv.MustNatural(massKg, units.Mass)
	r := f.conv.MustNatural(radiusM, units.Length)
	c := metric.MetricComponents(m, r)
	return Modes{
		GTT:           c.GTT,
		GRR:           c.GRR,
		RsNatural:     metric.SchwarzschildRadius(m),
		RadiusNatural: r,
		Formalism:     FormalismSchwarzschild,
	}
}

// Quantization is the vacuum selected by canonical quantization.
type Quantization struct {
	Vacuum                  string  `json:"vacuum_state"`
	CharacteristicFrequency float64 `json:"characteristic_frequency"`
}

// CanonicalQuantization selects Unruh modes with ω = √(−g_tt) outside the
// horizon. At or inside it the vacuum is undefined and ω is 0.
func CanonicalQuantization(m Modes) Quantization {
	if m.GTT < 0 {
		return Quantization{Vacuum: VacuumUnruh, CharacteristicFrequency: math.Sqrt(-m.GTT)}
	}
	return Quantization{Vacuum: VacuumUndefined}
}

// BogoliubovResult holds the Minkowski to Unruh mixing coefficients.
type BogoliubovResult struct {
	Alpha            float64 `json:"alpha_coefficient"`
	Beta             float64 `json:"beta_coefficient"`
	ThermalParticles float64 `json:"thermal_particles"`
}

// Bogoliubov returns α = √(ω/(ω+1)), β = √(1/(ω+1)) and N = β² for an Unruh
// vacuum with ω > 0, and zeros otherwise.
func Bogoliubov(q Quantization) BogoliubovResult {
	w := q.CharacteristicFrequency
	if q.Vacuum != VacuumUnruh || w <= 0 {
		return BogoliubovResult{}
	}
	beta := math.Sqrt(1 / (w + 1))
	return BogoliubovResult{
		Alpha:            math.Sqrt(w / (w + 1)),
		Beta:             beta,
		ThermalParticles: beta * beta,
	}
}

// ModeAnalysis chains decomposition, quantization and the Bogoliubov step.
type ModeAnalysis struct {
	Modes        Modes            `json:"modes"`
	Quantization Quantization     `json:"quantization"`
	Bogoliubov   BogoliubovResult `json:"bogoliubov"`
}

// Analyze runs the full mode pipeline for massKg at radiusM.
func (f *Field) Analyze(massKg, radiusM float64) ModeAnalysis {
	modes := f.ModeDecomposition(massKg, radiusM)
	q := CanonicalQuantization(modes)
	return ModeAnalysis{Modes: modes, Quantization: q, Bogoliubov: Bogoliubov(q)}
}

// Limit reports whether the flat-space theory is recovered.
type Limit struct {
	Recovered          bool    `json:"limit_recovered"`
	CurvatureParameter float64 `json:"curvature_parameter"`
	MetricDeviation    float64 `json:"metric_deviation"`
	FieldTheory        string  `json:"qft_type"`
}

// FlatSpaceLimit checks Rs/r against WeakFieldThreshold.
func (f *Field) FlatSpaceLimit(massKg, radiusM float64) Limit {
	m := f.conv.MustNatural(massKg, units.Mass)
	r := f.conv.MustNatural(radiusM, units.Length)
	p := metric.CurvatureParameter(m, r)

	l := Limit{CurvatureParameter: p, MetricDeviation: p, FieldTheory: FieldTheoryCurved}
	if p < WeakFieldThreshold {
		l.Recovered = true
		l.FieldTheory = FieldTheoryMinkowski
	}
	return l
}

// NonRelativistic reports whether standard quantum mechanics is recovered at
// a given speed.
type NonRelativistic struct {
	Recovered  bool    `json:"limit_recovered"`
	Beta       float64 `json:"beta_parameter"`
	Gamma      float64 `json:"gamma_factor"`
	Correction float64 `json:"relativistic_correction"`
	Mechanics  string  `json:"quantum_mechanics"`
}

// NonRelativisticLimit evaluates β = v/c and γ. γ is +Inf from β = 0.99 up.
// Below β = 0.1 the first-order correction β²/2 is reported, otherwise 1 − 1/γ.
func (f *Field) NonRelativisticLimit(velocityMS float64) NonRelativistic {
	beta := velocityMS / f.conv.Constants().C

	gamma := math.Inf(1)
	if beta < UltraRelativistic {
		gamma = 1 / math.Sqrt(1-beta*beta)
	}

	if beta < NonRelativisticBeta {
		return NonRelativistic{
			Recovered:  true,
			Beta:       beta,
			Gamma:      gamma,
			Correction: beta * beta / 2,
			Mechanics:  MechanicsSchrodinger,
		}
	}
	return NonRelativistic{
		Beta:       beta,
		Gamma:      gamma,
		Correction: 1 - 1/gamma,
		Mechanics:  MechanicsRelativistic,
	}
}

// VacuumEffect is the vacuum seen by an observer with dilation τ.
type VacuumEffect struct {
	Alpha                   float64 `json:"alpha_coefficient"`
	Beta                    float64 `json:"beta_coefficient"`
	ApparentParticleDensity float64 `json:"apparent_particle_density"`
	ModifiedUncertainty     float64 `json:"modified_uncertainty"`
}

// ObserverVacuum returns α = √τ, β = √(1 − τ) (0 once τ ≥ 1), the apparent
// particle density β² and the SI uncertainty floor ħ/τ, which is +Inf at τ = 0.
func (f *Field) ObserverVacuum(tau float64) VacuumEffect {
	var beta float64
	if tau < 1 {
		beta = math.Sqrt(1 - tau)
	}

	modified := math.Inf(1)
	if tau > 0 {
		modified = f.conv.Constants().Hbar / tau
	}

	return VacuumEffect{
		Alpha:                   math.Sqrt(tau),
		Beta:                    beta,
		ApparentParticleDensity: beta * beta,
		ModifiedUncertainty:     modified,
	}
}
