// Package predict computes experimental signatures of the horizon model
// together with the detectability thresholds they are judged against.
//
// All inputs and outputs are SI.
package predict

import (
	"math"

	"github.com/roach88/horizon/internal/units"
)

// Technology and observation thresholds.
const (
	InterferometerLimit   = 1e-10 // best fringe precision, in fringes
	ObservableHubbleShift = 1e-8  // smallest resolvable ΔH/H₀
	ReferenceMassKg       = 1e-15 // mass scale of the granularity correction
)

const secondsPerYear = 365 * 24 * 3600

// Timescales the decoherence time is compared against, in seconds.
const (
	UniverseAge  = 13.8e9 * secondsPerYear
	HumanCentury = 100 * secondsPerYear
)

// Planck 2018 cosmology.
const (
	HubbleConstant      = 67.4     // km/s/Mpc
	DarkEnergyFraction  = 0.685    // Ω_Λ
	CriticalDensity     = 8.62e-27 // kg/m³
	PlanckDensity       = 5.16e96  // kg/m³
	cosmoPlanckLength   = 1.616e-35
	metresPerMegaparsec = 3.086e22
)

// Predictor evaluates predictions against one constant set.
type Predictor struct {
	pc     units.PhysicalConstants
	scales units.PlanckScales
}

// New returns a Predictor using the constants and Planck scales of conv.
func New(conv *units.Converter) *Predictor {
	return &Predictor{pc: conv.Constants(), scales: conv.Scales()}
}

// AtomInterferometry is the gravitational phase shift of a free-fall atom
// interferometer and the correction the model adds to it.
type AtomInterferometry struct {
	ClassicalShift    float64 `json:"classical_shift"`
	QGCoupling        float64 `json:"qg_coupling"`
	QGCorrection      float64 `json:"qg_correction"`
	TotalShift        float64 `json:"total_shift"`
	RelativeDeviation float64 `json:"relative_deviation"`
	RequiredPrecision float64 `json:"required_precision"`
	TechnologyLimit   float64 `json:"current_tech_limit"`
	TechnologyGap     float64 `json:"technological_gap"`
	Testable          bool    `json:"testable"`
}

// AtomInterferometry evaluates Δφ = m·g·h/ħ for an atom of atomMassAMU
// dropped through heightM, with the coupling α = (l_p/(h·10⁻¹⁰))².
func (p *Predictor) AtomInterferometry(heightM, atomMassAMU float64) AtomInterferometry {
	m := atomMassAMU * p.pc.AtomicMassUnit
	classical := m * units.StandardGravity * heightM / p.pc.Hbar

	coupling := math.Pow(p.scales.Length/(heightM*1e-10), 2)
	correction := classical * coupling
	required := correction / (2 * math.Pi)

	return AtomInterferometry{
		ClassicalShift:    classical,
		QGCoupling:        coupling,
		QGCorrection:      correction,
		TotalShift:        classical + correction,
		RelativeDeviation: correction / classical,
		RequiredPrecision: required,
		TechnologyLimit:   InterferometerLimit,
		TechnologyGap:     InterferometerLimit / required,
		Testable:          required > InterferometerLimit,
	}
}

// Decoherence is the gravitational decoherence of an entangled pair.
type Decoherence struct {
	ClassicalRate      float64 `json:"classical_rate"`
	QGRate             float64 `json:"qg_correction_rate"`
	TotalRate          float64 `json:"total_rate"`
	DecoherenceTime    float64 `json:"decoherence_time"`
	RelativeCorrection float64 `json:"relative_correction"`
	VsUniverseAge      float64 `json:"vs_universe_age"`
	VsHumanScale       float64 `json:"vs_human_scale"`
	Detectable         bool    `json:"detectable"`
}

// Decoherence evaluates γ = G·m/(c³d²) and its granularity correction
// γ·(l_p/d)²·(m/10⁻¹⁵)^⅓. A zero total rate gives an infinite decoherence time.
// The result is detectable when decoherence completes within a human century.
func (p *Predictor) Decoherence(separationM, massKg float64) Decoherence {
	c3 := p.pc.C * p.pc.C * p.pc.C
	classical := p.pc.G * massKg / (c3 * separationM * separationM)

	nonlocal := math.Pow(p.scales.Length/separationM, 2)
	qg := classical * nonlocal * math.Cbrt(massKg/ReferenceMassKg)
	total := classical + qg

	tau := math.Inf(1)
	if total > 0 {
		tau = 1 / total
	}

	return Decoherence{
		ClassicalRate:      classical,
		QGRate:             qg,
		TotalRate:          total,
		DecoherenceTime:    tau,
		RelativeCorrection: qg / classical,
		VsUniverseAge:      tau / UniverseAge,
		VsHumanScale:       tau / HumanCentury,
		Detectable:         tau < HumanCentury,
	}
}

// Cosmological is the vacuum-energy correction at a redshift and its effect
// on the Hubble rate.
type Cosmological struct {
	ObservedVacuumDensity float64 `json:"observed_vacuum_density"`
	Renormalization       float64 `json:"renormalization"`
	QGCorrection          float64 `json:"qg_correction"`
	RelativeCorrection    float64 `json:"relative_correction"`
	HubbleCorrection      float64 `json:"hubble_correction"`
	Observable            bool    `json:"observable"`
}

// Cosmological evaluates η = (H₀·l_p/c)²(1+z), the density shift ρ_P·η and the
// resulting ΔH/H₀ = √(8πG·δρ/3)/H₀.
func (p *Predictor) Cosmological(redshift float64) Cosmological {
	observed := DarkEnergyFraction * CriticalDensity

	eta := math.Pow(HubbleConstant*cosmoPlanckLength/p.pc.C, 2) * (1 + redshift)
	delta := PlanckDensity * eta

	h0 := HubbleConstant * 1000 / metresPerMegaparsec
	hubble := math.Sqrt(8*math.Pi*p.pc.G*delta/3) / h0

	return Cosmological{
		ObservedVacuumDensity: observed,
		Renormalization:       eta,
		QGCorrection:          delta,
		RelativeCorrection:    delta / observed,
		HubbleCorrection:      hubble,
		Observable:            math.Abs(hubble) > ObservableHubbleShift,
	}
}
