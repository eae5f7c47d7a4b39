package units

import (
	"fmt"
	"math"
)

// CODATA 2018 exact and recommended values (SI).
const (
	SpeedOfLight       = 299792458.0       // m/s
	GravitationalConst = 6.67430e-11       // m³/(kg·s²)
	ReducedPlanck      = 1.054571817e-34   // J·s
	ElectronMassKg     = 9.1093837015e-31  // kg
	ProtonMassKg       = 1.67262192369e-27 // kg
	AtomicMassUnitKg   = 1.66053906660e-27 // kg
)

// Astronomical reference bodies.
const (
	EarthMassKg     = 5.9722e24  // kg
	EarthRadiusM    = 6.371e6    // m, mean radius
	SunMassKg       = 1.98847e30 // kg, IAU nominal
	StandardGravity = 9.81       // m/s², surface value used by the interferometry estimate
)

// PhysicalConstants is the read-only constant table every conversion is based on.
type PhysicalConstants struct {
	C              float64 `json:"c"`
	G              float64 `json:"G"`
	Hbar           float64 `json:"hbar"`
	ElectronMass   float64 `json:"electron_mass"`
	ProtonMass     float64 `json:"proton_mass"`
	AtomicMassUnit float64 `json:"atomic_mass_unit"`
	EarthMass      float64 `json:"earth_mass"`
	EarthRadius    float64 `json:"earth_radius"`
	SunMass        float64 `json:"sun_mass"`
}

// CODATA returns the default constant set.
func CODATA() PhysicalConstants {
	return PhysicalConstants{
		C:              SpeedOfLight,
		G:              GravitationalConst,
		Hbar:           ReducedPlanck,
		ElectronMass:   ElectronMassKg,
		ProtonMass:     ProtonMassKg,
		AtomicMassUnit: AtomicMassUnitKg,
		EarthMass:      EarthMassKg,
		EarthRadius:    EarthRadiusM,
		SunMass:        SunMassKg,
	}
}

// Fields returns the constants keyed by their serialized names.
// Order-independent consumers (hashing, logging) use this instead of reflection.
func (pc PhysicalConstants) Fields() map[string]float64 {
	return map[string]float64{
		"c":                pc.C,
		"G":                pc.G,
		"hbar":             pc.Hbar,
		"electron_mass":    pc.ElectronMass,
		"proton_mass":      pc.ProtonMass,
		"atomic_mass_unit": pc.AtomicMassUnit,
		"earth_mass":       pc.EarthMass,
		"earth_radius":     pc.EarthRadius,
		"sun_mass":         pc.SunMass,
	}
}

// FromFields rebuilds a constant table from the map produced by Fields.
// Every field must be present.
func FromFields(m map[string]float64) (PhysicalConstants, error) {
	var pc PhysicalConstants
	targets := map[string]*float64{
		"c":                &pc.C,
		"G":                &pc.G,
		"hbar":             &pc.Hbar,
		"electron_mass":    &pc.ElectronMass,
		"proton_mass":      &pc.ProtonMass,
		"atomic_mass_unit": &pc.AtomicMassUnit,
		"earth_mass":       &pc.EarthMass,
		"earth_radius":     &pc.EarthRadius,
		"sun_mass":         &pc.SunMass,
	}
	for name, dst := range targets {
		v, ok := m[name]
		if !ok {
			return PhysicalConstants{}, fmt.Errorf("constant %s is missing", name)
		}
		*dst = v
	}
	if err := pc.Validate(); err != nil {
		return PhysicalConstants{}, err
	}
	return pc, nil
}

// Validate checks that every constant is finite and strictly positive.
func (pc PhysicalConstants) Validate() error {
	for name, v := range pc.Fields() {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("constant %s must be finite and positive, got %v", name, v)
		}
	}
	return nil
}

// SchwarzschildRadius returns 2GM/c² in metres.
func (pc PhysicalConstants) SchwarzschildRadius(massKg float64) float64 {
	return 2 * pc.G * massKg / (pc.C * pc.C)
}

// PlanckScales holds the Planck mass, length and time for a constant set.
type PlanckScales struct {
	Mass   float64 `json:"mass"`   // kg
	Length float64 `json:"length"` // m
	Time   float64 `json:"time"`   // s
}

// DerivePlanckScales computes the Planck scales from pc.
func DerivePlanckScales(pc PhysicalConstants) PlanckScales {
	return PlanckScales{
		Mass:   math.Sqrt(pc.Hbar * pc.C / pc.G),
		Length: math.Sqrt(pc.Hbar * pc.G / math.Pow(pc.C, 3)),
		Time:   math.Sqrt(pc.Hbar * pc.G / math.Pow(pc.C, 5)),
	}
}
