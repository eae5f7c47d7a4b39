package engine

import (
	"slices"
	"strings"

	"github.com/roach88/horizon/internal/dilation"
	"github.com/roach88/horizon/internal/observer"
	"github.com/roach88/horizon/internal/predict"
	"github.com/roach88/horizon/internal/qftcs"
	"github.com/roach88/horizon/internal/units"
)

// Operation is a named, pure formula evaluation.
type Operation struct {
	Name    string  `json:"name"`
	Summary string  `json:"summary"`
	Params  []Param `json:"params"`

	eval func(k *kit, a Args) (any, error)
}

// kit bundles the formula packages built on one constant set.
type kit struct {
	conv  *units.Converter
	obs   *observer.Observer
	field *qftcs.Field
	pred  *predict.Predictor
	sim   *dilation.Simulator
}

func newKit(pc units.PhysicalConstants) *kit {
	conv := units.NewConverter(pc)
	return &kit{
		conv:  conv,
		obs:   observer.New(conv),
		field: qftcs.New(conv),
		pred:  predict.New(conv),
		sim:   dilation.NewSimulator(),
	}
}

// siQuantity is the result of units.from_natural.
type siQuantity struct {
	Value float64        `json:"value"`
	Kind  units.UnitKind `json:"kind"`
}

type dilationResult struct {
	Dilation float64 `json:"dilation"`
}

var registry = []Operation{
	{
		Name:    "units.to_natural",
		Summary: "convert an SI value to Planck units",
		Params:  []Param{number("value", Any, "SI value"), str("kind", "mass, length or time")},
		eval: func(k *kit, a Args) (any, error) {
			return k.conv.ToNatural(a.Num("value"), units.UnitKind(a.Str("kind")))
		},
	},
	{
		Name:    "units.from_natural",
		Summary: "convert a Planck-unit value back to SI",
		Params:  []Param{number("value", Any, "natural value"), str("kind", "mass, length or time")},
		eval: func(k *kit, a Args) (any, error) {
			kind := units.UnitKind(a.Str("kind"))
			v, err := k.conv.FromNatural(units.NaturalQuantity{Value: a.Num("value"), Kind: kind})
			if err != nil {
				return nil, err
			}
			return siQuantity{Value: v, Kind: kind}, nil
		},
	},
	{
		Name:    "observer.dilation",
		Summary: "Schwarzschild time dilation of a mass seen at a length scale",
		Params: []Param{
			number("mass_kg", NonNegative, "mass in kg"),
			number("length_m", Positive, "length scale in m"),
		},
		eval: func(k *kit, a Args) (any, error) {
			return dilationResult{Dilation: k.obs.Dilation(a.Num("mass_kg"), a.Num("length_m"))}, nil
		},
	},
	{
		Name:    "observer.velocity",
		Summary: "coordinate velocity of a proper velocity through a dilation factor",
		Params: []Param{
			number("proper_velocity", Any, "fraction of c, clamped to 0.99"),
			number("dilation", NonNegative, "dilation factor"),
		},
		eval: func(k *kit, a Args) (any, error) {
			return k.obs.ApparentVelocity(a.Num("proper_velocity"), a.Num("dilation")), nil
		},
	},
	{
		Name:    "observer.entanglement",
		Summary: "apparent speed of an entangled pair in folded spacetime",
		Params: []Param{
			number("separation_m", Positive, "pair separation in m"),
			number("mass_kg", Positive, "particle mass in kg"),
		},
		eval: func(k *kit, a Args) (any, error) {
			return k.obs.Entanglement(a.Num("separation_m"), a.Num("mass_kg")), nil
		},
	},
	{
		Name:    "observer.uncertainty",
		Summary: "uncertainty product under local time dilation",
		Params: []Param{
			number("position_m", Positive, "position uncertainty in m"),
			number("mass_kg", Positive, "particle mass in kg"),
		},
		eval: func(k *kit, a Args) (any, error) {
			return k.obs.Uncertainty(a.Num("position_m"), a.Num("mass_kg")), nil
		},
	},
	{
		Name:    "observer.interference",
		Summary: "double-slit pattern with curvature-corrected path difference",
		Params: []Param{
			number("slit_separation_m", Positive, "slit separation in m"),
			number("screen_distance_m", Positive, "screen distance in m"),
			optionalNumber("correction", Any, "fixed correction coefficient replacing l_p/L"),
		},
		eval: func(k *kit, a Args) (any, error) {
			var opts []observer.InterferenceOption
			if a.Has("correction") {
				opts = append(opts, observer.WithFixedCorrection(a.Num("correction")))
			}
			return k.obs.Interference(a.Num("slit_separation_m"), a.Num("screen_distance_m"), opts...)
		},
	},
	{
		Name:    "observer.collapse",
		Summary: "collapse probability as frame synchronization",
		Params: []Param{
			number("measurement_time", Any, "measurement duration"),
			number("frame_dilation", NonNegative, "dilation of the particle frame"),
		},
		eval: func(k *kit, a Args) (any, error) {
			return k.obs.Collapse(a.Num("measurement_time"), a.Num("frame_dilation")), nil
		},
	},
	{
		Name:    "qftcs.modes",
		Summary: "mode decomposition, vacuum state and Bogoliubov coefficients",
		Params: []Param{
			number("mass_kg", NonNegative, "mass in kg"),
			number("radius_m", Positive, "radius in m"),
		},
		eval: func(k *kit, a Args) (any, error) {
			return k.field.Analyze(a.Num("mass_kg"), a.Num("radius_m")), nil
		},
	},
	{
		Name:    "qftcs.flat_limit",
		Summary: "flat-space limit check of the metric",
		Params: []Param{
			number("mass_kg", NonNegative, "mass in kg"),
			number("radius_m", Positive, "radius in m"),
		},
		eval: func(k *kit, a Args) (any, error) {
			return k.field.FlatSpaceLimit(a.Num("mass_kg"), a.Num("radius_m")), nil
		},
	},
	{
		Name:    "qftcs.nonrelativistic_limit",
		Summary: "non-relativistic limit check for a velocity",
		Params:  []Param{number("velocity_ms", NonNegative, "velocity in m/s")},
		eval: func(k *kit, a Args) (any, error) {
			return k.field.NonRelativisticLimit(a.Num("velocity_ms")), nil
		},
	},
	{
		Name:    "qftcs.vacuum",
		Summary: "vacuum seen by an observer with a given dilation",
		Params:  []Param{number("tau", NonNegative, "observer dilation factor")},
		eval: func(k *kit, a Args) (any, error) {
			return k.field.ObserverVacuum(a.Num("tau")), nil
		},
	},
	{
		Name:    "predict.atom_interferometry",
		Summary: "gravitational phase shift and its quantum-gravity correction",
		Params: []Param{
			number("height_m", Positive, "interferometer arm height in m"),
			number("atom_mass_amu", Positive, "atom mass in u"),
		},
		eval: func(k *kit, a Args) (any, error) {
			return k.pred.AtomInterferometry(a.Num("height_m"), a.Num("atom_mass_amu")), nil
		},
	},
	{
		Name:    "predict.decoherence",
		Summary: "gravitational decoherence rate of a superposition",
		Params: []Param{
			number("separation_m", Positive, "superposition separation in m"),
			number("mass_kg", Positive, "mass in kg"),
		},
		eval: func(k *kit, a Args) (any, error) {
			return k.pred.Decoherence(a.Num("separation_m"), a.Num("mass_kg")), nil
		},
	},
	{
		Name:    "predict.cosmological",
		Summary: "vacuum energy correction at a redshift",
		Params:  []Param{number("redshift", NonNegative, "redshift z")},
		eval: func(k *kit, a Args) (any, error) {
			return k.pred.Cosmological(a.Num("redshift")), nil
		},
	},
	{
		Name:    "dilation.cosmonaut",
		Summary: "cosmonaut near a black hole against a clock on Earth",
		Params:  []Param{number("distance_factor", NonNegative, "distance in Schwarzschild radii")},
		eval: func(k *kit, a Args) (any, error) {
			return k.sim.CosmonautVsEarth(a.Num("distance_factor")), nil
		},
	},
	{
		Name:    "dilation.quantum_analogy",
		Summary: "Earth mass scaled by a curvature factor at a nuclear length",
		Params:  []Param{number("curvature_factor", Positive, "mass scale factor")},
		eval: func(k *kit, a Args) (any, error) {
			return k.sim.QuantumAnalogy(a.Num("curvature_factor")), nil
		},
	},
}

var byName = func() map[string]*Operation {
	m := make(map[string]*Operation, len(registry))
	for i := range registry {
		m[registry[i].Name] = &registry[i]
	}
	return m
}()

// Lookup returns the operation registered under name.
func Lookup(name string) (Operation, bool) {
	op, ok := byName[name]
	if !ok {
		return Operation{}, false
	}
	return *op, true
}

// Operations lists every registered operation sorted by name.
func Operations() []Operation {
	ops := slices.Clone(registry)
	slices.SortFunc(ops, func(a, b Operation) int { return strings.Compare(a.Name, b.Name) })
	return ops
}
