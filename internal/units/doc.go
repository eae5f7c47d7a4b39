// Package units converts SI quantities into Planck-normalized natural units.
//
// A PhysicalConstants set fixes c, G, ħ and the reference masses/radii. The
// Planck scales derived from it are computed once by NewConverter and never
// change for the lifetime of the Converter:
//
//	m_p = √(ħc/G)
//	l_p = √(ħG/c³)
//	t_p = √(ħG/c⁵)
//
// ToNatural divides an SI value by the scale of its UnitKind. The result is
// dimensionless; in these units c = G = ħ = 1, which is what the metric and
// observer packages assume.
//
// # Errors
//
// The only error the converter produces is ErrUnrecognizedUnitKind, returned
// (wrapped in a *UnitError) when a caller passes a tag other than mass,
// length or time.
//
// # Usage
//
//	conv := units.NewConverter(units.CODATA())
//	m, err := conv.ToNatural(9.1093837015e-31, units.Mass)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(m.Value) // electron mass in Planck masses
package units
