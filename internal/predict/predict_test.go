package predict

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/horizon/internal/units"
)

func newPredictor() *Predictor {
	return New(units.NewConverter(units.CODATA()))
}

func TestAtomInterferometryRubidium(t *testing.T) {
	p := newPredictor()
	pc := units.CODATA()

	r := p.AtomInterferometry(10, 87)

	wantClassical := 87 * pc.AtomicMassUnit * 9.81 * 10 / pc.Hbar
	assert.InEpsilon(t, wantClassical, r.ClassicalShift, 1e-12)
	assert.InEpsilon(t, 1.3439e11, r.ClassicalShift, 1e-3)
	assert.InEpsilon(t, r.QGCoupling, r.RelativeDeviation, 1e-12)
	assert.InEpsilon(t, r.ClassicalShift*r.QGCoupling, r.QGCorrection, 1e-12)
	assert.Equal(t, r.ClassicalShift+r.QGCorrection, r.TotalShift)
	assert.InEpsilon(t, r.QGCorrection/(2*math.Pi), r.RequiredPrecision, 1e-12)
	assert.Equal(t, InterferometerLimit, r.TechnologyLimit)
	assert.Greater(t, r.TechnologyGap, 1e20)
	assert.False(t, r.Testable)
}

func TestAtomInterferometryCouplingShrinksWithHeight(t *testing.T) {
	p := newPredictor()

	low := p.AtomInterferometry(1, 87)
	high := p.AtomInterferometry(100, 87)

	assert.Greater(t, low.QGCoupling, high.QGCoupling)
	assert.InEpsilon(t, 1e4, low.QGCoupling/high.QGCoupling, 1e-9)
}

func TestDecoherence(t *testing.T) {
	p := newPredictor()
	pc := units.CODATA()

	r := p.Decoherence(1e-6, 1e-14)

	want := pc.G * 1e-14 / (pc.C * pc.C * pc.C * 1e-12)
	assert.InEpsilon(t, want, r.ClassicalRate, 1e-12)
	assert.Greater(t, r.QGRate, 0.0)
	assert.Less(t, r.QGRate, r.ClassicalRate)
	assert.InEpsilon(t, 1/r.TotalRate, r.DecoherenceTime, 1e-12)
	assert.InEpsilon(t, r.DecoherenceTime/UniverseAge, r.VsUniverseAge, 1e-12)
	assert.Greater(t, r.VsHumanScale, 1.0)
	assert.False(t, r.Detectable)
}

func TestDecoherenceZeroRate(t *testing.T) {
	r := newPredictor().Decoherence(1, 0)

	assert.Equal(t, 0.0, r.TotalRate)
	assert.True(t, math.IsInf(r.DecoherenceTime, 1))
	assert.False(t, r.Detectable)
}

func TestTimescales(t *testing.T) {
	assert.InEpsilon(t, 4.352e17, float64(UniverseAge), 1e-3)
	assert.Equal(t, 3153600000.0, float64(HumanCentury))
}

func TestCosmological(t *testing.T) {
	p := newPredictor()

	now := p.Cosmological(0)
	assert.InEpsilon(t, 0.685*8.62e-27, now.ObservedVacuumDensity, 1e-12)
	assert.InEpsilon(t, math.Pow(67.4*1.616e-35/299792458.0, 2), now.Renormalization, 1e-12)
	assert.InEpsilon(t, PlanckDensity*now.Renormalization, now.QGCorrection, 1e-12)
	assert.InEpsilon(t, now.QGCorrection/now.ObservedVacuumDensity, now.RelativeCorrection, 1e-12)
	assert.True(t, now.Observable)

	early := p.Cosmological(1)
	assert.InEpsilon(t, 2*now.Renormalization, early.Renormalization, 1e-12)
	assert.InEpsilon(t, math.Sqrt2*now.HubbleCorrection, early.HubbleCorrection, 1e-12)
}
