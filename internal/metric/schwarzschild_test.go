package metric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeDilationHorizon(t *testing.T) {
	tests := []struct {
		name string
		m, r float64
		want float64
	}{
		{"exactly at horizon", 1, 2, 0},
		{"inside horizon", 1, 1.5, 0},
		{"at origin", 1, 0, 0},
		{"twice the horizon", 1, 4, math.Sqrt(0.5)},
		{"massless", 0, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeDilation(tt.m, tt.r))
		})
	}
}

func TestTimeDilationZeroExactlyWhenInsideHorizon(t *testing.T) {
	masses := []float64{1e-20, 1, 1000, 1e38}
	for _, m := range masses {
		rs := SchwarzschildRadius(m)
		assert.Equal(t, 0.0, TimeDilation(m, rs), "m=%g", m)
		assert.Equal(t, 0.0, TimeDilation(m, rs*0.999), "m=%g", m)
		assert.Greater(t, TimeDilation(m, rs*1.001), 0.0, "m=%g", m)
	}
}

func TestTimeDilationMonotonic(t *testing.T) {
	m := 1.0
	prev := 0.0
	for r := 2.0001; r < 1e6; r *= 1.3 {
		tau := TimeDilation(m, r)
		assert.GreaterOrEqual(t, tau, prev, "r=%g", r)
		assert.LessOrEqual(t, tau, 1.0)
		prev = tau
	}
}

func TestTimeDilationLimits(t *testing.T) {
	m := 1.0

	near := TimeDilation(m, 2*(1+1e-12))
	assert.Less(t, near, 1e-5)
	assert.Greater(t, near, 0.0)

	far := TimeDilation(m, 1e15)
	assert.InDelta(t, 1.0, far, 1e-14)
}

func TestMetricComponents(t *testing.T) {
	c := MetricComponents(1, 4)
	assert.Equal(t, -0.5, c.GTT)
	assert.Equal(t, 2.0, c.GRR)

	h := MetricComponents(1, 2)
	assert.Equal(t, 0.0, h.GTT)
	assert.True(t, math.IsInf(h.GRR, 1))
}

func TestCurvatureParameter(t *testing.T) {
	assert.Equal(t, 0.5, CurvatureParameter(1, 4))
	assert.Equal(t, 0.0, CurvatureParameter(0, 4))
}
