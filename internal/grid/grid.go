// Package grid builds evenly spaced sample grids for sweeps and curves.
package grid

import "math"

// Linspace returns n evenly spaced samples over [start, stop].
//
// Samples are computed as start + i*step and the final sample is set to stop
// exactly, so both endpoints are always present without rounding drift.
// n == 1 returns [start]; n <= 0 returns an empty slice.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{start}
	}

	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Logspace returns n samples 10^x for x in Linspace(start, stop, n).
func Logspace(start, stop float64, n int) []float64 {
	exps := Linspace(start, stop, n)
	for i, e := range exps {
		exps[i] = math.Pow(10, e)
	}
	return exps
}

// At returns the i-th sample of Linspace(start, stop, n) without allocating.
// Callers must keep 0 <= i < n.
func At(start, stop float64, n, i int) float64 {
	if n == 1 {
		return start
	}
	if i == n-1 {
		return stop
	}
	step := (stop - start) / float64(n-1)
	return start + float64(i)*step
}

// Series is one labelled curve of sweep data.
type Series struct {
	Label string    `json:"label"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}
