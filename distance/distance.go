// Package distance provides float64 vector distance metrics.
// Dot product and Euclidean distance use the SIMD-accelerated kernels from
// github.com/viterin/vek (AVX2 on x86-64, NEON on ARM64).
package distance

import (
	"fmt"
	"math"

	"github.com/viterin/vek"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	return vek.Dot(a, b)
}

// Euclidean calculates the L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Euclidean(a, b []float64) float64 {
	return vek.Distance(a, b)
}

// SquaredL2 calculates the squared L2 distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var sum float64

	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return sum
}

// Manhattan calculates the L1 distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Manhattan(a, b []float64) float64 {
	var sum float64

	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}

	return sum
}

// Chebyshev calculates the L-infinity distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Chebyshev(a, b []float64) float64 {
	var max float64

	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}

	return max
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricSquaredL2
	MetricManhattan
	MetricChebyshev
)

// String returns a string representation of the Metric.
func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricSquaredL2:
		return "SquaredL2"
	case MetricManhattan:
		return "Manhattan"
	case MetricChebyshev:
		return "Chebyshev"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricSquaredL2:
		return SquaredL2, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricChebyshev:
		return Chebyshev, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
