// Package util provides random vector generation helpers.
package util

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// GenerateRandomVectors generates uniform random vectors in [0, 1).
func (r *RNG) GenerateRandomVectors(num int, dimensions int) [][]float64 {
	vectors := make([][]float64, num)
	for i := range vectors {
		vectors[i] = make([]float64, dimensions)
		for j := range vectors[i] {
			vectors[i][j] = r.rand.Float64()
		}
	}

	return vectors
}

// UnitVector draws a random unit vector uniformly from the sphere by
// normalizing a standard Gaussian sample. Redraws on the (measure-zero)
// all-zero sample.
func (r *RNG) UnitVector(dimensions int) []float64 {
	v := make([]float64, dimensions)

	for {
		for i := range v {
			v[i] = r.rand.NormFloat64()
		}

		if norm := floats.Norm(v, 2); norm > 0 {
			floats.Scale(1/norm, v)
			return v
		}
	}
}
