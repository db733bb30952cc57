package testutil

import (
	"testing"

	"github.com/hupe1980/molsel/geom"
	"github.com/stretchr/testify/assert"
)

func TestUniformPositions(t *testing.T) {
	rng := NewRNG(4711)

	pos := rng.UniformPositions(64, 10)

	assert.Equal(t, 64, pos.Len())
	for i := range pos.Len() {
		assert.Less(t, pos.X[i], 5.0)
		assert.GreaterOrEqual(t, pos.Z[i], -5.0)
	}
}

func TestDeterministicSeed(t *testing.T) {
	a := NewRNG(7).UniformPositions(4, 1)
	b := NewRNG(7).UniformPositions(4, 1)
	assert.Equal(t, a, b)
}

func TestBruteForceNearest(t *testing.T) {
	rng := NewRNG(4711)
	pos := rng.UniformPositions(50, 10)

	hits := BruteForceNearest(pos, geom.Vec3{}, 5)
	assert.Len(t, hits, 5)
	assert.IsNonDecreasing(t, Distances(hits))

	assert.Len(t, BruteForceNearest(pos, geom.Vec3{}, 500), 50)
	assert.Empty(t, BruteForceNearest(pos, geom.Vec3{}, 0))
}

func TestBruteForceWithin(t *testing.T) {
	rng := NewRNG(4711)
	pos := rng.WithRadii(rng.UniformPositions(50, 10), 1)

	all := BruteForceWithin(pos, geom.Vec3{}, 100)
	assert.Len(t, all, 50)
}
