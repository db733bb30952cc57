package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/lookup"
)

// Hit is one exact query answer.
type Hit struct {
	Index           int
	SquaredDistance float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Point returns a point uniformly distributed in the cube [-edge/2, edge/2)³.
func (r *RNG) Point(edge float64) geom.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return geom.V3((r.rand.Float64()-0.5)*edge, (r.rand.Float64()-0.5)*edge, (r.rand.Float64()-0.5)*edge)
}

// UniformPositions generates num points in a cube of the given edge, centred on the origin.
func (r *RNG) UniformPositions(num int, edge float64) lookup.Positions {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos := lookup.Positions{X: make([]float64, num), Y: make([]float64, num), Z: make([]float64, num)}
	for i := range num {
		pos.X[i] = (r.rand.Float64() - 0.5) * edge
		pos.Y[i] = (r.rand.Float64() - 0.5) * edge
		pos.Z[i] = (r.rand.Float64() - 0.5) * edge
	}
	return pos
}

// ClusteredPositions generates num points around clusters random centres.
// Non-uniform density exercises empty and overfull grid cells.
func (r *RNG) ClusteredPositions(num, clusters int, spread float64) lookup.Positions {
	centres := r.UniformPositions(clusters, 100)

	r.mu.Lock()
	defer r.mu.Unlock()

	pos := lookup.Positions{X: make([]float64, num), Y: make([]float64, num), Z: make([]float64, num)}
	for i := range num {
		c := i % clusters
		pos.X[i] = centres.X[c] + r.rand.NormFloat64()*spread
		pos.Y[i] = centres.Y[c] + r.rand.NormFloat64()*spread
		pos.Z[i] = centres.Z[c] + r.rand.NormFloat64()*spread
	}
	return pos
}

// WithRadii attaches uniformly random radii in [0, maxRadius) to pos.
func (r *RNG) WithRadii(pos lookup.Positions, maxRadius float64) lookup.Positions {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos.Radius = make([]float64, pos.Len())
	for i := range pos.Radius {
		pos.Radius[i] = r.rand.Float64() * maxRadius
	}
	return pos
}

func centre(pos lookup.Positions, i int) geom.Vec3 {
	return geom.V3(pos.X[i], pos.Y[i], pos.Z[i])
}

func radius(pos lookup.Positions, i int) float64 {
	if pos.Radius == nil {
		return 0
	}
	return pos.Radius[i]
}

// BruteForceWithin returns every point whose sphere meets the query sphere,
// sorted by index, with squared centre distances.
func BruteForceWithin(pos lookup.Positions, q geom.Vec3, r float64) []Hit {
	var hits []Hit
	for i := range pos.Len() {
		d2 := geom.SquaredDistance(centre(pos, i), q)
		rr := r + radius(pos, i)
		if d2 <= rr*rr {
			hits = append(hits, Hit{Index: i, SquaredDistance: d2})
		}
	}
	return hits
}

// BruteForceNearest returns the k points with the smallest squared sphere
// distance to q, in ascending order.
func BruteForceNearest(pos lookup.Positions, q geom.Vec3, k int) []Hit {
	hits := make([]Hit, pos.Len())
	for i := range hits {
		d := math.Max(0, geom.Distance(centre(pos, i), q)-radius(pos, i))
		hits[i] = Hit{Index: i, SquaredDistance: d * d}
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch {
		case a.SquaredDistance < b.SquaredDistance:
			return -1
		case a.SquaredDistance > b.SquaredDistance:
			return 1
		}
		return 0
	})
	return hits[:min(max(k, 0), len(hits))]
}

// SortedIndices returns the hit indices in ascending order.
func SortedIndices(hits []Hit) []int {
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.Index
	}
	slices.Sort(out)
	return out
}

// Distances returns the hit distances in hit order.
func Distances(hits []Hit) []float64 {
	out := make([]float64, len(hits))
	for i, h := range hits {
		out[i] = h.SquaredDistance
	}
	return out
}
