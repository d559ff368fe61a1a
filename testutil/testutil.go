package testutil

import (
	"math/rand"
	"slices"
	"sync"
)

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
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
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

// Bits returns n fair random bits.
func (r *RNG) Bits(n int) []bool {
	return r.SparseBits(n, 0.5)
}

// SparseBits returns n random bits, each set with probability p.
func (r *RNG) SparseBits(n int, p float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]bool, n)
	for i := range out {
		out[i] = r.rand.Float64() < p
	}
	return out
}

// Bytes returns n random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]byte, n)
	_, _ = r.rand.Read(out)
	return out
}

// BoundaryLengths returns interesting vector lengths around threshold: empty,
// one bit, both sides of the byte boundaries next to it, the threshold
// itself and a few bytes past it. The result is sorted and free of duplicates.
func BoundaryLengths(threshold int) []int {
	candidates := []int{0, 1, 7, 8, 9, threshold - 1, threshold, threshold + 1, threshold + 8, 4*threshold + 3}
	out := make([]int, 0, len(candidates))
	seen := make(map[int]bool, len(candidates))
	for _, n := range candidates {
		if n < 0 || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
