// Package testutil provides testing utilities for bitvec.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Bit Generation
//
//	rng := testutil.NewRNG(seed)
//	bits := rng.Bits(100)          // fair coin flips
//	sparse := rng.SparseBits(100, 0.05)
//	raw := rng.Bytes(16)
//
// # Lengths Around The Inline Threshold
//
//	for _, n := range testutil.BoundaryLengths(bitvec.InlineBits) { ... }
package testutil
