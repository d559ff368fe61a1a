// Package convert moves bits between BitVector and the bitmap types used
// elsewhere in the Go ecosystem.
//
// Roaring bitmaps store set-bit indices and carry no length, so FromRoaring
// takes the vector length explicitly. bits-and-blooms bitsets carry a length
// and round-trip as is.
package convert

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/bitvec"
	"github.com/hupe1980/bitvec/internal/conv"
)

// ErrOutOfRange is returned when a bitmap holds an index the target cannot
// represent.
var ErrOutOfRange = errors.New("bit index out of range")

// ToRoaring returns a bitmap of the indices of all set bits in v. Vectors
// longer than 2^32 bits cannot be represented.
func ToRoaring(v *bitvec.BitVector) (*roaring.Bitmap, error) {
	if v.Len() > 0 {
		if _, err := conv.IntToUint32(v.Len() - 1); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOutOfRange, err)
		}
	}
	bm := roaring.New()
	for i, b := range v.All() {
		if b {
			bm.Add(uint32(i)) //nolint:gosec // bounded by the check above
		}
	}
	bm.RunOptimize()
	return bm, nil
}

// FromRoaring returns a vector of n bits with the bits listed in bm set.
// Every index in bm must be below n.
func FromRoaring(bm *roaring.Bitmap, n int) (bitvec.BitVector, error) {
	if n < 0 {
		return bitvec.BitVector{}, fmt.Errorf("%w: negative length %d", ErrOutOfRange, n)
	}
	if !bm.IsEmpty() {
		last, err := conv.Uint32ToInt(bm.Maximum())
		if err != nil {
			return bitvec.BitVector{}, fmt.Errorf("%w: %w", ErrOutOfRange, err)
		}
		if last >= n {
			return bitvec.BitVector{}, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, last, n)
		}
	}

	v := bitvec.Repeat(false, n)
	it := bm.Iterator()
	for it.HasNext() {
		i, _ := conv.Uint32ToInt(it.Next())
		if err := v.Set(i, true); err != nil {
			return bitvec.BitVector{}, err
		}
	}
	return v, nil
}

// ToBitSet copies v into a bitset of the same length.
func ToBitSet(v *bitvec.BitVector) *bitset.BitSet {
	bs := bitset.New(uint(v.Len())) //nolint:gosec // Len is never negative
	for i, b := range v.All() {
		if b {
			bs.Set(uint(i)) //nolint:gosec // index is never negative
		}
	}
	return bs
}

// FromBitSet copies bs into a vector of bs.Len() bits.
func FromBitSet(bs *bitset.BitSet) (bitvec.BitVector, error) {
	n, err := conv.Uint64ToInt(uint64(bs.Len()))
	if err != nil {
		return bitvec.BitVector{}, fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	v := bitvec.Repeat(false, n)
	for i, ok := bs.NextSet(0); ok && i < bs.Len(); i, ok = bs.NextSet(i + 1) {
		if err := v.Set(int(i), true); err != nil { //nolint:gosec // i < Len, which fits in int
			return bitvec.BitVector{}, err
		}
	}
	return v, nil
}
