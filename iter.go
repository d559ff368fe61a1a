package bitvec

import "iter"

// All returns an iterator over index-bit pairs in index order.
func (v *BitVector) All() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		for i := 0; i < v.len; i++ {
			if !yield(i, v.bytes()[i>>3]&(1<<(i&7)) != 0) {
				return
			}
		}
	}
}

// Values returns an iterator over the bits in index order.
func (v *BitVector) Values() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for _, b := range v.All() {
			if !yield(b) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-bit pairs from the last bit to the
// first.
func (v *BitVector) Backward() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		for i := v.len - 1; i >= 0; i-- {
			if !yield(i, v.bytes()[i>>3]&(1<<(i&7)) != 0) {
				return
			}
		}
	}
}

// AppendSeq pushes every bit produced by seq.
func (v *BitVector) AppendSeq(seq iter.Seq[bool]) {
	for b := range seq {
		v.Push(b)
	}
}

// Collect builds a vector from the bits produced by seq.
func Collect(seq iter.Seq[bool]) BitVector {
	var v BitVector
	v.AppendSeq(seq)
	return v
}
