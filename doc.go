// Package bitvec provides a growable bit vector that stores small vectors
// without any heap allocation.
//
// # Storage
//
// A BitVector packs one bool per bit. Up to InlineBits bits (two machine
// words' worth of bits: 16 on 64-bit platforms, 8 on 32-bit platforms) are
// kept in a byte array inside the struct itself. The first write that grows
// the vector past InlineBits copies those bytes into a heap buffer, and from
// then on the vector is heap-backed for good; popping bits never moves it
// back. The heap buffer grows geometrically, doubling its capacity.
//
//	v := bitvec.New()      // inline, no allocation
//	for i := 0; i < 16; i++ {
//	    v.Push(i%2 == 0)   // still inline
//	}
//	v.Push(true)           // 17th bit: one allocation, bits move to the heap
//
// # Bit Order
//
// Bits are packed least-significant-bit first: bit i is stored in byte i/8 at
// bit position i%8. FromBytes and Bytes use the same layout:
//
//	v := bitvec.FromBytes([]byte{0b1111_0000})
//	v.Get(0) // false: the lowest-order bit of 0b1111_0000
//	v.Get(4) // true
//
// # Errors
//
// Get and Set return an *IndexOutOfRangeError, which matches
// ErrIndexOutOfRange with errors.Is, for any index outside [0, Len()).
// Growth never fails; allocation failure aborts the program as usual in Go.
//
// # Concurrency
//
// A BitVector has a single owner and no internal locking.
package bitvec
