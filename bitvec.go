package bitvec

import (
	"math"
	"math/bits"
)

const (
	// WordBytes is the native pointer width in bytes (4 or 8).
	WordBytes = bits.UintSize / 8

	// InlineBits is the number of bits a BitVector holds without a heap
	// allocation: 16 on 64-bit platforms, 8 on 32-bit platforms.
	InlineBits = 2 * WordBytes

	inlineBytes = (InlineBits + 7) / 8
)

type mode uint8

const (
	modeInline mode = iota
	modeHeap
)

// BitVector is a growable sequence of bits packed LSB-first into bytes.
//
// Bit i lives in byte i/8 at bit position i%8, so bit 0 is the lowest-order
// bit of the first byte. Vectors of up to InlineBits bits live entirely inside
// the struct. The first write that grows the vector past InlineBits moves the
// bits into a heap buffer, and the vector stays heap-backed from then on.
//
// The zero value is an empty, ready to use vector. A BitVector is not safe
// for concurrent use. Copying a heap-backed vector by value shares its
// buffer; use Clone for an independent copy.
type BitVector struct {
	len    int
	mode   mode
	inline [inlineBytes]byte
	heap   []byte

	// reserved is the capacity in bits requested while inline. It sizes the
	// heap buffer when the vector leaves inline storage.
	reserved int
}

// New returns an empty inline vector.
func New() BitVector {
	return BitVector{}
}

// WithCapacity returns an empty vector that will switch to a heap buffer of
// at least n bits when it outgrows InlineBits. The vector starts inline and
// nothing is allocated until then. It panics if n is negative.
func WithCapacity(n int) BitVector {
	if n < 0 {
		panic("bitvec: negative capacity")
	}
	return BitVector{reserved: n}
}

// FromBits packs bits into a new vector. Vectors longer than InlineBits are
// backed by a single allocation of exactly ceil(len(bits)/8) bytes.
func FromBits(bits []bool) BitVector {
	var v BitVector
	v.init(len(bits))
	buf := v.bytes()
	for i, b := range bits {
		if b {
			buf[i>>3] |= 1 << (i & 7)
		}
	}
	return v
}

// FromBytes treats every byte as eight LSB-first bits. The input is copied.
func FromBytes(b []byte) BitVector {
	n := len(b)
	if n > math.MaxInt/8 {
		panic("bitvec: capacity overflow")
	}
	var v BitVector
	v.init(n * 8)
	copy(v.bytes(), b)
	return v
}

// init sizes empty storage for n bits and sets the length.
func (v *BitVector) init(n int) {
	if n > InlineBits {
		v.mode = modeHeap
		v.heap = make([]byte, byteLen(n))
	}
	v.len = n
}

// Len returns the number of bits in the vector.
func (v *BitVector) Len() int { return v.len }

// IsEmpty reports whether the vector holds no bits.
func (v *BitVector) IsEmpty() bool { return v.len == 0 }

// IsInline reports whether the bits are stored inside the struct.
func (v *BitVector) IsInline() bool { return v.mode == modeInline }

// Capacity returns the number of bits the vector can hold before it has to
// allocate. A reservation made while inline does not count until the vector
// has moved to the heap.
func (v *BitVector) Capacity() int {
	if v.mode == modeInline {
		return InlineBits
	}
	return cap(v.heap) * 8
}

// Get returns the bit at index i.
func (v *BitVector) Get(i int) (bool, error) {
	if err := v.check(i); err != nil {
		return false, err
	}
	return v.bytes()[i>>3]&(1<<(i&7)) != 0, nil
}

// Set overwrites the bit at index i. It never changes the storage mode.
func (v *BitVector) Set(i int, value bool) error {
	if err := v.check(i); err != nil {
		return err
	}
	v.put(i, value)
	return nil
}

// Push appends a bit, moving the vector to the heap when it outgrows
// InlineBits.
func (v *BitVector) Push(value bool) {
	if v.len == math.MaxInt {
		panic("bitvec: capacity overflow")
	}
	v.grow(v.len + 1)
	v.len++
	v.put(v.len-1, value)
}

// Pop removes and returns the last bit. ok is false if the vector is empty.
// A heap-backed vector stays on the heap.
func (v *BitVector) Pop() (value bool, ok bool) {
	if v.len == 0 {
		return false, false
	}
	v.len--
	i := v.len
	return v.bytes()[i>>3]&(1<<(i&7)) != 0, true
}

// Append pushes every bit in order, growing the storage at most once.
func (v *BitVector) Append(bits ...bool) {
	v.grow(v.addLen(len(bits)))
	for _, b := range bits {
		v.len++
		v.put(v.len-1, b)
	}
}

// AppendVector pushes all bits of other in order. other may be v itself.
func (v *BitVector) AppendVector(other *BitVector) {
	n := other.len
	v.grow(v.addLen(n))
	for i := 0; i < n; i++ {
		b := other.bytes()[i>>3]&(1<<(i&7)) != 0
		v.len++
		v.put(v.len-1, b)
	}
}

// Reserve makes room for at least additional more bits. An inline vector
// stays inline and remembers the request; its heap buffer is sized for it
// when the vector outgrows InlineBits.
func (v *BitVector) Reserve(additional int) {
	if additional < 0 {
		panic("bitvec: negative reservation")
	}
	n := v.addLen(additional)
	if v.mode == modeInline {
		v.reserved = max(v.reserved, n)
		return
	}
	v.grow(n)
}

// ReserveExact is like Reserve but does not over-allocate a heap buffer.
func (v *BitVector) ReserveExact(additional int) {
	if additional < 0 {
		panic("bitvec: negative reservation")
	}
	n := v.addLen(additional)
	if v.mode == modeInline {
		v.reserved = max(v.reserved, n)
		return
	}
	if need := byteLen(n); need > cap(v.heap) {
		heap := make([]byte, len(v.heap), need)
		copy(heap, v.heap)
		v.heap = heap
	}
}

// ShrinkToFit releases unused heap capacity. The vector stays heap-backed.
func (v *BitVector) ShrinkToFit() {
	v.ShrinkTo(0)
}

// ShrinkTo lowers the capacity to at most max(minBits, Len()) bits, rounded
// up to whole bytes. It never moves a heap vector back inline.
func (v *BitVector) ShrinkTo(minBits int) {
	if minBits < 0 {
		panic("bitvec: negative capacity")
	}
	if v.mode == modeInline {
		v.reserved = min(v.reserved, max(minBits, v.len))
		return
	}
	want := byteLen(max(minBits, v.len))
	if cap(v.heap) <= want {
		return
	}
	used := byteLen(v.len)
	heap := make([]byte, used, want)
	copy(heap, v.heap[:used])
	v.heap = heap
}

// Bytes returns a copy of the packed bits, ceil(Len()/8) bytes long, with
// the unused bits of the last byte cleared.
func (v *BitVector) Bytes() []byte {
	out := make([]byte, byteLen(v.len))
	copy(out, v.bytes())
	if r := v.len & 7; r != 0 {
		out[len(out)-1] &= byte(1)<<r - 1
	}
	return out
}

// ToBits unpacks the vector into a new slice.
func (v *BitVector) ToBits() []bool {
	out := make([]bool, v.len)
	buf := v.bytes()
	for i := range out {
		out[i] = buf[i>>3]&(1<<(i&7)) != 0
	}
	return out
}

// Clone returns an independent copy. The copy picks its storage mode from its
// length, so a heap vector that shrank back under InlineBits clones inline.
func (v *BitVector) Clone() BitVector {
	return fromPacked(v.bytes(), v.len)
}

// Equal reports whether both vectors hold the same bits, regardless of how
// they are stored.
func (v *BitVector) Equal(other *BitVector) bool {
	if v.len != other.len {
		return false
	}
	full := v.len >> 3
	a, b := v.bytes(), other.bytes()
	for i := 0; i < full; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	if r := v.len & 7; r != 0 {
		mask := byte(1)<<r - 1
		return a[full]&mask == b[full]&mask
	}
	return true
}

// bytes returns the active buffer.
func (v *BitVector) bytes() []byte {
	if v.mode == modeHeap {
		return v.heap
	}
	return v.inline[:]
}

func (v *BitVector) put(i int, value bool) {
	buf := v.bytes()
	if value {
		buf[i>>3] |= 1 << (i & 7)
	} else {
		buf[i>>3] &^= 1 << (i & 7)
	}
}

func (v *BitVector) check(i int) error {
	if i < 0 || i >= v.len {
		return &IndexOutOfRangeError{Index: i, Len: v.len}
	}
	return nil
}

func (v *BitVector) addLen(n int) int {
	if n > math.MaxInt-v.len {
		panic("bitvec: capacity overflow")
	}
	return v.len + n
}

// grow ensures the active buffer can address n bits. It performs the one-way
// inline to heap transition and geometric heap growth.
func (v *BitVector) grow(n int) {
	need := byteLen(n)
	if v.mode == modeInline {
		if n <= InlineBits {
			return
		}
		heap := make([]byte, need, max(2*inlineBytes, need, byteLen(v.reserved)))
		copy(heap, v.inline[:byteLen(v.len)])
		v.inline = [inlineBytes]byte{}
		v.heap = heap
		v.mode = modeHeap
		v.reserved = 0
		return
	}
	if need <= len(v.heap) {
		return
	}
	if need <= cap(v.heap) {
		v.heap = v.heap[:need]
		return
	}
	heap := make([]byte, need, max(2*cap(v.heap), need))
	copy(heap, v.heap)
	v.heap = heap
}

func byteLen(n int) int {
	return n>>3 + (n&7+7)>>3
}
