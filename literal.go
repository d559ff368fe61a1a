package bitvec

import (
	"fmt"
	"strings"
)

// Of returns a vector holding bits in the given order.
func Of(bits ...bool) BitVector {
	return FromBits(bits)
}

// Repeat returns a vector of n copies of value. It panics if n is negative.
func Repeat(value bool, n int) BitVector {
	if n < 0 {
		panic("bitvec: negative repeat count")
	}
	var v BitVector
	v.init(n)
	if value {
		buf := v.bytes()
		for i := range buf[:byteLen(n)] {
			buf[i] = 0xFF
		}
	}
	return v
}

// Parse reads a bit literal such as "0b1011_0001". Digits are taken in index
// order: the first digit is bit 0. The "0b" prefix and '_' separators are
// optional.
//
// Unlike a Go binary literal, the string is not a number: Parse("0b1111_0000")
// sets bits 0-3, while FromBytes([]byte{0b1111_0000}) sets bits 4-7. %b prints
// the Parse form.
func Parse(s string) (BitVector, error) {
	digits := strings.TrimPrefix(s, "0b")

	n := 0
	for i := 0; i < len(digits); i++ {
		switch digits[i] {
		case '0', '1':
			n++
		case '_':
		default:
			return BitVector{}, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrInvalidLiteral, digits[i], len(s)-len(digits)+i, s)
		}
	}

	var v BitVector
	v.init(n)
	buf := v.bytes()
	j := 0
	for i := 0; i < len(digits); i++ {
		switch digits[i] {
		case '1':
			buf[j>>3] |= 1 << (j & 7)
			j++
		case '0':
			j++
		}
	}
	return v, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) BitVector {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FromByteLiteral validates a byte literal that claims to hold bitCount bits
// before handing it to FromBytes. bitCount must be a multiple of 8 and match
// the number of bytes.
func FromByteLiteral(b []byte, bitCount int) (BitVector, error) {
	if bitCount < 0 || bitCount%8 != 0 {
		return BitVector{}, fmt.Errorf("%w: bit count %d is not a multiple of 8", ErrInvalidLiteral, bitCount)
	}
	if bitCount/8 != len(b) {
		return BitVector{}, fmt.Errorf("%w: bit count %d does not match %d bytes", ErrInvalidLiteral, bitCount, len(b))
	}
	return FromBytes(b), nil
}
