package bitvec

import (
	"encoding/binary"
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/hupe1980/bitvec/internal/conv"
)

// MarshalBinary encodes the vector as uvarint(Len()) followed by the packed
// bytes with unused tail bits cleared.
func (v *BitVector) MarshalBinary() ([]byte, error) {
	return v.AppendBinary(make([]byte, 0, binary.MaxVarintLen64+byteLen(v.len)))
}

// AppendBinary appends the MarshalBinary encoding to dst.
func (v *BitVector) AppendBinary(dst []byte) ([]byte, error) {
	dst = binary.AppendUvarint(dst, uint64(v.len))
	dst = append(dst, v.bytes()[:byteLen(v.len)]...)
	if r := v.len & 7; r != 0 {
		dst[len(dst)-1] &= byte(1)<<r - 1
	}
	return dst, nil
}

// UnmarshalBinary replaces the contents of v with data produced by
// MarshalBinary.
func (v *BitVector) UnmarshalBinary(data []byte) error {
	n, k := binary.Uvarint(data)
	if k <= 0 {
		return fmt.Errorf("%w: bad length prefix", ErrCorrupt)
	}
	bitLen, err := conv.Uint64ToInt(n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	body := data[k:]
	if want := byteLen(bitLen); len(body) != want {
		return fmt.Errorf("%w: expected %d payload bytes, got %d", ErrCorrupt, want, len(body))
	}
	*v = fromPacked(body, bitLen)
	return nil
}

type jsonVector struct {
	Len int   `json:"len"`
	Buf []int `json:"buf"`
}

// jsonVectorIn tells absent fields from zero ones.
type jsonVectorIn struct {
	Len *int   `json:"len"`
	Buf *[]int `json:"buf"`
}

// MarshalJSON encodes the vector as {"len": n, "buf": [bytes...]}.
func (v *BitVector) MarshalJSON() ([]byte, error) {
	packed := v.Bytes()
	buf := make([]int, len(packed))
	for i, b := range packed {
		buf[i] = int(b)
	}
	return gojson.Marshal(jsonVector{Len: v.len, Buf: buf})
}

// UnmarshalJSON decodes the MarshalJSON form. Both fields are required. A
// length larger than the buffer can hold is clamped to 8 bits per byte.
func (v *BitVector) UnmarshalJSON(data []byte) error {
	var jv jsonVectorIn
	if err := gojson.Unmarshal(data, &jv); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	switch {
	case jv.Len == nil:
		return fmt.Errorf("%w: missing field \"len\"", ErrCorrupt)
	case jv.Buf == nil:
		return fmt.Errorf("%w: missing field \"buf\"", ErrCorrupt)
	case *jv.Len < 0:
		return fmt.Errorf("%w: negative length %d", ErrCorrupt, *jv.Len)
	}
	buf := *jv.Buf
	packed := make([]byte, len(buf))
	for i, b := range buf {
		if b < 0 || b > 0xFF {
			return fmt.Errorf("%w: byte %d out of range: %d", ErrCorrupt, i, b)
		}
		packed[i] = byte(b)
	}
	n := min(*jv.Len, 8*len(packed))
	*v = fromPacked(packed[:byteLen(n)], n)
	return nil
}

// MarshalText encodes the vector in the literal form accepted by Parse.
func (v *BitVector) MarshalText() ([]byte, error) {
	return v.appendDigits(make([]byte, 0, v.len)), nil
}

// UnmarshalText decodes a literal accepted by Parse.
func (v *BitVector) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// fromPacked builds a vector of n bits from packed, which holds at least
// byteLen(n) bytes.
func fromPacked(packed []byte, n int) BitVector {
	var v BitVector
	v.init(n)
	copy(v.bytes(), packed[:byteLen(n)])
	return v
}
