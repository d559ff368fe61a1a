package bitvec

import (
	"encoding/binary"
	"hash/maphash"
)

// Key returns a string that is equal for two vectors exactly when Equal
// reports true, so vectors can be used as map keys.
func (v *BitVector) Key() string {
	b, _ := v.AppendBinary(make([]byte, 0, binary.MaxVarintLen64+byteLen(v.len)))
	return string(b)
}

// Hash returns a seeded hash consistent with Equal. Storage mode, capacity
// and bits past Len() do not affect it.
func (v *BitVector) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)

	var lenBuf [binary.MaxVarintLen64]byte
	_, _ = h.Write(binary.AppendUvarint(lenBuf[:0], uint64(v.len)))

	full := v.len >> 3
	buf := v.bytes()
	_, _ = h.Write(buf[:full])
	if r := v.len & 7; r != 0 {
		_ = h.WriteByte(buf[full] & (byte(1)<<r - 1))
	}
	return h.Sum64()
}
