package hash

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

// Size is the length of an encoded checksum trailer.
const Size = 4

// ErrMismatch is returned when a checksum trailer does not match its data.
var ErrMismatch = errors.New("checksum mismatch")

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// AppendTrailer appends the little-endian CRC32C of data to data.
func AppendTrailer(data []byte) []byte {
	return binary.LittleEndian.AppendUint32(data, CRC32C(data))
}

// SplitTrailer verifies the checksum trailer at the end of framed and returns
// the bytes it covers.
func SplitTrailer(framed []byte) ([]byte, error) {
	if len(framed) < Size {
		return nil, fmt.Errorf("%w: %d bytes is too short for a trailer", ErrMismatch, len(framed))
	}
	body := framed[:len(framed)-Size]
	want := binary.LittleEndian.Uint32(framed[len(body):])
	if got := CRC32C(body); got != want {
		return nil, fmt.Errorf("%w: got %08x, want %08x", ErrMismatch, got, want)
	}
	return body, nil
}
