package bitvec

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned by Get and Set for an index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidLiteral is returned when a bit or byte literal is malformed.
	ErrInvalidLiteral = errors.New("invalid bit literal")

	// ErrCorrupt is returned when encoded bits cannot be decoded.
	ErrCorrupt = errors.New("corrupt bit vector encoding")
)

// IndexOutOfRangeError reports an access outside the vector.
//
// It unwraps to ErrIndexOutOfRange.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index out of range: index %d, length %d", e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }
