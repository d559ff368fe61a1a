// Package codec encodes bit vectors into self-describing, checksummed frames.
//
// A frame records the codec and compression used to produce it, so readers
// select the right decoder by name:
//
//	data, _ := codec.Encode(&v, codec.WithCodec(codec.GoJSON{}), codec.WithCompression(codec.CompressionZSTD))
//	v2, _ := codec.Decode(data)
//
// Changing the default codec never breaks existing frames.
package codec

import (
	"encoding"
	"fmt"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = Binary{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "binary":
		return Binary{}, true
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Binary is the compact codec: a uvarint bit length followed by the packed
// bytes. It requires values implementing encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler.
type Binary struct{}

// Marshal encodes v with its MarshalBinary method.
func (Binary) Marshal(v any) ([]byte, error) {
	m, ok := v.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("binary codec: %T does not implement encoding.BinaryMarshaler", v)
	}
	return m.MarshalBinary()
}

// Unmarshal decodes data with the UnmarshalBinary method of v.
func (Binary) Unmarshal(data []byte, v any) error {
	u, ok := v.(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("binary codec: %T does not implement encoding.BinaryUnmarshaler", v)
	}
	return u.UnmarshalBinary(data)
}

// Name returns the unique name of the codec ("binary").
func (Binary) Name() string { return "binary" }
