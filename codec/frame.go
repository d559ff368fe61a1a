package codec

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/bitvec"
	"github.com/hupe1980/bitvec/internal/conv"
	"github.com/hupe1980/bitvec/internal/hash"
)

// Frame layout (little endian):
//
//	magic "BVEC" | version u8 | compression u8 | name length u8 | codec name |
//	block | crc32c u32
//
// The CRC32-Castagnoli trailer covers every preceding byte.
const (
	magic        = "BVEC"
	version byte = 1

	fixedHeaderSize = len(magic) + 3
)

var (
	// ErrInvalidFrame is returned for input that is not a well-formed frame.
	ErrInvalidFrame = errors.New("invalid frame")

	// ErrChecksumMismatch is returned when a frame fails its integrity check.
	ErrChecksumMismatch = hash.ErrMismatch

	// ErrUnknownCodec is returned when a frame names a codec that is neither
	// built in nor configured with WithCodec.
	ErrUnknownCodec = errors.New("unknown codec")
)

// Encode encodes v into a frame.
func Encode(v *bitvec.BitVector, optFns ...Option) ([]byte, error) {
	o := newOptions(optFns)
	start := time.Now()

	data, err := encode(v, &o)

	o.metricsCollector.RecordEncode(len(data), time.Since(start), err)
	o.logger.WithCodec(o.codec.Name()).LogEncode(context.Background(), v.Len(), len(data), err)
	return data, err
}

func encode(v *bitvec.BitVector, o *options) ([]byte, error) {
	name := o.codec.Name()
	if name == "" || len(name) > 255 {
		return nil, fmt.Errorf("%w: codec name %q must be 1-255 bytes", ErrUnknownCodec, name)
	}
	if !o.compression.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(o.compression))
	}

	payload, err := o.codec.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s marshal: %w", name, err)
	}

	frame := make([]byte, 0, fixedHeaderSize+len(name)+blockHeaderSize+len(payload)+hash.Size)
	frame = append(frame, magic...)
	frame = append(frame, version, byte(o.compression), byte(len(name)))
	frame = append(frame, name...)

	frame, err = appendBlock(frame, payload, o.compression)
	if err != nil {
		return nil, err
	}
	return hash.AppendTrailer(frame), nil
}

// Decode decodes a frame produced by Encode.
func Decode(data []byte, optFns ...Option) (bitvec.BitVector, error) {
	o := newOptions(optFns)
	start := time.Now()

	v, err := decode(data, &o)

	o.metricsCollector.RecordDecode(len(data), time.Since(start), err)
	o.logger.LogDecode(context.Background(), len(data), v.Len(), err)
	return v, err
}

func decode(data []byte, o *options) (bitvec.BitVector, error) {
	if len(data) < fixedHeaderSize+hash.Size {
		return bitvec.BitVector{}, fmt.Errorf("%w: %d bytes is too short", ErrInvalidFrame, len(data))
	}
	if string(data[:len(magic)]) != magic {
		return bitvec.BitVector{}, fmt.Errorf("%w: bad magic", ErrInvalidFrame)
	}
	body, err := hash.SplitTrailer(data)
	if err != nil {
		return bitvec.BitVector{}, err
	}

	hdr := body[len(magic):]
	if hdr[0] != version {
		return bitvec.BitVector{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidFrame, hdr[0])
	}
	compression := Compression(hdr[1])
	if !compression.valid() {
		return bitvec.BitVector{}, fmt.Errorf("%w: %d", ErrUnknownCompression, hdr[1])
	}
	nameLen := int(hdr[2])
	rest := body[fixedHeaderSize:]
	if len(rest) < nameLen {
		return bitvec.BitVector{}, fmt.Errorf("%w: truncated codec name", ErrInvalidFrame)
	}
	name := string(rest[:nameLen])

	c, err := o.lookupCodec(name)
	if err != nil {
		return bitvec.BitVector{}, err
	}

	payload, err := readBlock(rest[nameLen:], compression, o.maxFrameSize)
	if err != nil {
		return bitvec.BitVector{}, err
	}

	var v bitvec.BitVector
	if err := c.Unmarshal(payload, &v); err != nil {
		return bitvec.BitVector{}, fmt.Errorf("%s unmarshal: %w", name, err)
	}
	return v, nil
}

func (o *options) lookupCodec(name string) (Codec, error) {
	if o.codec != nil && o.codec.Name() == name {
		return o.codec, nil
	}
	if c, ok := ByName(name); ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// Write writes v to w as a frame preceded by its uint32 little-endian length,
// so several vectors can share one stream.
func Write(ctx context.Context, w io.Writer, v *bitvec.BitVector, optFns ...Option) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	frame, err := Encode(v, optFns...)
	if err != nil {
		return 0, err
	}
	if o := newOptions(optFns); len(frame) > o.maxFrameSize {
		return 0, fmt.Errorf("%w: frame length %d exceeds limit %d", ErrInvalidFrame, len(frame), o.maxFrameSize)
	}
	size, err := conv.IntToUint32(len(frame))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}

	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], size)
	n, err := w.Write(prefix[:])
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(frame)
	return int64(n + m), err
}

// Read reads one length-prefixed frame written by Write. It returns io.EOF
// when r is exhausted before the next frame starts. Memory grows with the
// bytes actually read, never with the untrusted length prefix alone.
func Read(ctx context.Context, r io.Reader, optFns ...Option) (bitvec.BitVector, error) {
	if err := ctx.Err(); err != nil {
		return bitvec.BitVector{}, err
	}
	o := newOptions(optFns)

	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return bitvec.BitVector{}, fmt.Errorf("%w: truncated length prefix", ErrInvalidFrame)
		}
		return bitvec.BitVector{}, err
	}

	size := int64(binary.LittleEndian.Uint32(prefix[:]))
	if size < int64(fixedHeaderSize+hash.Size) {
		return bitvec.BitVector{}, fmt.Errorf("%w: frame length %d is too short", ErrInvalidFrame, size)
	}
	if size > int64(o.maxFrameSize) {
		return bitvec.BitVector{}, fmt.Errorf("%w: frame length %d exceeds limit %d", ErrInvalidFrame, size, o.maxFrameSize)
	}

	var frame bytes.Buffer
	if n, err := io.CopyN(&frame, r, size); err != nil {
		if errors.Is(err, io.EOF) {
			return bitvec.BitVector{}, fmt.Errorf("%w: truncated frame: got %d of %d bytes", ErrInvalidFrame, n, size)
		}
		return bitvec.BitVector{}, err
	}
	return Decode(frame.Bytes(), optFns...)
}
