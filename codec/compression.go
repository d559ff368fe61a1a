package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/bitvec/internal/conv"
)

// Compression defines the compression algorithm applied to a frame payload.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

// ErrUnknownCompression is returned for an unsupported compression id.
var ErrUnknownCompression = errors.New("unknown compression")

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

func (c Compression) valid() bool {
	return c <= CompressionZSTD
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	_ = dec.Reset(nil)
	zstdDecoderPool.Put(dec)
}

// maxLZ4Ratio is the largest expansion an LZ4 block can encode: every
// compressed byte yields at most 255 output bytes.
const maxLZ4Ratio = 255

// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize == 0 means Data is stored uncompressed.
const blockHeaderSize = 8

// appendBlock appends data to dst as a block. Payloads that do not shrink by
// at least 10% are stored raw.
func appendBlock(dst, data []byte, c Compression) ([]byte, error) {
	rawSize, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, err
	}

	var compressed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
	if err != nil {
		return nil, err
	}

	dst = binary.LittleEndian.AppendUint32(dst, rawSize)
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		dst = binary.LittleEndian.AppendUint32(dst, 0)
		return append(dst, data...), nil
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(compressed))) //nolint:gosec // len(compressed) < len(data) here
	return append(dst, compressed...), nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return compressed[:n], nil
}

// readBlock decodes the block that exactly fills data. Blocks declaring more
// than maxRaw bytes are rejected before anything is allocated.
func readBlock(data []byte, c Compression, maxRaw int) ([]byte, error) {
	if len(data) < blockHeaderSize {
		return nil, fmt.Errorf("%w: block too small for header", ErrInvalidFrame)
	}
	rawSize, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(data[0:]))
	if err != nil {
		return nil, err
	}
	compressedSize, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(data[4:]))
	if err != nil {
		return nil, err
	}
	body := data[blockHeaderSize:]
	if rawSize > maxRaw {
		return nil, fmt.Errorf("%w: block size %d exceeds limit %d", ErrInvalidFrame, rawSize, maxRaw)
	}

	if compressedSize == 0 {
		if len(body) != rawSize {
			return nil, fmt.Errorf("%w: raw block holds %d bytes, header says %d", ErrInvalidFrame, len(body), rawSize)
		}
		return body, nil
	}
	if len(body) != compressedSize {
		return nil, fmt.Errorf("%w: compressed block holds %d bytes, header says %d", ErrInvalidFrame, len(body), compressedSize)
	}

	switch c {
	case CompressionLZ4:
		if rawSize > maxLZ4Ratio*len(body) {
			return nil, fmt.Errorf("%w: lz4 block of %d bytes cannot expand to %d", ErrInvalidFrame, len(body), rawSize)
		}
		result := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(body, result)
		if err != nil {
			return nil, err
		}
		if n != rawSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrInvalidFrame)
		}
		return result, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		if err := dec.Reset(bytes.NewReader(body)); err != nil {
			return nil, err
		}
		// The stream may claim any content size; read one byte past rawSize
		// at most so a lying header cannot inflate memory.
		var out bytes.Buffer
		out.Grow(min(rawSize, 4*len(body)))
		if _, err := io.Copy(&out, io.LimitReader(dec, int64(rawSize)+1)); err != nil {
			return nil, err
		}
		if out.Len() != rawSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrInvalidFrame)
		}
		return out.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: compressed block with compression %s", ErrInvalidFrame, c)
	}
}
