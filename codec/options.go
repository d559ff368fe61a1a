package codec

import "github.com/hupe1980/bitvec"

// DefaultMaxFrameSize bounds frames and decompressed payloads unless
// WithMaxFrameSize says otherwise. 256 MiB holds a packed vector of 2^31 bits.
const DefaultMaxFrameSize = 256 << 20

type options struct {
	codec            Codec
	compression      Compression
	logger           *bitvec.Logger
	metricsCollector MetricsCollector
	maxFrameSize     int
}

// Option configures Encode, Decode, Write and Read.
type Option func(*options)

func newOptions(optFns []Option) options {
	o := options{
		codec:            Default,
		compression:      CompressionNone,
		logger:           bitvec.NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		maxFrameSize:     DefaultMaxFrameSize,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// WithCodec configures the codec used to encode the payload.
//
// When decoding, a configured codec is used for frames carrying its name.
// Frames written by built-in codecs are always decodable.
// If nil is passed, Default is used.
func WithCodec(c Codec) Option {
	return func(o *options) {
		if c == nil {
			c = Default
		}
		o.codec = c
	}
}

// WithCompression configures payload compression. Ignored when decoding; the
// frame records its own compression.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger configures the logger for encode/decode outcomes.
// Pass nil to disable logging.
func WithLogger(l *bitvec.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = bitvec.NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMaxFrameSize limits the size in bytes of frames accepted by Read and of
// payloads produced by decompression. Larger inputs fail with ErrInvalidFrame.
// Values below 1 select DefaultMaxFrameSize.
func WithMaxFrameSize(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxFrameSize
		}
		o.maxFrameSize = n
	}
}
