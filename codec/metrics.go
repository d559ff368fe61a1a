package codec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives one call per encoded or decoded frame.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordEncode is called after each encode. size is the frame size in
	// bytes (0 on failure).
	RecordEncode(size int, duration time.Duration, err error)

	// RecordDecode is called after each decode. size is the input size in
	// bytes.
	RecordDecode(size int, duration time.Duration, err error)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEncode(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordDecode(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	EncodeCount      atomic.Int64
	EncodeErrors     atomic.Int64
	EncodeBytes      atomic.Int64
	EncodeTotalNanos atomic.Int64
	DecodeCount      atomic.Int64
	DecodeErrors     atomic.Int64
	DecodeBytes      atomic.Int64
	DecodeTotalNanos atomic.Int64
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(size int, duration time.Duration, err error) {
	b.EncodeCount.Add(1)
	b.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EncodeErrors.Add(1)
		return
	}
	b.EncodeBytes.Add(int64(size))
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(size int, duration time.Duration, err error) {
	b.DecodeCount.Add(1)
	b.DecodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DecodeErrors.Add(1)
		return
	}
	b.DecodeBytes.Add(int64(size))
}

// MetricsStats is a point-in-time copy of BasicMetricsCollector.
type MetricsStats struct {
	EncodeCount     int64
	EncodeErrors    int64
	EncodeBytes     int64
	AvgEncodeMicros int64
	DecodeCount     int64
	DecodeErrors    int64
	DecodeBytes     int64
	AvgDecodeMicros int64
}

// GetStats returns a snapshot of the collected metrics.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	s := MetricsStats{
		EncodeCount:  b.EncodeCount.Load(),
		EncodeErrors: b.EncodeErrors.Load(),
		EncodeBytes:  b.EncodeBytes.Load(),
		DecodeCount:  b.DecodeCount.Load(),
		DecodeErrors: b.DecodeErrors.Load(),
		DecodeBytes:  b.DecodeBytes.Load(),
	}
	if s.EncodeCount > 0 {
		s.AvgEncodeMicros = b.EncodeTotalNanos.Load() / s.EncodeCount / 1000
	}
	if s.DecodeCount > 0 {
		s.AvgDecodeMicros = b.DecodeTotalNanos.Load() / s.DecodeCount / 1000
	}
	return s
}
