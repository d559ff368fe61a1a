// Package hash provides the CRC32-Castagnoli checksums that protect encoded
// bit vector frames.
//
// Frames carry a 4-byte little-endian trailer computed over every preceding
// byte:
//
//	framed := hash.AppendTrailer(body)
//	body, err := hash.SplitTrailer(framed)
//
// Go's crc32 package uses SSE4.2 or the ARM CRC extension when available.
package hash
