// Package conv provides checked integer conversions for lengths and indices
// read from untrusted encodings or handed to fixed-width APIs.
package conv
