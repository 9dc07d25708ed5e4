package xfs

import "errors"

var (
	// ErrTruncatedInput is returned when a read runs past either end of a stream.
	ErrTruncatedInput = errors.New("xfs: truncated input")
	// ErrUnterminatedString is returned when a C string has no 0x00 terminator.
	ErrUnterminatedString = errors.New("xfs: unterminated string")
	// ErrDepthExceeded is returned when nested structures exceed the configured depth.
	ErrDepthExceeded = errors.New("xfs: structure nesting too deep")
	// ErrMisaligned is returned in strict mode when a top-level structure does
	// not end on an offset table entry.
	ErrMisaligned = errors.New("xfs: top-level structure misaligned with offset table")
)
