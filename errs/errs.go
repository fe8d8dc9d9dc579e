// Package errs defines the sentinel errors shared by the anvil packages.
//
// Errors returned by the codec and region layers wrap one of these values with
// additional context, so callers should match them with errors.Is:
//
//	root, ok, err := reader.ReadChunk(x, z)
//	if errors.Is(err, errs.ErrUnsupportedCompression) {
//	    // skip this chunk and continue the scan
//	}
package errs

import "errors"

// Tag stream errors.
var (
	// ErrUnknownTagID is returned when a type tag byte is outside the 0-12 range.
	ErrUnknownTagID = errors.New("unknown tag id")

	// ErrMalformedStream is returned when the input ends before a declared field is complete,
	// when a declared count is negative or larger than the remaining input, or when nesting
	// exceeds the configured depth limit.
	ErrMalformedStream = errors.New("malformed tag stream")

	// ErrStringTooLong is returned when encoding a string or name longer than 32767 bytes.
	ErrStringTooLong = errors.New("string exceeds maximum length")

	// ErrListTypeMismatch is returned when encoding a list whose elements differ from its declared element type.
	ErrListTypeMismatch = errors.New("list element type mismatch")

	// ErrMissingField is returned by typed compound accessors when the named entry is absent.
	ErrMissingField = errors.New("missing field")

	// ErrTypeMismatch is returned by typed accessors when the entry exists but has another type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// Region archive errors.
var (
	ErrInvalidHeaderSize      = errors.New("invalid region header size")
	ErrInvalidCoordinate      = errors.New("chunk coordinate out of range")
	ErrInvalidRegionName      = errors.New("invalid region file name")
	ErrUnsupportedCompression = errors.New("unsupported compression scheme")
	ErrDecompressedTooLarge   = errors.New("decompressed chunk exceeds size limit")
	ErrChunkTooLarge          = errors.New("chunk exceeds maximum sector count")
	ErrExternalChunk          = errors.New("external chunk file unavailable")
)

// Scanner errors.
var (
	// ErrEmptyID is returned when tracking an empty waypoint or structure identifier.
	ErrEmptyID = errors.New("empty identifier")
)
