// Package errs collects the sentinel errors returned across mapbufr.
// Call sites wrap these with fmt.Errorf("...: %w", errs.ErrX) to attach
// context; callers compare with errors.Is.
package errs

import "errors"

var (
	// ErrTypeMismatch is returned by intmap.Open when the buffer's stored
	// type descriptor does not match the requested key and value types.
	ErrTypeMismatch = errors.New("mapbufr: unsupported data source type")

	// ErrKeyNotFound is returned by Get and Set when the requested key
	// is absent from the map.
	ErrKeyNotFound = errors.New("mapbufr: key not found")

	// ErrLengthMismatch is returned by Set when the new encoded value
	// does not have exactly the same length as the one it replaces.
	ErrLengthMismatch = errors.New("mapbufr: replacement value length mismatch")

	// ErrUnsupportedCompression is returned when a compression tag does
	// not match any registered codec.
	ErrUnsupportedCompression = errors.New("mapbufr: unsupported compression type")

	// ErrCompression wraps a codec-internal failure during compression.
	ErrCompression = errors.New("mapbufr: compression failed")

	// ErrDecompression wraps a codec-internal failure during decompression.
	ErrDecompression = errors.New("mapbufr: decompression failed")

	// ErrValidation is returned for any structural violation of the wire
	// format: magic mismatch, unknown format version, inconsistent N or
	// buffer size, non-monotonic offsets, or a failed CRC-32C check.
	ErrValidation = errors.New("mapbufr: validation failed")

	// ErrDuplicateKey is returned by a writer when the input mapping
	// contains two entries whose keys collide; the format has no
	// defined semantics for duplicate keys.
	ErrDuplicateKey = errors.New("mapbufr: duplicate key")
)
