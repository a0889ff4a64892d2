// Package mapbufr provides a compact, immutable binary format for
// mapping 64-bit integer keys to byte values, with O(log n) point
// lookups via an Eytzinger-ordered binary search over the key index.
//
// Mapbufr is aimed at read-mostly lookup tables built once and consulted
// many times: a dictionary of precomputed results, a reverse index from
// hash to record, a compact on-disk cache. The wire format needs no
// decode pass before the first lookup - a reader parses a fixed 16-byte
// header, then binary-searches directly over the backing bytes.
//
// # Core Features
//
//   - Eytzinger (cache-friendly) binary search index, O(log n) lookups
//   - Pluggable per-map compression (none, gzip, Brotli, Zstandard, LZMA)
//   - CRC-32C integrity check on every stored value
//   - Pluggable backing store: in-memory bytes, io.ReaderAt, memory-mapped
//     files, or any user-supplied slice-addressable proxy
//   - A companion IntMap variant for fixed-width integer-to-integer maps,
//     skipping compression and checksumming entirely for minimal overhead
//
// # Basic Usage
//
// Building and reading a ByteMap:
//
//	import "github.com/seung-lab/mapbufr"
//
//	entries := map[uint64][]byte{
//	    mapbufr.Key("alice"): []byte("engineering"),
//	    mapbufr.Key("bob"):   []byte("sales"),
//	}
//
//	buf, err := mapbufr.Build(entries, mapbufr.WithCompression(mapbufr.CompressionZstd))
//	if err != nil {
//	    // handle error
//	}
//
//	m, err := mapbufr.Open(buf)
//	if err != nil {
//	    // handle error
//	}
//
//	dept, err := m.Get(mapbufr.Key("alice"))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the
// bytemap package, covering the most common in-memory and mmap-backed
// use cases. For fixed-width integer-to-integer maps, functional-option
// configuration, or a custom source.Source, use the bytemap and intmap
// packages directly.
package mapbufr

import (
	"github.com/seung-lab/mapbufr/bytemap"
	"github.com/seung-lab/mapbufr/format"
	"github.com/seung-lab/mapbufr/internal/hash"
	"github.com/seung-lab/mapbufr/source"
)

// Compression tags accepted by WithCompression, re-exported from format
// for callers that only need the top-level package.
const (
	CompressionNone   = format.CompressionNone
	CompressionGzip   = format.CompressionGzip
	CompressionBrotli = format.CompressionBrotli
	CompressionZstd   = format.CompressionZstd
	CompressionLZMA   = format.CompressionLZMA
)

// WithCompression selects the codec applied to every value in a built map.
var WithCompression = bytemap.WithCompression

// Key derives the u64 key mapbufr uses internally from an arbitrary
// string identifier, via xxHash64. It is a convenience for callers whose
// natural keys are names rather than integers; two distinct names
// collide with probability indistinguishable from a uniform random
// 64-bit draw, so callers with adversarial key sources should hash
// their own keys and check for collisions before building.
func Key(name string) uint64 {
	return hash.ID(name)
}

// Build serializes entries into a ByteMap buffer, ready to be written to
// disk or opened directly with Open.
func Build(entries map[uint64][]byte, opts ...bytemap.WriterOption) ([]byte, error) {
	return bytemap.BuildFromMap(entries, opts...)
}

// Open opens buf, an in-memory ByteMap buffer, for reading.
func Open(buf []byte, opts ...bytemap.ReaderOption) (*bytemap.Reader, error) {
	return bytemap.Open(source.NewBytes(buf), opts...)
}

// OpenFile memory-maps path and opens it as a read-only ByteMap. The
// returned close function must be called to release the mapping once the
// reader is no longer needed.
func OpenFile(path string, opts ...bytemap.ReaderOption) (reader *bytemap.Reader, closeFn func() error, err error) {
	m, err := source.OpenMmap(path)
	if err != nil {
		return nil, nil, err
	}

	reader, err = bytemap.Open(m, opts...)
	if err != nil {
		_ = m.Close()

		return nil, nil, err
	}

	return reader, m.Close, nil
}
