package bytemap

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/seung-lab/mapbufr/checksum"
	"github.com/seung-lab/mapbufr/compress"
	"github.com/seung-lab/mapbufr/errs"
	"github.com/seung-lab/mapbufr/eytzinger"
	"github.com/seung-lab/mapbufr/internal/options"
	"github.com/seung-lab/mapbufr/section"
	"github.com/seung-lab/mapbufr/source"
)

// Reader provides read access to a ByteMap backed by any source.Source.
// A Reader caches only the fixed-size header and index; every value is
// read from src on demand.
type Reader struct {
	src      source.Source
	header   section.Header
	index    []byte
	codec    compress.Codec
	logger   *zap.Logger
	checkCRC bool
}

// Open parses src's header and index and returns a Reader ready for
// lookups.
func Open(src source.Source, opts ...ReaderOption) (*Reader, error) {
	o := DefaultReaderOptions()
	if err := options.Apply(&o, opts...); err != nil {
		return nil, fmt.Errorf("bytemap: %w", err)
	}

	headerBytes, err := src.ReadSlice(0, section.HeaderSize)
	if err != nil {
		return nil, fmt.Errorf("bytemap: read header: %w", err)
	}

	header, err := section.ParseHeader(headerBytes)
	if err != nil {
		return nil, fmt.Errorf("bytemap: %w", err)
	}

	n := int(header.Count)
	indexEnd := section.DataOffset(n)
	if src.Len() < indexEnd {
		return nil, fmt.Errorf("%w: buffer too short for %d entries", errs.ErrValidation, n)
	}

	index, err := src.ReadSlice(section.IndexOffset, indexEnd)
	if err != nil {
		return nil, fmt.Errorf("bytemap: read index: %w", err)
	}

	codec, err := compress.CreateCodec(header.Compression)
	if err != nil {
		return nil, fmt.Errorf("bytemap: %w", err)
	}

	o.Logger.Debug("opened bytemap",
		zap.Int("entries", n),
		zap.String("compression", header.Compression.String()),
	)

	return &Reader{
		src: src, header: header, index: index, codec: codec,
		logger: o.Logger, checkCRC: o.CheckCRC,
	}, nil
}

// Len returns the number of keys in the map.
func (r *Reader) Len() int {
	return int(r.header.Count)
}

// DataSize returns the size, in bytes, of the data region alone -
// the backing buffer's length minus its header and index.
func (r *Reader) DataSize() int {
	return r.src.Len() - section.DataOffset(r.Len())
}

func (r *Reader) keyAt(slot int) uint64 {
	return section.KeyAt(r.index, slot)
}

func (r *Reader) slotFor(key uint64) (int, bool) {
	return eytzinger.Search(r.Len(), key, r.keyAt)
}

// Contains reports whether key is present.
func (r *Reader) Contains(key uint64) bool {
	_, ok := r.slotFor(key)

	return ok
}

// blobRange returns the byte range of the stored (compressed,
// checksummed) blob at slot. Since both the index and the data region
// follow the same Eytzinger slot order, a value's length is implicit in
// the next slot's offset (or the buffer's end, for the last slot) -
// there is no separate length field on the wire.
func (r *Reader) blobRange(slot int) (start, end int) {
	n := r.Len()
	entry := section.IndexEntryAt(r.index, slot)
	start = int(entry.Offset)

	if slot == n-1 {
		end = r.src.Len()
	} else {
		end = int(section.IndexEntryAt(r.index, slot+1).Offset)
	}

	return start, end
}

func (r *Reader) valueAt(slot int, key uint64) ([]byte, error) {
	start, end := r.blobRange(slot)

	blob, err := r.src.ReadSlice(start, end)
	if err != nil {
		return nil, fmt.Errorf("bytemap: read value for key %d: %w", key, err)
	}

	payload := blob
	if r.header.Version == section.FormatVersion1 {
		if len(blob) < checksum.Size {
			return nil, fmt.Errorf("%w: value for key %d shorter than checksum trailer", errs.ErrValidation, key)
		}

		payload = blob[:len(blob)-checksum.Size]
		if r.checkCRC {
			trailer := blob[len(blob)-checksum.Size:]
			if !checksum.Verify(payload, trailer) {
				r.logger.Debug("checksum mismatch", zap.Uint64("key", key))

				return nil, fmt.Errorf("%w: checksum mismatch for key %d", errs.ErrValidation, key)
			}
		}
	}

	decompressed, err := r.codec.Decompress(payload, fmt.Sprintf("key %d", key))
	if err != nil {
		return nil, err
	}

	return decompressed, nil
}

// Get returns the value stored for key.
func (r *Reader) Get(key uint64) ([]byte, error) {
	slot, ok := r.slotFor(key)
	if !ok {
		return nil, fmt.Errorf("%w: %d", errs.ErrKeyNotFound, key)
	}

	return r.valueAt(slot, key)
}

// GetOr returns the value stored for key, or fallback if key is absent
// or its stored value fails to decode.
func (r *Reader) GetOr(key uint64, fallback []byte) []byte {
	v, err := r.Get(key)
	if err != nil {
		return fallback
	}

	return v
}

// Keys iterates every key in the map, in Eytzinger (storage) order.
func (r *Reader) Keys() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for slot := 0; slot < r.Len(); slot++ {
			if !yield(r.keyAt(slot)) {
				return
			}
		}
	}
}

// Values iterates every value in the map, in Eytzinger (storage) order.
// Iteration stops silently on the first decode error; callers that need
// to observe such an error should use ToDict instead.
func (r *Reader) Values() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for slot := 0; slot < r.Len(); slot++ {
			v, err := r.valueAt(slot, r.keyAt(slot))
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Items iterates every (key, value) pair in the map, in Eytzinger
// (storage) order. Like Values, it stops silently on the first decode
// error.
func (r *Reader) Items() iter.Seq2[uint64, []byte] {
	return func(yield func(uint64, []byte) bool) {
		for slot := 0; slot < r.Len(); slot++ {
			key := r.keyAt(slot)

			v, err := r.valueAt(slot, key)
			if err != nil {
				return
			}
			if !yield(key, v) {
				return
			}
		}
	}
}

// ToDict materializes the entire map into a Go map, failing on the
// first decode error.
func (r *Reader) ToDict() (map[uint64][]byte, error) {
	out := make(map[uint64][]byte, r.Len())

	for slot := 0; slot < r.Len(); slot++ {
		key := r.keyAt(slot)

		v, err := r.valueAt(slot, key)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}

	return out, nil
}

// Validate walks the entire index, verifying slot offsets are
// monotonically non-decreasing and, for format version 1, that every
// value's checksum matches its stored trailer. Version 0 buffers carry
// no trailer and are only checked for offset monotonicity. It does not
// decompress any value.
func (r *Reader) Validate() error {
	n := r.Len()
	prevOffset := -1

	for slot := 0; slot < n; slot++ {
		entry := section.IndexEntryAt(r.index, slot)
		if int(entry.Offset) < prevOffset {
			return fmt.Errorf("%w: offsets not monotonic at slot %d", errs.ErrValidation, slot)
		}
		prevOffset = int(entry.Offset)

		start, end := r.blobRange(slot)

		blob, err := r.src.ReadSlice(start, end)
		if err != nil {
			return fmt.Errorf("bytemap: read value at slot %d: %w", slot, err)
		}

		if r.header.Version == section.FormatVersion1 {
			if len(blob) < checksum.Size {
				return fmt.Errorf("%w: value at slot %d shorter than checksum trailer", errs.ErrValidation, slot)
			}

			payload, trailer := blob[:len(blob)-checksum.Size], blob[len(blob)-checksum.Size:]
			if !checksum.Verify(payload, trailer) {
				return fmt.Errorf("%w: checksum mismatch at slot %d (key %d)", errs.ErrValidation, slot, entry.Key)
			}
		}
	}

	return nil
}

// Set overwrites the value stored for key in place. The new value, once
// compressed and checksummed the same way every other value is, must
// encode to exactly the same length as the blob it replaces -
// ErrLengthMismatch otherwise, since the wire format has no room to grow
// or shrink a single slot without re-laying out every offset after it.
// Set requires src to be a source.WritableSource.
func (r *Reader) Set(key uint64, value []byte) error {
	writable, ok := r.src.(source.WritableSource)
	if !ok {
		return fmt.Errorf("bytemap: backing source is not writable")
	}

	slot, ok := r.slotFor(key)
	if !ok {
		return fmt.Errorf("%w: %d", errs.ErrKeyNotFound, key)
	}

	start, end := r.blobRange(slot)

	compressed, err := r.codec.Compress(value)
	if err != nil {
		return fmt.Errorf("bytemap: compress key %d: %w", key, err)
	}
	// compressed may alias the caller's value slice (NoOpCodec is a
	// passthrough); copy it into a fresh, exactly-sized slice before
	// appending the trailer so AppendLE never writes past its logical
	// length into memory the caller still holds. Version 0 buffers carry
	// no trailer.
	owned := make([]byte, len(compressed))
	copy(owned, compressed)
	blob := owned
	if r.header.Version == section.FormatVersion1 {
		blob = checksum.AppendLE(owned, owned)
	}

	if len(blob) != end-start {
		return fmt.Errorf("%w: key %d: new encoding is %d bytes, slot holds %d",
			errs.ErrLengthMismatch, key, len(blob), end-start)
	}

	return writable.WriteSlice(start, blob)
}

// ToBytes returns the full backing buffer.
func (r *Reader) ToBytes() ([]byte, error) {
	return r.src.ReadSlice(0, r.src.Len())
}
