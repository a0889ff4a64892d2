// Package bytemap implements the ByteMap variant of the format: an
// immutable u64-key to variable-length byte-value map, laid out as a
// fixed header, an Eytzinger-ordered index, and a concatenated data
// region.
package bytemap

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/seung-lab/mapbufr/checksum"
	"github.com/seung-lab/mapbufr/compress"
	"github.com/seung-lab/mapbufr/errs"
	"github.com/seung-lab/mapbufr/eytzinger"
	"github.com/seung-lab/mapbufr/internal/options"
	"github.com/seung-lab/mapbufr/internal/pool"
	"github.com/seung-lab/mapbufr/section"
)

// Build serializes keys and their corresponding values into a ByteMap
// buffer. keys[i] maps to values[i]; duplicate keys are rejected. The
// result is a self-contained []byte ready to be written to disk or wrapped
// in a source.Source for reading.
func Build(keys []uint64, values [][]byte, opts ...WriterOption) ([]byte, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("bytemap: %d keys but %d values", len(keys), len(values))
	}

	o := DefaultWriterOptions()
	if err := options.Apply(&o, opts...); err != nil {
		return nil, fmt.Errorf("bytemap: %w", err)
	}

	codec, err := compress.CreateCodec(o.Compression)
	if err != nil {
		return nil, fmt.Errorf("bytemap: %w", err)
	}

	n := len(keys)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return keys[order[i]] < keys[order[j]] })

	sortedKeys := make([]uint64, n)
	for i, idx := range order {
		sortedKeys[i] = keys[idx]
	}
	for i := 1; i < n; i++ {
		if sortedKeys[i] == sortedKeys[i-1] {
			return nil, fmt.Errorf("%w: %d", errs.ErrDuplicateKey, sortedKeys[i])
		}
	}

	// Compress every value once, in sorted-key order, then append the
	// format-1 CRC-32C trailer that guards it. compressed may alias the
	// caller's own value slice (NoOpCodec is a passthrough), so it is
	// copied into a fresh, exactly-sized slice before the trailer is
	// appended - otherwise a caller value with spare capacity would have
	// its own backing array corrupted by the append.
	blobs := make([][]byte, n)
	for i, idx := range order {
		compressed, err := codec.Compress(values[idx])
		if err != nil {
			return nil, fmt.Errorf("bytemap: compress key %d: %w", sortedKeys[i], err)
		}
		owned := make([]byte, len(compressed))
		copy(owned, compressed)
		blobs[i] = checksum.AppendLE(owned, owned)
	}

	perm := eytzinger.Permutation(n)

	dataBuf := pool.GetMapBuffer()
	defer pool.PutMapBuffer(dataBuf)

	dataOffset0 := section.DataOffset(n)
	slotOffset := make([]uint64, n)
	for slot := 0; slot < n; slot++ {
		srcIdx := perm[slot]
		slotOffset[slot] = uint64(dataOffset0 + dataBuf.Len())
		dataBuf.MustWrite(blobs[srcIdx])
	}

	total := dataOffset0 + dataBuf.Len()
	out := make([]byte, total)

	header := section.NewHeader(o.Compression, uint32(n))
	copy(out[0:section.HeaderSize], header.Bytes())

	for slot := 0; slot < n; slot++ {
		srcIdx := perm[slot]
		entry := section.IndexEntry{Key: sortedKeys[srcIdx], Offset: slotOffset[slot]}
		entry.WriteToSlice(out, section.IndexOffset+slot*section.IndexEntrySize)
	}

	copy(out[dataOffset0:], dataBuf.Bytes())

	o.Logger.Debug("built bytemap",
		zap.Int("entries", n),
		zap.Int("bytes", total),
		zap.String("compression", o.Compression.String()),
	)

	return out, nil
}

// BuildFromMap is a convenience wrapper around Build for callers that
// already hold their data as a map rather than parallel slices. Key
// order is nondeterministic going in, which is fine: Build sorts by key
// regardless.
func BuildFromMap(entries map[uint64][]byte, opts ...WriterOption) ([]byte, error) {
	keys := make([]uint64, 0, len(entries))
	values := make([][]byte, 0, len(entries))
	for k, v := range entries {
		keys = append(keys, k)
		values = append(values, v)
	}

	return Build(keys, values, opts...)
}
