package intmap

import (
	"fmt"
	"iter"
	"math"

	"github.com/seung-lab/mapbufr/errs"
	"github.com/seung-lab/mapbufr/eytzinger"
	"github.com/seung-lab/mapbufr/format"
	"github.com/seung-lab/mapbufr/section"
	"github.com/seung-lab/mapbufr/source"
)

// Reader provides read access to an IntMap backed by any source.Source.
type Reader[K, V Number] struct {
	src      source.Source
	header   section.IntHeader
	data     []byte
	width    int
	slotSize int
}

// Open parses src's header and loads its slot array, validating that the
// stored type descriptor matches the requested K, V instantiation.
func Open[K, V Number](src source.Source) (*Reader[K, V], error) {
	headerBytes, err := src.ReadSlice(0, section.IntHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("intmap: read header: %w", err)
	}

	header, err := section.ParseIntHeader(headerBytes)
	if err != nil {
		return nil, fmt.Errorf("intmap: %w", err)
	}

	wantKeyClass, wantWidth := classify[K]()
	wantValClass, _ := classify[V]()
	if header.KeyClass != wantKeyClass || header.ValClass != wantValClass || header.Width != wantWidth {
		return nil, fmt.Errorf("%w: stored type descriptor does not match requested types", errs.ErrTypeMismatch)
	}

	slotSize := section.IntSlotSize(header.Width)
	n := int(header.Count)
	dataEnd := section.IntIndexOffset + n*slotSize
	if src.Len() < dataEnd {
		return nil, fmt.Errorf("%w: buffer too short for %d entries", errs.ErrValidation, n)
	}

	data, err := src.ReadSlice(section.IntIndexOffset, dataEnd)
	if err != nil {
		return nil, fmt.Errorf("intmap: read data: %w", err)
	}

	return &Reader[K, V]{
		src:      src,
		header:   header,
		data:     data,
		width:    int(header.Width),
		slotSize: slotSize,
	}, nil
}

// Len returns the number of keys in the map.
func (r *Reader[K, V]) Len() int {
	return int(r.header.Count)
}

func (r *Reader[K, V]) slot(i int) []byte {
	return r.data[i*r.slotSize : (i+1)*r.slotSize]
}

func (r *Reader[K, V]) keyAt(slot int) uint64 {
	k := decodeNumber[K](r.slot(slot)[:r.width])

	return numberToUint64(k, r.header.KeyClass)
}

// numberToUint64 reinterprets the bit pattern of a key so it can be
// driven through eytzinger.Search's uint64 comparator without losing
// the numeric type's native ordering: unsigned values pass through,
// signed values are bias-shifted, and floats use their sign-magnitude
// to two's-complement bit trick, all of which preserve the original
// total order.
func numberToUint64[T Number](v T, class format.NumberClass) uint64 {
	switch class {
	case format.ClassFloating:
		var bits uint64
		switch x := any(v).(type) {
		case float32:
			bits = math.Float64bits(float64(x))
		case float64:
			bits = math.Float64bits(x)
		}
		if bits&(1<<63) != 0 {
			return ^bits
		}

		return bits | (1 << 63)
	case format.ClassSigned:
		var signed int64
		switch x := any(v).(type) {
		case int8:
			signed = int64(x)
		case int16:
			signed = int64(x)
		case int32:
			signed = int64(x)
		case int64:
			signed = x
		}

		return uint64(signed) ^ (1 << 63)
	default:
		switch x := any(v).(type) {
		case uint8:
			return uint64(x)
		case uint16:
			return uint64(x)
		case uint32:
			return uint64(x)
		case uint64:
			return x
		}
	}

	return 0
}

// Contains reports whether key is present.
func (r *Reader[K, V]) Contains(key K) bool {
	_, ok := r.find(key)

	return ok
}

func (r *Reader[K, V]) find(key K) (int, bool) {
	target := numberToUint64(key, r.header.KeyClass)

	return eytzinger.Search(r.Len(), target, r.keyAt)
}

// Get returns the value stored for key.
func (r *Reader[K, V]) Get(key K) (V, error) {
	var zero V

	slot, ok := r.find(key)
	if !ok {
		return zero, fmt.Errorf("%w: %v", errs.ErrKeyNotFound, key)
	}

	rec := r.slot(slot)

	return decodeNumber[V](rec[r.width:]), nil
}

// GetOr returns the value stored for key, or fallback if key is absent.
func (r *Reader[K, V]) GetOr(key K, fallback V) V {
	v, err := r.Get(key)
	if err != nil {
		return fallback
	}

	return v
}

// Keys iterates every key in the map, in Eytzinger (storage) order.
func (r *Reader[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := 0; i < r.Len(); i++ {
			if !yield(decodeNumber[K](r.slot(i)[:r.width])) {
				return
			}
		}
	}
}

// Values iterates every value in the map, in Eytzinger (storage) order.
func (r *Reader[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := 0; i < r.Len(); i++ {
			if !yield(decodeNumber[V](r.slot(i)[r.width:])) {
				return
			}
		}
	}
}

// Items iterates every (key, value) pair, in Eytzinger (storage) order.
func (r *Reader[K, V]) Items() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := 0; i < r.Len(); i++ {
			rec := r.slot(i)
			if !yield(decodeNumber[K](rec[:r.width]), decodeNumber[V](rec[r.width:])) {
				return
			}
		}
	}
}
