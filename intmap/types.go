// Package intmap implements the IntMap variant of the format: an
// immutable fixed-width-integer-key to fixed-width-integer-value map.
// Unlike bytemap, values are inlined directly alongside their key in a
// single Eytzinger-ordered slot array - there is no separate index
// section, no compression, and no per-value checksum, since every slot
// has the same, small, fixed size.
package intmap

import (
	"encoding/binary"
	"math"

	"github.com/seung-lab/mapbufr/format"
)

// Number is the set of Go types IntMap can store as a key or a value.
// Complex numbers are part of the wire format's type-descriptor space
// (format.ClassComplex) but aren't exposed through this generic API: a
// complex slot would need to double its declared width to hold both
// components, which format.Width's 1/2/4/8 range can't express without
// a second, width-specific meaning. Reader/writer support for complex
// slots is left for whenever a concrete need for it shows up.
type Number interface {
	uint8 | uint16 | uint32 | uint64 |
		int8 | int16 | int32 | int64 |
		float32 | float64
}

// classify reports the NumberClass and Width a Go numeric type maps to
// on the wire.
func classify[T Number]() (format.NumberClass, format.Width) {
	var zero T

	switch any(zero).(type) {
	case uint8:
		return format.ClassUnsigned, format.Width1
	case uint16:
		return format.ClassUnsigned, format.Width2
	case uint32:
		return format.ClassUnsigned, format.Width4
	case uint64:
		return format.ClassUnsigned, format.Width8
	case int8:
		return format.ClassSigned, format.Width1
	case int16:
		return format.ClassSigned, format.Width2
	case int32:
		return format.ClassSigned, format.Width4
	case int64:
		return format.ClassSigned, format.Width8
	case float32:
		return format.ClassFloating, format.Width4
	case float64:
		return format.ClassFloating, format.Width8
	default:
		panic("intmap: unreachable number type")
	}
}

// encodeNumber writes v into buf, which must be exactly Width(T) bytes.
func encodeNumber[T Number](v T, buf []byte) {
	switch x := any(v).(type) {
	case uint8:
		buf[0] = x
	case uint16:
		binary.LittleEndian.PutUint16(buf, x)
	case uint32:
		binary.LittleEndian.PutUint32(buf, x)
	case uint64:
		binary.LittleEndian.PutUint64(buf, x)
	case int8:
		buf[0] = byte(x)
	case int16:
		binary.LittleEndian.PutUint16(buf, uint16(x))
	case int32:
		binary.LittleEndian.PutUint32(buf, uint32(x))
	case int64:
		binary.LittleEndian.PutUint64(buf, uint64(x))
	case float32:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(x))
	case float64:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(x))
	}
}

// decodeNumber reads a T out of buf, which must be exactly Width(T) bytes.
func decodeNumber[T Number](buf []byte) T {
	var zero T

	switch any(zero).(type) {
	case uint8:
		return any(buf[0]).(T)
	case uint16:
		return any(binary.LittleEndian.Uint16(buf)).(T)
	case uint32:
		return any(binary.LittleEndian.Uint32(buf)).(T)
	case uint64:
		return any(binary.LittleEndian.Uint64(buf)).(T)
	case int8:
		return any(int8(buf[0])).(T)
	case int16:
		return any(int16(binary.LittleEndian.Uint16(buf))).(T)
	case int32:
		return any(int32(binary.LittleEndian.Uint32(buf))).(T)
	case int64:
		return any(int64(binary.LittleEndian.Uint64(buf))).(T)
	case float32:
		return any(math.Float32frombits(binary.LittleEndian.Uint32(buf))).(T)
	case float64:
		return any(math.Float64frombits(binary.LittleEndian.Uint64(buf))).(T)
	default:
		panic("intmap: unreachable number type")
	}
}
