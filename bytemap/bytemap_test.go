package bytemap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seung-lab/mapbufr/errs"
	"github.com/seung-lab/mapbufr/format"
	"github.com/seung-lab/mapbufr/section"
	"github.com/seung-lab/mapbufr/source"
)

func TestBuildOpen_Empty(t *testing.T) {
	require := require.New(t)

	buf, err := Build(nil, nil)
	require.NoError(err)

	r, err := Open(source.NewBytes(buf))
	require.NoError(err)
	require.Equal(0, r.Len())
	require.False(r.Contains(1))

	_, err = r.Get(1)
	require.Error(err)
	require.NoError(r.Validate())
}

func TestBuildOpen_TwoEntries_CRCDetectsCorruption(t *testing.T) {
	require := require.New(t)

	keys := []uint64{7, 3}
	values := [][]byte{[]byte("seven"), []byte("three")}

	buf, err := Build(keys, values)
	require.NoError(err)

	r, err := Open(source.NewBytes(buf))
	require.NoError(err)
	require.Equal(2, r.Len())

	v, err := r.Get(7)
	require.NoError(err)
	require.Equal("seven", string(v))

	v, err = r.Get(3)
	require.NoError(err)
	require.Equal("three", string(v))

	require.NoError(r.Validate())

	// Flip a data byte and confirm the checksum trailer catches it.
	corrupted := append([]byte(nil), buf...)
	corrupted[len(corrupted)-1] ^= 0xFF

	r2, err := Open(source.NewBytes(corrupted))
	require.NoError(err)
	require.Error(r2.Validate())
}

func TestBuildOpen_DuplicateKeyRejected(t *testing.T) {
	_, err := Build([]uint64{1, 1}, [][]byte{[]byte("a"), []byte("b")})
	require.Error(t, err)
}

func TestBuildOpen_MismatchedLengths(t *testing.T) {
	_, err := Build([]uint64{1, 2}, [][]byte{[]byte("a")})
	require.Error(t, err)
}

// TestOpen_FormatVersion0_NoTrailer hand-crafts a single-entry, version-0
// buffer - no CRC trailer on the value, as version 0 never carries one -
// and confirms Get returns the value untouched and Validate accepts it.
// A reader that unconditionally strips the last 4 bytes as a checksum
// trailer would corrupt the returned value and reject this buffer.
func TestOpen_FormatVersion0_NoTrailer(t *testing.T) {
	require := require.New(t)

	value := []byte("hello")
	header := section.NewHeader(format.CompressionNone, 1)
	header.Version = section.FormatVersion0

	buf := make([]byte, section.DataOffset(1)+len(value))
	copy(buf, header.Bytes())
	entry := section.IndexEntry{Key: 42, Offset: uint64(section.DataOffset(1))}
	entry.WriteToSlice(buf, section.IndexOffset)
	copy(buf[section.DataOffset(1):], value)

	r, err := Open(source.NewBytes(buf))
	require.NoError(err)
	require.Equal(1, r.Len())
	require.NoError(r.Validate())

	got, err := r.Get(42)
	require.NoError(err)
	require.Equal(value, got)
}

// TestBuild_DoesNotCorruptCallerBuffer confirms compressing with
// CompressionNone never writes a checksum trailer into the caller's own
// backing array, even when the caller's value is a sub-slice with spare
// capacity past its logical length.
func TestBuild_DoesNotCorruptCallerBuffer(t *testing.T) {
	require := require.New(t)

	owned := make([]byte, 5, 64)
	copy(owned, []byte("hello"))
	sentinel := owned[:cap(owned)]
	for i := len(owned); i < len(sentinel); i++ {
		sentinel[i] = 0xAA
	}
	value := owned[:5]

	_, err := Build([]uint64{1}, [][]byte{value})
	require.NoError(err)

	for i := 5; i < len(sentinel); i++ {
		require.Equal(byte(0xAA), sentinel[i], "byte %d of caller's backing array was overwritten", i)
	}
}

func TestBuildOpen_LargeRandomRoundTrip(t *testing.T) {
	require := require.New(t)

	rng := rand.New(rand.NewSource(42))
	const n = 10000

	seen := make(map[uint64]struct{}, n)
	keys := make([]uint64, 0, n)
	values := make([][]byte, 0, n)
	for len(keys) < n {
		k := rng.Uint64()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)

		v := make([]byte, rng.Intn(64))
		rng.Read(v)
		values = append(values, v)
	}

	for _, compression := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionGzip,
		format.CompressionBrotli,
		format.CompressionZstd,
		format.CompressionLZMA,
	} {
		buf, err := Build(keys, values, WithCompression(compression))
		require.NoError(err, compression)

		r, err := Open(source.NewBytes(buf))
		require.NoError(err, compression)
		require.Equal(n, r.Len(), compression)
		require.NoError(r.Validate(), compression)

		for i, k := range keys {
			got, err := r.Get(k)
			require.NoError(err, compression)
			require.Equal(values[i], got, compression)
		}

		probes := 0
		for probes < 2000 {
			k := rng.Uint64()
			if _, member := seen[k]; member {
				continue
			}
			probes++

			require.False(r.Contains(k), compression)
			_, err := r.Get(k)
			require.ErrorIs(err, errs.ErrKeyNotFound, compression)
		}
	}
}

func TestReader_KeysValuesItemsToDict(t *testing.T) {
	require := require.New(t)

	keys := []uint64{5, 1, 3}
	values := [][]byte{[]byte("five"), []byte("one"), []byte("three")}

	buf, err := Build(keys, values)
	require.NoError(err)

	r, err := Open(source.NewBytes(buf))
	require.NoError(err)

	var gotKeys []uint64
	for k := range r.Keys() {
		gotKeys = append(gotKeys, k)
	}
	require.Len(gotKeys, 3)

	var gotValues [][]byte
	for v := range r.Values() {
		gotValues = append(gotValues, v)
	}
	require.ElementsMatch([][]byte{[]byte("five"), []byte("one"), []byte("three")}, gotValues)

	dict, err := r.ToDict()
	require.NoError(err)
	require.Equal(map[uint64][]byte{5: []byte("five"), 1: []byte("one"), 3: []byte("three")}, dict)

	items := make(map[uint64][]byte)
	for k, v := range r.Items() {
		items[k] = v
	}
	require.Equal(dict, items)
}

func TestReader_GetOr(t *testing.T) {
	require := require.New(t)

	buf, err := Build([]uint64{1}, [][]byte{[]byte("x")})
	require.NoError(err)

	r, err := Open(source.NewBytes(buf))
	require.NoError(err)

	require.Equal("x", string(r.GetOr(1, []byte("fallback"))))
	require.Equal("fallback", string(r.GetOr(2, []byte("fallback"))))
}

func TestReader_Set_SameLengthSucceeds(t *testing.T) {
	require := require.New(t)

	buf, err := Build([]uint64{1, 2}, [][]byte{[]byte("abc"), []byte("xyz")})
	require.NoError(err)

	bs := source.NewBytes(buf)
	r, err := Open(bs)
	require.NoError(err)

	require.NoError(r.Set(1, []byte("ABC")))

	v, err := r.Get(1)
	require.NoError(err)
	require.Equal("ABC", string(v))
}

func TestReader_Set_LengthMismatchRejected(t *testing.T) {
	require := require.New(t)

	buf, err := Build([]uint64{1}, [][]byte{[]byte("abc")})
	require.NoError(err)

	r, err := Open(source.NewBytes(buf))
	require.NoError(err)

	require.Error(r.Set(1, []byte("ab")))
	require.Error(r.Set(1, []byte("abcd")))
}

func TestReader_Set_RequiresWritableSource(t *testing.T) {
	require := require.New(t)

	buf, err := Build([]uint64{1}, [][]byte{[]byte("abc")})
	require.NoError(err)

	r, err := Open(readOnlySource{buf})
	require.NoError(err)

	require.Error(r.Set(1, []byte("xyz")))
}

type readOnlySource struct{ buf []byte }

func (s readOnlySource) Len() int { return len(s.buf) }
func (s readOnlySource) ReadSlice(start, end int) ([]byte, error) {
	return s.buf[start:end], nil
}

func TestReader_SliceAddressableSource(t *testing.T) {
	require := require.New(t)

	keys := make([]uint64, 20)
	values := make([][]byte, 20)
	for i := range keys {
		keys[i] = uint64(i)
		values[i] = []byte{byte(i + 1)}
	}

	buf, err := Build(keys, values)
	require.NoError(err)

	ranger := source.NewRanger(sliceOf(buf), len(buf))
	r, err := Open(ranger)
	require.NoError(err)

	for i := range keys {
		v, err := r.Get(uint64(i))
		require.NoError(err)
		require.Equal(byte(i+1), v[0])
	}
}

type sliceOf []byte

func (s sliceOf) Slice(start, end int) ([]byte, error) { return s[start:end], nil }
