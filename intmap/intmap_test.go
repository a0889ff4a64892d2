package intmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seung-lab/mapbufr/source"
)

func TestBuildOpen_SequentialUint32ToUint32(t *testing.T) {
	require := require.New(t)

	n := 20
	keys := make([]uint32, n)
	values := make([]uint32, n)
	for i := 0; i < n; i++ {
		keys[i] = uint32(i)
		values[i] = uint32(i + 1)
	}

	buf, err := Build(keys, values)
	require.NoError(err)

	r, err := Open[uint32, uint32](source.NewBytes(buf))
	require.NoError(err)
	require.Equal(n, r.Len())

	for i := 0; i < n; i++ {
		v, err := r.Get(uint32(i))
		require.NoError(err)
		require.Equal(uint32(i+1), v)
	}

	_, err = r.Get(uint32(n + 100))
	require.Error(err)
}

func TestBuildOpen_SignedKeysNegativeAndPositive(t *testing.T) {
	require := require.New(t)

	keys := []int32{-100, -1, 0, 1, 100, 42}
	values := []int32{1, 2, 3, 4, 5, 6}

	buf, err := Build(keys, values)
	require.NoError(err)

	r, err := Open[int32, int32](source.NewBytes(buf))
	require.NoError(err)

	for i, k := range keys {
		v, err := r.Get(k)
		require.NoError(err)
		require.Equal(values[i], v)
	}
	require.False(r.Contains(-999))
}

func TestBuildOpen_FloatKeys(t *testing.T) {
	require := require.New(t)

	keys := []float64{-3.5, -0.1, 0.0, 0.1, 3.5}
	values := []float64{1, 2, 3, 4, 5}

	buf, err := Build(keys, values)
	require.NoError(err)

	r, err := Open[float64, float64](source.NewBytes(buf))
	require.NoError(err)

	for i, k := range keys {
		v, err := r.Get(k)
		require.NoError(err)
		require.Equal(values[i], v)
	}
}

func TestBuild_WidthMismatchRejected(t *testing.T) {
	_, err := Build([]uint16{1, 2}, []uint64{1, 2})
	require.Error(t, err)
}

func TestBuild_DuplicateKeyRejected(t *testing.T) {
	_, err := Build([]uint32{1, 1}, []uint32{1, 2})
	require.Error(t, err)
}

func TestOpen_TypeMismatchRejected(t *testing.T) {
	buf, err := Build([]uint32{1, 2}, []uint32{1, 2})
	require.NoError(t, err)

	_, err = Open[int32, int32](source.NewBytes(buf))
	require.Error(t, err)
}

func TestReader_KeysValuesItems(t *testing.T) {
	require := require.New(t)

	keys := []uint8{3, 1, 2}
	values := []uint8{30, 10, 20}

	buf, err := Build(keys, values)
	require.NoError(err)

	r, err := Open[uint8, uint8](source.NewBytes(buf))
	require.NoError(err)

	gotItems := map[uint8]uint8{}
	for k, v := range r.Items() {
		gotItems[k] = v
	}
	require.Equal(map[uint8]uint8{3: 30, 1: 10, 2: 20}, gotItems)

	var count int
	for range r.Keys() {
		count++
	}
	require.Equal(3, count)

	count = 0
	for range r.Values() {
		count++
	}
	require.Equal(3, count)
}

func TestReader_GetOr(t *testing.T) {
	require := require.New(t)

	buf, err := Build([]uint32{5}, []uint32{50})
	require.NoError(err)

	r, err := Open[uint32, uint32](source.NewBytes(buf))
	require.NoError(err)

	require.Equal(uint32(50), r.GetOr(5, 0))
	require.Equal(uint32(99), r.GetOr(6, 99))
}
