package intmap

import (
	"fmt"
	"sort"

	"github.com/seung-lab/mapbufr/errs"
	"github.com/seung-lab/mapbufr/eytzinger"
	"github.com/seung-lab/mapbufr/section"
)

// Build serializes keys and their corresponding values into an IntMap
// buffer. keys[i] maps to values[i]; duplicate keys are rejected. K and
// V may differ (e.g. uint32 keys to float32 values) but must share the
// same wire width.
func Build[K, V Number](keys []K, values []V) ([]byte, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("intmap: %d keys but %d values", len(keys), len(values))
	}

	keyClass, keyWidth := classify[K]()
	valClass, valWidth := classify[V]()
	if keyWidth != valWidth {
		return nil, fmt.Errorf("intmap: key width %d does not match value width %d", keyWidth, valWidth)
	}

	n := len(keys)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return keys[order[i]] < keys[order[j]] })

	sortedKeys := make([]K, n)
	sortedValues := make([]V, n)
	for i, idx := range order {
		sortedKeys[i] = keys[idx]
		sortedValues[i] = values[idx]
	}
	for i := 1; i < n; i++ {
		if sortedKeys[i] == sortedKeys[i-1] {
			return nil, fmt.Errorf("%w: %v", errs.ErrDuplicateKey, sortedKeys[i])
		}
	}

	perm := eytzinger.Permutation(n)

	slotSize := section.IntSlotSize(keyWidth)
	dataOffset0 := section.IntIndexOffset
	out := make([]byte, dataOffset0+n*slotSize)

	header := section.NewIntHeader(keyClass, valClass, keyWidth, uint32(n))
	copy(out[0:section.IntHeaderSize], header.Bytes())

	width := int(keyWidth)
	for slot := 0; slot < n; slot++ {
		srcIdx := perm[slot]
		rec := out[dataOffset0+slot*slotSize : dataOffset0+(slot+1)*slotSize]
		encodeNumber(sortedKeys[srcIdx], rec[:width])
		encodeNumber(sortedValues[srcIdx], rec[width:])
	}

	return out, nil
}
