package packedmap

import (
	cloner "github.com/gostonefire/packedmap/interfaces"
)

// Clone - Returns a deep structural duplicate of the map. Slot layout, free list and
// bucket index are copied exactly, so lookups on the clone resolve to the same slot
// indices as on the original.
//   - assignByValue set to true copies every stored value by plain assignment
//   - copier, when assignByValue is false and copier is non nil, produces the duplicate of each stored value
//
// With assignByValue false and no copier, every stored value must implement the
// cloner.Cloner interface. A value lacking it is a precondition violation and panics.
func (M *IntMap[V]) Clone(assignByValue bool, copier func(value V) V) (clone *IntMap[V]) {
	clone = &IntMap[V]{
		index:       M.index.Clone(),
		keys:        make([]int64, len(M.keys)),
		next:        make([]int64, len(M.next)),
		values:      make([]V, len(M.values)),
		free:        M.free,
		minCapacity: M.minCapacity,
		lastKey:     KeyAbsent,
		lastSlot:    nilSlot,
		resizable:   M.resizable,
		reuseIter:   M.reuseIter,
	}
	copy(clone.keys, M.keys)
	copy(clone.next, M.next)

	if assignByValue {
		copy(clone.values, M.values)
		return
	}

	for slot := range M.keys {
		if M.keys[slot] == KeyAbsent {
			continue
		}
		if copier != nil {
			clone.values[slot] = copier(M.values[slot])
			continue
		}
		c, ok := any(M.values[slot]).(cloner.Cloner)
		if !ok {
			panic("packedmap: stored value implements no cloner.Cloner and no copier was supplied")
		}
		clone.values[slot] = c.Clone().(V)
	}

	return
}
