package packedmap

// Set - Maps key to value. Duplicate keys are permitted, every call adds a new
// key/value pair and pairs under the same key chain up in the bucket index.
//   - key is the key to map, it must not be KeyAbsent
//   - value is the payload to store
//
// It returns:
//   - firstInsertion is true if the key was wholly absent before the call
func (M *IntMap[V]) Set(key int64, value V) (firstInsertion bool) {
	M.guardKey(key)
	M.invalidate()

	firstInsertion = !M.index.Has(key)

	slot := M.allocSlot()
	M.keys[slot] = key
	M.values[slot] = value
	M.index.Add(key, slot)

	return
}

// SetIfAbsent - Maps key to value only if the key is wholly absent.
//   - key is the key to map, it must not be KeyAbsent
//   - value is the payload to store
//
// It returns:
//   - inserted is true if the pair was added, false if the key already had at least one value
func (M *IntMap[V]) SetIfAbsent(key int64, value V) (inserted bool) {
	M.guardKey(key)

	if M.index.Has(key) {
		return false
	}

	M.invalidate()

	slot := M.allocSlot()
	M.keys[slot] = key
	M.values[slot] = value
	M.index.Add(key, slot)

	return true
}

// Get - Returns the first value mapped to key. With duplicate keys, which value comes
// first is undefined with respect to insertion order.
//
// It returns:
//   - value is the first value for key, or the zero value of V if the key is unmapped
//   - ok is false if the key is unmapped
func (M *IntMap[V]) Get(key int64) (value V, ok bool) {
	slot, ok := M.index.Get(key)
	if !ok {
		return
	}

	value = M.values[slot]

	return
}

// GetFront - Same as Get, but consults and updates the move-to-front cache. When the
// queried key matches the cached key the bucket index is not consulted at all, and on a
// cache miss the bucket index moves the found entry to the front of its chain.
func (M *IntMap[V]) GetFront(key int64) (value V, ok bool) {
	if key != KeyAbsent && key == M.lastKey {
		return M.values[M.lastSlot], true
	}

	slot, ok := M.index.GetFront(key)
	if !ok {
		return
	}

	M.lastKey = key
	M.lastSlot = slot
	value = M.values[slot]

	return
}

// GetAll - Returns all values mapped to key, in bucket chain order.
// It returns nil if the key is unmapped.
func (M *IntMap[V]) GetAll(key int64) (values []V) {
	slots := M.index.GetAll(key)
	if len(slots) == 0 {
		return
	}

	values = make([]V, len(slots))
	for i, slot := range slots {
		values[i] = M.values[slot]
	}

	return
}

// Remap - Overwrites the value at the first existing slot for key without touching the
// bucket index structure.
//
// It returns:
//   - ok is false if the key is unmapped, in which case nothing was written
func (M *IntMap[V]) Remap(key int64, value V) (ok bool) {
	slot, ok := M.index.Get(key)
	if !ok {
		return
	}

	M.invalidate()
	M.values[slot] = value

	return
}

// Delete - Removes the first occurrence of key, releasing its slot. Dropping occupancy
// to a quarter of capacity triggers a shrink.
//
// It returns:
//   - removed is false if the key was unmapped
func (M *IntMap[V]) Delete(key int64) (removed bool) {
	M.invalidate()

	slot, ok := M.index.Delete(key)
	if !ok {
		return
	}

	M.releaseSlot(slot)

	return true
}

// HasKey - Returns true if at least one value is mapped to key
func (M *IntMap[V]) HasKey(key int64) bool {
	return M.index.Has(key)
}

// Count - Returns the number of values mapped to key
func (M *IntMap[V]) Count(key int64) int {
	return M.index.Count(key)
}

// HasValue - Returns true if any occupied slot holds a value for which equal reports
// true. This is a linear scan over all slots.
//   - value is the value to search for
//   - equal reports whether two values of type V are to be considered the same
func (M *IntMap[V]) HasValue(value V, equal func(a, b V) bool) bool {
	for slot := range M.keys {
		if M.keys[slot] != KeyAbsent && equal(M.values[slot], value) {
			return true
		}
	}

	return false
}

// ContainsValue - Alias of HasValue
func (M *IntMap[V]) ContainsValue(value V, equal func(a, b V) bool) bool {
	return M.HasValue(value, equal)
}

// RemoveValue - Deletes all keys whose stored value matches according to equal. Matching
// keys are collected before any deletion since deleting is destructive to slot contents.
// This is a linear scan over all slots.
//
// It returns:
//   - removed is the number of key/value pairs deleted
func (M *IntMap[V]) RemoveValue(value V, equal func(a, b V) bool) (removed int) {
	var matched []int64
	for slot := range M.keys {
		if M.keys[slot] != KeyAbsent && equal(M.values[slot], value) {
			matched = append(matched, M.keys[slot])
		}
	}

	for _, key := range matched {
		if M.Delete(key) {
			removed++
		}
	}

	return
}

// Clear - Empties the map. With resetCapacity set, slot storage and bucket index are
// also shrunk back to their construction time sizes.
func (M *IntMap[V]) Clear(resetCapacity bool) {
	M.invalidate()
	M.index.Clear(resetCapacity)

	if resetCapacity {
		M.keys = make([]int64, M.minCapacity)
		M.next = make([]int64, M.minCapacity)
		M.values = make([]V, M.minCapacity)
	} else {
		var zero V
		for i := range M.values {
			M.values[i] = zero
		}
	}

	for i := range M.keys {
		M.keys[i] = KeyAbsent
	}
	M.threadFreeList(0)
}

// Rehash - Redistributes keys over a new number of buckets in the bucket index, rounded
// up to the nearest power of two. Slot storage capacity is untouched.
func (M *IntMap[V]) Rehash(slotCount int) {
	M.invalidate()
	M.index.Rehash(slotCount)
}

// ToArray - Returns all values in physical slot order
func (M *IntMap[V]) ToArray() (values []V) {
	values = make([]V, 0, M.index.Size())
	for slot := range M.keys {
		if M.keys[slot] != KeyAbsent {
			values = append(values, M.values[slot])
		}
	}

	return
}

// ToKeyArray - Returns all keys in physical slot order, duplicates included.
// The order bears no relation to insertion order.
func (M *IntMap[V]) ToKeyArray() (keys []int64) {
	keys = make([]int64, 0, M.index.Size())
	for slot := range M.keys {
		if M.keys[slot] != KeyAbsent {
			keys = append(keys, M.keys[slot])
		}
	}

	return
}

// ToValSet - Returns the distinct values of the map according to equal, in physical
// slot order
func (M *IntMap[V]) ToValSet(equal func(a, b V) bool) (values []V) {
	for slot := range M.keys {
		if M.keys[slot] == KeyAbsent {
			continue
		}
		seen := false
		for _, v := range values {
			if equal(v, M.values[slot]) {
				seen = true
				break
			}
		}
		if !seen {
			values = append(values, M.values[slot])
		}
	}

	return
}

// ToKeySet - Returns the distinct keys of the map as an IntSet
func (M *IntMap[V]) ToKeySet() (keys *IntSet) {
	keys = newIntSet(M.index.SlotCount(), len(M.keys))
	for slot := range M.keys {
		if M.keys[slot] != KeyAbsent {
			keys.Add(M.keys[slot])
		}
	}

	return
}

// guardKey - Panics if the reserved sentinel is used as a key
func (M *IntMap[V]) guardKey(key int64) {
	if key == KeyAbsent {
		panic("packedmap: KeyAbsent used as a key")
	}
}
