package packedmap

// Iterator - A restartable cursor over the occupied slots of an IntMap, visiting them in
// physical slot order. The order bears no relation to insertion order once slots have
// been recycled. The map must not be mutated while an iteration is live.
type Iterator[V any] struct {
	m      *IntMap[V]
	cursor int64
}

// Iterator - Returns an iterator positioned at the first occupied slot. With iterator
// reuse enabled (see SetIteratorReuse) one shared instance is reset and returned, so at
// most one iteration may be live at a time. Otherwise every call returns an independent
// iterator.
func (M *IntMap[V]) Iterator() (iterator *Iterator[V]) {
	if M.reuseIter {
		if M.sharedIter == nil {
			M.sharedIter = &Iterator[V]{m: M}
		}
		iterator = M.sharedIter
	} else {
		iterator = &Iterator[V]{m: M}
	}
	iterator.Reset()

	return
}

// Reset - Restarts the iteration from the first occupied slot
func (I *Iterator[V]) Reset() {
	I.cursor = 0
	I.skipFree()
}

// HasNext - Returns true if there are more values to be fetched from a call to Next
func (I *Iterator[V]) HasNext() bool {
	return I.cursor < int64(len(I.m.keys))
}

// Next - Returns the value at the cursor and advances the cursor past any immediately
// following free slots. Calling Next on an exhausted iterator is a precondition
// violation and panics.
func (I *Iterator[V]) Next() (value V) {
	if I.cursor >= int64(len(I.m.keys)) {
		panic("packedmap: Next called on exhausted iterator")
	}

	value = I.m.values[I.cursor]
	I.cursor++
	I.skipFree()

	return
}

// Remove - Removal through the iterator is not supported by the underlying structure,
// it always returns an error of type UnsupportedOperation
func (I *Iterator[V]) Remove() error {
	return UnsupportedOperation{msg: "iterator does not support removal"}
}

// skipFree - Advances the cursor past free slots until an occupied slot or the end of
// storage is reached
func (I *Iterator[V]) skipFree() {
	capacity := int64(len(I.m.keys))
	for I.cursor < capacity && I.m.keys[I.cursor] == KeyAbsent {
		I.cursor++
	}
}
