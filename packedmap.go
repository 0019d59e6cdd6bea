package packedmap

import (
	"fmt"
	"github.com/gostonefire/packedmap/internal/conf"
	"github.com/gostonefire/packedmap/internal/intint"
	"github.com/gostonefire/packedmap/internal/utils"
)

// KeyAbsent - Reserved key value used internally to mark free slots.
// Using it as a key in any map operation is a precondition violation and panics.
const KeyAbsent int64 = conf.KeyAbsent

// nilSlot - Terminates the slot free list and indicates a missing slot
const nilSlot = conf.NilSlot

// BucketIndex - Interface for the key to slot index backing an IntMap. The internal
// implementation is an int64 to int64 chained hash multimap, but any implementation
// honoring the contract can be plugged in through NewWithIndex.
type BucketIndex interface {
	Add(key, slot int64)
	AddIfAbsent(key, slot int64) bool
	Get(key int64) (slot int64, ok bool)
	GetFront(key int64) (slot int64, ok bool)
	GetAll(key int64) []int64
	Delete(key int64) (slot int64, ok bool)
	Has(key int64) bool
	Count(key int64) int
	Remap(key, newSlot int64) bool
	Rehash(slotCount int)
	Clear(resetCapacity bool)
	Visit(visit func(key, slot int64))
	RemapSlots(remap func(key, slot int64) int64)
	Clone() *intint.Map
	Size() int
	SlotCount() int
	LoadFactor() float64
	CollisionCount() int64
}

// MapStat - Statistics on the overall usage of an IntMap
//   - Records is the number of key/value pairs stored
//   - Capacity is the current slot storage capacity
//   - SlotCount is the number of buckets in the bucket index
//   - LoadFactor is the number of records per bucket in the bucket index
//   - Collisions is the cumulative number of inserts that hit a non empty bucket
type MapStat struct {
	Records    int
	Capacity   int
	SlotCount  int
	LoadFactor float64
	Collisions int64
}

// IntMap - A hash map from int64 keys to values of type V. Key/value pairs live in
// parallel slot arrays, with free slots threaded onto an intrusive free list, while a
// bucket index maps each key to its slot. Duplicate keys are permitted and chain up in
// the bucket index.
//
// Capacity is always a power of two. Storage doubles when full and halves when occupancy
// drops to a quarter of capacity, never below the capacity given at construction.
type IntMap[V any] struct {
	index       BucketIndex
	keys        []int64
	next        []int64
	values      []V
	free        int64
	minCapacity int
	lastKey     int64
	lastSlot    int64
	resizable   bool
	reuseIter   bool
	sharedIter  *Iterator[V]
}

// New - Returns a new IntMap prepared to distribute keys over slotCount buckets with
// room for capacity key/value pairs before the first growth. Both sizes are rounded up
// to the nearest power of two, and the rounded capacity becomes the floor below which
// the map never shrinks.
//   - slotCount is the number of buckets in the bucket index
//   - capacity is the initial slot storage capacity
//
// It returns:
//   - intMap is a pointer to an IntMap struct
//   - err is a normal Go error which should be nil if everything went ok
func New[V any](slotCount, capacity int) (intMap *IntMap[V], err error) {
	// Check if slotCount is valid
	if slotCount <= 0 {
		err = fmt.Errorf("slotCount must be a positive value higher than 0 (zero)")
		return
	}

	// Check if capacity is valid
	if capacity <= 0 {
		err = fmt.Errorf("capacity must be a positive value higher than 0 (zero)")
		return
	}

	slotCount = utils.RoundUp2(slotCount)
	capacity = utils.RoundUp2(capacity)

	intMap = newIntMap[V](intint.New(slotCount, capacity), capacity)

	return
}

// NewWithIndex - Returns a new IntMap backed by a caller supplied BucketIndex
// implementation. The index must be empty. Capacity is rounded up to the nearest
// power of two.
func NewWithIndex[V any](index BucketIndex, capacity int) (intMap *IntMap[V], err error) {
	if index == nil {
		err = fmt.Errorf("index can not be nil")
		return
	}
	if index.Size() != 0 {
		err = fmt.Errorf("index must be empty")
		return
	}
	if capacity <= 0 {
		err = fmt.Errorf("capacity must be a positive value higher than 0 (zero)")
		return
	}

	intMap = newIntMap[V](index, utils.RoundUp2(capacity))

	return
}

// newIntMap - Assembles an IntMap around an empty bucket index and a power of two capacity
func newIntMap[V any](index BucketIndex, capacity int) *IntMap[V] {
	m := &IntMap[V]{
		index:       index,
		keys:        make([]int64, capacity),
		next:        make([]int64, capacity),
		values:      make([]V, capacity),
		minCapacity: capacity,
		lastKey:     KeyAbsent,
		lastSlot:    nilSlot,
		resizable:   true,
	}
	for i := range m.keys {
		m.keys[i] = KeyAbsent
	}
	m.threadFreeList(0)

	return m
}

// SetResizable - Turns automatic growing and shrinking on or off. With resizing off, an
// insert into a full map is a precondition violation and panics. Maps are resizable by
// default.
func (M *IntMap[V]) SetResizable(resizable bool) {
	M.resizable = resizable
}

// SetIteratorReuse - Turns iterator reuse on or off. With reuse on, Iterator resets and
// returns one shared cursor instance rather than allocating a new one per call, hence at
// most one iteration may be live at a time. Off by default.
func (M *IntMap[V]) SetIteratorReuse(reuse bool) {
	M.reuseIter = reuse
	if !reuse {
		M.sharedIter = nil
	}
}

// Stat - Returns statistics on the current usage of the map
func (M *IntMap[V]) Stat() MapStat {
	return MapStat{
		Records:    M.index.Size(),
		Capacity:   len(M.keys),
		SlotCount:  M.index.SlotCount(),
		LoadFactor: M.index.LoadFactor(),
		Collisions: M.index.CollisionCount(),
	}
}

// Size - Returns the number of key/value pairs in the map
func (M *IntMap[V]) Size() int {
	return M.index.Size()
}

// Capacity - Returns the current slot storage capacity
func (M *IntMap[V]) Capacity() int {
	return len(M.keys)
}

// IsEmpty - Returns true if the map holds no key/value pairs
func (M *IntMap[V]) IsEmpty() bool {
	return M.index.Size() == 0
}

// invalidate - Drops the move-to-front cache. Called on entry to every mutating
// operation, before any slot index can change meaning.
func (M *IntMap[V]) invalidate() {
	M.lastKey = KeyAbsent
	M.lastSlot = nilSlot
}

// threadFreeList - Rebuilds the slot free list linking all slots from the given index
// to the end of storage
func (M *IntMap[V]) threadFreeList(from int64) {
	last := int64(len(M.next)) - 1
	for i := from; i < last; i++ {
		M.next[i] = i + 1
	}
	if last >= from {
		M.next[last] = nilSlot
		M.free = from
	} else {
		M.free = nilSlot
	}
}

// allocSlot - Pops the free list head, growing storage first if the map is full
func (M *IntMap[V]) allocSlot() (slot int64) {
	if M.free == nilSlot {
		M.grow()
	}

	slot = M.free
	M.free = M.next[slot]

	return
}

// releaseSlot - Marks the slot free, pushes it on the free list head and triggers a
// shrink when occupancy has dropped to a quarter of capacity
func (M *IntMap[V]) releaseSlot(slot int64) {
	var zero V
	M.keys[slot] = KeyAbsent
	M.values[slot] = zero
	M.next[slot] = M.free
	M.free = slot

	if M.resizable && M.index.Size() == len(M.keys)/4 && len(M.keys) > M.minCapacity {
		M.shrink()
	}
}

// grow - Doubles slot storage. Existing entries keep their slot index, the newly added
// upper half is threaded onto the free list.
func (M *IntMap[V]) grow() {
	if !M.resizable {
		panic("packedmap: insert into a full non-resizable map")
	}

	oldCap := len(M.keys)
	newCap := oldCap << 1

	keys := make([]int64, newCap)
	next := make([]int64, newCap)
	values := make([]V, newCap)
	copy(keys, M.keys)
	copy(next, M.next)
	copy(values, M.values)
	for i := oldCap; i < newCap; i++ {
		keys[i] = KeyAbsent
	}
	M.keys, M.next, M.values = keys, next, values

	// grow only happens with an empty free list, so the new upper half becomes the
	// entire free list
	M.threadFreeList(int64(oldCap))
}

// shrink - Halves slot storage. Occupied slots may be scattered anywhere in the larger
// array, so surviving entries are repacked contiguously into the new arrays while the
// bucket index is remapped to the new slot indices.
func (M *IntMap[V]) shrink() {
	newCap := len(M.keys) >> 1

	keys := make([]int64, newCap)
	next := make([]int64, newCap)
	values := make([]V, newCap)
	for i := range keys {
		keys[i] = KeyAbsent
	}

	cursor := int64(0)
	M.index.RemapSlots(func(key, slot int64) int64 {
		s := cursor
		cursor++
		keys[s] = key
		values[s] = M.values[slot]
		return s
	})

	M.keys, M.next, M.values = keys, next, values
	M.threadFreeList(cursor)
}
