package intint

import (
	"github.com/gostonefire/packedmap/internal/conf"
	"github.com/gostonefire/packedmap/internal/utils"
)

// Map - An int64 to int64 hash multimap used as bucket index by the higher level structures.
// Keys are distributed over a power of two number of buckets, each bucket holding a singly
// linked chain of entries threaded through an intrusive entry arena. Several entries may
// carry the same key, in which case they form a chain within the bucket in most recently
// added first order.
type Map struct {
	buckets      []int64
	mask         int64
	minSlotCount int
	keys         []int64
	slots        []int64
	next         []int64
	free         int64
	minEntries   int
	size         int
	collisions   int64
}

// New - Returns a new Map with the given number of buckets and initial entry capacity,
// both rounded up to the nearest power of two.
func New(slotCount, entryCapacity int) (m *Map) {
	slotCount = utils.RoundUp2(slotCount)
	entryCapacity = utils.RoundUp2(entryCapacity)

	m = &Map{
		buckets:      make([]int64, slotCount),
		mask:         int64(slotCount - 1),
		minSlotCount: slotCount,
		keys:         make([]int64, entryCapacity),
		slots:        make([]int64, entryCapacity),
		next:         make([]int64, entryCapacity),
		minEntries:   entryCapacity,
	}

	for i := range m.buckets {
		m.buckets[i] = conf.NilSlot
	}
	m.threadFreeList(0)

	return
}

// bucketFor - Maps a key to its bucket using a Fibonacci style bit mix and the bucket mask
func (M *Map) bucketFor(key int64) int64 {
	h := uint64(key) * 0x9E3779B97F4A7C15
	h ^= h >> 32
	return int64(h & uint64(M.mask))
}

// threadFreeList - Rebuilds the entry free list starting at the given entry index,
// linking all entries from there to the end of the arena
func (M *Map) threadFreeList(from int64) {
	last := int64(len(M.next)) - 1
	for i := from; i < last; i++ {
		M.next[i] = i + 1
	}
	if last >= from {
		M.next[last] = conf.NilSlot
		M.free = from
	} else {
		M.free = conf.NilSlot
	}
}

// allocEntry - Pops an entry from the free list, doubling the arena first if it is exhausted
func (M *Map) allocEntry() (entry int64) {
	if M.free == conf.NilSlot {
		oldCap := len(M.keys)
		newCap := oldCap << 1

		keys := make([]int64, newCap)
		slots := make([]int64, newCap)
		next := make([]int64, newCap)
		copy(keys, M.keys)
		copy(slots, M.slots)
		copy(next, M.next)
		M.keys, M.slots, M.next = keys, slots, next

		M.threadFreeList(int64(oldCap))
	}

	entry = M.free
	M.free = M.next[entry]

	return
}

// freeEntry - Pushes an entry back on the free list head
func (M *Map) freeEntry(entry int64) {
	M.next[entry] = M.free
	M.free = entry
}

// Add - Adds a key to slot mapping. Duplicate keys are permitted and are chained within
// the bucket with the most recently added entry first.
func (M *Map) Add(key, slot int64) {
	b := M.bucketFor(key)
	if M.buckets[b] != conf.NilSlot {
		M.collisions++
	}

	e := M.allocEntry()
	M.keys[e] = key
	M.slots[e] = slot
	M.next[e] = M.buckets[b]
	M.buckets[b] = e
	M.size++
}

// AddIfAbsent - Adds a key to slot mapping only if the key is wholly absent.
// It returns true if the mapping was added.
func (M *Map) AddIfAbsent(key, slot int64) bool {
	if M.Has(key) {
		return false
	}
	M.Add(key, slot)

	return true
}

// Get - Returns the slot of the first entry for key in its bucket chain,
// and false if the key is unmapped
func (M *Map) Get(key int64) (slot int64, ok bool) {
	for e := M.buckets[M.bucketFor(key)]; e != conf.NilSlot; e = M.next[e] {
		if M.keys[e] == key {
			return M.slots[e], true
		}
	}

	return conf.NilSlot, false
}

// GetFront - Same lookup as Get, but on a hit the found entry is moved to the front of its
// bucket chain so that repeated lookups of the same key terminate on the first probe.
func (M *Map) GetFront(key int64) (slot int64, ok bool) {
	b := M.bucketFor(key)
	prev := conf.NilSlot
	for e := M.buckets[b]; e != conf.NilSlot; e = M.next[e] {
		if M.keys[e] == key {
			if prev != conf.NilSlot {
				M.next[prev] = M.next[e]
				M.next[e] = M.buckets[b]
				M.buckets[b] = e
			}
			return M.slots[e], true
		}
		prev = e
	}

	return conf.NilSlot, false
}

// GetAll - Returns the slots of all entries for key, in bucket chain order.
// It returns nil if the key is unmapped.
func (M *Map) GetAll(key int64) (slots []int64) {
	for e := M.buckets[M.bucketFor(key)]; e != conf.NilSlot; e = M.next[e] {
		if M.keys[e] == key {
			slots = append(slots, M.slots[e])
		}
	}

	return
}

// Has - Returns true if at least one entry exists for key
func (M *Map) Has(key int64) bool {
	_, ok := M.Get(key)
	return ok
}

// Count - Returns the number of entries for key
func (M *Map) Count(key int64) (count int) {
	for e := M.buckets[M.bucketFor(key)]; e != conf.NilSlot; e = M.next[e] {
		if M.keys[e] == key {
			count++
		}
	}

	return
}

// Delete - Removes the first entry for key in its bucket chain and returns the slot it
// was mapped to, or false if the key is unmapped
func (M *Map) Delete(key int64) (slot int64, ok bool) {
	b := M.bucketFor(key)
	prev := conf.NilSlot
	for e := M.buckets[b]; e != conf.NilSlot; e = M.next[e] {
		if M.keys[e] == key {
			if prev == conf.NilSlot {
				M.buckets[b] = M.next[e]
			} else {
				M.next[prev] = M.next[e]
			}
			slot = M.slots[e]
			M.freeEntry(e)
			M.size--
			return slot, true
		}
		prev = e
	}

	return conf.NilSlot, false
}

// Remap - Rewrites the slot of the first entry for key without touching the chain
// structure. It returns false if the key is unmapped.
func (M *Map) Remap(key, newSlot int64) bool {
	for e := M.buckets[M.bucketFor(key)]; e != conf.NilSlot; e = M.next[e] {
		if M.keys[e] == key {
			M.slots[e] = newSlot
			return true
		}
	}

	return false
}

// Visit - Calls visit once per entry with its key and slot. Bucket order, and chain order
// within buckets, is an implementation detail callers must not rely on. The map must not
// be mutated during the walk.
func (M *Map) Visit(visit func(key, slot int64)) {
	for _, head := range M.buckets {
		for e := head; e != conf.NilSlot; e = M.next[e] {
			visit(M.keys[e], M.slots[e])
		}
	}
}

// RemapSlots - Walks all entries like Visit, but the return value of remap replaces each
// entry's slot in place. Used when slot storage is repacked and every surviving entry has
// to be pointed at its new slot.
func (M *Map) RemapSlots(remap func(key, slot int64) int64) {
	for _, head := range M.buckets {
		for e := head; e != conf.NilSlot; e = M.next[e] {
			M.slots[e] = remap(M.keys[e], M.slots[e])
		}
	}
}

// Rehash - Redistributes all entries over a new number of buckets, rounded up to the
// nearest power of two. Entry slots are untouched, only the bucket chains are rebuilt.
func (M *Map) Rehash(slotCount int) {
	slotCount = utils.RoundUp2(slotCount)

	oldBuckets := M.buckets
	M.buckets = make([]int64, slotCount)
	M.mask = int64(slotCount - 1)
	for i := range M.buckets {
		M.buckets[i] = conf.NilSlot
	}

	for _, head := range oldBuckets {
		e := head
		for e != conf.NilSlot {
			n := M.next[e]
			b := M.bucketFor(M.keys[e])
			M.next[e] = M.buckets[b]
			M.buckets[b] = e
			e = n
		}
	}
}

// Clear - Removes all entries. With resetCapacity set, bucket count and entry arena are
// also shrunk back to their construction time sizes.
func (M *Map) Clear(resetCapacity bool) {
	if resetCapacity {
		M.buckets = make([]int64, M.minSlotCount)
		M.mask = int64(M.minSlotCount - 1)
		M.keys = make([]int64, M.minEntries)
		M.slots = make([]int64, M.minEntries)
		M.next = make([]int64, M.minEntries)
	}

	for i := range M.buckets {
		M.buckets[i] = conf.NilSlot
	}
	M.threadFreeList(0)
	M.size = 0
	M.collisions = 0
}

// Clone - Returns a deep structural copy of the map, preserving bucket chains and the
// entry arena layout exactly
func (M *Map) Clone() (clone *Map) {
	clone = &Map{
		buckets:      make([]int64, len(M.buckets)),
		mask:         M.mask,
		minSlotCount: M.minSlotCount,
		keys:         make([]int64, len(M.keys)),
		slots:        make([]int64, len(M.slots)),
		next:         make([]int64, len(M.next)),
		free:         M.free,
		minEntries:   M.minEntries,
		size:         M.size,
		collisions:   M.collisions,
	}
	copy(clone.buckets, M.buckets)
	copy(clone.keys, M.keys)
	copy(clone.slots, M.slots)
	copy(clone.next, M.next)

	return
}

// Size - Returns the number of entries in the map
func (M *Map) Size() int {
	return M.size
}

// SlotCount - Returns the number of buckets keys are distributed over
func (M *Map) SlotCount() int {
	return len(M.buckets)
}

// LoadFactor - Returns the number of entries per bucket
func (M *Map) LoadFactor() float64 {
	return float64(M.size) / float64(len(M.buckets))
}

// CollisionCount - Returns the cumulative number of inserts that hit a non empty bucket
func (M *Map) CollisionCount() int64 {
	return M.collisions
}
