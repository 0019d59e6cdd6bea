package packedmap

import (
	"fmt"
	"github.com/gostonefire/packedmap/internal/intint"
	"github.com/gostonefire/packedmap/internal/utils"
)

// IntSet - A set of int64 values layered over the same bucket index machinery as IntMap.
// Unlike IntMap keys, members can take any int64 value including KeyAbsent.
type IntSet struct {
	index *intint.Map
}

// NewIntSet - Returns a new IntSet prepared to distribute members over slotCount
// buckets, rounded up to the nearest power of two.
//
// It returns:
//   - intSet is a pointer to an IntSet struct
//   - err is a normal Go error which should be nil if everything went ok
func NewIntSet(slotCount int) (intSet *IntSet, err error) {
	if slotCount <= 0 {
		err = fmt.Errorf("slotCount must be a positive value higher than 0 (zero)")
		return
	}

	slotCount = utils.RoundUp2(slotCount)
	intSet = newIntSet(slotCount, slotCount)

	return
}

// newIntSet - Assembles an IntSet with given bucket count and initial member capacity,
// both assumed to already be powers of two
func newIntSet(slotCount, capacity int) *IntSet {
	return &IntSet{index: intint.New(slotCount, capacity)}
}

// Add - Adds member to the set.
// It returns true if the member was absent before the call.
func (S *IntSet) Add(member int64) bool {
	return S.index.AddIfAbsent(member, 0)
}

// Remove - Removes member from the set.
// It returns false if the member was absent.
func (S *IntSet) Remove(member int64) bool {
	_, ok := S.index.Delete(member)
	return ok
}

// Has - Returns true if member is in the set
func (S *IntSet) Has(member int64) bool {
	return S.index.Has(member)
}

// Size - Returns the number of members in the set
func (S *IntSet) Size() int {
	return S.index.Size()
}

// IsEmpty - Returns true if the set has no members
func (S *IntSet) IsEmpty() bool {
	return S.index.Size() == 0
}

// Clear - Empties the set. With resetCapacity set, internal storage is also shrunk back
// to its construction time size.
func (S *IntSet) Clear(resetCapacity bool) {
	S.index.Clear(resetCapacity)
}

// Visit - Calls visit once per member, in no particular order. The set must not be
// mutated during the walk.
func (S *IntSet) Visit(visit func(member int64)) {
	S.index.Visit(func(key, _ int64) {
		visit(key)
	})
}

// ToArray - Returns all members, in no particular order
func (S *IntSet) ToArray() (members []int64) {
	members = make([]int64, 0, S.index.Size())
	S.index.Visit(func(key, _ int64) {
		members = append(members, key)
	})

	return
}

// Clone - Returns a deep copy of the set
func (S *IntSet) Clone() *IntSet {
	return &IntSet{index: S.index.Clone()}
}
