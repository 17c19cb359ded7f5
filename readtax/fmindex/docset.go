package fmindex

import (
	"encoding/binary"

	"github.com/zeebo/wyhash"
)

// docSet is an open-addressing set of small non-negative ints (document
// ids), hashed with wyhash rather than Go's built-in map hash. Interval
// rows can number in the thousands for a popular seed, and this dedup runs
// once per BackwardExtend-derived interval query, so a flat table with a
// fast non-cryptographic hash avoids map overhead on the hot path.
type docSet struct {
	slots []int32 // -1 means empty
	n     int
}

const docSetEmpty = -1

func newDocSet(capacityHint int) *docSet {
	size := 8
	for size < capacityHint*2 {
		size <<= 1
	}
	slots := make([]int32, size)
	for i := range slots {
		slots[i] = docSetEmpty
	}
	return &docSet{slots: slots}
}

func hashDocID(id int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(id))
	return wyhash.Hash(buf[:], 0)
}

// Add inserts id if absent, reporting whether it was newly added.
func (s *docSet) Add(id int) bool {
	if s.n*2 >= len(s.slots) {
		s.grow()
	}
	mask := uint64(len(s.slots) - 1)
	i := hashDocID(id) & mask
	for {
		v := s.slots[i]
		if v == docSetEmpty {
			s.slots[i] = int32(id)
			s.n++
			return true
		}
		if int(v) == id {
			return false
		}
		i = (i + 1) & mask
	}
}

func (s *docSet) grow() {
	old := s.slots
	slots := make([]int32, len(old)*2)
	for i := range slots {
		slots[i] = docSetEmpty
	}
	s.slots = slots
	s.n = 0
	mask := uint64(len(slots) - 1)
	for _, v := range old {
		if v == docSetEmpty {
			continue
		}
		i := hashDocID(int(v)) & mask
		for s.slots[i] != docSetEmpty {
			i = (i + 1) & mask
		}
		s.slots[i] = v
		s.n++
	}
}
