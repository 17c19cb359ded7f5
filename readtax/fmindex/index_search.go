package fmindex

import "sort"

func (idx *memIndex) FullInterval() Interval {
	return Interval{Lo: 0, Hi: len(idx.sa)}
}

func (idx *memIndex) IntervalSize(iv Interval) int {
	return iv.Size()
}

// occ returns the number of occurrences of c in idx.bwt[0:i+1] (i.e. rank
// of c up to and including row i). occ(c, -1) is defined as 0.
func (idx *memIndex) occ(c byte, i int) int {
	if i < 0 {
		return 0
	}
	checkpoints := idx.occCheckpoints[c]
	if checkpoints == nil {
		return 0
	}
	base := i / occInterval
	count := int(checkpoints[base])
	for j := base*occInterval + 1; j <= i; j++ {
		if idx.bwt[j] == c {
			count++
		}
	}
	return count
}

// BackwardExtend performs one step of FM-index backward search: narrowing
// the interval of suffixes matching the currently-built suffix of the
// query by prepending c.
func (idx *memIndex) BackwardExtend(iv Interval, c byte) Interval {
	if iv.Empty() {
		return Interval{}
	}
	base, ok := idx.c[c]
	if !ok {
		return Interval{}
	}
	newLo := base + idx.occ(c, iv.Lo-1)
	newHi := base + idx.occ(c, iv.Hi-1)
	return Interval{Lo: newLo, Hi: newHi}
}

// docOf returns the id of the document containing text position pos.
func (idx *memIndex) docOf(pos int32) int {
	return sort.Search(len(idx.docEnd), func(i int) bool {
		return idx.docEnd[i] > pos
	})
}

// IntervalDocuments returns the distinct document ids whose sequence
// contributes a suffix to iv.
func (idx *memIndex) IntervalDocuments(iv Interval) []int {
	if iv.Empty() {
		return nil
	}
	seen := newDocSet(iv.Size())
	docs := make([]int, 0, iv.Size())
	for i := iv.Lo; i < iv.Hi; i++ {
		pos := idx.sa[i]
		d := idx.docOf(pos)
		if d >= len(idx.docTaxid) {
			continue
		}
		if seen.Add(d) {
			docs = append(docs, d)
		}
	}
	sort.Ints(docs)
	return docs
}

// DocTaxid returns the taxid tagging document docID.
func (idx *memIndex) DocTaxid(docID int) uint64 {
	if docID < 0 || docID >= len(idx.docTaxid) {
		return 0
	}
	return idx.docTaxid[docID]
}

// OccurrencePositions returns the raw text offset of every suffix array
// row covered by iv.
func (idx *memIndex) OccurrencePositions(iv Interval) []int {
	if iv.Empty() {
		return nil
	}
	positions := make([]int, 0, iv.Size())
	for i := iv.Lo; i < iv.Hi; i++ {
		positions = append(positions, int(idx.sa[i]))
	}
	return positions
}

// TextAt returns up to length bytes of text starting at pos.
func (idx *memIndex) TextAt(pos, length int) []byte {
	if pos < 0 || pos >= len(idx.text) || length <= 0 {
		return nil
	}
	end := pos + length
	if end > len(idx.text) {
		end = len(idx.text)
	}
	return idx.text[pos:end]
}

// DocAt returns the id of the document containing text position pos.
func (idx *memIndex) DocAt(pos int) int {
	return idx.docOf(int32(pos))
}

// TotalLength returns the length of the concatenated reference text.
func (idx *memIndex) TotalLength() int {
	return len(idx.text)
}
