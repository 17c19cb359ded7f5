package fmindex

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"
	"github.com/twotwotwo/sorts"
)

// Record is one reference protein to index, tagged by the taxon it
// originates from.
type Record struct {
	ID    string
	Taxid uint64
	Seq   string
}

// sentinel separates concatenated reference proteins in the indexed text.
// Its exact byte value only needs to sort before every amino acid and
// never appear in a query, since queries are always pure amino-acid
// strings.
const sentinel = 0x00

// occInterval is the checkpoint spacing for the Occ rank tables, trading
// memory for the cost of the linear scan between checkpoints (Occurence in
// vtphan-fmi's fmic.go uses the same checkpoint-plus-scan scheme).
const occInterval = 16

// memIndex is the in-memory reference implementation of Index: a
// concatenated-text suffix array, its BWT, a cumulative symbol-count table
// C, and checkpointed rank tables Occ.
type memIndex struct {
	text []byte // concatenated reference text, sentinel-delimited
	sa   []int32
	bwt  []byte

	alphabet []byte
	c        map[byte]int

	occCheckpoints map[byte][]int32

	docEnd   []int32 // cumulative exclusive end offset of each document (incl. its sentinel)
	docTaxid []uint64
}

// Build constructs an in-memory FM-index over recs. Sequences are expected
// to already be uppercase amino-acid letters (call seg.Mask and strip
// before building if desired; masking the reference database is a
// build-time concern left to the caller).
func Build(recs []Record) (Index, error) {
	if len(recs) == 0 {
		return nil, errors.New("fmindex: no records to index")
	}

	var buf bytes.Buffer
	docEnd := make([]int32, len(recs))
	docTaxid := make([]uint64, len(recs))
	for i, r := range recs {
		if r.Seq == "" {
			return nil, errors.Errorf("fmindex: record %q has empty sequence", r.ID)
		}
		buf.WriteString(r.Seq)
		buf.WriteByte(sentinel)
		docEnd[i] = int32(buf.Len())
		docTaxid[i] = r.Taxid
	}
	text := buf.Bytes()
	n := len(text)

	sa := make([]int32, n)
	for i := range sa {
		sa[i] = int32(i)
	}
	sortSuffixes(text, sa)

	bwt := make([]byte, n)
	for i, p := range sa {
		if p == 0 {
			bwt[i] = text[n-1]
		} else {
			bwt[i] = text[p-1]
		}
	}

	alphabet := distinctSymbols(text)
	c := buildCTable(text, alphabet)
	occ := buildOccCheckpoints(bwt, alphabet)

	return &memIndex{
		text:           text,
		sa:             sa,
		bwt:            bwt,
		alphabet:       alphabet,
		c:              c,
		occCheckpoints: occ,
		docEnd:         docEnd,
		docTaxid:       docTaxid,
	}, nil
}

// sortSuffixes sorts suffix start offsets of text lexicographically using a
// parallel comparison sort, scaled by sorts.MaxProcs (left at the
// package's own default; nothing in readtax sets it).
func sortSuffixes(text []byte, sa []int32) {
	sorts.Quicksort(&suffixSorter{text: text, sa: sa})
}

type suffixSorter struct {
	text []byte
	sa   []int32
}

func (s *suffixSorter) Len() int { return len(s.sa) }
func (s *suffixSorter) Swap(i, j int) {
	s.sa[i], s.sa[j] = s.sa[j], s.sa[i]
}
func (s *suffixSorter) Less(i, j int) bool {
	return bytes.Compare(s.text[s.sa[i]:], s.text[s.sa[j]:]) < 0
}

func distinctSymbols(text []byte) []byte {
	seen := make(map[byte]bool, 32)
	for _, c := range text {
		seen[c] = true
	}
	syms := make([]byte, 0, len(seen))
	for c := range seen {
		syms = append(syms, c)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// buildCTable computes C[c] = the number of symbols in text strictly less
// than c, the standard FM-index count table.
func buildCTable(text []byte, alphabet []byte) map[byte]int {
	freq := make(map[byte]int, len(alphabet))
	for _, ch := range text {
		freq[ch]++
	}
	c := make(map[byte]int, len(alphabet))
	var running int
	for _, ch := range alphabet {
		c[ch] = running
		running += freq[ch]
	}
	return c
}

// buildOccCheckpoints builds, for every symbol, a running-count checkpoint
// every occInterval BWT rows. Occ(c, i) then costs at most occInterval
// scanned bytes.
func buildOccCheckpoints(bwt []byte, alphabet []byte) map[byte][]int32 {
	n := len(bwt)
	numCheckpoints := n/occInterval + 1
	occ := make(map[byte][]int32, len(alphabet))
	for _, ch := range alphabet {
		occ[ch] = make([]int32, numCheckpoints)
	}

	counts := make(map[byte]int32, len(alphabet))
	for i := 0; i < n; i++ {
		counts[bwt[i]]++
		if i%occInterval == 0 {
			for _, ch := range alphabet {
				occ[ch][i/occInterval] = counts[ch]
			}
		}
	}
	return occ
}
