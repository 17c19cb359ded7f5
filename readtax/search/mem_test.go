package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"readtax/fmindex"
)

func toyIndex(t *testing.T) fmindex.Index {
	t.Helper()
	idx, err := fmindex.Build([]fmindex.Record{
		{ID: "p1", Taxid: 10, Seq: "MKLVCDEFGHIACDEFGHIKLMNP"},
		{ID: "p2", Taxid: 20, Seq: "MKLVCDEFGHIACDEFGHIKLMNP"},
		{ID: "p3", Taxid: 30, Seq: "WWWWWWWWWWWWWWWWWWWWWWWW"},
	})
	require.NoError(t, err)
	return idx
}

func TestMEMSearchFindsSharedMatch(t *testing.T) {
	idx := toyIndex(t)
	s := &MEMSearcher{Index: idx, MinFragmentLength: 11}

	matches := s.Search([]string{"MKLVCDEFGHIACDEFGHIKLMNP"})
	require.NotEmpty(t, matches)

	var longest Match
	for _, m := range matches {
		if m.Length > longest.Length {
			longest = m
		}
	}
	require.Equal(t, 24, longest.Length)
	require.ElementsMatch(t, []uint64{10, 20}, longest.Taxids)
}

func TestMEMSearchBelowMinLengthExcluded(t *testing.T) {
	idx := toyIndex(t)
	s := &MEMSearcher{Index: idx, MinFragmentLength: 11}

	matches := s.Search([]string{"MKLVC"}) // too short to qualify
	require.Empty(t, matches)
}

func TestMEMSearchNoMatch(t *testing.T) {
	idx := toyIndex(t)
	s := &MEMSearcher{Index: idx, MinFragmentLength: 11}

	matches := s.Search([]string{"QQQQQQQQQQQQQQQQ"})
	require.Empty(t, matches)
}

func TestDedupNestedSpansDiscardsContained(t *testing.T) {
	spans := []memSpan{
		{start: 0, end: 10},
		{start: 2, end: 8}, // nested, must be discarded
		{start: 0, end: 10}, // exact duplicate, must be discarded
	}
	out := dedupNestedSpans(spans)
	require.Len(t, out, 1)
	require.Equal(t, 0, out[0].start)
	require.Equal(t, 10, out[0].end)
}

func TestDedupNestedSpansKeepsOverlappingNonNested(t *testing.T) {
	spans := []memSpan{
		{start: 0, end: 10},
		{start: 5, end: 15}, // overlaps but is not contained
	}
	out := dedupNestedSpans(spans)
	require.Len(t, out, 2)
}
