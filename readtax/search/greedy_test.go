package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"readtax/fmindex"
	"readtax/score"
)

func substitutionIndex(t *testing.T) fmindex.Index {
	t.Helper()
	idx, err := fmindex.Build([]fmindex.Record{
		{ID: "p30", Taxid: 30, Seq: "ACDEFGHIKLMNPQRSTVWY"},
	})
	require.NoError(t, err)
	return idx
}

func TestGreedyExtendsAcrossMismatchesWithinBudget(t *testing.T) {
	idx := substitutionIndex(t)
	s := &GreedySearcher{
		Index:      idx,
		SeedLength: 7,
		Mismatches: 3,
		MinScore:   -1000,
		Scorer:     score.BLOSUM62,
	}

	// Two internal substitutions against p30 (K->R at 8, N->D at 11), both
	// crossed by the extension from the exact seed at 0.
	matches := s.Search([]string{"ACDEFGHIRLMDPQRSTVWY"})
	require.NotEmpty(t, matches)

	var best Match
	for _, m := range matches {
		if m.Length > best.Length {
			best = m
		}
	}
	require.Equal(t, 20, best.Length)
	require.Equal(t, []uint64{30}, best.Taxids)
}

func TestGreedyStopsExtensionWhenBudgetExhausted(t *testing.T) {
	idx := substitutionIndex(t)
	s := &GreedySearcher{
		Index:      idx,
		SeedLength: 7,
		Mismatches: 0,
		MinScore:   -1000,
		Scorer:     score.BLOSUM62,
	}

	matches := s.Search([]string{"GCDEFGHIKLMNPQRSTVWA"})
	require.NotEmpty(t, matches)
	for _, m := range matches {
		require.Less(t, m.Length, 20)
	}
}

func TestGreedyRejectsBelowMinScore(t *testing.T) {
	idx := substitutionIndex(t)
	s := &GreedySearcher{
		Index:      idx,
		SeedLength: 7,
		Mismatches: 3,
		MinScore:   1_000_000, // unreachable
		Scorer:     score.BLOSUM62,
	}

	matches := s.Search([]string{"GCDEFGHIKLMNPQRSTVWA"})
	require.Empty(t, matches)
}

func TestGreedyNoSeedNoMatches(t *testing.T) {
	idx := substitutionIndex(t)
	s := &GreedySearcher{
		Index:      idx,
		SeedLength: 7,
		Mismatches: 3,
		MinScore:   -1000,
		Scorer:     score.BLOSUM62,
	}

	matches := s.Search([]string{"QQQQQQQQQQQQQQQQQQQQ"})
	require.Empty(t, matches)
}

func TestGreedyEvalueFilter(t *testing.T) {
	idx := substitutionIndex(t)
	s := &GreedySearcher{
		Index:      idx,
		SeedLength: 7,
		Mismatches: 3,
		UseEvalue:  true,
		MinEvalue:  1e-300, // unreachable for a 20-residue match
		Scorer:     score.BLOSUM62,
	}

	matches := s.Search([]string{"GCDEFGHIKLMNPQRSTVWA"})
	require.Empty(t, matches)
}
