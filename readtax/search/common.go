// Package search implements the two alignment strategies that walk a
// fmindex.Index to find candidate matches for a translated read fragment:
// MEM (exact, maximal) and Greedy (seed-and-extend with a mismatch
// budget). Both strategies return a flat slice of Match; ranking across
// fragments, mates and taxa is the classifier's job.
package search

import (
	"readtax/fmindex"
	"readtax/util"
)

// Match is a single accepted alignment between a read fragment and the
// reference database, reduced to exactly what the classifier needs:
// how good it was and which taxon(s) it points to.
type Match struct {
	Length int
	Score  int
	Taxids []uint64
}

// Scorer computes the substitution score between a query and reference
// residue, e.g. score.BLOSUM62.
type Scorer func(a, b byte) int

// Searcher is satisfied by both MEMSearcher and GreedySearcher, letting
// the pipeline pick a strategy once per worker without branching on every
// read.
type Searcher interface {
	Search(fragments []string) []Match
}

// taxidsForInterval resolves the distinct taxids tagging the documents
// covered by iv, sorted for deterministic output.
func taxidsForInterval(idx fmindex.Index, iv fmindex.Interval) []uint64 {
	docs := idx.IntervalDocuments(iv)
	return taxidsForDocs(idx, docs)
}

func taxidsForDocs(idx fmindex.Index, docs []int) []uint64 {
	if len(docs) == 0 {
		return nil
	}
	taxids := make([]uint64, len(docs))
	for i, d := range docs {
		taxids[i] = idx.DocTaxid(d)
	}
	util.UniqUint64s(&taxids)
	return taxids
}
