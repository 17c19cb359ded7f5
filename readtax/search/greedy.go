package search

import (
	"readtax/fmindex"
)

// XDrop bounds how far a Greedy extension may continue once its running
// score has fallen below the best score seen so far along that
// extension. Kaiju-style aligners do not expose this as a CLI flag; it is
// a small implementation constant, deliberately exported so tests (and
// callers chasing a reference corpus) can tune it. 22 sits in the range
// BLAST-family aligners commonly use for protein scoring with BLOSUM62.
var XDrop = 22

// GreedySearcher implements seed-and-extend alignment with a shared
// mismatch budget, BLOSUM62 scoring, X-drop pruning and an optional
// Karlin-Altschul E-value filter.
type GreedySearcher struct {
	Index      fmindex.Index
	SeedLength int
	Mismatches int
	MinScore   int
	Scorer     Scorer

	UseEvalue bool
	MinEvalue float64
}

type seedHit struct {
	start    int
	interval fmindex.Interval
}

// Search returns every accepted alignment across fragments.
func (s *GreedySearcher) Search(fragments []string) []Match {
	var matches []Match
	for _, frag := range fragments {
		matches = append(matches, s.searchFragment(frag)...)
	}
	return matches
}

func (s *GreedySearcher) searchFragment(frag string) []Match {
	seeds := seedsInFragment(s.Index, frag, s.SeedLength)
	if len(seeds) == 0 {
		return nil
	}

	var matches []Match
	for _, seed := range seeds {
		for _, refPos := range s.Index.OccurrencePositions(seed.interval) {
			m, ok := s.extendSeed(frag, seed.start, refPos)
			if !ok {
				continue
			}
			matches = append(matches, m)
		}
	}
	return matches
}

// seedsInFragment enumerates every seed_length window of frag whose
// backward-search interval is non-empty.
func seedsInFragment(idx fmindex.Index, frag string, seedLength int) []seedHit {
	m := len(frag)
	if m < seedLength {
		return nil
	}
	var hits []seedHit
	for start := 0; start+seedLength <= m; start++ {
		iv := idx.FullInterval()
		ok := true
		for k := start + seedLength - 1; k >= start; k-- {
			iv = idx.BackwardExtend(iv, frag[k])
			if iv.Empty() {
				ok = false
				break
			}
		}
		if ok {
			hits = append(hits, seedHit{start: start, interval: iv})
		}
	}
	return hits
}

// extendSeed grows the exact seed [start, start+seedLength) of frag,
// anchored at refPos in the underlying reference text, independently
// leftward and rightward from a single shared mismatch budget. The
// rightward pass runs first and hands any unused budget to the leftward
// pass.
func (s *GreedySearcher) extendSeed(frag string, start, refPos int) (Match, bool) {
	seedEnd := start + s.SeedLength
	seedScore := 0
	for i := start; i < seedEnd; i++ {
		seedScore += s.Scorer(frag[i], frag[i])
	}

	rightScore, rightLen, rightMism := extendXDrop(s.Scorer, s.Mismatches, func(i int) (byte, byte, bool) {
		qPos := seedEnd + i
		if qPos >= len(frag) {
			return 0, 0, false
		}
		ref := s.Index.TextAt(refPos+s.SeedLength+i, 1)
		if len(ref) == 0 || ref[0] == 0 {
			return 0, 0, false
		}
		return frag[qPos], ref[0], true
	})

	leftBudget := s.Mismatches - rightMism
	leftScore, leftLen, _ := extendXDrop(s.Scorer, leftBudget, func(i int) (byte, byte, bool) {
		qPos := start - 1 - i
		if qPos < 0 {
			return 0, 0, false
		}
		refp := refPos - 1 - i
		if refp < 0 {
			return 0, 0, false
		}
		ref := s.Index.TextAt(refp, 1)
		if len(ref) == 0 || ref[0] == 0 {
			return 0, 0, false
		}
		return frag[qPos], ref[0], true
	})

	totalScore := seedScore + leftScore + rightScore
	qStart := start - leftLen
	qEnd := seedEnd + rightLen

	if s.UseEvalue {
		e := EValue(qEnd-qStart, s.Index.TotalLength(), totalScore)
		if e > s.MinEvalue {
			return Match{}, false
		}
	} else if totalScore < s.MinScore {
		return Match{}, false
	}

	doc := s.Index.DocAt(refPos)
	return Match{
		Length: qEnd - qStart,
		Score:  totalScore,
		Taxids: taxidsForDocs(s.Index, []int{doc}),
	}, true
}

// extendXDrop walks step(0), step(1), ... accumulating score until step
// returns ok=false, the mismatch budget is exhausted and the next step
// would mismatch, or the running score falls more than XDrop below its
// best-so-far value. It returns the score, length and mismatch count at
// the point the running score was highest, trimming any trailing dip.
func extendXDrop(scorer Scorer, budget int, step func(i int) (qc, rc byte, ok bool)) (bestOut, length, mismatches int) {
	var curScore, mism int
	var bestScore, bestLen, bestMism int
	for i := 0; ; i++ {
		qc, rc, ok := step(i)
		if !ok {
			break
		}
		if qc != rc {
			if mism >= budget {
				break
			}
			mism++
		}
		curScore += scorer(qc, rc)
		if curScore > bestScore {
			bestScore = curScore
			bestLen = i + 1
			bestMism = mism
		}
		if bestScore-curScore > XDrop {
			break
		}
	}
	return bestScore, bestLen, bestMism
}
