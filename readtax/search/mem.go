package search

import "readtax/fmindex"

// MEMSearcher enumerates maximal exact matches: for every end position of
// a fragment, backward-extend as far as the index allows, then discard any
// match properly nested inside a longer one.
type MEMSearcher struct {
	Index             fmindex.Index
	MinFragmentLength int
}

type memSpan struct {
	start, end int // [start, end) over the fragment
	interval   fmindex.Interval
}

// Search returns every MEM of length >= MinFragmentLength found across
// fragments, each carrying the taxids of the reference proteins it
// matches.
func (s *MEMSearcher) Search(fragments []string) []Match {
	var spans []memSpan
	for _, frag := range fragments {
		spans = append(spans, dedupNestedSpans(memSpansInFragment(s.Index, frag))...)
	}

	matches := make([]Match, 0, len(spans))
	for _, sp := range spans {
		length := sp.end - sp.start
		if length < s.MinFragmentLength {
			continue
		}
		matches = append(matches, Match{
			Length: length,
			Score:  length,
			Taxids: taxidsForInterval(s.Index, sp.interval),
		})
	}
	return matches
}

// memSpansInFragment finds, for every end position of frag, the longest
// exact match ending there by backward-extending leftward until the
// interval would become empty.
func memSpansInFragment(idx fmindex.Index, frag string) []memSpan {
	m := len(frag)
	spans := make([]memSpan, 0, m)
	for end := 0; end < m; end++ {
		iv := idx.FullInterval()
		start := end + 1 // no character matched yet
		for k := end; k >= 0; k-- {
			next := idx.BackwardExtend(iv, frag[k])
			if next.Empty() {
				break
			}
			iv = next
			start = k
		}
		if start <= end {
			spans = append(spans, memSpan{start: start, end: end + 1, interval: iv})
		}
	}
	return spans
}

// dedupNestedSpans discards any span properly contained within another so
// that only maximal matches survive.
func dedupNestedSpans(spans []memSpan) []memSpan {
	keep := make([]bool, len(spans))
	for i := range spans {
		keep[i] = true
	}
	for i, a := range spans {
		if !keep[i] {
			continue
		}
		for j, b := range spans {
			if i == j || !keep[j] {
				continue
			}
			if b.start >= a.start && b.end <= a.end {
				if b.start > a.start || b.end < a.end || j > i {
					keep[j] = false
				}
			}
		}
	}
	out := make([]memSpan, 0, len(spans))
	for i, sp := range spans {
		if keep[i] {
			out = append(out, sp)
		}
	}
	return out
}
