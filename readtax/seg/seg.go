// Package seg implements a SEG-style low-complexity masker for protein
// sequences. Callers treat masking as an opaque `seq -> seq` collaborator;
// this is the one concrete implementation wired as the default.
//
// The algorithm follows Wootton & Federhen's SEG: slide a window, compute
// its Shannon entropy over amino-acid composition, and replace windows
// whose entropy falls below a trigger threshold with 'X', merging adjacent
// masked windows and extending them while entropy stays below a looser
// extension threshold.
package seg

import "math"

// Default window/threshold parameters: SEG's published protein defaults
// (window 12, trigger 2.2, extension 2.5), kept as package constants since
// callers only need a masking function, not tunable parameters.
const (
	windowSize        = 12
	triggerComplexity = 2.2
	extensionComplexity = 2.5
)

// Mask replaces low-complexity windows of seq with 'X', matching the
// `seq -> seq` masking signature the search layer calls before enumerating
// matches.
func Mask(seq string) string {
	n := len(seq)
	if n < windowSize {
		return seq
	}

	masked := make([]bool, n)
	counts := make(map[byte]int, 25)
	for i := 0; i < windowSize; i++ {
		counts[seq[i]]++
	}

	for start := 0; start+windowSize <= n; start++ {
		if start > 0 {
			counts[seq[start-1]]--
			if counts[seq[start-1]] == 0 {
				delete(counts, seq[start-1])
			}
			counts[seq[start+windowSize-1]]++
		}

		if entropy(counts, windowSize) < triggerComplexity {
			markRange(masked, start, start+windowSize)
			extendRange(seq, masked, counts, start, start+windowSize)
		}
	}

	out := []byte(seq)
	for i, m := range masked {
		if m {
			out[i] = 'X'
		}
	}
	return string(out)
}

func entropy(counts map[byte]int, total int) float64 {
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

func markRange(masked []bool, from, to int) {
	for i := from; i < to; i++ {
		masked[i] = true
	}
}

// extendRange grows a triggered window outward while the local entropy
// stays below the looser extension threshold, capturing the tails of a
// low-complexity stretch that the fixed window alone would clip.
func extendRange(seq string, masked []bool, counts map[byte]int, from, to int) {
	n := len(seq)
	local := make(map[byte]int, len(counts))
	for k, v := range counts {
		local[k] = v
	}

	for to < n {
		local[seq[to]]++
		if entropy(local, to-from+1) >= extensionComplexity {
			local[seq[to]]--
			break
		}
		masked[to] = true
		to++
	}

	for from > 0 {
		local[seq[from-1]]++
		if entropy(local, to-from+1) >= extensionComplexity {
			local[seq[from-1]]--
			break
		}
		from--
		masked[from] = true
	}
}
