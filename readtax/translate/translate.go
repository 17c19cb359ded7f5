// Package translate turns a read into candidate protein fragments: 6-frame
// translation split on stop codons for nucleotide input, or the protein
// input itself split the same way for reads that are already amino acids.
package translate

import "strings"

// Fragment is a contiguous run of translated (or passthrough) amino acids
// considered independently by the search layer. Frame is kept only for
// diagnostics.
type Fragment struct {
	Seq   string
	Frame int // 0-2 forward, 3-5 reverse-complement; -1 for protein passthrough
}

var codonTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

var complement = map[byte]byte{
	'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C',
	'N': 'N', 'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W',
	'K': 'M', 'M': 'K', 'B': 'V', 'D': 'H', 'H': 'D', 'V': 'B',
}

// ReverseComplement returns the reverse complement of a nucleotide
// sequence. Characters with no known complement become 'N'.
func ReverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c, ok := complement[seq[n-1-i]]
		if !ok {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}

func translateFrame(seq string) string {
	n := len(seq)
	aa := make([]byte, 0, n/3+1)
	for i := 0; i+3 <= n; i += 3 {
		codon := seq[i : i+3]
		if c, ok := codonTable[codon]; ok {
			aa = append(aa, c)
		} else {
			// ambiguous nucleotides that cannot be translated yield 'X',
			// which terminates the current fragment on split.
			aa = append(aa, 'X')
		}
	}
	return string(aa)
}

// splitFragments splits an amino-acid string on stop codons ('*') and on
// 'X' (untranslatable codons), keeping only runs of at least minLen.
func splitFragments(aa string, minLen int, frame int) []Fragment {
	var frags []Fragment
	start := 0
	flush := func(end int) {
		if end-start >= minLen {
			frags = append(frags, Fragment{Seq: aa[start:end], Frame: frame})
		}
		start = end + 1
	}
	for i := 0; i < len(aa); i++ {
		if aa[i] == '*' || aa[i] == 'X' {
			flush(i)
		}
	}
	flush(len(aa))
	return frags
}

// Translate6Frames produces candidate fragments from a nucleotide read: 3
// forward reading frames and 3 reverse-complement frames, split into
// contiguous fragments of length >= minFragmentLength on stop codons (and
// on untranslatable 'X' runs).
func Translate6Frames(seq string, minFragmentLength int) []Fragment {
	seq = strings.ToUpper(seq)
	rc := ReverseComplement(seq)

	var frags []Fragment
	for frame := 0; frame < 3; frame++ {
		if frame >= len(seq) {
			continue
		}
		aa := translateFrame(seq[frame:])
		frags = append(frags, splitFragments(aa, minFragmentLength, frame)...)
	}
	for frame := 0; frame < 3; frame++ {
		if frame >= len(rc) {
			continue
		}
		aa := translateFrame(rc[frame:])
		frags = append(frags, splitFragments(aa, minFragmentLength, frame+3)...)
	}
	return frags
}

// Fragments produces the candidate fragments to search for a read: the
// stripped input, split on stop codons just like a translated frame, when
// the input is already protein, or the 6-frame nucleotide translation
// otherwise.
func Fragments(seq string, inputIsProtein bool, minFragmentLength int) []Fragment {
	if inputIsProtein {
		return splitFragments(strings.ToUpper(seq), minFragmentLength, -1)
	}
	return Translate6Frames(seq, minFragmentLength)
}
