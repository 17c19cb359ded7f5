// Package classify turns the searcher's candidate matches for a read into
// the single classification line the pipeline writes out.
package classify

import (
	"strconv"
	"strings"

	"readtax/config"
	"readtax/search"
	"readtax/taxonomy"
	"readtax/util"
)

// Result is the outcome of classifying one read.
type Result struct {
	Classified    bool
	Taxid         uint64
	ScoreOrLength int
	RefTaxids     []uint64
}

// Classify selects the winning match(es) from matches per cfg.Mode (maximum
// length for MEM, maximum score for Greedy), takes the union of their
// taxids, and resolves the read's taxon as their LCA. An empty matches
// slice classifies as unclassified.
func Classify(cfg *config.Config, tax *taxonomy.Taxonomy, matches []search.Match) Result {
	if len(matches) == 0 {
		return Result{}
	}

	best := matches[0].Length
	if cfg.Mode == config.Greedy {
		best = matches[0].Score
	}
	for _, m := range matches[1:] {
		v := m.Length
		if cfg.Mode == config.Greedy {
			v = m.Score
		}
		if v > best {
			best = v
		}
	}

	var refTaxids []uint64
	for _, m := range matches {
		v := m.Length
		if cfg.Mode == config.Greedy {
			v = m.Score
		}
		if v != best {
			continue
		}
		refTaxids = append(refTaxids, m.Taxids...)
	}
	util.UniqUint64s(&refTaxids)

	taxid := tax.LCAMany(refTaxids)

	return Result{
		Classified:    taxid != taxonomy.Unclassified,
		Taxid:         taxid,
		ScoreOrLength: best,
		RefTaxids:     refTaxids,
	}
}

// FormatLine renders r as the tab-delimited output line for read name,
// with fragments listed verbatim for diagnostics.
func FormatLine(name string, r Result, fragments []string) string {
	status := "U"
	if r.Classified {
		status = "C"
	}

	refs := make([]string, len(r.RefTaxids))
	for i, t := range r.RefTaxids {
		refs[i] = strconv.FormatUint(t, 10)
	}

	var b strings.Builder
	b.WriteString(status)
	b.WriteByte('\t')
	b.WriteString(name)
	b.WriteByte('\t')
	b.WriteString(strconv.FormatUint(r.Taxid, 10))
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(r.ScoreOrLength))
	b.WriteByte('\t')
	b.WriteString(strings.Join(refs, ","))
	b.WriteByte('\t')
	b.WriteString(strings.Join(fragments, ","))
	return b.String()
}
