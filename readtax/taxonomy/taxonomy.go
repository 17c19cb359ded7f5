// Package taxonomy provides the parent map over the NCBI taxonomy tree and
// lowest-common-ancestor queries on it.
package taxonomy

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// Unclassified is the sentinel taxid returned for taxa not present in the
// map, or for an empty set passed to LCAMany.
const Unclassified uint64 = 0

// Taxonomy is a read-only, built-once mapping of taxid to parent taxid.
// The root's parent is itself (or 0); every non-root taxon's parent must be
// present in the map.
type Taxonomy struct {
	parent map[uint64]uint64
}

// New builds a Taxonomy from an already-parsed parent map.
func New(parent map[uint64]uint64) *Taxonomy {
	return &Taxonomy{parent: parent}
}

// LoadNodesDmp reads a nodes.dmp file in NCBI taxdump format
// ("taxid\t|\tparent_taxid\t|\t..."), building the parent map. Plain or
// gzip-compressed, auto-detected by magic bytes.
func LoadNodesDmp(path string) (*Taxonomy, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening nodes.dmp: %s", path)
	}
	defer fh.Close()

	parent := make(map[uint64]uint64, 1<<16)

	scanner := bufio.NewScanner(fh)
	// nodes.dmp lines can be long; grow the buffer rather than truncating.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1<<20)

	var lineno int
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, "\t|\t", 3)
		if len(fields) < 2 {
			return nil, errors.Errorf("nodes.dmp:%d: malformed line", lineno)
		}
		taxid, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "nodes.dmp:%d: invalid taxid", lineno)
		}
		parentTaxid, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "nodes.dmp:%d: invalid parent taxid", lineno)
		}
		parent[taxid] = parentTaxid
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading nodes.dmp")
	}

	return New(parent), nil
}

// Parent returns the parent taxid of taxid, or (0, false) if unknown.
func (t *Taxonomy) Parent(taxid uint64) (uint64, bool) {
	p, ok := t.parent[taxid]
	return p, ok
}

// maxAncestorSteps bounds the ancestor walk against a malformed map with an
// accidental cycle away from the root, so a bad nodes.dmp cannot hang a
// worker.
const maxAncestorSteps = 1 << 20

// LCA returns the lowest common ancestor of a and b. Unknown taxids resolve
// to Unclassified. LCA(a, a) == a (when a is known); LCA(a, root) == root.
func (t *Taxonomy) LCA(a, b uint64) uint64 {
	if _, ok := t.parent[a]; !ok {
		return Unclassified
	}
	if _, ok := t.parent[b]; !ok {
		return Unclassified
	}

	seen := make(map[uint64]struct{}, 64)
	cur := a
	for i := 0; i < maxAncestorSteps; i++ {
		seen[cur] = struct{}{}
		p, ok := t.parent[cur]
		if !ok || p == cur {
			break
		}
		cur = p
	}

	cur = b
	for i := 0; i < maxAncestorSteps; i++ {
		if _, ok := seen[cur]; ok {
			return cur
		}
		p, ok := t.parent[cur]
		if !ok || p == cur {
			break
		}
		cur = p
	}
	return Unclassified
}

// LCAMany folds LCA across a set of taxa. An empty set classifies as
// Unclassified.
func (t *Taxonomy) LCAMany(taxids []uint64) uint64 {
	if len(taxids) == 0 {
		return Unclassified
	}
	result := taxids[0]
	for _, tx := range taxids[1:] {
		if result == Unclassified {
			return Unclassified
		}
		result = t.LCA(result, tx)
	}
	return result
}
