// Package fastxio auto-detects FASTA/FASTQ input (optionally
// gzip-compressed), truncates read names the way sequencers' paired-end
// conventions expect, and advances paired files in lockstep. It also owns
// the single-writer output stream classification lines are written
// through.
package fastxio

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Reader wraps a single FASTA/FASTQ stream, yielding stripped sequences
// and truncated names.
type Reader struct {
	path  string
	fastx *fastx.Reader
}

// NewReader opens path, auto-detecting FASTA vs FASTQ and gzip
// compression (shenwei356/bio/seqio/fastx does both internally).
func NewReader(path string) (*Reader, error) {
	fr, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	return &Reader{path: path, fastx: fr}, nil
}

// Next returns the next read's truncated name and stripped sequence, or
// io.EOF when the stream is exhausted.
func (r *Reader) Next() (name, seq string, err error) {
	rec, err := r.fastx.Read()
	if err != nil {
		if err == io.EOF {
			return "", "", io.EOF
		}
		return "", "", errors.Wrapf(err, "reading %s", r.path)
	}
	name = TruncateName(string(rec.Name))
	seq = StripSequence(string(rec.Seq.Seq))
	return name, seq, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() {
	r.fastx.Close()
}

// TruncateName cuts a FASTA/FASTQ header at the first space, tab or CR
// (discarding Illumina-style " 1:N:0:…" suffixes in the same stroke),
// then strips a trailing old-style "/1" or "/2" mate marker.
func TruncateName(name string) string {
	if i := strings.IndexAny(name, " \t\r"); i >= 0 {
		name = name[:i]
	}
	if strings.HasSuffix(name, "/1") || strings.HasSuffix(name, "/2") {
		name = name[:len(name)-2]
	}
	return name
}

// StripSequence uppercases seq and drops any byte that isn't a letter or a
// stop-codon marker ('*'), which the translator needs intact to split
// protein input into fragments.
func StripSequence(seq string) string {
	b := make([]byte, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		switch {
		case c >= 'a' && c <= 'z':
			b = append(b, c-'a'+'A')
		case c >= 'A' && c <= 'Z':
			b = append(b, c)
		case c == '*':
			b = append(b, c)
		}
	}
	return string(b)
}
