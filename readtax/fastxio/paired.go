package fastxio

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"readtax/read"
)

// PairedReader advances two FASTA/FASTQ streams in lockstep, pairing reads
// by their truncated names.
type PairedReader struct {
	r1, r2 *Reader

	// Warnf reports soft-stream conditions (file2 outliving file1). It
	// defaults to printing to stderr, matching the -v/-d verbose logging
	// the rest of the core expects from its caller.
	Warnf func(format string, args ...interface{})
}

// NewPairedReader opens both files.
func NewPairedReader(path1, path2 string) (*PairedReader, error) {
	r1, err := NewReader(path1)
	if err != nil {
		return nil, err
	}
	r2, err := NewReader(path2)
	if err != nil {
		r1.Close()
		return nil, err
	}
	return &PairedReader{r1: r1, r2: r2}, nil
}

// Close releases both underlying file handles.
func (p *PairedReader) Close() {
	p.r1.Close()
	p.r2.Close()
}

func (p *PairedReader) warnf(format string, args ...interface{}) {
	if p.Warnf != nil {
		p.Warnf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// Next returns the next paired read item, io.EOF once both streams are
// exhausted together, or a fatal error on desync.
//
// End-of-file asymmetry: file1 running out first means file2 has extra
// reads, which is only a warning — pairing stops there. file2 running out
// first means file1 has extra reads, which is fatal.
func (p *PairedReader) Next() (*read.Item, error) {
	name1, seq1, err1 := p.r1.Next()
	name2, seq2, err2 := p.r2.Next()

	switch {
	case err1 == io.EOF && err2 == io.EOF:
		return nil, io.EOF
	case err1 == io.EOF && err2 == nil:
		p.warnf("file2 has more reads than file1; ignoring the remainder of file2")
		return nil, io.EOF
	case err2 == io.EOF && err1 == nil:
		return nil, errors.New("fastxio: reads out of sync: file1 has more reads than file2")
	case err1 != nil:
		return nil, err1
	case err2 != nil:
		return nil, err2
	}

	if name1 != name2 {
		return nil, errors.Errorf("fastxio: reads out of sync: %q vs %q", name1, name2)
	}

	return &read.Item{Name: name1, Seq1: seq1, Seq2: seq2}, nil
}
