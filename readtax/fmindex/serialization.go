package fmindex

import (
	"bufio"
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
)

// Magic identifies readtax's own minimal binary framing for a saved
// in-memory index, following the magic-number-plus-version header used by
// lexicmap/index/twobit/2bit_seq.go and lexicmap/cmd/genome/genome.go.
var Magic = [8]byte{'r', 'e', 'a', 'd', 'f', 'm', 'i', '1'}

var be = binary.BigEndian

// ErrInvalidFormat is returned when a file's magic number does not match.
var ErrInvalidFormat = errors.New("fmindex: invalid file format")

// Save writes idx to path in readtax's own binary format.
func Save(idx Index, path string) error {
	m, ok := idx.(*memIndex)
	if !ok {
		return errors.New("fmindex: Save only supports the in-memory index")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}

	if err := writeUint64(w, uint64(len(m.text))); err != nil {
		return err
	}
	if _, err := w.Write(m.text); err != nil {
		return err
	}

	n := len(m.sa)
	if err := writeUint64(w, uint64(n)); err != nil {
		return err
	}
	for _, p := range m.sa {
		if err := writeUint64(w, uint64(p)); err != nil {
			return err
		}
	}
	if _, err := w.Write(m.bwt); err != nil {
		return err
	}

	if err := writeUint64(w, uint64(len(m.docEnd))); err != nil {
		return err
	}
	for i, end := range m.docEnd {
		if err := writeUint64(w, uint64(end)); err != nil {
			return err
		}
		if err := writeUint64(w, m.docTaxid[i]); err != nil {
			return err
		}
	}

	return w.Flush()
}

func writeUint64(w *bufio.Writer, v uint64) error {
	var b [8]byte
	be.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint64(r *bufio.Reader) (uint64, error) {
	var b [8]byte
	if _, err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return be.Uint64(b[:]), nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Load reads an index previously written by Save, rebuilding its C table
// and Occ checkpoints from the stored BWT.
func Load(path string) (Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic [8]byte
	if _, err := readFull(r, magic[:]); err != nil {
		return nil, errors.Wrap(err, "reading magic number")
	}
	if magic != Magic {
		return nil, ErrInvalidFormat
	}

	textLen, err := readUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading text length")
	}
	text := make([]byte, textLen)
	if _, err := readFull(r, text); err != nil {
		return nil, errors.Wrap(err, "reading text")
	}

	n, err := readUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading suffix array length")
	}

	sa := make([]int32, n)
	for i := range sa {
		v, err := readUint64(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading suffix array")
		}
		sa[i] = int32(v)
	}

	bwt := make([]byte, n)
	if _, err := readFull(r, bwt); err != nil {
		return nil, errors.Wrap(err, "reading BWT")
	}

	numDocs, err := readUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading document count")
	}
	docEnd := make([]int32, numDocs)
	docTaxid := make([]uint64, numDocs)
	for i := range docEnd {
		end, err := readUint64(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading document boundary")
		}
		taxid, err := readUint64(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading document taxid")
		}
		docEnd[i] = int32(end)
		docTaxid[i] = taxid
	}

	alphabet := distinctSymbols(bwt)
	c := buildCTable(bwt, alphabet)
	occ := buildOccCheckpoints(bwt, alphabet)

	return &memIndex{
		text:           text,
		sa:             sa,
		bwt:            bwt,
		alphabet:       alphabet,
		c:              c,
		occCheckpoints: occ,
		docEnd:         docEnd,
		docTaxid:       docTaxid,
	}, nil
}
