package fastxio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFasta(t *testing.T, dir, name string, records map[string]string, order []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	for _, id := range order {
		_, err := f.WriteString(">" + id + "\n" + records[id] + "\n")
		require.NoError(t, err)
	}
	return path
}

func TestPairedReaderMatchesNames(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFasta(t, dir, "a.fa", map[string]string{"r1": "MKLV", "r2": "ACDE"}, []string{"r1", "r2"})
	p2 := writeFasta(t, dir, "b.fa", map[string]string{"r1": "GHIK", "r2": "LMNP"}, []string{"r1", "r2"})

	pr, err := NewPairedReader(p1, p2)
	require.NoError(t, err)
	defer pr.Close()

	item, err := pr.Next()
	require.NoError(t, err)
	require.Equal(t, "r1", item.Name)
	require.Equal(t, "MKLV", item.Seq1)
	require.Equal(t, "GHIK", item.Seq2)
	require.True(t, item.Paired())

	item, err = pr.Next()
	require.NoError(t, err)
	require.Equal(t, "r2", item.Name)

	_, err = pr.Next()
	require.Equal(t, io.EOF, err)
}

func TestPairedReaderDesyncIsFatal(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFasta(t, dir, "a.fa", map[string]string{"r1": "MKLV"}, []string{"r1"})
	p2 := writeFasta(t, dir, "b.fa", map[string]string{"rX": "GHIK"}, []string{"rX"})

	pr, err := NewPairedReader(p1, p2)
	require.NoError(t, err)
	defer pr.Close()

	_, err = pr.Next()
	require.Error(t, err)
}

func TestPairedReaderFile1ExtraIsFatal(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFasta(t, dir, "a.fa", map[string]string{"r1": "MKLV", "r2": "ACDE"}, []string{"r1", "r2"})
	p2 := writeFasta(t, dir, "b.fa", map[string]string{"r1": "GHIK"}, []string{"r1"})

	pr, err := NewPairedReader(p1, p2)
	require.NoError(t, err)
	defer pr.Close()

	_, err = pr.Next() // r1/r1 pairs fine
	require.NoError(t, err)

	_, err = pr.Next() // file2 now exhausted, file1 still has r2 => fatal
	require.Error(t, err)
	require.NotEqual(t, io.EOF, err)
}

func TestPairedReaderFile2ExtraIsWarningNotFatal(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFasta(t, dir, "a.fa", map[string]string{"r1": "MKLV"}, []string{"r1"})
	p2 := writeFasta(t, dir, "b.fa", map[string]string{"r1": "GHIK", "r2": "LMNP"}, []string{"r1", "r2"})

	var warned bool
	pr, err := NewPairedReader(p1, p2)
	require.NoError(t, err)
	pr.Warnf = func(format string, args ...interface{}) { warned = true }
	defer pr.Close()

	_, err = pr.Next() // r1/r1 pairs fine
	require.NoError(t, err)

	_, err = pr.Next() // file1 exhausted, file2 still has r2 => warning, not fatal
	require.Equal(t, io.EOF, err)
	require.True(t, warned)
}
