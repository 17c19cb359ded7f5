package fastxio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderReadsFastaAndTruncatesNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.fa")
	require.NoError(t, os.WriteFile(path, []byte(">r1 1:N:0:ATCG\nmklv\n>r2/1\nacde\n"), 0o644))

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	name, seq, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "r1", name)
	require.Equal(t, "MKLV", seq)

	name, seq, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, "r2", name)
	require.Equal(t, "ACDE", seq)

	_, _, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestTruncateNameSpace(t *testing.T) {
	got := TruncateName("r1 1:N:0:ATCG")
	if got != "r1" {
		t.Fatalf("got %q, want %q", got, "r1")
	}
}

func TestTruncateNameSlashSuffix(t *testing.T) {
	got := TruncateName("r1/1")
	if got != "r1" {
		t.Fatalf("got %q, want %q", got, "r1")
	}
}

func TestTruncateNameTab(t *testing.T) {
	got := TruncateName("r1\tdescription")
	if got != "r1" {
		t.Fatalf("got %q, want %q", got, "r1")
	}
}

func TestStripSequenceUppercasesAndDrops(t *testing.T) {
	got := StripSequence("mkl-v c*1d")
	want := "MKLVC*D"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
