package seg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaskLowComplexityRun(t *testing.T) {
	// A long single-residue run is minimum-complexity and should mask.
	seq := strings.Repeat("A", 30) + "MKLVCDEFGHIKLMNPQRSTVWY"
	out := Mask(seq)
	require.Contains(t, out[:30], "X")
	require.NotEqual(t, seq, out)
}

func TestMaskLeavesHighComplexityAlone(t *testing.T) {
	seq := "MKLVCDEFGHIKLMNPQRSTVWYACDEFGHIKLMNPQRSTVWY"
	out := Mask(seq)
	require.False(t, strings.Contains(out, "X"))
}

func TestMaskShortSequenceUnchanged(t *testing.T) {
	seq := "MKL"
	require.Equal(t, seq, Mask(seq))
}
