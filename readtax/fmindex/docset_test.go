package fmindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocSetAddReportsNewness(t *testing.T) {
	s := newDocSet(4)
	require.True(t, s.Add(3))
	require.False(t, s.Add(3))
	require.True(t, s.Add(7))
}

func TestDocSetGrowsWithoutLosingMembers(t *testing.T) {
	s := newDocSet(2)
	for i := 0; i < 100; i++ {
		require.True(t, s.Add(i))
	}
	for i := 0; i < 100; i++ {
		require.False(t, s.Add(i), "id %d should already be present", i)
	}
}
