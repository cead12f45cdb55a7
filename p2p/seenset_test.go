package p2p

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubin-chain/corenode/chainhash"
)

func TestSeenSetTracksAndEvicts(t *testing.T) {
	s := NewSeenSet(2)

	a := chainhash.Sum256d([]byte("a"))
	b := chainhash.Sum256d([]byte("b"))
	c := chainhash.Sum256d([]byte("c"))

	require.False(t, s.Seen(a))
	s.Add(a)
	require.True(t, s.Seen(a))

	s.Add(b)
	s.Add(c) // evicts a, the least recently touched entry

	require.False(t, s.Seen(a))
	require.True(t, s.Seen(b))
	require.True(t, s.Seen(c))
}
