package node

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubin-chain/corenode/chainhash"
	"github.com/rubin-chain/corenode/wire"
)

func txWithID(id byte) (*wire.Tx, chainhash.Sha256) {
	tx := &wire.Tx{
		Version: 1,
		TxIn: []wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{Index: uint32(id)},
			Sequence:         wire.SequenceFinal,
		}},
		TxOut: []wire.TxOut{{Value: 1}},
	}
	return tx, tx.TxID()
}

func TestMempoolAddGetRemove(t *testing.T) {
	m := newMempool()
	tx, txid := txWithID(1)

	_, ok := m.Get(txid)
	require.False(t, ok)
	require.Equal(t, 0, m.Count())

	m.Add(txid, tx)
	got, ok := m.Get(txid)
	require.True(t, ok)
	require.Same(t, tx, got)
	require.Equal(t, 1, m.Count())

	m.Remove(txid)
	_, ok = m.Get(txid)
	require.False(t, ok)
	require.Equal(t, 0, m.Count())
}

func TestMempoolRemoveMined(t *testing.T) {
	m := newMempool()
	tx1, id1 := txWithID(1)
	tx2, id2 := txWithID(2)
	m.Add(id1, tx1)
	m.Add(id2, tx2)
	require.Equal(t, 2, m.Count())

	m.RemoveMined([]chainhash.Sha256{id1})
	require.Equal(t, 1, m.Count())
	_, ok := m.Get(id1)
	require.False(t, ok)
	_, ok = m.Get(id2)
	require.True(t, ok)
}
