package node

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubin-chain/corenode/chain"
	"github.com/rubin-chain/corenode/consensus"
	"github.com/rubin-chain/corenode/store"
)

func openTestStore(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoadChainWithEmptyStoreStartsAtGenesis(t *testing.T) {
	db := openTestStore(t)
	bdb, err := LoadChain(db, &chain.MainNetParams)
	require.NoError(t, err)
	require.Equal(t, uint64(0), bdb.Height())
	require.Equal(t, chain.GenesisHashHex, bdb.Tip().String())
}

func TestRebuildUTXOSetOnGenesisOnlyChain(t *testing.T) {
	db := openTestStore(t)
	bdb := chain.NewBlockDB(&chain.MainNetParams)

	require.NoError(t, RebuildUTXOSet(db, bdb, &chain.MainNetParams, nil))

	height, ok, err := db.TipHeight()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(0), height)

	genesisCoinbase := chain.Genesis().Txs[0]
	id := consensus.UTXOID{Txid: genesisCoinbase.TxID(), Index: 0}
	entry, ok := db.GetUTXO(id)
	require.True(t, ok, "genesis coinbase output must be committed to the utxo set")
	require.Equal(t, genesisCoinbase.TxOut[0].Value, entry.Value)
}
