package node

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubin-chain/corenode/chain"
)

func TestCommandHeaderByHeight(t *testing.T) {
	n := newTestNode(t)
	result := n.Command("header", "0")
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, chain.GenesisHashHex)
}

func TestCommandHeaderByHash(t *testing.T) {
	n := newTestNode(t)
	result := n.Command("header", chain.GenesisHashHex)
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, chain.GenesisHashHex)
}

func TestCommandHeaderUnknownID(t *testing.T) {
	n := newTestNode(t)
	result := n.Command("header", "99999")
	require.Error(t, result.Err)
}

func TestCommandBlockRequiresStore(t *testing.T) {
	n := newTestNode(t)
	result := n.Command("block", "0")
	require.Error(t, result.Err)
}

func TestCommandSavePersistsGenesis(t *testing.T) {
	db := openTestStore(t)
	n := NewWithChain(DefaultConfig(), chain.NewBlockDB(&chain.MainNetParams), &chain.MainNetParams, db, nil)
	stop := make(chan struct{})
	go n.Run(stop)
	t.Cleanup(func() { close(stop) })

	result := n.Command("save")
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, `"saved_headers":1`)

	hash, ok, err := db.HashAtHeight(0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, chain.GenesisHashHex, hash.String())
}

func TestCommandTxUnknown(t *testing.T) {
	n := newTestNode(t)
	result := n.Command("tx", chain.GenesisHashHex)
	require.Error(t, result.Err)
}
