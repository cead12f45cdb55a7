package node

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rubin-chain/corenode/chain"
	"github.com/rubin-chain/corenode/p2p"
	"github.com/rubin-chain/corenode/wire"
)

func newTestNode(t *testing.T) *Node {
	t.Helper()
	n := New(DefaultConfig(), &chain.MainNetParams, nil, nil)
	stop := make(chan struct{})
	go n.Run(stop)
	t.Cleanup(func() { close(stop) })
	return n
}

func TestCommandHelp(t *testing.T) {
	n := newTestNode(t)
	result := n.Command("help")
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "count mempool")
}

func TestCommandUnknown(t *testing.T) {
	n := newTestNode(t)
	result := n.Command("frobnicate")
	require.Error(t, result.Err)
}

func TestCommandDBReportsGenesisTip(t *testing.T) {
	n := newTestNode(t)
	result := n.Command("db")
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, `"height":0`)
	require.Contains(t, result.Output, chain.GenesisHashHex)
}

func TestCommandCountMempoolStartsEmpty(t *testing.T) {
	n := newTestNode(t)
	result := n.Command("count", "mempool")
	require.NoError(t, result.Err)
	require.Equal(t, "0", result.Output)
}

func TestCommandCountBadUsage(t *testing.T) {
	n := newTestNode(t)
	result := n.Command("count")
	require.Error(t, result.Err)
}

func TestSubmitTxMessagePopulatesMempool(t *testing.T) {
	n := newTestNode(t)

	tx := &wire.Tx{
		Version: 1,
		TxIn: []wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{Index: 0xffffffff},
			Sequence:         wire.SequenceFinal,
		}},
		TxOut: []wire.TxOut{{Value: 5000}},
	}
	n.SubmitMessage("peer0", &p2p.Envelope{Command: "tx", Payload: tx.Serialize()})

	require.Eventually(t, func() bool {
		return n.Command("count", "mempool").Output == "1"
	}, time.Second, 5*time.Millisecond)

	txid := tx.TxID()
	result := n.Command("tx", txid.String())
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, txid.String())
}

func TestSubmitMalformedTxIsNotAdmitted(t *testing.T) {
	n := newTestNode(t)
	n.SubmitMessage("peer0", &p2p.Envelope{Command: "tx", Payload: []byte{0xff}})

	require.Eventually(t, func() bool {
		result := n.Command("count", "mempool")
		return result.Output == "0"
	}, time.Second, 5*time.Millisecond)
}

func TestExitCommandShutsDownRun(t *testing.T) {
	n := New(DefaultConfig(), &chain.MainNetParams, nil, nil)
	stop := make(chan struct{})
	go n.Run(stop)

	result := n.Command("exit")
	require.NoError(t, result.Err)

	select {
	case <-n.Done():
	case <-time.After(time.Second):
		t.Fatal("Run did not return after an exit command")
	}
}
