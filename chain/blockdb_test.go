package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubin-chain/corenode/chainhash"
)

func TestGenesisHashMatchesSpec(t *testing.T) {
	got := Genesis().BlockHash().String()
	require.Equal(t, GenesisHashHex, got)
}

func TestGenesisMerkleRootMatchesHeader(t *testing.T) {
	block := Genesis()
	got := block.Txs[0].TxID().String()
	require.Equal(t, GenesisMerkleRootHex, got)
	require.Equal(t, block.Header.MerkleRoot.String(), got)
}

func TestNewBlockDBStartsAtGenesis(t *testing.T) {
	db := NewBlockDB(&MainNetParams)
	require.Equal(t, uint64(0), db.Height())
	require.Equal(t, GenesisHashHex, db.Tip().String())
	require.Equal(t, 1, db.BlocksValidated(), "genesis counts as validated")

	wantTarget := CompactToTarget(0x1d00ffff)
	require.True(t, db.CurrentTarget().Equal(wantTarget))
}

func TestHeightOfTracksGenesis(t *testing.T) {
	db := NewBlockDB(&MainNetParams)
	height, ok := db.HeightOf(db.Tip())
	require.True(t, ok, "genesis hash must be indexed at height 0")
	require.Equal(t, uint64(0), height)

	_, ok = db.HeightOf(chainhash.Zero)
	require.False(t, ok, "an unknown hash must not resolve to a height")
}

func TestAcceptHeaderRejectsUnmetTarget(t *testing.T) {
	db := NewBlockDB(&MainNetParams)
	bad := db.headers[db.Tip()]
	bad.Nonce++ // a genesis copy with a bumped nonce: its hash no longer meets the target
	bad.PrevBlock = db.Tip()
	_, err := db.AcceptHeader(bad)
	require.Error(t, err, "expected rejection of a header that does not satisfy the target")
}

func TestAcceptHeaderRejectsBadBits(t *testing.T) {
	db := NewBlockDB(&MainNetParams)
	h := db.headers[db.Tip()]
	h.PrevBlock = db.Tip()
	h.Bits = 0x1d00fffe
	_, err := db.AcceptHeader(h)
	require.Error(t, err, "expected rejection of a header with the wrong bits")
}
