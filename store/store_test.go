package store

import (
	"testing"

	"github.com/rubin-chain/corenode/chain"
	"github.com/rubin-chain/corenode/consensus"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestHeaderRoundTrip(t *testing.T) {
	db := openTestDB(t)
	genesis := chain.Genesis()
	hash := genesis.BlockHash()

	if err := db.PutHeader(hash, genesis.Header); err != nil {
		t.Fatalf("PutHeader: %v", err)
	}
	got, ok, err := db.GetHeader(hash)
	if err != nil || !ok {
		t.Fatalf("GetHeader: ok=%v err=%v", ok, err)
	}
	if got.BlockHash() != hash {
		t.Fatalf("round-tripped header hashes to %s, want %s", got.BlockHash(), hash)
	}
}

func TestBlockRoundTrip(t *testing.T) {
	db := openTestDB(t)
	genesis := chain.Genesis()
	hash := genesis.BlockHash()

	if err := db.PutBlock(hash, genesis); err != nil {
		t.Fatalf("PutBlock: %v", err)
	}
	got, ok, err := db.GetBlock(hash)
	if err != nil || !ok {
		t.Fatalf("GetBlock: ok=%v err=%v", ok, err)
	}
	if len(got.Txs) != len(genesis.Txs) {
		t.Fatalf("round-tripped block has %d txs, want %d", len(got.Txs), len(genesis.Txs))
	}
}

func TestUTXOCommitAndQuery(t *testing.T) {
	db := openTestDB(t)
	genesis := chain.Genesis()
	txid := genesis.Txs[0].TxID()
	id := consensus.UTXOID{Txid: txid, Index: 0}
	entry := consensus.Entry{Value: 5000000000, PkScript: genesis.Txs[0].TxOut[0].PkScript, CreatedByCoinbase: true}

	diff := consensus.UTXODiff{Added: map[consensus.UTXOID]consensus.Entry{id: entry}}
	if err := db.CommitDiff(diff); err != nil {
		t.Fatalf("CommitDiff: %v", err)
	}

	got, ok := db.Get(id)
	if !ok {
		t.Fatalf("expected utxo %v to be present after commit", id)
	}
	if got.Value != entry.Value {
		t.Fatalf("value = %d, want %d", got.Value, entry.Value)
	}
	if !db.HasUnspentOutput(txid) {
		t.Fatalf("expected HasUnspentOutput true for %s", txid)
	}

	removeDiff := consensus.UTXODiff{Removed: []consensus.UTXOID{id}}
	if err := db.CommitDiff(removeDiff); err != nil {
		t.Fatalf("CommitDiff remove: %v", err)
	}
	if _, ok := db.Get(id); ok {
		t.Fatalf("expected utxo removed after commit")
	}
}

func TestTipHeightPersistence(t *testing.T) {
	db := openTestDB(t)
	if _, ok, err := db.TipHeight(); err != nil || ok {
		t.Fatalf("expected no persisted tip height yet, ok=%v err=%v", ok, err)
	}
	if err := db.SetTipHeight(42); err != nil {
		t.Fatalf("SetTipHeight: %v", err)
	}
	height, ok, err := db.TipHeight()
	if err != nil || !ok || height != 42 {
		t.Fatalf("TipHeight = (%d, %v, %v), want (42, true, nil)", height, ok, err)
	}
}
