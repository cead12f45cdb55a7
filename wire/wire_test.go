package wire

import (
	"bytes"
	"testing"

	"github.com/rubin-chain/corenode/chainhash"
)

func TestVarIntRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, 1 << 63}
	for _, n := range cases {
		enc := AppendVarInt(nil, n)
		if len(enc) != VarIntSize(n) {
			t.Fatalf("VarIntSize(%d) = %d, encoded length %d", n, VarIntSize(n), len(enc))
		}
		c := newCursor(enc)
		got, err := c.readVarInt()
		if err != nil {
			t.Fatalf("readVarInt(%d): %v", n, err)
		}
		if got != n {
			t.Fatalf("round trip %d -> %d", n, got)
		}
	}
}

func TestTxSerializeRoundTrip(t *testing.T) {
	tx := &Tx{
		Version: 1,
		TxIn: []TxIn{{
			PreviousOutPoint: OutPoint{Hash: chainhash.Zero, Index: 0xffffffff},
			SignatureScript:  []byte{0x01, 0x02},
			Sequence:         SequenceFinal,
		}},
		TxOut: []TxOut{
			{Value: 5000000000, PkScript: []byte{0x76, 0xa9}},
		},
		LockTime: 0,
	}
	enc := tx.Serialize()
	back, err := DeserializeTx(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back.Serialize(), enc) {
		t.Fatal("round trip mismatch")
	}
	if back.TxOut[0].Value != 5000000000 {
		t.Fatalf("value mismatch: %d", back.TxOut[0].Value)
	}
}

func TestSegwitTxPreservesNonWitnessTxID(t *testing.T) {
	tx := &Tx{
		Version: 2,
		SegWit:  true,
		TxIn: []TxIn{{
			PreviousOutPoint: OutPoint{Hash: chainhash.Zero, Index: 1},
			SignatureScript:  nil,
			Witness:          [][]byte{{0xde, 0xad}},
			Sequence:         SequenceFinal,
		}},
		TxOut:    []TxOut{{Value: 1, PkScript: []byte{0x51}}},
		LockTime: 0,
	}
	enc := tx.Serialize()
	back, err := DeserializeTx(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !back.SegWit {
		t.Fatal("expected segwit flag to round-trip")
	}
	if back.TxID() != tx.TxID() {
		t.Fatal("txid must exclude witness data")
	}
	if len(back.TxIn[0].Witness) != 1 || back.TxIn[0].Witness[0][1] != 0xad {
		t.Fatal("witness data did not round-trip")
	}
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	h := &BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Zero,
		MerkleRoot: chainhash.Zero,
		Timestamp:  1231006505,
		Bits:       0x1d00ffff,
		Nonce:      2083236893,
	}
	enc := h.Serialize()
	if len(enc) != HeaderSize {
		t.Fatalf("header serialization length = %d, want %d", len(enc), HeaderSize)
	}
	back, err := DeserializeBlockHeader(enc)
	if err != nil {
		t.Fatal(err)
	}
	if back.Nonce != h.Nonce || back.Bits != h.Bits {
		t.Fatal("round trip mismatch")
	}
}

func TestLockTimeKind(t *testing.T) {
	if LockTime(0).Kind() != LockTimeNone {
		t.Fatal("zero should be none")
	}
	if LockTime(500).Kind() != LockTimeBlockHeight {
		t.Fatal("below threshold should be a block height")
	}
	if LockTime(500000000).Kind() != LockTimeUnixTimestamp {
		t.Fatal("at threshold should be a unix timestamp")
	}
}
