package script

import (
	"github.com/rubin-chain/corenode/bigint"
	"github.com/rubin-chain/corenode/chainhash"
	"github.com/rubin-chain/corenode/wire"
)

const (
	sighashAllMask      = 0x1f
	sighashNoneValue    = 0x02
	sighashSingle       = 0x03
	sighashAnyoneCanPay byte = 0x80
)

// oneHash is the hardcoded sighash the reference client returns for
// SIGHASH_SINGLE when the input index has no corresponding output —
// spec.md §4.5.1 requires this exact, otherwise-nonsensical constant be
// reproduced byte for byte.
var oneHash = bigint.Uint256FromBytes32([32]byte{1})

// calcSignatureHash builds the digest that OP_CHECKSIG/OP_CHECKMULTISIG
// verify against, per spec.md §4.5.1: clone the transaction, shape its
// inputs/outputs according to the hash_type bits, substitute the
// subscript into the input being checked, then double-SHA-256 the
// result with hash_type appended as a little-endian u32.
func calcSignatureHash(tx *wire.Tx, inIdx int, subscript []byte, hashType byte) bigint.Uint256 {
	sighashNone := hashType&sighashAllMask == sighashNoneValue
	sighashSingleType := hashType&sighashAllMask == sighashSingle
	anyoneCanPay := hashType&sighashAnyoneCanPay != 0

	if sighashSingleType && inIdx >= len(tx.TxOut) {
		return oneHash
	}

	t := tx.Copy()

	if sighashNone {
		t.TxOut = nil
	} else if sighashSingleType {
		t.TxOut = t.TxOut[:inIdx+1]
		for i := 0; i < inIdx; i++ {
			t.TxOut[i] = wire.TxOut{Value: ^uint64(0), PkScript: nil}
		}
	}

	for j := range t.TxIn {
		if j != inIdx {
			t.TxIn[j].SignatureScript = nil
		}
		if j != inIdx && (sighashNone || sighashSingleType) {
			t.TxIn[j].Sequence = 0
		}
	}
	t.TxIn[inIdx].SignatureScript = subscript

	if anyoneCanPay {
		t.TxIn = []wire.TxIn{t.TxIn[inIdx]}
	}

	preimage := t.SerializeNonWitness()
	preimage = append(preimage, byte(hashType), 0, 0, 0)
	digest := chainhash.Sum256d(preimage)
	// ECDSA reads the digest bytes as a big-endian integer.
	return bigint.Uint256FromBytes32(digest.Bytes())
}
