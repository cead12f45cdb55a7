package consensus

import (
	"github.com/rubin-chain/corenode/chainhash"
	"github.com/rubin-chain/corenode/script"
	"github.com/rubin-chain/corenode/wire"
)

// DuplicateTxChecker is implemented by a UTXOSet that can answer
// whether any output of a given txid is currently unspent. ValidateBlock
// uses it to enforce BIP-30 (reject a block containing a transaction
// whose txid still has an unspent output) before BIP-34 makes such
// collisions practically impossible by embedding height in every
// coinbase scriptSig. A UTXOSet that can't answer this cheaply may
// simply not implement the interface; BIP-30 enforcement is then
// skipped for it.
type DuplicateTxChecker interface {
	HasUnspentOutput(txid chainhash.Sha256) bool
}

// ValidateBlock implements Block.validate from spec.md §4.6: verify the
// Merkle root, open a scratchpad over utxos at height, validate every
// non-coinbase transaction in order, then the coinbase, and return the
// scratchpad's diff. A non-nil error means the block is Invalid and
// its diff must be discarded — the scratchpad is never partially
// applied to the committed set. bip34Height gates the BIP-30
// duplicate-txid check, which only applies below that activation
// height.
func ValidateBlock(block *wire.Block, utxos UTXOSet, height uint64, bip34Height uint64, flags script.Flags) (UTXODiff, error) {
	if len(block.Txs) == 0 {
		return UTXODiff{}, consensusErr(ErrEmptyBlock, "block has no transactions")
	}

	txids := make([]chainhash.Sha256, len(block.Txs))
	for i := range block.Txs {
		txids[i] = block.Txs[i].TxID()
	}
	root, err := MerkleRoot(txids)
	if err != nil {
		return UTXODiff{}, err
	}
	if !root.Equal(block.Header.MerkleRoot) {
		return UTXODiff{}, consensusErr(ErrMerkleMismatch, "computed root %s != header root %s", root, block.Header.MerkleRoot)
	}

	if height < bip34Height {
		if checker, ok := utxos.(DuplicateTxChecker); ok {
			for i, txid := range txids {
				if checker.HasUnspentOutput(txid) {
					return UTXODiff{}, consensusErr(ErrBadCoinbase, "duplicate unspent txid %s before BIP-34 activation (tx %d)", txid, i)
				}
			}
		}
	}

	state := NewUTXOState(utxos, height)

	for i := 1; i < len(block.Txs); i++ {
		if err := ValidateTx(&block.Txs[i], txids[i], state, false, flags); err != nil {
			return UTXODiff{}, err
		}
	}

	if err := ValidateTx(&block.Txs[0], txids[0], state, true, flags); err != nil {
		return UTXODiff{}, err
	}

	return state.IntoDiff(), nil
}

// ValidateTx implements Tx.validate from spec.md §4.6, dispatching on
// isCoinbase.
func ValidateTx(tx *wire.Tx, txid chainhash.Sha256, state *UTXOState, isCoinbase bool, flags script.Flags) error {
	if isCoinbase {
		return validateCoinbaseTx(tx, txid, state)
	}
	return validateNonCoinbaseTx(tx, txid, state, flags)
}

func validateNonCoinbaseTx(tx *wire.Tx, txid chainhash.Sha256, state *UTXOState, flags script.Flags) error {
	if tx.IsCoinbase() {
		return consensusErr(ErrBadCoinbase, "coinbase-shaped transaction outside position 0")
	}
	if len(tx.TxIn) == 0 {
		return consensusErr(ErrParse, "transaction has no inputs")
	}

	var available uint64
	for i := range tx.TxIn {
		in := &tx.TxIn[i]
		id := UTXOID{Txid: in.PreviousOutPoint.Hash, Index: in.PreviousOutPoint.Index}
		entry, err := state.Spend(id)
		if err != nil {
			return err
		}

		engine := script.NewEngine(tx, i, flags)
		ok, err := engine.Execute(in.SignatureScript, entry.PkScript)
		if err != nil {
			return consensusErr(ErrScriptFailed, "input %d: %v", i, err)
		}
		if !ok {
			return consensusErr(ErrScriptFailed, "input %d: script did not leave a truthy top stack value", i)
		}

		var overflow bool
		available, overflow = addU64Checked(available, entry.Value)
		if overflow {
			return consensusErr(ErrValueConservation, "sum of input values overflows")
		}
	}

	for i := range tx.TxOut {
		out := &tx.TxOut[i]
		if out.Value > available {
			return consensusErr(ErrValueConservation, "output %d value %d exceeds remaining input value %d", i, out.Value, available)
		}
		available -= out.Value
		state.Create(UTXOID{Txid: txid, Index: uint32(i)}, Entry{
			Value:          out.Value,
			PkScript:       append([]byte(nil), out.PkScript...),
			CreationHeight: state.Height(),
		})
	}

	state.AddFee(available)
	return nil
}

func validateCoinbaseTx(tx *wire.Tx, txid chainhash.Sha256, state *UTXOState) error {
	if !tx.IsCoinbase() {
		return consensusErr(ErrBadCoinbase, "position-0 transaction is not a coinbase")
	}

	budget, overflow := addU64Checked(BlockSubsidy(state.Height()), state.AccumulatedFee())
	if overflow {
		return consensusErr(ErrSubsidyExceeded, "subsidy + fee overflows")
	}

	var spent uint64
	for i := range tx.TxOut {
		out := &tx.TxOut[i]
		var of bool
		spent, of = addU64Checked(spent, out.Value)
		if of || spent > budget {
			return consensusErr(ErrSubsidyExceeded, "coinbase output sum %d exceeds subsidy+fee budget %d", spent, budget)
		}
		state.Create(UTXOID{Txid: txid, Index: uint32(i)}, Entry{
			Value:             out.Value,
			PkScript:          append([]byte(nil), out.PkScript...),
			CreationHeight:    state.Height(),
			CreatedByCoinbase: true,
		})
	}
	return nil
}

func addU64Checked(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum < a
}
