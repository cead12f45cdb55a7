package script

import "github.com/rubin-chain/corenode/wire"

// cltvMaxNumSize matches the reference client's allowance for
// CHECKLOCKTIMEVERIFY's operand: locktimes can exceed the 4-byte range
// ordinary arithmetic opcodes accept.
const cltvMaxNumSize = 5

// execCheckLockTimeVerify implements OP_CHECKLOCKTIMEVERIFY (spec.md
// §4.5, "Locktime"): the top stack value must be non-negative, of the
// same kind (block-height vs. timestamp) as the transaction's
// abs_lock_time, and no greater than it; the spending input's sequence
// must not be final. The stack is left unchanged.
func (e *Engine) execCheckLockTimeVerify() error {
	top, err := e.stack.peekN(0)
	if err != nil {
		return err
	}
	want, err := scriptNumFromBytes(top, cltvMaxNumSize)
	if err != nil {
		return err
	}
	if want < 0 {
		return scriptErr(ErrCheckLockTimeVerify, "negative locktime operand")
	}

	if e.inIdx < 0 || e.inIdx >= len(e.tx.TxIn) {
		return scriptErr(ErrCheckLockTimeVerify, "input index out of range")
	}
	if e.tx.TxIn[e.inIdx].Sequence == wire.SequenceFinal {
		return scriptErr(ErrCheckLockTimeVerify, "CHECKLOCKTIMEVERIFY on final input")
	}

	wantTime := wire.LockTime(uint32(want))
	if wantTime.Kind() != e.tx.LockTime.Kind() {
		return scriptErr(ErrCheckLockTimeVerify, "locktime type mismatch")
	}
	if uint32(want) > uint32(e.tx.LockTime) {
		return scriptErr(ErrCheckLockTimeVerify, "locktime not yet reached")
	}
	return nil
}
