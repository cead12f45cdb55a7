package script

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubin-chain/corenode/wire"
)

func mustPush(b []byte) []byte {
	if len(b) == 0 {
		return []byte{byte(OP_0)}
	}
	if len(b) <= 0x4b {
		return append([]byte{byte(len(b))}, b...)
	}
	panic("mustPush: payload too large for this test helper")
}

func le32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func numBytes(n int64) []byte {
	v := scriptNum(n)
	return v.Bytes()
}

func dummyTx() *wire.Tx {
	return &wire.Tx{
		Version: 1,
		TxIn: []wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{Index: 0xffffffff},
			Sequence:         wire.SequenceFinal,
		}},
		TxOut: []wire.TxOut{{Value: 1}},
	}
}

func runScript(t *testing.T, lockScript []byte) (bool, error) {
	t.Helper()
	e := NewEngine(dummyTx(), 0, Flags{})
	return e.Execute(nil, lockScript)
}

// TestConditionalExecutionTruthy matches spec.md §8: <4 bytes 0x64000000>
// IF <push 123456789> ELSE OP_0 ENDIF finalizes to 123456789.
func TestConditionalExecutionTruthy(t *testing.T) {
	var lock []byte
	lock = append(lock, mustPush(le32(0x64))...)
	lock = append(lock, byte(OP_IF))
	lock = append(lock, mustPush(numBytes(123456789))...)
	lock = append(lock, byte(OP_ELSE))
	lock = append(lock, byte(OP_0))
	lock = append(lock, byte(OP_ENDIF))

	ok, err := runScript(t, lock)
	require.NoError(t, err)
	require.True(t, ok, "expected truthy result")
}

// TestConditionalExecutionFalsey substitutes OP_0 for the initial push,
// which must finalize to empty/false.
func TestConditionalExecutionFalsey(t *testing.T) {
	var lock []byte
	lock = append(lock, byte(OP_0))
	lock = append(lock, byte(OP_IF))
	lock = append(lock, mustPush(numBytes(123456789))...)
	lock = append(lock, byte(OP_ELSE))
	lock = append(lock, byte(OP_0))
	lock = append(lock, byte(OP_ENDIF))

	ok, err := runScript(t, lock)
	require.NoError(t, err)
	require.False(t, ok, "expected falsey result")
}

// TestDisabledOpcodeExecutedBranch: a disabled opcode reached in an
// executed branch invalidates the script (spec.md §8 fault scenarios).
func TestDisabledOpcodeExecutedBranch(t *testing.T) {
	lock := []byte{byte(OP_1), byte(OP_IF), byte(OP_CAT), byte(OP_ENDIF)}
	_, err := runScript(t, lock)
	require.Error(t, err)
	serr, ok := err.(*Error)
	require.True(t, ok, "expected a *Error, got %T", err)
	require.Equal(t, ErrDisabledOpcode, serr.Code)
}

// TestDisabledOpcodeSkippedBranch: the same opcode in a skipped branch
// has no effect.
func TestDisabledOpcodeSkippedBranch(t *testing.T) {
	lock := []byte{byte(OP_0), byte(OP_IF), byte(OP_CAT), byte(OP_ELSE), byte(OP_1), byte(OP_ENDIF)}
	ok, err := runScript(t, lock)
	require.NoError(t, err)
	require.True(t, ok, "expected truthy result from the else branch")
}

// TestEmptyTopStackInvalid: an input's unlock ∘ lock leaving an empty
// top-of-stack is invalid.
func TestEmptyTopStackInvalid(t *testing.T) {
	e := NewEngine(dummyTx(), 0, Flags{})
	ok, err := e.Execute(nil, []byte{byte(OP_0)})
	require.NoError(t, err)
	require.False(t, ok, "expected empty top stack to be falsey")
}

func TestEqualIdenticalPushes(t *testing.T) {
	lock := append([]byte{}, mustPush([]byte("abc"))...)
	lock = append(lock, mustPush([]byte("abc"))...)
	lock = append(lock, byte(OP_EQUAL))
	ok, err := runScript(t, lock)
	require.NoError(t, err)
	require.True(t, ok, "expected EQUAL to succeed on identical pushes")
}
