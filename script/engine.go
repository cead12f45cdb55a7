package script

import (
	"bytes"

	"github.com/rubin-chain/corenode/wire"
)

// Flags controls which BIP-gated opcode behaviors are active, decided
// by the caller from the current block height against the chain's
// activation heights (spec.md §6).
type Flags struct {
	// EnableCLTV makes OP_NOP2 behave as OP_CHECKLOCKTIMEVERIFY
	// instead of a no-op.
	EnableCLTV bool
}

// maxScriptElementSize bounds a single stack push, matching the
// reference client's 520-byte limit.
const maxScriptElementSize = 520

const maxOpsPerScript = 201

// Engine executes an unlock script followed by a lock script over one
// shared data stack, the shape spec.md §4.5 describes: "the unlock
// script runs first, then the lock script over the same stack."
type Engine struct {
	stack    stack
	altStack stack
	tx       *wire.Tx
	inIdx    int
	flags    Flags
	opCount  int
}

// NewEngine builds an Engine bound to the transaction input being
// verified. tx and inIdx identify the spending input; its unlock
// script and the referenced UTXO's lock script are supplied to
// Execute.
func NewEngine(tx *wire.Tx, inIdx int, flags Flags) *Engine {
	return &Engine{tx: tx, inIdx: inIdx, flags: flags}
}

// Execute runs unlockScript then lockScript over one stack and reports
// whether the result is accepted: the top stack value must be truthy
// after both scripts have run (spec.md §4.5).
func (e *Engine) Execute(unlockScript, lockScript []byte) (bool, error) {
	if err := e.run(unlockScript); err != nil {
		return false, err
	}
	if err := e.run(lockScript); err != nil {
		return false, err
	}
	if e.stack.depth() == 0 {
		return false, nil
	}
	top, err := e.stack.peekN(0)
	if err != nil {
		return false, err
	}
	return isTruthy(top), nil
}

// condState tracks one level of IF/NOTIF nesting: whether its branch
// is currently executing, and whether an OP_ELSE has already been seen
// for it.
type condState struct {
	executing bool
	sawElse   bool
	// parentExecuting remembers whether the enclosing branch (if any)
	// was executing, so a nested IF inside a skipped branch stays
	// skipped regardless of its own condition.
	parentExecuting bool
}

func (e *Engine) run(raw []byte) error {
	ops, err := parseAll(raw)
	if err != nil {
		return err
	}

	var conds []condState
	lastCodeSep := 0
	executing := func() bool {
		for _, c := range conds {
			if !c.executing {
				return false
			}
		}
		return true
	}

	for i, pop := range ops {
		e.opCount++
		if e.opCount > maxOpsPerScript && pop.op > OP_16 {
			return scriptErr(ErrStackUnderflow, "script exceeds op limit")
		}
		exec := executing()

		// Control-flow opcodes are evaluated even inside a skipped
		// branch (to find matching ELSE/ENDIF and track nesting depth);
		// everything else is a pure skip.
		switch pop.op {
		case OP_IF, OP_NOTIF:
			var cond bool
			if exec {
				v, err := e.stack.popBool()
				if err != nil {
					return err
				}
				if pop.op == OP_NOTIF {
					cond = !v
				} else {
					cond = v
				}
			}
			conds = append(conds, condState{executing: exec && cond, parentExecuting: exec})
			continue
		case OP_ELSE:
			if len(conds) == 0 {
				return scriptErr(ErrUnbalancedConditional, "ELSE without matching IF")
			}
			top := &conds[len(conds)-1]
			if top.sawElse {
				return scriptErr(ErrUnbalancedConditional, "multiple ELSE for one IF")
			}
			top.sawElse = true
			top.executing = top.parentExecuting && !top.executing
			continue
		case OP_ENDIF:
			if len(conds) == 0 {
				return scriptErr(ErrUnbalancedConditional, "ENDIF without matching IF")
			}
			conds = conds[:len(conds)-1]
			continue
		}

		if !exec {
			continue
		}

		if pop.data != nil && len(pop.data) > maxScriptElementSize {
			return scriptErr(ErrInvalidPush, "push exceeds %d bytes", maxScriptElementSize)
		}

		if disabledOpcodes[pop.op] {
			return scriptErr(ErrDisabledOpcode, "%s is disabled", pop.op)
		}
		if reservedOpcodes[pop.op] {
			return scriptErr(ErrReservedOpcode, "%s is reserved", pop.op)
		}

		if err := e.execOp(pop, raw, &lastCodeSep, i, ops); err != nil {
			return err
		}
	}

	if len(conds) != 0 {
		return scriptErr(ErrUnbalancedConditional, "unterminated IF at end of script")
	}
	return nil
}

// execOp dispatches one non-control opcode. raw/allOps/idx let
// OP_CODESEPARATOR and the CHECKSIG family locate the subscript.
func (e *Engine) execOp(pop parsedOp, raw []byte, lastCodeSep *int, idx int, allOps []parsedOp) error {
	s := &e.stack
	switch {
	case pop.op == OP_0:
		s.push(nil)
		return nil
	case byte(pop.op) >= 0x01 && byte(pop.op) <= 0x4b, pop.op == OP_PUSHDATA1, pop.op == OP_PUSHDATA2, pop.op == OP_PUSHDATA4:
		s.push(append([]byte(nil), pop.data...))
		return nil
	case pop.op == OP_1NEGATE:
		s.pushInt(-1)
		return nil
	case pop.op >= OP_1 && pop.op <= OP_16:
		s.pushInt(scriptNum(pop.op - OP_1 + 1))
		return nil
	}

	switch pop.op {
	case OP_NOP:
		return nil
	case OP_NOP1, OP_NOP4, OP_NOP5, OP_NOP6, OP_NOP7, OP_NOP8, OP_NOP9, OP_NOP10:
		return nil
	case OP_CHECKSEQUENCEVERIFY:
		return nil // CSV relative-locktime enforcement is out of scope (spec.md §1 non-goals).
	case OP_NOP2:
		if !e.flags.EnableCLTV {
			return nil
		}
		return e.execCheckLockTimeVerify()
	case OP_VERIFY:
		ok, err := s.popBool()
		if err != nil {
			return err
		}
		if !ok {
			return scriptErr(ErrVerifyFailed, "OP_VERIFY failed")
		}
		return nil
	case OP_RETURN:
		return scriptErr(ErrEarlyReturn, "OP_RETURN")
	case OP_CODESEPARATOR:
		*lastCodeSep = nextOffset(allOps, idx, raw)
		return nil
	case OP_CHECKSIG, OP_CHECKSIGVERIFY:
		return e.execCheckSig(pop.op == OP_CHECKSIGVERIFY, raw, *lastCodeSep)
	case OP_CHECKMULTISIG, OP_CHECKMULTISIGVERIFY:
		return e.execCheckMultisig(pop.op == OP_CHECKMULTISIGVERIFY, raw, *lastCodeSep)
	}

	if err := e.execStackOp(pop.op); err != nil {
		if err != errNotStackOp {
			return err
		}
	} else {
		return nil
	}

	if err := e.execNumericOp(pop.op); err != nil {
		if err != errNotNumericOp {
			return err
		}
	} else {
		return nil
	}

	if err := e.execCryptoOp(pop.op); err != nil {
		if err != errNotCryptoOp {
			return err
		}
	} else {
		return nil
	}

	return scriptErr(ErrReservedOpcode, "unhandled opcode %s", pop.op)
}

// nextOffset returns the byte offset immediately after the op at idx,
// i.e. where OP_CODESEPARATOR's effect begins.
func nextOffset(ops []parsedOp, idx int, raw []byte) int {
	if idx+1 < len(ops) {
		return ops[idx+1].offset
	}
	return len(raw)
}

// buildSubscript returns the lock script L restricted to the bytes
// from fromOffset onward, with every OP_CODESEPARATOR removed and
// every pushdata equal to sigBytes deleted — spec.md §4.5.1's
// "Subscript" construction.
func buildSubscript(script []byte, fromOffset int, sigBytes []byte) ([]byte, error) {
	if fromOffset > len(script) {
		fromOffset = len(script)
	}
	sub := script[fromOffset:]
	ops, err := parseAll(sub)
	if err != nil {
		return nil, err
	}
	var out []byte
	for i, op := range ops {
		end := len(sub)
		if i+1 < len(ops) {
			end = ops[i+1].offset
		}
		if op.op == OP_CODESEPARATOR {
			continue
		}
		if len(sigBytes) > 0 && op.data != nil && bytes.Equal(op.data, sigBytes) {
			continue
		}
		out = append(out, sub[op.offset:end]...)
	}
	return out, nil
}
