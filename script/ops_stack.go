package script

import "errors"

// errNotStackOp signals to execOp's dispatch chain that pop.op is not
// a stack-manipulation opcode, not a genuine failure.
var errNotStackOp = errors.New("not a stack op")

func (e *Engine) execStackOp(op Op) error {
	s := &e.stack
	switch op {
	case OP_TOALTSTACK:
		v, err := s.pop()
		if err != nil {
			return err
		}
		e.altStack.push(v)
	case OP_FROMALTSTACK:
		v, err := e.altStack.pop()
		if err != nil {
			return scriptErr(ErrStackUnderflow, "FROMALTSTACK: alt stack empty")
		}
		s.push(v)
	case OP_DEPTH:
		s.pushInt(scriptNum(s.depth()))
	case OP_DROP:
		if _, err := s.pop(); err != nil {
			return err
		}
	case OP_2DROP:
		if _, err := s.pop(); err != nil {
			return err
		}
		if _, err := s.pop(); err != nil {
			return err
		}
	case OP_DUP:
		v, err := s.peekN(0)
		if err != nil {
			return err
		}
		s.push(append([]byte(nil), v...))
	case OP_2DUP:
		a, err := s.peekN(1)
		if err != nil {
			return err
		}
		b, err := s.peekN(0)
		if err != nil {
			return err
		}
		s.push(append([]byte(nil), a...))
		s.push(append([]byte(nil), b...))
	case OP_3DUP:
		a, err := s.peekN(2)
		if err != nil {
			return err
		}
		b, err := s.peekN(1)
		if err != nil {
			return err
		}
		c, err := s.peekN(0)
		if err != nil {
			return err
		}
		s.push(append([]byte(nil), a...))
		s.push(append([]byte(nil), b...))
		s.push(append([]byte(nil), c...))
	case OP_OVER:
		v, err := s.peekN(1)
		if err != nil {
			return err
		}
		s.push(append([]byte(nil), v...))
	case OP_2OVER:
		a, err := s.peekN(3)
		if err != nil {
			return err
		}
		b, err := s.peekN(2)
		if err != nil {
			return err
		}
		s.push(append([]byte(nil), a...))
		s.push(append([]byte(nil), b...))
	case OP_SWAP:
		a, err := s.removeN(1)
		if err != nil {
			return err
		}
		s.push(a)
	case OP_2SWAP:
		a, err := s.removeN(3)
		if err != nil {
			return err
		}
		b, err := s.removeN(2)
		if err != nil {
			return err
		}
		s.push(a)
		s.push(b)
	case OP_ROT:
		v, err := s.removeN(2)
		if err != nil {
			return err
		}
		s.push(v)
	case OP_2ROT:
		v, err := s.removeN(5)
		if err != nil {
			return err
		}
		w, err := s.removeN(4)
		if err != nil {
			return err
		}
		s.push(v)
		s.push(w)
	case OP_NIP:
		if _, err := s.removeN(1); err != nil {
			return err
		}
	case OP_PICK, OP_ROLL:
		n, err := s.popInt(defaultMaxNumSize)
		if err != nil {
			return err
		}
		if n < 0 {
			return scriptErr(ErrInvalidPush, "negative PICK/ROLL index")
		}
		var v []byte
		if op == OP_PICK {
			v, err = s.peekN(int(n))
		} else {
			v, err = s.removeN(int(n))
		}
		if err != nil {
			return err
		}
		s.push(append([]byte(nil), v...))
	case OP_TUCK:
		top, err := s.peekN(0)
		if err != nil {
			return err
		}
		if err := s.insertAt(2, append([]byte(nil), top...)); err != nil {
			return err
		}
	case OP_IFDUP:
		v, err := s.peekN(0)
		if err != nil {
			return err
		}
		if isTruthy(v) {
			s.push(append([]byte(nil), v...))
		}
	case OP_SIZE:
		v, err := s.peekN(0)
		if err != nil {
			return err
		}
		s.pushInt(scriptNum(len(v)))
	default:
		return errNotStackOp
	}
	return nil
}
