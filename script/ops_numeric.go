package script

import "errors"

var errNotNumericOp = errors.New("not a numeric op")

func (e *Engine) execNumericOp(op Op) error {
	s := &e.stack
	switch op {
	case OP_1ADD, OP_1SUB, OP_NEGATE, OP_ABS, OP_NOT, OP_0NOTEQUAL:
		n, err := s.popInt(defaultMaxNumSize)
		if err != nil {
			return err
		}
		switch op {
		case OP_1ADD:
			n = n + 1
		case OP_1SUB:
			n = n - 1
		case OP_NEGATE:
			n = -n
		case OP_ABS:
			if n < 0 {
				n = -n
			}
		case OP_NOT:
			n = boolScriptNum(n == 0)
		case OP_0NOTEQUAL:
			n = boolScriptNum(n != 0)
		}
		s.pushInt(n)
	case OP_ADD, OP_SUB, OP_BOOLAND, OP_BOOLOR, OP_NUMEQUAL, OP_NUMEQUALVERIFY,
		OP_NUMNOTEQUAL, OP_LESSTHAN, OP_GREATERTHAN, OP_LESSTHANOREQUAL,
		OP_GREATERTHANOREQUAL, OP_MIN, OP_MAX:
		b, err := s.popInt(defaultMaxNumSize)
		if err != nil {
			return err
		}
		a, err := s.popInt(defaultMaxNumSize)
		if err != nil {
			return err
		}
		var result scriptNum
		switch op {
		case OP_ADD:
			result = a + b
		case OP_SUB:
			result = a - b
		case OP_BOOLAND:
			result = boolScriptNum(a != 0 && b != 0)
		case OP_BOOLOR:
			result = boolScriptNum(a != 0 || b != 0)
		case OP_NUMEQUAL, OP_NUMEQUALVERIFY:
			result = boolScriptNum(a == b)
		case OP_NUMNOTEQUAL:
			result = boolScriptNum(a != b)
		case OP_LESSTHAN:
			result = boolScriptNum(a < b)
		case OP_GREATERTHAN:
			result = boolScriptNum(a > b)
		case OP_LESSTHANOREQUAL:
			result = boolScriptNum(a <= b)
		case OP_GREATERTHANOREQUAL:
			result = boolScriptNum(a >= b)
		case OP_MIN:
			if a < b {
				result = a
			} else {
				result = b
			}
		case OP_MAX:
			if a > b {
				result = a
			} else {
				result = b
			}
		}
		if op == OP_NUMEQUALVERIFY {
			if result == 0 {
				return scriptErr(ErrNumEqualVerifyFailed, "NUMEQUALVERIFY failed")
			}
			return nil
		}
		s.pushInt(result)
	case OP_WITHIN:
		max, err := s.popInt(defaultMaxNumSize)
		if err != nil {
			return err
		}
		min, err := s.popInt(defaultMaxNumSize)
		if err != nil {
			return err
		}
		x, err := s.popInt(defaultMaxNumSize)
		if err != nil {
			return err
		}
		s.pushBool(x >= min && x < max)
	default:
		return errNotNumericOp
	}
	return nil
}

func boolScriptNum(b bool) scriptNum {
	if b {
		return 1
	}
	return 0
}
