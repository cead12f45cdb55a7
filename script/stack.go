package script

// stack is a LIFO of byte-string values; every data item on a Script
// stack is a byte string, with numeric and boolean opcodes imposing
// their own interpretation on top of that (spec.md §4.5).
type stack struct {
	items [][]byte
}

func (s *stack) depth() int { return len(s.items) }

func (s *stack) push(v []byte) { s.items = append(s.items, v) }

func (s *stack) pop() ([]byte, error) {
	if len(s.items) == 0 {
		return nil, scriptErr(ErrStackUnderflow, "pop from empty stack")
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

// peekN returns the item n from the top (0 is the top item) without
// popping it.
func (s *stack) peekN(n int) ([]byte, error) {
	idx := len(s.items) - 1 - n
	if idx < 0 || n < 0 {
		return nil, scriptErr(ErrStackUnderflow, "index %d out of range", n)
	}
	return s.items[idx], nil
}

// removeN removes and returns the item n from the top.
func (s *stack) removeN(n int) ([]byte, error) {
	idx := len(s.items) - 1 - n
	if idx < 0 || n < 0 {
		return nil, scriptErr(ErrStackUnderflow, "index %d out of range", n)
	}
	v := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return v, nil
}

// insertAt inserts v so that, after insertion, it sits n positions
// from the top.
func (s *stack) insertAt(n int, v []byte) error {
	idx := len(s.items) - n
	if idx < 0 || idx > len(s.items) {
		return scriptErr(ErrStackUnderflow, "insert index %d out of range", n)
	}
	s.items = append(s.items, nil)
	copy(s.items[idx+1:], s.items[idx:])
	s.items[idx] = v
	return nil
}

func (s *stack) popBool() (bool, error) {
	v, err := s.pop()
	if err != nil {
		return false, err
	}
	return isTruthy(v), nil
}

func (s *stack) popInt(maxSize int) (scriptNum, error) {
	v, err := s.pop()
	if err != nil {
		return 0, err
	}
	return scriptNumFromBytes(v, maxSize)
}

func (s *stack) pushBool(b bool) {
	if b {
		s.push([]byte{1})
	} else {
		s.push(nil)
	}
}

func (s *stack) pushInt(n scriptNum) { s.push(n.Bytes()) }

// isTruthy implements spec.md §4.5's truthiness rule: a value is
// truthy unless it is the empty byte-string or an integer zero (every
// byte is zero, except a single allowed trailing 0x80 "negative
// zero").
func isTruthy(v []byte) bool {
	for i, b := range v {
		if b == 0 {
			continue
		}
		if i == len(v)-1 && b == 0x80 {
			continue
		}
		return true
	}
	return false
}
