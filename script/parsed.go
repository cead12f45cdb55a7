package script

import "encoding/binary"

// parsedOp is one opcode decoded from a Script, together with any
// pushed data and the byte offset (within the owning script) at which
// it started — the offset is what a later OP_CODESEPARATOR subscript
// computation needs.
type parsedOp struct {
	op     Op
	data   []byte
	offset int
}

// scriptCursor walks a raw Script byte sequence and yields parsedOp
// values one at a time (spec.md §9: "a small cursor structure (current
// offset + raw bytes) that produces a tagged opcode value").
type scriptCursor struct {
	b   []byte
	pos int
}

func newScriptCursor(b []byte) *scriptCursor { return &scriptCursor{b: b} }

func (c *scriptCursor) done() bool { return c.pos >= len(c.b) }

// next decodes the opcode at the cursor's current position and
// advances past it (and any data it pushes).
func (c *scriptCursor) next() (parsedOp, error) {
	start := c.pos
	if c.pos >= len(c.b) {
		return parsedOp{}, scriptErr(ErrInvalidPush, "read past end of script")
	}
	opByte := c.b[c.pos]
	c.pos++
	op := Op(opByte)

	switch {
	case opByte >= 0x01 && opByte <= 0x4b:
		n := int(opByte)
		data, err := c.readExact(n)
		if err != nil {
			return parsedOp{}, err
		}
		return parsedOp{op: op, data: data, offset: start}, nil
	case op == OP_PUSHDATA1:
		n, err := c.readU8()
		if err != nil {
			return parsedOp{}, err
		}
		data, err := c.readExact(int(n))
		if err != nil {
			return parsedOp{}, err
		}
		return parsedOp{op: op, data: data, offset: start}, nil
	case op == OP_PUSHDATA2:
		n, err := c.readU16LE()
		if err != nil {
			return parsedOp{}, err
		}
		data, err := c.readExact(int(n))
		if err != nil {
			return parsedOp{}, err
		}
		return parsedOp{op: op, data: data, offset: start}, nil
	case op == OP_PUSHDATA4:
		n, err := c.readU32LE()
		if err != nil {
			return parsedOp{}, err
		}
		data, err := c.readExact(int(n))
		if err != nil {
			return parsedOp{}, err
		}
		return parsedOp{op: op, data: data, offset: start}, nil
	default:
		return parsedOp{op: op, offset: start}, nil
	}
}

func (c *scriptCursor) readU8() (byte, error) {
	b, err := c.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *scriptCursor) readU16LE() (uint16, error) {
	b, err := c.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *scriptCursor) readU32LE() (uint32, error) {
	b, err := c.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *scriptCursor) readExact(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.b) {
		return nil, scriptErr(ErrInvalidPush, "push of %d bytes runs past end of script", n)
	}
	v := c.b[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// parseAll decodes every opcode in b in order. Used for subscript
// construction, which needs the full, already-decoded op stream rather
// than incremental execution.
func parseAll(b []byte) ([]parsedOp, error) {
	c := newScriptCursor(b)
	var ops []parsedOp
	for !c.done() {
		op, err := c.next()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
