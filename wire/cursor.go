// Package wire implements serialization for the consensus-critical
// Bitcoin types: transactions, block headers, and blocks. Varint and
// fixed-width integer encoding follow the wire protocol exactly;
// non-consensus message types (addr, ping/pong, feefilter, ...) are an
// external collaborator's concern and are not modeled here.
package wire

import (
	"encoding/binary"
	"fmt"
)

// FrameError reports a malformed or truncated wire encoding. It is the
// taxonomy bucket spec.md §7 calls "Value" errors: the message or
// structure is dropped, not treated as a consensus fault.
type FrameError struct {
	Msg string
}

func (e *FrameError) Error() string { return "wire: " + e.Msg }

func frameErrf(format string, args ...any) error {
	return &FrameError{Msg: fmt.Sprintf(format, args...)}
}

// cursor reads sequentially from a fixed byte slice, tracking how many
// bytes have been consumed. It never allocates beyond the slices it
// returns, which alias the backing array.
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor { return &cursor{b: b} }

func (c *cursor) remaining() int {
	if c.pos >= len(c.b) {
		return 0
	}
	return len(c.b) - c.pos
}

func (c *cursor) readExact(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, frameErrf("truncated: need %d bytes, have %d", n, c.remaining())
	}
	start := c.pos
	c.pos += n
	return c.b[start:c.pos], nil
}

func (c *cursor) readU8() (uint8, error) {
	b, err := c.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readU16LE() (uint16, error) {
	b, err := c.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) readU32LE() (uint32, error) {
	b, err := c.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) readI32LE() (int32, error) {
	v, err := c.readU32LE()
	return int32(v), err
}

func (c *cursor) readU64LE() (uint64, error) {
	b, err := c.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) readVarInt() (uint64, error) {
	tag, err := c.readU8()
	if err != nil {
		return 0, err
	}
	switch {
	case tag < 0xfd:
		return uint64(tag), nil
	case tag == 0xfd:
		v, err := c.readU16LE()
		return uint64(v), err
	case tag == 0xfe:
		v, err := c.readU32LE()
		return uint64(v), err
	default:
		return c.readU64LE()
	}
}

func (c *cursor) readVarBytes(maxLen uint64) ([]byte, error) {
	n, err := c.readVarInt()
	if err != nil {
		return nil, err
	}
	if n > maxLen {
		return nil, frameErrf("varbytes length %d exceeds limit %d", n, maxLen)
	}
	raw, err := c.readExact(int(n))
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), raw...), nil
}

// MaxPayloadSize is the wire protocol's maximum framed message payload
// (32 MiB), used to bound varint-driven allocations when decoding.
const MaxPayloadSize = 32 * 1024 * 1024

// AppendVarInt appends n as a CompactSize-encoded varint to dst.
func AppendVarInt(dst []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(dst, byte(n))
	case n <= 0xffff:
		dst = append(dst, 0xfd)
		return appendU16LE(dst, uint16(n))
	case n <= 0xffffffff:
		dst = append(dst, 0xfe)
		return appendU32LE(dst, uint32(n))
	default:
		dst = append(dst, 0xff)
		return appendU64LE(dst, n)
	}
}

// VarIntSize returns the number of bytes AppendVarInt would append for
// n, without encoding it.
func VarIntSize(n uint64) int {
	switch {
	case n < 0xfd:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

func appendU16LE(dst []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

func appendU32LE(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

func appendI32LE(dst []byte, v int32) []byte { return appendU32LE(dst, uint32(v)) }

func appendU64LE(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

func appendVarBytes(dst []byte, b []byte) []byte {
	dst = AppendVarInt(dst, uint64(len(b)))
	return append(dst, b...)
}
