// Package p2p frames the Bitcoin wire protocol's magic-prefixed
// messages and validates the subset spec.md §6 marks consensus-
// relevant (headers, block, and the getheaders locator construction
// that drives them). Socket management, the version/verack handshake,
// and every non-validation message's payload shape are named external
// collaborators (spec.md §1) and are not implemented here.
package p2p

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/rubin-chain/corenode/hash"
)

// MainNetMagic is the four-byte network identifier prefixing every
// framed message on mainnet (spec.md §6): serialized little-endian,
// this produces the wire byte sequence 0xF9 0xBE 0xB4 0xD9.
const MainNetMagic uint32 = 0xD9B4BEF9

// CommandSize is the fixed width of a message's NUL-padded ASCII
// command name.
const CommandSize = 12

// HeaderSize is magic(4) + command(12) + length(4) + checksum(4).
const HeaderSize = 4 + CommandSize + 4 + 4

// MaxPayloadSize bounds a single message's payload (spec.md §6).
const MaxPayloadSize = 32 * 1024 * 1024

// Envelope is one decoded frame: command name and raw payload bytes.
// Decoding the payload into a concrete message type (Tx, Block,
// headers list, ...) is the caller's job.
type Envelope struct {
	Command string
	Payload []byte
}

// ReadError classifies a framing failure per spec.md §7's "Network"
// bucket: Disconnect means the peer's reader thread must terminate;
// otherwise the single offending message is simply dropped and the
// connection continues.
type ReadError struct {
	Err        error
	Disconnect bool
}

func (e *ReadError) Error() string { return e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

func readErr(disconnect bool, format string, args ...any) *ReadError {
	return &ReadError{Err: fmt.Errorf(format, args...), Disconnect: disconnect}
}

// checksum4 is the first four bytes of hash256(payload), the wire
// protocol's message checksum.
func checksum4(payload []byte) [4]byte {
	d := hash.Sum256d(payload)
	var out [4]byte
	copy(out[:], d[:4])
	return out
}

func encodeCommand(cmd string) ([CommandSize]byte, error) {
	var out [CommandSize]byte
	if cmd == "" || len(cmd) > CommandSize {
		return out, fmt.Errorf("p2p: command %q has invalid length", cmd)
	}
	copy(out[:], cmd)
	return out, nil
}

func decodeCommand(b [CommandSize]byte) string {
	n := CommandSize
	for i, c := range b {
		if c == 0 {
			n = i
			break
		}
	}
	return string(b[:n])
}

// WriteEnvelope frames and writes one message to w.
func WriteEnvelope(w io.Writer, magic uint32, command string, payload []byte) error {
	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("p2p: payload of %d bytes exceeds max %d", len(payload), MaxPayloadSize)
	}
	cmd, err := encodeCommand(command)
	if err != nil {
		return err
	}
	var hdr [HeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], magic)
	copy(hdr[4:4+CommandSize], cmd[:])
	binary.LittleEndian.PutUint32(hdr[16:20], uint32(len(payload)))
	sum := checksum4(payload)
	copy(hdr[20:24], sum[:])

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err = w.Write(payload)
	return err
}

// ReadEnvelope reads exactly one framed message from r, validating
// magic, declared length, and checksum.
func ReadEnvelope(r io.Reader, expectedMagic uint32) (*Envelope, *ReadError) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, readErr(true, "p2p: read header: %w", err)
	}

	magic := binary.LittleEndian.Uint32(hdr[0:4])
	if magic != expectedMagic {
		return nil, readErr(true, "p2p: magic %#08x != expected %#08x", magic, expectedMagic)
	}

	var cmdBytes [CommandSize]byte
	copy(cmdBytes[:], hdr[4:4+CommandSize])
	command := decodeCommand(cmdBytes)

	length := binary.LittleEndian.Uint32(hdr[16:20])
	if length > MaxPayloadSize {
		return nil, readErr(true, "p2p: declared payload length %d exceeds max %d", length, MaxPayloadSize)
	}

	var wantChecksum [4]byte
	copy(wantChecksum[:], hdr[20:24])

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, readErr(true, "p2p: read payload: %w", err)
		}
	}

	if command == "" {
		return nil, readErr(false, "p2p: empty command")
	}

	gotChecksum := checksum4(payload)
	if gotChecksum != wantChecksum {
		return nil, readErr(false, "p2p: checksum mismatch for %q", command)
	}

	return &Envelope{Command: command, Payload: payload}, nil
}
