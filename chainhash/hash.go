// Package chainhash defines the Sha256 digest type shared by every
// consensus-critical identifier: txids, block hashes, and Merkle
// nodes. It wraps hash.Sum256d (double SHA-256) and presents the
// big-endian, byte-reversed hex display that block explorers and the
// wire protocol's inventory vectors both use.
package chainhash

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rubin-chain/corenode/bigint"
	"github.com/rubin-chain/corenode/hash"
)

// Size is the digest length in bytes.
const Size = 32

// Sha256 is an immutable 256-bit digest, stored as eight 32-bit words
// in the same little-endian, in-memory order used throughout the wire
// protocol (least significant byte first). Its String/Display form
// reverses that order, matching how block explorers print txids and
// block hashes.
type Sha256 struct {
	words [8]uint32
}

// Zero is the all-zero digest, used as the sentinel previous-txid of a
// coinbase input.
var Zero Sha256

// FromBytes builds a Sha256 from a 32-byte slice in wire (little-endian)
// order. It returns an error if b is not exactly 32 bytes.
func FromBytes(b []byte) (Sha256, error) {
	if len(b) != Size {
		return Sha256{}, fmt.Errorf("chainhash: invalid digest length %d", len(b))
	}
	var out Sha256
	for i := 0; i < 8; i++ {
		out.words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out, nil
}

// FromArray builds a Sha256 from a fixed 32-byte array in wire order.
func FromArray(b [Size]byte) Sha256 {
	h, _ := FromBytes(b[:])
	return h
}

// Sum256d computes the double-SHA-256 ("hash256") digest of msg.
func Sum256d(msg []byte) Sha256 {
	d := hash.Sum256d(msg)
	return FromArray(d)
}

// Bytes returns the 32-byte wire-order (little-endian) encoding.
func (h Sha256) Bytes() [Size]byte {
	var out [Size]byte
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], h.words[i])
	}
	return out
}

// IsZero reports whether h is the all-zero digest.
func (h Sha256) IsZero() bool { return h == Zero }

// Equal reports whether h and other are the same digest.
func (h Sha256) Equal(other Sha256) bool { return h == other }

// ToUint256 interprets the wire-order bytes as a little-endian Uint256
// (the display-order bytes read big-endian), the order the target/PoW
// comparison uses: the digest's first wire byte is the integer's least
// significant byte.
func (h Sha256) ToUint256() bigint.Uint256 {
	wire := h.Bytes()
	var be [Size]byte
	for i, b := range wire {
		be[Size-1-i] = b
	}
	return bigint.Uint256FromBytes32(be)
}

// FromUint256 is the inverse of ToUint256.
func FromUint256(u bigint.Uint256) Sha256 {
	be := u.Bytes32()
	var wire [Size]byte
	for i, b := range be {
		wire[Size-1-i] = b
	}
	return FromArray(wire)
}

// String renders h as reversed big-endian hex, the canonical
// block-explorer display for a txid or block hash.
func (h Sha256) String() string {
	wire := h.Bytes()
	var rev [Size]byte
	for i, b := range wire {
		rev[Size-1-i] = b
	}
	return hex.EncodeToString(rev[:])
}

// Parse parses a reversed big-endian hex string (the display form
// produced by String) back into a Sha256.
func Parse(s string) (Sha256, error) {
	if len(s) != Size*2 {
		return Sha256{}, errors.New("chainhash: invalid hex digest length")
	}
	rev, err := hex.DecodeString(s)
	if err != nil {
		return Sha256{}, fmt.Errorf("chainhash: %w", err)
	}
	var wire [Size]byte
	for i, b := range rev {
		wire[Size-1-i] = b
	}
	return FromArray(wire), nil
}

// MarshalJSON renders h as a quoted display-order hex string.
func (h Sha256) MarshalJSON() ([]byte, error) {
	return []byte(`"` + h.String() + `"`), nil
}

// UnmarshalJSON parses h from a quoted display-order hex string.
func (h *Sha256) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func unquote(b []byte) (string, error) {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return "", errors.New("chainhash: expected quoted string")
	}
	return string(b[1 : len(b)-1]), nil
}
