package secp256k1

import (
	"fmt"

	"github.com/rubin-chain/corenode/bigint"
)

// PubKey is an ECDSA public key: a point on the curve. The zero value
// is not a valid key.
type PubKey struct {
	Point
}

// sqrtExp is (p+1)/4, the exponent used to take square roots mod p
// (valid because p ≡ 3 mod 4).
var sqrtExp = mustHex("3fffffffffffffffffffffffffffffffffffffffffffffffffffffffbfffff0c")

// ParseCompressedPubKey decodes the standard 33-byte compressed form
// (a 0x02/0x03 parity prefix followed by the 32-byte big-endian x
// coordinate) into a PubKey, recovering y via a modular square root
// and selecting the root matching the prefix's parity.
func ParseCompressedPubKey(b []byte) (PubKey, error) {
	if len(b) != 33 {
		return PubKey{}, fmt.Errorf("secp256k1: compressed pubkey must be 33 bytes, got %d", len(b))
	}
	prefix := b[0]
	if prefix != 0x02 && prefix != 0x03 {
		return PubKey{}, fmt.Errorf("secp256k1: invalid compressed pubkey prefix 0x%02x", prefix)
	}
	var xb [32]byte
	copy(xb[:], b[1:])
	x := bigint.Uint256FromBytes32(xb)
	if x.Cmp(FieldPrime) >= 0 {
		return PubKey{}, fmt.Errorf("secp256k1: x coordinate out of field range")
	}

	x2 := x.ModMul(x, FieldPrime)
	x3 := x2.ModMul(x, FieldPrime)
	ySq := x3.ModAdd(B, FieldPrime)
	y := ySq.ModExp(sqrtExp, FieldPrime)

	wantOdd := prefix == 0x03
	if y.IsOdd() != wantOdd {
		y = FieldPrime.Sub(y)
	}

	p := Point{x: x, y: y}
	if !p.IsOnCurve() {
		return PubKey{}, fmt.Errorf("secp256k1: decompressed point is not on the curve")
	}
	return PubKey{Point: p}, nil
}

// ParseUncompressedPubKey decodes the 65-byte uncompressed form (0x04
// prefix, 32-byte x, 32-byte y).
func ParseUncompressedPubKey(b []byte) (PubKey, error) {
	if len(b) != 65 || b[0] != 0x04 {
		return PubKey{}, fmt.Errorf("secp256k1: invalid uncompressed pubkey encoding")
	}
	var xb, yb [32]byte
	copy(xb[:], b[1:33])
	copy(yb[:], b[33:65])
	p := Point{x: bigint.Uint256FromBytes32(xb), y: bigint.Uint256FromBytes32(yb)}
	if !p.IsOnCurve() {
		return PubKey{}, fmt.Errorf("secp256k1: point is not on the curve")
	}
	return PubKey{Point: p}, nil
}

// ParsePubKey decodes either the 33-byte compressed or 65-byte
// uncompressed wire encoding, dispatching on length and prefix byte —
// the shape every P2PK/P2PKH lock script's pushed pubkey may take.
func ParsePubKey(b []byte) (PubKey, error) {
	switch {
	case len(b) == 33:
		return ParseCompressedPubKey(b)
	case len(b) == 65:
		return ParseUncompressedPubKey(b)
	default:
		return PubKey{}, fmt.Errorf("secp256k1: invalid pubkey length %d", len(b))
	}
}

// Compressed encodes the key in the standard 33-byte compressed form.
func (k PubKey) Compressed() [33]byte {
	var out [33]byte
	if k.y.IsOdd() {
		out[0] = 0x03
	} else {
		out[0] = 0x02
	}
	xb := k.x.Bytes32()
	copy(out[1:], xb[:])
	return out
}
