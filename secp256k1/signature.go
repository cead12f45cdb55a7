package secp256k1

import (
	"fmt"

	"github.com/rubin-chain/corenode/bigint"
)

// Signature is an ECDSA (r, s) pair. HashType is the trailing sighash
// byte that rides along with every Bitcoin signature on the stack; it
// is not part of the DER encoding itself but is carried here because
// callers always need it alongside r and s.
type Signature struct {
	R, S     bigint.Uint256
	HashType byte
}

// ParseDERSignature parses the DER-encoded signature with trailing
// hash-type byte that a CHECKSIG/CHECKMULTISIG pops off the stack:
//
//	0x30 <len> 0x02 <rlen> <r bytes> 0x02 <slen> <s bytes> <hash_type>
//
// It enforces the same shape the interpreter must reject malformed
// signatures on: a compound length of 68–70 bytes, integer markers,
// and at most one leading 0x00 pad byte per integer (present only when
// the following byte's high bit is set).
func ParseDERSignature(b []byte) (Signature, error) {
	if len(b) < 9 {
		return Signature{}, fmt.Errorf("secp256k1: signature too short")
	}
	hashType := b[len(b)-1]
	der := b[:len(b)-1]

	if len(der) < 8 || len(der) > 72 {
		return Signature{}, fmt.Errorf("secp256k1: DER length %d out of range", len(der))
	}
	if der[0] != 0x30 {
		return Signature{}, fmt.Errorf("secp256k1: missing DER compound header")
	}
	totalLen := int(der[1])
	if totalLen != len(der)-2 {
		return Signature{}, fmt.Errorf("secp256k1: DER length mismatch")
	}

	off := 2
	r, n, err := parseDERInt(der, off)
	if err != nil {
		return Signature{}, err
	}
	off += n
	s, n, err := parseDERInt(der, off)
	if err != nil {
		return Signature{}, err
	}
	off += n
	if off != len(der) {
		return Signature{}, fmt.Errorf("secp256k1: trailing bytes after DER signature")
	}

	rv := bigint.Uint256FromBytes32(leftPad32(r))
	sv := bigint.Uint256FromBytes32(leftPad32(s))
	if rv.IsZero() || rv.Cmp(CurveOrder) >= 0 {
		return Signature{}, fmt.Errorf("secp256k1: r out of range")
	}
	if sv.IsZero() || sv.Cmp(CurveOrder) >= 0 {
		return Signature{}, fmt.Errorf("secp256k1: s out of range")
	}
	return Signature{R: rv, S: sv, HashType: hashType}, nil
}

// parseDERInt parses a single DER INTEGER starting at off and returns
// its big-endian minimal magnitude bytes (stripped of any valid
// leading zero pad) plus the number of bytes consumed.
func parseDERInt(b []byte, off int) (value []byte, consumed int, err error) {
	if off+2 > len(b) || b[off] != 0x02 {
		return nil, 0, fmt.Errorf("secp256k1: missing DER integer marker")
	}
	length := int(b[off+1])
	start := off + 2
	if start+length > len(b) {
		return nil, 0, fmt.Errorf("secp256k1: truncated DER integer")
	}
	v := b[start : start+length]
	if length == 0 {
		return nil, 0, fmt.Errorf("secp256k1: zero-length DER integer")
	}
	if len(v) > 1 && v[0] == 0x00 && v[1]&0x80 == 0 {
		return nil, 0, fmt.Errorf("secp256k1: non-minimal DER integer padding")
	}
	if v[0]&0x80 != 0 {
		return nil, 0, fmt.Errorf("secp256k1: DER integer missing required pad byte")
	}
	if length != 32 && !(length == 33 && v[0] == 0x00) {
		return nil, 0, fmt.Errorf("secp256k1: DER integer has unexpected length %d", length)
	}
	if length == 33 {
		v = v[1:]
	}
	return v, 2 + length, nil
}

func leftPad32(b []byte) [32]byte {
	var out [32]byte
	copy(out[32-len(b):], b)
	return out
}

// Verify checks (r, s) against pubkey for message digest z, interpreted
// as an integer mod n, per the standard ECDSA verification equation.
func Verify(sig Signature, pub PubKey, z bigint.Uint256) bool {
	r, s := sig.R, sig.S
	if r.IsZero() || r.Cmp(CurveOrder) >= 0 {
		return false
	}
	if s.IsZero() || s.Cmp(CurveOrder) >= 0 {
		return false
	}

	c, ok := s.ModInverse(CurveOrder)
	if !ok {
		return false
	}
	zmod := z.Mod(CurveOrder)
	u1 := zmod.ModMul(c, CurveOrder)
	u2 := r.ModMul(c, CurveOrder)

	p1 := ScalarMult(u1, G)
	p2 := ScalarMult(u2, pub.Point)
	rPoint := p1.Add(p2)
	if rPoint.IsInfinity() {
		return false
	}
	return rPoint.X().Mod(CurveOrder).Equal(r)
}
