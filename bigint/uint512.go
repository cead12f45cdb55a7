package bigint

// Uint512 is a fixed-width 512-bit unsigned integer stored as eight
// 64-bit little-endian limbs. It exists primarily to hold the full,
// untruncated product of two Uint256 values during modular reduction
// and for secp256k1's double-length intermediate scalar arithmetic.
type Uint512 struct {
	limbs [8]uint64
}

// Zero512 is the additive identity.
var Zero512 = Uint512{}

// One512 is the multiplicative identity.
var One512 = Uint512From(1)

// Uint512From builds a Uint512 from a native uint64.
func Uint512From(n uint64) Uint512 {
	var out Uint512
	out.limbs[0] = n
	return out
}

// Uint512FromLimbs builds a Uint512 directly from little-endian limbs.
func Uint512FromLimbs(limbs [8]uint64) Uint512 {
	return Uint512{limbs: limbs}
}

// Limbs returns the little-endian limb array.
func (u Uint512) Limbs() [8]uint64 { return u.limbs }

// IsZero reports whether u is zero.
func (u Uint512) IsZero() bool { return isZeroLimbs(u.limbs[:]) }

// IsOdd reports whether u's lowest bit is set.
func (u Uint512) IsOdd() bool { return u.limbs[0]&1 != 0 }

// Cmp returns -1, 0, or 1 according to whether u is less than, equal
// to, or greater than other.
func (u Uint512) Cmp(other Uint512) int { return cmpLimbs(u.limbs[:], other.limbs[:]) }

// Equal reports whether u == other.
func (u Uint512) Equal(other Uint512) bool { return u.Cmp(other) == 0 }

// LessThan reports whether u < other.
func (u Uint512) LessThan(other Uint512) bool { return u.Cmp(other) < 0 }

// BitLen returns the position of the highest set bit, plus one (0 for
// the zero value).
func (u Uint512) BitLen() int { return bitLenLimbs(u.limbs[:]) }

// OverflowingAdd returns u+other truncated to 512 bits, and whether the
// true sum overflowed.
func (u Uint512) OverflowingAdd(other Uint512) (Uint512, bool) {
	var out Uint512
	carry := addLimbs(out.limbs[:], u.limbs[:], other.limbs[:])
	return out, carry != 0
}

// Add returns u+other, wrapping silently on overflow.
func (u Uint512) Add(other Uint512) Uint512 {
	out, _ := u.OverflowingAdd(other)
	return out
}

// OverflowingSub returns u-other truncated to 512 bits, and whether the
// subtraction borrowed (u < other).
func (u Uint512) OverflowingSub(other Uint512) (Uint512, bool) {
	var out Uint512
	borrow := subLimbs(out.limbs[:], u.limbs[:], other.limbs[:])
	return out, borrow != 0
}

// Sub returns u-other, wrapping silently on underflow.
func (u Uint512) Sub(other Uint512) Uint512 {
	out, _ := u.OverflowingSub(other)
	return out
}

// Mul returns (u*other) mod 2^512. Note that this truncates for
// operands whose true product exceeds 512 bits; callers needing the
// full 256x256->512 product should operate on Uint256 values via
// Uint256.ToUint512 before multiplying, which is always exact since the
// true product of two 256-bit values never exceeds 512 bits.
func (u Uint512) Mul(other Uint512) Uint512 {
	var out Uint512
	mulLimbsWrapping(out.limbs[:], u.limbs[:], other.limbs[:])
	return out
}

// DivMod returns the quotient and remainder of u/other. Panics if other
// is zero.
func (u Uint512) DivMod(other Uint512) (q, r Uint512) {
	qs, rs := divModLimbs(u.limbs[:], other.limbs[:])
	copy(q.limbs[:], qs)
	copy(r.limbs[:], rs)
	return q, r
}

// Div returns the quotient of u/other. Panics if other is zero.
func (u Uint512) Div(other Uint512) Uint512 { q, _ := u.DivMod(other); return q }

// Mod returns the remainder of u/other. Panics if other is zero.
func (u Uint512) Mod(other Uint512) Uint512 { _, r := u.DivMod(other); return r }

// Lsh returns u shifted left by shift bits, zero-filled, truncated to
// 512 bits.
func (u Uint512) Lsh(shift uint) Uint512 {
	var out Uint512
	shlLimbs(out.limbs[:], u.limbs[:], shift)
	return out
}

// Rsh returns u shifted right by shift bits, zero-filled (logical
// shift).
func (u Uint512) Rsh(shift uint) Uint512 {
	var out Uint512
	shrLimbs(out.limbs[:], u.limbs[:], shift)
	return out
}

// Pow returns u raised to exp, truncated to 512 bits at each step (not
// modular -- see ModExp on Uint256 for the modular form used by the
// consensus engine).
func (u Uint512) Pow(exp Uint512) Uint512 {
	result := One512
	base := u
	nBits := exp.BitLen()
	for i := 0; i < nBits; i++ {
		if testBitLimbs(exp.limbs[:], i) {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	return result
}

// Truncate256 drops the upper 256 bits, returning the low half as a
// Uint256. Used after widening multiplication/reduction once the
// result is known to fit.
func (u Uint512) Truncate256() Uint256 {
	var out Uint256
	copy(out.limbs[:], u.limbs[:4])
	return out
}

// ToSigned reinterprets u's bit pattern as a two's-complement Int512.
func (u Uint512) ToSigned() Int512 { return Int512{u: u} }

// Bytes64 returns the big-endian 64-byte encoding.
func (u Uint512) Bytes64() [64]byte {
	var out [64]byte
	for i := 0; i < 8; i++ {
		limb := u.limbs[i]
		for j := 0; j < 8; j++ {
			out[63-(i*8+j)] = byte(limb >> (8 * j))
		}
	}
	return out
}

// Uint512Hex parses s (an ordinary hex integer literal, most
// significant digit first, optionally 0x-prefixed) into a Uint512.
func Uint512Hex(s string) (Uint512, error) {
	limbs, err := hexToLimbsLE(s, 8)
	if err != nil {
		return Uint512{}, err
	}
	var out Uint512
	copy(out.limbs[:], limbs)
	return out, nil
}

// Uint512Dec parses s as a decimal integer.
func Uint512Dec(s string) (Uint512, error) {
	limbs, err := decToLimbs(s, 8)
	if err != nil {
		return Uint512{}, err
	}
	var out Uint512
	copy(out.limbs[:], limbs)
	return out, nil
}

// String renders u in decimal.
func (u Uint512) String() string { return limbsToDecimal(u.limbs[:]) }

// Hex renders u as lowercase hex in block-explorer display order,
// without leading zeros.
func (u Uint512) Hex() string { return limbsToHex(u.limbs[:], false, false) }

// HexUpper is Hex in uppercase.
func (u Uint512) HexUpper() string { return limbsToHex(u.limbs[:], true, false) }

// HexPadded is Hex but always prints all 128 hex digits.
func (u Uint512) HexPadded() string { return limbsToHex(u.limbs[:], false, true) }
