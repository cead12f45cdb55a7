package bigint

// Uint256 is a fixed-width 256-bit unsigned integer stored as four
// 64-bit little-endian limbs (limbs[0] is least significant).
type Uint256 struct {
	limbs [4]uint64
}

// Zero256 is the additive identity.
var Zero256 = Uint256{}

// One256 is the multiplicative identity.
var One256 = Uint256From(1)

// Uint256From builds a Uint256 from a native uint64.
func Uint256From(n uint64) Uint256 {
	return Uint256{limbs: [4]uint64{n, 0, 0, 0}}
}

// Uint256FromLimbs builds a Uint256 directly from little-endian limbs.
func Uint256FromLimbs(limbs [4]uint64) Uint256 {
	return Uint256{limbs: limbs}
}

// Limbs returns the little-endian limb array.
func (u Uint256) Limbs() [4]uint64 { return u.limbs }

// IsZero reports whether u is zero.
func (u Uint256) IsZero() bool { return isZeroLimbs(u.limbs[:]) }

// IsOdd reports whether u's lowest bit is set.
func (u Uint256) IsOdd() bool { return u.limbs[0]&1 != 0 }

// Cmp returns -1, 0, or 1 according to whether u is less than, equal
// to, or greater than other.
func (u Uint256) Cmp(other Uint256) int { return cmpLimbs(u.limbs[:], other.limbs[:]) }

// Equal reports whether u == other.
func (u Uint256) Equal(other Uint256) bool { return u.Cmp(other) == 0 }

// LessThan reports whether u < other.
func (u Uint256) LessThan(other Uint256) bool { return u.Cmp(other) < 0 }

// BitLen returns the position of the highest set bit, plus one (0 for
// the zero value).
func (u Uint256) BitLen() int { return bitLenLimbs(u.limbs[:]) }

// Bit reports whether bit i (0 = least significant) is set.
func (u Uint256) Bit(i int) bool { return testBitLimbs(u.limbs[:], i) }

// OverflowingAdd returns u+other truncated to 256 bits, and whether the
// true sum overflowed.
func (u Uint256) OverflowingAdd(other Uint256) (Uint256, bool) {
	var out Uint256
	carry := addLimbs(out.limbs[:], u.limbs[:], other.limbs[:])
	return out, carry != 0
}

// Add returns u+other, wrapping silently on overflow.
func (u Uint256) Add(other Uint256) Uint256 {
	out, _ := u.OverflowingAdd(other)
	return out
}

// OverflowingSub returns u-other truncated to 256 bits, and whether the
// subtraction borrowed (u < other).
func (u Uint256) OverflowingSub(other Uint256) (Uint256, bool) {
	var out Uint256
	borrow := subLimbs(out.limbs[:], u.limbs[:], other.limbs[:])
	return out, borrow != 0
}

// Sub returns u-other, wrapping silently on underflow.
func (u Uint256) Sub(other Uint256) Uint256 {
	out, _ := u.OverflowingSub(other)
	return out
}

// Mul returns (u*other) mod 2^256.
func (u Uint256) Mul(other Uint256) Uint256 {
	var out Uint256
	mulLimbsWrapping(out.limbs[:], u.limbs[:], other.limbs[:])
	return out
}

// DivMod returns the quotient and remainder of u/other. Panics if other
// is zero.
func (u Uint256) DivMod(other Uint256) (q, r Uint256) {
	qs, rs := divModLimbs(u.limbs[:], other.limbs[:])
	copy(q.limbs[:], qs)
	copy(r.limbs[:], rs)
	return q, r
}

// Div returns the quotient of u/other. Panics if other is zero.
func (u Uint256) Div(other Uint256) Uint256 { q, _ := u.DivMod(other); return q }

// Mod returns the remainder of u/other. Panics if other is zero.
func (u Uint256) Mod(other Uint256) Uint256 { _, r := u.DivMod(other); return r }

// Lsh returns u shifted left by shift bits, zero-filled, truncated to
// 256 bits.
func (u Uint256) Lsh(shift uint) Uint256 {
	var out Uint256
	shlLimbs(out.limbs[:], u.limbs[:], shift)
	return out
}

// Rsh returns u shifted right by shift bits, zero-filled (logical
// shift).
func (u Uint256) Rsh(shift uint) Uint256 {
	var out Uint256
	shrLimbs(out.limbs[:], u.limbs[:], shift)
	return out
}

// ModAdd returns (u+other) mod m, widening to 512 bits so a carry out
// of the top 256-bit limb is never lost before reduction.
func (u Uint256) ModAdd(other, m Uint256) Uint256 {
	sum := u.ToUint512().Add(other.ToUint512())
	return sum.Mod(m.ToUint512()).Truncate256()
}

// ModSub returns (u-other) mod m.
func (u Uint256) ModSub(other, m Uint256) Uint256 {
	if u.Cmp(other) >= 0 {
		return u.Sub(other).Mod(m)
	}
	diff := other.Sub(u).Mod(m)
	if diff.IsZero() {
		return Zero256
	}
	return m.Sub(diff)
}

// ModMul returns (u*other) mod m. Uses Uint512 intermediates to avoid
// truncating the full product before reducing.
func (u Uint256) ModMul(other, m Uint256) Uint256 {
	wide := u.ToUint512().Mul(other.ToUint512())
	_, rem := wide.DivMod(m.ToUint512())
	return rem.Truncate256()
}

// Pow returns u raised to exp, truncated to 256 bits at each step (not
// modular).
func (u Uint256) Pow(exp Uint256) Uint256 {
	result := One256
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

// ModExp returns u^exp mod m via the doubling ladder.
func (u Uint256) ModExp(exp, m Uint256) Uint256 {
	result := One256.Mod(m)
	base := u.Mod(m)
	nBits := exp.BitLen()
	for i := 0; i < nBits; i++ {
		if testBitLimbs(exp.limbs[:], i) {
			result = result.ModMul(base, m)
		}
		base = base.ModMul(base, m)
	}
	return result
}

// ModInverse returns the multiplicative inverse of u mod m, using the
// extended Euclidean algorithm on the signed 512-bit representation
// (wide enough that intermediate Bezout coefficients never wrap).
func (u Uint256) ModInverse(m Uint256) (Uint256, bool) {
	g, x, _ := Int512From(u.ToUint512()).ExtGCD(Int512From(m.ToUint512()))
	if !g.Unsigned().Equal(Uint512From(1)) {
		return Uint256{}, false
	}
	mi := Int512From(m.ToUint512())
	x = x.EuclidMod(mi)
	return x.Unsigned().Truncate256(), true
}

// ToUint512 widens u to 512 bits (zero-extended).
func (u Uint256) ToUint512() Uint512 {
	var out Uint512
	copy(out.limbs[:4], u.limbs[:])
	return out
}

// ToSigned reinterprets u's bit pattern as a two's-complement Int256.
func (u Uint256) ToSigned() Int256 { return Int256{u: u} }

// Bytes32 returns the big-endian 32-byte encoding (network byte order,
// matching a block-explorer hex display of the value).
func (u Uint256) Bytes32() [32]byte {
	var out [32]byte
	for i := 0; i < 4; i++ {
		limb := u.limbs[i]
		for j := 0; j < 8; j++ {
			out[31-(i*8+j)] = byte(limb >> (8 * j))
		}
	}
	return out
}

// Uint256FromBytes32 parses a big-endian 32-byte encoding into a
// Uint256.
func Uint256FromBytes32(b [32]byte) Uint256 {
	var out Uint256
	for i := 0; i < 4; i++ {
		var limb uint64
		for j := 0; j < 8; j++ {
			limb |= uint64(b[31-(i*8+j)]) << (8 * j)
		}
		out.limbs[i] = limb
	}
	return out
}

// Uint256Hex parses s (optionally 0x-prefixed) as an ordinary hex
// integer literal, most significant digit first -- the same order a
// target or difficulty value is written in consensus parameters, not
// the byte-reversed order a block explorer uses to display a txid or
// block hash.
func Uint256Hex(s string) (Uint256, error) {
	limbs, err := hexToLimbsLE(s, 4)
	if err != nil {
		return Uint256{}, err
	}
	var out Uint256
	copy(out.limbs[:], limbs)
	return out, nil
}

// Uint256Dec parses s as a decimal integer via repeated x10 accumulate.
func Uint256Dec(s string) (Uint256, error) {
	limbs, err := decToLimbs(s, 4)
	if err != nil {
		return Uint256{}, err
	}
	var out Uint256
	copy(out.limbs[:], limbs)
	return out, nil
}

// String renders u in decimal.
func (u Uint256) String() string { return limbsToDecimal(u.limbs[:]) }

// Hex renders u as an ordinary lowercase hex integer literal, without
// leading zeros (matching fmt's default %x for zero being "0").
func (u Uint256) Hex() string { return limbsToHex(u.limbs[:], false, false) }

// HexUpper is Hex in uppercase.
func (u Uint256) HexUpper() string { return limbsToHex(u.limbs[:], true, false) }

// HexPadded is Hex but always prints all 64 hex digits.
func (u Uint256) HexPadded() string { return limbsToHex(u.limbs[:], false, true) }
