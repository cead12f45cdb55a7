package bigint

// Int512 is a 512-bit two's-complement signed integer. It stores its
// bit pattern in the same Uint512 representation used for unsigned
// values, so Add/Sub/Mul are byte-for-byte identical operations on the
// two types and only comparison, division, and shifting need to look
// at the sign bit.
type Int512 struct {
	u Uint512
}

// Int512From reinterprets the bit pattern of u as a nonnegative Int512.
func Int512From(u Uint512) Int512 { return Int512{u: u} }

// Int512FromInt64 builds an Int512 from a native signed integer,
// sign-extending as needed.
func Int512FromInt64(n int64) Int512 {
	var out Int512
	if n >= 0 {
		out.u = Uint512From(uint64(n))
		return out
	}
	mag := Uint512From(uint64(-n))
	out.u = mag.negate()
	return out
}

func (a Uint512) negate() Uint512 {
	var out Uint512
	negateLimbs(out.limbs[:], a.limbs[:])
	return out
}

// Unsigned returns the raw two's-complement bit pattern as a Uint512.
func (a Int512) Unsigned() Uint512 { return a.u }

// IsZero reports whether a is zero.
func (a Int512) IsZero() bool { return a.u.IsZero() }

// Sign returns -1, 0, or 1.
func (a Int512) Sign() int {
	if a.u.IsZero() {
		return 0
	}
	if signBitSet(a.u.limbs[:]) {
		return -1
	}
	return 1
}

// Neg returns -a.
func (a Int512) Neg() Int512 { return Int512{u: a.u.negate()} }

// Abs returns the absolute value of a.
func (a Int512) Abs() Int512 {
	if a.Sign() < 0 {
		return a.Neg()
	}
	return a
}

// Cmp returns -1, 0, or 1 according to whether a is less than, equal
// to, or greater than other, comparing as signed integers.
func (a Int512) Cmp(other Int512) int {
	aNeg := signBitSet(a.u.limbs[:])
	bNeg := signBitSet(other.u.limbs[:])
	if aNeg != bNeg {
		if aNeg {
			return -1
		}
		return 1
	}
	return cmpLimbs(a.u.limbs[:], other.u.limbs[:])
}

// LessThan reports whether a < other.
func (a Int512) LessThan(other Int512) bool { return a.Cmp(other) < 0 }

// Add returns a+other; two's-complement addition is identical to
// unsigned wrapping addition on the same bit width.
func (a Int512) Add(other Int512) Int512 { return Int512{u: a.u.Add(other.u)} }

// Sub returns a-other.
func (a Int512) Sub(other Int512) Int512 { return Int512{u: a.u.Sub(other.u)} }

// Mul returns a*other, truncated to 512 bits; two's-complement
// multiplication low bits match unsigned wrapping multiplication.
func (a Int512) Mul(other Int512) Int512 { return Int512{u: a.u.Mul(other.u)} }

// DivMod returns the quotient and remainder of a/other using truncated
// (round-toward-zero) division: the remainder has the same sign as a
// (or is zero). Panics if other is zero.
func (a Int512) DivMod(other Int512) (q, r Int512) {
	aAbs, aNeg := a.Abs().u, a.Sign() < 0
	bAbs, bNeg := other.Abs().u, other.Sign() < 0
	qu, ru := aAbs.DivMod(bAbs)
	q = Int512{u: qu}
	r = Int512{u: ru}
	if aNeg != bNeg && !q.IsZero() {
		q = q.Neg()
	}
	if aNeg && !r.IsZero() {
		r = r.Neg()
	}
	return q, r
}

// Div returns the truncated quotient of a/other.
func (a Int512) Div(other Int512) Int512 { q, _ := a.DivMod(other); return q }

// Mod returns the truncated-division remainder of a/other, taking the
// sign of a.
func (a Int512) Mod(other Int512) Int512 { _, r := a.DivMod(other); return r }

// EuclidMod returns the non-negative remainder of a/other (Euclidean
// convention), as used when reducing modular-inverse results into the
// canonical [0, other) range.
func (a Int512) EuclidMod(other Int512) Int512 {
	r := a.Mod(other)
	if r.Sign() < 0 {
		r = r.Add(other.Abs())
	}
	return r
}

// Shr returns a arithmetically shifted right by shift bits, sign
// extending from the top.
func (a Int512) Shr(shift uint) Int512 {
	if !signBitSet(a.u.limbs[:]) {
		return Int512{u: a.u.Rsh(shift)}
	}
	allOnes := Uint512{}
	for i := range allOnes.limbs {
		allOnes.limbs[i] = ^uint64(0)
	}
	if shift >= 512 {
		return Int512{u: allOnes}
	}
	shifted := a.u.Rsh(shift)
	signExtend := allOnes.Lsh(512 - shift)
	return Int512{u: shifted.orWith(signExtend)}
}

func (a Uint512) orWith(b Uint512) Uint512 {
	var out Uint512
	for i := range out.limbs {
		out.limbs[i] = a.limbs[i] | b.limbs[i]
	}
	return out
}

// Shl returns a shifted left by shift bits, truncated to 512 bits
// (wrapping, matching unsigned Lsh on the bit pattern).
func (a Int512) Shl(shift uint) Int512 { return Int512{u: a.u.Lsh(shift)} }

// ExtGCD runs the extended Euclidean algorithm, returning g = gcd(a,
// other) and Bezout coefficients x, y such that a*x + other*y = g. g is
// returned non-negative when a and other are not both zero.
func (a Int512) ExtGCD(other Int512) (g, x, y Int512) {
	oldR, r := a, other
	oldS, s := Int512FromInt64(1), Int512FromInt64(0)
	oldT, t := Int512FromInt64(0), Int512FromInt64(1)
	for !r.IsZero() {
		q := oldR.Div(r)
		oldR, r = r, oldR.Sub(q.Mul(r))
		oldS, s = s, oldS.Sub(q.Mul(s))
		oldT, t = t, oldT.Sub(q.Mul(t))
	}
	if oldR.Sign() < 0 {
		oldR, oldS, oldT = oldR.Neg(), oldS.Neg(), oldT.Neg()
	}
	return oldR, oldS, oldT
}

// String renders a in decimal, with a leading '-' if negative.
func (a Int512) String() string {
	if a.Sign() < 0 {
		return "-" + a.Abs().u.String()
	}
	return a.u.String()
}
