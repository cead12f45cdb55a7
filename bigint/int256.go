package bigint

// Int256 is a 256-bit two's-complement signed integer, stored as the
// bit pattern of the corresponding Uint256.
type Int256 struct {
	u Uint256
}

// Int256From reinterprets the bit pattern of u as a nonnegative Int256.
func Int256From(u Uint256) Int256 { return Int256{u: u} }

// Int256FromInt64 builds an Int256 from a native signed integer,
// sign-extending as needed.
func Int256FromInt64(n int64) Int256 {
	var out Int256
	if n >= 0 {
		out.u = Uint256From(uint64(n))
		return out
	}
	mag := Uint256From(uint64(-n))
	out.u = mag.negate()
	return out
}

func (a Uint256) negate() Uint256 {
	var out Uint256
	negateLimbs(out.limbs[:], a.limbs[:])
	return out
}

func (a Uint256) orWith(b Uint256) Uint256 {
	var out Uint256
	for i := range out.limbs {
		out.limbs[i] = a.limbs[i] | b.limbs[i]
	}
	return out
}

// Unsigned returns the raw two's-complement bit pattern as a Uint256.
func (a Int256) Unsigned() Uint256 { return a.u }

// IsZero reports whether a is zero.
func (a Int256) IsZero() bool { return a.u.IsZero() }

// Sign returns -1, 0, or 1.
func (a Int256) Sign() int {
	if a.u.IsZero() {
		return 0
	}
	if signBitSet(a.u.limbs[:]) {
		return -1
	}
	return 1
}

// Neg returns -a.
func (a Int256) Neg() Int256 { return Int256{u: a.u.negate()} }

// Abs returns the absolute value of a.
func (a Int256) Abs() Int256 {
	if a.Sign() < 0 {
		return a.Neg()
	}
	return a
}

// Cmp returns -1, 0, or 1 according to whether a is less than, equal
// to, or greater than other, comparing as signed integers.
func (a Int256) Cmp(other Int256) int {
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
func (a Int256) LessThan(other Int256) bool { return a.Cmp(other) < 0 }

// Add returns a+other.
func (a Int256) Add(other Int256) Int256 { return Int256{u: a.u.Add(other.u)} }

// Sub returns a-other.
func (a Int256) Sub(other Int256) Int256 { return Int256{u: a.u.Sub(other.u)} }

// Mul returns a*other, truncated to 256 bits.
func (a Int256) Mul(other Int256) Int256 { return Int256{u: a.u.Mul(other.u)} }

// DivMod returns the truncated (round-toward-zero) quotient and
// remainder of a/other. Panics if other is zero.
func (a Int256) DivMod(other Int256) (q, r Int256) {
	aAbs, aNeg := a.Abs().u, a.Sign() < 0
	bAbs, bNeg := other.Abs().u, other.Sign() < 0
	qu, ru := aAbs.DivMod(bAbs)
	q = Int256{u: qu}
	r = Int256{u: ru}
	if aNeg != bNeg && !q.IsZero() {
		q = q.Neg()
	}
	if aNeg && !r.IsZero() {
		r = r.Neg()
	}
	return q, r
}

// Div returns the truncated quotient of a/other.
func (a Int256) Div(other Int256) Int256 { q, _ := a.DivMod(other); return q }

// Mod returns the truncated-division remainder of a/other.
func (a Int256) Mod(other Int256) Int256 { _, r := a.DivMod(other); return r }

// EuclidMod returns the non-negative remainder of a/other.
func (a Int256) EuclidMod(other Int256) Int256 {
	r := a.Mod(other)
	if r.Sign() < 0 {
		r = r.Add(other.Abs())
	}
	return r
}

// Shr returns a arithmetically shifted right by shift bits, sign
// extending from the top.
func (a Int256) Shr(shift uint) Int256 {
	if !signBitSet(a.u.limbs[:]) {
		return Int256{u: a.u.Rsh(shift)}
	}
	allOnes := Uint256{}
	for i := range allOnes.limbs {
		allOnes.limbs[i] = ^uint64(0)
	}
	if shift >= 256 {
		return Int256{u: allOnes}
	}
	shifted := a.u.Rsh(shift)
	signExtend := allOnes.Lsh(256 - shift)
	return Int256{u: shifted.orWith(signExtend)}
}

// Shl returns a shifted left by shift bits, truncated to 256 bits.
func (a Int256) Shl(shift uint) Int256 { return Int256{u: a.u.Lsh(shift)} }

// ExtGCD runs the extended Euclidean algorithm, returning g = gcd(a,
// other) and Bezout coefficients x, y such that a*x + other*y = g.
func (a Int256) ExtGCD(other Int256) (g, x, y Int256) {
	oldR, r := a, other
	oldS, s := Int256FromInt64(1), Int256FromInt64(0)
	oldT, t := Int256FromInt64(0), Int256FromInt64(1)
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

// Widen sign-extends a to a 512-bit Int512.
func (a Int256) Widen() Int512 {
	var wide Uint512
	copy(wide.limbs[:4], a.u.limbs[:])
	if a.Sign() < 0 {
		for i := 4; i < 8; i++ {
			wide.limbs[i] = ^uint64(0)
		}
	}
	return Int512{u: wide}
}

// String renders a in decimal, with a leading '-' if negative.
func (a Int256) String() string {
	if a.Sign() < 0 {
		return "-" + a.Abs().u.String()
	}
	return a.u.String()
}
