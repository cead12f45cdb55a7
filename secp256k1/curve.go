// Package secp256k1 implements the elliptic curve y^2 = x^3 + 7 over
// the 256-bit prime field used by Bitcoin, and ECDSA signature
// verification against it. All field and scalar arithmetic is built on
// the bigint package's fixed-width modular operations rather than
// math/big, following the rest of the consensus core's
// no-allocation-on-the-hot-path discipline.
package secp256k1

import "github.com/rubin-chain/corenode/bigint"

// FieldPrime is p = 2^256 - 2^32 - 977, the prime modulus of the
// coordinate field.
var FieldPrime = mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")

// CurveOrder is n, the order of the group generated by G.
var CurveOrder = mustHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

// B is the curve's constant term (y^2 = x^3 + B).
var B = bigint.Uint256From(7)

// Gx, Gy are the coordinates of the standard generator point.
var (
	Gx = mustHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	Gy = mustHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")
)

// G is the standard generator point.
var G = Point{x: Gx, y: Gy}

func mustHex(s string) bigint.Uint256 {
	v, err := bigint.Uint256Hex(s)
	if err != nil {
		panic("secp256k1: bad constant: " + err.Error())
	}
	return v
}

// Point is a point on the curve: either an affine (x, y) coordinate
// pair, or the point at infinity (the group identity).
type Point struct {
	x, y     bigint.Uint256
	infinity bool
}

// Infinity is the point at infinity.
var Infinity = Point{infinity: true}

// NewPoint builds an affine point without validating it lies on the
// curve; callers that accept untrusted coordinates should use
// IsOnCurve.
func NewPoint(x, y bigint.Uint256) Point { return Point{x: x, y: y} }

// X returns the affine x-coordinate. Undefined for the point at
// infinity.
func (p Point) X() bigint.Uint256 { return p.x }

// Y returns the affine y-coordinate. Undefined for the point at
// infinity.
func (p Point) Y() bigint.Uint256 { return p.y }

// IsInfinity reports whether p is the group identity.
func (p Point) IsInfinity() bool { return p.infinity }

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.infinity || q.infinity {
		return p.infinity == q.infinity
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// IsOnCurve reports whether p satisfies y^2 = x^3 + 7 (mod p). The
// point at infinity is considered on-curve.
func (p Point) IsOnCurve() bool {
	if p.infinity {
		return true
	}
	lhs := p.y.ModMul(p.y, FieldPrime)
	x3 := p.x.ModMul(p.x, FieldPrime).ModMul(p.x, FieldPrime)
	rhs := x3.ModAdd(B, FieldPrime)
	return lhs.Equal(rhs)
}

// Double returns p+p. Returns Infinity if p is infinity or p.y == 0
// (the tangent line is vertical).
func (p Point) Double() Point {
	if p.infinity || p.y.IsZero() {
		return Infinity
	}
	two := bigint.Uint256From(2)
	three := bigint.Uint256From(3)
	num := three.ModMul(p.x.ModMul(p.x, FieldPrime), FieldPrime)
	den := two.ModMul(p.y, FieldPrime)
	denInv, ok := den.ModInverse(FieldPrime)
	if !ok {
		return Infinity
	}
	slope := num.ModMul(denInv, FieldPrime)

	newX := slope.ModMul(slope, FieldPrime).ModSub(two.ModMul(p.x, FieldPrime), FieldPrime)
	newY := slope.ModMul(p.x.ModSub(newX, FieldPrime), FieldPrime).ModSub(p.y, FieldPrime)
	return Point{x: newX, y: newY}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	if p.infinity {
		return q
	}
	if q.infinity {
		return p
	}
	if p.x.Equal(q.x) {
		if p.y.Equal(q.y) {
			return p.Double()
		}
		// p == -q
		return Infinity
	}
	den := q.x.ModSub(p.x, FieldPrime)
	denInv, ok := den.ModInverse(FieldPrime)
	if !ok {
		return Infinity
	}
	slope := q.y.ModSub(p.y, FieldPrime).ModMul(denInv, FieldPrime)

	newX := slope.ModMul(slope, FieldPrime).ModSub(p.x, FieldPrime).ModSub(q.x, FieldPrime)
	newY := slope.ModMul(p.x.ModSub(newX, FieldPrime), FieldPrime).ModSub(p.y, FieldPrime)
	return Point{x: newX, y: newY}
}

// ScalarMult returns k*p via a doubling-and-accumulate ladder over the
// bits of k, the same shape the bigint package uses for its own
// modular exponentiation.
func ScalarMult(k bigint.Uint256, p Point) Point {
	result := Infinity
	addend := p
	nBits := k.BitLen()
	for i := 0; i < nBits; i++ {
		if k.Bit(i) {
			result = result.Add(addend)
		}
		addend = addend.Double()
	}
	return result
}

// ScalarBaseMult returns k*G.
func ScalarBaseMult(k bigint.Uint256) Point { return ScalarMult(k, G) }
