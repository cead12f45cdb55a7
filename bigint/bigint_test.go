package bigint

import (
	"testing"

	"pgregory.net/rapid"
)

func mustDec256(t *testing.T, s string) Uint256 {
	t.Helper()
	v, err := Uint256Dec(s)
	if err != nil {
		t.Fatalf("Uint256Dec(%q): %v", s, err)
	}
	return v
}

func mustDec512(t *testing.T, s string) Uint512 {
	t.Helper()
	v, err := Uint512Dec(s)
	if err != nil {
		t.Fatalf("Uint512Dec(%q): %v", s, err)
	}
	return v
}

func mustHex512(t *testing.T, s string) Uint512 {
	t.Helper()
	v, err := Uint512Hex(s)
	if err != nil {
		t.Fatalf("Uint512Hex(%q): %v", s, err)
	}
	return v
}

func mustHex256(t *testing.T, s string) Uint256 {
	t.Helper()
	v, err := Uint256Hex(s)
	if err != nil {
		t.Fatalf("Uint256Hex(%q): %v", s, err)
	}
	return v
}

func TestUint256MulDecimal(t *testing.T) {
	a := mustDec256(t, "23489572932348752890384578248572839485")
	b := mustDec256(t, "23487562237458920834537834562")
	want := mustDec256(t, "551712806179871778515292239903303072204368058405080230739511280570")
	got := a.Mul(b)
	if !got.Equal(want) {
		t.Fatalf("mul mismatch: got %s, want %s", got, want)
	}
}

func TestUint512MulHexTruncatedTo256(t *testing.T) {
	a := mustHex512(t, "bb9a2a8b89f893001028bc78239263765deadbeef00183565261712567dddddd")
	b := mustHex512(t, "16247672677231782376dbdbdbdbdbd91723787aaaccacac0001928938432736")
	want := mustHex256(t, "547f88cc7bafe691df998b5382332dd9be595b049f00919e006e0d951e70779e")
	got := a.Mul(b).Truncate256()
	if !got.Equal(want) {
		t.Fatalf("mul-truncate mismatch: got %s, want %s", got.Hex(), want.Hex())
	}
}

func TestUint512Pow(t *testing.T) {
	got := Uint512From(2).Pow(Uint512From(10))
	if !got.Equal(Uint512From(1024)) {
		t.Fatalf("2^10 = %s, want 1024", got)
	}
}

func TestUint512PowFourLimbResult(t *testing.T) {
	base := Uint512From(0xffffffffffffffff)
	got := base.Pow(Uint512From(4))
	want := mustHex512(t, "fffffffffffffffc0000000000000005fffffffffffffffc0000000000000001")
	if !got.Equal(want) {
		t.Fatalf("overflow pow mismatch: got %s, want %s", got.Hex(), want.Hex())
	}
}

func TestUint512DivMod(t *testing.T) {
	a := mustHex512(t, "0000000000000000010000000000000000000123856276386abababdefaaa334")
	b := mustHex512(t, "00000000000000000000000000000000000000000000010000727272111000bb")
	want := mustHex512(t, "000000000000000000000000000000000000ffff8d8dc118f9e0a95c57a8194c")
	got := a.Div(b)
	if !got.Equal(want) {
		t.Fatalf("div mismatch: got %s, want %s", got.Hex(), want.Hex())
	}
}

func TestUint512Mod(t *testing.T) {
	a := mustHex512(t, "0000000000000000000000008756234895623478527364572893746527839475")
	b := mustHex512(t, "0000000000000000000000000000000000378491723647283746713457163456")
	want := mustHex512(t, "00000000000000000000000000000000002a26830d0b01fcda67f4eeb0c70dcb")
	got := a.Mod(b)
	if !got.Equal(want) {
		t.Fatalf("mod mismatch: got %s, want %s", got.Hex(), want.Hex())
	}
}

func TestUint512ShlShr(t *testing.T) {
	a := mustHex512(t, "28c787be787b787bd787182732873222222")
	want := mustHex512(t, "28c787be787b787bd7871827328732222220")
	if got := a.Lsh(4); !got.Equal(want) {
		t.Fatalf("shl mismatch: got %s, want %s", got.Hex(), want.Hex())
	}

	b := mustHex512(t, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	wantShr := mustHex512(t, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if got := b.Rsh(128); !got.Equal(wantShr) {
		t.Fatalf("shr mismatch: got %s, want %s", got.Hex(), wantShr.Hex())
	}

	c := mustHex512(t, "187236471892734617892374617829873467")
	wantShr2 := mustHex512(t, "c391b238c4939a30bc491ba30bc14c3")
	if got := c.Rsh(17); !got.Equal(wantShr2) {
		t.Fatalf("shr mismatch: got %s, want %s", got.Hex(), wantShr2.Hex())
	}
}

func TestUint512SubWide(t *testing.T) {
	a := mustHex512(t, "0000062374985273465728937456278374652783deadbeefdeadbeefdeadbeef")
	b := mustHex512(t, "0000000000000000000000000000000000000000000000005273657287abcdef")
	want := mustHex512(t, "0000062374985273465728937456278374652783deadbeef8c3a597d5701f100")
	if got := a.Sub(b); !got.Equal(want) {
		t.Fatalf("sub mismatch: got %s, want %s", got.Hex(), want.Hex())
	}
}

func TestUint256OverflowingAdd(t *testing.T) {
	max := Uint256FromLimbs([4]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)})
	sum, overflow := max.OverflowingAdd(Uint256From(1))
	if !overflow {
		t.Fatalf("expected overflow")
	}
	if !sum.IsZero() {
		t.Fatalf("expected wraparound to zero, got %s", sum)
	}
}

func TestUint256OverflowingSubUnderflow(t *testing.T) {
	_, borrow := Uint256From(1).OverflowingSub(Uint256From(2))
	if !borrow {
		t.Fatalf("expected borrow")
	}
}

func TestInt512SignedCompare(t *testing.T) {
	if !Int512FromInt64(-201).LessThan(Int512FromInt64(-2)) {
		t.Fatalf("expected -201 < -2")
	}
	if Int512FromInt64(-2).LessThan(Int512FromInt64(-201)) {
		t.Fatalf("did not expect -2 < -201")
	}
	if !Int512FromInt64(-1).LessThan(Int512FromInt64(0)) {
		t.Fatalf("expected -1 < 0")
	}
}

func TestInt512SignedMul(t *testing.T) {
	got := Int512FromInt64(-17).Mul(Int512FromInt64(2))
	limbs := got.Unsigned().Limbs()
	want := ^uint64(0) - (34 - 1)
	if limbs[0] != want {
		t.Fatalf("low limb of -17*2 = %#x, want %#x", limbs[0], want)
	}
	if got.Sign() >= 0 {
		t.Fatalf("expected negative result")
	}
}

func TestInt512SignedMulSecond(t *testing.T) {
	got := Int512FromInt64(422).Mul(Int512FromInt64(-800))
	limbs := got.Unsigned().Limbs()
	want := ^uint64(0) - (337600 - 1)
	if limbs[0] != want {
		t.Fatalf("low limb of 422*-800 = %#x, want %#x", limbs[0], want)
	}
}

func TestInt256WidenSignExtends(t *testing.T) {
	highBit := mustHex256(t, "8000000000000000000000000000000000000000000000000000000000000000")
	got := highBit.ToSigned().Widen()
	want := mustHexInt512(t, "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff8000000000000000000000000000000000000000000000000000000000000000")
	if got.Cmp(want) != 0 {
		t.Fatalf("widen sign-extend mismatch: got %s, want %s", got, want)
	}
}

func mustHexInt512(t *testing.T, s string) Int512 {
	t.Helper()
	u, err := Uint512Hex(s)
	if err != nil {
		t.Fatalf("Uint512Hex(%q): %v", s, err)
	}
	return Int512From(u)
}

func TestInt512ShrSignExtends(t *testing.T) {
	neg := Int512FromInt64(-8)
	got := neg.Shr(1)
	want := Int512FromInt64(-4)
	if got.Cmp(want) != 0 {
		t.Fatalf("-8 >> 1 = %s, want %s", got, want)
	}
}

func TestInt512ExtGCDModInverse(t *testing.T) {
	m, err := Uint256Dec("115792089237316195423570985008687907853269984665640564039457584007908834671663")
	if err != nil {
		t.Fatalf("parse modulus: %v", err)
	}
	a := Uint256From(7)
	inv, ok := a.ModInverse(m)
	if !ok {
		t.Fatalf("expected inverse to exist")
	}
	got := a.ModMul(inv, m)
	if !got.Equal(One256) {
		t.Fatalf("a * inv(a) mod m = %s, want 1", got)
	}
}

func TestUint256HexRoundTrip(t *testing.T) {
	v := mustHex256(t, "deadbeef")
	if got := v.Hex(); got != "deadbeef" {
		t.Fatalf("hex round trip: got %s, want deadbeef", got)
	}
}

func TestUint256Bytes32RoundTrip(t *testing.T) {
	v := mustDec256(t, "123456789012345678901234567890")
	b := v.Bytes32()
	got := Uint256FromBytes32(b)
	if !got.Equal(v) {
		t.Fatalf("bytes32 round trip: got %s, want %s", got, v)
	}
}

// TestRapidAddSubRoundTrip checks the ring-law invariant that subtracting
// back what was added recovers the original value, for arbitrary 256-bit
// operands, mirroring the overflowing add/sub relationship exercised by
// the reference implementation's arithmetic tests.
func TestRapidAddSubRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genUint256(t)
		b := genUint256(t)
		sum := a.Add(b)
		back := sum.Sub(b)
		if !back.Equal(a) {
			t.Fatalf("(a+b)-b != a: a=%s b=%s sum=%s back=%s", a, b, sum, back)
		}
	})
}

// TestRapidMulDistributesOverAdd checks a*(b+c) == a*b + a*c mod 2^256,
// the distributive law that must hold for wrapping arithmetic the same
// way it holds for unbounded integers.
func TestRapidMulDistributesOverAdd(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genUint256(t)
		b := genUint256(t)
		c := genUint256(t)
		lhs := a.Mul(b.Add(c))
		rhs := a.Mul(b).Add(a.Mul(c))
		if !lhs.Equal(rhs) {
			t.Fatalf("distributive law failed: a=%s b=%s c=%s", a, b, c)
		}
	})
}

// TestRapidDivModReconstructs checks a == b*(a/b) + (a%b) for nonzero b,
// the fundamental division identity.
func TestRapidDivModReconstructs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genUint256(t)
		b := genUint256(t)
		if b.IsZero() {
			return
		}
		q, r := a.DivMod(b)
		reconstructed := b.Mul(q).Add(r)
		if !reconstructed.Equal(a) {
			t.Fatalf("div/mod identity failed: a=%s b=%s q=%s r=%s", a, b, q, r)
		}
		if r.Cmp(b) >= 0 {
			t.Fatalf("remainder %s not smaller than divisor %s", r, b)
		}
	})
}

func genUint256(t *rapid.T) Uint256 {
	var limbs [4]uint64
	for i := range limbs {
		limbs[i] = rapid.Uint64().Draw(t, "limb")
	}
	return Uint256FromLimbs(limbs)
}
