// Package bigint implements fixed-width 256- and 512-bit unsigned and
// signed integers as arrays of 64-bit little-endian limbs, with the
// modular arithmetic the consensus engine needs for proof-of-work
// targets and secp256k1 field/scalar operations.
//
// Arithmetic here never allocates on the hot path and never calls into
// math/big: every operation is a direct limb-array algorithm. Unlike a
// schoolbook implementation, multiplication proceeds by doubling one
// operand and accumulating it wherever the matching bit of the other is
// set -- the same "doubling ladder" shape used by scalar multiplication
// on the curve (see the secp256k1 package). Division is a binary
// long-division sweep (see divModLimbs).
package bigint

import "math/bits"

// addLimbs computes dst = a + b across len(dst) limbs and returns the
// carry out of the top limb. dst may alias a or b.
func addLimbs(dst, a, b []uint64) uint64 {
	var carry uint64
	for i := range dst {
		sum, c1 := bits.Add64(a[i], b[i], 0)
		sum, c2 := bits.Add64(sum, carry, 0)
		dst[i] = sum
		carry = c1 + c2
	}
	return carry
}

// subLimbs computes dst = a - b across len(dst) limbs and returns the
// borrow out of the top limb (1 if a < b).
func subLimbs(dst, a, b []uint64) uint64 {
	var borrow uint64
	for i := range dst {
		diff, b1 := bits.Sub64(a[i], b[i], 0)
		diff, b2 := bits.Sub64(diff, borrow, 0)
		dst[i] = diff
		borrow = b1 + b2
	}
	return borrow
}

// isZeroLimbs reports whether every limb is zero.
func isZeroLimbs(a []uint64) bool {
	for _, w := range a {
		if w != 0 {
			return false
		}
	}
	return true
}

// cmpLimbs compares a and b as unsigned integers, most significant
// limb first, returning -1, 0, or 1.
func cmpLimbs(a, b []uint64) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// bitLenLimbs returns the index, plus one, of the highest set bit in a
// (0 if a is entirely zero).
func bitLenLimbs(a []uint64) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != 0 {
			return i*64 + bits.Len64(a[i])
		}
	}
	return 0
}

// testBitLimbs reports whether bit i of a is set.
func testBitLimbs(a []uint64, i int) bool {
	limb := i / 64
	if limb >= len(a) {
		return false
	}
	return (a[limb]>>(uint(i)%64))&1 != 0
}

// shlLimbs computes dst = a << shift (logical, zero fill), truncated to
// len(dst) limbs.
func shlLimbs(dst, a []uint64, shift uint) {
	w := len(dst)
	limbShift := int(shift / 64)
	bitShift := shift % 64

	tmp := make([]uint64, w)
	for i := w - 1; i >= 0; i-- {
		src := i - limbShift
		if src >= 0 && src < w {
			tmp[i] = a[src]
		}
	}
	if bitShift != 0 {
		var carry uint64
		for i := 0; i < w; i++ {
			cur := tmp[i]
			tmp[i] = (cur << bitShift) | carry
			carry = cur >> (64 - bitShift)
		}
	}
	copy(dst, tmp)
}

// shrLimbs computes dst = a >> shift (logical, zero fill), truncated to
// len(dst) limbs.
func shrLimbs(dst, a []uint64, shift uint) {
	w := len(dst)
	limbShift := int(shift / 64)
	bitShift := shift % 64

	tmp := make([]uint64, w)
	for i := 0; i < w; i++ {
		src := i + limbShift
		if src >= 0 && src < w {
			tmp[i] = a[src]
		}
	}
	if bitShift != 0 {
		var carry uint64
		for i := w - 1; i >= 0; i-- {
			cur := tmp[i]
			tmp[i] = (cur >> bitShift) | carry
			carry = cur << (64 - bitShift)
		}
	}
	copy(dst, tmp)
}

// mulLimbsWrapping computes dst = (a * b) mod 2^(64*len(dst)).
//
// It walks the bits of b from the lowest up to the highest set bit,
// doubling a running copy of a (a, 2a, 4a, ...) at each step and
// accumulating it into the result wherever the matching bit of b is
// set -- the fixed-width analogue of the curve's
// doubling-and-accumulate scalar multiplication.
func mulLimbsWrapping(dst, a, b []uint64) {
	w := len(dst)
	result := make([]uint64, w)
	if isZeroLimbs(a) || isZeroLimbs(b) {
		copy(dst, result)
		return
	}

	addend := make([]uint64, w)
	copy(addend, a)
	nBits := bitLenLimbs(b)
	tmp := make([]uint64, w)
	for i := 0; i < nBits; i++ {
		if testBitLimbs(b, i) {
			addLimbs(tmp, result, addend)
			copy(result, tmp)
		}
		addLimbs(tmp, addend, addend)
		copy(addend, tmp)
	}
	copy(dst, result)
}

// divModLimbs computes the quotient and remainder of a / b (both
// len(a)-limb wide, unsigned) by a binary long-division sweep: shift a
// single bit of a into a running remainder at a time, most-significant
// bit first, subtracting b (doubled to the matching bit position)
// whenever it fits.
//
// Panics if b is zero -- division by zero is a programmer error here,
// not a recoverable condition.
func divModLimbs(a, b []uint64) (quotient, remainder []uint64) {
	w := len(a)
	if isZeroLimbs(b) {
		panic("bigint: division by zero")
	}
	quotient = make([]uint64, w)
	remainder = make([]uint64, w)
	if cmpLimbs(b, a) > 0 {
		copy(remainder, a)
		return quotient, remainder
	}

	nBits := bitLenLimbs(a)
	tmp := make([]uint64, w)
	for i := nBits - 1; i >= 0; i-- {
		shlLimbs(remainder, remainder, 1)
		if testBitLimbs(a, i) {
			remainder[0] |= 1
		}
		if cmpLimbs(remainder, b) >= 0 {
			subLimbs(tmp, remainder, b)
			copy(remainder, tmp)
			setBitLimbs(quotient, i)
		}
	}
	return quotient, remainder
}

func setBitLimbs(a []uint64, i int) {
	limb := i / 64
	if limb >= len(a) {
		return
	}
	a[limb] |= 1 << (uint(i) % 64)
}

// negateLimbs computes dst = two's-complement negation of a (invert
// every bit, then add one), truncated to len(dst) limbs.
func negateLimbs(dst, a []uint64) {
	for i := range dst {
		dst[i] = ^a[i]
	}
	one := make([]uint64, len(dst))
	one[0] = 1
	addLimbs(dst, dst, one)
}

// signBitSet reports whether the most significant bit of the top limb
// is set, i.e. whether a's two's-complement interpretation is negative.
func signBitSet(a []uint64) bool {
	return a[len(a)-1]>>63 != 0
}
