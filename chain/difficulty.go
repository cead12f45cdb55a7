package chain

import "github.com/rubin-chain/corenode/bigint"

// CompactToTarget decodes the "bits" field's 24-bit mantissa/8-bit
// exponent encoding into a full 256-bit target, per spec.md §9's Open
// Question resolution (prefer the standard compact codec over a
// bit-zeroing approximation). The high bit of the mantissa is a sign
// flag; a negative encoding decodes to zero, matching the reference
// client.
func CompactToTarget(bits uint32) bigint.Uint256 {
	exponent := bits >> 24
	mantissa := bits & 0x007fffff
	negative := bits&0x00800000 != 0

	if negative || mantissa == 0 {
		return bigint.Zero256
	}

	m := bigint.Uint256From(uint64(mantissa))
	if exponent <= 3 {
		return m.Rsh(uint(8 * (3 - exponent)))
	}
	return m.Lsh(uint(8 * (exponent - 3)))
}

// TargetToCompact encodes target into the 24-bit mantissa/8-bit
// exponent "bits" form, the inverse of CompactToTarget.
func TargetToCompact(target bigint.Uint256) uint32 {
	if target.IsZero() {
		return 0
	}

	bytes := target.Bytes32()
	// Find the most-significant non-zero byte (big-endian index).
	start := 0
	for start < 32 && bytes[start] == 0 {
		start++
	}
	if start == 32 {
		return 0
	}
	size := 32 - start

	var mantissa uint32
	switch {
	case size <= 3:
		for i := 0; i < size; i++ {
			mantissa = mantissa<<8 | uint32(bytes[start+i])
		}
		mantissa <<= uint(8 * (3 - size))
	default:
		mantissa = uint32(bytes[start])<<16 | uint32(bytes[start+1])<<8 | uint32(bytes[start+2])
	}

	exponent := uint32(size)
	// The mantissa's top bit doubles as a sign flag; shift down one
	// byte (reducing precision) whenever encoding it directly would
	// look negative.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}
	return exponent<<24 | mantissa
}

// clampRatio bounds the elapsed/expected retarget ratio to [1/4, 4]
// (spec.md §4.6).
func clampRatio(oldTarget bigint.Uint256, elapsed, expected uint64) bigint.Uint256 {
	if elapsed < expected/4 {
		elapsed = expected / 4
	}
	if elapsed > expected*4 {
		elapsed = expected * 4
	}
	num := oldTarget.Mul(bigint.Uint256From(elapsed))
	return num.Div(bigint.Uint256From(expected))
}

// NextTarget implements the §4.6 retarget formula: ratio = clamp(elapsed
// / expected, 1/4, 4); new_target = old_target · ratio, capped at the
// network's proof-of-work limit.
func NextTarget(params *Params, oldTarget bigint.Uint256, firstTimestamp, lastTimestamp uint32) uint32 {
	var elapsed uint64
	if lastTimestamp > firstTimestamp {
		elapsed = uint64(lastTimestamp - firstTimestamp)
	} else {
		elapsed = 1
	}

	newTarget := clampRatio(oldTarget, elapsed, uint64(params.TargetTimespan))
	powLimit := CompactToTarget(params.PowLimit)
	if newTarget.Cmp(powLimit) > 0 {
		newTarget = powLimit
	}
	return TargetToCompact(newTarget)
}
