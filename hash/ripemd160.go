package hash

import "encoding/binary"

var ripemd160Init = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}

var ripemd160RRound = [80]uint32{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	7, 4, 13, 1, 10, 6, 15, 3, 12, 0, 9, 5, 2, 14, 11, 8,
	3, 10, 14, 4, 9, 15, 8, 1, 2, 7, 0, 6, 13, 11, 5, 12,
	1, 9, 11, 10, 0, 8, 12, 4, 13, 3, 7, 15, 14, 5, 6, 2,
	4, 0, 5, 9, 7, 12, 2, 10, 14, 1, 3, 8, 11, 6, 15, 13,
}

var ripemd160RPrimeRound = [80]uint32{
	5, 14, 7, 0, 9, 2, 11, 4, 13, 6, 15, 8, 1, 10, 3, 12,
	6, 11, 3, 7, 0, 13, 5, 10, 14, 15, 8, 12, 4, 9, 1, 2,
	15, 5, 1, 3, 7, 14, 6, 9, 11, 8, 12, 2, 10, 0, 4, 13,
	8, 6, 4, 1, 3, 11, 15, 0, 5, 12, 2, 13, 9, 7, 10, 14,
	12, 15, 10, 4, 1, 5, 8, 7, 6, 2, 13, 14, 0, 3, 9, 11,
}

var ripemd160SRound = [80]uint32{
	11, 14, 15, 12, 5, 8, 7, 9, 11, 13, 14, 15, 6, 7, 9, 8,
	7, 6, 8, 13, 11, 9, 7, 15, 7, 12, 15, 9, 11, 7, 13, 12,
	11, 13, 6, 7, 14, 9, 13, 15, 14, 8, 13, 6, 5, 12, 7, 5,
	11, 12, 14, 15, 14, 15, 9, 8, 9, 14, 5, 6, 8, 6, 5, 12,
	9, 15, 5, 11, 6, 8, 13, 12, 5, 12, 13, 14, 11, 8, 5, 6,
}

var ripemd160SPrimeRound = [80]uint32{
	8, 9, 9, 11, 13, 15, 15, 5, 7, 7, 8, 11, 14, 14, 12, 6,
	9, 13, 15, 7, 12, 8, 9, 11, 7, 7, 12, 7, 6, 15, 13, 11,
	9, 7, 15, 11, 8, 6, 6, 14, 12, 13, 5, 14, 13, 13, 7, 5,
	15, 5, 8, 11, 14, 14, 6, 14, 6, 9, 12, 9, 12, 5, 15, 8,
	8, 5, 12, 9, 12, 5, 14, 6, 8, 13, 6, 5, 15, 13, 11, 11,
}

var ripemd160KRound = [5]uint32{0x00000000, 0x5a827999, 0x6ed9eba1, 0x8f1bbcdc, 0xa953fd4e}
var ripemd160KPrimeRound = [5]uint32{0x50a28be6, 0x5c4dd124, 0x6d703ef3, 0x7a6d76e9, 0x00000000}

func ripemd160F(round int, x, y, z uint32) uint32 {
	switch round {
	case 0:
		return x ^ y ^ z
	case 1:
		return (x & y) | (^x & z)
	case 2:
		return (x | ^y) ^ z
	case 3:
		return (x & z) | (y &^ z)
	default:
		return x ^ (y | ^z)
	}
}

func rol32(x uint32, n uint32) uint32 { return (x << n) | (x >> (32 - n)) }

// ripemd160Block runs the RIPEMD-160 compression function -- two
// parallel lines of five rounds each -- over one 64-byte chunk.
func ripemd160Block(digest *[5]uint32, chunk []byte) {
	var x [16]uint32
	for i := range x {
		x[i] = binary.LittleEndian.Uint32(chunk[i*4:])
	}

	a, b, c, d, e := digest[0], digest[1], digest[2], digest[3], digest[4]
	aa, bb, cc, dd, ee := digest[0], digest[1], digest[2], digest[3], digest[4]

	for i := 0; i < 80; i++ {
		round := i / 16
		t := a + ripemd160F(round, b, c, d) + x[ripemd160RRound[i]] + ripemd160KRound[round]
		t = rol32(t, ripemd160SRound[i]) + e
		a, b, c, d, e = e, t, b, rol32(c, 10), d

		tt := aa + ripemd160F(4-round, bb, cc, dd) + x[ripemd160RPrimeRound[i]] + ripemd160KPrimeRound[round]
		tt = rol32(tt, ripemd160SPrimeRound[i]) + ee
		aa, bb, cc, dd, ee = ee, tt, bb, rol32(cc, 10), dd
	}

	t := digest[1] + c + dd
	digest[1] = digest[2] + d + ee
	digest[2] = digest[3] + e + aa
	digest[3] = digest[4] + a + bb
	digest[4] = digest[0] + b + cc
	digest[0] = t
}

// Sum160 computes the RIPEMD-160 digest of message.
func Sum160(message []byte) [20]byte {
	digest := ripemd160Init
	padded := padMessage(message) // same 0x80/zero/length padding shape as SHA-256, but little-endian length below
	// RIPEMD-160 appends the bit length little-endian, whereas the
	// shared padMessage helper writes it big-endian for SHA-256; redo
	// the last 8 bytes here rather than forking the whole helper.
	bitLen := uint64(len(message)) * 8
	binary.LittleEndian.PutUint64(padded[len(padded)-8:], bitLen)

	for off := 0; off < len(padded); off += 64 {
		ripemd160Block(&digest, padded[off:off+64])
	}
	var out [20]byte
	for i, word := range digest {
		binary.LittleEndian.PutUint32(out[i*4:], word)
	}
	return out
}

// Hash160 computes RIPEMD-160(SHA-256(message)), the digest used for
// P2PKH/P2SH script hashes.
func Hash160(message []byte) [20]byte {
	sha := Sum256(message)
	return Sum160(sha[:])
}
