// Package hash implements the hash functions the consensus engine signs
// and verifies against: SHA-256, its double application ("hash256"),
// and RIPEMD-160. All three are written from scratch, byte for byte
// against their published specifications, rather than delegated to a
// library -- the hashing pipeline that txids, block hashes, and P2PKH
// addresses rest on is part of the auditable consensus surface, not an
// external dependency.
package hash

import "encoding/binary"

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3,
	0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5,
	0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var sha256Init = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

func rotr32(word uint32, n uint) uint32 { return (word >> n) | (word << (32 - n)) }

func sha256BSig0(w uint32) uint32 { return rotr32(w, 2) ^ rotr32(w, 13) ^ rotr32(w, 22) }
func sha256BSig1(w uint32) uint32 { return rotr32(w, 6) ^ rotr32(w, 11) ^ rotr32(w, 25) }
func sha256SSig0(w uint32) uint32 { return rotr32(w, 7) ^ rotr32(w, 18) ^ (w >> 3) }
func sha256SSig1(w uint32) uint32 { return rotr32(w, 17) ^ rotr32(w, 19) ^ (w >> 10) }

// sha256Block runs the compression function over one 64-byte chunk,
// updating digest in place.
func sha256Block(digest *[8]uint32, chunk []byte) {
	var sched [64]uint32
	for i := 0; i < 16; i++ {
		sched[i] = binary.BigEndian.Uint32(chunk[i*4:])
	}
	for i := 16; i < 64; i++ {
		sched[i] = sha256SSig1(sched[i-2]) + sched[i-7] + sha256SSig0(sched[i-15]) + sched[i-16]
	}

	a, b, c, d, e, f, g, h := digest[0], digest[1], digest[2], digest[3], digest[4], digest[5], digest[6], digest[7]

	for i := 0; i < 64; i++ {
		ch := (e & f) ^ (^e & g)
		t1 := h + sha256BSig1(e) + ch + sha256K[i] + sched[i]
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := sha256BSig0(a) + maj

		h = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	digest[0] += a
	digest[1] += b
	digest[2] += c
	digest[3] += d
	digest[4] += e
	digest[5] += f
	digest[6] += g
	digest[7] += h
}

// padMessage appends the standard Merlin-Damgard padding (a single 0x80
// byte, zero fill, then the bit length as a big-endian uint64) and
// returns the result, which is always a multiple of 64 bytes.
func padMessage(message []byte) []byte {
	bitLen := uint64(len(message)) * 8
	padded := make([]byte, 0, len(message)+72)
	padded = append(padded, message...)
	padded = append(padded, 0x80)
	for len(padded)%64 != 56 {
		padded = append(padded, 0)
	}
	var lenBytes [8]byte
	binary.BigEndian.PutUint64(lenBytes[:], bitLen)
	return append(padded, lenBytes[:]...)
}

// Sum256 computes the SHA-256 digest of message.
func Sum256(message []byte) [32]byte {
	digest := sha256Init
	padded := padMessage(message)
	for off := 0; off < len(padded); off += 64 {
		sha256Block(&digest, padded[off:off+64])
	}
	var out [32]byte
	for i, word := range digest {
		binary.BigEndian.PutUint32(out[i*4:], word)
	}
	return out
}

// Sum256d computes SHA-256(SHA-256(message)) -- the "hash256" used for
// txids, block hashes, merkle nodes, and the checksum in wire message
// framing.
func Sum256d(message []byte) [32]byte {
	first := Sum256(message)
	return Sum256(first[:])
}
