package consensus

import "github.com/rubin-chain/corenode/chainhash"

// MerkleRoot computes the Merkle root over txids per spec.md §4.6: pair
// adjacent hashes and replace with double-SHA-256 of their
// concatenation, duplicating the last element when a level has odd
// length. A last-element-equals-its-predecessor pairing is rejected
// outright — the CVE-2012-2459 duplicate-transaction attack, which
// relies on an implementation silently accepting a forged duplicate to
// make two different block bodies hash to the same root.
func MerkleRoot(txids []chainhash.Sha256) (chainhash.Sha256, error) {
	if len(txids) == 0 {
		return chainhash.Zero, consensusErr(ErrEmptyBlock, "merkle: no transactions")
	}

	level := make([]chainhash.Sha256, len(txids))
	copy(level, txids)

	for len(level) > 1 {
		if len(level)%2 == 1 {
			if level[len(level)-1].Equal(level[len(level)-2]) {
				return chainhash.Zero, consensusErr(ErrDuplicateTxMerkle, "merkle: duplicate last transaction at odd level length")
			}
			level = append(level, level[len(level)-1])
		}
		next := make([]chainhash.Sha256, len(level)/2)
		for i := range next {
			next[i] = pairHash(level[2*i], level[2*i+1])
		}
		level = next
	}
	return level[0], nil
}

func pairHash(a, b chainhash.Sha256) chainhash.Sha256 {
	ab := a.Bytes()
	bb := b.Bytes()
	buf := make([]byte, 0, 64)
	buf = append(buf, ab[:]...)
	buf = append(buf, bb[:]...)
	return chainhash.Sum256d(buf)
}
