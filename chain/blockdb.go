package chain

import (
	"fmt"

	"github.com/rubin-chain/corenode/bigint"
	"github.com/rubin-chain/corenode/chainhash"
	"github.com/rubin-chain/corenode/wire"
)

// BlockDB is the header-chain index from spec.md §3: an ordered
// sequence of block hashes (height → hash), the header behind each
// hash, and the running target the next header must satisfy. Its
// invariants are enforced entirely through AcceptHeader/MarkValidated:
// hashes[0] is genesis; hashes[i].PrevBlock == hashes[i-1] for i > 0;
// blocksValidated never exceeds len(hashes).
type BlockDB struct {
	params *Params

	hashes  []chainhash.Sha256
	headers map[chainhash.Sha256]wire.BlockHeader
	heights map[chainhash.Sha256]uint64

	blocksValidated int
	blocksRequested int

	currentTarget bigint.Uint256
}

// NewBlockDB opens a BlockDB seeded with the network's genesis block.
func NewBlockDB(params *Params) *BlockDB {
	genesis := Genesis()
	hash := genesis.BlockHash()
	db := &BlockDB{
		params:          params,
		hashes:          []chainhash.Sha256{hash},
		headers:         map[chainhash.Sha256]wire.BlockHeader{hash: genesis.Header},
		heights:         map[chainhash.Sha256]uint64{hash: 0},
		blocksValidated: 1,
		currentTarget:   CompactToTarget(genesis.Header.Bits),
	}
	return db
}

// Height is the index of the chain tip (genesis is height 0).
func (db *BlockDB) Height() uint64 { return uint64(len(db.hashes) - 1) }

// Tip is the hash of the chain's current head.
func (db *BlockDB) Tip() chainhash.Sha256 { return db.hashes[len(db.hashes)-1] }

// CurrentTarget is the target the next header must satisfy.
func (db *BlockDB) CurrentTarget() bigint.Uint256 { return db.currentTarget }

// BlocksValidated is the count of blocks whose transactions have been
// fully applied to the UTXO set, as opposed to headers merely accepted
// into the index.
func (db *BlockDB) BlocksValidated() int { return db.blocksValidated }

// HashAt returns the block hash at height, if known.
func (db *BlockDB) HashAt(height uint64) (chainhash.Sha256, bool) {
	if height >= uint64(len(db.hashes)) {
		return chainhash.Sha256{}, false
	}
	return db.hashes[height], true
}

// HeaderByHash looks up a previously accepted header.
func (db *BlockDB) HeaderByHash(hash chainhash.Sha256) (wire.BlockHeader, bool) {
	h, ok := db.headers[hash]
	return h, ok
}

// HeaderAt returns the header at height, if known.
func (db *BlockDB) HeaderAt(height uint64) (wire.BlockHeader, bool) {
	hash, ok := db.HashAt(height)
	if !ok {
		return wire.BlockHeader{}, false
	}
	return db.HeaderByHash(hash)
}

// Contains reports whether hash is already part of the accepted chain.
func (db *BlockDB) Contains(hash chainhash.Sha256) bool {
	_, ok := db.headers[hash]
	return ok
}

// HeightOf looks up the height at which hash was accepted, for callers
// that only have a block's hash (e.g. an incoming `block` message) and
// need its height to drive consensus validation.
func (db *BlockDB) HeightOf(hash chainhash.Sha256) (uint64, bool) {
	height, ok := db.heights[hash]
	return height, ok
}

// AcceptHeader implements spec.md §4.6 "Header acceptance": the
// header's PrevBlock must equal the current tip, its compact bits must
// equal the engine's current target, and its block hash — read as a
// little-endian u256 — must be strictly below that target. On success
// the header is appended to the index, the height's retarget (if due)
// is applied for the next header, and the new tip height is returned.
func (db *BlockDB) AcceptHeader(h wire.BlockHeader) (uint64, error) {
	tip := db.Tip()
	if !h.PrevBlock.Equal(tip) {
		return 0, fmt.Errorf("chain: header prev_block %s does not extend tip %s", h.PrevBlock, tip)
	}

	wantBits := TargetToCompact(db.currentTarget)
	if h.Bits != wantBits {
		return 0, fmt.Errorf("chain: header bits %#08x != expected %#08x", h.Bits, wantBits)
	}

	hash := h.BlockHash()
	if hash.ToUint256().Cmp(db.currentTarget) >= 0 {
		return 0, fmt.Errorf("chain: header hash %s does not satisfy target", hash)
	}

	db.hashes = append(db.hashes, hash)
	db.headers[hash] = h

	height := db.Height()
	db.heights[hash] = height
	db.currentTarget = db.nextTargetAfter(height)
	return height, nil
}

// nextTargetAfter computes the target the header at height+1 must
// satisfy, applying the §4.6 retarget rule every RetargetInterval
// blocks and otherwise holding the target steady.
func (db *BlockDB) nextTargetAfter(height uint64) bigint.Uint256 {
	next := height + 1
	if next%db.params.RetargetInterval != 0 {
		return db.currentTarget
	}
	firstHeader, ok := db.HeaderAt(next - db.params.RetargetInterval)
	if !ok {
		return db.currentTarget
	}
	lastHeader, ok := db.HeaderAt(height)
	if !ok {
		return db.currentTarget
	}
	bits := NextTarget(db.params, db.currentTarget, firstHeader.Timestamp, lastHeader.Timestamp)
	return CompactToTarget(bits)
}

// MarkValidated records that the block at the chain's current
// BlocksValidated count (i.e. the next unvalidated height) has had its
// transactions fully applied to the UTXO set. It is the caller's
// responsibility to have committed the corresponding UTXODiff first.
func (db *BlockDB) MarkValidated() {
	if db.blocksValidated < len(db.hashes) {
		db.blocksValidated++
	}
}

// IncRequested counts one outstanding getdata/getheaders request, for
// the "count" interactive commands (spec.md §6).
func (db *BlockDB) IncRequested() { db.blocksRequested++ }

// BlocksRequested is the running count of blocks requested from peers.
func (db *BlockDB) BlocksRequested() int { return db.blocksRequested }
