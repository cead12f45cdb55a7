package consensus

import "github.com/rubin-chain/corenode/chainhash"

// UTXOID identifies one spendable output: the transaction that created
// it and its output index.
type UTXOID struct {
	Txid  chainhash.Sha256
	Index uint32
}

// Entry is the scratchpad's view of one unspent output.
type Entry struct {
	Value             uint64
	PkScript          []byte
	CreationHeight    uint64
	CreatedByCoinbase bool
}

// UTXOSet is the committed, base unspent-output set a UTXOState is
// opened over.
type UTXOSet interface {
	Get(id UTXOID) (Entry, bool)
}

// MapUTXOSet is the simplest UTXOSet: an in-memory map, suitable for
// tests and for the store package's in-RAM cache in front of bbolt.
type MapUTXOSet map[UTXOID]Entry

func (m MapUTXOSet) Get(id UTXOID) (Entry, bool) {
	e, ok := m[id]
	return e, ok
}

// UTXODiff is the finalized (added, removed) effect of one validated
// block, applied to a base UTXOSet exactly once (spec.md §4.7).
type UTXODiff struct {
	Added   map[UTXOID]Entry
	Removed []UTXOID
}

// UTXOState is the per-block scratchpad spec.md §3 describes: reads
// fall through to base, writes accumulate in added/removed until the
// block finishes validating and the scratchpad is turned into a
// UTXODiff for atomic commit.
type UTXOState struct {
	base           UTXOSet
	added          map[UTXOID]Entry
	removed        map[UTXOID]bool
	height         uint64
	accumulatedFee uint64
}

// NewUTXOState opens a scratchpad over base at the given block height.
func NewUTXOState(base UTXOSet, height uint64) *UTXOState {
	return &UTXOState{
		base:    base,
		added:   make(map[UTXOID]Entry),
		removed: make(map[UTXOID]bool),
		height:  height,
	}
}

// Get reports the current entry for id, honoring the scratchpad's
// added/removed overlay on top of base.
func (s *UTXOState) Get(id UTXOID) (Entry, bool) {
	if s.removed[id] {
		return Entry{}, false
	}
	if e, ok := s.added[id]; ok {
		return e, true
	}
	return s.base.Get(id)
}

// Spend removes id from the scratchpad's present set. It fails if id
// is not currently present (already spent, or never existed).
func (s *UTXOState) Spend(id UTXOID) (Entry, error) {
	e, ok := s.Get(id)
	if !ok {
		return Entry{}, consensusErr(ErrMissingUTXO, "no such utxo %x:%d", id.Txid.Bytes(), id.Index)
	}
	delete(s.added, id)
	s.removed[id] = true
	return e, nil
}

// Create inserts a new output produced by the transaction currently
// being validated.
func (s *UTXOState) Create(id UTXOID, e Entry) {
	delete(s.removed, id)
	s.added[id] = e
}

// AddFee accumulates a non-coinbase transaction's fee (inputs minus
// outputs) for the coinbase's budget check.
func (s *UTXOState) AddFee(fee uint64) { s.accumulatedFee += fee }

// AccumulatedFee is the total fee collected so far in this block.
func (s *UTXOState) AccumulatedFee() uint64 { return s.accumulatedFee }

// Height is the block height this scratchpad was opened at.
func (s *UTXOState) Height() uint64 { return s.height }

// IntoDiff finalizes the scratchpad into the UTXODiff that the caller
// commits to the base set once validation of the whole block succeeds.
func (s *UTXOState) IntoDiff() UTXODiff {
	removed := make([]UTXOID, 0, len(s.removed))
	for id := range s.removed {
		removed = append(removed, id)
	}
	added := make(map[UTXOID]Entry, len(s.added))
	for id, e := range s.added {
		added[id] = e
	}
	return UTXODiff{Added: added, Removed: removed}
}

// Commit applies diff to base: every removed id must have been
// present (its absence is a fatal consistency bug, not a recoverable
// error); every added entry is inserted, with a duplicate id permitted
// (and left to the caller to log) per spec.md §4.7's note on the two
// historical BIP-30 collisions.
func Commit(base MapUTXOSet, diff UTXODiff) {
	for _, id := range diff.Removed {
		if _, ok := base[id]; !ok {
			panic("consensus: Commit removes absent utxo " + id.Txid.String())
		}
		delete(base, id)
	}
	for id, e := range diff.Added {
		base[id] = e
	}
}
