package p2p

import (
	"github.com/decred/dcrd/lru"

	"github.com/rubin-chain/corenode/chainhash"
)

// seenCacheSize bounds how many recently seen tx/block hashes a peer's
// dedup cache remembers before evicting the least recently used entry.
// A node only needs enough depth to suppress immediate re-announcement
// storms from a single peer, not a durable inventory index.
const seenCacheSize = 5000

// SeenSet is a bounded recently-seen-inventory cache: per spec.md §5's
// peer loop, it lets a peer session drop a `tx`/`block` announcement
// it has already forwarded to the validation goroutine without paying
// for an unbounded map. Grounded on the dcrd/lru cache the wider pack
// (toole-brendan-shell, EXCCoin-exccd) depends on for exactly this
// inv-dedup role; no pack file shows a literal call site, so the API
// here follows the well-known NewCache/Contains/Add shape
// documented in DESIGN.md rather than an in-pack usage example.
type SeenSet struct {
	cache *lru.Cache
}

// NewSeenSet builds a SeenSet holding at most capacity hashes.
func NewSeenSet(capacity uint) *SeenSet {
	return &SeenSet{cache: lru.NewCache(capacity)}
}

// Seen reports whether hash has already been recorded.
func (s *SeenSet) Seen(hash chainhash.Sha256) bool {
	return s.cache.Contains(hash)
}

// Add records hash as seen, evicting the least recently used entry if
// the cache is already at capacity.
func (s *SeenSet) Add(hash chainhash.Sha256) {
	s.cache.Add(hash)
}
