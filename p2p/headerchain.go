package p2p

import (
	"github.com/rubin-chain/corenode/chain"
	"github.com/rubin-chain/corenode/wire"
)

// HeadersResult reports the outcome of applying one `headers` message
// to the chain: how many headers extended the tip, and — on failure —
// the ban-score weight the supplying peer earns (spec.md §8's
// "headers message whose first header's prev_block ≠ current tip"
// fault scenario).
type HeadersResult struct {
	Accepted   int
	BanScore   int
	Disconnect bool
}

// ApplyHeaders feeds headers to db in order via AcceptHeader,
// stopping at the first rejection. A headers message that fails on its
// very first header — the case spec.md §8 calls out — disconnects the
// peer outright; a failure partway through a batch only drops the
// remaining headers in that message.
func ApplyHeaders(db *chain.BlockDB, headers []wire.BlockHeader) HeadersResult {
	var result HeadersResult
	for i, h := range headers {
		if _, err := db.AcceptHeader(h); err != nil {
			if i == 0 {
				result.BanScore = BanScoreBadHeaders
				result.Disconnect = true
			} else {
				result.BanScore = BanScoreChecksumMismatch
			}
			return result
		}
		result.Accepted++
	}
	return result
}
