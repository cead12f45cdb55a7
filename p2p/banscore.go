package p2p

import "time"

// BanThreshold is the accumulated score past which a peer is
// disconnected and banned, a graduated concretization of spec.md §4.6's
// "treats the supplying peer as malformed" (adopted as a supplement
// per DESIGN.md, not a contradiction of the spec).
const BanThreshold = 100

// Ban-score deltas per offense, mirroring the reference client's
// misbehavior accounting.
const (
	BanScoreChecksumMismatch = 10
	BanScoreBadHeaders       = 20
	BanScoreBadBlock         = 100
)

// BanScore accumulates misbehavior points for one peer, decaying
// linearly over time so a peer that stops misbehaving recovers.
type BanScore struct {
	score       int
	lastUpdated time.Time
}

// Add records a misbehavior of the given weight and returns the peer's
// score afterward.
func (b *BanScore) Add(now time.Time, delta int) int {
	b.decayTo(now)
	b.score += delta
	return b.score
}

// ShouldBan reports whether the peer has crossed BanThreshold.
func (b *BanScore) ShouldBan(now time.Time) bool {
	b.decayTo(now)
	return b.score >= BanThreshold
}

func (b *BanScore) decayTo(now time.Time) {
	if b.lastUpdated.IsZero() {
		b.lastUpdated = now
		return
	}
	if now.Before(b.lastUpdated) {
		b.lastUpdated = now
		return
	}
	minutes := int(now.Sub(b.lastUpdated) / time.Minute)
	if minutes <= 0 {
		return
	}
	b.score -= minutes
	if b.score < 0 {
		b.score = 0
	}
	b.lastUpdated = now
}
