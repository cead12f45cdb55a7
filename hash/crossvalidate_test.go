package hash

import (
	"testing"

	"golang.org/x/crypto/ripemd160"
	"pgregory.net/rapid"
)

// TestSum160MatchesReferenceImplementation cross-checks the hand-rolled
// RIPEMD-160 in ripemd160.go against golang.org/x/crypto/ripemd160 over arbitrary
// inputs. The hand-rolled version stays the one the rest of this module
// calls (RIPEMD-160 is part of the auditable consensus surface, not a
// library dependency), but nothing stops using the reference
// implementation as an independent oracle in tests.
func TestSum160MatchesReferenceImplementation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		msg := rapid.SliceOfN(rapid.Byte(), 0, 256).Draw(t, "msg")

		h := ripemd160.New()
		h.Write(msg)
		want := h.Sum(nil)

		got := Sum160(msg)
		if string(got[:]) != string(want) {
			t.Fatalf("Sum160(%x) = %x, want %x", msg, got, want)
		}
	})
}
