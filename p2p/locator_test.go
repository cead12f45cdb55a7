package p2p

import "testing"

func TestBuildLocatorHeightsSmallChain(t *testing.T) {
	got := BuildLocatorHeights(5)
	want := []uint64{5, 4, 3, 2, 1, 0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBuildLocatorHeightsAlwaysIncludesGenesis(t *testing.T) {
	got := BuildLocatorHeights(100000)
	if got[len(got)-1] != 0 {
		t.Fatalf("locator %v does not end at genesis", got)
	}
	if len(got) > MaxLocatorHashes {
		t.Fatalf("locator has %d entries, want <= %d", len(got), MaxLocatorHashes)
	}
}

func TestBuildLocatorHeightsZeroHeight(t *testing.T) {
	got := BuildLocatorHeights(0)
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("got %v, want [0]", got)
	}
}
