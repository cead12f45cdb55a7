package p2p

// MaxLocatorHashes bounds how many hashes BuildLocatorHeights returns,
// matching the reference client's practical cap.
const MaxLocatorHashes = 64

// BuildLocatorHeights implements the "standard block-locator rule"
// spec.md §6 names for getheaders: dense over the most recent blocks,
// exponentially sparser back toward genesis, which is always included.
// Heights are returned tip-first. The caller maps each height to a
// hash via its BlockDB.
func BuildLocatorHeights(tipHeight uint64) []uint64 {
	heights := make([]uint64, 0, MaxLocatorHashes)

	for i := uint64(0); i < 10 && len(heights) < MaxLocatorHashes; i++ {
		if tipHeight < i {
			break
		}
		heights = append(heights, tipHeight-i)
	}

	step := uint64(1)
	for len(heights) < MaxLocatorHashes {
		last := heights[len(heights)-1]
		step *= 2
		if last < step {
			break
		}
		heights = append(heights, last-step)
	}

	if heights[len(heights)-1] != 0 && len(heights) < MaxLocatorHashes {
		heights = append(heights, 0)
	} else if heights[len(heights)-1] != 0 {
		heights[len(heights)-1] = 0
	}

	return heights
}
