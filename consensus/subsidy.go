package consensus

// initialSubsidy is the block reward at height 0..209999: 50 BTC in
// satoshis.
const initialSubsidy = 50 * 1e8

// subsidyHalvingInterval is the number of blocks between each reward
// halving.
const subsidyHalvingInterval = 210000

// BlockSubsidy computes block_subsidy(h) per spec.md §4.6: the reward
// halves once for every full subsidyHalvingInterval blocks in height,
// reaching zero once it has halved past the 64-bit width of the
// initial subsidy.
func BlockSubsidy(height uint64) uint64 {
	halvings := height / subsidyHalvingInterval
	if halvings >= 64 {
		return 0
	}
	return initialSubsidy >> halvings
}
