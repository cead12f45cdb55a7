// Package chain tracks the header chain and its consensus parameters:
// activation heights, difficulty retargeting, and the genesis block
// (spec.md §4.6, §6).
package chain

// Params names the heights at which a consensus rule activates, and
// the network's difficulty bounds. Fixed per network (spec.md §3's
// ChainParams).
type Params struct {
	Name string

	// BIP34Height is the height at which a coinbase's scriptSig must
	// begin with the serialized block height.
	BIP34Height uint64
	// CLTVHeight is the height at which OP_NOP2 becomes
	// OP_CHECKLOCKTIMEVERIFY (BIP-65).
	CLTVHeight uint64
	// StrictDERHeight is BIP-66's activation height. Nothing reads it:
	// secp256k1.ParseDERSignature rejects non-canonical DER encodings
	// at every height, including below this one.
	StrictDERHeight uint64
	// CSVHeight is the height at which OP_CHECKSEQUENCEVERIFY activates
	// (BIP-112). Enforcement itself is out of scope; the height is
	// retained so callers can gate OP_NOP3 consistently with the other
	// activation flags.
	CSVHeight uint64
	// SegWitHeight is the height at which segregated witness
	// transactions become valid (BIP-141). Witness *execution* is out
	// of scope; this gates wire-format acceptance only.
	SegWitHeight uint64

	// PowLimit is the highest (easiest) target the network ever
	// accepts, as a compact "bits" value.
	PowLimit uint32
	// RetargetInterval is the number of blocks between difficulty
	// recalculations.
	RetargetInterval uint64
	// TargetTimespan is the expected wall-clock duration of
	// RetargetInterval blocks, in seconds.
	TargetTimespan uint32
}

// MainNetParams are the defaults spec.md §6 names for mainnet.
var MainNetParams = Params{
	Name:             "mainnet",
	BIP34Height:      227931,
	CLTVHeight:       388381,
	StrictDERHeight:  363725,
	CSVHeight:        419328,
	SegWitHeight:     481824,
	PowLimit:         0x1d00ffff,
	RetargetInterval: 2016,
	TargetTimespan:   2016 * 600,
}

// CLTVActive reports whether OP_CHECKLOCKTIMEVERIFY is active at height.
func (p *Params) CLTVActive(height uint64) bool { return height >= p.CLTVHeight }
