package chain

import (
	"encoding/hex"

	"github.com/rubin-chain/corenode/wire"
)

// genesisRawHex is the full serialized mainnet genesis block (spec.md
// §6): an 80-byte header plus its single coinbase transaction, whose
// scriptSig carries the famous banner. It is parsed once through the
// ordinary wire codec rather than hand-assembled field by field, so
// the same decoder that handles every other block also proves out the
// one block every node must agree on without a peer.
const genesisRawHex = "01000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"3ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a" +
	"29ab5f49" +
	"ffff001d" +
	"1dac2b7c" +
	"01" +
	"01000000" +
	"01" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"ffffffff" +
	"4d" +
	"04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73" +
	"ffffffff" +
	"01" +
	"00f2052a01000000" +
	"43" +
	"4104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac" +
	"00000000"

// Genesis parses and returns the hard-coded mainnet genesis block.
// Callers needing only the header can call Genesis().Header directly;
// Block.BlockHash() on the result must equal GenesisHashHex.
func Genesis() *wire.Block {
	raw, err := hex.DecodeString(genesisRawHex)
	if err != nil {
		panic("chain: malformed genesis constant: " + err.Error())
	}
	block, err := wire.DeserializeBlock(raw)
	if err != nil {
		panic("chain: genesis constant fails to parse: " + err.Error())
	}
	return block
}

// GenesisHashHex is the expected display-order hash of the genesis
// block, from spec.md §6 and §8.
const GenesisHashHex = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"

// GenesisMerkleRootHex is the expected display-order Merkle root of
// the genesis block's single transaction.
const GenesisMerkleRootHex = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
