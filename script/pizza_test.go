package script

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubin-chain/corenode/wire"
)

// TestPizzaTransaction is the known-answer test named in spec.md §8:
// txid a1075db55d416d3ca199f55b576f28… input 0 must verify end-to-end
// against the standard P2PKH template with hash_type=1 (SIGHASH_ALL).
// The raw transaction and pubkey hash are taken from the historical
// "pizza transaction" writeup this test is named for.
func TestPizzaTransaction(t *testing.T) {
	rawTx, err := hex.DecodeString(
		"01000000018dd4f5fbd5e980fc02f35c6ce145935b11e284605bf599a13c6d415db55d07a1" +
			"000000008b4830450221009908144ca6539e09512b9295c8a27050d478fbb96f8addbc3" +
			"d075544dc41328702201aa528be2b907d316d2da068dd9eb1e23243d97e444d59290d2f" +
			"ddf25269ee0e0141042e930f39ba62c6534ee98ed20ca98959d34aa9e057cda01cfd422" +
			"c6bab3667b76426529382c23f42b9b08d7832d4fee1d6b437a8526e59667ce9c4e9dceb" +
			"cabbffffffff0200719a81860000001976a914df1bd49a6c9e34dfa8631f2c54cf39986" +
			"027501b88ac009f0a5362000000434104cd5e9726e6afeae357b1806be25a4c3d381177" +
			"5835d235417ea746b7db9eeab33cf01674b944c64561ce3388fa1abd0fa88b06c44ce81" +
			"e2234aa70fe578d455dac00000000")
	require.NoError(t, err)

	tx, err := wire.DeserializeTx(rawTx)
	require.NoError(t, err)
	require.Len(t, tx.TxIn, 1)

	unlockScript := tx.TxIn[0].SignatureScript

	pubKeyHash, err := hex.DecodeString("46af3fb481837fadbb421727f9959c2d32a36829")
	require.NoError(t, err)

	var lockScript []byte
	lockScript = append(lockScript, byte(OP_DUP))
	lockScript = append(lockScript, byte(OP_HASH160))
	lockScript = append(lockScript, mustPush(pubKeyHash)...)
	lockScript = append(lockScript, byte(OP_EQUALVERIFY))
	lockScript = append(lockScript, byte(OP_CHECKSIG))

	e := NewEngine(tx, 0, Flags{})
	ok, err := e.Execute(unlockScript, lockScript)
	require.NoError(t, err)
	require.True(t, ok, "pizza transaction input 0 must verify against its P2PKH subscript")
}
