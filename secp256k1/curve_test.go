package secp256k1

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubin-chain/corenode/bigint"
)

func TestGeneratorOnCurve(t *testing.T) {
	require.True(t, G.IsOnCurve(), "generator point does not satisfy the curve equation")
}

func Test16TimesG(t *testing.T) {
	k := bigint.Uint256From(16)
	got := ScalarMult(k, G)
	require.False(t, got.IsInfinity(), "16*G should not be infinity")

	wantX, err := bigint.Uint256Hex("E60FCE93B59E9EC53011AABC21C23E97B2A31369B87A5AE9C44EE89E2A6DEC0A")
	require.NoError(t, err)
	wantY, err := bigint.Uint256Hex("F7E3507399E595929DB99F34F57937101296891E44D23F0BE1F32CCE69616821")
	require.NoError(t, err)

	require.True(t, got.X().Equal(wantX), "16*G.x = %s, want %s", got.X().Hex(), wantX.Hex())
	require.True(t, got.Y().Equal(wantY), "16*G.y = %s, want %s", got.Y().Hex(), wantY.Hex())
}

func TestDecompressKnownPoint(t *testing.T) {
	compressed, err := hex.DecodeString("02b4632d08485ff1df2db55b9dafd23347d1c47a457072a1e87be26896549a8737")
	require.NoError(t, err)
	pub, err := ParseCompressedPubKey(compressed)
	require.NoError(t, err)

	wantY, err := bigint.Uint256Hex("8ec38ff91d43e8c2092ebda601780485263da089465619e0358a5c1be7ac91f4")
	require.NoError(t, err)
	require.True(t, pub.Y().Equal(wantY), "decompressed y = %s, want %s", pub.Y().Hex(), wantY.Hex())
}

func TestDecompressRoundTrip(t *testing.T) {
	k := bigint.Uint256From(12345)
	p := ScalarBaseMult(k)
	pub := PubKey{Point: p}
	compressed := pub.Compressed()
	back, err := ParseCompressedPubKey(compressed[:])
	require.NoError(t, err)
	require.True(t, back.Equal(p), "decompress(compress(P)) != P")
}
