package p2p

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rubin-chain/corenode/chain"
	"github.com/rubin-chain/corenode/chainhash"
)

func TestBuildGetHeadersOnGenesisOnlyChainLocatesGenesis(t *testing.T) {
	db := chain.NewBlockDB(&chain.MainNetParams)
	payload := BuildGetHeaders(db, 70016)
	require.Len(t, payload.BlockLocator, 1)
	require.Equal(t, db.Tip(), payload.BlockLocator[0])
}

func TestGetHeadersEncodeDecodesBackToTheSameFields(t *testing.T) {
	db := chain.NewBlockDB(&chain.MainNetParams)
	payload := BuildGetHeaders(db, 70016)

	encoded, err := payload.Encode()
	require.NoError(t, err)

	require.Equal(t, uint32(70016), binary.LittleEndian.Uint32(encoded[0:4]))

	count := encoded[4]
	require.Equal(t, byte(len(payload.BlockLocator)), count)

	var hashBytes [chainhash.Size]byte
	copy(hashBytes[:], encoded[5:5+chainhash.Size])
	got := chainhash.FromArray(hashBytes)
	require.Equal(t, payload.BlockLocator[0], got)

	stopOffset := 5 + chainhash.Size
	var gotStop [chainhash.Size]byte
	copy(gotStop[:], encoded[stopOffset:stopOffset+chainhash.Size])
	require.Equal(t, chainhash.Zero.Bytes(), gotStop)
}

func TestGetHeadersEncodeRejectsEmptyLocator(t *testing.T) {
	payload := GetHeadersPayload{Version: 1}
	_, err := payload.Encode()
	require.Error(t, err)
}
