package p2p

import (
	"testing"

	"github.com/rubin-chain/corenode/chain"
	"github.com/rubin-chain/corenode/wire"
)

func TestApplyHeadersFirstHeaderRejectionDisconnects(t *testing.T) {
	db := chain.NewBlockDB(&chain.MainNetParams)
	bad := wire.BlockHeader{PrevBlock: db.Tip(), Bits: 0x1d00ffff} // garbage nonce, won't satisfy target
	result := ApplyHeaders(db, []wire.BlockHeader{bad})
	if result.Accepted != 0 {
		t.Fatalf("expected 0 accepted, got %d", result.Accepted)
	}
	if !result.Disconnect {
		t.Fatalf("expected a first-header rejection to disconnect the peer")
	}
}

func TestApplyHeadersEmptyIsNoop(t *testing.T) {
	db := chain.NewBlockDB(&chain.MainNetParams)
	result := ApplyHeaders(db, nil)
	if result.Accepted != 0 || result.Disconnect {
		t.Fatalf("expected a no-op result, got %+v", result)
	}
}
