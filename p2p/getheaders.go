package p2p

import (
	"encoding/binary"
	"fmt"

	"github.com/rubin-chain/corenode/chain"
	"github.com/rubin-chain/corenode/chainhash"
	"github.com/rubin-chain/corenode/wire"
)

// MaxLocatorPayloadHashes bounds the locator length Encode accepts,
// independent of MaxLocatorHashes which bounds what we build.
const MaxLocatorPayloadHashes = 64

// GetHeadersPayload is the `getheaders` message this implementation
// sends on handshake, per spec.md §6: "immediately request headers
// starting from the local tip, using the standard block-locator rule."
type GetHeadersPayload struct {
	Version      uint32
	BlockLocator []chainhash.Sha256
	HashStop     chainhash.Sha256
}

// BuildGetHeaders constructs the getheaders payload for the current tip
// of db, translating BuildLocatorHeights' heights into hashes.
func BuildGetHeaders(db *chain.BlockDB, protocolVersion uint32) GetHeadersPayload {
	heights := BuildLocatorHeights(db.Height())
	locator := make([]chainhash.Sha256, 0, len(heights))
	for _, h := range heights {
		hash, ok := db.HashAt(h)
		if !ok {
			continue
		}
		locator = append(locator, hash)
	}
	return GetHeadersPayload{Version: protocolVersion, BlockLocator: locator}
}

// Encode serializes a getheaders payload: version(4) | varint locator
// count | locator hashes | hash_stop(32).
func (p GetHeadersPayload) Encode() ([]byte, error) {
	if len(p.BlockLocator) == 0 || len(p.BlockLocator) > MaxLocatorPayloadHashes {
		return nil, fmt.Errorf("p2p: getheaders: invalid locator length %d", len(p.BlockLocator))
	}
	out := make([]byte, 0, 4+9+len(p.BlockLocator)*chainhash.Size+chainhash.Size)
	var ver [4]byte
	binary.LittleEndian.PutUint32(ver[:], p.Version)
	out = append(out, ver[:]...)
	out = wire.AppendVarInt(out, uint64(len(p.BlockLocator)))
	for _, h := range p.BlockLocator {
		b := h.Bytes()
		out = append(out, b[:]...)
	}
	stop := p.HashStop.Bytes()
	out = append(out, stop[:]...)
	return out, nil
}
