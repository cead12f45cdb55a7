package wire

import "github.com/rubin-chain/corenode/chainhash"

// HeaderSize is the fixed 80-byte encoding of a BlockHeader, excluding
// the varint tx_count that only appears when a header is embedded in a
// `headers` message or a full block.
const HeaderSize = 80

// BlockHeader is the 80-byte block header. Block hash is the
// double-SHA-256 of exactly these fields (§4.4); tx_count is never
// part of the hashed preimage.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Sha256
	MerkleRoot chainhash.Sha256
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// Serialize encodes the 80-byte header.
func (h *BlockHeader) Serialize() []byte {
	buf := make([]byte, 0, HeaderSize)
	buf = appendI32LE(buf, h.Version)
	pb := h.PrevBlock.Bytes()
	buf = append(buf, pb[:]...)
	mr := h.MerkleRoot.Bytes()
	buf = append(buf, mr[:]...)
	buf = appendU32LE(buf, h.Timestamp)
	buf = appendU32LE(buf, h.Bits)
	buf = appendU32LE(buf, h.Nonce)
	return buf
}

// BlockHash returns the double-SHA-256 of the serialized header.
func (h *BlockHeader) BlockHash() chainhash.Sha256 {
	return chainhash.Sum256d(h.Serialize())
}

// DeserializeBlockHeader parses the fixed 80-byte header encoding.
func DeserializeBlockHeader(b []byte) (*BlockHeader, error) {
	c := newCursor(b)
	h, err := readBlockHeader(c)
	if err != nil {
		return nil, err
	}
	if c.remaining() != 0 {
		return nil, frameErrf("%d trailing bytes after header", c.remaining())
	}
	return h, nil
}

func readBlockHeader(c *cursor) (*BlockHeader, error) {
	version, err := c.readI32LE()
	if err != nil {
		return nil, err
	}
	prevB, err := c.readExact(32)
	if err != nil {
		return nil, err
	}
	var prevArr [32]byte
	copy(prevArr[:], prevB)
	merkleB, err := c.readExact(32)
	if err != nil {
		return nil, err
	}
	var merkleArr [32]byte
	copy(merkleArr[:], merkleB)
	timestamp, err := c.readU32LE()
	if err != nil {
		return nil, err
	}
	bits, err := c.readU32LE()
	if err != nil {
		return nil, err
	}
	nonce, err := c.readU32LE()
	if err != nil {
		return nil, err
	}
	return &BlockHeader{
		Version:    version,
		PrevBlock:  chainhash.FromArray(prevArr),
		MerkleRoot: chainhash.FromArray(merkleArr),
		Timestamp:  timestamp,
		Bits:       bits,
		Nonce:      nonce,
	}, nil
}

// HeaderAndTxCount is a header as it appears standalone in a `headers`
// message: the 80-byte header followed by a varint transaction count
// (always zero in that context, since no transactions follow).
type HeaderAndTxCount struct {
	Header  BlockHeader
	TxCount uint64
}

// DeserializeHeaderAndTxCount parses one entry of a `headers` message
// payload from the front of b and returns the number of bytes
// consumed.
func DeserializeHeaderAndTxCount(b []byte) (HeaderAndTxCount, int, error) {
	c := newCursor(b)
	h, err := readBlockHeader(c)
	if err != nil {
		return HeaderAndTxCount{}, 0, err
	}
	txCount, err := c.readVarInt()
	if err != nil {
		return HeaderAndTxCount{}, 0, err
	}
	return HeaderAndTxCount{Header: *h, TxCount: txCount}, c.pos, nil
}

// DeserializeHeadersMessage parses a `headers` message payload: a
// varint count followed by that many HeaderAndTxCount entries
// (spec.md §4.4, §6).
func DeserializeHeadersMessage(b []byte) ([]HeaderAndTxCount, error) {
	c := newCursor(b)
	count, err := c.readVarInt()
	if err != nil {
		return nil, err
	}
	out := make([]HeaderAndTxCount, 0, count)
	for i := uint64(0); i < count; i++ {
		h, err := readBlockHeader(c)
		if err != nil {
			return nil, err
		}
		txCount, err := c.readVarInt()
		if err != nil {
			return nil, err
		}
		out = append(out, HeaderAndTxCount{Header: *h, TxCount: txCount})
	}
	if c.remaining() != 0 {
		return nil, frameErrf("%d trailing bytes after headers message", c.remaining())
	}
	return out, nil
}

// Block is a header plus its transactions. The genesis block is a
// hard-coded constant (see the chain package).
type Block struct {
	Header BlockHeader
	Txs    []Tx
}

// BlockHash is the hash of the block's header.
func (b *Block) BlockHash() chainhash.Sha256 { return b.Header.BlockHash() }

// Serialize encodes the header, a varint transaction count, and each
// transaction's full (possibly segwit) serialization.
func (b *Block) Serialize() []byte {
	buf := b.Header.Serialize()
	buf = AppendVarInt(buf, uint64(len(b.Txs)))
	for i := range b.Txs {
		buf = append(buf, b.Txs[i].Serialize()...)
	}
	return buf
}

// DeserializeBlock parses a full block: the 80-byte header, a varint
// transaction count, then that many transactions.
func DeserializeBlock(b []byte) (*Block, error) {
	c := newCursor(b)
	header, err := readBlockHeader(c)
	if err != nil {
		return nil, err
	}
	txCount, err := c.readVarInt()
	if err != nil {
		return nil, err
	}
	txs := make([]Tx, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		tx, err := readTx(c)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	if c.remaining() != 0 {
		return nil, frameErrf("%d trailing bytes after block", c.remaining())
	}
	return &Block{Header: *header, Txs: txs}, nil
}
