// Package store persists the header chain, block bodies, and UTXO set
// to disk with bbolt, realizing the recoverability contract spec.md §6
// describes (flat headers.dat/ids.txt/utxos.dat files) with the
// teacher's bucket-per-entity bbolt layout instead — see DESIGN.md for
// why this substitution doesn't drop any consensus behavior.
package store

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rubin-chain/corenode/chainhash"
	"github.com/rubin-chain/corenode/consensus"
	"github.com/rubin-chain/corenode/wire"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketHeaders = []byte("headers_by_hash")
	bucketHeights = []byte("block_index_by_height")
	bucketBlocks  = []byte("blocks_by_hash")
	bucketUTXO    = []byte("utxo_by_outpoint")
	bucketMeta    = []byte("meta")
)

var metaTipHeightKey = []byte("tip_height")

// DB is the on-disk store backing one chain's header index, block
// bodies, and UTXO set. All methods are safe for concurrent readers;
// per spec.md §5 only the validation goroutine ever calls the mutating
// methods.
type DB struct {
	bdb *bolt.DB
}

// Open creates (if needed) and opens the bbolt database file under
// dataDir/chain.db.
func Open(dataDir string) (*DB, error) {
	path := filepath.Join(dataDir, "chain.db")
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	err = bdb.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketHeaders, bucketHeights, bucketBlocks, bucketUTXO, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("store: create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return &DB{bdb: bdb}, nil
}

// Close releases the underlying bbolt file handle.
func (d *DB) Close() error {
	if d == nil || d.bdb == nil {
		return nil
	}
	return d.bdb.Close()
}

// PutHeader persists one block header under its hash.
func (d *DB) PutHeader(hash chainhash.Sha256, h wire.BlockHeader) error {
	hb := hash.Bytes()
	return d.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketHeaders).Put(hb[:], h.Serialize())
	})
}

// GetHeader looks up a previously stored header by hash.
func (d *DB) GetHeader(hash chainhash.Sha256) (wire.BlockHeader, bool, error) {
	hb := hash.Bytes()
	var out wire.BlockHeader
	var found bool
	err := d.bdb.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketHeaders).Get(hb[:])
		if v == nil {
			return nil
		}
		h, err := wire.DeserializeBlockHeader(v)
		if err != nil {
			return err
		}
		out = *h
		found = true
		return nil
	})
	return out, found, err
}

// PutHeaderAtHeight persists hash under its height, in addition to
// PutHeader's by-hash entry, so a restart can replay the header chain
// in height order without needing each header's descendant.
func (d *DB) PutHeaderAtHeight(height uint64, hash chainhash.Sha256) error {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], height)
	hb := hash.Bytes()
	return d.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketHeights).Put(key[:], hb[:])
	})
}

// HashAtHeight looks up the block hash persisted at height, if any.
func (d *DB) HashAtHeight(height uint64) (chainhash.Sha256, bool, error) {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], height)
	var out chainhash.Sha256
	var found bool
	err := d.bdb.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketHeights).Get(key[:])
		if v == nil {
			return nil
		}
		hash, err := chainhash.FromBytes(v)
		if err != nil {
			return err
		}
		out, found = hash, true
		return nil
	})
	return out, found, err
}

// PutBlock persists a full block body under its header hash.
func (d *DB) PutBlock(hash chainhash.Sha256, b *wire.Block) error {
	hb := hash.Bytes()
	return d.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlocks).Put(hb[:], b.Serialize())
	})
}

// GetBlock looks up a previously stored block body by hash.
func (d *DB) GetBlock(hash chainhash.Sha256) (*wire.Block, bool, error) {
	hb := hash.Bytes()
	var out *wire.Block
	err := d.bdb.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketBlocks).Get(hb[:])
		if v == nil {
			return nil
		}
		b, err := wire.DeserializeBlock(v)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}

// outpointKey encodes a UTXOID as txid||index (big-endian index, so
// lexicographic bucket order groups outputs of the same tx together).
func outpointKey(id consensus.UTXOID) []byte {
	txid := id.Txid.Bytes()
	key := make([]byte, 36)
	copy(key[:32], txid[:])
	binary.BigEndian.PutUint32(key[32:], id.Index)
	return key
}

// encodeEntry lays out an Entry as:
// value u64le | creation_height u64le | created_by_coinbase u8 | pk_script
func encodeEntry(e consensus.Entry) []byte {
	out := make([]byte, 8+8+1+len(e.PkScript))
	binary.LittleEndian.PutUint64(out[0:8], e.Value)
	binary.LittleEndian.PutUint64(out[8:16], e.CreationHeight)
	if e.CreatedByCoinbase {
		out[16] = 1
	}
	copy(out[17:], e.PkScript)
	return out
}

func decodeEntry(b []byte) (consensus.Entry, error) {
	if len(b) < 17 {
		return consensus.Entry{}, fmt.Errorf("store: truncated utxo entry")
	}
	return consensus.Entry{
		Value:             binary.LittleEndian.Uint64(b[0:8]),
		CreationHeight:    binary.LittleEndian.Uint64(b[8:16]),
		CreatedByCoinbase: b[16] != 0,
		PkScript:          append([]byte(nil), b[17:]...),
	}, nil
}

// GetUTXO implements consensus.UTXOSet against the on-disk set.
func (d *DB) GetUTXO(id consensus.UTXOID) (consensus.Entry, bool) {
	key := outpointKey(id)
	var out consensus.Entry
	var found bool
	_ = d.bdb.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketUTXO).Get(key)
		if v == nil {
			return nil
		}
		e, err := decodeEntry(v)
		if err != nil {
			return err
		}
		out, found = e, true
		return nil
	})
	return out, found
}

// Get satisfies consensus.UTXOSet.
func (d *DB) Get(id consensus.UTXOID) (consensus.Entry, bool) { return d.GetUTXO(id) }

// HasUnspentOutput satisfies consensus.DuplicateTxChecker (BIP-30):
// true iff any output index of txid is currently unspent.
func (d *DB) HasUnspentOutput(txid chainhash.Sha256) bool {
	txidBytes := txid.Bytes()
	found := false
	_ = d.bdb.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketUTXO).Cursor()
		prefix := txidBytes[:]
		for k, _ := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, _ = c.Next() {
			found = true
			return nil
		}
		return nil
	})
	return found
}

func hasPrefix(k, prefix []byte) bool {
	if len(k) < len(prefix) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// CommitDiff applies a validated block's UTXODiff atomically: every
// removed id is deleted (spec.md §4.7 treats an id's absence as a
// fatal consistency bug, but bbolt's Delete is a no-op on a missing
// key, so the caller is responsible for that invariant — see
// consensus.Commit for the in-memory equivalent that panics loudly in
// tests); every added entry is inserted, a duplicate permitted per the
// two historical BIP-30 collisions.
func (d *DB) CommitDiff(diff consensus.UTXODiff) error {
	return d.bdb.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUTXO)
		for _, id := range diff.Removed {
			if err := b.Delete(outpointKey(id)); err != nil {
				return err
			}
		}
		for id, e := range diff.Added {
			if err := b.Put(outpointKey(id), encodeEntry(e)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ResetUTXOSet drops every entry from the UTXO bucket, for
// `--rebuild-utxos`: the caller replays every stored block from
// genesis through consensus.ValidateBlock against the now-empty set
// and recommits each diff in height order.
func (d *DB) ResetUTXOSet() error {
	return d.bdb.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketUTXO); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketUTXO)
		return err
	})
}

// SetTipHeight persists a chain tip height in the meta bucket. The node
// stores its header chain's height here on save and shutdown, and
// RebuildUTXOSet stores the height it replayed through; startup
// (LoadChain) does not read it.
func (d *DB) SetTipHeight(height uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], height)
	return d.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMeta).Put(metaTipHeightKey, buf[:])
	})
}

// TipHeight reads back the height last stored by SetTipHeight; ok is
// false if nothing has been persisted yet.
func (d *DB) TipHeight() (height uint64, ok bool, err error) {
	err = d.bdb.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketMeta).Get(metaTipHeightKey)
		if v == nil {
			return nil
		}
		if len(v) != 8 {
			return fmt.Errorf("store: malformed tip_height value")
		}
		height = binary.LittleEndian.Uint64(v)
		ok = true
		return nil
	})
	return height, ok, err
}
