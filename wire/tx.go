package wire

import "github.com/rubin-chain/corenode/chainhash"

// locktimeThreshold is the boundary spec.md §3 names: an abs_lock_time
// below this value is a block height, at or above it a Unix timestamp.
const locktimeThreshold = 500000000

// LockTimeKind tags how a transaction's LockTime field is interpreted.
type LockTimeKind int

const (
	// LockTimeNone means the transaction carries no absolute timelock
	// (the field is zero).
	LockTimeNone LockTimeKind = iota
	// LockTimeBlockHeight means the field is a block height.
	LockTimeBlockHeight
	// LockTimeUnixTimestamp means the field is a Unix timestamp.
	LockTimeUnixTimestamp
)

// LockTime is a transaction's raw abs_lock_time field together with
// its threshold-rule interpretation.
type LockTime uint32

// Kind classifies the lock time per spec.md §3: zero means none,
// below the threshold means a block height, at or above it means a
// Unix timestamp.
func (l LockTime) Kind() LockTimeKind {
	switch {
	case l == 0:
		return LockTimeNone
	case uint32(l) < locktimeThreshold:
		return LockTimeBlockHeight
	default:
		return LockTimeUnixTimestamp
	}
}

// SequenceFinal marks an input as not subject to relative-locktime or
// (combined with a final sequence on every input) absolute-locktime
// enforcement.
const SequenceFinal uint32 = 0xffffffff

// OutPoint identifies a specific output of a specific transaction.
type OutPoint struct {
	Hash  chainhash.Sha256
	Index uint32
}

// TxIn is one transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Witness          [][]byte
	Sequence         uint32
}

// TxOut is one transaction output.
type TxOut struct {
	Value    uint64
	PkScript []byte
}

// IsCoinbasePrevOut reports whether op is the sentinel previous
// outpoint ({0x00*32}, 0xFFFFFFFF) that only a coinbase input may use.
func (op OutPoint) IsCoinbasePrevOut() bool {
	return op.Hash.IsZero() && op.Index == 0xffffffff
}

// Tx is a Bitcoin transaction. SegWit marks whether the serialized
// form carried the optional 0x00 0x01 marker/flag pair; witness
// program *execution* is out of scope (spec.md §1 non-goals), but the
// binary shape is still parsed so a segwit transaction's txid — which
// excludes the witness data — is computed correctly.
type Tx struct {
	Version  uint32
	SegWit   bool
	TxIn     []TxIn
	TxOut    []TxOut
	LockTime LockTime
}

// IsCoinbase reports whether tx is a coinbase transaction: exactly one
// input whose previous outpoint is the all-zero sentinel.
func (tx *Tx) IsCoinbase() bool {
	return len(tx.TxIn) == 1 && tx.TxIn[0].PreviousOutPoint.IsCoinbasePrevOut()
}

// Copy returns a deep copy of tx, safe to mutate independently (used
// by signature-hash construction, which clones and mutates the
// transaction per spec.md §4.5.1).
func (tx *Tx) Copy() *Tx {
	out := &Tx{
		Version:  tx.Version,
		SegWit:   tx.SegWit,
		LockTime: tx.LockTime,
	}
	out.TxIn = make([]TxIn, len(tx.TxIn))
	for i, in := range tx.TxIn {
		out.TxIn[i] = TxIn{
			PreviousOutPoint: in.PreviousOutPoint,
			SignatureScript:  append([]byte(nil), in.SignatureScript...),
			Sequence:         in.Sequence,
		}
		if in.Witness != nil {
			out.TxIn[i].Witness = make([][]byte, len(in.Witness))
			for j, w := range in.Witness {
				out.TxIn[i].Witness[j] = append([]byte(nil), w...)
			}
		}
	}
	out.TxOut = make([]TxOut, len(tx.TxOut))
	for i, o := range tx.TxOut {
		out.TxOut[i] = TxOut{Value: o.Value, PkScript: append([]byte(nil), o.PkScript...)}
	}
	return out
}

// SerializeNonWitness encodes tx without the segwit marker/flag or
// witness data, regardless of tx.SegWit. This is the preimage used for
// both the canonical txid and sighash construction.
func (tx *Tx) SerializeNonWitness() []byte {
	buf := make([]byte, 0, 256)
	buf = appendU32LE(buf, tx.Version)
	buf = AppendVarInt(buf, uint64(len(tx.TxIn)))
	for _, in := range tx.TxIn {
		buf = appendOutPoint(buf, in.PreviousOutPoint)
		buf = appendVarBytes(buf, in.SignatureScript)
		buf = appendU32LE(buf, in.Sequence)
	}
	buf = AppendVarInt(buf, uint64(len(tx.TxOut)))
	for _, out := range tx.TxOut {
		buf = appendU64LE(buf, out.Value)
		buf = appendVarBytes(buf, out.PkScript)
	}
	buf = appendU32LE(buf, uint32(tx.LockTime))
	return buf
}

// Serialize encodes tx, including the segwit marker/flag and per-input
// witness stacks when tx.SegWit is set.
func (tx *Tx) Serialize() []byte {
	if !tx.SegWit {
		return tx.SerializeNonWitness()
	}
	buf := make([]byte, 0, 256)
	buf = appendU32LE(buf, tx.Version)
	buf = append(buf, 0x00, 0x01)
	buf = AppendVarInt(buf, uint64(len(tx.TxIn)))
	for _, in := range tx.TxIn {
		buf = appendOutPoint(buf, in.PreviousOutPoint)
		buf = appendVarBytes(buf, in.SignatureScript)
		buf = appendU32LE(buf, in.Sequence)
	}
	buf = AppendVarInt(buf, uint64(len(tx.TxOut)))
	for _, out := range tx.TxOut {
		buf = appendU64LE(buf, out.Value)
		buf = appendVarBytes(buf, out.PkScript)
	}
	for _, in := range tx.TxIn {
		buf = AppendVarInt(buf, uint64(len(in.Witness)))
		for _, item := range in.Witness {
			buf = appendVarBytes(buf, item)
		}
	}
	buf = appendU32LE(buf, uint32(tx.LockTime))
	return buf
}

func appendOutPoint(dst []byte, op OutPoint) []byte {
	hb := op.Hash.Bytes()
	dst = append(dst, hb[:]...)
	return appendU32LE(dst, op.Index)
}

// TxID is the canonical double-SHA-256 of tx's non-witness
// serialization.
func (tx *Tx) TxID() chainhash.Sha256 {
	return chainhash.Sum256d(tx.SerializeNonWitness())
}

// DeserializeTx parses a transaction from b, detecting the optional
// segwit marker/flag pair (0x00 0x01 immediately after the version
// field) per spec.md §4.4.
func DeserializeTx(b []byte) (*Tx, error) {
	c := newCursor(b)
	tx, err := readTx(c)
	if err != nil {
		return nil, err
	}
	if c.remaining() != 0 {
		return nil, frameErrf("%d trailing bytes after transaction", c.remaining())
	}
	return tx, nil
}

func readTx(c *cursor) (*Tx, error) {
	version, err := c.readU32LE()
	if err != nil {
		return nil, err
	}

	segwit := false
	inCountOrMarker, err := c.readU8()
	if err != nil {
		return nil, err
	}
	var txInCount uint64
	if inCountOrMarker == 0x00 {
		flag, err := c.readU8()
		if err != nil {
			return nil, err
		}
		if flag != 0x01 {
			return nil, frameErrf("invalid segwit flag byte 0x%02x", flag)
		}
		segwit = true
		txInCount, err = c.readVarInt()
		if err != nil {
			return nil, err
		}
	} else {
		c.pos--
		txInCount, err = c.readVarInt()
		if err != nil {
			return nil, err
		}
	}

	txIns := make([]TxIn, 0, txInCount)
	for i := uint64(0); i < txInCount; i++ {
		in, err := readTxIn(c)
		if err != nil {
			return nil, err
		}
		txIns = append(txIns, in)
	}

	txOutCount, err := c.readVarInt()
	if err != nil {
		return nil, err
	}
	txOuts := make([]TxOut, 0, txOutCount)
	for i := uint64(0); i < txOutCount; i++ {
		out, err := readTxOut(c)
		if err != nil {
			return nil, err
		}
		txOuts = append(txOuts, out)
	}

	if segwit {
		for i := range txIns {
			witCount, err := c.readVarInt()
			if err != nil {
				return nil, err
			}
			items := make([][]byte, 0, witCount)
			for j := uint64(0); j < witCount; j++ {
				item, err := c.readVarBytes(MaxPayloadSize)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			txIns[i].Witness = items
		}
	}

	lockTime, err := c.readU32LE()
	if err != nil {
		return nil, err
	}

	return &Tx{
		Version:  version,
		SegWit:   segwit,
		TxIn:     txIns,
		TxOut:    txOuts,
		LockTime: LockTime(lockTime),
	}, nil
}

func readTxIn(c *cursor) (TxIn, error) {
	op, err := readOutPoint(c)
	if err != nil {
		return TxIn{}, err
	}
	sigScript, err := c.readVarBytes(MaxPayloadSize)
	if err != nil {
		return TxIn{}, err
	}
	sequence, err := c.readU32LE()
	if err != nil {
		return TxIn{}, err
	}
	return TxIn{PreviousOutPoint: op, SignatureScript: sigScript, Sequence: sequence}, nil
}

func readOutPoint(c *cursor) (OutPoint, error) {
	hb, err := c.readExact(32)
	if err != nil {
		return OutPoint{}, err
	}
	var arr [32]byte
	copy(arr[:], hb)
	h := chainhash.FromArray(arr)
	index, err := c.readU32LE()
	if err != nil {
		return OutPoint{}, err
	}
	return OutPoint{Hash: h, Index: index}, nil
}

func readTxOut(c *cursor) (TxOut, error) {
	value, err := c.readU64LE()
	if err != nil {
		return TxOut{}, err
	}
	script, err := c.readVarBytes(MaxPayloadSize)
	if err != nil {
		return TxOut{}, err
	}
	return TxOut{Value: value, PkScript: script}, nil
}
