package node

import (
	"fmt"
	"strconv"

	"github.com/rubin-chain/corenode/chainhash"
)

const helpText = `commands:
  help                 show this text
  exit                 persist state and shut down
  save                 flush the header chain to disk
  mempool              list held transaction ids
  db                   summarize chain index state
  count mempool        number of held transactions
  count db             number of validated blocks
  header <id>          show a header by height or hash
  block <id>           show a block by height or hash
  tx <id>              show a mempool transaction by txid`

// handleCommand dispatches one interactive command (spec.md §5, §6).
// It always runs on the validation goroutine, so its reads of n.db,
// n.store, and n.pool need no further synchronization.
func (n *Node) handleCommand(name string, args []string) CommandResult {
	switch name {
	case "help":
		return CommandResult{Output: helpText}
	case "exit":
		return CommandResult{Output: "shutting down"}
	case "save":
		return n.cmdSave()
	case "mempool":
		return n.cmdMempool()
	case "db":
		return n.cmdDB()
	case "count":
		return n.cmdCount(args)
	case "header":
		return n.cmdHeader(args)
	case "block":
		return n.cmdBlock(args)
	case "tx":
		return n.cmdTx(args)
	default:
		return CommandResult{Err: fmt.Errorf("%w: %q", errUnknownCommand, name)}
	}
}

func (n *Node) cmdSave() CommandResult {
	if n.store == nil {
		return CommandResult{Output: "no store configured"}
	}
	for height := uint64(0); height <= n.db.Height(); height++ {
		hash, _ := n.db.HashAt(height)
		header, _ := n.db.HeaderByHash(hash)
		if err := n.store.PutHeader(hash, header); err != nil {
			return CommandResult{Err: fmt.Errorf("save header at height %d: %w", height, err)}
		}
		if err := n.store.PutHeaderAtHeight(height, hash); err != nil {
			return CommandResult{Err: fmt.Errorf("save header index at height %d: %w", height, err)}
		}
	}
	if err := n.store.SetTipHeight(n.db.Height()); err != nil {
		return CommandResult{Err: err}
	}
	return CommandResult{Output: fmt.Sprintf(`{"saved_headers":%d}`, n.db.Height()+1)}
}

func (n *Node) cmdMempool() CommandResult {
	n.pool.mu.Lock()
	defer n.pool.mu.Unlock()
	out := fmt.Sprintf(`{"mempool_size":%d,"txids":[`, len(n.pool.txs))
	first := true
	for txid := range n.pool.txs {
		if !first {
			out += ","
		}
		out += strconv.Quote(txid.String())
		first = false
	}
	return CommandResult{Output: out + "]}"}
}

func (n *Node) cmdDB() CommandResult {
	return CommandResult{Output: fmt.Sprintf(
		`{"height":%d,"tip":%q,"blocks_validated":%d,"blocks_requested":%d}`,
		n.db.Height(), n.db.Tip().String(), n.db.BlocksValidated(), n.db.BlocksRequested(),
	)}
}

func (n *Node) cmdCount(args []string) CommandResult {
	if len(args) != 1 {
		return CommandResult{Err: fmt.Errorf("usage: count mempool|db")}
	}
	switch args[0] {
	case "mempool":
		return CommandResult{Output: strconv.Itoa(n.pool.Count())}
	case "db":
		return CommandResult{Output: strconv.Itoa(n.db.BlocksValidated())}
	default:
		return CommandResult{Err: fmt.Errorf("usage: count mempool|db")}
	}
}

// resolveBlockID accepts either a decimal height or a reversed-hex
// block hash, the two id forms spec.md §6's `header <id>`/`block <id>`
// commands allow.
func (n *Node) resolveBlockID(id string) (chainhash.Sha256, bool) {
	if height, err := strconv.ParseUint(id, 10, 64); err == nil {
		return n.db.HashAt(height)
	}
	hash, err := chainhash.Parse(id)
	if err != nil {
		return chainhash.Sha256{}, false
	}
	if !n.db.Contains(hash) {
		return chainhash.Sha256{}, false
	}
	return hash, true
}

func (n *Node) cmdHeader(args []string) CommandResult {
	if len(args) != 1 {
		return CommandResult{Err: fmt.Errorf("usage: header <id>")}
	}
	hash, ok := n.resolveBlockID(args[0])
	if !ok {
		return CommandResult{Err: fmt.Errorf("no such header %q", args[0])}
	}
	h, ok := n.db.HeaderByHash(hash)
	if !ok {
		return CommandResult{Err: fmt.Errorf("no such header %q", args[0])}
	}
	return CommandResult{Output: fmt.Sprintf(
		`{"hash":%q,"prev_block":%q,"merkle_root":%q,"timestamp":%d,"bits":%d,"nonce":%d}`,
		hash.String(), h.PrevBlock.String(), h.MerkleRoot.String(), h.Timestamp, h.Bits, h.Nonce,
	)}
}

func (n *Node) cmdBlock(args []string) CommandResult {
	if len(args) != 1 {
		return CommandResult{Err: fmt.Errorf("usage: block <id>")}
	}
	if n.store == nil {
		return CommandResult{Err: fmt.Errorf("no store configured")}
	}
	hash, ok := n.resolveBlockID(args[0])
	if !ok {
		return CommandResult{Err: fmt.Errorf("no such block %q", args[0])}
	}
	block, ok, err := n.store.GetBlock(hash)
	if err != nil {
		return CommandResult{Err: err}
	}
	if !ok {
		return CommandResult{Err: fmt.Errorf("block %q has a known header but its body is not stored", args[0])}
	}
	return CommandResult{Output: fmt.Sprintf(`{"hash":%q,"tx_count":%d}`, hash.String(), len(block.Txs))}
}

func (n *Node) cmdTx(args []string) CommandResult {
	if len(args) != 1 {
		return CommandResult{Err: fmt.Errorf("usage: tx <id>")}
	}
	txid, err := chainhash.Parse(args[0])
	if err != nil {
		return CommandResult{Err: fmt.Errorf("invalid txid %q: %w", args[0], err)}
	}
	tx, ok := n.pool.Get(txid)
	if !ok {
		return CommandResult{Err: fmt.Errorf("no mempool transaction %q (confirmed transactions are not separately indexed)", args[0])}
	}
	return CommandResult{Output: fmt.Sprintf(`{"txid":%q,"in":%d,"out":%d}`, txid.String(), len(tx.TxIn), len(tx.TxOut))}
}
