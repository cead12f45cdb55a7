package node

import (
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/rubin-chain/corenode/chain"
	"github.com/rubin-chain/corenode/chainhash"
	"github.com/rubin-chain/corenode/consensus"
	"github.com/rubin-chain/corenode/logctx"
	"github.com/rubin-chain/corenode/p2p"
	"github.com/rubin-chain/corenode/script"
	"github.com/rubin-chain/corenode/store"
	"github.com/rubin-chain/corenode/wire"
)

// inboundMessage is one framed peer message handed from a peer's
// reader goroutine to the validation goroutine (spec.md §5).
type inboundMessage struct {
	peerID string
	env    *p2p.Envelope
}

// command is one interactive REPL request serialized into the
// validation goroutine via cmdCh, with reply delivered on Reply
// (spec.md §5's "command in, done out").
type command struct {
	Name  string
	Args  []string
	Reply chan CommandResult
}

// CommandResult is the single-line textual (or JSON, where structured)
// response to an interactive command.
type CommandResult struct {
	Output string
	Err    error
}

// Node owns the header chain, the on-disk store, and the mempool —
// the only goroutine that ever mutates them is the one running Run.
// Peer reader goroutines and the interactive REPL only ever reach this
// state through msgCh/cmdCh, mirroring the teacher's PeerManager
// exclusion but via channel ownership instead of a mutex (spec.md §9).
type Node struct {
	cfg    Config
	params *chain.Params
	log    *logctx.Logger

	db    *chain.BlockDB
	store *store.DB
	pool  *mempool

	bans map[string]*p2p.BanScore

	msgCh  chan inboundMessage
	cmdCh  chan command
	doneCh chan struct{}
}

// New builds a Node starting from a fresh genesis-only chain index,
// bound to params and backed by db for persistence. db must already be
// open; the caller owns closing it after Run returns.
func New(cfg Config, params *chain.Params, db *store.DB, log *logctx.Logger) *Node {
	return NewWithChain(cfg, chain.NewBlockDB(params), params, db, log)
}

// NewWithChain is New, but starting from a chain index already
// populated (e.g. by LoadChain on startup) instead of bare genesis.
func NewWithChain(cfg Config, bdb *chain.BlockDB, params *chain.Params, db *store.DB, log *logctx.Logger) *Node {
	if log == nil {
		log = logctx.Disabled()
	}
	return &Node{
		cfg:    cfg,
		params: params,
		log:    log,
		db:     bdb,
		store:  db,
		pool:   newMempool(),
		bans:   make(map[string]*p2p.BanScore),
		msgCh:  make(chan inboundMessage, 256),
		cmdCh:  make(chan command, 16),
		doneCh: make(chan struct{}),
	}
}

// SubmitMessage is called by a peer's reader goroutine to hand off one
// framed message. It blocks only as long as msgCh is full, never
// touching chain state directly.
func (n *Node) SubmitMessage(peerID string, env *p2p.Envelope) {
	n.msgCh <- inboundMessage{peerID: peerID, env: env}
}

// Command runs one interactive command and blocks for its result. Safe
// to call from any goroutine; the work itself always executes on the
// validation goroutine.
func (n *Node) Command(name string, args ...string) CommandResult {
	reply := make(chan CommandResult, 1)
	n.cmdCh <- command{Name: name, Args: args, Reply: reply}
	return <-reply
}

// Run is the single validation goroutine: it polls msgCh and cmdCh,
// applying each message or command to chain state in strict arrival
// order, until an "exit" command or a closed stop channel. On return,
// the header chain's tip height has already been persisted.
func (n *Node) Run(stop <-chan struct{}) {
	defer close(n.doneCh)
	for {
		select {
		case <-stop:
			n.persistTip()
			return
		case msg := <-n.msgCh:
			n.handleMessage(msg)
		case cmd := <-n.cmdCh:
			result := n.handleCommand(cmd.Name, cmd.Args)
			cmd.Reply <- result
			if cmd.Name == "exit" {
				n.persistTip()
				return
			}
		}
	}
}

// Done is closed once Run has returned.
func (n *Node) Done() <-chan struct{} { return n.doneCh }

func (n *Node) persistTip() {
	if n.store == nil {
		return
	}
	if err := n.store.SetTipHeight(n.db.Height()); err != nil {
		n.log.Errorf("persist tip height: %v", err)
	}
}

func (n *Node) banScore(peerID string) *p2p.BanScore {
	b, ok := n.bans[peerID]
	if !ok {
		b = &p2p.BanScore{}
		n.bans[peerID] = b
	}
	return b
}

func (n *Node) handleMessage(msg inboundMessage) {
	switch msg.env.Command {
	case "headers":
		n.handleHeaders(msg.peerID, msg.env.Payload)
	case "block":
		n.handleBlock(msg.peerID, msg.env.Payload)
	case "tx":
		n.handleTx(msg.peerID, msg.env.Payload)
	default:
		n.log.Debugf("peer %s: ignoring unhandled command %q", msg.peerID, msg.env.Command)
	}
}

func (n *Node) handleHeaders(peerID string, payload []byte) {
	entries, err := wire.DeserializeHeadersMessage(payload)
	if err != nil {
		n.log.Warnf("peer %s: malformed headers message: %v", peerID, err)
		n.banScore(peerID).Add(time.Now(), p2p.BanScoreChecksumMismatch)
		return
	}
	headers := make([]wire.BlockHeader, len(entries))
	for i, e := range entries {
		headers[i] = e.Header
	}
	result := p2p.ApplyHeaders(n.db, headers)
	if result.Accepted > 0 {
		n.persistHeaders(headers[:result.Accepted])
		n.log.Infof("peer %s: accepted %d headers, tip now %d", peerID, result.Accepted, n.db.Height())
	}
	if result.BanScore > 0 {
		score := n.banScore(peerID).Add(time.Now(), result.BanScore)
		n.log.Warnf("peer %s: bad headers, ban score now %d", peerID, score)
	}
}

func (n *Node) persistHeaders(headers []wire.BlockHeader) {
	if n.store == nil {
		return
	}
	for i := range headers {
		hash := headers[i].BlockHash()
		if err := n.store.PutHeader(hash, headers[i]); err != nil {
			n.log.Errorf("persist header %s: %v", hash, err)
			continue
		}
		height, ok := n.db.HeightOf(hash)
		if !ok {
			continue
		}
		if err := n.store.PutHeaderAtHeight(height, hash); err != nil {
			n.log.Errorf("persist header index at height %d: %v", height, err)
		}
	}
}

func (n *Node) handleBlock(peerID string, payload []byte) {
	block, err := wire.DeserializeBlock(payload)
	if err != nil {
		n.log.Warnf("peer %s: malformed block message: %v", peerID, err)
		n.banScore(peerID).Add(time.Now(), p2p.BanScoreChecksumMismatch)
		return
	}

	hash := block.BlockHash()
	height, ok := n.db.HeightOf(hash)
	if !ok {
		n.log.Warnf("peer %s: block %s has no accepted header, dropping", peerID, hash)
		return
	}

	flags := script.Flags{EnableCLTV: n.params.CLTVActive(height)}
	diff, err := consensus.ValidateBlock(block, n.store, height, n.params.BIP34Height, flags)
	if err != nil {
		score := n.banScore(peerID).Add(time.Now(), p2p.BanScoreBadBlock)
		n.log.Warnf("peer %s: block %s failed validation: %v (ban score now %d)", peerID, hash, err, score)
		return
	}

	if n.store != nil {
		if err := n.store.PutBlock(hash, block); err != nil {
			n.log.Errorf("persist block %s: %v", hash, err)
		}
		if err := n.store.CommitDiff(diff); err != nil {
			n.log.Errorf("commit utxo diff for block %s: %v", hash, err)
			return
		}
	}
	n.db.MarkValidated()
	n.log.Tracef("peer %s: committed utxo diff for block %s: %s", peerID, hash, spew.Sdump(diff))

	txids := make([]chainhash.Sha256, len(block.Txs))
	for i := range block.Txs {
		txids[i] = block.Txs[i].TxID()
	}
	n.pool.RemoveMined(txids)

	n.log.Infof("peer %s: validated block %s at height %d (%d txs)", peerID, hash, height, len(block.Txs))
}

func (n *Node) handleTx(peerID string, payload []byte) {
	tx, err := wire.DeserializeTx(payload)
	if err != nil {
		n.log.Warnf("peer %s: malformed tx message: %v", peerID, err)
		n.banScore(peerID).Add(time.Now(), p2p.BanScoreChecksumMismatch)
		return
	}
	txid := tx.TxID()
	n.pool.Add(txid, tx)
}

var errUnknownCommand = fmt.Errorf("unknown command")
