package node

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/rubin-chain/corenode/chainhash"
	"github.com/rubin-chain/corenode/logctx"
	"github.com/rubin-chain/corenode/p2p"
)

// seenSetCapacity bounds how many recent tx/block payloads a single
// peer session remembers having already forwarded.
const seenSetCapacity = 5000

// protocolVersion is sent in the getheaders payload this node issues on
// connect; it has no bearing on consensus and is not negotiated (the
// version/verack handshake itself is a named external collaborator,
// spec.md §1).
const protocolVersion = 70016

// PeerSession owns one peer connection's reader goroutine (spec.md
// §5): it frames messages off the wire and forwards them to a Node's
// validation goroutine over a channel, never touching chain state
// itself. Grounded on the teacher's node/p2p_runtime.go PeerSession and
// node/p2p/peer.go Peer.Run, generalized from its single in-process
// mutex-guarded PeerState to pure message forwarding, since exclusion
// here comes from Node.Run owning the channel instead.
type PeerSession struct {
	id   string
	conn net.Conn
	node *Node
	log  *logctx.Logger
	seen *p2p.SeenSet
}

// NewPeerSession wraps an already-dialed or accepted connection.
func NewPeerSession(conn net.Conn, node *Node, log *logctx.Logger) *PeerSession {
	if log == nil {
		log = logctx.Disabled()
	}
	return &PeerSession{
		id:   conn.RemoteAddr().String(),
		conn: conn,
		node: node,
		log:  log,
		seen: p2p.NewSeenSet(seenSetCapacity),
	}
}

// Run requests headers starting from the local chain tip, then reads
// framed messages until the connection closes, a framing error
// requires disconnect, or stop is closed. It returns when the reader
// goroutine should exit; the caller is responsible for closing conn.
func (ps *PeerSession) Run(stop <-chan struct{}) error {
	if err := ps.sendGetHeaders(); err != nil {
		ps.log.Warnf("peer %s: sending initial getheaders: %v", ps.id, err)
	}

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		env, rerr := p2p.ReadEnvelope(ps.conn, p2p.MainNetMagic)
		if rerr != nil {
			if errors.Is(rerr.Err, io.EOF) {
				return nil
			}
			ps.log.Debugf("peer %s: %v", ps.id, rerr.Err)
			if rerr.Disconnect {
				return fmt.Errorf("peer %s: %w", ps.id, rerr.Err)
			}
			continue
		}

		if env.Command == "ping" {
			if err := p2p.WriteEnvelope(ps.conn, p2p.MainNetMagic, "pong", env.Payload); err != nil {
				return fmt.Errorf("peer %s: write pong: %w", ps.id, err)
			}
			continue
		}

		if env.Command == "tx" || env.Command == "block" {
			digest := chainhash.Sum256d(env.Payload)
			if ps.seen.Seen(digest) {
				continue
			}
			ps.seen.Add(digest)
		}

		ps.node.SubmitMessage(ps.id, env)
	}
}

func (ps *PeerSession) sendGetHeaders() error {
	getHeaders := p2p.BuildGetHeaders(ps.node.db, protocolVersion)
	payload, err := getHeaders.Encode()
	if err != nil {
		return err
	}
	return p2p.WriteEnvelope(ps.conn, p2p.MainNetMagic, "getheaders", payload)
}

// Dial opens an outbound connection to addr and returns a PeerSession
// ready to Run.
func Dial(addr string, node *Node, log *logctx.Logger) (*PeerSession, error) {
	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewPeerSession(conn, node, log), nil
}
