package node

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rubin-chain/corenode/chain"
	"github.com/rubin-chain/corenode/p2p"
)

func TestPeerSessionSendsInitialGetHeaders(t *testing.T) {
	client, server := net.Pipe()
	t.Cleanup(func() { _ = client.Close(); _ = server.Close() })

	n := New(DefaultConfig(), &chain.MainNetParams, nil, nil)
	stop := make(chan struct{})
	go n.Run(stop)
	t.Cleanup(func() { close(stop) })

	ps := NewPeerSession(server, n, nil)
	done := make(chan error, 1)
	go func() { done <- ps.Run(stop) }()

	env, rerr := p2p.ReadEnvelope(client, p2p.MainNetMagic)
	require.Nil(t, rerr)
	require.Equal(t, "getheaders", env.Command)
}

func TestPeerSessionRepliesToPing(t *testing.T) {
	client, server := net.Pipe()
	t.Cleanup(func() { _ = client.Close(); _ = server.Close() })

	n := New(DefaultConfig(), &chain.MainNetParams, nil, nil)
	stop := make(chan struct{})
	go n.Run(stop)
	t.Cleanup(func() { close(stop) })

	ps := NewPeerSession(server, n, nil)
	go func() { _ = ps.Run(stop) }()

	// Drain the session's initial getheaders before sending the ping.
	_, rerr := p2p.ReadEnvelope(client, p2p.MainNetMagic)
	require.Nil(t, rerr)

	nonce := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, p2p.WriteEnvelope(client, p2p.MainNetMagic, "ping", nonce))

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	env, rerr := p2p.ReadEnvelope(client, p2p.MainNetMagic)
	require.Nil(t, rerr)
	require.Equal(t, "pong", env.Command)
	require.Equal(t, nonce, env.Payload)
}

func TestPeerSessionReturnsOnEOF(t *testing.T) {
	client, server := net.Pipe()

	n := New(DefaultConfig(), &chain.MainNetParams, nil, nil)
	stop := make(chan struct{})
	go n.Run(stop)
	t.Cleanup(func() { close(stop) })

	ps := NewPeerSession(server, n, nil)
	done := make(chan error, 1)
	go func() { done <- ps.Run(stop) }()

	// Drain the initial getheaders, then close the client side.
	_, rerr := p2p.ReadEnvelope(client, p2p.MainNetMagic)
	require.Nil(t, rerr)
	require.NoError(t, client.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the peer closed the connection")
	}
	_ = server.Close()
}
