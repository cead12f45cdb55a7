package node

import (
	"sync"

	"github.com/rubin-chain/corenode/chainhash"
	"github.com/rubin-chain/corenode/wire"
)

// mempool holds transactions relayed by peers that have not yet been
// included in a validated block. spec.md's non-goals exclude fee-based
// eviction and any relay policy; this is deliberately just a bag keyed
// by txid, big enough to back the `mempool`/`count mempool` interactive
// commands honestly. It is only ever touched from the validation
// goroutine, but carries its own mutex so a future second reader (e.g.
// an RPC server) doesn't have to be threaded through Node's channels.
type mempool struct {
	mu  sync.Mutex
	txs map[chainhash.Sha256]*wire.Tx
}

func newMempool() *mempool {
	return &mempool{txs: make(map[chainhash.Sha256]*wire.Tx)}
}

func (m *mempool) Add(txid chainhash.Sha256, tx *wire.Tx) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[txid] = tx
}

func (m *mempool) Remove(txid chainhash.Sha256) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.txs, txid)
}

func (m *mempool) Get(txid chainhash.Sha256) (*wire.Tx, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[txid]
	return tx, ok
}

func (m *mempool) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txs)
}

// RemoveMined drops every confirmed transaction out of the pool, given
// the txids of a block that just validated.
func (m *mempool) RemoveMined(txids []chainhash.Sha256) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range txids {
		delete(m.txs, id)
	}
}
