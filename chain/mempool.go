package chain

import (
	"sort"
	"sync"

	"github.com/gammazero/deque"
	"github.com/scroogecoin/core/ledger"
)

// mempool is the bounded, unvalidated staging area for pending transactions
// (Glossary). It is adapted from the teacher's util/fifoqueue.FIFOQueue: the
// original is a blocking producer/consumer queue built around a channel and
// a background goroutine, which fits a pipelined tangle solidifier but not
// this core's synchronous, no-suspension-point model (§5). This version
// keeps the teacher's mutex-guarded github.com/gammazero/deque backing
// store but drops the channel handoff, replacing it with plain,
// synchronous Push/evict/snapshot operations sized to what BlockHandler
// actually needs: FIFO-ordered capacity eviction (§2.2) and a deterministic
// by-id snapshot for block assembly (§4.5).
type mempool struct {
	mu       sync.Mutex
	order    *deque.Deque[ledger.Hash]
	byID     map[ledger.Hash]*ledger.Transaction
	capacity int
}

func newMempool(capacity int) *mempool {
	return &mempool{
		order: new(deque.Deque[ledger.Hash]),
		byID:  make(map[ledger.Hash]*ledger.Transaction),
		// a non-positive capacity means "unbounded", matching a caller that
		// wants no eviction policy at all.
		capacity: capacity,
	}
}

// add inserts tx into the mempool without validation (§4.5): the validator
// only ever filters at block-assembly time. Re-adding an id already pending
// is a no-op. Once len exceeds capacity, the oldest-inserted transaction
// still pending is evicted.
func (m *mempool) add(tx *ledger.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := tx.ID()
	if _, exists := m.byID[id]; exists {
		return
	}
	m.byID[id] = tx
	m.order.PushBack(id)

	for m.capacity > 0 && len(m.byID) > m.capacity {
		oldest := m.order.PopFront()
		delete(m.byID, oldest)
	}
}

// remove drops ids from the mempool, e.g. after a block that spent them is
// accepted (§4.5). It also compacts the FIFO order deque so a long-running
// handler never accumulates order entries for ids that no longer exist in
// byID; the rebuild is O(pending), which is bounded by capacity.
func (m *mempool) remove(ids []ledger.Hash) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(ids) == 0 {
		return
	}
	gone := make(map[ledger.Hash]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
		delete(m.byID, id)
	}

	rebuilt := new(deque.Deque[ledger.Hash])
	for m.order.Len() > 0 {
		id := m.order.PopFront()
		if _, removed := gone[id]; removed {
			continue
		}
		if _, stillPending := m.byID[id]; stillPending {
			rebuilt.PushBack(id)
		}
	}
	m.order = rebuilt
}

// snapshot returns every currently pending transaction, ordered by id
// ascending (§4.5's "deterministic" mempool snapshot).
func (m *mempool) snapshot() []*ledger.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	ret := make([]*ledger.Transaction, 0, len(m.byID))
	for _, tx := range m.byID {
		ret = append(ret, tx)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].ID().Less(ret[j].ID())
	})
	return ret
}

func (m *mempool) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}
