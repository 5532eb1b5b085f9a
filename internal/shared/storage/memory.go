package storage

import (
	"context"
	"sync"
)

// Snapshotter captures the current state of an in-memory store and returns a
// function that restores it.
type Snapshotter interface {
	Snapshot() (restore func())
}

// MemoryTxManager gives in-memory repositories the same all-or-nothing
// guarantee the database transaction gives the Postgres adapters.
// Transactions serialize against each other under a single mutex; on error
// every participating store is restored to its pre-transaction state.
type MemoryTxManager struct {
	mu     sync.Mutex
	stores []Snapshotter
}

// NewMemoryTxManager wires the stores that participate in transactions.
func NewMemoryTxManager(stores ...Snapshotter) *MemoryTxManager {
	return &MemoryTxManager{stores: stores}
}

func (m *MemoryTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	restores := make([]func(), 0, len(m.stores))
	for _, store := range m.stores {
		restores = append(restores, store.Snapshot())
	}
	if err := fn(ctx); err != nil {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
		return err
	}
	return nil
}

var _ TxManager = (*MemoryTxManager)(nil)
