package cache

import (
	"context"
	"sync"

	"github.com/aq2208/order-tally/internal/usecase"
)

// MemoryGuard is the in-process fallback used when no Redis is configured.
// Single-instance only.
type MemoryGuard struct {
	mu       sync.Mutex
	consumed map[uint64]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{consumed: make(map[uint64]struct{})}
}

func (g *MemoryGuard) TryConsume(_ context.Context, orderID uint64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.consumed[orderID]; ok {
		return false, nil
	}
	g.consumed[orderID] = struct{}{}
	return true, nil
}

func (g *MemoryGuard) Forget(_ context.Context, orderID uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.consumed, orderID)
	return nil
}

var _ usecase.ConsumptionGuard = (*MemoryGuard)(nil)
