package infra

import (
	"context"
	"sync"

	"processador-pedidos/orders/domain"
)

// MemoryStore guarda pedidos em memória.
// Útil para testes e desenvolvimento; não sobrevive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	orders   map[domain.OrderID]domain.Order
	inflight map[domain.OrderID]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:   make(map[domain.OrderID]domain.Order),
		inflight: make(map[domain.OrderID]struct{}),
	}
}

// Claim implementa domain.Claimer.
func (s *MemoryStore) Claim(_ context.Context, id domain.OrderID) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[id]; busy {
		return nil, domain.ErrOrderInProgress
	}
	s.inflight[id] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.inflight, id)
			s.mu.Unlock()
		})
	}, nil
}

func (s *MemoryStore) Save(_ context.Context, o domain.Order) error {
	s.mu.Lock()
	s.orders[o.ID] = o
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id domain.OrderID) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
