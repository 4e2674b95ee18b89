package infra

import (
	"context"
	"sync"

	"processador-pedidos/orders/domain"
)

type Counters struct {
	Completed int64
	Failed    int64
}

// MemoryEvents conta eventos em memória, no total e por método de pagamento.
//
// Não faz expiração e não é indicada para produção.
type MemoryEvents struct {
	mu       sync.Mutex
	total    Counters
	byMethod map[string]Counters
	notified int64
}

func NewMemoryEvents() *MemoryEvents {
	return &MemoryEvents{byMethod: make(map[string]Counters)}
}

func (m *MemoryEvents) Record(_ context.Context, ev domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.byMethod[ev.Method]
	switch ev.Status {
	case domain.StatusCompleted:
		m.total.Completed++
		c.Completed++
	case domain.StatusFailed:
		m.total.Failed++
		c.Failed++
	default:
		return nil
	}
	m.byMethod[ev.Method] = c
	m.notified += int64(ev.Notified)
	return nil
}

func (m *MemoryEvents) Total() Counters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

func (m *MemoryEvents) Notified() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notified
}

func (m *MemoryEvents) ByMethod() map[string]Counters {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Counters, len(m.byMethod))
	for k, v := range m.byMethod {
		out[k] = v
	}
	return out
}
