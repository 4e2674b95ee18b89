package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"processador-pedidos/orders/domain"
)

type fakePayment struct {
	name  string
	err   error
	calls int
}

func (f *fakePayment) Name() string { return f.name }

func (f *fakePayment) Pay(_ context.Context, o domain.Order) (domain.Receipt, error) {
	f.calls++
	if f.err != nil {
		return domain.Receipt{}, f.err
	}
	return domain.Receipt{Method: f.name, Reference: "ref-1", PaidAt: time.Unix(0, 0)}, nil
}

// slowPayment segura o pagamento por delay para abrir janela de corrida.
type slowPayment struct {
	delay time.Duration
	calls atomic.Int32
}

func (f *slowPayment) Name() string { return "lento" }

func (f *slowPayment) Pay(ctx context.Context, o domain.Order) (domain.Receipt, error) {
	f.calls.Add(1)
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return domain.Receipt{}, ctx.Err()
	}
	return domain.Receipt{Method: "lento", Reference: "ref-lento"}, nil
}

type fakeNotifier struct {
	channel string
	err     error
	log     *[]string
}

func (f fakeNotifier) Channel() string { return f.channel }

func (f fakeNotifier) Notify(_ context.Context, o domain.Order) error {
	if f.log != nil {
		*f.log = append(*f.log, f.channel)
	}
	return f.err
}

type fakeStore struct {
	mu       sync.Mutex
	saved    []domain.Order
	err      error
	inflight map[domain.OrderID]bool
}

func (s *fakeStore) Claim(_ context.Context, id domain.OrderID) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		return nil, domain.ErrOrderInProgress
	}
	if s.inflight == nil {
		s.inflight = make(map[domain.OrderID]bool)
	}
	s.inflight[id] = true
	return func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}, nil
}

func (s *fakeStore) Save(_ context.Context, o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, o)
	return nil
}

func (s *fakeStore) Get(_ context.Context, id domain.OrderID) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.saved) - 1; i >= 0; i-- {
		if s.saved[i].ID == id {
			return s.saved[i], nil
		}
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

type fakeEvents struct {
	events []domain.Event
	err    error
}

func (f *fakeEvents) Record(_ context.Context, ev domain.Event) error {
	f.events = append(f.events, ev)
	return f.err
}

var errBoom = errors.New("boom")

func newOrder() *domain.Order {
	return &domain.Order{ID: 123, AmountCents: 15075, CustomerEmail: "cliente@exemplo.com", Status: domain.StatusPending}
}
