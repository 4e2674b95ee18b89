package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"processador-pedidos/orders/domain"
)

func TestProcessor_Process_CompletesAndNotifiesInOrder(t *testing.T) {
	var sent []string
	pay := &fakePayment{name: "pix"}
	store := &fakeStore{}
	events := &fakeEvents{}
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	p := Processor{
		Payment: pay,
		Notifiers: []domain.Notifier{
			fakeNotifier{channel: "sms", log: &sent},
			fakeNotifier{channel: "email", log: &sent},
		},
		Store:  store,
		Events: events,
		Now:    func() time.Time { return fixed },
	}

	o := newOrder()
	out, err := p.Process(context.Background(), o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != domain.StatusCompleted || out.Status != domain.StatusCompleted {
		t.Fatalf("expected status concluido, got order=%s outcome=%s", o.Status, out.Status)
	}
	if len(sent) != 2 || sent[0] != "sms" || sent[1] != "email" {
		t.Fatalf("expected notifications [sms email], got %v", sent)
	}
	if out.Receipt == nil || out.Receipt.Method != "pix" {
		t.Fatalf("expected pix receipt, got %+v", out.Receipt)
	}
	if len(store.saved) != 1 || store.saved[0].Status != domain.StatusCompleted {
		t.Fatalf("expected completed order persisted once, got %+v", store.saved)
	}
	if !o.UpdatedAt.Equal(fixed) {
		t.Fatalf("expected UpdatedAt=%s, got %s", fixed, o.UpdatedAt)
	}
	if len(events.events) != 1 || events.events[0].Notified != 2 || events.events[0].Method != "pix" {
		t.Fatalf("unexpected events: %+v", events.events)
	}
}

func TestProcessor_Process_PaymentFailureSkipsNotifications(t *testing.T) {
	var sent []string
	store := &fakeStore{}
	p := Processor{
		Payment:   &fakePayment{name: "cartao", err: domain.ErrPaymentDeclined},
		Notifiers: []domain.Notifier{fakeNotifier{channel: "email", log: &sent}},
		Store:     store,
	}

	o := newOrder()
	out, err := p.Process(context.Background(), o)
	if !errors.Is(err, domain.ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined, got %v", err)
	}
	if o.Status != domain.StatusFailed || out.Status != domain.StatusFailed {
		t.Fatalf("expected status falhou, got %s", o.Status)
	}
	if len(sent) != 0 {
		t.Fatalf("expected no notifications, got %v", sent)
	}
	if len(store.saved) != 1 || store.saved[0].Status != domain.StatusFailed {
		t.Fatalf("expected failed order persisted, got %+v", store.saved)
	}
}

func TestProcessor_Process_NotifierErrorDoesNotAbort(t *testing.T) {
	var sent []string
	p := Processor{
		Payment: &fakePayment{name: "boleto"},
		Notifiers: []domain.Notifier{
			fakeNotifier{channel: "sms", err: errBoom, log: &sent},
			fakeNotifier{channel: "email", log: &sent},
		},
	}

	o := newOrder()
	out, err := p.Process(context.Background(), o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != domain.StatusCompleted {
		t.Fatalf("expected concluido, got %s", o.Status)
	}
	if len(out.Notified) != 1 || out.Notified[0] != "email" {
		t.Fatalf("expected only email notified, got %v", out.Notified)
	}
	if out.NotifyErrors["sms"] != "boom" {
		t.Fatalf("expected sms error recorded, got %v", out.NotifyErrors)
	}
	if len(sent) != 2 {
		t.Fatalf("expected both notifiers attempted, got %v", sent)
	}
}

func TestProcessor_Process_RejectsInvalidOrder(t *testing.T) {
	pay := &fakePayment{name: "pix"}
	p := Processor{Payment: pay}

	o := &domain.Order{ID: 1, AmountCents: 0, CustomerEmail: "a@b"}
	if _, err := p.Process(context.Background(), o); !errors.Is(err, domain.ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
	if pay.calls != 0 {
		t.Fatalf("expected payment not to be called")
	}
	if _, err := p.Process(context.Background(), nil); !errors.Is(err, domain.ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder for nil order, got %v", err)
	}
}

func TestProcessor_Process_DoesNotChargeTwice(t *testing.T) {
	pay := &fakePayment{name: "pix"}
	p := Processor{Payment: pay}

	o := newOrder()
	if _, err := p.Process(context.Background(), o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Process(context.Background(), o); !errors.Is(err, domain.ErrOrderAlreadyCompleted) {
		t.Fatalf("expected ErrOrderAlreadyCompleted, got %v", err)
	}
	if pay.calls != 1 {
		t.Fatalf("expected payment called once, got %d", pay.calls)
	}
}

func TestProcessor_Process_RequiresPayment(t *testing.T) {
	if _, err := (Processor{}).Process(context.Background(), newOrder()); err == nil {
		t.Fatalf("expected error without payment method")
	}
}

func TestProcessor_Process_StoreErrorIsReturned(t *testing.T) {
	p := Processor{Payment: &fakePayment{name: "pix"}, Store: &fakeStore{err: errBoom}}

	out, err := p.Process(context.Background(), newOrder())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if out.Receipt == nil {
		t.Fatalf("expected receipt to be kept in outcome")
	}
}

func TestProcessor_Process_CanceledContextSkipsPayment(t *testing.T) {
	pay := &fakePayment{name: "pix"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Processor{Payment: pay}.Process(ctx, newOrder())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if pay.calls != 0 {
		t.Fatalf("expected payment not to be called")
	}
}

func TestProcessor_Process_EventErrorIsBestEffort(t *testing.T) {
	p := Processor{Payment: &fakePayment{name: "pix"}, Events: &fakeEvents{err: errBoom}}
	if _, err := p.Process(context.Background(), newOrder()); err != nil {
		t.Fatalf("expected event error to be ignored, got %v", err)
	}
}

func TestProcessor_Process_StoredCompletedOrderIsNotCharged(t *testing.T) {
	store := &fakeStore{}
	done := *newOrder()
	done.Status = domain.StatusCompleted
	_ = store.Save(context.Background(), done)

	pay := &fakePayment{name: "pix"}
	p := Processor{Payment: pay, Store: store}

	_, err := p.Process(context.Background(), newOrder())
	if !errors.Is(err, domain.ErrOrderAlreadyCompleted) {
		t.Fatalf("expected ErrOrderAlreadyCompleted, got %v", err)
	}
	if pay.calls != 0 {
		t.Fatalf("expected payment not to be called")
	}
}

func TestProcessor_Process_RetriesFailedOrder(t *testing.T) {
	store := &fakeStore{}
	pay := &fakePayment{name: "cartao", err: domain.ErrPaymentDeclined}
	p := Processor{Payment: pay, Store: store}

	if _, err := p.Process(context.Background(), newOrder()); err == nil {
		t.Fatalf("expected declined payment")
	}
	pay.err = nil
	out, err := p.Process(context.Background(), newOrder())
	if err != nil {
		t.Fatalf("expected retry of failed order to succeed, got %v", err)
	}
	if out.Status != domain.StatusCompleted {
		t.Fatalf("expected concluido, got %s", out.Status)
	}
}

func TestProcessor_Process_ConcurrentSameOrderChargesOnce(t *testing.T) {
	pay := &slowPayment{delay: 20 * time.Millisecond}
	p := Processor{Payment: pay, Store: &fakeStore{}}

	const n = 5
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		errs      = make(chan error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o := &domain.Order{ID: 42, AmountCents: 1000, CustomerEmail: "a@b.com", Status: domain.StatusPending}
			if _, err := p.Process(context.Background(), o); err != nil {
				errs <- err
				return
			}
			successes.Add(1)
		}()
	}
	wg.Wait()
	close(errs)

	if got := pay.calls.Load(); got != 1 {
		t.Fatalf("expected exactly 1 payment, got %d", got)
	}
	if got := successes.Load(); got != 1 {
		t.Fatalf("expected exactly 1 success, got %d", got)
	}
	for err := range errs {
		if !errors.Is(err, domain.ErrOrderInProgress) && !errors.Is(err, domain.ErrOrderAlreadyCompleted) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestProcessor_Process_ClaimsWithoutStore(t *testing.T) {
	claims := &fakeStore{}
	release, err := claims.Claim(context.Background(), 123)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pay := &fakePayment{name: "cartao"}
	p := Processor{Payment: pay, Claims: claims}

	o := newOrder()
	if _, err := p.Process(context.Background(), o); !errors.Is(err, domain.ErrOrderInProgress) {
		t.Fatalf("expected ErrOrderInProgress, got %v", err)
	}
	if pay.calls != 0 {
		t.Fatalf("claimed order must not be charged, calls=%d", pay.calls)
	}
	if o.Status != domain.StatusPending {
		t.Fatalf("expected status unchanged, got %q", o.Status)
	}

	release()
	if _, err := p.Process(context.Background(), o); err != nil {
		t.Fatalf("expected success after release, got %v", err)
	}
	if _, err := claims.Claim(context.Background(), 123); err != nil {
		t.Fatalf("processor must release its claim, got %v", err)
	}
}
