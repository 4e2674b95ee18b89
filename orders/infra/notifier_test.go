package infra

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"processador-pedidos/orders/domain"

	"github.com/rs/zerolog"
)

func TestEmail_Notify(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmail(zerolog.New(&buf))

	if err := e.Notify(context.Background(), order(123, 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "cliente@exemplo.com") {
		t.Fatalf("expected recipient in log, got %q", buf.String())
	}

	o := order(124, 100)
	o.CustomerEmail = " "
	if err := e.Notify(context.Background(), o); !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("expected ErrNoRecipient, got %v", err)
	}
}

func TestSMS_Notify_MentionsOrderAndPhone(t *testing.T) {
	var buf bytes.Buffer
	s := NewSMS(zerolog.New(&buf))

	o := order(999, 100)
	o.CustomerPhone = "+5511999990000"
	if err := s.Notify(context.Background(), o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "pedido #999") || !strings.Contains(out, "+5511999990000") {
		t.Fatalf("unexpected sms log %q", out)
	}
}

type countingNotifier struct{ n int }

func (c *countingNotifier) Channel() string { return "contador" }
func (c *countingNotifier) Notify(context.Context, domain.Order) error {
	c.n++
	return nil
}

func TestThrottled_WaitsForToken(t *testing.T) {
	next := &countingNotifier{}
	th := NewThrottled(next, 0.01, 1)

	if th.Channel() != "contador" {
		t.Fatalf("expected channel to be forwarded")
	}
	if err := th.Notify(context.Background(), order(1, 100)); err != nil {
		t.Fatalf("expected first notify to pass, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := th.Notify(ctx, order(1, 100)); err == nil {
		t.Fatalf("expected second notify to fail waiting for token")
	}
	if next.n != 1 {
		t.Fatalf("expected inner notifier called once, got %d", next.n)
	}
}
