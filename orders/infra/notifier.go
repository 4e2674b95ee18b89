package infra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"processador-pedidos/orders/domain"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var ErrNoRecipient = errors.New("destinatário ausente")

// Email simula o envio de e-mail de confirmação.
type Email struct {
	log zerolog.Logger
}

func NewEmail(log zerolog.Logger) *Email {
	return &Email{log: log.With().Str("canal", "email").Logger()}
}

func (e *Email) Channel() string { return "email" }

func (e *Email) Notify(ctx context.Context, o domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to := strings.TrimSpace(o.CustomerEmail)
	if to == "" {
		return fmt.Errorf("email do pedido #%d: %w", o.ID, ErrNoRecipient)
	}
	e.log.Info().Int64("pedido", int64(o.ID)).Msgf("Enviando e-mail de confirmação para %s...", to)
	return nil
}

// SMS simula o envio de SMS de confirmação.
//
// O telefone é opcional: sem ele a mensagem é endereçada ao pedido.
type SMS struct {
	log zerolog.Logger
}

func NewSMS(log zerolog.Logger) *SMS {
	return &SMS{log: log.With().Str("canal", "sms").Logger()}
}

func (s *SMS) Channel() string { return "sms" }

func (s *SMS) Notify(ctx context.Context, o domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ev := s.log.Info().Int64("pedido", int64(o.ID))
	if phone := strings.TrimSpace(o.CustomerPhone); phone != "" {
		ev = ev.Str("telefone", phone)
	}
	ev.Msgf("Enviando SMS de confirmação para o telefone do pedido #%d...", o.ID)
	return nil
}

// Throttled limita a taxa de envio de um Notifier (token bucket).
// Notify espera por um token até o ctx encerrar.
type Throttled struct {
	next domain.Notifier
	lim  *rate.Limiter
}

func NewThrottled(next domain.Notifier, perSecond float64, burst int) *Throttled {
	if burst <= 0 {
		burst = 1
	}
	return &Throttled{next: next, lim: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (t *Throttled) Channel() string { return t.next.Channel() }

func (t *Throttled) Notify(ctx context.Context, o domain.Order) error {
	if err := t.lim.Wait(ctx); err != nil {
		return fmt.Errorf("%s: aguardando vaga de envio: %w", t.next.Channel(), err)
	}
	return t.next.Notify(ctx, o)
}
