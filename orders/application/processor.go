package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"processador-pedidos/orders/domain"

	"github.com/rs/zerolog"
)

// Processor orquestra o processamento de um pedido: valida, delega o
// pagamento, dispara as notificações e conclui.
//
// Store e Events são opcionais. Logger zero-value descarta os logs.
// Claims reserva o pedido durante o processamento; se nulo, o Store é usado
// quando implementa domain.Claimer.
type Processor struct {
	Payment   domain.PaymentMethod
	Notifiers []domain.Notifier
	Store     domain.OrderStore
	Claims    domain.Claimer
	Events    domain.EventRecorder
	Logger    zerolog.Logger

	// Now permite fixar o relógio em testes.
	Now func() time.Time
}

var errNoPayment = errors.New("processador sem método de pagamento")

// Process processa o pedido e atualiza o Status em o.
//
// Falha de pagamento marca o pedido como falhou e não notifica ninguém.
// Falha de um notificador é registrada em Outcome.NotifyErrors e não
// interrompe os demais.
func (p Processor) Process(ctx context.Context, o *domain.Order) (domain.Outcome, error) {
	if p.Payment == nil {
		return domain.Outcome{}, errNoPayment
	}
	if o == nil {
		return domain.Outcome{}, fmt.Errorf("%w: pedido nulo", domain.ErrInvalidOrder)
	}
	if err := o.Validate(); err != nil {
		return domain.Outcome{OrderID: o.ID, Status: o.Status}, err
	}
	if o.Status == domain.StatusCompleted {
		return domain.Outcome{OrderID: o.ID, Status: o.Status}, domain.ErrOrderAlreadyCompleted
	}
	if c := p.claimer(); c != nil {
		release, err := c.Claim(ctx, o.ID)
		if err != nil {
			return domain.Outcome{OrderID: o.ID, Status: o.Status}, err
		}
		defer release()
	}
	if p.Store != nil {
		prev, err := p.Store.Get(ctx, o.ID)
		switch {
		case err == nil && prev.Status == domain.StatusCompleted:
			return domain.Outcome{OrderID: o.ID, Status: prev.Status}, domain.ErrOrderAlreadyCompleted
		case err != nil && !errors.Is(err, domain.ErrOrderNotFound):
			return domain.Outcome{OrderID: o.ID, Status: o.Status}, fmt.Errorf("consultar pedido #%d: %w", o.ID, err)
		}
	}
	if o.Status == "" {
		o.Status = domain.StatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = p.now()
	}

	log := p.Logger.With().Int64("pedido", int64(o.ID)).Str("metodo", p.Payment.Name()).Logger()
	log.Info().Str("valor", o.Amount()).Msgf("Processando o pedido #%d no valor de R$ %s...", o.ID, o.Amount())

	if err := ctx.Err(); err != nil {
		return domain.Outcome{OrderID: o.ID, Status: o.Status}, err
	}

	receipt, err := p.Payment.Pay(ctx, *o)
	if err != nil {
		log.Warn().Err(err).Msg("Falha no processamento do pagamento!")
		o.Status = domain.StatusFailed
		o.UpdatedAt = p.now()
		out := domain.Outcome{OrderID: o.ID, Status: o.Status, Notified: []string{}}
		if serr := p.save(ctx, *o); serr != nil {
			log.Error().Err(serr).Msg("falha ao persistir pedido com pagamento recusado")
		}
		p.record(ctx, *o, 0)
		return out, fmt.Errorf("pagamento do pedido #%d: %w", o.ID, err)
	}

	out := domain.Outcome{
		OrderID:  o.ID,
		Receipt:  &receipt,
		Notified: make([]string, 0, len(p.Notifiers)),
	}
	for _, n := range p.Notifiers {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, *o); err != nil {
			log.Warn().Err(err).Str("canal", n.Channel()).Msg("falha ao notificar")
			if out.NotifyErrors == nil {
				out.NotifyErrors = make(map[string]string)
			}
			out.NotifyErrors[n.Channel()] = err.Error()
			continue
		}
		out.Notified = append(out.Notified, n.Channel())
	}

	o.Status = domain.StatusCompleted
	o.UpdatedAt = p.now()
	out.Status = o.Status

	if err := p.save(ctx, *o); err != nil {
		return out, fmt.Errorf("persistir pedido #%d: %w", o.ID, err)
	}
	p.record(ctx, *o, len(out.Notified))

	log.Info().Int("notificados", len(out.Notified)).Msg("Pedido concluído!")
	return out, nil
}

func (p Processor) claimer() domain.Claimer {
	if p.Claims != nil {
		return p.Claims
	}
	c, _ := p.Store.(domain.Claimer)
	return c
}

func (p Processor) save(ctx context.Context, o domain.Order) error {
	if p.Store == nil {
		return nil
	}
	return p.Store.Save(ctx, o)
}

func (p Processor) record(ctx context.Context, o domain.Order, notified int) {
	if p.Events == nil {
		return
	}
	err := p.Events.Record(ctx, domain.Event{
		OrderID:  o.ID,
		Status:   o.Status,
		Method:   p.Payment.Name(),
		Notified: notified,
		At:       o.UpdatedAt,
	})
	if err != nil {
		p.Logger.Debug().Err(err).Msg("falha ao registrar evento")
	}
}

func (p Processor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
