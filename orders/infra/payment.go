package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"processador-pedidos/orders/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentOption configura os métodos de pagamento simulados.
type PaymentOption func(*paymentBase)

type paymentBase struct {
	log       zerolog.Logger
	maxAmount int64
	now       func() time.Time
}

// WithPaymentLogger define onde as mensagens de pagamento são escritas.
func WithPaymentLogger(l zerolog.Logger) PaymentOption {
	return func(b *paymentBase) { b.log = l }
}

// WithMaxAmount recusa pedidos acima de cents. 0 desativa o limite.
func WithMaxAmount(cents int64) PaymentOption {
	return func(b *paymentBase) { b.maxAmount = cents }
}

func WithPaymentClock(now func() time.Time) PaymentOption {
	return func(b *paymentBase) { b.now = now }
}

func newPaymentBase(name string, opts []PaymentOption) paymentBase {
	b := paymentBase{log: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	b.log = b.log.With().Str("metodo", name).Logger()
	return b
}

func (b paymentBase) check(ctx context.Context, o domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.maxAmount > 0 && o.AmountCents > b.maxAmount {
		return fmt.Errorf("%w: valor R$ %s acima do limite de R$ %s",
			domain.ErrPaymentDeclined, o.Amount(), domain.FormatCents(b.maxAmount))
	}
	return nil
}

// CreditCard simula pagamento com cartão de crédito.
type CreditCard struct{ paymentBase }

func NewCreditCard(opts ...PaymentOption) *CreditCard {
	return &CreditCard{newPaymentBase("cartao", opts)}
}

func (c *CreditCard) Name() string { return "cartao" }

func (c *CreditCard) Pay(ctx context.Context, o domain.Order) (domain.Receipt, error) {
	if err := c.check(ctx, o); err != nil {
		return domain.Receipt{}, err
	}
	c.log.Info().Int64("pedido", int64(o.ID)).Msgf("Pagando R$ %s com cartão de crédito...", o.Amount())
	return domain.Receipt{
		Method:    c.Name(),
		Reference: "auth-" + uuid.NewString(),
		PaidAt:    c.now(),
	}, nil
}

// Boleto simula a emissão de um boleto bancário.
type Boleto struct {
	paymentBase
	dueIn time.Duration
}

func NewBoleto(opts ...PaymentOption) *Boleto {
	return &Boleto{paymentBase: newPaymentBase("boleto", opts), dueIn: 3 * 24 * time.Hour}
}

func (b *Boleto) Name() string { return "boleto" }

func (b *Boleto) Pay(ctx context.Context, o domain.Order) (domain.Receipt, error) {
	if err := b.check(ctx, o); err != nil {
		return domain.Receipt{}, err
	}
	b.log.Info().Int64("pedido", int64(o.ID)).Msgf("Gerando boleto no valor de R$ %s...", o.Amount())

	now := b.now()
	return domain.Receipt{
		Method:    b.Name(),
		Reference: digitableLine(o, now.Add(b.dueIn)),
		Detail:    "vencimento " + now.Add(b.dueIn).Format("2006-01-02"),
		PaidAt:    now,
	}, nil
}

// digitableLine monta uma linha digitável fictícia: banco, pedido, vencimento e valor.
func digitableLine(o domain.Order, due time.Time) string {
	return fmt.Sprintf("00190.%05d %s %010d", int64(o.ID)%100000, due.Format("20060102"), o.AmountCents)
}

// Pix simula um pagamento instantâneo via QR Code.
type Pix struct{ paymentBase }

func NewPix(opts ...PaymentOption) *Pix {
	return &Pix{newPaymentBase("pix", opts)}
}

func (p *Pix) Name() string { return "pix" }

func (p *Pix) Pay(ctx context.Context, o domain.Order) (domain.Receipt, error) {
	if err := p.check(ctx, o); err != nil {
		return domain.Receipt{}, err
	}
	log := p.log.With().Int64("pedido", int64(o.ID)).Logger()
	log.Info().Msgf("Processando pagamento Pix no valor de R$ %s...", o.Amount())

	// txid do Pix: até 35 caracteres alfanuméricos.
	txid := strings.ReplaceAll(uuid.NewString(), "-", "")
	log.Info().Str("txid", txid).Msg("QR Code gerado! Pagamento processado via Pix.")

	return domain.Receipt{
		Method:    p.Name(),
		Reference: txid,
		PaidAt:    p.now(),
	}, nil
}
