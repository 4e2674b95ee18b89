package orders

import (
	"processador-pedidos/orders/application"
	"processador-pedidos/orders/domain"
	"processador-pedidos/orders/infra"

	"github.com/rs/zerolog"
)

const (
	PresetCardEmail   = "cartao-email"
	PresetBoletoEmail = "boleto-email"
	PresetPixSMSEmail = "pix-sms-email"
	PresetPixSMS      = "pix-sms"
)

type PresetOptions struct {
	Logger zerolog.Logger
	// MaxAmount em centavos; 0 desativa o limite.
	MaxAmount int64
	// SMSRate limita envios de SMS por segundo; 0 desativa.
	SMSRate float64
}

// DefaultPresets retorna as combinações de pagamento + notificação oferecidas.
func DefaultPresets(opts PresetOptions) map[string]application.Preset {
	payOpts := []infra.PaymentOption{
		infra.WithPaymentLogger(opts.Logger),
		infra.WithMaxAmount(opts.MaxAmount),
	}
	email := func() domain.Notifier { return infra.NewEmail(opts.Logger) }
	sms := func() domain.Notifier {
		n := domain.Notifier(infra.NewSMS(opts.Logger))
		if opts.SMSRate > 0 {
			n = infra.NewThrottled(n, opts.SMSRate, 1)
		}
		return n
	}

	return map[string]application.Preset{
		PresetCardEmail: {
			Payment:   func() domain.PaymentMethod { return infra.NewCreditCard(payOpts...) },
			Notifiers: func() []domain.Notifier { return []domain.Notifier{email()} },
		},
		PresetBoletoEmail: {
			Payment:   func() domain.PaymentMethod { return infra.NewBoleto(payOpts...) },
			Notifiers: func() []domain.Notifier { return []domain.Notifier{email()} },
		},
		PresetPixSMSEmail: {
			Payment:   func() domain.PaymentMethod { return infra.NewPix(payOpts...) },
			Notifiers: func() []domain.Notifier { return []domain.Notifier{sms(), email()} },
		},
		PresetPixSMS: {
			Payment:   func() domain.PaymentMethod { return infra.NewPix(payOpts...) },
			Notifiers: func() []domain.Notifier { return []domain.Notifier{sms()} },
		},
	}
}
