package application

import (
	"fmt"
	"sort"

	"processador-pedidos/orders/domain"

	"github.com/rs/zerolog"
)

// Preset descreve uma combinação de pagamento + notificadores.
//
// As funções são chamadas a cada New para que cada processador receba
// instâncias próprias.
type Preset struct {
	Payment   func() domain.PaymentMethod
	Notifiers func() []domain.Notifier
}

// Factory monta processadores a partir de presets nomeados, injetando as
// dependências comuns (store, eventos, logger).
type Factory struct {
	Presets map[string]Preset
	Store   domain.OrderStore
	Claims  domain.Claimer
	Events  domain.EventRecorder
	Logger  zerolog.Logger
}

func (f Factory) New(name string) (Processor, error) {
	pr, ok := f.Presets[name]
	if !ok || pr.Payment == nil {
		return Processor{}, fmt.Errorf("%w: %q", domain.ErrUnknownPreset, name)
	}
	var notifiers []domain.Notifier
	if pr.Notifiers != nil {
		notifiers = pr.Notifiers()
	}
	return f.Custom(pr.Payment(), notifiers...), nil
}

// Custom monta um processador com uma combinação livre.
func (f Factory) Custom(payment domain.PaymentMethod, notifiers ...domain.Notifier) Processor {
	return Processor{
		Payment:   payment,
		Notifiers: notifiers,
		Store:     f.Store,
		Claims:    f.Claims,
		Events:    f.Events,
		Logger:    f.Logger,
	}
}

// Names lista os presets disponíveis em ordem alfabética.
func (f Factory) Names() []string {
	out := make([]string, 0, len(f.Presets))
	for k := range f.Presets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
