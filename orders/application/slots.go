package application

import (
	"context"
	"time"

	"processador-pedidos/orders/domain"
)

// Slots limita quantos pedidos são processados ao mesmo tempo.
type Slots struct {
	Pool domain.SlotPool
	// Wait é quanto esperar por uma vaga. <= 0 espera até o ctx encerrar.
	Wait time.Duration
}

// Run executa fn dentro de uma vaga. Sem vaga dentro do prazo retorna ErrBusy
// sem chamar fn.
func (s Slots) Run(ctx context.Context, fn func(context.Context) error) error {
	if s.Pool == nil {
		return fn(ctx)
	}

	acqCtx := ctx
	if s.Wait > 0 {
		var cancel context.CancelFunc
		acqCtx, cancel = context.WithTimeout(ctx, s.Wait)
		defer cancel()
	}

	release, ok := s.Pool.Acquire(acqCtx)
	if !ok {
		return domain.ErrBusy
	}
	defer release()
	return fn(ctx)
}
