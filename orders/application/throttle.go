package application

import (
	"time"

	"processador-pedidos/orders/domain"
)

// Throttle decide se um cliente pode enviar mais um pedido agora.
type Throttle struct {
	Store      domain.LimiterStore
	RetryAfter time.Duration
}

func (t Throttle) Decide(key domain.Key) domain.Decision {
	if t.Store == nil {
		return domain.Decision{Allowed: true}
	}
	retry := t.RetryAfter
	if retry <= 0 {
		retry = time.Second
	}

	lim := t.Store.Get(key)
	if lim == nil || lim.Allow() {
		return domain.Decision{Allowed: true}
	}
	return domain.Decision{Allowed: false, RetryAfter: retry}
}
