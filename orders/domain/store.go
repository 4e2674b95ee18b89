package domain

import "context"

// OrderStore é a estratégia de persistência dos pedidos.
//
// Get retorna ErrOrderNotFound quando o pedido não existe.
type OrderStore interface {
	Save(ctx context.Context, o Order) error
	Get(ctx context.Context, id OrderID) (Order, error)
}

// Claimer reserva um pedido para processamento exclusivo.
//
// Claim retorna ErrOrderInProgress se outro processamento já detém o pedido.
// release libera a reserva e deve ser chamada exatamente uma vez.
type Claimer interface {
	Claim(ctx context.Context, id OrderID) (release func(), err error)
}
