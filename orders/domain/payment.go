package domain

import (
	"context"
	"time"
)

// PaymentMethod é a estratégia de pagamento de um pedido (cartão, boleto, pix...).
//
// Pay deve retornar erro envolvendo ErrPaymentDeclined quando o pagamento for
// recusado; outros erros indicam falha técnica.
type PaymentMethod interface {
	Name() string
	Pay(ctx context.Context, o Order) (Receipt, error)
}

// Receipt é o comprovante devolvido pelo método de pagamento.
type Receipt struct {
	Method    string    `json:"metodo"`
	Reference string    `json:"referencia"`
	Detail    string    `json:"detalhe,omitempty"`
	PaidAt    time.Time `json:"pago_em"`
}
