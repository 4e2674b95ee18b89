package domain

import "time"

// Outcome resume o que aconteceu com um pedido processado.
type Outcome struct {
	OrderID      OrderID           `json:"pedido_id"`
	Status       Status            `json:"status"`
	Receipt      *Receipt          `json:"comprovante,omitempty"`
	Notified     []string          `json:"notificados"`
	NotifyErrors map[string]string `json:"erros_notificacao,omitempty"`
}

// Event representa o fim do processamento de um pedido.
//
// Observação: Method e Status têm cardinalidade baixa; não use OrderID como
// label em bases de série temporal.
type Event struct {
	OrderID  OrderID
	Status   Status
	Method   string
	Notified int
	At       time.Time
}
