package domain

import "context"

// Notifier envia a confirmação de um pedido por algum canal (e-mail, SMS...).
type Notifier interface {
	Channel() string
	Notify(ctx context.Context, o Order) error
}
