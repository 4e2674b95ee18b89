package domain

import "errors"

var (
	ErrInvalidOrder          = errors.New("pedido inválido")
	ErrPaymentDeclined       = errors.New("pagamento recusado")
	ErrOrderNotFound         = errors.New("pedido não encontrado")
	ErrOrderAlreadyCompleted = errors.New("pedido já concluído")
	ErrOrderInProgress       = errors.New("pedido já está sendo processado")
	ErrUnknownPreset         = errors.New("configuração de processador desconhecida")
	ErrBusy                  = errors.New("sem vaga para processar o pedido")
)
