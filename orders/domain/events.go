package domain

import "context"

// EventRecorder registra eventos de processamento.
//
// Implementações podem armazenar em Redis, Prometheus, memória, etc.
// O processador trata erro como best-effort (não falha o pedido).
type EventRecorder interface {
	Record(ctx context.Context, ev Event) error
}
