// Package infra contém implementações concretas para os contratos do pacote domain.
//
// Exemplos:
//   - CreditCard, Boleto, Pix: métodos de pagamento simulados
//   - Email, SMS, Throttled: notificadores
//   - MemoryStore, RedisStore: persistência de pedidos
//   - MemoryEvents, RedisEvents, MetricsEvents: registro de eventos
//   - LimiterStore, NewChanPool: rate limit por chave e semáforo
package infra
