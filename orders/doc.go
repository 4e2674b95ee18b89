// Package orders expõe o processamento de pedidos via HTTP (chi).
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (pedido, pagamento, notificação, store)
//   - application: casos de uso (Processor, Factory, Slots, Throttle) sem net/http
//   - infra: implementações concretas (cartão, boleto, pix, e-mail, SMS, Redis, Prometheus)
//   - orders (este pacote): handlers HTTP, presets padrão e middlewares
//
// Fluxo de POST /orders:
//
//  1. Rate limit por cliente (429 + Retry-After)
//  2. Decodifica o pedido e escolhe o preset (?preset=pix-sms-email)
//  3. Aguarda vaga de processamento (503 se esgotar o prazo)
//  4. Processor cobra, notifica e conclui; erros viram 400/402/404/409
//
// Variáveis de ambiente do binário (cmd/processor) controlam o comportamento,
// como STORE, RATE_RPS, CONCURRENCY_MAX e MAX_AMOUNT.
package orders
