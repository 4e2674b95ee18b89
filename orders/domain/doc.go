// Package domain define contratos e tipos de domínio para o processamento de pedidos.
//
// Este pacote não depende de net/http nem de implementações concretas
// (pagamento, notificação, persistência). O processador conversa apenas com
// as interfaces daqui; a camada infra fornece as implementações.
package domain
