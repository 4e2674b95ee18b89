// Package application contém os casos de uso do processamento de pedidos.
//
// Ele depende apenas do pacote domain e não conhece net/http nem as
// implementações concretas de pagamento/notificação.
// Ex.: Processor.Process(ctx, &pedido) cobra, notifica e conclui o pedido.
package application
