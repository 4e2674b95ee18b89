package infra

import (
	"context"

	"processador-pedidos/orders/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsEvents exporta eventos como métricas Prometheus.
type MetricsEvents struct {
	processed     *prometheus.CounterVec
	notifications prometheus.Counter
}

// NewMetricsEvents registra as métricas em reg. Use prometheus.NewRegistry()
// em testes para não colidir com o registry global.
func NewMetricsEvents(reg prometheus.Registerer) *MetricsEvents {
	m := &MetricsEvents{
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pedidos",
			Name:      "processados_total",
			Help:      "Pedidos processados por status e método de pagamento",
		}, []string{"status", "metodo"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pedidos",
			Name:      "notificacoes_total",
			Help:      "Notificações enviadas com sucesso",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.processed, m.notifications)
	}
	return m
}

func (m *MetricsEvents) Record(_ context.Context, ev domain.Event) error {
	m.processed.WithLabelValues(string(ev.Status), ev.Method).Inc()
	if ev.Notified > 0 {
		m.notifications.Add(float64(ev.Notified))
	}
	return nil
}

// MultiEvents repassa o evento para todos os recorders e retorna o primeiro erro.
type MultiEvents []domain.EventRecorder

func (m MultiEvents) Record(ctx context.Context, ev domain.Event) error {
	var first error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Record(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
