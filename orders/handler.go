package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"processador-pedidos/orders/application"
	"processador-pedidos/orders/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Handler struct {
	Factory application.Factory
	Store   domain.OrderStore
	Slots   application.Slots
	Logger  zerolog.Logger

	// DefaultPreset é usado quando ?preset= não é informado.
	DefaultPreset string
	RateLimit     RateLimitOptions
	// Metrics expõe GET /metrics quando não nulo.
	Metrics prometheus.Gatherer
}

type orderRequest struct {
	ID            int64       `json:"id"`
	Amount        amountField `json:"valor"`
	CustomerEmail string      `json:"cliente_email"`
	CustomerPhone string      `json:"cliente_telefone"`
}

// amountField aceita "valor" como número (150.75) ou string ("150.75",
// "150,75"). A validação fica com domain.ParseAmount.
type amountField string

func (a *amountField) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amountField(s)
		return nil
	}
	*a = amountField(b)
	return nil
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/presets", h.listPresets)
	r.Get("/orders/{id}", h.getOrder)
	r.With(RateLimit(h.RateLimit)).Post("/orders", h.createOrder)
	if h.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.Metrics, promhttp.HandlerOpts{}))
	}
	return r
}

func (h *Handler) listPresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"presets": h.Factory.Names()})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		http.Error(w, "store não configurado", http.StatusNotImplemented)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}
	o, err := h.Store.Get(r.Context(), domain.OrderID(id))
	if errors.Is(err, domain.ErrOrderNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Logger.Error().Err(err).Int64("pedido", id).Msg("falha ao consultar pedido")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	cents, err := domain.ParseAmount(string(req.Amount))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	preset := strings.TrimSpace(r.URL.Query().Get("preset"))
	if preset == "" {
		preset = h.DefaultPreset
	}
	proc, err := h.Factory.New(preset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	o := domain.Order{
		ID:            domain.OrderID(req.ID),
		AmountCents:   cents,
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Status:        domain.StatusPending,
	}

	var out domain.Outcome
	err = h.Slots.Run(r.Context(), func(ctx context.Context) error {
		var perr error
		out, perr = proc.Process(ctx, &o)
		return perr
	})
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.Logger.Error().Err(err).Int64("pedido", req.ID).Msg("falha ao processar pedido")
		}
		writeJSON(w, status, map[string]any{"erro": err.Error(), "resultado": out})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidOrder):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrOrderAlreadyCompleted), errors.Is(err, domain.ErrOrderInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownPreset):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
