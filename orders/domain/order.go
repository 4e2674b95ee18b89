package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type OrderID int64

type Status string

const (
	StatusPending   Status = "pendente"
	StatusCompleted Status = "concluido"
	StatusFailed    Status = "falhou"
)

// Order é o pedido a ser processado.
//
// O valor é guardado em centavos para não depender de float em dinheiro.
type Order struct {
	ID            OrderID   `json:"id"`
	AmountCents   int64     `json:"valor_centavos"`
	CustomerEmail string    `json:"cliente_email"`
	CustomerPhone string    `json:"cliente_telefone,omitempty"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"criado_em"`
	UpdatedAt     time.Time `json:"atualizado_em"`
}

// Amount formata o valor com duas casas ("150.75").
func (o Order) Amount() string {
	return FormatCents(o.AmountCents)
}

func (o Order) Validate() error {
	if o.ID <= 0 {
		return fmt.Errorf("%w: id deve ser > 0", ErrInvalidOrder)
	}
	if o.AmountCents <= 0 {
		return fmt.Errorf("%w: valor deve ser > 0", ErrInvalidOrder)
	}
	email := strings.TrimSpace(o.CustomerEmail)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: cliente_email inválido", ErrInvalidOrder)
	}
	return nil
}

func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParseAmount converte "150.75" (ou "150,75") em centavos.
// Aceita no máximo duas casas decimais.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return 0, fmt.Errorf("%w: valor vazio", ErrInvalidOrder)
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, fmt.Errorf("%w: valor %q deve ter até duas casas decimais", ErrInvalidOrder, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	// sinal não é aceito em nenhuma das partes ("-0.50", "1.+5").
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("%w: valor %q inválido", ErrInvalidOrder, s)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("%w: valor %q inválido", ErrInvalidOrder, s)
	}
	f, _ := strconv.ParseInt(frac, 10, 64)
	return w*100 + f, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
