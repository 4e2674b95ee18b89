// Package logging configura o logger zerolog compartilhado pelos binários.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level   string    // "debug", "info"... (padrão: LOG_LEVEL ou info)
	Output  io.Writer // padrão: os.Stdout
	Service string    // padrão: LOG_SERVICE ou "processador-pedidos"
}

var (
	once sync.Once
	base zerolog.Logger
)

// Configure inicializa o logger base uma única vez; chamadas seguintes são ignoradas.
func Configure(cfg Config) {
	once.Do(func() {
		base = New(cfg)
	})
}

// New cria um logger independente do global. Útil em testes.
func New(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	lv := cfg.Level
	if lv == "" {
		lv = os.Getenv("LOG_LEVEL")
	}
	if lv != "" {
		if parsed, err := zerolog.ParseLevel(lv); err == nil {
			level = parsed
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339

	w := cfg.Output
	if w == nil {
		w = os.Stdout
	}
	service := cfg.Service
	if service == "" {
		service = os.Getenv("LOG_SERVICE")
		if service == "" {
			service = "processador-pedidos"
		}
	}

	return zerolog.New(w).Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()
}

func Base() zerolog.Logger {
	Configure(Config{})
	return base
}

// WithComponent retorna um logger filho com o campo component.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
