package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"processador-pedidos/logging"
	"processador-pedidos/orders"
	"processador-pedidos/orders/application"
	"processador-pedidos/orders/domain"
	"processador-pedidos/orders/infra"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	logging.Configure(logging.Config{})
	log := logging.WithComponent("processor")

	cfg, err := readConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var (
		store  domain.OrderStore = infra.NewMemoryStore()
		events                   = infra.MultiEvents{infra.NewMetricsEvents(reg)}
	)
	if cfg.store == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		pingCancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.redisAddr).Msg("redis ping error")
		}
		store = infra.NewRedisStore(rdb, infra.WithStorePrefix(cfg.redisPrefix), infra.WithStoreTTL(cfg.orderTTL))
		events = append(events, infra.NewRedisEvents(rdb, infra.WithEventsPrefix(cfg.redisPrefix+":eventos")))
	}

	limiters := infra.NewLimiterStore(cfg.rateRPS, cfg.rateBurst)
	limiters.StartJanitor(ctx)

	rateOpts := orders.RateLimitOptions{
		KeyHeader:          cfg.rateKeyHeader,
		TrustXForwardedFor: cfg.trustXFF,
		RetryAfter:         cfg.retryAfter,
	}
	if cfg.rateEnabled {
		rateOpts.Store = limiters
	}

	var slots application.Slots
	if cfg.concurrencyMax > 0 {
		slots = application.Slots{Pool: infra.NewChanPool(cfg.concurrencyMax), Wait: cfg.concurrencyTimeout}
	}

	pedidosLog := logging.WithComponent("pedidos")
	h := &orders.Handler{
		Factory: application.Factory{
			Presets: orders.DefaultPresets(orders.PresetOptions{
				Logger:    pedidosLog,
				MaxAmount: cfg.maxAmount,
				SMSRate:   cfg.smsRate,
			}),
			Store:  store,
			Events: events,
			Logger: pedidosLog,
		},
		Store:         store,
		Slots:         slots,
		Logger:        log,
		DefaultPreset: cfg.defaultPreset,
		RateLimit:     rateOpts,
		Metrics:       reg,
	}

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("addr", cfg.listenAddr).
		Str("store", cfg.store).
		Str("preset", cfg.defaultPreset).
		Bool("rate", cfg.rateEnabled).
		Float64("rps", cfg.rateRPS).
		Int("burst", cfg.rateBurst).
		Int("concurrency", cfg.concurrencyMax).
		Msg("processador de pedidos no ar")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}

type config struct {
	listenAddr    string
	defaultPreset string
	maxAmount     int64
	smsRate       float64

	store         string
	redisAddr     string
	redisPassword string
	redisDB       int
	redisPrefix   string
	orderTTL      time.Duration

	rateEnabled        bool
	rateRPS            float64
	rateBurst          int
	rateKeyHeader      string
	trustXFF           bool
	retryAfter         time.Duration
	concurrencyMax     int
	concurrencyTimeout time.Duration
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.defaultPreset = getenvDefault("DEFAULT_PRESET", orders.PresetCardEmail)
	cfg.smsRate = getenvFloatDefault("SMS_RPS", 0)

	if v := strings.TrimSpace(os.Getenv("MAX_AMOUNT")); v != "" {
		cents, err := domain.ParseAmount(v)
		if err != nil {
			return config{}, errors.New("MAX_AMOUNT must be a value like 1000.00")
		}
		cfg.maxAmount = cents
	}

	cfg.store = strings.ToLower(getenvDefault("STORE", "memory"))
	cfg.redisAddr = os.Getenv("REDIS_ADDR")
	cfg.redisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.redisDB = getenvIntDefault("REDIS_DB", 0)
	cfg.redisPrefix = getenvDefault("REDIS_PREFIX", "pedidos")
	cfg.orderTTL = getenvDurationDefault("ORDER_TTL", 0)

	cfg.rateEnabled = getenvBoolDefault("RATE_ENABLED", true)
	cfg.rateRPS = getenvFloatDefault("RATE_RPS", 5)
	cfg.rateBurst = getenvIntDefault("RATE_BURST", 10)
	cfg.rateKeyHeader = os.Getenv("RATE_KEY_HEADER")
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", time.Second)
	cfg.concurrencyMax = getenvIntDefault("CONCURRENCY_MAX", 50)
	cfg.concurrencyTimeout = getenvDurationDefault("CONCURRENCY_TIMEOUT", 2*time.Second)

	switch cfg.store {
	case "memory":
	case "redis":
		if strings.TrimSpace(cfg.redisAddr) == "" {
			return config{}, errors.New("REDIS_ADDR is required when STORE=redis")
		}
	default:
		return config{}, errors.New("STORE must be memory or redis")
	}
	if cfg.rateRPS <= 0 {
		return config{}, errors.New("RATE_RPS must be > 0")
	}
	if cfg.rateBurst <= 0 {
		return config{}, errors.New("RATE_BURST must be > 0")
	}
	if cfg.concurrencyMax < 0 {
		return config{}, errors.New("CONCURRENCY_MAX must be >= 0")
	}
	return cfg, nil
}
