package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"processador-pedidos/orders/domain"

	"github.com/redis/go-redis/v9"
)

// RedisEvents agrega eventos em hashes do Redis:
//
//	<prefix>:total            status -> contagem (não expira)
//	<prefix>:method           "<metodo>:<status>" -> contagem
//	<prefix>:minute:<yyyymmddhhmm>  status -> contagem (expira em ttl)
type RedisEvents struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	bucket string // "minute" (padrão) ou "none"
}

type RedisEventsOption func(*RedisEvents)

func WithEventsPrefix(prefix string) RedisEventsOption {
	return func(r *RedisEvents) { r.prefix = strings.Trim(prefix, ":") }
}

func WithEventsTTL(d time.Duration) RedisEventsOption {
	return func(r *RedisEvents) { r.ttl = d }
}

func WithEventsBucket(bucket string) RedisEventsOption {
	return func(r *RedisEvents) { r.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func NewRedisEvents(rdb *redis.Client, opts ...RedisEventsOption) *RedisEvents {
	r := &RedisEvents{
		rdb:    rdb,
		prefix: "pedidos:eventos",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisEvents) Record(ctx context.Context, ev domain.Event) error {
	if r == nil || r.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := string(ev.Status)

	pipe := r.rdb.Pipeline()
	pipe.HIncrBy(ctx, r.prefix+":total", field, 1)
	if m := strings.TrimSpace(ev.Method); m != "" {
		pipe.HIncrBy(ctx, r.prefix+":method", m+":"+field, 1)
	}
	if ev.Notified > 0 {
		pipe.HIncrBy(ctx, r.prefix+":total", "notificacoes", int64(ev.Notified))
	}
	if r.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", r.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if r.ttl > 0 {
			pipe.Expire(ctx, bucketKey, r.ttl)
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
