package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"processador-pedidos/orders/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore persiste pedidos como JSON em chaves "<prefix>:<id>".
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	// ttl 0 mantém o pedido para sempre.
	ttl time.Duration
	// claimTTL expira a reserva caso o processo morra sem liberar.
	claimTTL time.Duration
}

type RedisStoreOption func(*RedisStore)

func WithStorePrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) { s.prefix = strings.Trim(prefix, ":") }
}

func WithStoreTTL(d time.Duration) RedisStoreOption {
	return func(s *RedisStore) { s.ttl = d }
}

func WithClaimTTL(d time.Duration) RedisStoreOption {
	return func(s *RedisStore) { s.claimTTL = d }
}

func NewRedisStore(rdb *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{rdb: rdb, prefix: "pedidos", claimTTL: time.Minute}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(id domain.OrderID) string {
	return s.prefix + ":" + strconv.FormatInt(int64(id), 10)
}

func (s *RedisStore) Save(ctx context.Context, o domain.Order) error {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("serializar pedido #%d: %w", o.ID, err)
	}
	return s.rdb.Set(ctx, s.key(o.ID), b, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id domain.OrderID) (domain.Order, error) {
	b, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	var o domain.Order
	if err := json.Unmarshal(b, &o); err != nil {
		return domain.Order{}, fmt.Errorf("pedido #%d corrompido: %w", id, err)
	}
	return o, nil
}

// Claim implementa domain.Claimer com SET NX em "<prefix>:<id>:claim".
// O token garante que release só apaga a própria reserva.
func (s *RedisStore) Claim(ctx context.Context, id domain.OrderID) (func(), error) {
	key := s.key(id) + ":claim"
	token := uuid.NewString()

	ok, err := s.rdb.SetNX(ctx, key, token, s.claimTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("reservar pedido #%d: %w", id, err)
	}
	if !ok {
		return nil, domain.ErrOrderInProgress
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// contexto próprio: o da requisição pode já ter sido cancelado.
			relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = releaseClaim.Run(relCtx, s.rdb, []string{key}, token).Err()
		})
	}, nil
}

var releaseClaim = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)
