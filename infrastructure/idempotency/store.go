package idempotency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/internal/config"
)

// Store registra chaves de idempotência de webhooks já aceitos
type Store interface {
	// Claim devolve true se a chave foi registrada agora e false se já existia
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release remove a chave, permitindo que o remetente tente novamente
	Release(ctx context.Context, key string) error
	Close() error
}

// NewStore escolhe o backend configurado; se o Redis não responder, cai para memória
func NewStore(ctx context.Context, cfg *config.Config) Store {
	if cfg.Idempotency.Backend != config.IdempotencyBackendRedis {
		logrus.Info("Idempotência: usando armazenamento em memória")
		return NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logrus.WithError(err).Warnf("Idempotência: Redis %s indisponível, usando memória", cfg.Redis.Addr)
		_ = client.Close()
		return NewMemoryStore()
	}

	logrus.Infof("Idempotência: usando Redis em %s", cfg.Redis.Addr)
	return NewRedisStore(client, "")
}
