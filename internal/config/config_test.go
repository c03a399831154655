package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
		check   func(t *testing.T, c Config)
	}{
		{
			name: "deriva DSN e aplica padrões",
			cfg: Config{
				Database: Database{Driver: "postgres", User: "crm", Password: "s3nha", URL: "db:5432/crm?sslmode=disable"},
			},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, "postgres://crm:s3nha@db:5432/crm?sslmode=disable", c.Database.DSN)
				assert.Equal(t, IdempotencyBackendMemory, c.Idempotency.Backend)
				assert.Equal(t, 24*time.Hour, c.Idempotency.TTL)
				assert.Equal(t, 50, c.Outbound.BatchSize)
				assert.Equal(t, 5, c.Outbound.MaxAttempts)
			},
		},
		{
			name:    "backend de idempotência desconhecido",
			cfg:     Config{Idempotency: Idempotency{Backend: "memcached"}},
			wantErr: `config: IDEMPOTENCY_BACKEND inválido: "memcached"`,
		},
		{
			name:    "envio habilitado sem URL",
			cfg:     Config{Outbound: Outbound{Enabled: true}},
			wantErr: "config: OUTBOUND_WEBHOOK_URL é obrigatório quando OUTBOUND_DISPATCH_ENABLED=true",
		},
		{
			name: "mantém valores informados",
			cfg: Config{
				Idempotency: Idempotency{Backend: IdempotencyBackendRedis, TTL: time.Hour},
				Outbound:    Outbound{Enabled: true, URL: "http://n8n/webhook", BatchSize: 10, MaxAttempts: 2},
			},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, IdempotencyBackendRedis, c.Idempotency.Backend)
				assert.Equal(t, time.Hour, c.Idempotency.TTL)
				assert.Equal(t, 10, c.Outbound.BatchSize)
				assert.Equal(t, 2, c.Outbound.MaxAttempts)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cfg
			err := c.normalize()

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}
