package n8nclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
)

func newTestClient(url string) Client {
	return NewClient(&config.Config{Outbound: config.Outbound{URL: url, Secret: "s3cr3t"}})
}

func TestN8NClient_SendStageChange(t *testing.T) {
	event := domain.StageChangedEvent{
		ID:             "evt_abc123",
		Type:           domain.EventDealStageChanged,
		DealID:         "d1",
		OldStageID:     "s1",
		NewStageID:     "s2",
		OccurredAt:     time.Date(2025, 8, 6, 10, 0, 0, 0, time.UTC),
		Source:         domain.SourceCRMUI,
		IdempotencyKey: "w1",
	}

	t.Run("envia JSON com o segredo no cabeçalho", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "s3cr3t", r.Header.Get("X-CRM-Secret"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{
				"id": "evt_abc123",
				"type": "deal_stage_changed",
				"deal_id": "d1",
				"old_stage_id": "s1",
				"new_stage_id": "s2",
				"occurred_at": "2025-08-06T10:00:00Z",
				"source": "crm-ui",
				"idempotency_key": "w1"
			}`, string(body))

			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		require.NoError(t, newTestClient(server.URL).SendStageChange(context.Background(), event))
	})

	t.Run("status fora de 2xx é erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"invalid X-CRM-Secret"}`))
		}))
		defer server.Close()

		err := newTestClient(server.URL).SendStageChange(context.Background(), event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
		assert.Contains(t, err.Error(), "invalid X-CRM-Secret")
	})

	t.Run("URL não configurada", func(t *testing.T) {
		err := newTestClient("").SendStageChange(context.Background(), event)
		assert.Error(t, err)
	})
}
