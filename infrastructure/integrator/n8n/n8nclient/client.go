package n8nclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
)

// SecretHeader é conferido pelo nó "Verify Secret Header" do workflow
const SecretHeader = "X-CRM-Secret"

type Client interface {
	SendStageChange(ctx context.Context, event domain.StageChangedEvent) error
}

type N8NClient struct {
	httpClient *http.Client
	url        string
	secret     string
}

// NewClient cria o cliente do webhook de entrada do n8n
func NewClient(cfg *config.Config) Client {
	return &N8NClient{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		url:    cfg.Outbound.URL,
		secret: cfg.Outbound.Secret,
	}
}
