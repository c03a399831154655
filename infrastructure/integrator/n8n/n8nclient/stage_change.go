package n8nclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/crm-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (c *N8NClient) SendStageChange(ctx context.Context, event domain.StageChangedEvent) error {
	if c.url == "" {
		return fmt.Errorf("n8n: OUTBOUND_WEBHOOK_URL não configurada")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao serializar o evento: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SecretHeader, c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("requisição falhou com status: %s: %s", resp.Status, bytes.TrimSpace(excerpt))
	}

	return nil
}
