package n8n

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/crm-api/infrastructure/integrator/n8n/n8nclient"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/utils"
)

type N8NIntegrator interface {
	DispatchStageChange(ctx context.Context, entry *domain.WebhookLog) (*domain.StageChangedEvent, error)
}

type N8NService struct {
	Client n8nclient.Client
	newID  func() (string, error)
}

func New(client n8nclient.Client) N8NIntegrator {
	return &N8NService{
		Client: client,
		newID:  utils.GenerateEventID,
	}
}

// DispatchStageChange transforma a linha pendente de webhooks_log no evento do n8n e o envia
func (s *N8NService) DispatchStageChange(ctx context.Context, entry *domain.WebhookLog) (*domain.StageChangedEvent, error) {
	event, err := s.eventFrom(entry)
	if err != nil {
		return nil, err
	}

	if err := s.Client.SendStageChange(ctx, *event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *N8NService) eventFrom(entry *domain.WebhookLog) (*domain.StageChangedEvent, error) {
	dealID := payloadString(entry.Payload, "deal_id")
	newStageID := payloadString(entry.Payload, "new_stage_id")
	if dealID == "" || newStageID == "" {
		return nil, fmt.Errorf("n8n: payload sem deal_id ou new_stage_id (webhooks_log %s)", entry.ID)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("n8n: erro ao gerar id do evento: %w", err)
	}

	occurredAt := entry.CreatedAt
	if raw := payloadString(entry.Payload, "occurred_at"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			occurredAt = parsed
		}
	}

	source := payloadString(entry.Payload, "source")
	if source == "" {
		source = domain.SourceCRMUI
	}

	return &domain.StageChangedEvent{
		ID:             id,
		Type:           domain.EventDealStageChanged,
		DealID:         dealID,
		OldStageID:     payloadString(entry.Payload, "old_stage_id"),
		NewStageID:     newStageID,
		OccurredAt:     occurredAt.UTC(),
		Source:         source,
		IdempotencyKey: entry.ID,
	}, nil
}

func payloadString(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}
