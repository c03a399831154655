package domain

import "time"

type WebhookStatus string

const (
	WebhookStatusReceived  WebhookStatus = "received"
	WebhookStatusPending   WebhookStatus = "pending"
	WebhookStatusProcessed WebhookStatus = "processed"
	WebhookStatusFailed    WebhookStatus = "failed"
)

const (
	SourceCalcom    = "cal.com"
	SourceInstantly = "instantly.reply"
	SourceCRMUI     = "crm-ui"

	EventBookingCreated   = "booking.created"
	EventReplyReceived    = "reply_received"
	EventDealStageChanged = "deal_stage_changed"
)

type WebhookLog struct {
	ID             string         `json:"id"`
	Source         string         `json:"source"`
	EventType      string         `json:"event_type"`
	IdempotencyKey *string        `json:"idempotency_key"`
	Payload        map[string]any `json:"payload_json"`
	Status         WebhookStatus  `json:"status"`
	Attempts       int            `json:"attempts"`
	LastError      *string        `json:"last_error"`
	ProcessedAt    *time.Time     `json:"processed_at"`
	CreatedAt      time.Time      `json:"created_at"`
}

// StageChangedEvent é o contrato enviado ao n8n quando um negócio muda de estágio
type StageChangedEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	DealID     string    `json:"deal_id"`
	OldStageID string    `json:"old_stage_id"`
	NewStageID string    `json:"new_stage_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Source     string    `json:"source"`

	// IdempotencyKey é o id da linha em webhooks_log; reenvios repetem a chave
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}
