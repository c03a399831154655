package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	n8nmocks "github.com/vfg2006/crm-api/infrastructure/integrator/n8n/mocks"
	"github.com/vfg2006/crm-api/infrastructure/repository/mocks"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func pendingEntry(id string) *domain.WebhookLog {
	return &domain.WebhookLog{
		ID:        id,
		Source:    domain.SourceCRMUI,
		EventType: domain.EventDealStageChanged,
		Status:    domain.WebhookStatusPending,
		Payload:   map[string]any{"deal_id": "d-" + id, "new_stage_id": "s2"},
	}
}

func TestOutboundDispatchService_dispatchPending(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockWebhookLogRepo := mocks.NewMockWebhookLogRepository(ctrl)
	mockN8NService := n8nmocks.NewMockN8NIntegrator(ctrl)

	service := &OutboundDispatchService{
		config:         OutboundDispatchConfig{BatchSize: 10, MaxAttempts: 3, Enabled: true},
		webhookLogRepo: mockWebhookLogRepo,
		n8nService:     mockN8NService,
	}

	tests := []struct {
		name  string
		setup func()
		want  DispatchSummary
	}{
		{
			name: "Sem pendências - não envia nada",
			setup: func() {
				mockWebhookLogRepo.EXPECT().
					ListPending(gomock.Any(), domain.EventDealStageChanged, 10).
					Return(nil, nil)
			},
			want: DispatchSummary{},
		},
		{
			name: "Envio com sucesso marca processed e falha registra tentativa",
			setup: func() {
				ok := pendingEntry("w1")
				broken := pendingEntry("w2")

				mockWebhookLogRepo.EXPECT().
					ListPending(gomock.Any(), domain.EventDealStageChanged, 10).
					Return([]*domain.WebhookLog{ok, broken}, nil)

				mockN8NService.EXPECT().
					DispatchStageChange(gomock.Any(), ok).
					Return(&domain.StageChangedEvent{ID: "evt_1", DealID: "d-w1"}, nil)
				mockWebhookLogRepo.EXPECT().MarkProcessed(gomock.Any(), "w1").Return(nil)

				mockN8NService.EXPECT().
					DispatchStageChange(gomock.Any(), broken).
					Return(nil, errors.New("requisição falhou com status: 502 Bad Gateway"))
				mockWebhookLogRepo.EXPECT().
					RecordAttempt(gomock.Any(), "w2", "requisição falhou com status: 502 Bad Gateway", 3).
					Return(nil)
			},
			want: DispatchSummary{Loaded: 2, Sent: 1, Failed: 1},
		},
		{
			name: "Erro ao listar pendências - execução termina sem envio",
			setup: func() {
				mockWebhookLogRepo.EXPECT().
					ListPending(gomock.Any(), domain.EventDealStageChanged, 10).
					Return(nil, errors.New("conn refused"))
			},
			want: DispatchSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			summary, ran := service.dispatchPending(context.Background())
			assert.True(t, ran)
			assert.Equal(t, tt.want, summary)
			assert.Equal(t, tt.want, service.GetStatus()["last_summary"])
			assert.False(t, service.GetStatus()["running"].(bool))
		})
	}
}

func TestOutboundDispatchService_dispatchPending_emAndamento(t *testing.T) {
	service := &OutboundDispatchService{syncRunning: true}

	summary, ran := service.dispatchPending(context.Background())
	assert.False(t, ran)
	assert.Equal(t, DispatchSummary{}, summary)
}

func TestOutboundDispatchService_Start_desabilitado(t *testing.T) {
	cfg := &config.Config{Outbound: config.Outbound{Enabled: false, CronSchedule: "*/5 * * * *"}}
	service := NewOutboundDispatchService(nil, nil, cfg)

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["dispatch_enabled"])
}

func TestOutboundDispatchService_Start_cronInvalido(t *testing.T) {
	cfg := &config.Config{Outbound: config.Outbound{Enabled: true, CronSchedule: "não é cron"}}
	service := NewOutboundDispatchService(nil, nil, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, service.Start(ctx))
}
