package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-api/infrastructure/integrator/n8n"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
)

// OutboundDispatchConfig representa a configuração do envio de eventos ao n8n
type OutboundDispatchConfig struct {
	CronSchedule string
	BatchSize    int
	MaxAttempts  int
	Enabled      bool
}

// DispatchSummary resume uma execução do envio
type DispatchSummary struct {
	Loaded int `json:"loaded"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// OutboundDispatchService envia para o n8n os eventos deal_stage_changed pendentes em webhooks_log
type OutboundDispatchService struct {
	scheduler           *gocron.Scheduler
	config              OutboundDispatchConfig
	webhookLogRepo      repository.WebhookLogRepository
	n8nService          n8n.N8NIntegrator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         DispatchSummary
}

func NewOutboundDispatchService(
	webhookLogRepo repository.WebhookLogRepository,
	n8nService n8n.N8NIntegrator,
	appConfig *config.Config,
) *OutboundDispatchService {
	dispatchConfig := OutboundDispatchConfig{
		CronSchedule: appConfig.Outbound.CronSchedule,
		BatchSize:    appConfig.Outbound.BatchSize,
		MaxAttempts:  appConfig.Outbound.MaxAttempts,
		Enabled:      appConfig.Outbound.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": dispatchConfig.CronSchedule,
		"batch_size":    dispatchConfig.BatchSize,
		"max_attempts":  dispatchConfig.MaxAttempts,
		"enabled":       dispatchConfig.Enabled,
	}).Info("Configuração do envio de eventos ao n8n carregada")

	return &OutboundDispatchService{
		scheduler:      gocron.NewScheduler(time.UTC),
		config:         dispatchConfig,
		webhookLogRepo: webhookLogRepo,
		n8nService:     n8nService,
	}
}

// Start agenda o envio periódico; não faz nada quando o envio está desabilitado
func (s *OutboundDispatchService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Envio de eventos ao n8n desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de envio de eventos ao n8n")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.dispatchPending(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar envio de eventos ao n8n: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de envio de eventos ao n8n")
		s.scheduler.Stop()
	}()

	return nil
}

// dispatchPending executa um lote; devolve false quando outra execução já está em andamento
func (s *OutboundDispatchService) dispatchPending(ctx context.Context) (DispatchSummary, bool) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Envio de eventos ao n8n já em andamento, ignorando")
		return DispatchSummary{}, false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	summary := s.dispatchBatch(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSummary = summary
	s.syncMutex.Unlock()

	return summary, true
}

func (s *OutboundDispatchService) dispatchBatch(ctx context.Context) DispatchSummary {
	var summary DispatchSummary

	entries, err := s.webhookLogRepo.ListPending(ctx, domain.EventDealStageChanged, s.config.BatchSize)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar eventos pendentes em webhooks_log")
		return summary
	}

	summary.Loaded = len(entries)
	if len(entries) == 0 {
		logrus.Debug("Nenhum evento pendente para o n8n")
		return summary
	}

	for _, entry := range entries {
		event, err := s.n8nService.DispatchStageChange(ctx, entry)
		if err != nil {
			summary.Failed++
			logrus.WithFields(logrus.Fields{
				"webhook_log_id": entry.ID,
				"attempts":       entry.Attempts + 1,
				"error":          err.Error(),
			}).Warn("Falha ao enviar evento ao n8n")

			if recordErr := s.webhookLogRepo.RecordAttempt(ctx, entry.ID, err.Error(), s.config.MaxAttempts); recordErr != nil {
				logrus.WithError(recordErr).WithField("webhook_log_id", entry.ID).Error("Erro ao registrar tentativa de envio")
			}
			continue
		}

		if err := s.webhookLogRepo.MarkProcessed(ctx, entry.ID); err != nil {
			logrus.WithError(err).WithField("webhook_log_id", entry.ID).Error("Evento enviado mas não marcado como processed")
		}

		summary.Sent++
		logrus.WithFields(logrus.Fields{
			"webhook_log_id": entry.ID,
			"event_id":       event.ID,
			"deal_id":        event.DealID,
		}).Info("Evento deal_stage_changed enviado ao n8n")
	}

	logrus.WithFields(logrus.Fields{
		"loaded": summary.Loaded,
		"sent":   summary.Sent,
		"failed": summary.Failed,
	}).Info("Envio de eventos ao n8n concluído")

	return summary
}

// TriggerManualSync inicia manualmente um envio, em segundo plano
func (s *OutboundDispatchService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Envio de eventos ao n8n já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando envio manual de eventos ao n8n")
	go s.dispatchPending(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *OutboundDispatchService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"dispatch_enabled":       s.config.Enabled,
		"dispatch_cron":          s.config.CronSchedule,
		"dispatch_batch_size":    s.config.BatchSize,
		"dispatch_max_attempts":  s.config.MaxAttempts,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
	}
}
