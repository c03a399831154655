package ingesting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/crm-api/infrastructure/idempotency"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/log"
	"github.com/vfg2006/crm-api/pkg/signature"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	IdempotencyHeader = "Idempotency-Key"

	calcomDealNotes       = "Created by cal.com booking webhook."
	instantlySystemNote   = "Created from Instantly reply"
	instantlyMetaSource   = "instantly-reply-webhook"
	instantlyDealTitleFmt = "Instantly Reply – %s"
)

// Request é o webhook como chegou: corpo bruto e cabeçalhos relevantes
type Request struct {
	Body           []byte
	Signature      string
	IdempotencyKey string
}

// Ingestor processa os webhooks recebidos do cal.com e do Instantly
type Ingestor interface {
	CalcomBooking(ctx context.Context, req Request) (*CalcomResult, error)
	InstantlyReply(ctx context.Context, req Request) (*InstantlyResult, error)
}

type Service struct {
	contactRepository    repository.ContactRepository
	dealRepository       repository.DealRepository
	pipelineRepository   repository.PipelineRepository
	activityRepository   repository.ActivityRepository
	webhookLogRepository repository.WebhookLogRepository
	store                idempotency.Store
	calcomVerifier       *signature.Verifier
	instantlyVerifier    *signature.Verifier
	ttl                  time.Duration
	newKey               func() string
}

func NewService(
	contactRepository repository.ContactRepository,
	dealRepository repository.DealRepository,
	pipelineRepository repository.PipelineRepository,
	activityRepository repository.ActivityRepository,
	webhookLogRepository repository.WebhookLogRepository,
	store idempotency.Store,
	cfg *config.Config,
) *Service {
	return &Service{
		contactRepository:    contactRepository,
		dealRepository:       dealRepository,
		pipelineRepository:   pipelineRepository,
		activityRepository:   activityRepository,
		webhookLogRepository: webhookLogRepository,
		store:                store,
		calcomVerifier:       signature.NewVerifier(cfg.Webhooks.CalcomSecret, cfg.Webhooks.DevSignatureBypass),
		instantlyVerifier:    signature.NewVerifier(cfg.Webhooks.InstantlySecret, cfg.Webhooks.DevSignatureBypass),
		ttl:                  cfg.Idempotency.TTL,
		newKey:               func() string { return "no-key:" + uuid.NewString() },
	}
}

// CalcomBooking registra o agendamento e move o negócio do contato para "Meeting Scheduled"
func (s *Service) CalcomBooking(ctx context.Context, req Request) (*CalcomResult, error) {
	logger := log.ForContext(ctx).WithField("event_source", domain.SourceCalcom)

	if err := verify(s.calcomVerifier, req); err != nil {
		logger.WithError(err).Warn("Assinatura do webhook cal.com rejeitada")
		return nil, err
	}

	var payload CalcomBookingPayload
	raw, err := decode(req.Body, &payload)
	if err != nil {
		return nil, err
	}

	key := idempotencyKey(req.IdempotencyKey, payload.IdempotencyKey)
	eventType := payload.Event
	if eventType == "" {
		eventType = domain.EventBookingCreated
	}

	logID, err := s.webhookLogRepository.Create(ctx, &domain.WebhookLog{
		Source:         domain.SourceCalcom,
		EventType:      eventType,
		IdempotencyKey: key,
		Payload:        raw,
		Status:         domain.WebhookStatusReceived,
	})
	if err != nil {
		if repository.IsDuplicate(err) {
			logger.WithField("idempotency_key", deref(key)).Info("Evento cal.com duplicado ignorado")
			return nil, domain.NewCRMError(domain.ErrDuplicateEvent, apiErrors.ErrDuplicateEvent, "")
		}
		logger.WithError(err).Error("Erro ao registrar webhook cal.com")
		return nil, domain.NewCRMError(domain.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	result, err := s.processBooking(ctx, &payload)
	if err != nil {
		logger.WithError(err).Error("Falha ao processar agendamento do cal.com")
		if markErr := s.webhookLogRepository.MarkFailed(ctx, logID, err.Error()); markErr != nil {
			logger.WithError(markErr).Warn("Falha ao marcar webhook como failed")
		}
		return nil, err
	}

	if err := s.webhookLogRepository.MarkProcessed(ctx, logID); err != nil {
		logger.WithError(err).Warn("Falha ao marcar webhook como processed")
	}

	logger.WithFields(log.Fields{"contact_id": result.ContactID, "deal_id": result.DealID}).Info("Agendamento do cal.com processado")
	return result, nil
}

func (s *Service) processBooking(ctx context.Context, payload *CalcomBookingPayload) (*CalcomResult, error) {
	attendee, ok := payload.attendee()
	if !ok {
		return nil, domain.NewCRMError(domain.ErrMissingAttendeeMail, apiErrors.ErrMissingRequiredData, "")
	}

	contact, err := s.contactRepository.UpsertByEmail(ctx, domain.ContactUpsert{
		Email:    normalizeEmail(attendee.Email),
		FullName: optional(attendee.Name),
	})
	if err != nil {
		return nil, internalError(err)
	}

	pipelineID, stage, err := s.defaultStage(ctx, domain.StageMeetingScheduled)
	if err != nil {
		return nil, err
	}

	var dealID string
	open, err := s.dealRepository.FindOpenByContact(ctx, contact.ID)
	if err != nil {
		return nil, internalError(err)
	}

	if open != nil {
		dealID = open.ID
		if err := s.dealRepository.UpdateStage(ctx, dealID, stage.ID); err != nil {
			return nil, internalError(err)
		}
	} else {
		notes := calcomDealNotes
		dealID, err = s.dealRepository.Create(ctx, &domain.NewDeal{
			Title:      contactLabel(contact) + " - Meeting",
			ContactID:  &contact.ID,
			CompanyID:  contact.CompanyID,
			PipelineID: pipelineID,
			StageID:    stage.ID,
			Currency:   domain.DefaultDealCurrency,
			Status:     string(domain.DealStatusOpen),
			Source:     domain.DefaultDealSource,
			Notes:      &notes,
		})
		if err != nil {
			return nil, internalError(err)
		}
	}

	booking := payload.Booking
	if booking == nil {
		booking = &Booking{}
	}
	title := booking.Title
	if title == "" {
		title = "Call"
	}
	content := fmt.Sprintf("Meeting scheduled: %s (%s - %s)", title, booking.StartTime, booking.EndTime)

	if _, err := s.activityRepository.Create(ctx, &domain.Activity{
		Type:        domain.ActivityTypeMeeting,
		RelatedType: domain.RelatedDeal,
		RelatedID:   dealID,
		Content:     &content,
		Meta: map[string]any{
			"booking_id": booking.ID,
			"attendees":  booking.Attendees,
			"start_time": booking.StartTime,
			"end_time":   booking.EndTime,
		},
	}); err != nil {
		return nil, internalError(err)
	}

	return &CalcomResult{Status: "ok", ContactID: contact.ID, DealID: dealID}, nil
}

// InstantlyReply registra a resposta do lead, classifica a intenção e garante um negócio no estágio "New"
func (s *Service) InstantlyReply(ctx context.Context, req Request) (*InstantlyResult, error) {
	logger := log.ForContext(ctx).WithField("event_source", domain.SourceInstantly)

	if err := verify(s.instantlyVerifier, req); err != nil {
		logger.WithError(err).Warn("Assinatura do webhook Instantly rejeitada")
		return nil, err
	}

	var payload InstantlyReplyPayload
	raw, err := decode(req.Body, &payload)
	if err != nil {
		return nil, err
	}

	key := idempotencyKey(req.IdempotencyKey, payload.IdempotencyKey)
	storeKey := s.newKey()
	if key != nil {
		storeKey = *key
	}
	logger = logger.WithField("idempotency_key", storeKey)

	claimed, err := s.store.Claim(ctx, storeKey, s.ttl)
	if err != nil {
		logger.WithError(err).Error("Erro ao consultar armazenamento de idempotência")
		return nil, domain.NewCRMError(domain.ErrDatabaseOperation, apiErrors.ErrCommunication, err.Error())
	}
	if !claimed {
		logger.Info("Resposta do Instantly duplicada ignorada")
		return nil, domain.NewCRMError(domain.ErrDuplicateEvent, apiErrors.ErrDuplicateEvent, "")
	}

	result, err := s.processReply(ctx, &payload, key)
	if err != nil {
		logger.WithError(err).Error("Falha ao processar resposta do Instantly")
		if releaseErr := s.store.Release(ctx, storeKey); releaseErr != nil {
			logger.WithError(releaseErr).Warn("Falha ao liberar chave de idempotência")
		}
		return nil, err
	}

	eventType := payload.Event
	if eventType == "" {
		eventType = domain.EventReplyReceived
	}
	if _, err := s.webhookLogRepository.Create(ctx, &domain.WebhookLog{
		Source:         domain.SourceInstantly,
		EventType:      eventType,
		IdempotencyKey: key,
		Payload:        raw,
		Status:         domain.WebhookStatusProcessed,
	}); err != nil && !repository.IsDuplicate(err) {
		logger.WithError(err).Warn("Falha ao registrar webhook do Instantly")
	}

	logger.WithFields(log.Fields{"contact_id": result.ContactID, "deal_id": result.DealID}).
		Infof("Resposta do Instantly processada: %s", result.ReplyStatus)
	return result, nil
}

func (s *Service) processReply(ctx context.Context, payload *InstantlyReplyPayload, key *string) (*InstantlyResult, error) {
	email := normalizeEmail(payload.Lead.Email)
	if email == "" {
		return nil, domain.NewCRMError(domain.ErrMissingLeadEmail, apiErrors.ErrMissingRequiredData, "")
	}

	contact, err := s.contactRepository.UpsertByEmail(ctx, domain.ContactUpsert{
		Email:       email,
		FullName:    payload.Lead.FullName,
		Website:     payload.Lead.Website,
		LinkedinURL: payload.Lead.LinkedinURL,
	})
	if err != nil {
		return nil, internalError(err)
	}

	content := firstNonEmpty("Email reply", payload.Message.Snippet, payload.Message.Subject)
	activityID, err := s.activityRepository.Create(ctx, &domain.Activity{
		Type:        domain.ActivityTypeEmailIn,
		RelatedType: domain.RelatedContact,
		RelatedID:   contact.ID,
		Content:     &content,
		Meta: map[string]any{
			"campaign_id":     payload.CampaignID,
			"message_subject": payload.Message.Subject,
			"message_text":    payload.Message.Text,
			"received_at":     payload.Message.ReceivedAt,
			"idempotency_key": key,
		},
	})
	if err != nil {
		return nil, internalError(err)
	}

	var text string
	if payload.Message.Text != nil {
		text = *payload.Message.Text
	}
	status, summary := classifyReply(text)
	if err := s.contactRepository.UpdateReplyStatus(ctx, contact.ID, status, &summary); err != nil {
		return nil, internalError(err)
	}

	pipelineID, stage, err := s.defaultStage(ctx, domain.StageNew)
	if err != nil {
		return nil, err
	}

	dealID, err := s.dealRepository.UpsertByContactStage(ctx, &domain.NewDeal{
		Title:      fmt.Sprintf(instantlyDealTitleFmt, email),
		ContactID:  &contact.ID,
		PipelineID: pipelineID,
		StageID:    stage.ID,
		Currency:   domain.DefaultDealCurrency,
		Status:     string(domain.DealStatusOpen),
		Source:     domain.DefaultDealSource,
	})
	if err != nil {
		return nil, internalError(err)
	}

	note := instantlySystemNote
	systemActivityID, err := s.activityRepository.Create(ctx, &domain.Activity{
		Type:        domain.ActivityTypeSystemNote,
		RelatedType: domain.RelatedDeal,
		RelatedID:   dealID,
		Content:     &note,
		Meta: map[string]any{
			"source":                  instantlyMetaSource,
			"created_from_contact_id": contact.ID,
			"idempotency_key":         key,
		},
	})
	if err != nil {
		return nil, internalError(err)
	}

	return &InstantlyResult{
		Status:           "ok",
		IdempotencyKey:   key,
		ContactID:        contact.ID,
		ActivityID:       activityID,
		ReplyStatus:      status,
		ReplySummary:     summary,
		DealID:           dealID,
		SystemActivityID: &systemActivityID,
	}, nil
}

// defaultStage resolve o pipeline padrão e o estágio pelo nome; ausência de qualquer um é erro de servidor
func (s *Service) defaultStage(ctx context.Context, name string) (string, *domain.Stage, error) {
	pipelineID, err := s.pipelineRepository.DefaultPipelineID(ctx)
	if err != nil {
		return "", nil, internalError(err)
	}
	if pipelineID == "" {
		return "", nil, domain.NewCRMError(domain.ErrDefaultPipelineMissing, apiErrors.ErrInternalServer, "")
	}

	stage, err := s.pipelineRepository.StageByName(ctx, pipelineID, name)
	if err != nil {
		return "", nil, internalError(err)
	}
	if stage == nil {
		return "", nil, domain.NewCRMError(domain.ErrStageNotFound, apiErrors.ErrInternalServer, name)
	}

	return pipelineID, stage, nil
}

func verify(verifier *signature.Verifier, req Request) error {
	err := verifier.Verify(req.Body, req.Signature)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, signature.ErrSecretMissing):
		return domain.NewCRMError(err, apiErrors.ErrSecretMissing, "")
	case errors.Is(err, signature.ErrSignatureMissing):
		return domain.NewCRMError(err, apiErrors.ErrSignatureMissing, "")
	default:
		return domain.NewCRMError(err, apiErrors.ErrSignatureInvalid, "")
	}
}

// decode lê o corpo na estrutura tipada e também como mapa, que vai para o payload_json do log
func decode(body []byte, target any) (map[string]any, error) {
	raw := map[string]any{}
	if len(bytes.TrimSpace(body)) == 0 {
		return raw, nil
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.NewCRMError(domain.ErrInvalidJSON, apiErrors.ErrInvalidFormat, "")
	}
	if err := json.Unmarshal(body, target); err != nil {
		return nil, domain.NewCRMError(domain.ErrInvalidField, apiErrors.ErrInvalidFormat, err.Error())
	}

	return raw, nil
}

// idempotencyKey prioriza o cabeçalho Idempotency-Key sobre o campo do payload
func idempotencyKey(header, payload string) *string {
	if key := strings.TrimSpace(header); key != "" {
		return &key
	}
	if key := strings.TrimSpace(payload); key != "" {
		return &key
	}
	return nil
}

func internalError(err error) error {
	return domain.NewCRMError(domain.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// firstNonEmpty devolve o primeiro valor preenchido ou o fallback
func firstNonEmpty(fallback string, values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return fallback
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func contactLabel(contact *domain.Contact) string {
	if contact.FullName != nil && *contact.FullName != "" {
		return *contact.FullName
	}
	if contact.Email != nil {
		return *contact.Email
	}
	return ""
}
