package dealing

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/log"
)

// Dealer concentra as ações de escrita do CRM disparadas pela interface
type Dealer interface {
	SaveDeal(ctx context.Context, patch domain.Patch) (string, error)
	UpdateDealStage(ctx context.Context, dealID string, patch domain.Patch) (*domain.StageChange, error)
	SaveContact(ctx context.Context, patch domain.Patch) (string, error)
	UpdateReplyStatus(ctx context.Context, contactID string, status domain.ReplyStatus) error
}

type Service struct {
	dealRepository       repository.DealRepository
	contactRepository    repository.ContactRepository
	activityRepository   repository.ActivityRepository
	webhookLogRepository repository.WebhookLogRepository
	outboundEnabled      bool
	now                  func() time.Time
}

func NewService(
	dealRepository repository.DealRepository,
	contactRepository repository.ContactRepository,
	activityRepository repository.ActivityRepository,
	webhookLogRepository repository.WebhookLogRepository,
	cfg *config.Config,
) *Service {
	return &Service{
		dealRepository:       dealRepository,
		contactRepository:    contactRepository,
		activityRepository:   activityRepository,
		webhookLogRepository: webhookLogRepository,
		outboundEnabled:      cfg.Outbound.Enabled,
		now:                  time.Now,
	}
}

// SaveDeal cria o negócio quando não há "id" no corpo; caso contrário aplica uma atualização parcial
func (s *Service) SaveDeal(ctx context.Context, patch domain.Patch) (string, error) {
	id, err := patch.String("id")
	if err != nil {
		return "", patchError(err)
	}

	if id != "" {
		changes, err := dealChanges(patch)
		if err != nil {
			return "", err
		}
		if err := s.dealRepository.Update(ctx, id, changes); err != nil {
			return "", writeError(err, domain.ErrDealNotFound)
		}
		return id, nil
	}

	deal, err := newDealFromPatch(patch)
	if err != nil {
		return "", err
	}

	newID, err := s.dealRepository.Create(ctx, deal)
	if err != nil {
		return "", writeError(err, domain.ErrDealNotFound)
	}

	log.ForContext(ctx).WithField("deal_id", newID).Info("Negócio criado")
	return newID, nil
}

func dealChanges(patch domain.Patch) (map[string]any, error) {
	changes := make(map[string]any)

	for _, key := range domain.DealUpdatableFields {
		if !patch.Has(key) {
			continue
		}
		if patch.IsNull(key) {
			changes[key] = nil
			continue
		}

		if key == "amount" {
			amount, err := patch.Decimal(key)
			if err != nil {
				return nil, patchError(err)
			}
			changes[key] = amount.Decimal
			continue
		}

		value, err := patch.String(key)
		if err != nil {
			return nil, patchError(err)
		}
		changes[key] = value
	}

	if len(changes) == 0 {
		return nil, domain.NewCRMError(domain.ErrNoUpdatableFields, apiErrors.ErrInvalidRequest, "No updatable fields")
	}

	return changes, nil
}

func newDealFromPatch(patch domain.Patch) (*domain.NewDeal, error) {
	deal := &domain.NewDeal{
		Currency: domain.DefaultDealCurrency,
		Status:   string(domain.DealStatusOpen),
		Source:   domain.DefaultDealSource,
	}

	var err error
	for _, field := range []struct {
		key    string
		target *string
	}{
		{"title", &deal.Title},
		{"pipeline_id", &deal.PipelineID},
		{"stage_id", &deal.StageID},
	} {
		if *field.target, err = patch.String(field.key); err != nil {
			return nil, patchError(err)
		}
	}

	for _, field := range []struct {
		key    string
		target *string
	}{
		{"currency", &deal.Currency},
		{"status", &deal.Status},
		{"source", &deal.Source},
	} {
		value, err := patch.OptionalString(field.key)
		if err != nil {
			return nil, patchError(err)
		}
		if value != nil {
			*field.target = *value
		}
	}

	for _, field := range []struct {
		key    string
		target **string
	}{
		{"close_date", &deal.CloseDate},
		{"notes", &deal.Notes},
		{"company_id", &deal.CompanyID},
		{"contact_id", &deal.ContactID},
	} {
		if *field.target, err = patch.OptionalString(field.key); err != nil {
			return nil, patchError(err)
		}
	}

	if deal.Amount, err = patch.Decimal("amount"); err != nil {
		return nil, patchError(err)
	}

	if err := validateStruct(deal); err != nil {
		return nil, err
	}

	return deal, nil
}

// UpdateDealStage move o negócio de estágio, registra a atividade de sistema e o evento de saída
func (s *Service) UpdateDealStage(ctx context.Context, dealID string, patch domain.Patch) (*domain.StageChange, error) {
	stageID, err := patch.String("stage_id")
	if err != nil {
		return nil, patchError(err)
	}
	if stageID == "" {
		return nil, domain.NewCRMError(domain.ErrMissingField, apiErrors.ErrMissingRequiredData, "stage_id is required")
	}

	logger := log.ForContext(ctx).WithField("deal_id", dealID)

	deal, err := s.dealRepository.GetByID(ctx, dealID)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar negócio")
		return nil, domain.NewCRMError(domain.ErrDealNotFound, apiErrors.ErrNotFound, err.Error())
	}
	if deal == nil {
		return nil, domain.NewCRMError(domain.ErrDealNotFound, apiErrors.ErrNotFound, dealID)
	}

	change := &domain.StageChange{DealID: dealID, OldStageID: deal.StageID, StageID: stageID}
	if deal.StageID == stageID {
		return change, nil
	}

	if err := s.dealRepository.UpdateStage(ctx, dealID, stageID); err != nil {
		return nil, writeError(err, domain.ErrDealNotFound)
	}
	change.Changed = true

	content := fmt.Sprintf("Stage changed %s -> %s", deal.StageID, stageID)
	if _, err := s.activityRepository.Create(ctx, &domain.Activity{
		Type:        domain.ActivityTypeSystem,
		RelatedType: domain.RelatedDeal,
		RelatedID:   dealID,
		Content:     &content,
		Meta:        map[string]any{"source": domain.SourceCRMUI},
	}); err != nil {
		logger.WithError(err).Warn("Falha ao registrar atividade de mudança de estágio")
	}

	status := domain.WebhookStatusProcessed
	if s.outboundEnabled {
		status = domain.WebhookStatusPending
	}

	if _, err := s.webhookLogRepository.Create(ctx, &domain.WebhookLog{
		Source:    domain.SourceCRMUI,
		EventType: domain.EventDealStageChanged,
		Payload: map[string]any{
			"deal_id":      dealID,
			"old_stage_id": deal.StageID,
			"new_stage_id": stageID,
			"occurred_at":  s.now().UTC().Format(time.RFC3339),
			"source":       domain.SourceCRMUI,
		},
		Status: status,
	}); err != nil {
		logger.WithError(err).Warn("Falha ao registrar evento deal_stage_changed")
	}

	logger.Infof("Estágio alterado %s -> %s", deal.StageID, stageID)
	return change, nil
}

// SaveContact cria o contato quando não há "id"; caso contrário aplica uma atualização parcial
func (s *Service) SaveContact(ctx context.Context, patch domain.Patch) (string, error) {
	id, err := patch.String("id")
	if err != nil {
		return "", patchError(err)
	}

	if id != "" {
		changes, err := contactChanges(patch)
		if err != nil {
			return "", err
		}
		if err := s.contactRepository.Update(ctx, id, changes); err != nil {
			return "", writeError(err, domain.ErrContactNotFound)
		}
		return id, nil
	}

	contact, err := newContactFromPatch(patch)
	if err != nil {
		return "", err
	}

	newID, err := s.contactRepository.Create(ctx, contact)
	if err != nil {
		return "", writeError(err, domain.ErrContactNotFound)
	}

	log.ForContext(ctx).WithField("contact_id", newID).Info("Contato criado")
	return newID, nil
}

func contactChanges(patch domain.Patch) (map[string]any, error) {
	changes := make(map[string]any)

	for _, key := range domain.ContactUpdatableFields {
		if !patch.Has(key) {
			continue
		}
		if patch.IsNull(key) {
			changes[key] = nil
			continue
		}

		value, err := patch.String(key)
		if err != nil {
			return nil, patchError(err)
		}
		if key == "reply_status" && !domain.ReplyStatus(value).Valid() {
			return nil, domain.NewCRMError(domain.ErrInvalidReplyStatus, apiErrors.ErrInvalidFormat, value)
		}
		changes[key] = value
	}

	if len(changes) == 0 {
		return nil, domain.NewCRMError(domain.ErrNoUpdatableFields, apiErrors.ErrInvalidRequest, "No updatable fields")
	}

	return changes, nil
}

func newContactFromPatch(patch domain.Patch) (*domain.NewContact, error) {
	contact := &domain.NewContact{LifecycleStage: domain.DefaultLifecycleStage}

	email, err := patch.String("email")
	if err != nil {
		return nil, patchError(err)
	}
	contact.Email = normalizeEmail(email)

	for _, field := range []struct {
		key    string
		target **string
	}{
		{"full_name", &contact.FullName},
		{"title", &contact.Title},
		{"company_id", &contact.CompanyID},
		{"owner_id", &contact.OwnerID},
		{"website", &contact.Website},
		{"linkedin_url", &contact.LinkedinURL},
		{"phone", &contact.Phone},
	} {
		if *field.target, err = patch.OptionalString(field.key); err != nil {
			return nil, patchError(err)
		}
	}

	stage, err := patch.OptionalString("lifecycle_stage")
	if err != nil {
		return nil, patchError(err)
	}
	if stage != nil {
		contact.LifecycleStage = *stage
	}

	if err := validateStruct(contact); err != nil {
		return nil, err
	}

	return contact, nil
}

func (s *Service) UpdateReplyStatus(ctx context.Context, contactID string, status domain.ReplyStatus) error {
	if !status.Valid() {
		return domain.NewCRMError(domain.ErrInvalidReplyStatus, apiErrors.ErrInvalidFormat, string(status))
	}

	if err := s.contactRepository.UpdateReplyStatus(ctx, contactID, status, nil); err != nil {
		return writeError(err, domain.ErrContactNotFound)
	}

	log.ForContext(ctx).WithField("contact_id", contactID).Infof("reply_status atualizado para %s", status)
	return nil
}

// writeError mapeia falhas de escrita: linha inexistente vira 404, o resto vira 403
func writeError(err error, notFound error) error {
	if repository.IsNotFound(err) {
		return domain.NewCRMError(notFound, apiErrors.ErrNotFound, err.Error())
	}
	return domain.NewCRMError(domain.ErrWriteFailed, apiErrors.ErrWriteFailed, err.Error())
}
