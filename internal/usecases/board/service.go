package board

import (
	"context"
	"strings"
	"time"

	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/log"
	"github.com/vfg2006/crm-api/pkg/utils"
)

const replyWindow = 7 * 24 * time.Hour

// Reader expõe o modelo de leitura consumido pelo quadro Kanban
type Reader interface {
	Stages(ctx context.Context, pipelineID string) ([]domain.Stage, error)
	Board(ctx context.Context, pipelineID string) (*domain.Board, error)
	Deal(ctx context.Context, id string) (*domain.Deal, error)
	Contact(ctx context.Context, id string) (*domain.Contact, error)
	StageName(ctx context.Context, id string) (string, error)
	Activities(ctx context.Context, relatedType domain.RelatedType, relatedID string) ([]*domain.Activity, error)
	CalendarLink(ctx context.Context, contactID string) (string, error)
	Metrics(ctx context.Context, pipelineID string) (*domain.PipelineMetrics, error)
}

type Service struct {
	pipelineRepository repository.PipelineRepository
	dealRepository     repository.DealRepository
	contactRepository  repository.ContactRepository
	companyRepository  repository.CompanyRepository
	activityRepository repository.ActivityRepository
	calendarBaseURL    string
	now                func() time.Time
}

func NewService(
	pipelineRepository repository.PipelineRepository,
	dealRepository repository.DealRepository,
	contactRepository repository.ContactRepository,
	companyRepository repository.CompanyRepository,
	activityRepository repository.ActivityRepository,
	cfg *config.Config,
) *Service {
	return &Service{
		pipelineRepository: pipelineRepository,
		dealRepository:     dealRepository,
		contactRepository:  contactRepository,
		companyRepository:  companyRepository,
		activityRepository: activityRepository,
		calendarBaseURL:    strings.TrimRight(cfg.Calendar.BaseURL, "/"),
		now:                time.Now,
	}
}

// resolvePipeline troca os aliases pelo id do pipeline padrão; "" significa que não há padrão
func (s *Service) resolvePipeline(ctx context.Context, pipelineID string) (string, error) {
	if !domain.IsDefaultPipelineAlias(pipelineID) {
		return pipelineID, nil
	}

	id, err := s.pipelineRepository.DefaultPipelineID(ctx)
	if err != nil {
		return "", dbError(ctx, err, "Erro ao buscar pipeline padrão")
	}
	if id == "" {
		log.ForContext(ctx).Warn("Nenhum pipeline padrão cadastrado")
	}
	return id, nil
}

func (s *Service) Stages(ctx context.Context, pipelineID string) ([]domain.Stage, error) {
	id, err := s.resolvePipeline(ctx, pipelineID)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return []domain.Stage{}, nil
	}

	stages, err := s.pipelineRepository.ListStages(ctx, id)
	if err != nil {
		return nil, dbError(ctx, err, "Erro ao listar estágios")
	}
	if stages == nil {
		stages = []domain.Stage{}
	}
	return stages, nil
}

// Board monta o quadro do pipeline: estágios ordenados e cartões agrupados por estágio
func (s *Service) Board(ctx context.Context, pipelineID string) (*domain.Board, error) {
	id, err := s.resolvePipeline(ctx, pipelineID)
	if err != nil {
		return nil, err
	}

	board := &domain.Board{
		PipelineID: id,
		Stages:     []domain.Stage{},
		Deals:      map[string][]domain.DealCard{},
	}
	if id == "" {
		return board, nil
	}

	if board.Stages, err = s.Stages(ctx, id); err != nil {
		return nil, err
	}

	deals, err := s.dealRepository.ListByPipeline(ctx, id)
	if err != nil {
		return nil, dbError(ctx, err, "Erro ao listar negócios do pipeline")
	}

	companyNames, contactNames, err := s.relatedNames(ctx, deals)
	if err != nil {
		return nil, err
	}

	for _, deal := range deals {
		card := domain.DealCard{
			ID:        deal.ID,
			Title:     deal.Title,
			Amount:    deal.Amount,
			Currency:  deal.Currency,
			StageID:   deal.StageID,
			CompanyID: deal.CompanyID,
			ContactID: deal.ContactID,
		}
		if deal.CompanyID != nil {
			card.CompanyName = lookup(companyNames, *deal.CompanyID)
		}
		if deal.ContactID != nil {
			card.ContactName = lookup(contactNames, *deal.ContactID)
		}
		board.Deals[deal.StageID] = append(board.Deals[deal.StageID], card)
	}

	return board, nil
}

// relatedNames busca os nomes de empresas e contatos com uma consulta por relação
func (s *Service) relatedNames(ctx context.Context, deals []*domain.Deal) (map[string]string, map[string]string, error) {
	var companyIDs, contactIDs []string
	seen := map[string]struct{}{}

	for _, deal := range deals {
		if deal.CompanyID != nil {
			if _, ok := seen["co:"+*deal.CompanyID]; !ok {
				seen["co:"+*deal.CompanyID] = struct{}{}
				companyIDs = append(companyIDs, *deal.CompanyID)
			}
		}
		if deal.ContactID != nil {
			if _, ok := seen["ct:"+*deal.ContactID]; !ok {
				seen["ct:"+*deal.ContactID] = struct{}{}
				contactIDs = append(contactIDs, *deal.ContactID)
			}
		}
	}

	companyNames := map[string]string{}
	if len(companyIDs) > 0 {
		names, err := s.companyRepository.NamesByIDs(ctx, companyIDs)
		if err != nil {
			return nil, nil, dbError(ctx, err, "Erro ao buscar nomes das empresas")
		}
		companyNames = names
	}

	contactNames := map[string]string{}
	if len(contactIDs) > 0 {
		names, err := s.contactRepository.NamesByIDs(ctx, contactIDs)
		if err != nil {
			return nil, nil, dbError(ctx, err, "Erro ao buscar nomes dos contatos")
		}
		contactNames = names
	}

	return companyNames, contactNames, nil
}

func lookup(names map[string]string, id string) *string {
	name, ok := names[id]
	if !ok {
		return nil
	}
	return &name
}

func (s *Service) Deal(ctx context.Context, id string) (*domain.Deal, error) {
	deal, err := s.dealRepository.GetByID(ctx, id)
	if err != nil {
		return nil, dbError(ctx, err, "Erro ao buscar negócio")
	}
	if deal == nil {
		return nil, domain.NewCRMError(domain.ErrDealNotFound, apiErrors.ErrNotFound, id)
	}
	return deal, nil
}

func (s *Service) Contact(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := s.contactRepository.GetByID(ctx, id)
	if err != nil {
		return nil, dbError(ctx, err, "Erro ao buscar contato")
	}
	if contact == nil {
		return nil, domain.NewCRMError(domain.ErrContactNotFound, apiErrors.ErrNotFound, id)
	}
	return contact, nil
}

func (s *Service) StageName(ctx context.Context, id string) (string, error) {
	stage, err := s.pipelineRepository.GetStage(ctx, id)
	if err != nil {
		return "", dbError(ctx, err, "Erro ao buscar estágio")
	}
	if stage == nil {
		return "", domain.NewCRMError(domain.ErrStageNotFound, apiErrors.ErrNotFound, id)
	}
	return stage.Name, nil
}

// Activities lista as atividades do registro, mais recentes primeiro
func (s *Service) Activities(ctx context.Context, relatedType domain.RelatedType, relatedID string) ([]*domain.Activity, error) {
	if !relatedType.Valid() {
		return nil, domain.NewCRMError(domain.ErrInvalidRelatedType, apiErrors.ErrInvalidFormat, string(relatedType))
	}
	if relatedID == "" {
		return nil, domain.NewCRMError(domain.ErrMissingField, apiErrors.ErrMissingRequiredData, "Missing field: related_id")
	}

	activities, err := s.activityRepository.ListFor(ctx, relatedType, relatedID)
	if err != nil {
		return nil, dbError(ctx, err, "Erro ao listar atividades")
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}
	return activities, nil
}

func (s *Service) CalendarLink(_ context.Context, contactID string) (string, error) {
	if contactID == "" {
		return "", domain.NewCRMError(domain.ErrMissingField, apiErrors.ErrMissingRequiredData, "Missing field: contact_id")
	}
	return s.calendarBaseURL + "/" + contactID, nil
}

// Metrics calcula os indicadores do topo do quadro
func (s *Service) Metrics(ctx context.Context, pipelineID string) (*domain.PipelineMetrics, error) {
	id, err := s.resolvePipeline(ctx, pipelineID)
	if err != nil {
		return nil, err
	}

	replies, err := s.contactRepository.CountRepliesSince(ctx, s.now().Add(-replyWindow))
	if err != nil {
		return nil, dbError(ctx, err, "Erro ao contar respostas")
	}

	metrics := &domain.PipelineMetrics{
		PipelineID:       id,
		RepliesLast7Days: replies,
		Conversion:       []domain.StageConversion{},
	}
	if id == "" {
		return metrics, nil
	}

	if metrics.OpenDeals, err = s.dealRepository.CountOpen(ctx, id); err != nil {
		return nil, dbError(ctx, err, "Erro ao contar negócios abertos")
	}

	board, err := s.Board(ctx, id)
	if err != nil {
		return nil, err
	}
	metrics.Conversion = conversion(board)

	return metrics, nil
}

// conversion calcula, para cada estágio, a razão entre o próximo estágio e ele
func conversion(board *domain.Board) []domain.StageConversion {
	out := make([]domain.StageConversion, 0, len(board.Stages))

	for i, stage := range board.Stages {
		current := len(board.Deals[stage.ID])
		item := domain.StageConversion{
			StageID:   stage.ID,
			StageName: stage.Name,
			Count:     current,
		}

		if i < len(board.Stages)-1 && current > 0 {
			next := len(board.Deals[board.Stages[i+1].ID])
			pct := utils.RoundedPercent(next, current)
			item.ConversionToNext = &pct
		}

		out = append(out, item)
	}

	return out
}

func dbError(ctx context.Context, err error, message string) error {
	log.ForContext(ctx).WithError(err).Error(message)
	return domain.NewCRMError(domain.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
}
