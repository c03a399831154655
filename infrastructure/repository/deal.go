package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/internal/domain"
)

const dealsTable = "deals"

var dealColumns = []string{
	"id", "title", "pipeline_id", "stage_id", "amount", "currency", "close_date",
	"status", "source", "notes", "company_id", "contact_id", "created_at", "updated_at",
}

type DealRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Deal, error)
	Create(ctx context.Context, deal *domain.NewDeal) (string, error)
	Update(ctx context.Context, id string, changes map[string]any) error
	UpdateStage(ctx context.Context, id, stageID string) error
	FindOpenByContact(ctx context.Context, contactID string) (*domain.Deal, error)
	UpsertByContactStage(ctx context.Context, deal *domain.NewDeal) (string, error)
	ListByPipeline(ctx context.Context, pipelineID string) ([]*domain.Deal, error)
	CountOpen(ctx context.Context, pipelineID string) (int, error)
}

type dealRepository struct {
	db postgres.Queryer
}

func NewDealRepository(db postgres.Queryer) DealRepository {
	return &dealRepository{db: db}
}

func (r *dealRepository) GetByID(ctx context.Context, id string) (*domain.Deal, error) {
	return r.getOne(ctx, psql.Select(dealColumns...).From(dealsTable).Where(squirrel.Eq{"id": id}))
}

func (r *dealRepository) FindOpenByContact(ctx context.Context, contactID string) (*domain.Deal, error) {
	return r.getOne(ctx, psql.Select(dealColumns...).
		From(dealsTable).
		Where(squirrel.Eq{"contact_id": contactID, "status": string(domain.DealStatusOpen)}).
		OrderBy("created_at ASC").
		Limit(1))
}

func (r *dealRepository) getOne(ctx context.Context, query squirrel.SelectBuilder) (*domain.Deal, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	deal, err := scanDeal(r.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "deals: select")
	}

	return deal, nil
}

func scanDeal(row rowScanner) (*domain.Deal, error) {
	deal := &domain.Deal{}
	if err := row.Scan(
		&deal.ID,
		&deal.Title,
		&deal.PipelineID,
		&deal.StageID,
		&deal.Amount,
		&deal.Currency,
		&deal.CloseDate,
		&deal.Status,
		&deal.Source,
		&deal.Notes,
		&deal.CompanyID,
		&deal.ContactID,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return deal, nil
}

func (r *dealRepository) insertBuilder(deal *domain.NewDeal) squirrel.InsertBuilder {
	var amount any
	if deal.Amount.Valid {
		amount = deal.Amount.Decimal
	}

	return psql.Insert(dealsTable).
		Columns("title", "contact_id", "company_id", "pipeline_id", "stage_id", "amount",
			"currency", "close_date", "status", "source", "notes").
		Values(deal.Title, deal.ContactID, deal.CompanyID, deal.PipelineID, deal.StageID, amount,
			deal.Currency, deal.CloseDate, deal.Status, deal.Source, deal.Notes)
}

func (r *dealRepository) Create(ctx context.Context, deal *domain.NewDeal) (string, error) {
	sqlStr, args, err := r.insertBuilder(deal).Suffix("RETURNING id").ToSql()
	if err != nil {
		return "", err
	}

	var id string
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		return "", translate(err, "deals: insert")
	}

	return id, nil
}

// UpsertByContactStage mantém um único negócio por contato e estágio; em conflito só o título é atualizado
func (r *dealRepository) UpsertByContactStage(ctx context.Context, deal *domain.NewDeal) (string, error) {
	sqlStr, args, err := r.insertBuilder(deal).
		Suffix("ON CONFLICT (contact_id, stage_id) DO UPDATE SET title = EXCLUDED.title, updated_at = now() RETURNING id").
		ToSql()
	if err != nil {
		return "", err
	}

	var id string
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		return "", translate(err, "deals: upsert")
	}

	return id, nil
}

func (r *dealRepository) Update(ctx context.Context, id string, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}

	sqlStr, args, err := psql.Update(dealsTable).
		SetMap(changes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return translate(err, "deals: update")
	}

	return requireAffected(result, "deals: update")
}

func (r *dealRepository) UpdateStage(ctx context.Context, id, stageID string) error {
	sqlStr, args, err := psql.Update(dealsTable).
		Set("stage_id", stageID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return translate(err, "deals: update stage")
	}

	return requireAffected(result, "deals: update stage")
}

func (r *dealRepository) ListByPipeline(ctx context.Context, pipelineID string) ([]*domain.Deal, error) {
	sqlStr, args, err := psql.Select(dealColumns...).
		From(dealsTable).
		Where(squirrel.Eq{"pipeline_id": pipelineID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, errors.Wrap(err, "deals: list")
	}
	defer rows.Close()

	deals := make([]*domain.Deal, 0)
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, errors.Wrap(err, "deals: scan")
		}
		deals = append(deals, deal)
	}

	return deals, rows.Err()
}

func (r *dealRepository) CountOpen(ctx context.Context, pipelineID string) (int, error) {
	query := psql.Select("COUNT(*)").
		From(dealsTable).
		Where(squirrel.Eq{"status": string(domain.DealStatusOpen)})

	if pipelineID != "" {
		query = query.Where(squirrel.Eq{"pipeline_id": pipelineID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "deals: count open")
	}

	return count, nil
}
