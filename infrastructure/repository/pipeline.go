package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/internal/domain"
)

const (
	pipelinesTable = "pipelines"
	stagesTable    = "pipeline_stages"
)

var stageColumns = []string{"id", "pipeline_id", "name", "order_index", "probability"}

type PipelineRepository interface {
	DefaultPipelineID(ctx context.Context) (string, error)
	PipelineIDByName(ctx context.Context, name string) (string, error)
	ListStages(ctx context.Context, pipelineID string) ([]domain.Stage, error)
	StageByName(ctx context.Context, pipelineID, name string) (*domain.Stage, error)
	GetStage(ctx context.Context, id string) (*domain.Stage, error)
	CreatePipeline(ctx context.Context, name string, isDefault bool) (string, error)
	CreateStage(ctx context.Context, stage domain.Stage) (string, error)
}

type pipelineRepository struct {
	db postgres.Queryer
}

func NewPipelineRepository(db postgres.Queryer) PipelineRepository {
	return &pipelineRepository{db: db}
}

// DefaultPipelineID devolve o pipeline padrão mais antigo, ou "" quando não existe
func (r *pipelineRepository) DefaultPipelineID(ctx context.Context) (string, error) {
	return r.pipelineID(ctx, squirrel.Eq{"is_default": true})
}

func (r *pipelineRepository) PipelineIDByName(ctx context.Context, name string) (string, error) {
	return r.pipelineID(ctx, squirrel.Eq{"name": name})
}

func (r *pipelineRepository) pipelineID(ctx context.Context, where squirrel.Eq) (string, error) {
	sqlStr, args, err := psql.Select("id").
		From(pipelinesTable).
		Where(where).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", err
	}

	var id string
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", errors.Wrap(err, "pipelines: select")
	}

	return id, nil
}

func (r *pipelineRepository) ListStages(ctx context.Context, pipelineID string) ([]domain.Stage, error) {
	sqlStr, args, err := psql.Select(stageColumns...).
		From(stagesTable).
		Where(squirrel.Eq{"pipeline_id": pipelineID}).
		OrderBy("order_index ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline_stages: list")
	}
	defer rows.Close()

	stages := make([]domain.Stage, 0)
	for rows.Next() {
		stage, err := scanStage(rows)
		if err != nil {
			return nil, errors.Wrap(err, "pipeline_stages: scan")
		}
		stages = append(stages, *stage)
	}

	return stages, rows.Err()
}

func (r *pipelineRepository) StageByName(ctx context.Context, pipelineID, name string) (*domain.Stage, error) {
	return r.getStage(ctx, squirrel.Eq{"pipeline_id": pipelineID, "name": name})
}

func (r *pipelineRepository) GetStage(ctx context.Context, id string) (*domain.Stage, error) {
	return r.getStage(ctx, squirrel.Eq{"id": id})
}

func (r *pipelineRepository) getStage(ctx context.Context, where squirrel.Eq) (*domain.Stage, error) {
	sqlStr, args, err := psql.Select(stageColumns...).
		From(stagesTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	stage, err := scanStage(r.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "pipeline_stages: select")
	}

	return stage, nil
}

func scanStage(row rowScanner) (*domain.Stage, error) {
	stage := &domain.Stage{}
	if err := row.Scan(&stage.ID, &stage.PipelineID, &stage.Name, &stage.OrderIndex, &stage.Probability); err != nil {
		return nil, err
	}
	return stage, nil
}

func (r *pipelineRepository) CreatePipeline(ctx context.Context, name string, isDefault bool) (string, error) {
	sqlStr, args, err := psql.Insert(pipelinesTable).
		Columns("name", "is_default").
		Values(name, isDefault).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", err
	}

	var id string
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		return "", translate(err, "pipelines: insert")
	}

	return id, nil
}

// CreateStage insere o estágio; se já existir um com o mesmo nome no pipeline, devolve o id existente
func (r *pipelineRepository) CreateStage(ctx context.Context, stage domain.Stage) (string, error) {
	sqlStr, args, err := psql.Insert(stagesTable).
		Columns("pipeline_id", "name", "order_index", "probability").
		Values(stage.PipelineID, stage.Name, stage.OrderIndex, stage.Probability).
		Suffix("ON CONFLICT (pipeline_id, name) DO UPDATE SET order_index = EXCLUDED.order_index RETURNING id").
		ToSql()
	if err != nil {
		return "", err
	}

	var id string
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		return "", translate(err, "pipeline_stages: insert")
	}

	return id, nil
}
