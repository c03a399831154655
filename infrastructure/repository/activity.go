package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/internal/domain"
)

const activitiesTable = "activities"

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) (string, error)
	ListFor(ctx context.Context, relatedType domain.RelatedType, relatedID string) ([]*domain.Activity, error)
}

type activityRepository struct {
	db postgres.Queryer
}

func NewActivityRepository(db postgres.Queryer) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) (string, error) {
	meta, err := encodeJSON(activity.Meta)
	if err != nil {
		return "", errors.Wrap(err, "activities: encode meta")
	}

	sqlStr, args, err := psql.Insert(activitiesTable).
		Columns("type", "related_type", "related_id", "content", "meta_json", "created_by").
		Values(string(activity.Type), string(activity.RelatedType), activity.RelatedID, activity.Content, meta, activity.CreatedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", err
	}

	var id string
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		return "", translate(err, "activities: insert")
	}

	return id, nil
}

// ListFor devolve a linha do tempo da entidade, mais recentes primeiro
func (r *activityRepository) ListFor(ctx context.Context, relatedType domain.RelatedType, relatedID string) ([]*domain.Activity, error) {
	sqlStr, args, err := psql.Select("id", "type", "related_type", "related_id", "content", "meta_json", "created_by", "created_at").
		From(activitiesTable).
		Where(squirrel.Eq{"related_type": string(relatedType), "related_id": relatedID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, errors.Wrap(err, "activities: list")
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		a := &domain.Activity{}
		var meta []byte
		if err := rows.Scan(&a.ID, &a.Type, &a.RelatedType, &a.RelatedID, &a.Content, &meta, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "activities: scan")
		}
		if a.Meta, err = decodeJSON(meta); err != nil {
			return nil, errors.Wrap(err, "activities: decode meta")
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}
