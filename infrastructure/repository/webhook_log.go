package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/internal/domain"
)

const webhooksLogTable = "webhooks_log"

type WebhookLogRepository interface {
	Create(ctx context.Context, entry *domain.WebhookLog) (string, error)
	MarkProcessed(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	ListPending(ctx context.Context, eventType string, limit int) ([]*domain.WebhookLog, error)
	RecordAttempt(ctx context.Context, id string, reason string, maxAttempts int) error
}

type webhookLogRepository struct {
	db postgres.Queryer
}

func NewWebhookLogRepository(db postgres.Queryer) WebhookLogRepository {
	return &webhookLogRepository{db: db}
}

// Create devolve ErrDuplicate quando a idempotency_key já foi registrada
func (r *webhookLogRepository) Create(ctx context.Context, entry *domain.WebhookLog) (string, error) {
	payload, err := encodeJSON(entry.Payload)
	if err != nil {
		return "", errors.Wrap(err, "webhooks_log: encode payload")
	}

	sqlStr, args, err := psql.Insert(webhooksLogTable).
		Columns("source", "event_type", "idempotency_key", "payload_json", "status").
		Values(entry.Source, entry.EventType, entry.IdempotencyKey, payload, string(entry.Status)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", err
	}

	var id string
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		return "", translate(err, "webhooks_log: insert")
	}

	return id, nil
}

func (r *webhookLogRepository) MarkProcessed(ctx context.Context, id string) error {
	return r.update(ctx, id, psql.Update(webhooksLogTable).
		Set("status", string(domain.WebhookStatusProcessed)).
		Set("processed_at", squirrel.Expr("now()")), "webhooks_log: mark processed")
}

func (r *webhookLogRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return r.update(ctx, id, psql.Update(webhooksLogTable).
		Set("status", string(domain.WebhookStatusFailed)).
		Set("last_error", reason), "webhooks_log: mark failed")
}

// RecordAttempt registra uma tentativa de envio sem sucesso; ao atingir maxAttempts o evento vira failed
func (r *webhookLogRepository) RecordAttempt(ctx context.Context, id string, reason string, maxAttempts int) error {
	return r.update(ctx, id, psql.Update(webhooksLogTable).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", reason).
		Set("status", squirrel.Expr("CASE WHEN attempts + 1 >= ? THEN 'failed' ELSE status END", maxAttempts)),
		"webhooks_log: record attempt")
}

func (r *webhookLogRepository) update(ctx context.Context, id string, query squirrel.UpdateBuilder, op string) error {
	sqlStr, args, err := query.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return errors.Wrap(err, op)
	}

	return requireAffected(result, op)
}

// ListPending devolve os eventos pendentes mais antigos primeiro
func (r *webhookLogRepository) ListPending(ctx context.Context, eventType string, limit int) ([]*domain.WebhookLog, error) {
	sqlStr, args, err := psql.Select("id", "source", "event_type", "idempotency_key", "payload_json", "status", "attempts", "last_error", "processed_at", "created_at").
		From(webhooksLogTable).
		Where(squirrel.Eq{"status": string(domain.WebhookStatusPending), "event_type": eventType}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, errors.Wrap(err, "webhooks_log: list pending")
	}
	defer rows.Close()

	entries := make([]*domain.WebhookLog, 0)
	for rows.Next() {
		e := &domain.WebhookLog{}
		var payload []byte
		if err := rows.Scan(&e.ID, &e.Source, &e.EventType, &e.IdempotencyKey, &payload, &e.Status, &e.Attempts, &e.LastError, &e.ProcessedAt, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "webhooks_log: scan")
		}
		if e.Payload, err = decodeJSON(payload); err != nil {
			return nil, errors.Wrap(err, "webhooks_log: decode payload")
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
