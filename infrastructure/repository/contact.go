package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/internal/domain"
)

const contactsTable = "contacts"

var contactColumns = []string{
	"id", "email", "full_name", "title", "company_id", "owner_id", "lifecycle_stage",
	"reply_status", "reply_summary", "website", "linkedin_url", "phone",
	"latest_email_sent_at", "created_at", "updated_at",
}

type ContactRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	Create(ctx context.Context, contact *domain.NewContact) (string, error)
	Update(ctx context.Context, id string, changes map[string]any) error
	UpsertByEmail(ctx context.Context, contact domain.ContactUpsert) (*domain.Contact, error)
	UpdateReplyStatus(ctx context.Context, id string, status domain.ReplyStatus, summary *string) error
	CountRepliesSince(ctx context.Context, since time.Time) (int, error)
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type contactRepository struct {
	db postgres.Queryer
}

func NewContactRepository(db postgres.Queryer) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	sqlStr, args, err := psql.Select(contactColumns...).
		From(contactsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	c := &domain.Contact{}
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(
		&c.ID,
		&c.Email,
		&c.FullName,
		&c.Title,
		&c.CompanyID,
		&c.OwnerID,
		&c.LifecycleStage,
		&c.ReplyStatus,
		&c.ReplySummary,
		&c.Website,
		&c.LinkedinURL,
		&c.Phone,
		&c.LatestEmailAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "contacts: select")
	}

	return c, nil
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.NewContact) (string, error) {
	sqlStr, args, err := psql.Insert(contactsTable).
		Columns("email", "full_name", "title", "company_id", "owner_id", "lifecycle_stage",
			"website", "linkedin_url", "phone").
		Values(contact.Email, contact.FullName, contact.Title, contact.CompanyID, contact.OwnerID,
			contact.LifecycleStage, contact.Website, contact.LinkedinURL, contact.Phone).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", err
	}

	var id string
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		return "", translate(err, "contacts: insert")
	}

	return id, nil
}

func (r *contactRepository) Update(ctx context.Context, id string, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}

	sqlStr, args, err := psql.Update(contactsTable).
		SetMap(changes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return translate(err, "contacts: update")
	}

	return requireAffected(result, "contacts: update")
}

// UpsertByEmail nunca sobrescreve um valor existente com NULL
func (r *contactRepository) UpsertByEmail(ctx context.Context, contact domain.ContactUpsert) (*domain.Contact, error) {
	sqlStr, args, err := psql.Insert(contactsTable).
		Columns("email", "full_name", "website", "linkedin_url", "updated_at").
		Values(contact.Email, contact.FullName, contact.Website, contact.LinkedinURL, squirrel.Expr("now()")).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			full_name = COALESCE(EXCLUDED.full_name, contacts.full_name),
			website = COALESCE(EXCLUDED.website, contacts.website),
			linkedin_url = COALESCE(EXCLUDED.linkedin_url, contacts.linkedin_url),
			updated_at = now()
			RETURNING id, email, full_name, company_id`).
		ToSql()
	if err != nil {
		return nil, err
	}

	c := &domain.Contact{}
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&c.ID, &c.Email, &c.FullName, &c.CompanyID); err != nil {
		return nil, translate(err, "contacts: upsert")
	}

	return c, nil
}

func (r *contactRepository) UpdateReplyStatus(ctx context.Context, id string, status domain.ReplyStatus, summary *string) error {
	query := psql.Update(contactsTable).
		Set("reply_status", string(status)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	if summary != nil {
		query = query.Set("reply_summary", *summary)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return translate(err, "contacts: update reply status")
	}

	return requireAffected(result, "contacts: update reply status")
}

// CountRepliesSince conta contatos com reply_status preenchido e atualizados a partir de since
func (r *contactRepository) CountRepliesSince(ctx context.Context, since time.Time) (int, error) {
	sqlStr, args, err := psql.Select("COUNT(*)").
		From(contactsTable).
		Where(squirrel.NotEq{"reply_status": nil}).
		Where(squirrel.GtOrEq{"updated_at": since}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "contacts: count replies")
	}

	return count, nil
}

// NamesByIDs devolve full_name (ou email, quando sem nome) por id
func (r *contactRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	return namesByIDs(ctx, r.db, contactsTable, "COALESCE(full_name, email, '')", ids)
}

func namesByIDs(ctx context.Context, db postgres.Queryer, table, nameExpr string, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	sqlStr, args, err := psql.Select("id", nameExpr).
		From(table).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: names", table)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, errors.Wrapf(err, "%s: scan names", table)
		}
		names[id] = name
	}

	return names, rows.Err()
}
