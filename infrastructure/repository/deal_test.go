package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/internal/domain"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func dealRow(id, stageID string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(dealColumns).AddRow(
		id, "Acme - Meeting", "p1", stageID, "1500.50", "USD", nil,
		"open", "inbound", nil, nil, "c1", now, now,
	)
}

func TestDealRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDealRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM deals WHERE id = $1")).
		WithArgs("d1").
		WillReturnRows(dealRow("d1", "s1"))

	deal, err := repo.GetByID(context.Background(), "d1")
	require.NoError(t, err)
	require.NotNil(t, deal)
	assert.Equal(t, "s1", deal.StageID)
	assert.True(t, deal.Amount.Valid)
	assert.True(t, decimal.RequireFromString("1500.50").Equal(deal.Amount.Decimal))
	assert.Equal(t, "c1", *deal.ContactID)
	assert.Nil(t, deal.CompanyID)
}

func TestDealRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDealRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM deals WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(dealColumns))

	deal, err := repo.GetByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, deal)
}

func TestDealRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDealRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO deals (title,contact_id,company_id,pipeline_id,stage_id,amount,currency,close_date,status,source,notes)")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("d-new"))

	id, err := repo.Create(context.Background(), &domain.NewDeal{
		Title:      "Acme",
		PipelineID: "p1",
		StageID:    "s1",
		Currency:   "USD",
		Status:     "open",
		Source:     "inbound",
	})
	require.NoError(t, err)
	assert.Equal(t, "d-new", id)
}

func TestDealRepository_Create_Duplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDealRepository(db)

	mock.ExpectQuery("INSERT INTO deals").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "deals_contact_id_stage_id_key"})

	_, err := repo.Create(context.Background(), &domain.NewDeal{Title: "x", PipelineID: "p1", StageID: "s1"})
	assert.True(t, IsDuplicate(err))
}

func TestDealRepository_UpsertByContactStage(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDealRepository(db)

	contactID := "c1"
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (contact_id, stage_id) DO UPDATE SET title = EXCLUDED.title")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("d1"))

	id, err := repo.UpsertByContactStage(context.Background(), &domain.NewDeal{
		Title:      "Instantly Reply – lead@acme.com",
		PipelineID: "p1",
		StageID:    "s-new",
		ContactID:  &contactID,
		Status:     "open",
	})
	require.NoError(t, err)
	assert.Equal(t, "d1", id)
}

func TestDealRepository_Update(t *testing.T) {
	tests := []struct {
		name    string
		result  func(sqlmock.Sqlmock)
		wantErr func(error) bool
	}{
		{
			name: "atualiza colunas em ordem alfabética",
			result: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE deals SET notes = $1, title = $2, updated_at = now() WHERE id = $3")).
					WithArgs(nil, "Novo título", "d1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: func(err error) bool { return err == nil },
		},
		{
			name: "nenhuma linha afetada vira ErrNotFound",
			result: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE deals SET").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewDealRepository(db)

			tt.result(mock)

			err := repo.Update(context.Background(), "d1", map[string]any{"title": "Novo título", "notes": nil})
			assert.True(t, tt.wantErr(err), "erro inesperado: %v", err)
		})
	}
}

func TestDealRepository_UpdateStage(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDealRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE deals SET stage_id = $1, updated_at = now() WHERE id = $2")).
		WithArgs("s2", "d1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateStage(context.Background(), "d1", "s2"))
}

func TestDealRepository_ListByPipeline(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDealRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(dealColumns).
		AddRow("d1", "A", "p1", "s1", nil, "USD", nil, "open", "inbound", nil, nil, nil, now, now).
		AddRow("d2", "B", "p1", "s2", "10", "EUR", now, "won", "inbound", "n", "co1", "c1", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM deals WHERE pipeline_id = $1 ORDER BY created_at DESC")).
		WithArgs("p1").
		WillReturnRows(rows)

	deals, err := repo.ListByPipeline(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, deals, 2)
	assert.False(t, deals[0].Amount.Valid)
	assert.Equal(t, "co1", *deals[1].CompanyID)
}

func TestDealRepository_CountOpen(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDealRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM deals WHERE status = $1 AND pipeline_id = $2")).
		WithArgs("open", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountOpen(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
