package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/infrastructure/repository/mocks"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	pipelines  *mocks.MockPipelineRepository
	deals      *mocks.MockDealRepository
	contacts   *mocks.MockContactRepository
	companies  *mocks.MockCompanyRepository
	activities *mocks.MockActivityRepository
	service    *Service
}

var fixedNow = time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		pipelines:  mocks.NewMockPipelineRepository(ctrl),
		deals:      mocks.NewMockDealRepository(ctrl),
		contacts:   mocks.NewMockContactRepository(ctrl),
		companies:  mocks.NewMockCompanyRepository(ctrl),
		activities: mocks.NewMockActivityRepository(ctrl),
	}

	cfg := &config.Config{Calendar: config.Calendar{BaseURL: "https://cal.com/vendas/"}}
	f.service = NewService(f.pipelines, f.deals, f.contacts, f.companies, f.activities, cfg)
	f.service.now = func() time.Time { return fixedNow }

	return f
}

func strPtr(s string) *string { return &s }

func stages() []domain.Stage {
	return []domain.Stage{
		{ID: "s1", PipelineID: "p1", Name: "New", OrderIndex: 10},
		{ID: "s2", PipelineID: "p1", Name: "Contacted", OrderIndex: 20},
		{ID: "s3", PipelineID: "p1", Name: "Qualified", OrderIndex: 30},
	}
}

func TestService_Stages(t *testing.T) {
	for _, alias := range []string{"", "default", "p_default"} {
		t.Run("alias "+alias, func(t *testing.T) {
			f := newFixture(t)
			f.pipelines.EXPECT().DefaultPipelineID(gomock.Any()).Return("p1", nil)
			f.pipelines.EXPECT().ListStages(gomock.Any(), "p1").Return(stages(), nil)

			got, err := f.service.Stages(context.Background(), alias)
			require.NoError(t, err)
			assert.Len(t, got, 3)
		})
	}

	t.Run("sem pipeline padrão devolve lista vazia", func(t *testing.T) {
		f := newFixture(t)
		f.pipelines.EXPECT().DefaultPipelineID(gomock.Any()).Return("", nil)

		got, err := f.service.Stages(context.Background(), "default")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("id explícito não consulta o padrão", func(t *testing.T) {
		f := newFixture(t)
		f.pipelines.EXPECT().ListStages(gomock.Any(), "p9").Return(nil, nil)

		got, err := f.service.Stages(context.Background(), "p9")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("erro de banco", func(t *testing.T) {
		f := newFixture(t)
		f.pipelines.EXPECT().ListStages(gomock.Any(), "p1").Return(nil, errors.New("conn reset"))

		_, err := f.service.Stages(context.Background(), "p1")
		var crmErr *domain.CRMError
		require.ErrorAs(t, err, &crmErr)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, crmErr.Code)
	})
}

func TestService_Board(t *testing.T) {
	f := newFixture(t)

	f.pipelines.EXPECT().DefaultPipelineID(gomock.Any()).Return("p1", nil)
	f.pipelines.EXPECT().ListStages(gomock.Any(), "p1").Return(stages(), nil)
	f.deals.EXPECT().ListByPipeline(gomock.Any(), "p1").Return([]*domain.Deal{
		{ID: "d1", Title: "Acme - Pilot", StageID: "s1", CompanyID: strPtr("co1"), ContactID: strPtr("c1"),
			Amount: decimal.NewNullDecimal(decimal.NewFromInt(2500)), Currency: strPtr("USD")},
		{ID: "d2", Title: "Beta", StageID: "s1", ContactID: strPtr("c1")},
		{ID: "d3", Title: "Gamma", StageID: "s3", CompanyID: strPtr("co-sem-nome")},
	}, nil)
	f.companies.EXPECT().NamesByIDs(gomock.Any(), []string{"co1", "co-sem-nome"}).Return(map[string]string{"co1": "Acme"}, nil)
	f.contacts.EXPECT().NamesByIDs(gomock.Any(), []string{"c1"}).Return(map[string]string{"c1": "John Doe"}, nil)

	board, err := f.service.Board(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "p1", board.PipelineID)
	require.Len(t, board.Deals["s1"], 2)
	assert.Empty(t, board.Deals["s2"])
	require.Len(t, board.Deals["s3"], 1)

	first := board.Deals["s1"][0]
	assert.Equal(t, "Acme", *first.CompanyName)
	assert.Equal(t, "John Doe", *first.ContactName)
	assert.Equal(t, "2500", first.Amount.Decimal.String())

	assert.Nil(t, board.Deals["s1"][1].CompanyName)
	assert.Nil(t, board.Deals["s3"][0].CompanyName)

	columns := board.Columns()
	require.Len(t, columns, 3)
	assert.Equal(t, "Contacted", columns[1].Stage.Name)
	assert.Empty(t, columns[1].Deals)
}

func TestService_Board_SemPipelinePadrao(t *testing.T) {
	f := newFixture(t)
	f.pipelines.EXPECT().DefaultPipelineID(gomock.Any()).Return("", nil)

	board, err := f.service.Board(context.Background(), "p_default")
	require.NoError(t, err)
	assert.Empty(t, board.Stages)
	assert.Empty(t, board.Deals)
}

func TestService_Lookups(t *testing.T) {
	t.Run("negócio inexistente", func(t *testing.T) {
		f := newFixture(t)
		f.deals.EXPECT().GetByID(gomock.Any(), "d404").Return(nil, nil)

		_, err := f.service.Deal(context.Background(), "d404")
		var crmErr *domain.CRMError
		require.ErrorAs(t, err, &crmErr)
		assert.Equal(t, apiErrors.ErrNotFound, crmErr.Code)
	})

	t.Run("contato encontrado", func(t *testing.T) {
		f := newFixture(t)
		f.contacts.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Contact{ID: "c1"}, nil)

		contact, err := f.service.Contact(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, "c1", contact.ID)
	})

	t.Run("nome do estágio", func(t *testing.T) {
		f := newFixture(t)
		f.pipelines.EXPECT().GetStage(gomock.Any(), "s2").Return(&domain.Stage{ID: "s2", Name: "Contacted"}, nil)

		name, err := f.service.StageName(context.Background(), "s2")
		require.NoError(t, err)
		assert.Equal(t, "Contacted", name)
	})

	t.Run("estágio inexistente", func(t *testing.T) {
		f := newFixture(t)
		f.pipelines.EXPECT().GetStage(gomock.Any(), "s9").Return(nil, nil)

		_, err := f.service.StageName(context.Background(), "s9")
		assert.ErrorIs(t, err, domain.ErrStageNotFound)
	})

	t.Run("link de agenda", func(t *testing.T) {
		f := newFixture(t)

		url, err := f.service.CalendarLink(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, "https://cal.com/vendas/c1", url)
	})
}

func TestService_Activities(t *testing.T) {
	tests := []struct {
		name        string
		relatedType domain.RelatedType
		relatedID   string
		setup       func(f *fixture)
		wantLen     int
		wantErr     error
	}{
		{
			name:        "lista do negócio",
			relatedType: domain.RelatedDeal,
			relatedID:   "d1",
			setup: func(f *fixture) {
				f.activities.EXPECT().ListFor(gomock.Any(), domain.RelatedDeal, "d1").Return([]*domain.Activity{{ID: "a2"}, {ID: "a1"}}, nil)
			},
			wantLen: 2,
		},
		{
			name:        "sem atividades devolve lista vazia",
			relatedType: domain.RelatedCompany,
			relatedID:   "co1",
			setup: func(f *fixture) {
				f.activities.EXPECT().ListFor(gomock.Any(), domain.RelatedCompany, "co1").Return(nil, nil)
			},
			wantLen: 0,
		},
		{
			name:        "tipo inválido",
			relatedType: "invoice",
			relatedID:   "x",
			wantErr:     domain.ErrInvalidRelatedType,
		},
		{
			name:        "id ausente",
			relatedType: domain.RelatedContact,
			wantErr:     domain.ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			got, err := f.service.Activities(context.Background(), tt.relatedType, tt.relatedID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Metrics(t *testing.T) {
	f := newFixture(t)

	f.pipelines.EXPECT().DefaultPipelineID(gomock.Any()).Return("p1", nil)
	f.contacts.EXPECT().CountRepliesSince(gomock.Any(), fixedNow.Add(-7*24*time.Hour)).Return(15, nil)
	f.deals.EXPECT().CountOpen(gomock.Any(), "p1").Return(42, nil)
	f.pipelines.EXPECT().ListStages(gomock.Any(), "p1").Return(stages(), nil)
	f.deals.EXPECT().ListByPipeline(gomock.Any(), "p1").Return([]*domain.Deal{
		{ID: "d1", StageID: "s1"},
		{ID: "d2", StageID: "s1"},
		{ID: "d3", StageID: "s1"},
		{ID: "d4", StageID: "s2"},
		{ID: "d5", StageID: "s2"},
	}, nil)

	metrics, err := f.service.Metrics(context.Background(), "default")
	require.NoError(t, err)

	assert.Equal(t, 42, metrics.OpenDeals)
	assert.Equal(t, 15, metrics.RepliesLast7Days)
	require.Len(t, metrics.Conversion, 3)

	assert.Equal(t, 3, metrics.Conversion[0].Count)
	require.NotNil(t, metrics.Conversion[0].ConversionToNext)
	assert.Equal(t, 67, *metrics.Conversion[0].ConversionToNext)

	require.NotNil(t, metrics.Conversion[1].ConversionToNext)
	assert.Equal(t, 0, *metrics.Conversion[1].ConversionToNext)

	assert.Equal(t, 0, metrics.Conversion[2].Count)
	assert.Nil(t, metrics.Conversion[2].ConversionToNext)
}

func TestConversion_EstagioVazio(t *testing.T) {
	board := &domain.Board{
		Stages: stages(),
		Deals: map[string][]domain.DealCard{
			"s2": {{ID: "d1"}, {ID: "d2"}},
			"s3": {{ID: "d3"}},
		},
	}

	got := conversion(board)
	assert.Nil(t, got[0].ConversionToNext)
	assert.Equal(t, 50, *got[1].ConversionToNext)
	assert.Nil(t, got[2].ConversionToNext)
}

func TestService_Metrics_SemPipelinePadrao(t *testing.T) {
	f := newFixture(t)
	f.pipelines.EXPECT().DefaultPipelineID(gomock.Any()).Return("", nil)
	f.contacts.EXPECT().CountRepliesSince(gomock.Any(), gomock.Any()).Return(3, nil)

	metrics, err := f.service.Metrics(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.OpenDeals)
	assert.Equal(t, 3, metrics.RepliesLast7Days)
	assert.Empty(t, metrics.Conversion)
}
