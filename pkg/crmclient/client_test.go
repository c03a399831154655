package crmclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boardJSON = `{
	"pipeline_id": "p1",
	"stages": [
		{"id":"s2","name":"Contacted","order_index":20,"probability":25},
		{"id":"s1","name":"New","order_index":10,"probability":10},
		{"id":"s3","name":"Qualified","order_index":30,"probability":null}
	],
	"deals": {
		"s1": [
			{"id":"d1","title":"Acme - Pilot","amount":"2500","currency":"USD","stage_id":"s1","company_name":"Acme","contact_name":null},
			{"id":"d2","title":"Globex","amount":null,"currency":null,"stage_id":"s1","company_name":null,"contact_name":null}
		],
		"s2": [{"id":"d3","title":"Initech","amount":1000,"currency":"USD","stage_id":"s2","company_name":null,"contact_name":"Bill"}]
	}
}`

func TestClient_Board(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/pipelines/default/board", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, boardJSON)
	}))
	defer srv.Close()

	board, err := New(srv.URL+"/", "tok").Board(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, board.Columns, 3)
	assert.Equal(t, "p1", board.PipelineID)
	assert.Equal(t, []string{"s1", "s2", "s3"}, []string{board.Columns[0].Stage.ID, board.Columns[1].Stage.ID, board.Columns[2].Stage.ID})
	assert.Len(t, board.Columns[0].Deals, 2)
	assert.Equal(t, "2500", board.Columns[0].Deals[0].Amount.Decimal.String())
	assert.False(t, board.Columns[0].Deals[1].Amount.Valid)
	assert.Empty(t, board.Columns[2].Deals)
}

func TestClient_UpdateDealStage(t *testing.T) {
	t.Run("sucesso", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/crm/actions/deals/d1/stage", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"stage_id":"s2"}`, string(body))
			_, _ = io.WriteString(w, `{"status":"ok","id":"d1","stage_id":"s2"}`)
		}))
		defer srv.Close()

		assert.NoError(t, New(srv.URL, "tok").UpdateDealStage(context.Background(), "d1", "s2"))
	})

	t.Run("erro da API", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"code":"CRM_001","message":"deal not found"}`)
		}))
		defer srv.Close()

		err := New(srv.URL, "tok").UpdateDealStage(context.Background(), "d1", "s2")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "CRM_001", apiErr.Code)
	})
}
