package main

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/crm-api/pkg/crmclient"
)

func strPtr(s string) *string { return &s }

func TestRenderBoard(t *testing.T) {
	board := &crmclient.Board{
		PipelineID: "p1",
		Columns: []crmclient.Column{
			{
				Stage: crmclient.Stage{ID: "s1", Name: "New"},
				Deals: []crmclient.DealCard{{
					ID:          "d1",
					Title:       "Acme - Pilot",
					Amount:      decimal.NewNullDecimal(decimal.NewFromInt(2500)),
					Currency:    strPtr("EUR"),
					CompanyName: strPtr("Acme"),
					ContactName: strPtr("John"),
				}},
			},
			{Stage: crmclient.Stage{ID: "s2", Name: "Won"}},
		},
	}

	var out bytes.Buffer
	require.NoError(t, renderBoard(&out, board))

	text := out.String()
	assert.Contains(t, text, "New (1)")
	assert.Contains(t, text, "2500.00 EUR")
	assert.Contains(t, text, "Acme / John")
	assert.Contains(t, text, "Won (0)")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "-", formatAmount(crmclient.DealCard{}))
	assert.Equal(t, "10.50 USD", formatAmount(crmclient.DealCard{
		Amount: decimal.NewNullDecimal(decimal.RequireFromString("10.5")),
	}))
}

func TestMigrateDown_StepsInvalido(t *testing.T) {
	err := migrateDownCmd.RunE(migrateDownCmd, []string{"zero"})
	assert.EqualError(t, err, `steps inválido: "zero"`)
}
