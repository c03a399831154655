package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DealStatus string

const (
	DealStatusOpen DealStatus = "open"
	DealStatusWon  DealStatus = "won"
	DealStatusLost DealStatus = "lost"
)

const (
	DefaultDealCurrency = "USD"
	DefaultDealSource   = "inbound"
)

type Deal struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	PipelineID string              `json:"pipeline_id"`
	StageID    string              `json:"stage_id"`
	Amount     decimal.NullDecimal `json:"amount"`
	Currency   *string             `json:"currency"`
	CloseDate  *time.Time          `json:"close_date"`
	Status     *string             `json:"status"`
	Source     *string             `json:"source"`
	Notes      *string             `json:"notes"`
	CompanyID  *string             `json:"company_id"`
	ContactID  *string             `json:"contact_id"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// NewDeal são os dados de criação de um negócio; campos nulos ficam NULL no banco
type NewDeal struct {
	Title      string              `json:"title" validate:"required"`
	PipelineID string              `json:"pipeline_id" validate:"required"`
	StageID    string              `json:"stage_id" validate:"required"`
	Amount     decimal.NullDecimal `json:"amount"`
	Currency   string              `json:"currency" validate:"omitempty,len=3"`
	CloseDate  *string             `json:"close_date"`
	Status     string              `json:"status"`
	Source     string              `json:"source"`
	Notes      *string             `json:"notes"`
	CompanyID  *string             `json:"company_id"`
	ContactID  *string             `json:"contact_id"`
}

// DealUpdatableFields são as colunas aceitas em uma atualização parcial de negócio
var DealUpdatableFields = []string{
	"title", "stage_id", "pipeline_id", "amount", "currency", "close_date",
	"status", "source", "notes", "company_id", "contact_id",
}

// DealCard é a representação do negócio em uma coluna do quadro Kanban
type DealCard struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Amount      decimal.NullDecimal `json:"amount"`
	Currency    *string             `json:"currency"`
	StageID     string              `json:"stage_id"`
	CompanyID   *string             `json:"company_id,omitempty"`
	ContactID   *string             `json:"contact_id,omitempty"`
	CompanyName *string             `json:"company_name"`
	ContactName *string             `json:"contact_name"`
}

type StageChange struct {
	DealID     string `json:"id"`
	OldStageID string `json:"old_stage_id"`
	StageID    string `json:"stage_id"`
	Changed    bool   `json:"-"`
}
