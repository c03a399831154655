package domain

import "time"

// Aliases aceitos para o pipeline padrão
const (
	PipelineAliasDefault = "default"
	PipelineAliasLegacy  = "p_default"
)

const (
	StageNew              = "New"
	StageMeetingScheduled = "Meeting Scheduled"
)

func IsDefaultPipelineAlias(id string) bool {
	return id == "" || id == PipelineAliasDefault || id == PipelineAliasLegacy
}

type Pipeline struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

type Stage struct {
	ID          string `json:"id"`
	PipelineID  string `json:"pipeline_id"`
	Name        string `json:"name"`
	OrderIndex  int    `json:"order_index"`
	Probability *int   `json:"probability"`
}

type BoardColumn struct {
	Stage Stage      `json:"stage"`
	Deals []DealCard `json:"deals"`
}

type Board struct {
	PipelineID string                `json:"pipeline_id"`
	Stages     []Stage               `json:"stages"`
	Deals      map[string][]DealCard `json:"deals"`
}

// Columns devolve as colunas na ordem dos estágios
func (b *Board) Columns() []BoardColumn {
	columns := make([]BoardColumn, 0, len(b.Stages))
	for _, stage := range b.Stages {
		columns = append(columns, BoardColumn{Stage: stage, Deals: b.Deals[stage.ID]})
	}
	return columns
}

type StageConversion struct {
	StageID          string `json:"stage_id"`
	StageName        string `json:"stage_name"`
	Count            int    `json:"count"`
	ConversionToNext *int   `json:"conversion_to_next,omitempty"`
}

type PipelineMetrics struct {
	PipelineID       string            `json:"pipeline_id"`
	OpenDeals        int               `json:"open_deals"`
	RepliesLast7Days int               `json:"replies_last_7_days"`
	Conversion       []StageConversion `json:"conversion"`
}
