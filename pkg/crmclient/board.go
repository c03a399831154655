package crmclient

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Stage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OrderIndex  int    `json:"order_index"`
	Probability *int   `json:"probability"`
}

type DealCard struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Amount      decimal.NullDecimal `json:"amount"`
	Currency    *string             `json:"currency"`
	StageID     string              `json:"stage_id"`
	CompanyName *string             `json:"company_name"`
	ContactName *string             `json:"contact_name"`
}

type Column struct {
	Stage Stage      `json:"stage"`
	Deals []DealCard `json:"deals"`
}

// Board é a cópia local do Kanban usada para movimentos otimistas
type Board struct {
	PipelineID string   `json:"pipeline_id"`
	Columns    []Column `json:"columns"`
}

var ErrCardNotFound = errors.New("crmclient: card not found in source column")

type boardResponse struct {
	PipelineID string                `json:"pipeline_id"`
	Stages     []Stage               `json:"stages"`
	Deals      map[string][]DealCard `json:"deals"`
}

func newBoard(resp boardResponse) *Board {
	stages := append([]Stage(nil), resp.Stages...)
	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].OrderIndex < stages[j].OrderIndex
	})

	b := &Board{PipelineID: resp.PipelineID, Columns: make([]Column, 0, len(stages))}
	for _, stage := range stages {
		b.Columns = append(b.Columns, Column{Stage: stage, Deals: append([]DealCard(nil), resp.Deals[stage.ID]...)})
	}
	return b
}

func (b *Board) column(stageID string) *Column {
	for i := range b.Columns {
		if b.Columns[i].Stage.ID == stageID {
			return &b.Columns[i]
		}
	}
	return nil
}

// FindDeal devolve o card e o estágio em que ele está
func (b *Board) FindDeal(dealID string) (DealCard, string, bool) {
	for _, col := range b.Columns {
		for _, card := range col.Deals {
			if card.ID == dealID {
				return card, col.Stage.ID, true
			}
		}
	}
	return DealCard{}, "", false
}

// Move tira o card da coluna de origem e o coloca no topo da coluna de destino
func (b *Board) Move(dealID, fromStageID, toStageID string) error {
	from, to := b.column(fromStageID), b.column(toStageID)
	if from == nil || to == nil {
		return errors.Errorf("crmclient: unknown stage %q or %q", fromStageID, toStageID)
	}

	idx := -1
	for i, card := range from.Deals {
		if card.ID == dealID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrCardNotFound
	}

	card := from.Deals[idx]
	from.Deals = append(from.Deals[:idx:idx], from.Deals[idx+1:]...)

	card.StageID = toStageID
	to.Deals = append([]DealCard{card}, to.Deals...)
	return nil
}

// Rollback desfaz um Move anterior
func (b *Board) Rollback(dealID, fromStageID, toStageID string) error {
	return b.Move(dealID, toStageID, fromStageID)
}

// MoveDeal aplica o movimento localmente, chama a API e desfaz se a chamada falhar
func (b *Board) MoveDeal(ctx context.Context, updater StageUpdater, dealID, toStageID string) error {
	_, fromStageID, ok := b.FindDeal(dealID)
	if !ok {
		return ErrCardNotFound
	}
	if fromStageID == toStageID {
		return nil
	}

	if err := b.Move(dealID, fromStageID, toStageID); err != nil {
		return err
	}

	if err := updater.UpdateDealStage(ctx, dealID, toStageID); err != nil {
		if rbErr := b.Rollback(dealID, fromStageID, toStageID); rbErr != nil {
			return errors.Wrapf(err, "crmclient: rollback failed (%v)", rbErr)
		}
		return err
	}

	return nil
}
