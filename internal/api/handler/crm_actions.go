package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/crm-api/internal/usecases/dealing"
	"github.com/vfg2006/crm-api/pkg/log"
)

// SaveDeal cria o deal quando o corpo não traz id, senão faz atualização parcial
func SaveDeal(service dealing.Dealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch, ok := readPatch(w, r)
		if !ok {
			return
		}

		id, err := service.SaveDeal(r.Context(), patch)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeOK(w, r, okResponse{"id": id})
	}
}

// UpdateDealStage atende o drag-and-drop do Kanban
func UpdateDealStage(service dealing.Dealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		patch, ok := readPatch(w, r)
		if !ok {
			return
		}

		change, err := service.UpdateDealStage(r.Context(), dealID, patch)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if !change.Changed {
			log.ForContext(r.Context()).WithField("deal_id", dealID).Debug("Deal já estava no estágio informado")
		}

		writeOK(w, r, okResponse{"id": change.DealID, "stage_id": change.StageID})
	}
}

func SaveContact(service dealing.Dealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch, ok := readPatch(w, r)
		if !ok {
			return
		}

		id, err := service.SaveContact(r.Context(), patch)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeOK(w, r, okResponse{"id": id})
	}
}
