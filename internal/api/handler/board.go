package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/board"
	"github.com/vfg2006/crm-api/internal/usecases/dealing"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

func idParam(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}

func GetStages(service board.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stages, err := service.Stages(r.Context(), idParam(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, stages)
	}
}

// GetBoard retorna estágios e cards agrupados por stage_id
func GetBoard(service board.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := service.Board(r.Context(), idParam(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, b)
	}
}

func GetPipelineMetrics(service board.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics, err := service.Metrics(r.Context(), idParam(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, metrics)
	}
}

func GetDeal(service board.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deal, err := service.Deal(r.Context(), idParam(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, deal)
	}
}

func GetContact(service board.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contact, err := service.Contact(r.Context(), idParam(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, contact)
	}
}

func GetStage(service board.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := idParam(r)
		name, err := service.StageName(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{"id": id, "name": name})
	}
}

// GetActivities lista a timeline de ?related_type=deal|contact|company&related_id=
func GetActivities(service board.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		relatedType := domain.RelatedType(query.Get("related_type"))

		activities, err := service.Activities(r.Context(), relatedType, query.Get("related_id"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, activities)
	}
}

func GetCalendarLink(service board.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := service.CalendarLink(r.Context(), idParam(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{"url": link})
	}
}

// UpdateReplyStatus recebe {"reply_status": "interested" | "not_interested"}
func UpdateReplyStatus(service dealing.Dealer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch, ok := readPatch(w, r)
		if !ok {
			return
		}

		status, err := patch.String("reply_status")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "reply_status must be a string", nil)
			return
		}
		if status == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Missing field: reply_status", nil)
			return
		}

		id := idParam(r)
		if err := service.UpdateReplyStatus(r.Context(), id, domain.ReplyStatus(status)); err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeOK(w, r, okResponse{"id": id, "reply_status": status})
	}
}
