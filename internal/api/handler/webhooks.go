package handler

import (
	"net/http"

	"github.com/vfg2006/crm-api/internal/usecases/ingesting"
	"github.com/vfg2006/crm-api/pkg/log"
	"github.com/vfg2006/crm-api/pkg/signature"
)

// webhookRequest preserva o corpo cru: a assinatura HMAC é calculada sobre os bytes recebidos
func webhookRequest(w http.ResponseWriter, r *http.Request) (ingesting.Request, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return ingesting.Request{}, false
	}

	return ingesting.Request{
		Body:           body,
		Signature:      r.Header.Get(signature.Header),
		IdempotencyKey: r.Header.Get(ingesting.IdempotencyHeader),
	}, true
}

func CalcomBooking(service ingesting.Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := webhookRequest(w, r)
		if !ok {
			return
		}

		result, err := service.CalcomBooking(r.Context(), req)
		if err != nil {
			log.ForContext(r.Context()).WithField("event_source", "cal.com").WithError(err).Warn("Webhook de booking rejeitado")
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

func InstantlyReply(service ingesting.Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := webhookRequest(w, r)
		if !ok {
			return
		}

		result, err := service.InstantlyReply(r.Context(), req)
		if err != nil {
			log.ForContext(r.Context()).WithField("event_source", "instantly.reply").WithError(err).Warn("Webhook de resposta rejeitado")
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}
