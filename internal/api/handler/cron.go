package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

const (
	CronJobTypeOutbound = "outbound"
	CronJobTypeAll      = "all"
)

// ManualSyncer é implementado pelos serviços agendados em internal/scheduler
type ManualSyncer interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron que podem ser disparados manualmente
type CronJobServices struct {
	OutboundDispatchService ManualSyncer
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch cronType {
		case CronJobTypeOutbound, CronJobTypeAll:
			if services.OutboundDispatchService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de envio ao n8n não disponível", nil)
				return
			}
			services.OutboundDispatchService.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: outbound, all", nil)
			return
		}

		logrus.WithField("type", cronType).Info("Cron job disparada manualmente")
		writeOK(w, r, okResponse{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.OutboundDispatchService != nil {
			status[CronJobTypeOutbound] = services.OutboundDispatchService.GetStatus()
		}
		writeJSON(w, r, http.StatusOK, status)
	}
}
