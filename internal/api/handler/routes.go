package handler

import (
	"net/http"

	"github.com/vfg2006/crm-api/internal/api/handler/router"
	"github.com/vfg2006/crm-api/internal/usecases/board"
	"github.com/vfg2006/crm-api/internal/usecases/dealing"
	"github.com/vfg2006/crm-api/internal/usecases/ingesting"
	"github.com/vfg2006/crm-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func CRMActions(service dealing.Dealer) []router.Route {
	return []router.Route{
		{
			Path:        "/crm/actions/deals",
			Method:      http.MethodPost,
			Handler:     SaveDeal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthenticatedOrService()},
		},
		{
			Path:        "/crm/actions/deals/:id/stage",
			Method:      http.MethodPost,
			Handler:     UpdateDealStage(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthenticatedOrService()},
		},
		{
			Path:        "/crm/actions/contacts",
			Method:      http.MethodPost,
			Handler:     SaveContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthenticatedOrService()},
		},
		{
			Path:        "/v1/contacts/:id/reply-status",
			Method:      http.MethodPut,
			Handler:     UpdateReplyStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthenticatedOrService()},
		},
	}
}

// Webhooks não usam JWT: a autenticação é a assinatura HMAC do corpo
func Webhooks(service ingesting.Ingestor) []router.Route {
	return []router.Route{
		{
			Path:    "/crm/webhooks/calcom/booking",
			Method:  http.MethodPost,
			Handler: CalcomBooking(service),
		},
		{
			Path:    "/crm/webhooks/instantly/reply",
			Method:  http.MethodPost,
			Handler: InstantlyReply(service),
		},
	}
}

func Board(service board.Reader) []router.Route {
	routes := []struct {
		path    string
		handler http.Handler
	}{
		{"/v1/pipelines/:id/stages", GetStages(service)},
		{"/v1/pipelines/:id/board", GetBoard(service)},
		{"/v1/pipelines/:id/metrics", GetPipelineMetrics(service)},
		{"/v1/deals/:id", GetDeal(service)},
		{"/v1/contacts/:id", GetContact(service)},
		{"/v1/contacts/:id/calendar-link", GetCalendarLink(service)},
		{"/v1/stages/:id", GetStage(service)},
		{"/v1/activities", GetActivities(service)},
	}

	result := make([]router.Route, 0, len(routes))
	for _, route := range routes {
		result = append(result, router.Route{
			Path:        route.path,
			Method:      http.MethodGet,
			Handler:     route.handler,
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthenticatedOrService()},
		})
	}
	return result
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceRoleOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceRoleOnly()},
		},
	}
}
