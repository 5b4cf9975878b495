package handler

import (
	"net/http"

	"github.com/vfg2006/marketing-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/reporting"
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

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Dashboard(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
		{
			Path:    "/v1/dashboard/channels",
			Method:  http.MethodGet,
			Handler: GetChannelMetrics(service),
		},
		{
			Path:    "/v1/dashboard/campaigns",
			Method:  http.MethodGet,
			Handler: GetCampaignMetrics(service),
		},
		{
			Path:    "/v1/dashboard/timeseries",
			Method:  http.MethodGet,
			Handler: GetTimeSeries(service),
		},
		{
			Path:    "/v1/dashboard/insights",
			Method:  http.MethodGet,
			Handler: GetInsights(service),
		},
		{
			Path:    "/v1/dashboard/filters",
			Method:  http.MethodGet,
			Handler: GetAvailableFilters(service),
		},
		{
			Path:    "/v1/cache/clear",
			Method:  http.MethodPost,
			Handler: ClearReportCache(service),
		},
	}
}

func Export(reportService reporting.Reporter, exportService exporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard/export",
			Method:  http.MethodGet,
			Handler: ExportDashboard(reportService, exportService),
		},
	}
}
