package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/marketing-dashboard-api/infrastructure/datasource"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
	"github.com/vfg2006/marketing-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// parseReportFilters extrai os filtros do recorte da query string
func parseReportFilters(r *http.Request) (*domain.ReportFilters, error) {
	startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		return nil, errors.Wrap(err, "start_date inválido")
	}

	endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		return nil, errors.Wrap(err, "end_date inválido")
	}

	return &domain.ReportFilters{
		StartDate: startDate,
		EndDate:   endDate,
		Channel:   domain.Channel(r.URL.Query().Get("channel")),
		Campaign:  r.URL.Query().Get("campaign"),
	}, nil
}

// writeReportError mapeia as falhas de origem de dados para os códigos da API
func writeReportError(w http.ResponseWriter, err error) {
	var schemaErr *datasource.SchemaError
	if errors.As(err, &schemaErr) {
		apiErrors.WriteError(w, apiErrors.ErrDataSchema, schemaErr.Error(), map[string]any{
			"file":   schemaErr.File,
			"column": schemaErr.Column,
		})
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrDataParse, "Erro ao carregar os arquivos de origem", nil)
}

// getReport centraliza parse de filtros, computação e tratamento de erro
func getReport(w http.ResponseWriter, r *http.Request, service reporting.Reporter, operation string) (*domain.DashboardReport, bool) {
	logger := log.ForContext(r.Context())

	filters, err := parseReportFilters(r)
	if err != nil {
		logger.WithFields(log.Fields{
			"query": r.URL.RawQuery,
			"error": err.Error(),
		}).Warn("dashboard: invalid filter parameters")

		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return nil, false
	}

	if err := filters.Validate(); err != nil {
		logger.WithField("error", err.Error()).Warn("dashboard: invalid date range")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return nil, false
	}

	report, err := service.GetDashboardReport(filters)
	if err != nil {
		logger.WithFields(log.Fields{
			"filters": filters.CacheKey(),
			"error":   err.Error(),
		}).Error("dashboard: failed to compute report")

		writeReportError(w, err)
		return nil, false
	}

	logger.WithField("filters", filters.CacheKey()).Info("dashboard: " + operation + " computed")
	return report, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithField("error", err.Error()).Error("dashboard: failed to encode response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetDashboard retorna o relatório completo do painel para o recorte
func GetDashboard(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, ok := getReport(w, r, service, "full report")
		if !ok {
			return
		}

		writeJSON(w, r, report)
	})
}

// GetChannelMetrics retorna apenas a visão por canal
func GetChannelMetrics(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, ok := getReport(w, r, service, "channel metrics")
		if !ok {
			return
		}

		writeJSON(w, r, map[string]any{
			"channels":      report.Channels,
			"top_performer": report.TopPerformer,
		})
	})
}

// GetCampaignMetrics retorna a visão por campanha com os destaques
func GetCampaignMetrics(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, ok := getReport(w, r, service, "campaign metrics")
		if !ok {
			return
		}

		writeJSON(w, r, map[string]any{
			"campaigns":     report.Campaigns,
			"top_campaigns": report.TopCampaigns,
		})
	})
}

// GetTimeSeries retorna a série diária combinada com as médias móveis
func GetTimeSeries(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, ok := getReport(w, r, service, "time series")
		if !ok {
			return
		}

		writeJSON(w, r, map[string]any{
			"daily":        report.Daily,
			"time_series":  report.TimeSeries,
			"correlations": report.Correlations,
		})
	})
}

// GetInsights retorna as sentenças narrativas do recorte
func GetInsights(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, ok := getReport(w, r, service, "insights")
		if !ok {
			return
		}

		writeJSON(w, r, map[string]any{
			"insights": report.Insights,
		})
	})
}

// GetAvailableFilters retorna as opções de filtro presentes nos dados
func GetAvailableFilters(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		available, err := service.GetAvailableFilters()
		if err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to list available filters")
			writeReportError(w, err)
			return
		}

		writeJSON(w, r, available)
	})
}

// ClearReportCache descarta os relatórios em cache
func ClearReportCache(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		service.ClearCache()
		log.ForContext(r.Context()).Info("dashboard: report cache cleared by request")

		w.WriteHeader(http.StatusNoContent)
	})
}
