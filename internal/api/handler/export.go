package handler

import (
	"net/http"

	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportDashboard gera a planilha XLSX do relatório para download
func ExportDashboard(reportService reporting.Reporter, exportService exporting.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		report, ok := getReport(w, r, reportService, "export")
		if !ok {
			return
		}

		payload, filename, err := exportService.ExportReport(report)
		if err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to build export workbook")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar a planilha do relatório", nil)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
		if _, err := w.Write(payload); err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to write export response")
		}
	})
}
