package exporting

import (
	"bytes"
	"fmt"
	"time"

	pkgErrors "github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
)

// Exporter serializa um relatório do painel em uma planilha XLSX
type Exporter interface {
	ExportReport(report *domain.DashboardReport) ([]byte, string, error)
}

type Service struct{}

func NewService() Exporter {
	return &Service{}
}

// ExportReport monta o workbook com as abas Summary, Channels, Campaigns,
// Daily e Insights e devolve os bytes prontos para download junto com o nome
// sugerido do arquivo
func (s *Service) ExportReport(report *domain.DashboardReport) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, report); err != nil {
		return nil, "", err
	}
	if err := writeChannelsSheet(f, report.Channels); err != nil {
		return nil, "", err
	}
	if err := writeCampaignsSheet(f, report.Campaigns); err != nil {
		return nil, "", err
	}
	if err := writeDailySheet(f, report.Daily); err != nil {
		return nil, "", err
	}
	if err := writeInsightsSheet(f, report.Insights); err != nil {
		return nil, "", err
	}

	// A primeira aba criada pelo excelize não faz parte do relatório
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", pkgErrors.Wrap(err, "erro ao remover a aba padrão do workbook")
	}

	var buffer bytes.Buffer
	if _, err := f.WriteTo(&buffer); err != nil {
		return nil, "", pkgErrors.Wrap(err, "erro ao serializar o workbook")
	}

	filename := fmt.Sprintf("marketing-report-%s.xlsx", report.GeneratedAt.Format("2006-01-02"))

	log.L.WithFields(log.Fields{
		"filename": filename,
		"bytes":    buffer.Len(),
	}).Info("exporting: report workbook generated")

	return buffer.Bytes(), filename, nil
}

func writeSummarySheet(f *excelize.File, report *domain.DashboardReport) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Spend", report.Summary.Spend},
		{"Attributed Revenue", report.Summary.Revenue},
		{"ROAS", metricCell(report.Summary.ROAS)},
		{"CPA", metricCell(report.Summary.CPA)},
		{"CTR (%)", metricCell(report.Summary.CTR)},
		{"Efficiency", metricCell(report.Summary.Efficiency)},
	}

	if report.Business != nil {
		rows = append(rows,
			[]interface{}{"Total Revenue", report.Business.TotalRevenue},
			[]interface{}{"Gross Profit", report.Business.GrossProfit},
			[]interface{}{"Orders", report.Business.Orders},
			[]interface{}{"New Customers", report.Business.NewCustomers},
			[]interface{}{"AOV", metricCell(report.Business.AOV)},
			[]interface{}{"Gross Margin (%)", metricCell(report.Business.GrossMargin)},
		)
	}

	if report.TopPerformer != nil {
		rows = append(rows, []interface{}{"Top Performing Channel", string(report.TopPerformer.Channel)})
	}

	return writeSheet(f, "Summary", rows)
}

func writeChannelsSheet(f *excelize.File, channels []*domain.ChannelMetrics) error {
	rows := [][]interface{}{
		{"Channel", "Impressions", "Clicks", "Spend", "Attributed Revenue", "CTR (%)", "CPC", "ROAS", "Avg Daily Spend"},
	}

	for _, c := range channels {
		rows = append(rows, []interface{}{
			string(c.Channel), c.Impressions, c.Clicks, c.Spend, c.AttributedRevenue,
			metricCell(c.CTR), metricCell(c.CPC), metricCell(c.ROAS), metricCell(c.AvgDailySpend),
		})
	}

	return writeSheet(f, "Channels", rows)
}

func writeCampaignsSheet(f *excelize.File, campaigns []*domain.CampaignMetrics) error {
	rows := [][]interface{}{
		{"Channel", "Campaign", "Impressions", "Clicks", "Spend", "Attributed Revenue", "CTR (%)", "CPC", "ROAS"},
	}

	for _, c := range campaigns {
		rows = append(rows, []interface{}{
			string(c.Channel), c.Campaign, c.Impressions, c.Clicks, c.Spend, c.AttributedRevenue,
			metricCell(c.CTR), metricCell(c.CPC), metricCell(c.ROAS),
		})
	}

	return writeSheet(f, "Campaigns", rows)
}

func writeDailySheet(f *excelize.File, daily []*domain.DailyCombined) error {
	rows := [][]interface{}{
		{"Date", "Impressions", "Clicks", "Spend", "Attributed Revenue", "Orders", "New Customers",
			"Total Revenue", "Gross Profit", "CTR (%)", "ROAS", "Efficiency"},
	}

	for _, d := range daily {
		rows = append(rows, []interface{}{
			d.Date.Format(time.DateOnly), d.Impressions, d.Clicks, d.Spend, d.AttributedRevenue,
			d.Orders, d.NewCustomers, d.TotalRevenue, d.GrossProfit,
			metricCell(d.CTR), metricCell(d.ROAS), metricCell(d.Efficiency),
		})
	}

	return writeSheet(f, "Daily", rows)
}

func writeInsightsSheet(f *excelize.File, insights []*domain.Insight) error {
	rows := [][]interface{}{
		{"Category", "Title", "Description"},
	}

	for _, insight := range insights {
		rows = append(rows, []interface{}{insight.Category, insight.Title, insight.Description})
	}

	return writeSheet(f, "Insights", rows)
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return pkgErrors.Wrapf(err, "erro ao criar a aba %s", sheet)
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return pkgErrors.Wrapf(err, "erro ao endereçar célula da aba %s", sheet)
			}

			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return pkgErrors.Wrapf(err, "erro ao escrever célula da aba %s", sheet)
			}
		}
	}

	return nil
}

// metricCell converte um MetricValue para a célula: indicadores indefinidos
// viram "N/A", como no painel
func metricCell(mv domain.MetricValue) interface{} {
	if mv.Undefined {
		return "N/A"
	}

	return mv.Value
}
