package exporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *domain.DashboardReport {
	return &domain.DashboardReport{
		Summary: &domain.MetricSet{
			Spend:      260.50,
			Revenue:    960.00,
			ROAS:       domain.MetricValue{Value: 3.685},
			CPA:        domain.MetricValue{Undefined: true},
			CTR:        domain.MetricValue{Value: 3.0},
			Efficiency: domain.MetricValue{Value: 3.685},
		},
		Business: &domain.BusinessKPIs{
			TotalRevenue: 12750.00,
			Orders:       150,
			NewCustomers: 98,
			AOV:          domain.MetricValue{Value: 85.00},
			GrossMargin:  domain.MetricValue{Value: 40.0},
		},
		Channels: []*domain.ChannelMetrics{
			{Channel: domain.ChannelGoogle, Impressions: 4000, Clicks: 120, Spend: 120.00, AttributedRevenue: 480.00, ROAS: domain.MetricValue{Value: 4.0}},
		},
		Campaigns: []*domain.CampaignMetrics{
			{Channel: domain.ChannelGoogle, Campaign: "Search - Brand", Spend: 120.00, AttributedRevenue: 480.00, ROAS: domain.MetricValue{Value: 4.0}},
		},
		Daily: []*domain.DailyCombined{
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Spend: 260.50, TotalRevenue: 12750.00},
		},
		TopPerformer: &domain.ChannelMetrics{Channel: domain.ChannelGoogle},
		Insights: []*domain.Insight{
			{Category: domain.InsightCategoryPerformance, Title: "Google is the Top Performing Channel", Description: "Google delivers the highest ROAS at 4.0x"},
		},
		GeneratedAt: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestExportReport(t *testing.T) {
	service := NewService()

	payload, filename, err := service.ExportReport(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "marketing-report-2024-02-01.xlsx", filename)
	require.NotEmpty(t, payload)

	// Reabrir o workbook gerado e conferir o conteúdo
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{"Summary", "Channels", "Campaigns", "Daily", "Insights"}, sheets)

	metric, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Spend", metric)

	spend, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "260.5", spend)

	// Indicadores indefinidos viram N/A na planilha
	cpa, err := f.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "N/A", cpa)

	channel, err := f.GetCellValue("Channels", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Google", channel)

	campaign, err := f.GetCellValue("Campaigns", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Search - Brand", campaign)

	date, err := f.GetCellValue("Daily", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", date)

	insight, err := f.GetCellValue("Insights", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Google is the Top Performing Channel", insight)
}

func TestExportReport_RelatorioVazio(t *testing.T) {
	service := NewService()

	report := &domain.DashboardReport{
		Summary: &domain.MetricSet{
			ROAS:       domain.MetricValue{Undefined: true},
			CPA:        domain.MetricValue{Undefined: true},
			CTR:        domain.MetricValue{Undefined: true},
			Efficiency: domain.MetricValue{Undefined: true},
		},
		GeneratedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	payload, _, err := service.ExportReport(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	// Abas presentes mesmo sem linhas de dados
	assert.Len(t, f.GetSheetList(), 5)
}
