package insighting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Insights: config.Insights{
			FlatTrendThreshold: 1.0,
			TopCampaignsLimit:  5,
		},
	}
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

// dailySeries monta uma série de dez dias com as receitas fornecidas
func dailySeries(revenues ...float64) []*domain.DailyCombined {
	series := make([]*domain.DailyCombined, 0, len(revenues))
	for i, revenue := range revenues {
		series = append(series, &domain.DailyCombined{
			Date:         day(i + 1),
			TotalRevenue: revenue,
		})
	}
	return series
}

func findByCategory(t *testing.T, insights []*domain.Insight, category string) *domain.Insight {
	t.Helper()
	for _, insight := range insights {
		if insight.Category == category {
			return insight
		}
	}
	t.Fatalf("insight da categoria %s não encontrado", category)
	return nil
}

func fullReport() *domain.DashboardReport {
	return &domain.DashboardReport{
		Summary: &domain.MetricSet{
			Spend:      260.50,
			Revenue:    960.00,
			ROAS:       domain.MetricValue{Value: 3.685},
			CPA:        domain.MetricValue{Value: 2.658},
			CTR:        domain.MetricValue{Value: 3.0},
			Efficiency: domain.MetricValue{Value: 3.685},
		},
		Business: &domain.BusinessKPIs{
			TotalRevenue: 12750.00,
			Orders:       150,
			NewCustomers: 98,
			AOV:          domain.MetricValue{Value: 85.00},
		},
		TopPerformer: &domain.ChannelMetrics{
			Channel:           domain.ChannelGoogle,
			Spend:             120.00,
			AttributedRevenue: 480.00,
			ROAS:              domain.MetricValue{Value: 4.00},
		},
		Daily: dailySeries(100, 100, 100, 100, 120, 120, 120, 120, 120, 120),
	}
}

func TestGenerate(t *testing.T) {
	service := NewService(testConfig())

	insights := service.Generate(fullReport())
	require.Len(t, insights, 4)

	performance := findByCategory(t, insights, domain.InsightCategoryPerformance)
	assert.Equal(t, "Google is the Top Performing Channel", performance.Title)
	assert.Equal(t, "Google delivers the highest ROAS at 4.0x", performance.Description)
	assert.False(t, performance.Insufficient)

	efficiency := findByCategory(t, insights, domain.InsightCategoryEfficiency)
	assert.Equal(t, "Every $1 spent on marketing generates $3.69 in total revenue", efficiency.Description)
	assert.InDelta(t, 3.685, efficiency.Value, 0.001)

	trend := findByCategory(t, insights, domain.InsightCategoryTrend)
	assert.Equal(t, "Revenue Trend is Increasing", trend.Title)
	// Primeira metade (dias 1-4) soma 400, segunda (dias 5-10) soma 720: +80%
	assert.InDelta(t, 80.0, trend.Value, 0.001)

	acquisition := findByCategory(t, insights, domain.InsightCategoryAcquisition)
	assert.Equal(t, "Customer Acquisition Efficiency", acquisition.Title)
	assert.Contains(t, acquisition.Description, "Customer acquisition cost ($2.66)")
	// CPA 2.658 / AOV 85.00 ≈ 0.031
	assert.InDelta(t, 0.031, acquisition.Value, 0.001)
}

func TestGenerate_TendenciaEstavel(t *testing.T) {
	tests := []struct {
		name     string
		revenues []float64
		expected string
	}{
		{
			// Metades: dias 1-4 somam 600, dias 5-10 somam 603 (+0.5%)
			name:     "Variação dentro de ±1% é estável",
			revenues: []float64{150, 150, 150, 150, 100.5, 100.5, 100.5, 100.5, 100.5, 100.5},
			expected: "Revenue Trend is Flat",
		},
		{
			// Metades: dias 1-4 somam 600, dias 5-10 somam 480 (-20%)
			name:     "Queda acima do limiar é decrescente",
			revenues: []float64{150, 150, 150, 150, 80, 80, 80, 80, 80, 80},
			expected: "Revenue Trend is Decreasing",
		},
	}

	service := NewService(testConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := fullReport()
			report.Daily = dailySeries(tt.revenues...)

			trend := findByCategory(t, service.Generate(report), domain.InsightCategoryTrend)
			assert.Equal(t, tt.expected, trend.Title)
		})
	}
}

func TestGenerate_RecorteComFiltros(t *testing.T) {
	// O corte de tendência usa o intervalo dos filtros quando presente
	service := NewService(testConfig())

	report := fullReport()
	start, end := day(1), day(20)
	report.Filters = &domain.ReportFilters{StartDate: &start, EndDate: &end}
	// Toda a receita cai na primeira metade [dia 1, dia 10)
	report.Daily = dailySeries(100, 100, 100, 100, 100, 100, 100, 100, 100)

	trend := findByCategory(t, service.Generate(report), domain.InsightCategoryTrend)
	assert.Equal(t, "Revenue Trend is Decreasing", trend.Title)
	assert.InDelta(t, -100.0, trend.Value, 0.001)
}

func TestGenerate_DadosInsuficientes(t *testing.T) {
	service := NewService(testConfig())

	empty := &domain.DashboardReport{
		Summary: &domain.MetricSet{
			ROAS:       domain.MetricValue{Undefined: true},
			CPA:        domain.MetricValue{Undefined: true},
			CTR:        domain.MetricValue{Undefined: true},
			Efficiency: domain.MetricValue{Undefined: true},
		},
		Business: &domain.BusinessKPIs{
			AOV: domain.MetricValue{Undefined: true},
		},
	}

	insights := service.Generate(empty)
	require.Len(t, insights, 4)

	for _, insight := range insights {
		assert.True(t, insight.Insufficient, "categoria %s deveria degradar", insight.Category)
		assert.Equal(t, "Insufficient data for this insight in the selected period", insight.Description)
		assert.NotEmpty(t, insight.Title)
	}
}

func TestGenerate_Determinismo(t *testing.T) {
	service := NewService(testConfig())
	report := fullReport()

	first := service.Generate(report)
	second := service.Generate(report)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Category, second[i].Category)
		assert.Equal(t, first[i].Title, second[i].Title)
		assert.Equal(t, first[i].Description, second[i].Description)
		assert.Equal(t, first[i].Value, second[i].Value)
	}
}
