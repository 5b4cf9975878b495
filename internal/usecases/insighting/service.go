package insighting

import (
	"fmt"
	"math"
	"time"

	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
	"github.com/vfg2006/marketing-dashboard-api/pkg/utils"
)

// Generator produz os insights narrativos de um relatório computado
type Generator interface {
	Generate(report *domain.DashboardReport) []*domain.Insight
}

// Service avalia uma tabela fixa de regras (predicado + renderização) em
// ordem de prioridade. Sem aleatoriedade: o mesmo relatório produz sempre
// as mesmas sentenças. Regras sem dados suficientes degradam para uma
// mensagem neutra em vez de falhar.
type Service struct {
	cfg   *config.Config
	rules []rule
}

type rule struct {
	category string
	metric   string
	// ready decide se a regra tem dados suficientes para renderizar
	ready  func(report *domain.DashboardReport) bool
	render func(report *domain.DashboardReport) (title, description string, value float64)
}

func NewService(cfg *config.Config) Generator {
	s := &Service{cfg: cfg}
	s.rules = []rule{
		{
			category: domain.InsightCategoryPerformance,
			metric:   "ROAS",
			ready: func(r *domain.DashboardReport) bool {
				return r.TopPerformer != nil && !r.TopPerformer.ROAS.Undefined
			},
			render: func(r *domain.DashboardReport) (string, string, float64) {
				top := r.TopPerformer
				title := fmt.Sprintf("%s is the Top Performing Channel", top.Channel)
				description := fmt.Sprintf(
					"%s delivers the highest ROAS at %.1fx",
					top.Channel, top.ROAS.Value,
				)
				return title, description, top.ROAS.Value
			},
		},
		{
			category: domain.InsightCategoryEfficiency,
			metric:   "Revenue per $ spent",
			ready: func(r *domain.DashboardReport) bool {
				return r.Summary != nil && !r.Summary.Efficiency.Undefined
			},
			render: func(r *domain.DashboardReport) (string, string, float64) {
				efficiency := r.Summary.Efficiency.Value
				description := fmt.Sprintf(
					"Every $1 spent on marketing generates $%.2f in total revenue",
					efficiency,
				)
				return "Marketing Efficiency", description, efficiency
			},
		},
		{
			category: domain.InsightCategoryTrend,
			metric:   "Revenue Growth",
			ready: func(r *domain.DashboardReport) bool {
				_, ok := s.revenueTrendChange(r)
				return ok
			},
			render: func(r *domain.DashboardReport) (string, string, float64) {
				change, _ := s.revenueTrendChange(r)

				direction := "Flat"
				if change > s.cfg.Insights.FlatTrendThreshold {
					direction = "Increasing"
				} else if change < -s.cfg.Insights.FlatTrendThreshold {
					direction = "Decreasing"
				}

				title := fmt.Sprintf("Revenue Trend is %s", direction)
				description := fmt.Sprintf(
					"Revenue changed by %.1f%% between the first and second half of the period",
					change,
				)
				return title, description, change
			},
		},
		{
			category: domain.InsightCategoryAcquisition,
			metric:   "CAC to AOV Ratio",
			ready: func(r *domain.DashboardReport) bool {
				return r.Summary != nil && r.Business != nil &&
					!r.Summary.CPA.Undefined && !r.Business.AOV.Undefined &&
					r.Business.AOV.Value > 0
			},
			render: func(r *domain.DashboardReport) (string, string, float64) {
				cpa := r.Summary.CPA.Value
				aov := r.Business.AOV.Value
				ratio := cpa / aov

				description := fmt.Sprintf(
					"Customer acquisition cost ($%.2f) is %.1fx the average order value",
					cpa, ratio,
				)
				return "Customer Acquisition Efficiency", description, ratio
			},
		},
	}

	return s
}

// Generate avalia todas as regras na ordem fixa de prioridade
func (s *Service) Generate(report *domain.DashboardReport) []*domain.Insight {
	insights := make([]*domain.Insight, 0, len(s.rules))

	for _, r := range s.rules {
		insight := &domain.Insight{
			Category: r.category,
			Metric:   r.metric,
		}

		if id, err := utils.GenerateID(); err == nil {
			insight.ID = id
		} else {
			log.L.WithError(err).Warn("insighting: failed to generate insight id")
		}

		if r.ready(report) {
			insight.Title, insight.Description, insight.Value = r.render(report)
		} else {
			insight.Title = neutralTitle(r.category)
			insight.Description = "Insufficient data for this insight in the selected period"
			insight.Insufficient = true
		}

		insights = append(insights, insight)
	}

	return insights
}

func neutralTitle(category string) string {
	switch category {
	case domain.InsightCategoryPerformance:
		return "Channel Performance"
	case domain.InsightCategoryEfficiency:
		return "Marketing Efficiency"
	case domain.InsightCategoryTrend:
		return "Revenue Trend"
	case domain.InsightCategoryAcquisition:
		return "Customer Acquisition Efficiency"
	default:
		return "Insight"
	}
}

// revenueTrendChange calcula a variação percentual de receita entre as duas
// metades do intervalo selecionado. O corte é a data do ponto médio:
// primeira metade [início, meio), segunda metade [meio, fim].
func (s *Service) revenueTrendChange(report *domain.DashboardReport) (float64, bool) {
	if len(report.Daily) == 0 {
		return 0, false
	}

	start, end := rangeBounds(report)
	if !end.After(start) {
		return 0, false
	}

	midpoint := start.Add(end.Sub(start) / 2).Truncate(24 * time.Hour)

	var firstHalf, secondHalf float64
	for _, day := range report.Daily {
		if day.Date.Before(midpoint) {
			firstHalf += day.TotalRevenue
		} else {
			secondHalf += day.TotalRevenue
		}
	}

	if firstHalf == 0 {
		return 0, false
	}

	change := (secondHalf - firstHalf) / firstHalf * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return 0, false
	}

	return change, true
}

// rangeBounds devolve o intervalo efetivo: os filtros quando presentes,
// senão os extremos da série diária
func rangeBounds(report *domain.DashboardReport) (time.Time, time.Time) {
	start := report.Daily[0].Date
	end := report.Daily[len(report.Daily)-1].Date

	if report.Filters != nil {
		if report.Filters.StartDate != nil {
			start = *report.Filters.StartDate
		}
		if report.Filters.EndDate != nil {
			end = *report.Filters.EndDate
		}
	}

	return start, end
}
