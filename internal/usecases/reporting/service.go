package reporting

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/vfg2006/marketing-dashboard-api/internal/cache"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
)

const rollingWindowDays = 7

// Reporter computa o relatório completo do painel para um recorte de filtros
type Reporter interface {
	// GetDashboardReport recarrega, agrega e deriva todos os indicadores do
	// recorte. Recorte vazio devolve tabelas vazias e insights neutros.
	GetDashboardReport(filters *domain.ReportFilters) (*domain.DashboardReport, error)

	// GetAvailableFilters expõe as opções de filtro dos dados atuais
	GetAvailableFilters() (*domain.AvailableFilters, error)

	// ClearCache descarta os relatórios em cache
	ClearCache()
}

// Service implementa o motor de métricas sobre o Loader e o Aggregator.
// Todo o cálculo é síncrono e por requisição; o cache opcional é a única
// memória entre renderizações.
type Service struct {
	cfg              *config.Config
	loader           loading.Loader
	insightGenerator insighting.Generator
	reportCache      *cache.ReportCache
	useCache         bool
}

func NewService(cfg *config.Config, loader loading.Loader, insightGenerator insighting.Generator) Reporter {
	return &Service{
		cfg:              cfg,
		loader:           loader,
		insightGenerator: insightGenerator,
		useCache:         false, // Inicialmente não usa cache
	}
}

// WithCache habilita o cache de relatórios em memória
func (s *Service) WithCache(reportCache *cache.ReportCache) *Service {
	s.reportCache = reportCache
	s.useCache = reportCache != nil
	return s
}

func (s *Service) GetDashboardReport(filters *domain.ReportFilters) (*domain.DashboardReport, error) {
	if filters == nil {
		filters = &domain.ReportFilters{}
	}

	if err := filters.Validate(); err != nil {
		return nil, err
	}

	var cacheKey string
	if s.useCache {
		// A assinatura dos arquivos é barata de calcular e garante que uma
		// troca de arquivo invalide qualquer relatório antigo
		fingerprint, err := s.loader.Fingerprint()
		if err != nil {
			log.L.WithError(err).Warn("reporting: failed to fingerprint sources, bypassing cache")
		} else {
			cacheKey = cache.Key(fingerprint, filters)
			if report, ok := s.reportCache.Get(cacheKey); ok {
				log.L.WithField("filters", filters.CacheKey()).Debug("reporting: cache hit")
				return report, nil
			}
		}
	}

	dataset, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	report := s.buildReport(dataset, filters)

	if s.useCache && cacheKey != "" {
		s.reportCache.Set(cacheKey, dataset.Fingerprint, report)
	}

	return report, nil
}

func (s *Service) GetAvailableFilters() (*domain.AvailableFilters, error) {
	dataset, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	return s.loader.AvailableFilters(dataset), nil
}

func (s *Service) ClearCache() {
	if s.reportCache != nil {
		s.reportCache.Clear()
		log.L.Info("reporting: report cache cleared")
	}
}

// buildReport deriva todas as tabelas e indicadores do recorte filtrado
func (s *Service) buildReport(dataset *domain.Dataset, filters *domain.ReportFilters) *domain.DashboardReport {
	filtered := s.loader.Filter(dataset, filters)

	totals := aggregating.Totals(filtered.Channels)
	business := domain.ComputeBusinessKPIs(filtered.Business)

	report := &domain.DashboardReport{
		Filters:     filters,
		Summary:     domain.ComputeMetricSet(totals, business),
		Business:    &business,
		Channels:    []*domain.ChannelMetrics{},
		Campaigns:   []*domain.CampaignMetrics{},
		Daily:       []*domain.DailyCombined{},
		TimeSeries:  []*domain.TimeSeriesPoint{},
		RowErrors:   filtered.RowErrors,
		GeneratedAt: time.Now().UTC(),
	}

	for _, group := range aggregating.GroupByChannel(filtered.Channels) {
		report.Channels = append(report.Channels, domain.ComputeChannelMetrics(group.Channel, group.MarketingTotals))
	}

	for _, group := range aggregating.GroupByCampaign(filtered.Channels) {
		report.Campaigns = append(report.Campaigns, domain.ComputeCampaignMetrics(group.Channel, group.Campaign, group.MarketingTotals))
	}

	daily := aggregating.GroupByDate(filtered.Channels)
	report.Daily = aggregating.JoinWithBusiness(daily, filtered.Business)

	report.TimeSeries = buildTimeSeries(report.Daily)
	report.TopPerformer = domain.SelectTopPerformer(report.Channels)
	report.TopCampaigns = s.selectTopCampaigns(report.Campaigns)
	report.Correlations = buildCorrelations(report.Daily)
	report.Insights = s.insightGenerator.Generate(report)

	log.L.WithFields(log.Fields{
		"channels":  len(report.Channels),
		"campaigns": len(report.Campaigns),
		"days":      len(report.Daily),
	}).Info("reporting: dashboard report computed")

	return report
}

// buildTimeSeries calcula as médias móveis de 7 dias da série combinada.
// O ROAS móvel usa somas da janela, nunca média das razões diárias.
func buildTimeSeries(daily []*domain.DailyCombined) []*domain.TimeSeriesPoint {
	series := make([]*domain.TimeSeriesPoint, 0, len(daily))

	for i, day := range daily {
		point := &domain.TimeSeriesPoint{
			Date:         day.Date,
			TotalRevenue: day.TotalRevenue,
			Spend:        day.Spend,
			Revenue7dAvg: domain.MetricValue{Undefined: true},
			Spend7dAvg:   domain.MetricValue{Undefined: true},
			ROAS7d:       domain.MetricValue{Undefined: true},
		}

		if i+1 >= rollingWindowDays {
			window := daily[i+1-rollingWindowDays : i+1]

			revenues := make(stats.Float64Data, 0, rollingWindowDays)
			spends := make(stats.Float64Data, 0, rollingWindowDays)
			var attributed, spent float64
			for _, w := range window {
				revenues = append(revenues, w.TotalRevenue)
				spends = append(spends, w.Spend)
				attributed += w.AttributedRevenue
				spent += w.Spend
			}

			if mean, err := stats.Mean(revenues); err == nil {
				point.Revenue7dAvg = domain.MetricValue{Value: mean}.Rounded()
			}
			if mean, err := stats.Mean(spends); err == nil {
				point.Spend7dAvg = domain.MetricValue{Value: mean}.Rounded()
			}
			point.ROAS7d = domain.Ratio(attributed, spent)
		}

		series = append(series, point)
	}

	return series
}

// selectTopCampaigns ordena as campanhas pelos dois critérios do painel.
// Empates caem na ordenação estável da lista de entrada, que já é
// determinística (canal canônico + campanha alfabética).
func (s *Service) selectTopCampaigns(campaigns []*domain.CampaignMetrics) *domain.TopCampaigns {
	if len(campaigns) == 0 {
		return nil
	}

	limit := s.cfg.Insights.TopCampaignsLimit
	if limit <= 0 {
		limit = 5
	}

	byROAS := make([]*domain.CampaignMetrics, len(campaigns))
	copy(byROAS, campaigns)
	sort.SliceStable(byROAS, func(i, j int) bool {
		return byROAS[i].ROAS.Value > byROAS[j].ROAS.Value
	})

	byRevenue := make([]*domain.CampaignMetrics, len(campaigns))
	copy(byRevenue, campaigns)
	sort.SliceStable(byRevenue, func(i, j int) bool {
		return byRevenue[i].AttributedRevenue > byRevenue[j].AttributedRevenue
	})

	if len(byROAS) > limit {
		byROAS = byROAS[:limit]
	}
	if len(byRevenue) > limit {
		byRevenue = byRevenue[:limit]
	}

	return &domain.TopCampaigns{ByROAS: byROAS, ByRevenue: byRevenue}
}

// buildCorrelations calcula as correlações de Pearson entre investimento e
// resultado na série diária combinada
func buildCorrelations(daily []*domain.DailyCombined) *domain.CorrelationSummary {
	if len(daily) < 2 {
		return nil
	}

	spend := make(stats.Float64Data, 0, len(daily))
	impressions := make(stats.Float64Data, 0, len(daily))
	attributed := make(stats.Float64Data, 0, len(daily))
	revenue := make(stats.Float64Data, 0, len(daily))
	orders := make(stats.Float64Data, 0, len(daily))

	for _, day := range daily {
		spend = append(spend, day.Spend)
		impressions = append(impressions, float64(day.Impressions))
		attributed = append(attributed, day.AttributedRevenue)
		revenue = append(revenue, day.TotalRevenue)
		orders = append(orders, float64(day.Orders))
	}

	return &domain.CorrelationSummary{
		SpendVsRevenue:           pearson(spend, revenue),
		SpendVsOrders:            pearson(spend, orders),
		ImpressionsVsRevenue:     pearson(impressions, revenue),
		AttributedVsTotalRevenue: pearson(attributed, revenue),
	}
}

func pearson(a, b stats.Float64Data) domain.MetricValue {
	value, err := stats.Pearson(a, b)
	if err != nil || math.IsNaN(value) {
		// Série insuficiente: correlação indefinida
		return domain.MetricValue{Undefined: true}
	}

	return domain.MetricValue{Value: value}.Rounded()
}
