package domain

import (
	"fmt"
	"time"
)

// ReportFilters parametriza o recorte do relatório: intervalo de datas
// (limites inclusivos), canal e campanha. Campos vazios significam "todos".
type ReportFilters struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Channel   Channel    `json:"channel,omitempty"`
	Campaign  string     `json:"campaign,omitempty"`
}

// Validate garante que o intervalo de datas está em ordem
func (f *ReportFilters) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("a data de início não pode ser posterior à data de fim")
	}

	return nil
}

// CacheKey gera a representação canônica dos filtros para compor a chave de cache
func (f *ReportFilters) CacheKey() string {
	start, end := "", ""
	if f.StartDate != nil {
		start = f.StartDate.Format(time.DateOnly)
	}
	if f.EndDate != nil {
		end = f.EndDate.Format(time.DateOnly)
	}

	return fmt.Sprintf("%s|%s|%s|%s", start, end, f.Channel, f.Campaign)
}

// TopCampaigns lista as campanhas de melhor desempenho por critério
type TopCampaigns struct {
	ByROAS    []*CampaignMetrics `json:"by_roas"`
	ByRevenue []*CampaignMetrics `json:"by_revenue"`
}

// CorrelationSummary traz as correlações de Pearson entre investimento de
// marketing e resultados do negócio na série diária combinada
type CorrelationSummary struct {
	SpendVsRevenue           MetricValue `json:"spend_vs_revenue"`
	SpendVsOrders            MetricValue `json:"spend_vs_orders"`
	ImpressionsVsRevenue     MetricValue `json:"impressions_vs_revenue"`
	AttributedVsTotalRevenue MetricValue `json:"attributed_vs_total_revenue"`
}

// AvailableFilters descreve as opções de filtro presentes nos dados carregados
type AvailableFilters struct {
	MinDate   *time.Time `json:"min_date,omitempty"`
	MaxDate   *time.Time `json:"max_date,omitempty"`
	Channels  []Channel  `json:"channels"`
	Campaigns []string   `json:"campaigns"`
}

// DashboardReport é a resposta completa de uma renderização do painel
type DashboardReport struct {
	Filters      *ReportFilters      `json:"filters"`
	Summary      *MetricSet          `json:"summary"`
	Business     *BusinessKPIs       `json:"business"`
	Channels     []*ChannelMetrics   `json:"channels"`
	Campaigns    []*CampaignMetrics  `json:"campaigns"`
	Daily        []*DailyCombined    `json:"daily"`
	TimeSeries   []*TimeSeriesPoint  `json:"time_series"`
	TopPerformer *ChannelMetrics     `json:"top_performer,omitempty"`
	TopCampaigns *TopCampaigns       `json:"top_campaigns,omitempty"`
	Correlations *CorrelationSummary `json:"correlations,omitempty"`
	Insights     []*Insight          `json:"insights"`
	RowErrors    []RowError          `json:"row_errors,omitempty"`
	GeneratedAt  time.Time           `json:"generated_at"`
}

// SelectTopPerformer escolhe o canal de maior ROAS entre os que tiveram
// investimento. Empates são resolvidos pela maior receita atribuída e, por
// fim, pela ordem alfabética do nome do canal. A seleção é determinística.
func SelectTopPerformer(channels []*ChannelMetrics) *ChannelMetrics {
	var best *ChannelMetrics

	for _, candidate := range channels {
		if candidate.Spend <= 0 {
			continue
		}

		if best == nil {
			best = candidate
			continue
		}

		switch {
		case candidate.ROAS.Value > best.ROAS.Value:
			best = candidate
		case candidate.ROAS.Value == best.ROAS.Value &&
			candidate.AttributedRevenue > best.AttributedRevenue:
			best = candidate
		case candidate.ROAS.Value == best.ROAS.Value &&
			candidate.AttributedRevenue == best.AttributedRevenue &&
			candidate.Channel < best.Channel:
			best = candidate
		}
	}

	return best
}
