package domain

import (
	"github.com/vfg2006/marketing-dashboard-api/pkg/utils"
)

// MetricValue carrega o valor de um indicador junto com a marcação de
// indefinido. Divisão por zero nunca gera erro nem NaN: o valor fica em 0
// e Undefined é marcado para o consumidor decidir como exibir.
type MetricValue struct {
	Value     float64 `json:"value"`
	Undefined bool    `json:"undefined,omitempty"`
}

// Ratio calcula numerador/denominador com a política de divisão por zero
func Ratio(numerator, denominator float64) MetricValue {
	if denominator <= 0 {
		return MetricValue{Value: 0, Undefined: true}
	}

	return MetricValue{Value: numerator / denominator}
}

// PercentRatio calcula a razão expressa em percentual (ex.: CTR)
func PercentRatio(numerator, denominator float64) MetricValue {
	mv := Ratio(numerator, denominator)
	if mv.Undefined {
		return mv
	}

	mv.Value *= 100
	return mv
}

// Rounded retorna o valor arredondado para duas casas decimais
func (m MetricValue) Rounded() MetricValue {
	if m.Undefined {
		return m
	}

	return MetricValue{Value: utils.RoundWithTwoDecimalPlace(m.Value)}
}

// MetricSet agrega os indicadores principais de marketing de uma janela de
// filtro. Todas as razões são calculadas sobre somas de numerador e
// denominador, nunca como média de razões por linha.
type MetricSet struct {
	Spend      float64     `json:"spend"`
	Revenue    float64     `json:"revenue"`
	ROAS       MetricValue `json:"roas"`
	CPA        MetricValue `json:"cpa"`
	CTR        MetricValue `json:"ctr"`
	Efficiency MetricValue `json:"efficiency"`
}

// MarketingTotals guarda as somas brutas de um agrupamento de marketing
type MarketingTotals struct {
	Impressions       int64   `json:"impressions"`
	Clicks            int64   `json:"clicks"`
	Spend             float64 `json:"spend"`
	AttributedRevenue float64 `json:"attributed_revenue"`
	ActiveDays        int     `json:"active_days"`
}

// Add acumula um registro de canal nas somas do agrupamento
func (t *MarketingTotals) Add(record *ChannelRecord) {
	t.Impressions += record.Impressions
	t.Clicks += record.Clicks
	t.Spend += record.Spend
	t.AttributedRevenue += record.AttributedRevenue
}

// ChannelMetrics são os indicadores derivados de um canal no período filtrado
type ChannelMetrics struct {
	Channel           Channel     `json:"channel"`
	Impressions       int64       `json:"impressions"`
	Clicks            int64       `json:"clicks"`
	Spend             float64     `json:"spend"`
	AttributedRevenue float64     `json:"attributed_revenue"`
	ActiveDays        int         `json:"active_days"`
	CTR               MetricValue `json:"ctr"`
	CPC               MetricValue `json:"cpc"`
	ROAS              MetricValue `json:"roas"`
	AvgDailySpend     MetricValue `json:"avg_daily_spend"`
}

// CampaignMetrics são os indicadores derivados de uma campanha de um canal
type CampaignMetrics struct {
	Channel           Channel     `json:"channel"`
	Campaign          string      `json:"campaign"`
	Impressions       int64       `json:"impressions"`
	Clicks            int64       `json:"clicks"`
	Spend             float64     `json:"spend"`
	AttributedRevenue float64     `json:"attributed_revenue"`
	ActiveDays        int         `json:"active_days"`
	CTR               MetricValue `json:"ctr"`
	CPC               MetricValue `json:"cpc"`
	ROAS              MetricValue `json:"roas"`
}

// BusinessKPIs resume a série de negócio do período filtrado
type BusinessKPIs struct {
	TotalRevenue    float64     `json:"total_revenue"`
	GrossProfit     float64     `json:"gross_profit"`
	Orders          int64       `json:"orders"`
	NewOrders       int64       `json:"new_orders"`
	NewCustomers    int64       `json:"new_customers"`
	RepeatOrders    int64       `json:"repeat_orders"`
	AOV             MetricValue `json:"aov"`
	GrossMargin     MetricValue `json:"gross_margin"`
	AvgDailyRevenue MetricValue `json:"avg_daily_revenue"`
}

// ComputeMetricSet calcula o conjunto principal de KPIs a partir das somas
// de marketing e de negócio do mesmo período
func ComputeMetricSet(marketing MarketingTotals, business BusinessKPIs) *MetricSet {
	return &MetricSet{
		Spend:      marketing.Spend,
		Revenue:    marketing.AttributedRevenue,
		ROAS:       Ratio(marketing.AttributedRevenue, marketing.Spend),
		CPA:        Ratio(marketing.Spend, float64(business.NewCustomers)),
		CTR:        PercentRatio(float64(marketing.Clicks), float64(marketing.Impressions)),
		Efficiency: Ratio(business.TotalRevenue, marketing.Spend),
	}
}

// ComputeChannelMetrics deriva os indicadores de um canal das somas brutas
func ComputeChannelMetrics(channel Channel, totals MarketingTotals) *ChannelMetrics {
	return &ChannelMetrics{
		Channel:           channel,
		Impressions:       totals.Impressions,
		Clicks:            totals.Clicks,
		Spend:             totals.Spend,
		AttributedRevenue: totals.AttributedRevenue,
		ActiveDays:        totals.ActiveDays,
		CTR:               PercentRatio(float64(totals.Clicks), float64(totals.Impressions)).Rounded(),
		CPC:               Ratio(totals.Spend, float64(totals.Clicks)).Rounded(),
		ROAS:              Ratio(totals.AttributedRevenue, totals.Spend),
		AvgDailySpend:     Ratio(totals.Spend, float64(totals.ActiveDays)).Rounded(),
	}
}

// ComputeCampaignMetrics deriva os indicadores de uma campanha das somas brutas
func ComputeCampaignMetrics(channel Channel, campaign string, totals MarketingTotals) *CampaignMetrics {
	return &CampaignMetrics{
		Channel:           channel,
		Campaign:          campaign,
		Impressions:       totals.Impressions,
		Clicks:            totals.Clicks,
		Spend:             totals.Spend,
		AttributedRevenue: totals.AttributedRevenue,
		ActiveDays:        totals.ActiveDays,
		CTR:               PercentRatio(float64(totals.Clicks), float64(totals.Impressions)).Rounded(),
		CPC:               Ratio(totals.Spend, float64(totals.Clicks)).Rounded(),
		ROAS:              Ratio(totals.AttributedRevenue, totals.Spend),
	}
}

// ComputeBusinessKPIs resume a série de negócio do período
func ComputeBusinessKPIs(records []*BusinessRecord) BusinessKPIs {
	kpis := BusinessKPIs{}

	for _, record := range records {
		kpis.TotalRevenue += record.TotalRevenue
		kpis.GrossProfit += record.GrossProfit
		kpis.Orders += record.Orders
		kpis.NewOrders += record.NewOrders
		kpis.NewCustomers += record.NewCustomers
	}

	kpis.RepeatOrders = kpis.Orders - kpis.NewOrders
	kpis.AOV = Ratio(kpis.TotalRevenue, float64(kpis.Orders)).Rounded()
	kpis.GrossMargin = PercentRatio(kpis.GrossProfit, kpis.TotalRevenue).Rounded()
	kpis.AvgDailyRevenue = Ratio(kpis.TotalRevenue, float64(len(records))).Rounded()

	return kpis
}
