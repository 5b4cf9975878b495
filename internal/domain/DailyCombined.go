package domain

import (
	"time"
)

// DailyTotals são as somas de marketing de um único dia
type DailyTotals struct {
	Date time.Time `json:"date"`
	MarketingTotals
}

// ChannelTotals são as somas de marketing de um canal
type ChannelTotals struct {
	Channel Channel `json:"channel"`
	MarketingTotals
}

// CampaignTotals são as somas de marketing de uma campanha dentro de um canal
type CampaignTotals struct {
	Channel  Channel `json:"channel"`
	Campaign string  `json:"campaign"`
	MarketingTotals
}

// DailyCombined é o resultado do join diário entre marketing e negócio.
// Dias presentes no marketing e ausentes no negócio carregam campos de
// negócio zerados: a série de negócio pode chegar com atraso.
type DailyCombined struct {
	Date              time.Time   `json:"date"`
	Impressions       int64       `json:"impressions"`
	Clicks            int64       `json:"clicks"`
	Spend             float64     `json:"spend"`
	AttributedRevenue float64     `json:"attributed_revenue"`
	Orders            int64       `json:"orders"`
	NewOrders         int64       `json:"new_orders"`
	NewCustomers      int64       `json:"new_customers"`
	TotalRevenue      float64     `json:"total_revenue"`
	GrossProfit       float64     `json:"gross_profit"`
	COGS              float64     `json:"cogs"`
	RepeatOrders      int64       `json:"repeat_orders"`
	CTR               MetricValue `json:"ctr"`
	CPC               MetricValue `json:"cpc"`
	ROAS              MetricValue `json:"roas"`
	CPA               MetricValue `json:"cpa"`
	Efficiency        MetricValue `json:"efficiency"`
	AOV               MetricValue `json:"aov"`
	GrossMargin       MetricValue `json:"gross_margin"`
}

// TimeSeriesPoint é um ponto da série temporal com médias móveis de 7 dias
type TimeSeriesPoint struct {
	Date         time.Time   `json:"date"`
	TotalRevenue float64     `json:"total_revenue"`
	Spend        float64     `json:"spend"`
	Revenue7dAvg MetricValue `json:"revenue_7d_avg"`
	Spend7dAvg   MetricValue `json:"spend_7d_avg"`
	ROAS7d       MetricValue `json:"roas_7d"`
}
