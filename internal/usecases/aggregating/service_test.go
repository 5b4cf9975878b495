package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func record(d int, campaign string, impressions, clicks int64, spend, revenue float64) *domain.ChannelRecord {
	return &domain.ChannelRecord{
		Date:              day(d),
		Tactic:            "Prospecting",
		State:             "NY",
		Campaign:          campaign,
		Impressions:       impressions,
		Clicks:            clicks,
		Spend:             spend,
		AttributedRevenue: revenue,
	}
}

func TestMerge(t *testing.T) {
	tables := map[domain.Channel][]*domain.ChannelRecord{
		domain.ChannelTikTok:   {record(1, "Spark Ads", 100, 10, 80.00, 240.00)},
		domain.ChannelFacebook: {record(1, "Retargeting", 200, 20, 60.50, 240.00)},
		domain.ChannelGoogle: {
			record(1, "Search - Brand", 300, 30, 70.00, 300.00),
			record(2, "Search - Brand", 310, 31, 50.00, 180.00),
		},
	}

	merged := Merge(tables)

	assert.Len(t, merged, 4)

	// Ordem canônica das origens, estável dentro de cada arquivo
	assert.Equal(t, domain.ChannelFacebook, merged[0].Channel)
	assert.Equal(t, domain.ChannelGoogle, merged[1].Channel)
	assert.Equal(t, day(1), merged[1].Date)
	assert.Equal(t, domain.ChannelGoogle, merged[2].Channel)
	assert.Equal(t, day(2), merged[2].Date)
	assert.Equal(t, domain.ChannelTikTok, merged[3].Channel)

	// As tabelas de origem não são mutadas pelo merge
	assert.Equal(t, domain.Channel(""), tables[domain.ChannelFacebook][0].Channel)
}

func TestTotals_Associatividade(t *testing.T) {
	tables := map[domain.Channel][]*domain.ChannelRecord{
		domain.ChannelFacebook: {record(1, "Retargeting", 2000, 40, 60.50, 240.00)},
		domain.ChannelGoogle:   {record(1, "Search - Brand", 4000, 120, 120.00, 480.00)},
		domain.ChannelTikTok:   {record(1, "Spark Ads", 4000, 140, 80.00, 240.00)},
	}

	merged := Merge(tables)

	// Somar por canal e depois somar os canais equivale a somar tudo de uma vez
	overall := Totals(merged)

	var byChannel domain.MarketingTotals
	for _, group := range GroupByChannel(merged) {
		byChannel.Impressions += group.Impressions
		byChannel.Clicks += group.Clicks
		byChannel.Spend += group.Spend
		byChannel.AttributedRevenue += group.AttributedRevenue
	}

	assert.Equal(t, overall.Impressions, byChannel.Impressions)
	assert.Equal(t, overall.Clicks, byChannel.Clicks)
	assert.InDelta(t, overall.Spend, byChannel.Spend, 0.0001)
	assert.InDelta(t, overall.AttributedRevenue, byChannel.AttributedRevenue, 0.0001)

	assert.InDelta(t, 260.50, overall.Spend, 0.0001)
	assert.InDelta(t, 960.00, overall.AttributedRevenue, 0.0001)
	assert.Equal(t, 1, overall.ActiveDays)
}

func TestGroupByDate(t *testing.T) {
	records := []*domain.ChannelRecord{
		record(3, "A", 100, 10, 10, 40),
		record(1, "A", 100, 10, 10, 40),
		record(1, "B", 200, 20, 20, 60),
		record(2, "A", 100, 10, 10, 40),
	}

	groups := GroupByDate(records)

	assert.Len(t, groups, 3)
	assert.Equal(t, day(1), groups[0].Date)
	assert.Equal(t, day(2), groups[1].Date)
	assert.Equal(t, day(3), groups[2].Date)

	// Dia 1 soma as duas campanhas
	assert.Equal(t, int64(300), groups[0].Impressions)
	assert.InDelta(t, 30.0, groups[0].Spend, 0.0001)
	assert.Equal(t, 1, groups[0].ActiveDays)
}

func TestGroupByCampaign(t *testing.T) {
	tables := map[domain.Channel][]*domain.ChannelRecord{
		domain.ChannelGoogle: {
			record(1, "Search - Brand", 100, 10, 10, 40),
			record(2, "Display", 100, 10, 10, 40),
			record(2, "Search - Brand", 100, 10, 10, 40),
		},
		domain.ChannelFacebook: {record(1, "Retargeting", 100, 10, 10, 40)},
	}

	groups := GroupByCampaign(Merge(tables))

	assert.Len(t, groups, 3)
	assert.Equal(t, domain.ChannelFacebook, groups[0].Channel)
	assert.Equal(t, "Retargeting", groups[0].Campaign)
	assert.Equal(t, "Display", groups[1].Campaign)
	assert.Equal(t, "Search - Brand", groups[2].Campaign)

	// Search - Brand acumula dois dias
	assert.Equal(t, int64(200), groups[2].Impressions)
	assert.Equal(t, 2, groups[2].ActiveDays)
}

func TestJoinWithBusiness(t *testing.T) {
	daily := GroupByDate([]*domain.ChannelRecord{
		record(1, "A", 1000, 30, 260.50, 960.00),
		record(2, "A", 500, 10, 50.00, 100.00),
	})

	business := []*domain.BusinessRecord{
		{Date: day(1), Orders: 150, NewOrders: 90, NewCustomers: 98, TotalRevenue: 12750.00, GrossProfit: 5100.00, COGS: 7650.00},
		// dia 2 ausente: a série de negócio pode atrasar
	}

	combined := JoinWithBusiness(daily, business)

	assert.Len(t, combined, 2)

	first := combined[0]
	assert.Equal(t, int64(150), first.Orders)
	assert.Equal(t, int64(60), first.RepeatOrders)
	assert.InDelta(t, 2.659, first.CPA.Value, 0.001)
	assert.InDelta(t, 85.00, first.AOV.Value, 0.001)
	assert.InDelta(t, 3.0, first.CTR.Value, 0.01)

	// Dia sem negócio: campos zerados e razões dependentes indefinidas
	second := combined[1]
	assert.Zero(t, second.Orders)
	assert.Zero(t, second.TotalRevenue)
	assert.True(t, second.CPA.Undefined)
	assert.True(t, second.Efficiency.Undefined)
	assert.True(t, second.AOV.Undefined)
	assert.False(t, second.ROAS.Undefined)
	assert.InDelta(t, 2.0, second.ROAS.Value, 0.0001)
}
