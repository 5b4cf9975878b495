package aggregating

import (
	"sort"
	"time"

	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

// Merge concatena as tabelas de canal na ordem canônica dos canais
// (Facebook, Google, TikTok), estável dentro de cada origem, marcando cada
// linha com o canal de onde veio. Nenhuma linha é contada duas vezes.
func Merge(tables map[domain.Channel][]*domain.ChannelRecord) []*domain.ChannelRecord {
	var merged []*domain.ChannelRecord

	for _, channel := range domain.Channels() {
		for _, record := range tables[channel] {
			tagged := *record
			tagged.Channel = channel
			merged = append(merged, &tagged)
		}
	}

	return merged
}

// Totals soma a tabela inteira. ActiveDays conta as datas distintas.
func Totals(records []*domain.ChannelRecord) domain.MarketingTotals {
	totals := domain.MarketingTotals{}
	days := map[time.Time]bool{}

	for _, record := range records {
		totals.Add(record)
		days[record.Date] = true
	}

	totals.ActiveDays = len(days)
	return totals
}

// GroupByDate agrupa por dia exato, ordenado por data crescente
func GroupByDate(records []*domain.ChannelRecord) []*domain.DailyTotals {
	byDate := map[time.Time]*domain.DailyTotals{}

	for _, record := range records {
		group, ok := byDate[record.Date]
		if !ok {
			group = &domain.DailyTotals{Date: record.Date}
			group.ActiveDays = 1
			byDate[record.Date] = group
		}

		group.Add(record)
	}

	groups := make([]*domain.DailyTotals, 0, len(byDate))
	for _, group := range byDate {
		groups = append(groups, group)
	}

	// ordem determinística
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date.Before(groups[j].Date)
	})

	return groups
}

// GroupByChannel agrupa por canal, na ordem canônica dos canais
func GroupByChannel(records []*domain.ChannelRecord) []*domain.ChannelTotals {
	byChannel := map[domain.Channel]*domain.ChannelTotals{}
	daysByChannel := map[domain.Channel]map[time.Time]bool{}

	for _, record := range records {
		group, ok := byChannel[record.Channel]
		if !ok {
			group = &domain.ChannelTotals{Channel: record.Channel}
			byChannel[record.Channel] = group
			daysByChannel[record.Channel] = map[time.Time]bool{}
		}

		group.Add(record)
		daysByChannel[record.Channel][record.Date] = true
	}

	var groups []*domain.ChannelTotals
	for _, channel := range domain.Channels() {
		if group, ok := byChannel[channel]; ok {
			group.ActiveDays = len(daysByChannel[channel])
			groups = append(groups, group)
		}
	}

	return groups
}

// GroupByCampaign agrupa por (canal, campanha), ordenado pela ordem canônica
// de canais e alfabeticamente por campanha dentro do canal
func GroupByCampaign(records []*domain.ChannelRecord) []*domain.CampaignTotals {
	type key struct {
		channel  domain.Channel
		campaign string
	}

	byCampaign := map[key]*domain.CampaignTotals{}
	daysByCampaign := map[key]map[time.Time]bool{}

	for _, record := range records {
		k := key{channel: record.Channel, campaign: record.Campaign}

		group, ok := byCampaign[k]
		if !ok {
			group = &domain.CampaignTotals{Channel: record.Channel, Campaign: record.Campaign}
			byCampaign[k] = group
			daysByCampaign[k] = map[time.Time]bool{}
		}

		group.Add(record)
		daysByCampaign[k][record.Date] = true
	}

	groups := make([]*domain.CampaignTotals, 0, len(byCampaign))
	for k, group := range byCampaign {
		group.ActiveDays = len(daysByCampaign[k])
		groups = append(groups, group)
	}

	channelOrder := map[domain.Channel]int{}
	for i, channel := range domain.Channels() {
		channelOrder[channel] = i
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Channel != groups[j].Channel {
			return channelOrder[groups[i].Channel] < channelOrder[groups[j].Channel]
		}
		return groups[i].Campaign < groups[j].Campaign
	})

	return groups
}

// JoinWithBusiness faz o left join diário a partir do lado de marketing.
// Dias com marketing e sem negócio ficam com os campos de negócio zerados:
// a série de negócio pode chegar com atraso e isso não é erro.
func JoinWithBusiness(daily []*domain.DailyTotals, business []*domain.BusinessRecord) []*domain.DailyCombined {
	businessByDate := make(map[time.Time]*domain.BusinessRecord, len(business))
	for _, record := range business {
		businessByDate[record.Date] = record
	}

	combined := make([]*domain.DailyCombined, 0, len(daily))
	for _, day := range daily {
		row := &domain.DailyCombined{
			Date:              day.Date,
			Impressions:       day.Impressions,
			Clicks:            day.Clicks,
			Spend:             day.Spend,
			AttributedRevenue: day.AttributedRevenue,
		}

		if b, ok := businessByDate[day.Date]; ok {
			row.Orders = b.Orders
			row.NewOrders = b.NewOrders
			row.NewCustomers = b.NewCustomers
			row.TotalRevenue = b.TotalRevenue
			row.GrossProfit = b.GrossProfit
			row.COGS = b.COGS
			row.RepeatOrders = b.RepeatOrders()
		}

		row.CTR = domain.PercentRatio(float64(row.Clicks), float64(row.Impressions)).Rounded()
		row.CPC = domain.Ratio(row.Spend, float64(row.Clicks)).Rounded()
		row.ROAS = domain.Ratio(row.AttributedRevenue, row.Spend)
		row.CPA = domain.Ratio(row.Spend, float64(row.NewCustomers))
		row.Efficiency = domain.Ratio(row.TotalRevenue, row.Spend)
		row.AOV = domain.Ratio(row.TotalRevenue, float64(row.Orders)).Rounded()
		row.GrossMargin = domain.PercentRatio(row.GrossProfit, row.TotalRevenue).Rounded()

		combined = append(combined, row)
	}

	return combined
}
