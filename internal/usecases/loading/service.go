package loading

import (
	"sort"
	"time"

	"github.com/vfg2006/marketing-dashboard-api/infrastructure/datasource"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
)

// Loader carrega os arquivos de origem e aplica os filtros do painel.
// Nenhuma transformação muta o dataset original: filtros produzem
// derivações novas.
type Loader interface {
	// Load lê todos os arquivos de origem com sucesso parcial por linha
	Load() (*domain.Dataset, error)

	// Filter aplica intervalo de datas (limites inclusivos), canal e
	// campanha, devolvendo um dataset derivado. Recorte vazio é válido.
	Filter(dataset *domain.Dataset, filters *domain.ReportFilters) *domain.Dataset

	// AvailableFilters descreve as opções de filtro presentes nos dados
	AvailableFilters(dataset *domain.Dataset) *domain.AvailableFilters

	// Fingerprint expõe a assinatura atual dos arquivos de origem
	Fingerprint() (string, error)
}

type Service struct {
	source datasource.MarketingDataSource
}

func NewService(source datasource.MarketingDataSource) Loader {
	return &Service{source: source}
}

func (s *Service) Load() (*domain.Dataset, error) {
	tables, channelErrors, err := s.source.LoadChannels()
	if err != nil {
		log.L.WithError(err).Error("loading: failed to load channel files")
		return nil, err
	}

	channels := aggregating.Merge(tables)

	business, businessErrors, err := s.source.LoadBusiness()
	if err != nil {
		log.L.WithError(err).Error("loading: failed to load business file")
		return nil, err
	}

	fingerprint, err := s.source.Fingerprint()
	if err != nil {
		log.L.WithError(err).Error("loading: failed to fingerprint source files")
		return nil, err
	}

	dataset := &domain.Dataset{
		Channels:    channels,
		Business:    business,
		RowErrors:   append(channelErrors, businessErrors...),
		Fingerprint: fingerprint,
	}

	log.L.WithFields(log.Fields{
		"channel_rows":  len(dataset.Channels),
		"business_rows": len(dataset.Business),
		"rejected_rows": len(dataset.RowErrors),
	}).Info("loading: dataset loaded")

	return dataset, nil
}

func (s *Service) Filter(dataset *domain.Dataset, filters *domain.ReportFilters) *domain.Dataset {
	if filters == nil {
		filters = &domain.ReportFilters{}
	}

	filtered := &domain.Dataset{
		RowErrors:   dataset.RowErrors,
		Fingerprint: dataset.Fingerprint,
	}

	for _, record := range dataset.Channels {
		if !inRange(record.Date, filters.StartDate, filters.EndDate) {
			continue
		}
		if filters.Channel != "" && record.Channel != filters.Channel {
			continue
		}
		if filters.Campaign != "" && record.Campaign != filters.Campaign {
			continue
		}

		filtered.Channels = append(filtered.Channels, record)
	}

	for _, record := range dataset.Business {
		if !inRange(record.Date, filters.StartDate, filters.EndDate) {
			continue
		}

		filtered.Business = append(filtered.Business, record)
	}

	return filtered
}

func (s *Service) AvailableFilters(dataset *domain.Dataset) *domain.AvailableFilters {
	available := &domain.AvailableFilters{Channels: []domain.Channel{}, Campaigns: []string{}}

	seenChannels := map[domain.Channel]bool{}
	seenCampaigns := map[string]bool{}

	consider := func(date time.Time) {
		if available.MinDate == nil || date.Before(*available.MinDate) {
			d := date
			available.MinDate = &d
		}
		if available.MaxDate == nil || date.After(*available.MaxDate) {
			d := date
			available.MaxDate = &d
		}
	}

	for _, record := range dataset.Channels {
		consider(record.Date)
		seenChannels[record.Channel] = true
		seenCampaigns[record.Campaign] = true
	}
	for _, record := range dataset.Business {
		consider(record.Date)
	}

	for _, channel := range domain.Channels() {
		if seenChannels[channel] {
			available.Channels = append(available.Channels, channel)
		}
	}

	for campaign := range seenCampaigns {
		available.Campaigns = append(available.Campaigns, campaign)
	}
	sort.Strings(available.Campaigns)

	return available
}

func (s *Service) Fingerprint() (string, error) {
	return s.source.Fingerprint()
}

// inRange testa o intervalo com limites inclusivos; extremos nulos são abertos
func inRange(date time.Time, start, end *time.Time) bool {
	if start != nil && date.Before(*start) {
		return false
	}
	if end != nil && date.After(*end) {
		return false
	}

	return true
}
