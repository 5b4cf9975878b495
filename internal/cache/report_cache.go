package cache

import (
	"fmt"
	"sync"

	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
)

// ReportCache guarda relatórios computados em memória, chaveados pela
// assinatura dos arquivos de origem mais os filtros canônicos. Vive apenas
// durante o processo: a invalidação acontece quando a assinatura muda,
// por limpeza explícita ou por reinício.
type ReportCache struct {
	mu              sync.RWMutex
	entries         map[string]*domain.DashboardReport
	lastFingerprint string
}

func New() *ReportCache {
	return &ReportCache{entries: make(map[string]*domain.DashboardReport)}
}

// Key compõe a chave de cache de um relatório
func Key(fingerprint string, filters *domain.ReportFilters) string {
	return fmt.Sprintf("%s#%s", fingerprint, filters.CacheKey())
}

func (c *ReportCache) Get(key string) (*domain.DashboardReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	report, ok := c.entries[key]
	return report, ok
}

// Set armazena o relatório. Quando a assinatura dos arquivos muda, as
// entradas da assinatura anterior são descartadas para conter a memória.
func (c *ReportCache) Set(key, fingerprint string, report *domain.DashboardReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastFingerprint != "" && c.lastFingerprint != fingerprint {
		log.L.WithField("entries", len(c.entries)).Info("cache: source files changed, dropping stale reports")
		c.entries = make(map[string]*domain.DashboardReport)
	}

	c.lastFingerprint = fingerprint
	c.entries[key] = report
}

// Clear descarta todas as entradas (endpoint de limpeza explícita)
func (c *ReportCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*domain.DashboardReport)
	c.lastFingerprint = ""
}

// Len retorna a quantidade de relatórios em cache
func (c *ReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
