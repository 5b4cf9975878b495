package datasource

import (
	"fmt"

	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

// MarketingDataSource fornece os dados brutos do painel. A implementação
// padrão lê arquivos CSV locais; a interface existe para permitir outras
// origens e para os mocks de teste.
type MarketingDataSource interface {
	// LoadChannels carrega os três arquivos de canal, uma tabela por canal,
	// sem marcar a origem: a marcação acontece na mesclagem. Linhas com
	// células inválidas são devolvidas na lista de erros sem abortar a carga.
	LoadChannels() (map[domain.Channel][]*domain.ChannelRecord, []domain.RowError, error)

	// LoadBusiness carrega a série diária de resultados do negócio
	LoadBusiness() ([]*domain.BusinessRecord, []domain.RowError, error)

	// Fingerprint identifica o estado atual dos arquivos de origem
	// (caminho, tamanho e data de modificação) para compor chaves de cache
	Fingerprint() (string, error)
}

// SchemaError indica que uma coluna obrigatória está ausente em um arquivo.
// Diferente de erros de linha, um erro de esquema aborta a carga do arquivo.
type SchemaError struct {
	File   string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("coluna obrigatória %q ausente no arquivo %s", e.Column, e.File)
}
