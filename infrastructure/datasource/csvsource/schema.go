package csvsource

import (
	"strings"
)

// Colunas obrigatórias dos arquivos de canal
var channelColumns = []string{
	"date", "tactic", "state", "campaign",
	"impressions", "clicks", "spend", "attributed_revenue",
}

// Colunas obrigatórias do arquivo de negócio
var businessColumns = []string{
	"date", "orders", "new_orders", "new_customers",
	"total_revenue", "gross_profit", "cogs",
}

// Alguns exports das plataformas usam variações de nome; normalizamos para
// o nome canônico antes de validar o esquema
var columnAliases = map[string]string{
	"impression":         "impressions",
	"attributed revenue": "attributed_revenue",
	"# of orders":        "orders",
	"# of new orders":    "new_orders",
	"new customers":      "new_customers",
	"total revenue":      "total_revenue",
	"gross profit":       "gross_profit",
}

func normalizeColumn(name string) string {
	name = strings.TrimSpace(name)
	if name == "COGS" {
		return "cogs"
	}

	lowered := strings.ToLower(name)
	if canonical, ok := columnAliases[lowered]; ok {
		return canonical
	}

	return lowered
}

// columnIndex mapeia nome canônico de coluna para a posição no cabeçalho.
// Colunas desconhecidas são ignoradas; a validação de obrigatórias é feita
// pelo chamador.
func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalizeColumn(name)] = i
	}

	return index
}

func missingColumn(index map[string]int, required []string) string {
	for _, column := range required {
		if _, ok := index[column]; !ok {
			return column
		}
	}

	return ""
}
