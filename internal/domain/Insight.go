package domain

// Categorias de insight gerados pelo painel
const (
	InsightCategoryPerformance = "performance"
	InsightCategoryEfficiency  = "efficiency"
	InsightCategoryTrend       = "trend"
	InsightCategoryAcquisition = "acquisition"
)

// Insight é uma sentença narrativa gerada a partir dos indicadores do
// período. Efêmero: regenerado a cada renderização, nunca persistido.
type Insight struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Metric      string  `json:"metric"`
	Value       float64 `json:"value"`
	// Insufficient indica que a regra não tinha dados suficientes e a
	// mensagem emitida é neutra
	Insufficient bool `json:"insufficient,omitempty"`
}
