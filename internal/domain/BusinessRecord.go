package domain

import (
	"time"
)

// BusinessRecord representa uma linha diária de resultados do negócio
type BusinessRecord struct {
	Date         time.Time `json:"date"`
	Orders       int64     `json:"orders"`
	NewOrders    int64     `json:"new_orders"`
	NewCustomers int64     `json:"new_customers"`
	TotalRevenue float64   `json:"total_revenue"`
	GrossProfit  float64   `json:"gross_profit"`
	COGS         float64   `json:"cogs"`
}

// RepeatOrders retorna a quantidade de pedidos recorrentes do dia
func (b *BusinessRecord) RepeatOrders() int64 {
	return b.Orders - b.NewOrders
}
