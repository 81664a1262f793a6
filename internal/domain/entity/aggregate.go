package entity

import "github.com/shopspring/decimal"

// PeriodTotal represents total sales for a YYYY-MM period.
type PeriodTotal struct {
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

// Trend is a least-squares line over the ordered period totals.
type Trend struct {
	Defined   bool    `json:"defined"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At retorna o valor projetado da linha de tendência para o índice informado.
func (t Trend) At(index int) float64 {
	return t.Intercept + t.Slope*float64(index)
}

// Dimension identifies the grouping key of a ranking query.
type Dimension string

const (
	DimensionProduct Dimension = "product"
	DimensionCountry Dimension = "country"
)

// Measure identifies the value reduced by a ranking query.
type Measure string

const (
	MeasureSales    Measure = "sales"
	MeasureQuantity Measure = "quantity"
)

// SortOrder defines the ordering of a ranking query.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// RankedValue is one (key, value) pair of a ranking.
type RankedValue struct {
	Key   string          `json:"key"`
	Value decimal.Decimal `json:"value"`
}

// MonthAverage representa a média de vendas por linha para um mês do calendário (1..12).
type MonthAverage struct {
	Month   int             `json:"month"`
	Average decimal.Decimal `json:"average"`
	Rows    int             `json:"rows"`
}

// CustomerOrders is the number of distinct invoices placed by one customer.
type CustomerOrders struct {
	CustomerID string `json:"customer_id"`
	Orders     int    `json:"orders"`
}

// OrderCounts extracts the plain order-count sequence used by histograms.
func OrderCounts(dist []CustomerOrders) []int {
	counts := make([]int, len(dist))
	for i, d := range dist {
		counts[i] = d.Orders
	}
	return counts
}
