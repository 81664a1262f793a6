package entity

import "github.com/shopspring/decimal"

// KeyMetrics contains the headline numbers of a run.
type KeyMetrics struct {
	Rows            int             `json:"rows"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	Invoices        int             `json:"invoices"`
	Customers       int             `json:"customers"`
	Products        int             `json:"products"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`
	TopCountry      string          `json:"top_country,omitempty"`
	TopCountrySales decimal.Decimal `json:"top_country_sales"`
	TopProduct      string          `json:"top_product,omitempty"`
	TopProductSales decimal.Decimal `json:"top_product_sales"`
	PeakPeriod      string          `json:"peak_period,omitempty"`
	PeakPeriodSales decimal.Decimal `json:"peak_period_sales"`
}

// Analysis agrupa todas as visões agregadas calculadas em uma execução.
type Analysis struct {
	Source                string           `json:"source"`
	Cleaning              CleaningReport   `json:"cleaning"`
	Metrics               KeyMetrics       `json:"metrics"`
	MonthlySales          []PeriodTotal    `json:"monthly_sales"`
	Trend                 Trend            `json:"trend"`
	TopProducts           []RankedValue    `json:"top_products"`
	TopProductsByQuantity []RankedValue    `json:"top_products_by_quantity"`
	CountrySales          []RankedValue    `json:"country_sales"`
	SeasonalAverages      []MonthAverage   `json:"seasonal_averages"`
	CustomerOrders        []CustomerOrders `json:"customer_orders"`
	Cohort                CohortMatrix     `json:"cohort"`
}
