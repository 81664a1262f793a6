package pipeline

import (
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// KeyMetrics computes the headline numbers. Ties on the "top" fields go to the
// lexicographically smallest key.
func KeyMetrics(c Cleaned) entity.KeyMetrics {
	km := entity.KeyMetrics{Rows: c.Len()}

	invoiceSales := make(map[string]decimal.Decimal)
	customers := make(map[string]struct{})
	products := make(map[string]struct{})
	countrySales := make(map[string]decimal.Decimal)
	productSales := make(map[string]decimal.Decimal)
	periodSales := make(map[string]decimal.Decimal)

	for r := range c.All() {
		km.TotalSales = km.TotalSales.Add(r.SalesAmount)
		invoiceSales[r.InvoiceNo] = invoiceSales[r.InvoiceNo].Add(r.SalesAmount)
		periodSales[r.PeriodKey] = periodSales[r.PeriodKey].Add(r.SalesAmount)
		if r.HasCustomer() {
			customers[r.CustomerID] = struct{}{}
		}
		if r.Description != "" {
			products[r.Description] = struct{}{}
			productSales[r.Description] = productSales[r.Description].Add(r.SalesAmount)
		}
		if r.Country != "" {
			countrySales[r.Country] = countrySales[r.Country].Add(r.SalesAmount)
		}
	}

	km.Invoices = len(invoiceSales)
	km.Customers = len(customers)
	km.Products = len(products)

	// média por nota fiscal, não por linha
	if km.Invoices > 0 {
		sum := decimal.Zero
		for _, v := range invoiceSales {
			sum = sum.Add(v)
		}
		km.AvgOrderValue = sum.Div(decimal.NewFromInt(int64(km.Invoices)))
	}

	km.TopCountry, km.TopCountrySales = maxKey(countrySales)
	km.TopProduct, km.TopProductSales = maxKey(productSales)
	km.PeakPeriod, km.PeakPeriodSales = maxKey(periodSales)

	return km
}

func maxKey(values map[string]decimal.Decimal) (string, decimal.Decimal) {
	bestKey := ""
	best := decimal.Zero
	found := false
	for k, v := range values {
		cmp := v.Cmp(best)
		if !found || cmp > 0 || (cmp == 0 && k < bestKey) {
			bestKey, best, found = k, v, true
		}
	}
	return bestKey, best
}
