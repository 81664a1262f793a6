package pipeline

import (
	"fmt"
	"sort"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

// AggregateByPeriod sums sales per period key, ascending by period.
func AggregateByPeriod(c Cleaned) []entity.PeriodTotal {
	sums := make(map[string]decimal.Decimal)
	for r := range c.All() {
		sums[r.PeriodKey] = sums[r.PeriodKey].Add(r.SalesAmount)
	}

	periods := make([]string, 0, len(sums))
	for p := range sums {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	out := make([]entity.PeriodTotal, len(periods))
	for i, p := range periods {
		out[i] = entity.PeriodTotal{Period: p, Total: sums[p]}
	}
	return out
}

// FitTrend fits a least-squares line over (index, total). With a single period the
// trend is a flat line at that value; with none it is undefined.
func FitTrend(series []entity.PeriodTotal) entity.Trend {
	n := len(series)
	switch n {
	case 0:
		return entity.Trend{}
	case 1:
		return entity.Trend{Defined: true, Intercept: series[0].Total.InexactFloat64()}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range series {
		x := float64(i)
		y := p.Total.InexactFloat64()
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn

	return entity.Trend{Defined: true, Slope: slope, Intercept: intercept}
}

func dimensionKey(dim entity.Dimension) (func(entity.CleanedTransaction) string, error) {
	switch dim {
	case entity.DimensionProduct:
		return func(t entity.CleanedTransaction) string { return t.Description }, nil
	case entity.DimensionCountry:
		return func(t entity.CleanedTransaction) string { return t.Country }, nil
	}
	return nil, fmt.Errorf("%w: unknown dimension %q", types.ErrInvalidArgument, dim)
}

func measureValue(m entity.Measure) (func(entity.CleanedTransaction) decimal.Decimal, error) {
	switch m {
	case entity.MeasureSales:
		return func(t entity.CleanedTransaction) decimal.Decimal { return t.SalesAmount }, nil
	case entity.MeasureQuantity:
		return func(t entity.CleanedTransaction) decimal.Decimal { return decimal.NewFromInt(t.Quantity) }, nil
	}
	return nil, fmt.Errorf("%w: unknown measure %q", types.ErrInvalidArgument, m)
}

// Rank groups by dimension, reduces by measure and sorts every group by value. Groups with
// equal values keep the order in which they were first encountered. Rows with an empty
// key are not grouped.
func Rank(c Cleaned, dim entity.Dimension, measure entity.Measure, order entity.SortOrder) ([]entity.RankedValue, error) {
	keyOf, err := dimensionKey(dim)
	if err != nil {
		return nil, err
	}
	valueOf, err := measureValue(measure)
	if err != nil {
		return nil, err
	}
	if order != entity.Ascending && order != entity.Descending {
		return nil, fmt.Errorf("%w: unknown order %q", types.ErrInvalidArgument, order)
	}

	pos := make(map[string]int)
	ranked := []entity.RankedValue{}
	for r := range c.All() {
		key := keyOf(r)
		if key == "" {
			continue
		}
		i, ok := pos[key]
		if !ok {
			i = len(ranked)
			pos[key] = i
			ranked = append(ranked, entity.RankedValue{Key: key})
		}
		ranked[i].Value = ranked[i].Value.Add(valueOf(r))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		cmp := ranked[i].Value.Cmp(ranked[j].Value)
		if order == entity.Descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return ranked, nil
}

// TopN returns the first n entries of Rank. n must be positive.
func TopN(c Cleaned, dim entity.Dimension, measure entity.Measure, n int, order entity.SortOrder) ([]entity.RankedValue, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", types.ErrInvalidArgument, n)
	}
	ranked, err := Rank(c, dim, measure, order)
	if err != nil {
		return nil, err
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// SeasonalAverage computes the mean row sales per calendar month, merging years.
// Months without observations have no entry.
func SeasonalAverage(c Cleaned) []entity.MonthAverage {
	var sums [13]decimal.Decimal
	var counts [13]int
	for r := range c.All() {
		m := int(r.InvoiceDate.Month())
		sums[m] = sums[m].Add(r.SalesAmount)
		counts[m]++
	}

	out := []entity.MonthAverage{}
	for m := 1; m <= 12; m++ {
		if counts[m] == 0 {
			continue
		}
		out = append(out, entity.MonthAverage{
			Month:   m,
			Average: sums[m].Div(decimal.NewFromInt(int64(counts[m]))),
			Rows:    counts[m],
		})
	}
	return out
}

// CustomerOrderDistribution counts distinct invoices per customer, ordered by customer id.
// Rows without a customer are ignored here only.
func CustomerOrderDistribution(c Cleaned) []entity.CustomerOrders {
	invoices := make(map[string]map[string]struct{})
	for r := range c.All() {
		if !r.HasCustomer() {
			continue
		}
		set, ok := invoices[r.CustomerID]
		if !ok {
			set = make(map[string]struct{})
			invoices[r.CustomerID] = set
		}
		set[r.InvoiceNo] = struct{}{}
	}

	customers := make([]string, 0, len(invoices))
	for id := range invoices {
		customers = append(customers, id)
	}
	sort.Strings(customers)

	out := make([]entity.CustomerOrders, len(customers))
	for i, id := range customers {
		out[i] = entity.CustomerOrders{CustomerID: id, Orders: len(invoices[id])}
	}
	return out
}
