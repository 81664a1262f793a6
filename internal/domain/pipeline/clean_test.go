package pipeline

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullHeader = []string{"InvoiceNo", "StockCode", "Description", "Quantity", "InvoiceDate", "UnitPrice", "CustomerID", "Country"}

func raw(inv, qty, price, date, country, cust, desc string) entity.RawTransaction {
	return entity.RawTransaction{
		InvoiceNo:   inv,
		StockCode:   "85123A",
		Description: desc,
		Quantity:    qty,
		UnitPrice:   price,
		InvoiceDate: date,
		CustomerID:  cust,
		Country:     country,
	}
}

func dataset(rows ...entity.RawTransaction) entity.RawDataset {
	return entity.RawDataset{Source: "test", Columns: fullHeader, Records: rows}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) LogInfo(format string, a ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, a...))
}

func TestClean_ConcreteScenario(t *testing.T) {
	ds := dataset(
		raw("1", "2", "5.0", "2024-01-10", "UK", "A", "Widget"),
		raw("C2", "1", "5.0", "2024-01-11", "UK", "B", "Widget"),
		raw("3", "-1", "5.0", "2024-01-12", "UK", "C", "Widget"),
	)

	cleaned, report, err := New(nil).Clean(ds)
	require.NoError(t, err)
	require.Equal(t, 1, cleaned.Len())

	row := cleaned.At(0)
	assert.Equal(t, "1", row.InvoiceNo)
	assert.Equal(t, int64(2), row.Quantity)
	assert.True(t, decimal.NewFromInt(10).Equal(row.SalesAmount))
	assert.Equal(t, "2024-01", row.PeriodKey)

	assert.Equal(t, 3, report.InputRows)
	assert.Equal(t, 1, report.CleanedRows)
	assert.Equal(t, 1, report.DroppedCancelled)
	assert.Equal(t, 1, report.DroppedQuantity)
	assert.Equal(t, 2, report.Dropped())

	periods := AggregateByPeriod(cleaned)
	require.Len(t, periods, 1)
	assert.Equal(t, "2024-01", periods[0].Period)
	assert.True(t, decimal.NewFromInt(10).Equal(periods[0].Total))
}

func TestClean_ValidationRules(t *testing.T) {
	tests := []struct {
		name   string
		row    entity.RawTransaction
		keep   bool
		reason func(entity.CleaningReport) int
	}{
		{"valid row", raw("536365", "6", "2.55", "2010-12-01 08:26:00", "United Kingdom", "17850", "WHITE HANGING HEART"), true, nil},
		{"cancellation", raw("C536379", "1", "27.50", "2010-12-01 09:41:00", "United Kingdom", "14527", "Discount"), false, func(r entity.CleaningReport) int { return r.DroppedCancelled }},
		{"cancellation with leading space", raw(" C536379", "1", "5.0", "2024-01-11", "UK", "14527", "Discount"), false, func(r entity.CleaningReport) int { return r.DroppedCancelled }},
		{"lowercase c is not a cancellation", raw("c536379", "1", "27.50", "2010-12-01", "UK", "14527", "Discount"), true, nil},
		{"zero quantity", raw("1", "0", "1.00", "2010-12-01", "UK", "1", "x"), false, func(r entity.CleaningReport) int { return r.DroppedQuantity }},
		{"non numeric quantity", raw("1", "six", "1.00", "2010-12-01", "UK", "1", "x"), false, func(r entity.CleaningReport) int { return r.DroppedQuantity }},
		{"fractional quantity", raw("1", "1.5", "1.00", "2010-12-01", "UK", "1", "x"), false, func(r entity.CleaningReport) int { return r.DroppedQuantity }},
		{"quantity beyond int64", raw("1", "18446744073709551615", "5.0", "2024-01-11", "UK", "1", "x"), false, func(r entity.CleaningReport) int { return r.DroppedQuantity }},
		{"quantity at int64 limit", raw("1", "9223372036854775807", "1.00", "2024-01-11", "UK", "1", "x"), true, nil},
		{"empty quantity", raw("1", "", "1.00", "2010-12-01", "UK", "1", "x"), false, func(r entity.CleaningReport) int { return r.DroppedQuantity }},
		{"zero price", raw("1", "1", "0", "2010-12-01", "UK", "1", "x"), false, func(r entity.CleaningReport) int { return r.DroppedPrice }},
		{"negative price", raw("A563185", "1", "-11062.06", "2011-08-12", "UK", "", "Adjust bad debt"), false, func(r entity.CleaningReport) int { return r.DroppedPrice }},
		{"non numeric price", raw("1", "1", "NaN", "2010-12-01", "UK", "1", "x"), false, func(r entity.CleaningReport) int { return r.DroppedPrice }},
		{"bad date", raw("1", "1", "1.00", "not a date", "UK", "1", "x"), false, func(r entity.CleaningReport) int { return r.DroppedDate }},
		{"empty date", raw("1", "1", "1.00", "", "UK", "1", "x"), false, func(r entity.CleaningReport) int { return r.DroppedDate }},
		{"slash date", raw("1", "1", "1.00", "12/1/2010 8:26", "UK", "1", "x"), true, nil},
		{"missing customer kept", raw("1", "1", "1.00", "2010-12-01", "UK", "", "x"), true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, report, err := New(nil).Clean(dataset(tt.row))
			require.NoError(t, err)
			if tt.keep {
				assert.Equal(t, 1, cleaned.Len())
				return
			}
			assert.Equal(t, 0, cleaned.Len())
			assert.Equal(t, 1, tt.reason(report))
		})
	}
}

func TestClean_OutputSatisfiesPredicatesAndKeepsOrder(t *testing.T) {
	ds := dataset(
		raw("10", "3", "1.25", "2011-03-02", "France", "12680", "Alarm clock"),
		raw("C11", "3", "1.25", "2011-03-02", "France", "12680", "Alarm clock"),
		raw("12", "1", "0.85", "2011-01-15 10:00:00", "Germany", "12662", "Lunch bag"),
		raw("13", "-4", "0.85", "2011-01-15", "Germany", "12662", "Lunch bag"),
		raw("14", "12", "0.42", "2011-02-28T23:59:59", "Spain", "", "Paper chain"),
		raw(" C15", "1", "5.0", "2011-02-28", "Spain", "12557", "Paper chain"),
		raw("16", "18446744073709551615", "5.0", "2011-02-28", "Spain", "12557", "Paper chain"),
		raw(" 17 ", "2", "1.00", "2011-03-01", "Spain", "12557", "Paper chain"),
	)

	cleaned, _, err := New(nil).Clean(ds)
	require.NoError(t, err)
	require.LessOrEqual(t, cleaned.Len(), len(ds.Records))

	var invoices []string
	for r := range cleaned.All() {
		invoices = append(invoices, r.InvoiceNo)
		assert.False(t, IsCancellation(r.InvoiceNo))
		assert.Greater(t, r.Quantity, int64(0))
		assert.True(t, r.UnitPrice.IsPositive())
		assert.False(t, r.InvoiceDate.IsZero())
		assert.True(t, r.UnitPrice.Mul(decimal.NewFromInt(r.Quantity)).Equal(r.SalesAmount))
	}
	assert.Equal(t, []string{"10", "12", "14", "17"}, invoices)
}

func TestClean_DoesNotMutateInput(t *testing.T) {
	ds := dataset(raw(" 7 ", " 2 ", "3", "2024-05-01", " UK ", "42.0", " Mug "))
	before := ds.Records[0]

	cleaned, _, err := New(nil).Clean(ds)
	require.NoError(t, err)
	require.Equal(t, 1, cleaned.Len())

	assert.Equal(t, before, ds.Records[0])
	assert.Equal(t, "7", cleaned.At(0).InvoiceNo)
	assert.Equal(t, "42", cleaned.At(0).CustomerID)
	assert.Equal(t, "UK", cleaned.At(0).Country)
}

func TestClean_SchemaError(t *testing.T) {
	ds := entity.RawDataset{Columns: []string{"InvoiceNo", "Quantity", "InvoiceDate"}}

	_, _, err := New(nil).Clean(ds)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrSchema))

	var schemaErr *types.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"UnitPrice", "Country", "CustomerID", "Description"}, schemaErr.Missing)
}

func TestClean_EmptyInput(t *testing.T) {
	cleaned, report, err := New(nil).Clean(dataset())
	require.NoError(t, err)
	assert.Equal(t, 0, cleaned.Len())
	assert.Equal(t, 0, report.InputRows)
}

func TestClean_ReportsProgress(t *testing.T) {
	logger := &recordingLogger{}
	_, _, err := New(logger).Clean(dataset(
		raw("1", "1", "1", "2024-01-01", "UK", "A", "x"),
		raw("C2", "1", "1", "2024-01-01", "UK", "A", "x"),
	))
	require.NoError(t, err)
	require.Len(t, logger.lines, 2)
	assert.Contains(t, logger.lines[0], "2 raw rows")
	assert.Contains(t, logger.lines[1], "Cleaned rows: 1")
}

func TestCheckSchema_Aliases(t *testing.T) {
	header := []string{"Invoice", "StockCode", "Description", "Quantity", "InvoiceDate", "Price", "Customer ID", "Country"}
	assert.NoError(t, CheckSchema(header))

	idx := ResolveColumns(header)
	assert.Equal(t, 0, idx[ColInvoiceNo])
	assert.Equal(t, 5, idx[ColUnitPrice])
	assert.Equal(t, 6, idx[ColCustomerID])
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"6", 6, true},
		{" 12 ", 12, true},
		{"3.0", 3, true},
		{"9223372036854775807", math.MaxInt64, true},
		{"9223372036854775808", 0, false},
		{"18446744073709551615", 0, false},
		{"-1", 0, false},
		{"2.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseQuantity(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCustomerID(t *testing.T) {
	assert.Equal(t, "17850", NormalizeCustomerID("17850.0"))
	assert.Equal(t, "17850", NormalizeCustomerID(" 17850 "))
	assert.Equal(t, "A.0", NormalizeCustomerID("A.0"))
	assert.Equal(t, "", NormalizeCustomerID("NaN"))
	assert.Equal(t, "", NormalizeCustomerID(""))
}
