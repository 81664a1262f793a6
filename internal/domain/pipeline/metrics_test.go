package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyMetrics(t *testing.T) {
	km := KeyMetrics(sampleCleaned(t))

	assert.Equal(t, 6, km.Rows)
	assert.True(t, dec("115").Equal(km.TotalSales), "total %s", km.TotalSales)
	assert.Equal(t, 5, km.Invoices)
	assert.Equal(t, 3, km.Customers)
	assert.Equal(t, 3, km.Products)
	// 5 notas: (25 + 30 + 10 + 40 + 10) / 5
	assert.True(t, dec("23").Equal(km.AvgOrderValue), "avg %s", km.AvgOrderValue)

	// France e Germany empatam em 40
	assert.Equal(t, "France", km.TopCountry)
	assert.True(t, dec("40").Equal(km.TopCountrySales))
	assert.Equal(t, "Mug", km.TopProduct)
	assert.True(t, dec("50").Equal(km.TopProductSales))
	assert.Equal(t, "2024-02", km.PeakPeriod)
}

func TestKeyMetrics_AvgOrderValueIsPerInvoice(t *testing.T) {
	c := mustClean(t,
		raw("1", "1", "10", "2024-01-01", "UK", "A", "a"),
		raw("1", "1", "10", "2024-01-01", "UK", "A", "b"),
		raw("1", "1", "10", "2024-01-01", "UK", "A", "c"),
		raw("2", "1", "30", "2024-01-01", "UK", "B", "a"),
	)
	km := KeyMetrics(c)
	// por linha seria 15; por nota (30 + 30) / 2 = 30
	assert.True(t, dec("30").Equal(km.AvgOrderValue))
}

func TestKeyMetrics_TiesPickSmallestKey(t *testing.T) {
	c := mustClean(t,
		raw("1", "1", "50", "2024-02-01", "Spain", "A", "Zebra lamp"),
		raw("2", "1", "50", "2024-01-01", "Austria", "B", "Apple tray"),
	)
	km := KeyMetrics(c)
	assert.Equal(t, "Austria", km.TopCountry)
	assert.Equal(t, "Apple tray", km.TopProduct)
	assert.Equal(t, "2024-01", km.PeakPeriod)
}

func TestCohortMatrix(t *testing.T) {
	c := mustClean(t,
		raw("1", "1", "1", "2024-01-03", "UK", "A", "x"),
		raw("2", "1", "1", "2024-01-20", "UK", "B", "x"),
		raw("3", "1", "1", "2024-02-02", "UK", "A", "x"),
		raw("4", "1", "1", "2024-02-05", "UK", "C", "x"),
		raw("5", "1", "1", "2024-03-09", "UK", "A", "x"),
		raw("6", "1", "1", "2024-03-10", "UK", "C", "x"),
		raw("7", "1", "1", "2024-03-11", "UK", "", "x"),
	)

	m := CohortMatrix(c)
	assert.Equal(t, []string{"2024-01", "2024-02"}, m.Cohorts)
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, m.Periods)

	n, ok := m.Lookup("2024-01", "2024-01")
	require.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = m.Lookup("2024-01", "2024-02")
	require.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = m.Lookup("2024-02", "2024-03")
	require.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = m.Lookup("2024-02", "2024-01")
	assert.False(t, ok, "sparse cells must be absent")

	for _, cell := range m.Cells {
		assert.LessOrEqual(t, cell.Cohort, cell.Activity)
	}
}

func TestCohortMatrix_DiagonalMatchesFirstActiveCustomers(t *testing.T) {
	c := sampleCleaned(t)
	m := CohortMatrix(c)

	first := map[string]string{}
	for r := range c.All() {
		if !r.HasCustomer() {
			continue
		}
		if p, ok := first[r.CustomerID]; !ok || r.PeriodKey < p {
			first[r.CustomerID] = r.PeriodKey
		}
	}
	perCohort := map[string]int{}
	for _, p := range first {
		perCohort[p]++
	}

	for cohort, want := range perCohort {
		got, ok := m.Lookup(cohort, cohort)
		require.True(t, ok)
		assert.Equal(t, want, got, "cohort %s", cohort)
	}
}
