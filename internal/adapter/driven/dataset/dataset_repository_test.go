package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var retailHeader = []interface{}{
	"InvoiceNo", "StockCode", "Description", "Quantity", "InvoiceDate", "UnitPrice", "CustomerID", "Country",
}

// buildWorkbook grava uma planilha de teste com as linhas informadas a partir de startRow.
func buildWorkbook(t *testing.T, sheet string, startRow int, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "online_retail.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadWorkbook(t *testing.T) {
	path := buildWorkbook(t, "Sheet1", 1, [][]interface{}{
		retailHeader,
		{"536365", "85123A", "WHITE HANGING HEART", 6, "2010-12-01 08:26:00", 2.55, 17850, "United Kingdom"},
		{"C536379", "D", "Discount", -1, "2010-12-01 09:41:00", 27.5, 14527, "United Kingdom"},
		{},
		{"536370", "22728", "ALARM CLOCK", 24, "2010-12-01 08:45:00", 3.75, "", "France"},
	})

	repo := NewDatasetRepository(nil)
	ds, err := repo.Load(context.Background(), path, "")
	require.NoError(t, err)

	assert.Equal(t, path, ds.Source)
	require.Len(t, ds.Records, 3)

	first := ds.Records[0]
	assert.Equal(t, "536365", first.InvoiceNo)
	assert.Equal(t, "WHITE HANGING HEART", first.Description)
	assert.Equal(t, "6", first.Quantity)
	assert.Equal(t, "2.55", first.UnitPrice)
	assert.Equal(t, "17850", first.CustomerID)
	assert.Equal(t, "United Kingdom", first.Country)

	assert.Equal(t, "C536379", ds.Records[1].InvoiceNo)
	assert.Equal(t, "", ds.Records[2].CustomerID)
	assert.Equal(t, "France", ds.Records[2].Country)
}

func TestLoadWorkbookHeaderBelowTitle(t *testing.T) {
	path := buildWorkbook(t, "Transactions", 1, [][]interface{}{
		{"Online Retail export"},
		{},
		retailHeader,
		{"536365", "85123A", "WHITE HANGING HEART", 6, "2010-12-01 08:26:00", 2.55, 17850, "United Kingdom"},
	})

	ds, err := NewDatasetRepository(nil).Load(context.Background(), path, "")
	require.NoError(t, err)
	require.Len(t, ds.Records, 1)
	assert.Equal(t, "536365", ds.Records[0].InvoiceNo)
}

func TestLoadWorkbookSerialDates(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &retailHeader))
	row := []interface{}{"536365", "85123A", "MUG", 6, time.Date(2011, 3, 4, 10, 30, 0, 0, time.UTC), 2.5, 17850, "France"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))

	path := filepath.Join(t.TempDir(), "dates.xlsx")
	require.NoError(t, f.SaveAs(path))

	ds, err := NewDatasetRepository(nil).Load(context.Background(), path, "")
	require.NoError(t, err)
	require.Len(t, ds.Records, 1)
	assert.Equal(t, "2011-03-04 10:30:00", ds.Records[0].InvoiceDate)
}

func TestLoadWorkbookMissingColumns(t *testing.T) {
	path := buildWorkbook(t, "Sheet1", 1, [][]interface{}{
		{"InvoiceNo", "Quantity", "UnitPrice", "InvoiceDate", "Country"},
		{"536365", 6, 2.55, "2010-12-01 08:26:00", "United Kingdom"},
	})

	_, err := NewDatasetRepository(nil).Load(context.Background(), path, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSchema)

	var schemaErr *types.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.ElementsMatch(t, []string{"CustomerID", "Description"}, schemaErr.Missing)
}

func TestLoadCSV(t *testing.T) {
	content := "\ufeffInvoice,StockCode,Description,Quantity,InvoiceDate,Price,Customer ID,Country\n" +
		"536365,85123A,\"WHITE HANGING HEART, T-LIGHT\",6,12/1/2010 8:26,2.55,17850.0,United Kingdom\n" +
		"\n" +
		"536366,22633,HAND WARMER,6,12/1/2010 8:28,1.85,,France\n"
	path := filepath.Join(t.TempDir(), "retail.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, err := NewDatasetRepository(nil).Load(context.Background(), path, "")
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	assert.Equal(t, "WHITE HANGING HEART, T-LIGHT", ds.Records[0].Description)
	assert.Equal(t, "2.55", ds.Records[0].UnitPrice)
	assert.Equal(t, "17850.0", ds.Records[0].CustomerID)
	assert.Equal(t, "12/1/2010 8:26", ds.Records[0].InvoiceDate)
	assert.Equal(t, "", ds.Records[1].CustomerID)
}

func TestLoadCSVMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retail.csv")
	require.NoError(t, os.WriteFile(path, []byte("InvoiceNo,Quantity\n1,2\n"), 0o644))

	_, err := NewDatasetRepository(nil).Load(context.Background(), path, "")
	assert.ErrorIs(t, err, types.ErrSchema)
}

func TestLoadErrors(t *testing.T) {
	repo := NewDatasetRepository(nil)
	ctx := context.Background()

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "retail.parquet")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		_, err := repo.Load(ctx, path, "")
		assert.ErrorIs(t, err, types.ErrUnsupportedInput)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := repo.Load(ctx, filepath.Join(t.TempDir(), "nope.xlsx"), "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := repo.Load(ctx, t.TempDir(), "")
		assert.Error(t, err)
	})

	t.Run("s3 without remote source", func(t *testing.T) {
		_, err := repo.Load(ctx, "s3://bucket/retail.xlsx", "")
		assert.ErrorIs(t, err, types.ErrUnsupportedInput)
	})
}

type fakeSource struct {
	path    string
	called  string
	profile string
	cleaned bool
}

func (f *fakeSource) Fetch(_ context.Context, uri string, awsProfile string) (string, func(), error) {
	f.called = uri
	f.profile = awsProfile
	return f.path, func() { f.cleaned = true }, nil
}

func TestLoadFromRemoteSource(t *testing.T) {
	local := buildWorkbook(t, "Sheet1", 1, [][]interface{}{
		retailHeader,
		{"536365", "85123A", "MUG", 6, "2010-12-01 08:26:00", 2.55, 17850, "United Kingdom"},
	})
	src := &fakeSource{path: local}

	ds, err := NewDatasetRepository(src).Load(context.Background(), "s3://sales/online_retail.xlsx", "analytics")
	require.NoError(t, err)

	assert.Equal(t, "s3://sales/online_retail.xlsx", src.called)
	assert.Equal(t, "analytics", src.profile)
	assert.True(t, src.cleaned)
	assert.Equal(t, "s3://sales/online_retail.xlsx", ds.Source)
	assert.Len(t, ds.Records, 1)
}

func TestNormalizeExcelDate(t *testing.T) {
	assert.Equal(t, "2010-12-01 08:26:00", normalizeExcelDate("2010-12-01 08:26:00", false))
	assert.Equal(t, "2011-03-04 10:30:00", normalizeExcelDate("40606.4375", false))
	assert.Equal(t, "", normalizeExcelDate("", false))
}
