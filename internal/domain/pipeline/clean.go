package pipeline

import (
	"math"
	"strings"
	"time"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// cancellationPrefix marca notas de cancelamento/devolução; são excluídas por inteiro.
const cancellationPrefix = "C"

var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// PeriodLayout formats a timestamp as its period key.
const PeriodLayout = "2006-01"

// timestampLayouts are tried in order. Timestamps are taken as provided, without zone conversion.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06 15:04",
	"1/2/06",
}

// Clean validates the raw rows and returns the cleaned collection in input order.
// Malformed rows are dropped and counted in the report; the only error is a schema error.
func (p *Pipeline) Clean(ds entity.RawDataset) (Cleaned, entity.CleaningReport, error) {
	report := entity.CleaningReport{InputRows: len(ds.Records)}

	if err := CheckSchema(ds.Columns); err != nil {
		return Cleaned{}, report, err
	}

	p.logInfo("Cleaning %d raw rows", report.InputRows)

	rows := make([]entity.CleanedTransaction, 0, len(ds.Records))
	for _, raw := range ds.Records {
		// o identificador guardado é o mesmo que passou pelo filtro de cancelamento
		invoiceNo := strings.TrimSpace(raw.InvoiceNo)
		if IsCancellation(invoiceNo) {
			report.DroppedCancelled++
			continue
		}
		qty, ok := ParseQuantity(raw.Quantity)
		if !ok {
			report.DroppedQuantity++
			continue
		}
		price, ok := ParseUnitPrice(raw.UnitPrice)
		if !ok {
			report.DroppedPrice++
			continue
		}
		ts, ok := ParseTimestamp(raw.InvoiceDate)
		if !ok {
			report.DroppedDate++
			continue
		}

		rows = append(rows, entity.CleanedTransaction{
			InvoiceNo:   invoiceNo,
			StockCode:   strings.TrimSpace(raw.StockCode),
			Description: strings.TrimSpace(raw.Description),
			Quantity:    qty,
			UnitPrice:   price,
			InvoiceDate: ts,
			CustomerID:  NormalizeCustomerID(raw.CustomerID),
			Country:     strings.TrimSpace(raw.Country),
			SalesAmount: price.Mul(decimal.NewFromInt(qty)),
			PeriodKey:   ts.Format(PeriodLayout),
		})
	}

	report.CleanedRows = len(rows)
	p.logInfo("Cleaned rows: %d (dropped %d: cancelled=%d quantity=%d price=%d date=%d)",
		report.CleanedRows, report.Dropped(),
		report.DroppedCancelled, report.DroppedQuantity, report.DroppedPrice, report.DroppedDate)

	return Cleaned{rows: rows}, report, nil
}

// IsCancellation reports whether the invoice identifier, as text, starts with the
// cancellation marker. Clean passes the trimmed identifier.
func IsCancellation(invoiceNo string) bool {
	return strings.HasPrefix(invoiceNo, cancellationPrefix)
}

// ParseQuantity accepts a strictly positive whole number that fits in an int64.
func ParseQuantity(s string) (int64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsInteger() || d.Sign() <= 0 {
		return 0, false
	}
	if d.GreaterThan(maxQuantity) {
		return 0, false
	}
	return d.IntPart(), true
}

// ParseUnitPrice accepts a strictly positive decimal.
func ParseUnitPrice(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.Sign() <= 0 {
		return decimal.Zero, false
	}
	return d, true
}

// ParseTimestamp tries every supported layout.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeCustomerID trims the value and drops a trailing ".0" left by spreadsheets that
// store identifiers as floats.
func NormalizeCustomerID(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	if whole, ok := strings.CutSuffix(s, ".0"); ok && whole != "" && isDigits(whole) {
		return whole
	}
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
