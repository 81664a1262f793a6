package pipeline

import (
	"strings"

	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
)

// Canonical column names.
const (
	ColInvoiceNo   = "InvoiceNo"
	ColStockCode   = "StockCode"
	ColDescription = "Description"
	ColQuantity    = "Quantity"
	ColUnitPrice   = "UnitPrice"
	ColInvoiceDate = "InvoiceDate"
	ColCustomerID  = "CustomerID"
	ColCountry     = "Country"
)

// RequiredColumns must all be present in the input header. StockCode is optional.
var RequiredColumns = []string{
	ColInvoiceNo,
	ColQuantity,
	ColUnitPrice,
	ColInvoiceDate,
	ColCountry,
	ColCustomerID,
	ColDescription,
}

// columnAliases maps normalized header spellings to canonical column names.
var columnAliases = map[string]string{
	"invoiceno":   ColInvoiceNo,
	"invoice":     ColInvoiceNo,
	"invoiceid":   ColInvoiceNo,
	"stockcode":   ColStockCode,
	"description": ColDescription,
	"quantity":    ColQuantity,
	"unitprice":   ColUnitPrice,
	"price":       ColUnitPrice,
	"invoicedate": ColInvoiceDate,
	"customerid":  ColCustomerID,
	"country":     ColCountry,
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// CanonicalColumn returns the canonical name for a header cell, or "" when unknown.
func CanonicalColumn(header string) string {
	return columnAliases[normalizeHeader(header)]
}

// ResolveColumns maps canonical column names to their index in header. The first
// occurrence of a column wins.
func ResolveColumns(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := CanonicalColumn(h)
		if name == "" {
			continue
		}
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}

// CheckSchema returns a *types.SchemaError listing the required columns missing from header.
func CheckSchema(header []string) error {
	idx := ResolveColumns(header)
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &types.SchemaError{Missing: missing}
	}
	return nil
}
