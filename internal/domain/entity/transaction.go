package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction representa uma linha da planilha exatamente como foi lida.
// Todos os campos são texto; a validação acontece no pipeline.
type RawTransaction struct {
	InvoiceNo   string `json:"invoice_no"`
	StockCode   string `json:"stock_code"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	InvoiceDate string `json:"invoice_date"`
	CustomerID  string `json:"customer_id"`
	Country     string `json:"country"`
}

// RawDataset is the tabular input of one run: the header as found and the rows below it.
type RawDataset struct {
	Source  string           `json:"source"`
	Columns []string         `json:"columns"`
	Records []RawTransaction `json:"records"`
}

// CleanedTransaction is a row that passed every validation rule, with its derived fields.
type CleanedTransaction struct {
	InvoiceNo   string          `json:"invoice_no"`
	StockCode   string          `json:"stock_code"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	InvoiceDate time.Time       `json:"invoice_date"`
	CustomerID  string          `json:"customer_id,omitempty"` // vazio quando ausente
	Country     string          `json:"country"`
	SalesAmount decimal.Decimal `json:"sales_amount"`
	PeriodKey   string          `json:"period_key"`
}

// HasCustomer reports whether the row carries a customer identifier.
func (t CleanedTransaction) HasCustomer() bool {
	return t.CustomerID != ""
}

// CleaningReport resume quantas linhas cada regra descartou.
type CleaningReport struct {
	InputRows        int `json:"input_rows"`
	CleanedRows      int `json:"cleaned_rows"`
	DroppedCancelled int `json:"dropped_cancelled"`
	DroppedQuantity  int `json:"dropped_quantity"`
	DroppedPrice     int `json:"dropped_price"`
	DroppedDate      int `json:"dropped_date"`
}

// Dropped returns the total number of rows excluded from the cleaned set.
func (r CleaningReport) Dropped() int {
	return r.InputRows - r.CleanedRows
}
