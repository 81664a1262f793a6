package dataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/pipeline"
	"github.com/xuri/excelize/v2"
)

// headerSearchRows limita quantas linhas do topo de cada aba são examinadas em busca do cabeçalho.
const headerSearchRows = 10

// excelTimestampLayout is the text form given to serial dates; the pipeline parses it back.
const excelTimestampLayout = "2006-01-02 15:04:05"

// readWorkbook procura, aba por aba, a primeira linha de cabeçalho com todas as colunas
// obrigatórias e lê as linhas abaixo dela com os valores crus das células.
func readWorkbook(ctx context.Context, path string) (entity.RawDataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return entity.RawDataset{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	var firstHeader []string
	for _, sheet := range f.GetSheetList() {
		ds, header, found, err := readSheet(ctx, f, sheet, date1904)
		if err != nil {
			return entity.RawDataset{}, err
		}
		if found {
			return ds, nil
		}
		if firstHeader == nil {
			firstHeader = header
		}
	}

	// nenhuma aba tem o cabeçalho completo: reporta o que falta na primeira
	if err := pipeline.CheckSchema(firstHeader); err != nil {
		return entity.RawDataset{}, fmt.Errorf("workbook %s: %w", path, err)
	}
	return entity.RawDataset{Columns: firstHeader}, nil
}

func readSheet(ctx context.Context, f *excelize.File, sheet string, date1904 bool) (entity.RawDataset, []string, bool, error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return entity.RawDataset{}, nil, false, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	var (
		ds         entity.RawDataset
		header     []string
		firstRow   []string
		cols       map[string]int
		rowsSeen   int
		headerDone bool
	)

	for rows.Next() {
		rowsSeen++
		if rowsSeen%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return entity.RawDataset{}, nil, false, fmt.Errorf("reading sheet %s: %w", sheet, err)
			}
		}

		row, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return entity.RawDataset{}, nil, false, fmt.Errorf("failed to read row %d of %s: %w", rowsSeen, sheet, err)
		}

		if !headerDone {
			if isBlank(row) {
				continue
			}
			if firstRow == nil {
				firstRow = row
			}
			if pipeline.CheckSchema(row) == nil {
				header = row
				cols = pipeline.ResolveColumns(row)
				headerDone = true
				continue
			}
			if rowsSeen >= headerSearchRows {
				break
			}
			continue
		}

		if isBlank(row) {
			continue
		}
		rec := recordFromRow(row, cols)
		rec.InvoiceDate = normalizeExcelDate(rec.InvoiceDate, date1904)
		ds.Records = append(ds.Records, rec)
	}
	if err := rows.Error(); err != nil {
		return entity.RawDataset{}, nil, false, fmt.Errorf("failed to iterate sheet %s: %w", sheet, err)
	}

	if !headerDone {
		return entity.RawDataset{}, firstRow, false, nil
	}
	ds.Columns = header
	return ds, header, true, nil
}

// normalizeExcelDate converte datas seriais do Excel em texto; outros valores passam intactos.
func normalizeExcelDate(value string, date1904 bool) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return value
	}
	return t.Format(excelTimestampLayout)
}
