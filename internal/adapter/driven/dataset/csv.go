package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/pipeline"
)

// readCSV lê um export CSV da mesma tabela. A primeira linha é o cabeçalho.
func readCSV(ctx context.Context, path string) (entity.RawDataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return entity.RawDataset{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return entity.RawDataset{}, fmt.Errorf("CSV file %s: %w", path, pipeline.CheckSchema(nil))
	}
	if err != nil {
		return entity.RawDataset{}, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if err := pipeline.CheckSchema(header); err != nil {
		return entity.RawDataset{}, fmt.Errorf("CSV file %s: %w", path, err)
	}

	cols := pipeline.ResolveColumns(header)
	ds := entity.RawDataset{Columns: header}
	for line := 2; ; line++ {
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return entity.RawDataset{}, fmt.Errorf("reading CSV: %w", err)
			}
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entity.RawDataset{}, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}
		ds.Records = append(ds.Records, recordFromRow(row, cols))
	}
	return ds, nil
}
