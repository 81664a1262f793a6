package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/pipeline"
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/repository"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
)

// ctxCheckEvery controla a frequência com que a leitura verifica o contexto.
const ctxCheckEvery = 1000

// DatasetRepositoryImpl implementa o DatasetRepository para arquivos xlsx e csv.
type DatasetRepositoryImpl struct {
	remote repository.ObjectSource
}

// NewDatasetRepository cria uma nova implementação do DatasetRepository.
// remote pode ser nil quando entradas s3:// não forem necessárias.
func NewDatasetRepository(remote repository.ObjectSource) repository.DatasetRepository {
	return &DatasetRepositoryImpl{remote: remote}
}

// Load lê a planilha de transações. Colunas obrigatórias ausentes resultam em *types.SchemaError.
func (r *DatasetRepositoryImpl) Load(ctx context.Context, source string, awsProfile string) (entity.RawDataset, error) {
	localPath := source
	if isS3URI(source) {
		if r.remote == nil {
			return entity.RawDataset{}, fmt.Errorf("%w: remote input %s not available", types.ErrUnsupportedInput, source)
		}
		path, cleanup, err := r.remote.Fetch(ctx, source, awsProfile)
		if err != nil {
			return entity.RawDataset{}, err
		}
		defer cleanup()
		localPath = path
	}

	fileInfo, err := os.Stat(localPath)
	if err != nil {
		return entity.RawDataset{}, fmt.Errorf("error accessing input file: %w", err)
	}
	if fileInfo.IsDir() {
		return entity.RawDataset{}, fmt.Errorf("%s is a directory, not a file", localPath)
	}

	var ds entity.RawDataset
	switch ext := strings.ToLower(filepath.Ext(remoteKeyOrPath(source))); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		ds, err = readWorkbook(ctx, localPath)
	case ".csv":
		ds, err = readCSV(ctx, localPath)
	default:
		return entity.RawDataset{}, fmt.Errorf("%w: %s", types.ErrUnsupportedInput, ext)
	}
	if err != nil {
		return entity.RawDataset{}, err
	}

	ds.Source = source
	return ds, nil
}

// recordFromRow monta uma RawTransaction a partir das células e do mapa de colunas.
func recordFromRow(row []string, cols map[string]int) entity.RawTransaction {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	return entity.RawTransaction{
		InvoiceNo:   cell(pipeline.ColInvoiceNo),
		StockCode:   cell(pipeline.ColStockCode),
		Description: cell(pipeline.ColDescription),
		Quantity:    cell(pipeline.ColQuantity),
		UnitPrice:   cell(pipeline.ColUnitPrice),
		InvoiceDate: cell(pipeline.ColInvoiceDate),
		CustomerID:  cell(pipeline.ColCustomerID),
		Country:     cell(pipeline.ColCountry),
	}
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isS3URI(source string) bool {
	return strings.HasPrefix(source, "s3://")
}

// remoteKeyOrPath devolve a parte do endereço que carrega a extensão do arquivo.
func remoteKeyOrPath(source string) string {
	if isS3URI(source) {
		return strings.TrimPrefix(source, "s3://")
	}
	return source
}
