package repository

import (
	"context"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
)

// DatasetRepository loads the raw transaction table from a spreadsheet.
type DatasetRepository interface {
	// Load lê o arquivo (caminho local ou s3://bucket/chave). awsProfile só é usado para s3://.
	Load(ctx context.Context, source string, awsProfile string) (entity.RawDataset, error)
}

// ObjectSource downloads remote objects to a local file.
type ObjectSource interface {
	// Fetch retorna o caminho local do objeto e uma função para removê-lo.
	Fetch(ctx context.Context, uri string, awsProfile string) (string, func(), error)
}
