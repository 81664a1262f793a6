package repository

import (
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(analysis *entity.Analysis, filename string, outputDir string) ([]string, error)
	ExportToJSON(analysis *entity.Analysis, filename string, outputDir string) (string, error)
	ExportToMarkdown(analysis *entity.Analysis, filename string, outputDir string) (string, error)
	ExportToPDF(analysis *entity.Analysis, artifacts []entity.Artifact, filename string, outputDir string) (string, error)

	// Manifest
	WriteManifest(manifest entity.RunManifest, outputDir string) (string, error)
}
