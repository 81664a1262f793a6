package repository

import (
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
)

// ChartRepository renders named chart artifacts in one output format.
type ChartRepository interface {
	Format() entity.ArtifactFormat
	// Render grava o gráfico em outputDir e retorna o caminho absoluto.
	// Retorna types.ErrUnsupportedArtifact quando o formato não oferece esse gráfico.
	Render(name entity.ArtifactName, analysis *entity.Analysis, opts entity.RenderOptions, outputDir string) (string, error)
}
