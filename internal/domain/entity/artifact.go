package entity

// ArtifactName is the fixed logical name of a chart artifact. Downstream report assembly
// locates charts by this name.
type ArtifactName string

const (
	ArtifactMonthlySalesTrend     ArtifactName = "monthly_sales_trend"
	ArtifactTopProducts           ArtifactName = "top_products"
	ArtifactTopProductsByQuantity ArtifactName = "top_products_by_quantity"
	ArtifactSalesByCountry        ArtifactName = "sales_by_country"
	ArtifactSeasonalAnalysis      ArtifactName = "seasonal_analysis"
	ArtifactCustomerDistribution  ArtifactName = "customer_distribution"
	ArtifactCohortAnalysis        ArtifactName = "cohort_analysis"
	ArtifactExecutiveDashboard    ArtifactName = "executive_dashboard"
)

// AllArtifacts lists every logical chart in report order.
var AllArtifacts = []ArtifactName{
	ArtifactMonthlySalesTrend,
	ArtifactTopProducts,
	ArtifactTopProductsByQuantity,
	ArtifactSalesByCountry,
	ArtifactSeasonalAnalysis,
	ArtifactCustomerDistribution,
	ArtifactCohortAnalysis,
	ArtifactExecutiveDashboard,
}

var artifactTitles = map[ArtifactName]string{
	ArtifactMonthlySalesTrend:     "Monthly Sales Trend",
	ArtifactTopProducts:           "Top Products by Sales",
	ArtifactTopProductsByQuantity: "Top Products by Quantity Sold",
	ArtifactSalesByCountry:        "Sales by Country",
	ArtifactSeasonalAnalysis:      "Seasonal Analysis",
	ArtifactCustomerDistribution:  "Customer Order Distribution",
	ArtifactCohortAnalysis:        "Customer Cohort Analysis",
	ArtifactExecutiveDashboard:    "Executive Sales Dashboard",
}

// Title returns the human readable title of the artifact.
func (n ArtifactName) Title() string {
	if t, ok := artifactTitles[n]; ok {
		return t
	}
	return string(n)
}

// ArtifactFormat is the output format of a rendered chart.
type ArtifactFormat string

const (
	FormatPNG  ArtifactFormat = "png"
	FormatHTML ArtifactFormat = "html"
)

// RenderOptions ajusta detalhes de renderização comuns aos dois formatos.
type RenderOptions struct {
	// Bins é o número de faixas do histograma de pedidos por cliente; <= 0 usa o padrão.
	Bins int
	// Trend sobrepõe a linha de tendência à série mensal.
	Trend bool
}

// Artifact records the outcome of rendering one chart in one format.
type Artifact struct {
	Name    ArtifactName   `json:"name"`
	Format  ArtifactFormat `json:"format"`
	Path    string         `json:"path,omitempty"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
}

// FindArtifact returns the successful artifact with the given name and format, if any.
func FindArtifact(artifacts []Artifact, name ArtifactName, format ArtifactFormat) (Artifact, bool) {
	for _, a := range artifacts {
		if a.Name == name && a.Format == format && a.Success {
			return a, true
		}
	}
	return Artifact{}, false
}

// RunManifest descreve uma execução completa para consumo posterior.
type RunManifest struct {
	RunID       string         `json:"run_id"`
	Source      string         `json:"source"`
	GeneratedAt string         `json:"generated_at"`
	Cleaning    CleaningReport `json:"cleaning"`
	Artifacts   []Artifact     `json:"artifacts"`
	Reports     []Report       `json:"reports"`
}

// Report records the outcome of one report export. A CSV export yields one entry per file.
type Report struct {
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ReportPaths returns the paths of the reports written successfully, in order.
func ReportPaths(reports []Report) []string {
	var paths []string
	for _, r := range reports {
		if r.Success {
			paths = append(paths, r.Path)
		}
	}
	return paths
}
