package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/repository"
)

// ManifestFilename é o nome fixo do manifesto de execução.
const ManifestFilename = "manifest.json"

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// csvView é uma tabela derivada da Analysis gravada em <filename>_<name>.csv.
type csvView struct {
	name   string
	header []string
	rows   func(a *entity.Analysis) [][]string
}

var csvViews = []csvView{
	{
		name:   "key_metrics",
		header: []string{"Metric", "Value"},
		rows:   metricRows,
	},
	{
		name:   "monthly_sales",
		header: []string{"Period", "Sales", "Trend"},
		rows: func(a *entity.Analysis) [][]string {
			out := make([][]string, len(a.MonthlySales))
			for i, p := range a.MonthlySales {
				trend := ""
				if a.Trend.Defined {
					trend = strconv.FormatFloat(a.Trend.At(i), 'f', 2, 64)
				}
				out[i] = []string{p.Period, p.Total.StringFixed(2), trend}
			}
			return out
		},
	},
	{
		name:   "top_products",
		header: []string{"Rank", "Product", "Sales"},
		rows: func(a *entity.Analysis) [][]string {
			return rankedRows(a.TopProducts, 2)
		},
	},
	{
		name:   "top_products_by_quantity",
		header: []string{"Rank", "Product", "Quantity"},
		rows: func(a *entity.Analysis) [][]string {
			return rankedRows(a.TopProductsByQuantity, 0)
		},
	},
	{
		name:   "country_sales",
		header: []string{"Rank", "Country", "Sales"},
		rows: func(a *entity.Analysis) [][]string {
			return rankedRows(a.CountrySales, 2)
		},
	},
	{
		name:   "seasonal_averages",
		header: []string{"Month", "Month Name", "Average Sales", "Transactions"},
		rows: func(a *entity.Analysis) [][]string {
			out := make([][]string, len(a.SeasonalAverages))
			for i, m := range a.SeasonalAverages {
				out[i] = []string{strconv.Itoa(m.Month), monthName(m.Month), m.Average.StringFixed(2), strconv.Itoa(m.Rows)}
			}
			return out
		},
	},
	{
		name:   "customer_orders",
		header: []string{"CustomerID", "Orders"},
		rows: func(a *entity.Analysis) [][]string {
			out := make([][]string, len(a.CustomerOrders))
			for i, c := range a.CustomerOrders {
				out[i] = []string{c.CustomerID, strconv.Itoa(c.Orders)}
			}
			return out
		},
	},
	{
		name:   "cohort",
		header: []string{"Cohort", "Activity", "Customers"},
		rows: func(a *entity.Analysis) [][]string {
			out := make([][]string, len(a.Cohort.Cells))
			for i, c := range a.Cohort.Cells {
				out[i] = []string{c.Cohort, c.Activity, strconv.Itoa(c.Customers)}
			}
			return out
		},
	},
}

// ExportToCSV grava uma planilha por visão agregada e retorna os caminhos gerados.
func (r *ExportRepositoryImpl) ExportToCSV(analysis *entity.Analysis, filename string, outputDir string) ([]string, error) {
	var paths []string
	for _, view := range csvViews {
		outputFilename, err := generateFilename(fmt.Sprintf("%s_%s", filename, view.name), outputDir, "csv")
		if err != nil {
			return paths, err
		}
		if err := writeCSV(outputFilename, view.header, view.rows(analysis)); err != nil {
			return paths, err
		}
		abs, err := filepath.Abs(outputFilename)
		if err != nil {
			return paths, err
		}
		paths = append(paths, abs)
	}
	return paths, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("error writing CSV rows: %w", err)
	}
	return nil
}

// ExportToJSON grava a Analysis completa.
func (r *ExportRepositoryImpl) ExportToJSON(analysis *entity.Analysis, filename string, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}
	if err := writeJSON(outputFilename, analysis); err != nil {
		return "", err
	}
	return filepath.Abs(outputFilename)
}

// WriteManifest grava o manifesto da execução em outputDir/manifest.json.
func (r *ExportRepositoryImpl) WriteManifest(manifest entity.RunManifest, outputDir string) (string, error) {
	outputFilename, err := generateFilename("manifest", outputDir, "json")
	if err != nil {
		return "", err
	}
	if err := writeJSON(outputFilename, manifest); err != nil {
		return "", err
	}
	return filepath.Abs(outputFilename)
}

func writeJSON(path string, v interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON data: %w", err)
	}
	return nil
}

// --- Funções Auxiliares ---

// generateFilename garante que o diretório exista e monta <dir>/<base>.<ext>.
// Os nomes são estáveis: cada execução sobrescreve os arquivos da anterior.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return filepath.Join(dir, fmt.Sprintf("%s.%s", base, ext)), nil
}

// ansiRegex casa sequências ANSI de cor/estilo. Colchetes comuns ("MUG [RED]") são texto.
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// stripANSI remove sequências de escape de terminal do texto vindo da planilha.
// Usado nas seções do PDF e nos rankings do Markdown.
func stripANSI(text string) string {
	return ansiRegex.ReplaceAllString(text, "")
}

func rankedRows(ranking []entity.RankedValue, places int32) [][]string {
	out := make([][]string, len(ranking))
	for i, rv := range ranking {
		out[i] = []string{strconv.Itoa(i + 1), rv.Key, rv.Value.StringFixed(places)}
	}
	return out
}

func metricRows(a *entity.Analysis) [][]string {
	m := a.Metrics
	return [][]string{
		{"Transactions", strconv.Itoa(m.Rows)},
		{"Total Sales", m.TotalSales.StringFixed(2)},
		{"Orders", strconv.Itoa(m.Invoices)},
		{"Customers", strconv.Itoa(m.Customers)},
		{"Products", strconv.Itoa(m.Products)},
		{"Average Order Value", m.AvgOrderValue.StringFixed(2)},
		{"Top Country", m.TopCountry},
		{"Top Country Sales", m.TopCountrySales.StringFixed(2)},
		{"Top Product", m.TopProduct},
		{"Top Product Sales", m.TopProductSales.StringFixed(2)},
		{"Peak Period", m.PeakPeriod},
		{"Peak Period Sales", m.PeakPeriodSales.StringFixed(2)},
	}
}

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return strconv.Itoa(month)
	}
	return monthNames[month-1]
}
