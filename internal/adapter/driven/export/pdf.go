package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

const (
	pageBottom  = 270.0
	imageWidth  = 190.0
	imageHeight = 95.0
)

// reportCharts são os gráficos estáticos incorporados ao PDF, na ordem do relatório.
var reportCharts = []entity.ArtifactName{
	entity.ArtifactMonthlySalesTrend,
	entity.ArtifactTopProducts,
	entity.ArtifactTopProductsByQuantity,
	entity.ArtifactSalesByCountry,
	entity.ArtifactSeasonalAnalysis,
	entity.ArtifactCustomerDistribution,
	entity.ArtifactCohortAnalysis,
}

// ExportToPDF monta o relatório narrativo. Gráficos que falharam viram um aviso no lugar da imagem.
func (r *ExportRepositoryImpl) ExportToPDF(analysis *entity.Analysis, artifacts []entity.Artifact, filename string, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	generated := time.Now().Format("2006-01-02")
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Retail Sales Dashboard | %s", generated)), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	sectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
	}

	drawSection := func(title string, content string) {
		content = stripANSI(content)
		if content == "" {
			return
		}
		sectionTitle(title)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 14, tr("  Retail Sales Analysis Report"), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Source: %s", analysis.Source)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	drawSection("Executive Summary", executiveSummary(analysis))
	drawSection("Data Quality", dataQuality(analysis.Cleaning))

	for _, name := range reportCharts {
		if pdf.GetY()+imageHeight+20 > pageBottom {
			pdf.AddPage()
		}
		sectionTitle(name.Title())

		artifact, ok := entity.FindArtifact(artifacts, name, entity.FormatPNG)
		if !ok {
			pdf.SetFont("Arial", "I", 10)
			pdf.SetTextColor(150, 150, 150)
			pdf.MultiCell(190, 6, tr(PlaceholderText(name)), "", "L", false)
			pdf.Ln(8)
			continue
		}

		pdf.ImageOptions(artifact.Path, pdf.GetX(), pdf.GetY(), imageWidth, imageHeight, false,
			gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
		pdf.SetY(pdf.GetY() + imageHeight + 6)
	}

	if pdf.GetY()+60 > pageBottom {
		pdf.AddPage()
	}
	drawSection("Interactive Charts", interactiveListing(artifacts))
	drawSection("Conclusions", conclusions(analysis))

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// PlaceholderText é o texto exibido no lugar de um gráfico indisponível.
func PlaceholderText(name entity.ArtifactName) string {
	return fmt.Sprintf("[Visualization not available: %s]", name.Title())
}

func executiveSummary(a *entity.Analysis) string {
	m := a.Metrics
	if m.Rows == 0 {
		return "No valid transactions were found in the input."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total sales: £%s across %d orders from %d customers.\n", m.TotalSales.StringFixed(2), m.Invoices, m.Customers)
	fmt.Fprintf(&b, "Average order value: £%s.\n", m.AvgOrderValue.StringFixed(2))
	fmt.Fprintf(&b, "Distinct products sold: %d.\n", m.Products)
	if m.TopCountry != "" {
		fmt.Fprintf(&b, "Top market: %s with £%s in sales.\n", m.TopCountry, m.TopCountrySales.StringFixed(2))
	}
	if m.TopProduct != "" {
		fmt.Fprintf(&b, "Best-selling product: %s (£%s).\n", m.TopProduct, m.TopProductSales.StringFixed(2))
	}
	if m.PeakPeriod != "" {
		fmt.Fprintf(&b, "Peak month: %s with £%s.", m.PeakPeriod, m.PeakPeriodSales.StringFixed(2))
	}
	return strings.TrimSpace(b.String())
}

func dataQuality(c entity.CleaningReport) string {
	return fmt.Sprintf(
		"Input rows: %d\nCancelled invoices removed: %d\nInvalid quantity removed: %d\nInvalid unit price removed: %d\nUnparseable date removed: %d\nRows kept for analysis: %d",
		c.InputRows, c.DroppedCancelled, c.DroppedQuantity, c.DroppedPrice, c.DroppedDate, c.CleanedRows,
	)
}

func interactiveListing(artifacts []entity.Artifact) string {
	var lines []string
	for _, name := range entity.AllArtifacts {
		if a, ok := entity.FindArtifact(artifacts, name, entity.FormatHTML); ok {
			lines = append(lines, fmt.Sprintf("- %s: charts/%s", name.Title(), filepath.Base(a.Path)))
		}
	}
	if len(lines) == 0 {
		return "No interactive charts were generated."
	}
	return strings.Join(lines, "\n")
}

func conclusions(a *entity.Analysis) string {
	if a.Metrics.Rows == 0 {
		return ""
	}

	var lines []string
	switch {
	case !a.Trend.Defined:
	case a.Trend.Slope > 0:
		lines = append(lines, fmt.Sprintf("Sales show an upward trend of about £%.2f per month.", a.Trend.Slope))
	case a.Trend.Slope < 0:
		lines = append(lines, fmt.Sprintf("Sales show a downward trend of about £%.2f per month.", -a.Trend.Slope))
	default:
		lines = append(lines, "Sales are flat across the period.")
	}

	m := a.Metrics
	if m.TopCountry != "" && m.TotalSales.IsPositive() {
		share := m.TopCountrySales.Div(m.TotalSales).Mul(hundred)
		lines = append(lines, fmt.Sprintf("%s accounts for %s%% of total sales.", m.TopCountry, share.StringFixed(1)))
	}
	if n := len(a.CustomerOrders); n > 0 {
		repeat := 0
		for _, c := range a.CustomerOrders {
			if c.Orders > 1 {
				repeat++
			}
		}
		lines = append(lines, fmt.Sprintf("%d of %d identified customers placed more than one order.", repeat, n))
	}
	return strings.Join(lines, "\n")
}
