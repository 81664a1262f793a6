package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/olekukonko/tablewriter"
)

// ExportToMarkdown grava o resumo da execução com tabelas em Markdown.
func (r *ExportRepositoryImpl) ExportToMarkdown(analysis *entity.Analysis, filename string, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "md")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Retail Sales Analysis Report\n\n")
	fmt.Fprintf(&b, "Source: `%s`\n\n", analysis.Source)

	b.WriteString("## Key Metrics\n\n")
	b.WriteString(markdownTable([]string{"Metric", "Value"}, metricRows(analysis)))

	c := analysis.Cleaning
	b.WriteString("\n## Data Quality\n\n")
	b.WriteString(markdownTable([]string{"Step", "Rows"}, [][]string{
		{"Input rows", fmt.Sprint(c.InputRows)},
		{"Cancelled invoices removed", fmt.Sprint(c.DroppedCancelled)},
		{"Invalid quantity removed", fmt.Sprint(c.DroppedQuantity)},
		{"Invalid unit price removed", fmt.Sprint(c.DroppedPrice)},
		{"Invalid date removed", fmt.Sprint(c.DroppedDate)},
		{"Clean rows", fmt.Sprint(c.CleanedRows)},
	}))

	if len(analysis.MonthlySales) > 0 {
		b.WriteString("\n## Monthly Sales\n\n")
		rows := make([][]string, len(analysis.MonthlySales))
		for i, p := range analysis.MonthlySales {
			trend := "-"
			if analysis.Trend.Defined {
				trend = fmt.Sprintf("%.2f", analysis.Trend.At(i))
			}
			rows[i] = []string{p.Period, p.Total.StringFixed(2), trend}
		}
		b.WriteString(markdownTable([]string{"Period", "Sales", "Trend"}, rows))
	}

	writeRanking(&b, "Top Products by Sales", "Product", "Sales", analysis.TopProducts, 2)
	writeRanking(&b, "Top Products by Quantity", "Product", "Quantity", analysis.TopProductsByQuantity, 0)
	writeRanking(&b, "Sales by Country", "Country", "Sales", analysis.CountrySales, 2)

	if len(analysis.SeasonalAverages) > 0 {
		b.WriteString("\n## Seasonal Averages\n\n")
		rows := make([][]string, len(analysis.SeasonalAverages))
		for i, m := range analysis.SeasonalAverages {
			rows[i] = []string{monthName(m.Month), m.Average.StringFixed(2), fmt.Sprint(m.Rows)}
		}
		b.WriteString(markdownTable([]string{"Month", "Average Sales", "Transactions"}, rows))
	}

	if err := os.WriteFile(outputFilename, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("error writing Markdown file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func writeRanking(b *strings.Builder, title, keyHeader, valueHeader string, ranking []entity.RankedValue, places int32) {
	if len(ranking) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", title)
	rows := rankedRows(ranking, places)
	for _, row := range rows {
		row[1] = escapeMarkdown(stripANSI(row[1]))
	}
	b.WriteString(markdownTable([]string{"#", keyHeader, valueHeader}, rows))
}

// markdownTable renderiza uma tabela no formato de pipes do GitHub.
func markdownTable(header []string, rows [][]string) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.AppendBulk(rows)
	table.Render()
	return buf.String()
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
