package chart

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/repository"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	htmlWidth  = "1100px"
	htmlHeight = "550px"
)

// htmlChart é satisfeito pelos gráficos e pela página do go-echarts.
type htmlChart interface {
	Render(w io.Writer) error
}

// InteractiveChartRepositoryImpl renderiza os gráficos em HTML com go-echarts.
type InteractiveChartRepositoryImpl struct{}

// NewInteractiveChartRepository cria uma nova implementação do ChartRepository para HTML.
func NewInteractiveChartRepository() repository.ChartRepository {
	return &InteractiveChartRepositoryImpl{}
}

// Format retorna o formato produzido por este renderizador.
func (r *InteractiveChartRepositoryImpl) Format() entity.ArtifactFormat {
	return entity.FormatHTML
}

// Render grava o gráfico name em outputDir/<name>.html.
func (r *InteractiveChartRepositoryImpl) Render(name entity.ArtifactName, analysis *entity.Analysis, ro entity.RenderOptions, outputDir string) (string, error) {
	var (
		page htmlChart
		err  error
	)
	switch name {
	case entity.ArtifactMonthlySalesTrend:
		page, err = monthlyLine(analysis, ro, false)
	case entity.ArtifactTopProducts:
		page, err = rankedBar(name, analysis.TopProducts, "Sales (£)")
	case entity.ArtifactTopProductsByQuantity:
		page, err = rankedBar(name, analysis.TopProductsByQuantity, "Quantity")
	case entity.ArtifactSalesByCountry:
		page, err = rankedBar(name, analysis.CountrySales, "Sales (£)")
	case entity.ArtifactSeasonalAnalysis:
		page, err = seasonalBar(analysis)
	case entity.ArtifactCustomerDistribution:
		page, err = customerBar(analysis, ro)
	case entity.ArtifactCohortAnalysis:
		page, err = cohortHeatMap(analysis)
	case entity.ArtifactExecutiveDashboard:
		page, err = executiveDashboard(analysis, ro)
	default:
		return "", fmt.Errorf("%w: %s as %s", types.ErrUnsupportedArtifact, name, entity.FormatHTML)
	}
	if err != nil {
		return "", err
	}

	path, err := outputPath(outputDir, name, entity.FormatHTML)
	if err != nil {
		return "", err
	}

	err = writeFile(path, func(f *os.File) error {
		if err := page.Render(f); err != nil {
			return fmt.Errorf("failed to render %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func initOpts(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Width:     htmlWidth,
		Height:    htmlHeight,
	})
}

// monthlyLine monta a série mensal. Com annotatePeak o período de pico recebe um marcador.
func monthlyLine(a *entity.Analysis, ro entity.RenderOptions, annotatePeak bool) (*charts.Line, error) {
	if len(a.MonthlySales) == 0 {
		return nil, noData(entity.ArtifactMonthlySalesTrend)
	}

	title := entity.ArtifactMonthlySalesTrend.Title()
	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Sales (£)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
	)

	data := make([]opts.LineData, len(a.MonthlySales))
	for i, p := range a.MonthlySales {
		data[i] = opts.LineData{Value: roundCents(toFloat(p.Total)), Name: p.Period}
	}

	var seriesOpts []charts.SeriesOpts
	if annotatePeak && a.Metrics.PeakPeriod != "" {
		seriesOpts = append(seriesOpts, charts.WithMarkPointNameCoordItemOpts(opts.MarkPointNameCoordItem{
			Name:       "Peak",
			Coordinate: []interface{}{a.Metrics.PeakPeriod, roundCents(toFloat(a.Metrics.PeakPeriodSales))},
			Value:      fmt.Sprintf("Peak %s", a.Metrics.PeakPeriod),
		}))
	}

	line.SetXAxis(periodLabels(a.MonthlySales)).AddSeries("Monthly Sales", data, seriesOpts...)

	if ro.Trend && a.Trend.Defined {
		trend := make([]opts.LineData, len(a.MonthlySales))
		for i := range trend {
			trend[i] = opts.LineData{Value: roundCents(a.Trend.At(i))}
		}
		line.AddSeries("Trend", trend, charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Width: 2}))
	}
	return line, nil
}

func rankedBar(name entity.ArtifactName, ranking []entity.RankedValue, axis string) (*charts.Bar, error) {
	if len(ranking) == 0 {
		return nil, noData(name)
	}

	// barras horizontais: o maior valor fica no topo
	labels := make([]string, len(ranking))
	data := make([]opts.BarData, len(ranking))
	for i, rv := range ranking {
		j := len(ranking) - 1 - i
		labels[j] = rv.Key
		data[j] = opts.BarData{Value: roundCents(toFloat(rv.Value)), Name: rv.Key}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(name.Title()),
		charts.WithTitleOpts(opts.Title{Title: name.Title()}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: axis}),
	)
	bar.SetXAxis(labels).AddSeries(axis, data)
	bar.XYReversal()
	return bar, nil
}

func seasonalBar(a *entity.Analysis) (*charts.Bar, error) {
	if len(a.SeasonalAverages) == 0 {
		return nil, noData(entity.ArtifactSeasonalAnalysis)
	}

	labels := make([]string, len(a.SeasonalAverages))
	data := make([]opts.BarData, len(a.SeasonalAverages))
	for i, m := range a.SeasonalAverages {
		labels[i] = monthLabel(m.Month)
		data[i] = opts.BarData{Value: roundCents(toFloat(m.Average))}
	}

	title := entity.ArtifactSeasonalAnalysis.Title()
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "Average sales per transaction by month"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Average (£)"}),
	)
	bar.SetXAxis(labels).AddSeries("Average Sales", data)
	return bar, nil
}

func customerBar(a *entity.Analysis, ro entity.RenderOptions) (*charts.Bar, error) {
	bins := Histogram(entity.OrderCounts(a.CustomerOrders), binsOrDefault(ro))
	if len(bins) == 0 {
		return nil, noData(entity.ArtifactCustomerDistribution)
	}

	labels := make([]string, len(bins))
	data := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = b.Label()
		data[i] = opts.BarData{Value: b.Count}
	}

	title := entity.ArtifactCustomerDistribution.Title()
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d customers, %d bins", len(a.CustomerOrders), len(bins)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Orders"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Customers"}),
	)
	bar.SetXAxis(labels).AddSeries("Customers", data)
	return bar, nil
}

func cohortHeatMap(a *entity.Analysis) (*charts.HeatMap, error) {
	if a.Cohort.IsEmpty() {
		return nil, noData(entity.ArtifactCohortAnalysis)
	}

	periodIdx := make(map[string]int, len(a.Cohort.Periods))
	for i, p := range a.Cohort.Periods {
		periodIdx[p] = i
	}
	cohortIdx := make(map[string]int, len(a.Cohort.Cohorts))
	for i, c := range a.Cohort.Cohorts {
		cohortIdx[c] = i
	}

	data := make([]opts.HeatMapData, 0, len(a.Cohort.Cells))
	maxCustomers := 0
	for _, cell := range a.Cohort.Cells {
		maxCustomers = max(maxCustomers, cell.Customers)
		data = append(data, opts.HeatMapData{
			Value: [3]interface{}{periodIdx[cell.Activity], cohortIdx[cell.Cohort], cell.Customers},
		})
	}

	title := entity.ArtifactCohortAnalysis.Title()
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		initOpts(title),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "Distinct customers by first purchase month and activity month"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Activity", Type: "category", Data: a.Cohort.Periods}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cohort", Type: "category", Data: a.Cohort.Cohorts}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min: 0,
			Max: float32(maxCustomers),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#f7fbff", "#6baed6", "#08306b"},
			},
		}),
	)
	hm.SetXAxis(a.Cohort.Periods).AddSeries("Customers", data)
	return hm, nil
}

// executiveDashboard junta tendência, rankings e sazonalidade em uma página com o pico anotado.
func executiveDashboard(a *entity.Analysis, ro entity.RenderOptions) (*components.Page, error) {
	line, err := monthlyLine(a, ro, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entity.ArtifactExecutiveDashboard, err)
	}

	m := a.Metrics
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: entity.ArtifactExecutiveDashboard.Title(),
		Subtitle: fmt.Sprintf("Total £%s | %d orders | %d customers | Peak %s (£%s)",
			m.TotalSales.StringFixed(2), m.Invoices, m.Customers, m.PeakPeriod, m.PeakPeriodSales.StringFixed(2)),
	}))

	page := components.NewPage()
	page.PageTitle = entity.ArtifactExecutiveDashboard.Title()
	page.AddCharts(line)

	if bar, err := rankedBar(entity.ArtifactTopProducts, a.TopProducts, "Sales (£)"); err == nil {
		page.AddCharts(bar)
	}
	if bar, err := rankedBar(entity.ArtifactSalesByCountry, a.CountrySales, "Sales (£)"); err == nil {
		page.AddCharts(bar)
	}
	if bar, err := seasonalBar(a); err == nil {
		page.AddCharts(bar)
	}
	return page, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
