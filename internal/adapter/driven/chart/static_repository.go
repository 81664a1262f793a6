package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/repository"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	staticWidth  = 1000
	staticHeight = 500
)

var palette = []drawing.Color{
	{R: 77, G: 184, B: 255, A: 255},  // Blue
	{R: 250, G: 134, B: 94, A: 255},  // Orange
	{R: 165, G: 235, B: 91, A: 255},  // Green
	{R: 252, G: 201, B: 100, A: 255}, // Yellow
	{R: 208, G: 134, B: 255, A: 255}, // Purple
	{R: 255, G: 105, B: 180, A: 255}, // Pink
	{R: 64, G: 224, B: 208, A: 255},  // Turquoise
}

var chartPadding = chart.Style{
	Padding: chart.Box{
		Top:    50,
		Left:   20,
		Right:  20,
		Bottom: 30,
	},
}

// pngChart é satisfeito por chart.Chart, chart.BarChart e chart.StackedBarChart.
type pngChart interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// StaticChartRepositoryImpl renderiza os gráficos em PNG com go-chart.
type StaticChartRepositoryImpl struct{}

// NewStaticChartRepository cria uma nova implementação do ChartRepository para PNG.
func NewStaticChartRepository() repository.ChartRepository {
	return &StaticChartRepositoryImpl{}
}

// Format retorna o formato produzido por este renderizador.
func (r *StaticChartRepositoryImpl) Format() entity.ArtifactFormat {
	return entity.FormatPNG
}

// Render grava o gráfico name em outputDir/<name>.png.
func (r *StaticChartRepositoryImpl) Render(name entity.ArtifactName, analysis *entity.Analysis, opts entity.RenderOptions, outputDir string) (string, error) {
	var renderer func(*entity.Analysis) (pngChart, error)
	switch name {
	case entity.ArtifactMonthlySalesTrend:
		renderer = func(a *entity.Analysis) (pngChart, error) {
			return monthlyTrend(a, opts)
		}
	case entity.ArtifactTopProducts:
		renderer = func(a *entity.Analysis) (pngChart, error) {
			return rankedBars(name, a.TopProducts, "£%.0f")
		}
	case entity.ArtifactTopProductsByQuantity:
		renderer = func(a *entity.Analysis) (pngChart, error) {
			return rankedBars(name, a.TopProductsByQuantity, "%.0f units")
		}
	case entity.ArtifactSalesByCountry:
		renderer = func(a *entity.Analysis) (pngChart, error) {
			return rankedBars(name, a.CountrySales, "£%.0f")
		}
	case entity.ArtifactSeasonalAnalysis:
		renderer = seasonalBars
	case entity.ArtifactCustomerDistribution:
		renderer = func(a *entity.Analysis) (pngChart, error) {
			return customerHistogram(a, opts)
		}
	case entity.ArtifactCohortAnalysis:
		renderer = cohortStack
	default:
		return "", fmt.Errorf("%w: %s as %s", types.ErrUnsupportedArtifact, name, entity.FormatPNG)
	}

	graph, err := renderer(analysis)
	if err != nil {
		return "", err
	}

	path, err := outputPath(outputDir, name, entity.FormatPNG)
	if err != nil {
		return "", err
	}

	err = writeFile(path, func(f *os.File) error {
		if err := graph.Render(chart.PNG, f); err != nil {
			return fmt.Errorf("failed to render %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func monthlyTrend(a *entity.Analysis, opts entity.RenderOptions) (pngChart, error) {
	n := len(a.MonthlySales)
	if n == 0 {
		return nil, noData(entity.ArtifactMonthlySalesTrend)
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	ticks := make([]chart.Tick, n)
	for i, p := range a.MonthlySales {
		xs[i] = float64(i)
		ys[i] = toFloat(p.Total)
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Period}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Monthly Sales",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: palette[0],
				StrokeWidth: 3,
				DotColor:    palette[0],
				DotWidth:    4,
			},
		},
	}

	yMax := axisMax(ys)
	if opts.Trend && a.Trend.Defined {
		trend := make([]float64, n)
		for i := range trend {
			trend[i] = a.Trend.At(i)
		}
		yMax = max(yMax, axisMax(trend))
		series = append(series, chart.ContinuousSeries{
			Name:    "Trend",
			XValues: xs,
			YValues: trend,
			Style: chart.Style{
				StrokeColor:     palette[1],
				StrokeWidth:     2,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		})
	}

	graph := &chart.Chart{
		Title:      entity.ArtifactMonthlySalesTrend.Title(),
		Background: chartPadding,
		Width:      staticWidth,
		Height:     staticHeight,
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: min(0, minTrend(series)), Max: yMax},
			ValueFormatter: poundFormatter,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph, nil
}

// minTrend evita que uma tendência negativa fique fora do eixo.
func minTrend(series []chart.Series) float64 {
	m := 0.0
	for _, s := range series {
		cs, ok := s.(chart.ContinuousSeries)
		if !ok {
			continue
		}
		for _, v := range cs.YValues {
			m = min(m, v)
		}
	}
	return m
}

func rankedBars(name entity.ArtifactName, ranking []entity.RankedValue, format string) (pngChart, error) {
	if len(ranking) == 0 {
		return nil, noData(name)
	}

	bars := make([]chart.Value, len(ranking))
	values := make([]float64, len(ranking))
	for i, rv := range ranking {
		values[i] = toFloat(rv.Value)
		bars[i] = chart.Value{
			Label: shortLabel(rv.Key, 18),
			Value: values[i],
			Style: chart.Style{
				FillColor:   palette[i%len(palette)],
				StrokeColor: palette[i%len(palette)],
			},
		}
	}

	return &chart.BarChart{
		Title:      name.Title(),
		Background: chartPadding,
		Width:      staticWidth,
		Height:     staticHeight,
		BarWidth:   barWidth(len(bars)),
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(values)},
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf(format, vf)
				}
				return ""
			},
		},
		Bars: bars,
	}, nil
}

func seasonalBars(a *entity.Analysis) (pngChart, error) {
	if len(a.SeasonalAverages) == 0 {
		return nil, noData(entity.ArtifactSeasonalAnalysis)
	}

	bars := make([]chart.Value, len(a.SeasonalAverages))
	values := make([]float64, len(a.SeasonalAverages))
	for i, m := range a.SeasonalAverages {
		values[i] = toFloat(m.Average)
		bars[i] = chart.Value{
			Label: monthLabel(m.Month),
			Value: values[i],
			Style: chart.Style{FillColor: palette[2], StrokeColor: palette[2]},
		}
	}

	return &chart.BarChart{
		Title:      "Average Sales per Transaction by Month",
		Background: chartPadding,
		Width:      staticWidth,
		Height:     staticHeight,
		BarWidth:   barWidth(len(bars)),
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: axisMax(values)},
			ValueFormatter: poundFormatter,
		},
		Bars: bars,
	}, nil
}

func customerHistogram(a *entity.Analysis, opts entity.RenderOptions) (pngChart, error) {
	bins := Histogram(entity.OrderCounts(a.CustomerOrders), binsOrDefault(opts))
	if len(bins) == 0 {
		return nil, noData(entity.ArtifactCustomerDistribution)
	}

	bars := make([]chart.Value, len(bins))
	values := make([]float64, len(bins))
	for i, b := range bins {
		values[i] = float64(b.Count)
		label := ""
		// só algumas faixas recebem rótulo para não sobrepor o eixo
		if i%labelStep(len(bins)) == 0 {
			label = fmt.Sprintf("%.0f", b.Lower)
		}
		bars[i] = chart.Value{
			Label: label,
			Value: values[i],
			Style: chart.Style{FillColor: palette[0], StrokeColor: palette[0]},
		}
	}

	return &chart.BarChart{
		Title:      "Distribution of Orders per Customer",
		Background: chartPadding,
		Width:      staticWidth,
		Height:     staticHeight,
		BarWidth:   barWidth(len(bars)),
		BarSpacing: 2,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(values)},
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.0f", vf)
				}
				return ""
			},
		},
		Bars: bars,
	}, nil
}

func cohortStack(a *entity.Analysis) (pngChart, error) {
	if a.Cohort.IsEmpty() {
		return nil, noData(entity.ArtifactCohortAnalysis)
	}

	bars := make([]chart.StackedBar, 0, len(a.Cohort.Cohorts))
	for _, cohort := range a.Cohort.Cohorts {
		bar := chart.StackedBar{Name: cohort}
		for i, period := range a.Cohort.Periods {
			customers, ok := a.Cohort.Lookup(cohort, period)
			if !ok {
				continue
			}
			bar.Values = append(bar.Values, chart.Value{
				Label: period,
				Value: float64(customers),
				Style: chart.Style{
					FillColor:   palette[i%len(palette)],
					StrokeColor: drawing.ColorWhite,
					StrokeWidth: 1,
				},
			})
		}
		bars = append(bars, bar)
	}

	return &chart.StackedBarChart{
		Title:      entity.ArtifactCohortAnalysis.Title(),
		Background: chartPadding,
		Width:      staticWidth,
		Height:     staticHeight,
		BarSpacing: 10,
		Bars:       bars,
	}, nil
}

func poundFormatter(v interface{}) string {
	if vf, isFloat := v.(float64); isFloat {
		return fmt.Sprintf("£%.0f", vf)
	}
	return ""
}

func barWidth(n int) int {
	if n <= 0 {
		return 40
	}
	w := (staticWidth - 120) / n
	return max(6, min(60, w-w/4))
}

func labelStep(n int) int {
	if n <= 12 {
		return 1
	}
	return (n + 9) / 10
}
