package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/pipeline"
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/repository"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

// ChartsDir é o subdiretório de saída dos gráficos.
const ChartsDir = "charts"

// DashboardUseCase handles one run: load, clean, aggregate, render and export.
type DashboardUseCase struct {
	datasetRepo repository.DatasetRepository
	chartRepos  []repository.ChartRepository
	exportRepo  repository.ExportRepository
	configRepo  repository.ConfigRepository
	console     types.ConsoleInterface

	now   func() time.Time
	runID func() string
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	datasetRepo repository.DatasetRepository,
	chartRepos []repository.ChartRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		datasetRepo: datasetRepo,
		chartRepos:  chartRepos,
		exportRepo:  exportRepo,
		configRepo:  configRepo,
		console:     console,
		now:         time.Now,
		runID:       uuid.NewString,
	}
}

// RunDashboard executa o fluxo completo para os argumentos já resolvidos.
// Erros de carga e de esquema interrompem a execução; falhas de gráficos e
// relatórios são registradas e a execução continua.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	started := uc.now()

	raw, err := uc.loadDataset(ctx, args)
	if err != nil {
		return err
	}
	uc.logStage(fmt.Sprintf("Loaded %d rows from %s", len(raw.Records), args.Input), started)

	stageStart := uc.now()
	cleaned, report, err := pipeline.New(uc.console).Clean(raw)
	if err != nil {
		return fmt.Errorf("error cleaning %s: %w", args.Input, err)
	}
	uc.logStage("Cleaning finished", stageStart)

	if cleaned.Len() == 0 {
		uc.console.LogWarning("No valid transactions left after cleaning; aggregates will be empty")
	}

	stageStart = uc.now()
	analysis, err := pipeline.Analyze(ctx, cleaned, report, pipeline.AnalyzeOptions{Top: args.Top})
	if err != nil {
		return err
	}
	analysis.Source = args.Input
	uc.logStage("Aggregates computed", stageStart)

	uc.displayKeyMetrics(analysis)
	if args.Trend {
		uc.console.DisplayTrendBars(monthlySales(analysis.MonthlySales))
	}

	artifacts := uc.renderCharts(analysis, args)
	reports := uc.exportReports(analysis, artifacts, args)

	manifest := entity.RunManifest{
		RunID:       uc.runID(),
		Source:      args.Input,
		GeneratedAt: uc.now().UTC().Format(time.RFC3339),
		Cleaning:    report,
		Artifacts:   artifacts,
		Reports:     reports,
	}
	if path, err := uc.exportRepo.WriteManifest(manifest, args.Dir); err != nil {
		uc.console.LogError("Failed to write run manifest: %s", err)
	} else {
		uc.console.LogInfo("Run manifest written to %s", path)
	}

	uc.displayStatus(artifacts, reports)
	uc.logStage("Run complete", started)
	return nil
}

func (uc *DashboardUseCase) loadDataset(ctx context.Context, args *types.CLIArgs) (entity.RawDataset, error) {
	timeout := args.LoadTimeout
	if timeout <= 0 {
		timeout = types.DefaultLoadTimeout
	}
	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	status := uc.console.Status(fmt.Sprintf("Loading %s...", args.Input))
	raw, err := uc.datasetRepo.Load(loadCtx, args.Input, args.AWSProfile)
	status.Stop()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return entity.RawDataset{}, fmt.Errorf("loading %s exceeded %s: %w", args.Input, timeout, err)
		}
		return entity.RawDataset{}, fmt.Errorf("error loading %s: %w", args.Input, err)
	}
	return raw, nil
}

// renderCharts renderiza cada gráfico em cada formato habilitado. Uma falha não interrompe os demais.
func (uc *DashboardUseCase) renderCharts(analysis *entity.Analysis, args *types.CLIArgs) []entity.Artifact {
	repos := uc.enabledChartRepos(args)
	if len(repos) == 0 {
		uc.console.LogWarning("All chart formats are disabled; skipping charts")
		return nil
	}

	outputDir := filepath.Join(args.Dir, ChartsDir)
	opts := entity.RenderOptions{Bins: args.Bins, Trend: true}

	var artifacts []entity.Artifact
	progress := uc.console.ProgressWithTotal(len(entity.AllArtifacts)*len(repos), "Rendering charts")
	for _, name := range entity.AllArtifacts {
		for _, repo := range repos {
			artifact := entity.Artifact{Name: name, Format: repo.Format()}
			path, err := repo.Render(name, analysis, opts, outputDir)
			progress.Increment()

			switch {
			case errors.Is(err, types.ErrUnsupportedArtifact):
				continue
			case errors.Is(err, types.ErrNoData):
				artifact.Error = err.Error()
				uc.console.LogWarning("Skipped %s (%s): nothing to plot", name, repo.Format())
			case err != nil:
				artifact.Error = err.Error()
				uc.console.LogError("Failed to render %s (%s): %s", name, repo.Format(), err)
			default:
				artifact.Path = path
				artifact.Success = true
			}
			artifacts = append(artifacts, artifact)
		}
	}
	progress.Stop()

	return artifacts
}

func (uc *DashboardUseCase) enabledChartRepos(args *types.CLIArgs) []repository.ChartRepository {
	var repos []repository.ChartRepository
	for _, repo := range uc.chartRepos {
		switch repo.Format() {
		case entity.FormatPNG:
			if args.NoStatic {
				continue
			}
		case entity.FormatHTML:
			if args.NoInteractive {
				continue
			}
		}
		repos = append(repos, repo)
	}
	return repos
}

// exportReports gera cada tipo de relatório pedido. Falhas entram no resultado com o erro,
// como acontece com os gráficos.
func (uc *DashboardUseCase) exportReports(analysis *entity.Analysis, artifacts []entity.Artifact, args *types.CLIArgs) []entity.Report {
	var reports []entity.Report
	failed := func(reportType, label string, err error) {
		uc.console.LogError("Failed to export to %s: %s", label, err)
		reports = append(reports, entity.Report{Type: reportType, Error: err.Error()})
	}
	written := func(reportType, label, path string) {
		uc.console.LogSuccess("Successfully exported to %s: %s", label, path)
		reports = append(reports, entity.Report{Type: reportType, Path: path, Success: true})
	}

	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			csvPaths, err := uc.exportRepo.ExportToCSV(analysis, args.ReportName, args.Dir)
			// arquivos gravados antes de um erro continuam válidos
			for _, p := range csvPaths {
				reports = append(reports, entity.Report{Type: reportType, Path: p, Success: true})
			}
			if err != nil {
				failed(reportType, "CSV", err)
			} else {
				uc.console.LogSuccess("Successfully exported %d CSV files to %s", len(csvPaths), args.Dir)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(analysis, args.ReportName, args.Dir)
			if err != nil {
				failed(reportType, "JSON", err)
			} else {
				written(reportType, "JSON", jsonPath)
			}
		case "md":
			mdPath, err := uc.exportRepo.ExportToMarkdown(analysis, args.ReportName, args.Dir)
			if err != nil {
				failed(reportType, "Markdown", err)
			} else {
				written(reportType, "Markdown", mdPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(analysis, artifacts, args.ReportName, args.Dir)
			if err != nil {
				failed(reportType, "PDF", err)
			} else {
				written(reportType, "PDF", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type %q ignored", reportType)
		}
	}
	return reports
}

// logStage registra o tempo decorrido e o uso de heap do processo.
func (uc *DashboardUseCase) logStage(message string, since time.Time) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	uc.console.LogInfo("%s in %s (heap %.1f MB)", message, uc.now().Sub(since).Round(time.Millisecond), float64(mem.HeapAlloc)/1024/1024)
}

func (uc *DashboardUseCase) displayKeyMetrics(analysis *entity.Analysis) {
	m := analysis.Metrics
	table := uc.console.CreateTable()
	table.AddColumn("Metric")
	table.AddColumn("Value")
	table.AddRow("Transactions", m.Rows)
	table.AddRow("Total Sales", "£"+m.TotalSales.StringFixed(2))
	table.AddRow("Orders", m.Invoices)
	table.AddRow("Customers", m.Customers)
	table.AddRow("Products", m.Products)
	table.AddRow("Average Order Value", "£"+m.AvgOrderValue.StringFixed(2))
	if m.TopCountry != "" {
		table.AddRow("Top Country", fmt.Sprintf("%s (£%s)", m.TopCountry, m.TopCountrySales.StringFixed(2)))
	}
	if m.TopProduct != "" {
		table.AddRow("Top Product", fmt.Sprintf("%s (£%s)", m.TopProduct, m.TopProductSales.StringFixed(2)))
	}
	if m.PeakPeriod != "" {
		table.AddRow("Peak Month", fmt.Sprintf("%s (£%s)", m.PeakPeriod, m.PeakPeriodSales.StringFixed(2)))
	}
	uc.console.Print(table.Render())
}

func (uc *DashboardUseCase) displayStatus(artifacts []entity.Artifact, reports []entity.Report) {
	table := uc.console.CreateTable()
	table.AddColumn("Artifact")
	table.AddColumn("Format")
	table.AddColumn("Status")
	table.AddColumn("Output")

	failed := 0
	for _, a := range artifacts {
		if a.Success {
			table.AddRow(string(a.Name), string(a.Format), pterm.FgGreen.Sprint("OK"), a.Path)
			continue
		}
		failed++
		table.AddRow(string(a.Name), string(a.Format), pterm.FgRed.Sprint("FAILED"), a.Error)
	}
	failedReports := 0
	for _, r := range reports {
		if r.Success {
			table.AddRow(filepath.Base(r.Path), r.Type, pterm.FgGreen.Sprint("OK"), r.Path)
			continue
		}
		failedReports++
		table.AddRow("report", r.Type, pterm.FgRed.Sprint("FAILED"), r.Error)
	}
	uc.console.Print(table.Render())

	if failed > 0 {
		uc.console.LogWarning("%d of %d charts could not be generated", failed, len(artifacts))
	} else if len(artifacts) > 0 {
		uc.console.LogSuccess("All %d charts generated", len(artifacts))
	}
	if failedReports > 0 {
		uc.console.LogWarning("%d of %d reports could not be generated", failedReports, len(reports))
	}
}

func monthlySales(series []entity.PeriodTotal) []types.MonthlySales {
	out := make([]types.MonthlySales, len(series))
	for i, p := range series {
		out[i] = types.MonthlySales{Month: p.Period, Sales: p.Total.InexactFloat64()}
	}
	return out
}
