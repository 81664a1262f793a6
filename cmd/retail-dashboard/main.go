package main

import (
	"fmt"
	"os"

	"github.com/diillson/retail-sales-dashboard-go/internal/adapter/driven/chart"
	"github.com/diillson/retail-sales-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/retail-sales-dashboard-go/internal/adapter/driven/dataset"
	"github.com/diillson/retail-sales-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/retail-sales-dashboard-go/internal/adapter/driven/storage"
	"github.com/diillson/retail-sales-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/retail-sales-dashboard-go/internal/application/usecase"
	"github.com/diillson/retail-sales-dashboard-go/internal/domain/repository"
	"github.com/diillson/retail-sales-dashboard-go/pkg/console"
	"github.com/diillson/retail-sales-dashboard-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.FormatVersion())

	// Inicializa os repositórios
	datasetRepo := dataset.NewDatasetRepository(storage.NewS3Source())
	chartRepos := []repository.ChartRepository{
		chart.NewStaticChartRepository(),
		chart.NewInteractiveChartRepository(),
	}
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	dashboardUseCase := usecase.NewDashboardUseCase(
		datasetRepo,
		chartRepos,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetDashboardUseCase(dashboardUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
