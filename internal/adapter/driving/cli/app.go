package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/diillson/retail-sales-dashboard-go/internal/application/usecase"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"github.com/diillson/retail-sales-dashboard-go/pkg/version"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	dashboardUseCase *usecase.DashboardUseCase
	version          string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:           "retail-dashboard",
		Short:         "Retail sales dashboard: clean, aggregate, chart and report online retail transactions",
		Version:       version.FormatVersion(),
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "Retail Sales Dashboard version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("input", "i", "", "Transactions spreadsheet (.xlsx, .csv or s3://bucket/key)")
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("dir", "d", "", "Directory to save charts and reports (default: current directory)")
	flags.StringP("report-name", "n", types.DefaultReportName, "Base name for the report files (without extension)")
	flags.StringSliceP("report-type", "y", types.DefaultReportTypes, "Report types: csv, json, md, pdf")
	flags.IntP("top", "k", types.DefaultTop, "Number of products in the top-N rankings")
	flags.Int("bins", types.DefaultBins, "Number of bins in the orders-per-customer histogram")
	flags.Duration("load-timeout", types.DefaultLoadTimeout, "Maximum time allowed to load the input")
	flags.String("aws-profile", "", "AWS profile used to read s3:// inputs")
	flags.Bool("no-png", false, "Skip static PNG charts")
	flags.Bool("no-html", false, "Skip interactive HTML charts")
	flags.Bool("trend", false, "Display the monthly sales trend as bars in the terminal")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() *types.CLIArgs {
	flags := app.rootCmd.Flags()
	configFile, _ := flags.GetString("config-file")
	input, _ := flags.GetString("input")
	dir, _ := flags.GetString("dir")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	top, _ := flags.GetInt("top")
	bins, _ := flags.GetInt("bins")
	loadTimeout, _ := flags.GetDuration("load-timeout")
	awsProfile, _ := flags.GetString("aws-profile")
	noStatic, _ := flags.GetBool("no-png")
	noInteractive, _ := flags.GetBool("no-html")
	trend, _ := flags.GetBool("trend")

	return &types.CLIArgs{
		ConfigFile:    configFile,
		Input:         input,
		Dir:           dir,
		ReportName:    reportName,
		ReportType:    reportType,
		Top:           top,
		Bins:          bins,
		LoadTimeout:   loadTimeout,
		AWSProfile:    awsProfile,
		NoStatic:      noStatic,
		NoInteractive: noInteractive,
		Trend:         trend,
	}
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)

	cliArgs := app.parseArgs()

	// Mescla arquivo de configuração e variáveis de ambiente; flags explícitas prevalecem
	if err := app.dashboardUseCase.ResolveArgs(cliArgs, cmd.Flags().Changed); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.dashboardUseCase.RunDashboard(ctx, cliArgs)
}

// SetDashboardUseCase sets the dashboard use case for the CLI app.
func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.dashboardUseCase = useCase
}
