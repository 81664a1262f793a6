package types

import "time"

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile    string
	Input         string
	Dir           string
	ReportName    string
	ReportType    []string
	Top           int
	Bins          int
	LoadTimeout   time.Duration
	AWSProfile    string
	NoStatic      bool
	NoInteractive bool
	Trend         bool
}

// Valores padrão usados quando nem flag nem arquivo de configuração definem o campo.
const (
	DefaultReportName  = "retail_sales_report"
	DefaultTop         = 10
	DefaultBins        = 30
	DefaultLoadTimeout = 5 * time.Minute
)

// DefaultReportTypes são os relatórios gerados quando nenhum tipo é informado.
var DefaultReportTypes = []string{"pdf", "md"}

// SupportedReportTypes lists the report formats understood by the exporter.
var SupportedReportTypes = []string{"csv", "json", "md", "pdf"}
