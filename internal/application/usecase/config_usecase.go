package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
)

// FlagSet informa se uma flag foi passada explicitamente na linha de comando.
type FlagSet func(name string) bool

// ResolveArgs aplica a precedência flags > ambiente > arquivo de configuração > padrões
// e valida o resultado. args é alterado no lugar.
func (uc *DashboardUseCase) ResolveArgs(args *types.CLIArgs, changed FlagSet) error {
	isSet := func(name string) bool {
		return changed != nil && changed(name)
	}

	if args.ConfigFile != "" {
		cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return fmt.Errorf("error loading config file: %w", err)
		}
		if err := applyConfig(args, cfg, isSet); err != nil {
			return err
		}
	}

	env, err := uc.configRepo.LoadEnvOverrides()
	if err != nil {
		return err
	}
	if env.Input != "" && !isSet("input") {
		args.Input = env.Input
	}
	if env.Dir != "" && !isSet("dir") {
		args.Dir = env.Dir
	}

	applyDefaults(args)
	if err := validateArgs(args); err != nil {
		return err
	}

	dir, err := outputDir(args.Dir)
	if err != nil {
		return err
	}
	args.Dir = dir
	return nil
}

func applyConfig(args *types.CLIArgs, cfg *types.Config, isSet func(string) bool) error {
	if cfg.Input != "" && !isSet("input") {
		args.Input = cfg.Input
	}
	if cfg.Dir != "" && !isSet("dir") {
		args.Dir = cfg.Dir
	}
	if cfg.ReportName != "" && !isSet("report-name") {
		args.ReportName = cfg.ReportName
	}
	if len(cfg.ReportType) > 0 && !isSet("report-type") {
		args.ReportType = cfg.ReportType
	}
	if cfg.Top != 0 && !isSet("top") {
		args.Top = cfg.Top
	}
	if cfg.Bins != 0 && !isSet("bins") {
		args.Bins = cfg.Bins
	}
	if cfg.LoadTimeout != "" && !isSet("load-timeout") {
		d, err := time.ParseDuration(cfg.LoadTimeout)
		if err != nil {
			return fmt.Errorf("%w: load_timeout %q: %w", types.ErrInvalidArgument, cfg.LoadTimeout, err)
		}
		args.LoadTimeout = d
	}
	if cfg.AWSProfile != "" && !isSet("aws-profile") {
		args.AWSProfile = cfg.AWSProfile
	}
	if cfg.NoStatic && !isSet("no-png") {
		args.NoStatic = true
	}
	if cfg.NoInteractive && !isSet("no-html") {
		args.NoInteractive = true
	}
	if cfg.Trend && !isSet("trend") {
		args.Trend = true
	}
	return nil
}

func applyDefaults(args *types.CLIArgs) {
	if args.ReportName == "" {
		args.ReportName = types.DefaultReportName
	}
	if args.ReportType == nil {
		args.ReportType = slices.Clone(types.DefaultReportTypes)
	}
	if args.LoadTimeout == 0 {
		args.LoadTimeout = types.DefaultLoadTimeout
	}

	normalized := make([]string, 0, len(args.ReportType))
	for _, rt := range args.ReportType {
		rt = strings.ToLower(strings.TrimSpace(rt))
		if rt == "markdown" {
			rt = "md"
		}
		if rt != "" && !slices.Contains(normalized, rt) {
			normalized = append(normalized, rt)
		}
	}
	args.ReportType = normalized
}

func validateArgs(args *types.CLIArgs) error {
	if strings.TrimSpace(args.Input) == "" {
		return fmt.Errorf("%w: an input file is required (--input or RETAIL_INPUT)", types.ErrInvalidArgument)
	}
	if args.Top <= 0 {
		return fmt.Errorf("%w: top must be positive, got %d", types.ErrInvalidArgument, args.Top)
	}
	if args.Bins <= 0 {
		return fmt.Errorf("%w: bins must be positive, got %d", types.ErrInvalidArgument, args.Bins)
	}
	if args.LoadTimeout < 0 {
		return fmt.Errorf("%w: load timeout must not be negative", types.ErrInvalidArgument)
	}
	if len(args.ReportType) == 0 {
		return fmt.Errorf("%w: at least one report type is required (%s)",
			types.ErrInvalidArgument, strings.Join(types.SupportedReportTypes, ", "))
	}
	for _, rt := range args.ReportType {
		if !slices.Contains(types.SupportedReportTypes, rt) {
			return fmt.Errorf("%w: unsupported report type %q (supported: %s)",
				types.ErrInvalidArgument, rt, strings.Join(types.SupportedReportTypes, ", "))
		}
	}
	return nil
}

// outputDir converte o diretório de saída em caminho absoluto; vazio vira o diretório atual.
func outputDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}
