package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/repository"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfigUseCase(cfg *fakeConfig) *DashboardUseCase {
	return NewDashboardUseCase(&fakeDataset{}, []repository.ChartRepository{}, &fakeExport{}, cfg, &fakeConsole{})
}

func changedFlags(names ...string) FlagSet {
	return func(name string) bool {
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	}
}

func TestResolveArgsPrecedence(t *testing.T) {
	cfg := &fakeConfig{
		cfg: &types.Config{
			Input:       "from-config.xlsx",
			Dir:         "/config/out",
			ReportName:  "q4",
			ReportType:  []string{"json"},
			Top:         7,
			Bins:        12,
			LoadTimeout: "90s",
			AWSProfile:  "analytics",
			NoStatic:    true,
			Trend:       true,
		},
		env: types.EnvOverrides{Input: "from-env.xlsx"},
	}
	uc := newConfigUseCase(cfg)

	args := &types.CLIArgs{ConfigFile: "retail.toml", Top: 3, Bins: 30, ReportType: []string{"pdf"}}
	require.NoError(t, uc.ResolveArgs(args, changedFlags("top")))

	assert.Equal(t, "retail.toml", cfg.loaded)
	assert.Equal(t, "from-env.xlsx", args.Input, "env overrides config file")
	assert.Equal(t, "/config/out", args.Dir)
	assert.Equal(t, "q4", args.ReportName)
	assert.Equal(t, []string{"json"}, args.ReportType)
	assert.Equal(t, 3, args.Top, "explicit flag wins")
	assert.Equal(t, 12, args.Bins)
	assert.Equal(t, 90*time.Second, args.LoadTimeout)
	assert.Equal(t, "analytics", args.AWSProfile)
	assert.True(t, args.NoStatic)
	assert.True(t, args.Trend)
}

func TestResolveArgsFlagBeatsEnv(t *testing.T) {
	uc := newConfigUseCase(&fakeConfig{env: types.EnvOverrides{Input: "env.xlsx", Dir: "/env"}})

	args := &types.CLIArgs{Input: "flag.xlsx", Dir: "/flag", Top: 10, Bins: 30}
	require.NoError(t, uc.ResolveArgs(args, changedFlags("input", "dir")))

	assert.Equal(t, "flag.xlsx", args.Input)
	assert.Equal(t, "/flag", args.Dir)
}

func TestResolveArgsDefaults(t *testing.T) {
	uc := newConfigUseCase(&fakeConfig{})

	args := &types.CLIArgs{Input: "data.xlsx", Top: 10, Bins: 30}
	require.NoError(t, uc.ResolveArgs(args, nil))

	cwd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, types.DefaultReportName, args.ReportName)
	assert.Equal(t, types.DefaultReportTypes, args.ReportType)
	assert.Equal(t, types.DefaultLoadTimeout, args.LoadTimeout)
	assert.Equal(t, cwd, args.Dir)
}

func TestResolveArgsRelativeDir(t *testing.T) {
	uc := newConfigUseCase(&fakeConfig{})

	args := &types.CLIArgs{Input: "data.xlsx", Dir: "out", Top: 10, Bins: 30}
	require.NoError(t, uc.ResolveArgs(args, nil))
	assert.True(t, filepath.IsAbs(args.Dir))
	assert.Equal(t, "out", filepath.Base(args.Dir))
}

func TestResolveArgsNormalizesReportTypes(t *testing.T) {
	uc := newConfigUseCase(&fakeConfig{})

	args := &types.CLIArgs{Input: "data.xlsx", Top: 10, Bins: 30, ReportType: []string{" PDF", "markdown", "md", "csv"}}
	require.NoError(t, uc.ResolveArgs(args, nil))
	assert.Equal(t, []string{"pdf", "md", "csv"}, args.ReportType)
}

func TestResolveArgsValidation(t *testing.T) {
	tests := []struct {
		name string
		args types.CLIArgs
	}{
		{"missing input", types.CLIArgs{Top: 10, Bins: 30}},
		{"zero top", types.CLIArgs{Input: "x.xlsx", Top: 0, Bins: 30}},
		{"negative bins", types.CLIArgs{Input: "x.xlsx", Top: 10, Bins: -1}},
		{"unknown report type", types.CLIArgs{Input: "x.xlsx", Top: 10, Bins: 30, ReportType: []string{"xls"}}},
		{"empty report types", types.CLIArgs{Input: "x.xlsx", Top: 10, Bins: 30, ReportType: []string{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			err := newConfigUseCase(&fakeConfig{}).ResolveArgs(&args, nil)
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
		})
	}
}

func TestResolveArgsConfigErrors(t *testing.T) {
	t.Run("unreadable file", func(t *testing.T) {
		uc := newConfigUseCase(&fakeConfig{cfgErr: errors.New("unsupported config file format: .ini")})
		err := uc.ResolveArgs(&types.CLIArgs{ConfigFile: "retail.ini", Input: "x.xlsx", Top: 10, Bins: 30}, nil)
		assert.ErrorContains(t, err, "error loading config file")
	})

	t.Run("bad timeout", func(t *testing.T) {
		uc := newConfigUseCase(&fakeConfig{cfg: &types.Config{LoadTimeout: "soon"}})
		err := uc.ResolveArgs(&types.CLIArgs{ConfigFile: "retail.toml", Input: "x.xlsx", Top: 10, Bins: 30}, nil)
		assert.ErrorIs(t, err, types.ErrInvalidArgument)
	})
}
