package cli

import (
	"testing"
	"time"

	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsDefaults(t *testing.T) {
	app := NewCLIApp("1.0.0")
	require.NoError(t, app.rootCmd.ParseFlags(nil))

	args := app.parseArgs()
	assert.Equal(t, types.DefaultReportName, args.ReportName)
	assert.Equal(t, types.DefaultReportTypes, args.ReportType)
	assert.Equal(t, types.DefaultTop, args.Top)
	assert.Equal(t, types.DefaultBins, args.Bins)
	assert.Equal(t, types.DefaultLoadTimeout, args.LoadTimeout)
	assert.False(t, args.NoStatic)
	assert.False(t, args.NoInteractive)
	assert.False(t, args.Trend)
}

func TestParseArgsFlags(t *testing.T) {
	app := NewCLIApp("1.0.0")
	require.NoError(t, app.rootCmd.ParseFlags([]string{
		"-i", "data/online_retail.xlsx",
		"-d", "out",
		"-n", "q4",
		"-y", "csv,json",
		"-k", "5",
		"--bins", "12",
		"--load-timeout", "30s",
		"--aws-profile", "analytics",
		"--no-png",
		"--trend",
	}))

	args := app.parseArgs()
	assert.Equal(t, "data/online_retail.xlsx", args.Input)
	assert.Equal(t, "out", args.Dir)
	assert.Equal(t, "q4", args.ReportName)
	assert.Equal(t, []string{"csv", "json"}, args.ReportType)
	assert.Equal(t, 5, args.Top)
	assert.Equal(t, 12, args.Bins)
	assert.Equal(t, 30*time.Second, args.LoadTimeout)
	assert.Equal(t, "analytics", args.AWSProfile)
	assert.True(t, args.NoStatic)
	assert.False(t, args.NoInteractive)
	assert.True(t, args.Trend)

	assert.True(t, app.rootCmd.Flags().Changed("top"))
	assert.False(t, app.rootCmd.Flags().Changed("no-html"))
}

func TestWelcomeLine(t *testing.T) {
	assert.Equal(t, "Retail Sales Dashboard CLI (v2.1.0)", welcomeLine("2.1.0"))
}
