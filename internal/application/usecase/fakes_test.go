package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
)

type fakeConsole struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
	success  []string
	printed  []string
	trend    []types.MonthlySales
	rows     [][]interface{}
}

func (c *fakeConsole) Print(a ...interface{}) { c.record(&c.printed, fmt.Sprint(a...)) }
func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.record(&c.infos, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.record(&c.warnings, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.record(&c.errors, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.record(&c.success, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) Status(string) types.StatusHandle { return noopHandle{} }
func (c *fakeConsole) ProgressWithTotal(int, string) types.ProgressHandle {
	return noopHandle{}
}
func (c *fakeConsole) CreateTable() types.TableInterface { return &fakeTable{console: c} }
func (c *fakeConsole) DisplayTrendBars(ms []types.MonthlySales) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trend = ms
}

func (c *fakeConsole) record(dst *[]string, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*dst = append(*dst, msg)
}

type noopHandle struct{}

func (noopHandle) Increment() {}
func (noopHandle) Stop()      {}

type fakeTable struct {
	console *fakeConsole
}

func (t *fakeTable) AddColumn(string) {}
func (t *fakeTable) AddRow(cells ...interface{}) {
	t.console.mu.Lock()
	defer t.console.mu.Unlock()
	t.console.rows = append(t.console.rows, cells)
}
func (t *fakeTable) Render() string { return "" }

type fakeDataset struct {
	ds      entity.RawDataset
	err     error
	block   bool
	profile string
}

func (f *fakeDataset) Load(ctx context.Context, source string, awsProfile string) (entity.RawDataset, error) {
	f.profile = awsProfile
	if f.block {
		<-ctx.Done()
		return entity.RawDataset{}, ctx.Err()
	}
	if f.err != nil {
		return entity.RawDataset{}, f.err
	}
	ds := f.ds
	ds.Source = source
	return ds, nil
}

type fakeChart struct {
	format   entity.ArtifactFormat
	fail     map[entity.ArtifactName]error
	rendered []entity.ArtifactName
	opts     entity.RenderOptions
}

func (f *fakeChart) Format() entity.ArtifactFormat { return f.format }

func (f *fakeChart) Render(name entity.ArtifactName, _ *entity.Analysis, opts entity.RenderOptions, outputDir string) (string, error) {
	f.opts = opts
	if name == entity.ArtifactExecutiveDashboard && f.format == entity.FormatPNG {
		return "", types.ErrUnsupportedArtifact
	}
	if err, ok := f.fail[name]; ok {
		return "", err
	}
	f.rendered = append(f.rendered, name)
	return filepath.Join(outputDir, fmt.Sprintf("%s.%s", name, f.format)), nil
}

type fakeExport struct {
	fail      map[string]error
	calls     []string
	artifacts []entity.Artifact
	analysis  *entity.Analysis
	manifest  entity.RunManifest
}

func (f *fakeExport) result(kind, filename, outputDir string) (string, error) {
	f.calls = append(f.calls, kind)
	if err, ok := f.fail[kind]; ok {
		return "", err
	}
	return filepath.Join(outputDir, filename+"."+kind), nil
}

func (f *fakeExport) ExportToCSV(a *entity.Analysis, filename string, outputDir string) ([]string, error) {
	f.analysis = a
	p, err := f.result("csv", filename, outputDir)
	if err != nil {
		return nil, err
	}
	return []string{p}, nil
}

func (f *fakeExport) ExportToJSON(a *entity.Analysis, filename string, outputDir string) (string, error) {
	f.analysis = a
	return f.result("json", filename, outputDir)
}

func (f *fakeExport) ExportToMarkdown(a *entity.Analysis, filename string, outputDir string) (string, error) {
	f.analysis = a
	return f.result("md", filename, outputDir)
}

func (f *fakeExport) ExportToPDF(a *entity.Analysis, artifacts []entity.Artifact, filename string, outputDir string) (string, error) {
	f.analysis = a
	f.artifacts = artifacts
	return f.result("pdf", filename, outputDir)
}

func (f *fakeExport) WriteManifest(m entity.RunManifest, outputDir string) (string, error) {
	f.manifest = m
	return filepath.Join(outputDir, "manifest.json"), nil
}

type fakeConfig struct {
	cfg    *types.Config
	cfgErr error
	env    types.EnvOverrides
	loaded string
}

func (f *fakeConfig) LoadConfigFile(path string) (*types.Config, error) {
	f.loaded = path
	if f.cfgErr != nil {
		return nil, f.cfgErr
	}
	return f.cfg, nil
}

func (f *fakeConfig) LoadEnvOverrides() (*types.EnvOverrides, error) {
	env := f.env
	return &env, nil
}
