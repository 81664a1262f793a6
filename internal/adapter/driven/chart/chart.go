// Package chart contém os renderizadores de gráficos: PNG estático (go-chart) e HTML
// interativo (go-echarts). Ambos consomem a mesma Analysis e gravam arquivos com nomes estáveis.
package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

// DefaultBins é o número de faixas do histograma de pedidos por cliente.
const DefaultBins = 30

func binsOrDefault(opts entity.RenderOptions) int {
	if opts.Bins <= 0 {
		return DefaultBins
	}
	return opts.Bins
}

// Bin é uma faixa do histograma, fechada à esquerda. A última faixa inclui o limite superior.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// Label returns a compact "lower-upper" label.
func (b Bin) Label() string {
	return fmt.Sprintf("%.1f-%.1f", b.Lower, b.Upper)
}

// Histogram distribui values em bins faixas de mesma largura entre o mínimo e o máximo.
// Quando todos os valores são iguais a faixa é centrada no valor com largura 1.
func Histogram(values []int, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := float64(values[0]), float64(values[0])
	for _, v := range values[1:] {
		lo = math.Min(lo, float64(v))
		hi = math.Max(hi, float64(v))
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		i := int((float64(v) - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i].Count++
	}
	return out
}

// outputPath cria o diretório e monta o caminho <dir>/<name>.<ext>.
func outputPath(outputDir string, name entity.ArtifactName, format entity.ArtifactFormat) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outputDir, fmt.Sprintf("%s.%s", name, format))
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}

// writeFile grava o conteúdo produzido por render e remove o arquivo parcial em caso de erro.
func writeFile(path string, render func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func noData(name entity.ArtifactName) error {
	return fmt.Errorf("%w: %s", types.ErrNoData, name)
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func monthLabel(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d", month)
	}
	return time.Month(month).String()[:3]
}

// shortLabel corta descrições longas de produtos para caber no eixo.
func shortLabel(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

func periodLabels(series []entity.PeriodTotal) []string {
	labels := make([]string, len(series))
	for i, p := range series {
		labels[i] = p.Period
	}
	return labels
}

func maxFloat(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = math.Max(m, v)
	}
	return m
}

// axisMax devolve um teto de eixo com folga de 10%, nunca zero.
func axisMax(values []float64) float64 {
	m := maxFloat(values)
	if m <= 0 {
		return 1
	}
	return m * 1.1
}
