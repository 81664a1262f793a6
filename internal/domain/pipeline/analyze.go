package pipeline

import (
	"context"
	"fmt"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"golang.org/x/sync/errgroup"
)

// AnalyzeOptions controls the size of the rankings.
type AnalyzeOptions struct {
	Top int
}

// Analyze runs every aggregate query over c concurrently and bundles the results.
// Each query writes its own field of the returned Analysis.
func Analyze(ctx context.Context, c Cleaned, report entity.CleaningReport, opts AnalyzeOptions) (*entity.Analysis, error) {
	if opts.Top <= 0 {
		return nil, fmt.Errorf("%w: top must be positive, got %d", types.ErrInvalidArgument, opts.Top)
	}

	a := &entity.Analysis{Cleaning: report}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.MonthlySales = AggregateByPeriod(c)
		a.Trend = FitTrend(a.MonthlySales)
		return ctx.Err()
	})
	g.Go(func() error {
		var err error
		a.TopProducts, err = TopN(c, entity.DimensionProduct, entity.MeasureSales, opts.Top, entity.Descending)
		return err
	})
	g.Go(func() error {
		var err error
		a.TopProductsByQuantity, err = TopN(c, entity.DimensionProduct, entity.MeasureQuantity, opts.Top, entity.Descending)
		return err
	})
	g.Go(func() error {
		var err error
		a.CountrySales, err = Rank(c, entity.DimensionCountry, entity.MeasureSales, entity.Descending)
		return err
	})
	g.Go(func() error {
		a.SeasonalAverages = SeasonalAverage(c)
		return ctx.Err()
	})
	g.Go(func() error {
		a.CustomerOrders = CustomerOrderDistribution(c)
		return ctx.Err()
	})
	g.Go(func() error {
		a.Cohort = CohortMatrix(c)
		return ctx.Err()
	})
	g.Go(func() error {
		a.Metrics = KeyMetrics(c)
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error computing aggregates: %w", err)
	}
	return a, nil
}
