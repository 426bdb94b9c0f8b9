package usecase

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"StockDash/internal/domain/models"
	domrepo "StockDash/internal/domain/repository"
	"StockDash/internal/services/features"
	"StockDash/pkg/logger"
	"StockDash/pkg/util"

	"github.com/google/uuid"
)

// RetryHint accompanies every failed update.
const RetryHint = "Please try a different ticker symbol or time period."

type DashboardConfig struct {
	DefaultSymbol   string
	IndicatorWindow int
	Timeout         time.Duration
}

// DashboardUseCase runs the Update action: fetch, normalize, summarize,
// compute indicators and build the chart.
type DashboardUseCase struct {
	fetcher    domrepo.MarketFetcher
	normalizer domrepo.SeriesNormalizer
	metrics    domrepo.Metrics
	log        *logger.Logger
	cfg        DashboardConfig
	now        func() time.Time
}

func NewDashboardUseCase(f domrepo.MarketFetcher, n domrepo.SeriesNormalizer, m domrepo.Metrics, l *logger.Logger, cfg DashboardConfig) *DashboardUseCase {
	if cfg.DefaultSymbol == "" {
		cfg.DefaultSymbol = "ADBE"
	}
	if cfg.IndicatorWindow <= 0 {
		cfg.IndicatorWindow = features.DefaultWindow
	}
	if m == nil {
		m = domrepo.NopMetrics{}
	}
	if l == nil {
		l = logger.NewNop()
	}
	return &DashboardUseCase{fetcher: f, normalizer: n, metrics: m, log: l, cfg: cfg, now: time.Now}
}

// DefaultSymbol is the symbol used when a request leaves it blank.
func (uc *DashboardUseCase) DefaultSymbol() string { return uc.cfg.DefaultSymbol }

// Update never returns nil. Failures are reported through the view status,
// including panics raised anywhere in the pipeline.
func (uc *DashboardUseCase) Update(ctx context.Context, p models.DashboardParams) (view *models.DashboardView) {
	start := time.Now()
	p = uc.resolve(p)
	period := domrepo.NormalizePeriod(p.Period)
	interval := domrepo.IntervalFor(period)

	view = &models.DashboardView{
		RunID:      uuid.NewString(),
		Symbol:     p.Symbol,
		Period:     string(period),
		Interval:   string(interval),
		ChartType:  p.ChartType,
		Indicators: p.Indicators,
		Status:     models.StatusOK,
		FetchedAt:  uc.now(),
	}
	log := uc.log.With(logger.String("run_id", view.RunID), logger.String("symbol", p.Symbol))

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("unexpected failure: %v", r)
			log.Error("dashboard update panicked", logger.Error(err), logger.String("stack", string(debug.Stack())))
			uc.fail(view, err)
		}
		uc.metrics.RecordLatency("dashboard_update", time.Since(start).Seconds())
	}()

	if uc.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.Timeout)
		defer cancel()
	}

	raw := uc.fetcher.Fetch(ctx, p.Symbol, period, interval)
	if raw.Len() == 0 {
		log.Info("no data for dashboard", logger.String("period", string(period)), logger.String("reason", string(raw.Reason)))
		uc.noData(view)
		return view
	}

	series, err := uc.normalizer.Normalize(raw)
	if err != nil {
		log.Error("normalize failed", logger.Error(err))
		uc.fail(view, fmt.Errorf("normalize %s: %w", p.Symbol, err))
		return view
	}
	if series.Len() == 0 {
		log.Info("no usable rows after normalization", logger.Int("raw_rows", raw.Len()))
		uc.noData(view)
		return view
	}

	summary, err := features.ComputeSummary(series)
	if err != nil {
		uc.fail(view, fmt.Errorf("summary %s: %w", p.Symbol, err))
		return view
	}

	technical, err := features.ComputeIndicators(series, uc.cfg.IndicatorWindow)
	if err != nil {
		log.Warn("technical indicators unavailable", logger.Int("rows", series.Len()), logger.Error(err))
		uc.metrics.RecordError("indicators")
		view.Warning = fmt.Sprintf("Technical indicators unavailable: %v", err)
	}

	chart := BuildChart(p.Symbol, string(period), p.ChartType, p.Indicators, series, technical)

	view.Series = &series
	view.Summary = &summary
	view.Technical = &technical
	view.Chart = &chart

	uc.metrics.RecordLastPrice(p.Symbol, summary.LastClose)
	log.Info("dashboard updated",
		logger.String("period", string(period)),
		logger.Int("rows", series.Len()),
		logger.Float64("last_close", summary.LastClose),
		logger.Duration("took_ms", time.Since(start)),
	)
	return view
}

func (uc *DashboardUseCase) resolve(p models.DashboardParams) models.DashboardParams {
	p.Symbol = util.NormalizeSymbol(p.Symbol)
	if p.Symbol == "" {
		p.Symbol = uc.cfg.DefaultSymbol
	}
	if p.ChartType != models.ChartLine {
		p.ChartType = models.ChartCandlestick
	}
	if p.Indicators == nil {
		p.Indicators = []string{}
	}
	return p
}

func (uc *DashboardUseCase) noData(view *models.DashboardView) {
	view.Status = models.StatusNoData
	view.Message = fmt.Sprintf("No data available for %s in the selected time period.", view.Symbol)
}

func (uc *DashboardUseCase) fail(view *models.DashboardView, err error) {
	uc.metrics.RecordError("dashboard_update")
	view.Status = models.StatusError
	view.Message = fmt.Sprintf("Error updating dashboard: %v", err)
	view.Hint = RetryHint
	view.Series = nil
	view.Summary = nil
	view.Technical = nil
	view.Chart = nil
	view.Warning = ""
}
