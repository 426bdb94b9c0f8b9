package marketdata

import (
	"context"
	"errors"
	"time"

	"StockDash/internal/domain/models"
	domrepo "StockDash/internal/domain/repository"
	"StockDash/pkg/logger"
)

// Fetcher is the boundary between the dashboard and the market data provider.
// It never returns an error: every failure collapses to a zero-row table whose
// Reason says what happened.
type Fetcher struct {
	provider domrepo.ChartProvider
	metrics  domrepo.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClock overrides the wall clock used for explicit windows.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		if now != nil {
			f.now = now
		}
	}
}

func NewFetcher(p domrepo.ChartProvider, m domrepo.Metrics, l *logger.Logger, opts ...Option) *Fetcher {
	if m == nil {
		m = domrepo.NopMetrics{}
	}
	if l == nil {
		l = logger.NewNop()
	}
	f := &Fetcher{provider: p, metrics: m, log: l, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads symbol for period sampled at interval.
func (f *Fetcher) Fetch(ctx context.Context, symbol string, period domrepo.Period, interval domrepo.Interval) models.RawTable {
	start := time.Now()
	q := f.query(symbol, period, interval)

	table, err := f.provider.Chart(ctx, q)
	f.metrics.RecordLatency("fetch", time.Since(start).Seconds())

	if err != nil {
		reason := classify(err)
		f.metrics.RecordFetch(string(reason))
		f.metrics.RecordError("fetch_" + string(reason))
		f.log.Warn("market data fetch failed",
			logger.String("provider", f.provider.Name()),
			logger.String("symbol", symbol),
			logger.String("period", string(period)),
			logger.String("interval", string(interval)),
			logger.String("reason", string(reason)),
			logger.Error(err),
		)
		return models.EmptyTable(symbol, reason)
	}

	if table.Len() == 0 {
		table = models.EmptyTable(symbol, models.ReasonEmpty)
	} else if table.Reason == "" {
		table.Reason = models.ReasonOK
	}
	if table.Symbol == "" {
		table.Symbol = symbol
	}

	f.metrics.RecordFetch(string(table.Reason))
	f.log.Debug("market data fetched",
		logger.String("symbol", symbol),
		logger.String("period", string(period)),
		logger.Int("rows", table.Len()),
		logger.Duration("took_ms", time.Since(start)),
	)
	return table
}

func (f *Fetcher) query(symbol string, period domrepo.Period, interval domrepo.Interval) models.ChartQuery {
	q := models.ChartQuery{Symbol: symbol, Interval: string(interval)}
	if domrepo.UsesExplicitWindow(period) {
		end := f.now().UTC()
		q.Start = end.AddDate(0, 0, -domrepo.TrailingDays)
		q.End = end
		return q
	}
	q.Range = string(period)
	return q
}

func classify(err error) models.FetchReason {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.ReasonCanceled
	case errors.Is(err, domrepo.ErrSymbolNotFound):
		return models.ReasonNotFound
	case errors.Is(err, domrepo.ErrRateLimited):
		return models.ReasonRateLimited
	case errors.Is(err, domrepo.ErrNoData):
		return models.ReasonEmpty
	default:
		return models.ReasonProviderError
	}
}
