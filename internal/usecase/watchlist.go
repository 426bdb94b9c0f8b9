package usecase

import (
	"context"
	"fmt"
	"time"

	"StockDash/internal/domain/models"
	domrepo "StockDash/internal/domain/repository"
	"StockDash/internal/services/features"
	"StockDash/pkg/logger"
	"StockDash/pkg/util"

	"golang.org/x/sync/errgroup"
)

type WatchlistConfig struct {
	Symbols     []string
	Concurrency int
}

// WatchlistUseCase refreshes the side panel quotes. Symbols are loaded
// independently; one failing symbol only affects its own entry.
type WatchlistUseCase struct {
	fetcher    domrepo.MarketFetcher
	normalizer domrepo.SeriesNormalizer
	metrics    domrepo.Metrics
	log        *logger.Logger
	symbols    []string
	limit      int
	now        func() time.Time
}

func NewWatchlistUseCase(f domrepo.MarketFetcher, n domrepo.SeriesNormalizer, m domrepo.Metrics, l *logger.Logger, cfg WatchlistConfig) *WatchlistUseCase {
	symbols := make([]string, 0, len(cfg.Symbols))
	for _, s := range cfg.Symbols {
		if s = util.NormalizeSymbol(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	limit := cfg.Concurrency
	if limit < 1 {
		limit = 1
	}
	if m == nil {
		m = domrepo.NopMetrics{}
	}
	if l == nil {
		l = logger.NewNop()
	}
	return &WatchlistUseCase{fetcher: f, normalizer: n, metrics: m, log: l, symbols: symbols, limit: limit, now: time.Now}
}

// Symbols returns the configured symbols in display order.
func (uc *WatchlistUseCase) Symbols() []string {
	out := make([]string, len(uc.symbols))
	copy(out, uc.symbols)
	return out
}

// Refresh loads the intraday window of every symbol. The result keeps the
// configured order.
func (uc *WatchlistUseCase) Refresh(ctx context.Context) models.Watchlist {
	start := time.Now()
	quotes := make([]models.WatchQuote, len(uc.symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.limit)
	for i, sym := range uc.symbols {
		g.Go(func() error {
			quotes[i] = uc.quote(gctx, sym)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, q := range quotes {
		if !q.OK() {
			failed++
		}
	}
	uc.metrics.RecordLatency("watchlist_refresh", time.Since(start).Seconds())
	uc.log.Debug("watchlist refreshed",
		logger.Strings("symbols", uc.symbols),
		logger.Int("failed", failed),
		logger.Duration("took_ms", time.Since(start)),
	)

	return models.Watchlist{Quotes: quotes, RefreshedAt: uc.now()}
}

func (uc *WatchlistUseCase) quote(ctx context.Context, symbol string) (q models.WatchQuote) {
	q.Symbol = symbol
	defer func() {
		if r := recover(); r != nil {
			uc.log.Error("watchlist symbol panicked", logger.String("symbol", symbol), logger.Any("panic", r))
			q = failedQuote(symbol, fmt.Sprint(r))
		}
		if !q.OK() {
			uc.metrics.RecordError("watchlist_symbol")
		}
	}()

	raw := uc.fetcher.Fetch(ctx, symbol, domrepo.Period1D, domrepo.IntervalFor(domrepo.Period1D))
	if raw.Len() == 0 {
		return failedQuote(symbol, raw.Reason.Describe())
	}

	series, err := uc.normalizer.Normalize(raw)
	if err != nil {
		uc.log.Warn("watchlist normalize failed", logger.String("symbol", symbol), logger.Error(err))
		return failedQuote(symbol, err.Error())
	}
	if series.Len() == 0 {
		return failedQuote(symbol, models.ReasonEmpty.Describe())
	}

	first, last := series.First(), series.Last()
	q.LastPrice = last.Close
	q.Change = last.Close - first.Open
	q.PctChange = features.PercentChange(q.Change, first.Open)
	uc.metrics.RecordLastPrice(symbol, last.Close)
	return q
}

func failedQuote(symbol, reason string) models.WatchQuote {
	return models.WatchQuote{
		Symbol: symbol,
		Error:  fmt.Sprintf("Error loading %s: %s", symbol, reason),
	}
}
