package repository

import (
	"context"

	"StockDash/internal/domain/models"
)

// ChartProvider fetches one provider-shaped table per query.
type ChartProvider interface {
	Name() string
	Chart(ctx context.Context, q models.ChartQuery) (models.RawTable, error)
}

// Metrics labels stay bounded: fetches carry only their outcome and last
// prices are kept for tracked symbols only.
type Metrics interface {
	RecordFetch(outcome string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordFetch(string) {}
func (NopMetrics) RecordError(string) {}
func (NopMetrics) RecordLastPrice(string, float64) {}
func (NopMetrics) RecordLatency(string, float64) {}

// MarketFetcher returns a zero-row table on any failure.
type MarketFetcher interface {
	Fetch(ctx context.Context, symbol string, period Period, interval Interval) models.RawTable
}

type SeriesNormalizer interface {
	Normalize(raw models.RawTable) (models.PriceSeries, error)
}
