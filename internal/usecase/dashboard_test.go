package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"StockDash/internal/domain/models"
	domrepo "StockDash/internal/domain/repository"
	"StockDash/internal/services/normalizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboard(f domrepo.MarketFetcher, n domrepo.SeriesNormalizer) *DashboardUseCase {
	if n == nil {
		n = normalizer.New(time.UTC)
	}
	return NewDashboardUseCase(f, n, nil, nil, DashboardConfig{DefaultSymbol: "ADBE", IndicatorWindow: 20})
}

func TestUpdate_Success(t *testing.T) {
	f := &fakeFetcher{FetchFunc: func(ctx context.Context, symbol string) models.RawTable {
		return rawBars(symbol, rampCloses(100, 30)...)
	}}
	uc := newDashboard(f, nil)

	view := uc.Update(context.Background(), models.DashboardParams{
		Symbol:     "adbe",
		Period:     "1mo",
		ChartType:  models.ChartCandlestick,
		Indicators: []string{models.IndicatorSMA20, models.IndicatorEMA20},
	})

	require.NotNil(t, view)
	assert.Equal(t, models.StatusOK, view.Status)
	assert.Empty(t, view.Message)
	assert.Empty(t, view.Warning)
	assert.NotEmpty(t, view.RunID)
	assert.Equal(t, "ADBE", view.Symbol)
	assert.Equal(t, "1d", view.Interval)

	calls := f.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, fetchCall{Symbol: "ADBE", Period: domrepo.Period1M, Interval: domrepo.Interval1d}, calls[0])

	require.NotNil(t, view.Summary)
	assert.Equal(t, 129.0, view.Summary.LastClose)
	assert.Equal(t, 29.0, view.Summary.PriceChange)
	assert.InDelta(t, 29.0, view.Summary.PctChange.Float64, 1e-9)
	assert.Equal(t, int64(3000), view.Summary.TotalVolume)

	require.NotNil(t, view.Technical)
	assert.Equal(t, 30, view.Technical.Len())
	assert.False(t, view.Technical.SMA[18].Valid)
	assert.InDelta(t, 109.5, view.Technical.SMA[19].Float64, 1e-9)

	require.NotNil(t, view.Chart)
	assert.Equal(t, "ADBE 1MO Chart", view.Chart.Layout.Title)
	assert.Equal(t, "Time", view.Chart.Layout.XAxisTitle)
	assert.Equal(t, "Price (USD)", view.Chart.Layout.YAxisTitle)
	assert.Equal(t, 600, view.Chart.Layout.Height)
	require.Len(t, view.Chart.Traces, 3)
	assert.Equal(t, "candlestick", view.Chart.Traces[0].Type)
	assert.Len(t, view.Chart.Traces[0].Close, 30)
	assert.Equal(t, models.IndicatorSMA20, view.Chart.Traces[1].Name)
	assert.Equal(t, models.IndicatorEMA20, view.Chart.Traces[2].Name)
}

func TestUpdate_NoDataSkipsComputation(t *testing.T) {
	f := &fakeFetcher{FetchFunc: func(ctx context.Context, symbol string) models.RawTable {
		return models.EmptyTable(symbol, models.ReasonNotFound)
	}}
	n := &fakeNormalizer{NormalizeFunc: func(raw models.RawTable) (models.PriceSeries, error) {
		t.Fatal("normalizer must not run on an empty fetch")
		return models.PriceSeries{}, nil
	}}

	view := newDashboard(f, n).Update(context.Background(), models.DashboardParams{Symbol: "ZZZZ", Period: "1y"})

	assert.Equal(t, models.StatusNoData, view.Status)
	assert.Equal(t, "No data available for ZZZZ in the selected time period.", view.Message)
	assert.Zero(t, n.calls)
	assert.Nil(t, view.Summary)
	assert.Nil(t, view.Technical)
	assert.Nil(t, view.Chart)
}

func TestUpdate_AllRowsDroppedIsNoData(t *testing.T) {
	raw := rawBars("ADBE", 1, 2)
	raw.Columns[models.ColumnKey{Field: models.FieldClose}] = []any{nil, nil}
	f := &fakeFetcher{FetchFunc: func(ctx context.Context, symbol string) models.RawTable { return raw }}

	view := newDashboard(f, nil).Update(context.Background(), models.DashboardParams{Symbol: "ADBE"})
	assert.Equal(t, models.StatusNoData, view.Status)
}

func TestUpdate_ShortSeriesKeepsMetricsAndWarns(t *testing.T) {
	f := &fakeFetcher{FetchFunc: func(ctx context.Context, symbol string) models.RawTable {
		return rawBars(symbol, 10, 11, 12, 13, 14)
	}}

	view := newDashboard(f, nil).Update(context.Background(), models.DashboardParams{
		Symbol:     "ADBE",
		Indicators: []string{models.IndicatorSMA20, models.IndicatorEMA20},
	})

	assert.Equal(t, models.StatusOK, view.Status)
	assert.Contains(t, view.Warning, "Technical indicators unavailable")
	require.NotNil(t, view.Summary)
	assert.Equal(t, 14.0, view.Summary.LastClose)

	require.NotNil(t, view.Technical)
	assert.Equal(t, 5, view.Technical.Len())
	assert.False(t, view.Technical.HasSMA())
	assert.False(t, view.Technical.HasEMA())

	require.Len(t, view.Chart.Traces, 1)
}

func TestUpdate_LineChartWithOneOverlay(t *testing.T) {
	f := &fakeFetcher{FetchFunc: func(ctx context.Context, symbol string) models.RawTable {
		return rawBars(symbol, rampCloses(50, 25)...)
	}}

	view := newDashboard(f, nil).Update(context.Background(), models.DashboardParams{
		Symbol:     "MSFT",
		Period:     "1wk",
		ChartType:  models.ChartLine,
		Indicators: []string{models.IndicatorEMA20},
	})

	require.NotNil(t, view.Chart)
	assert.Equal(t, "MSFT 1WK Chart", view.Chart.Layout.Title)
	require.Len(t, view.Chart.Traces, 2)
	assert.Equal(t, "scatter", view.Chart.Traces[0].Type)
	assert.Equal(t, "lines", view.Chart.Traces[0].Mode)
	assert.Len(t, view.Chart.Traces[0].Y, 25)
	assert.Empty(t, view.Chart.Traces[0].Open)
	assert.Equal(t, models.IndicatorEMA20, view.Chart.Traces[1].Name)

	assert.Equal(t, domrepo.Interval30m, f.Calls()[0].Interval)
}

func TestUpdate_NormalizeErrorIsReported(t *testing.T) {
	f := &fakeFetcher{FetchFunc: func(ctx context.Context, symbol string) models.RawTable {
		return rawBars(symbol, 1, 2, 3)
	}}
	n := &fakeNormalizer{NormalizeFunc: func(raw models.RawTable) (models.PriceSeries, error) {
		return models.PriceSeries{}, errors.New("cell cannot be reduced")
	}}

	view := newDashboard(f, n).Update(context.Background(), models.DashboardParams{Symbol: "ADBE"})

	assert.Equal(t, models.StatusError, view.Status)
	assert.True(t, strings.HasPrefix(view.Message, "Error updating dashboard: "))
	assert.Contains(t, view.Message, "cell cannot be reduced")
	assert.Equal(t, RetryHint, view.Hint)
	assert.Nil(t, view.Series)
}

func TestUpdate_PanicIsContained(t *testing.T) {
	f := &fakeFetcher{FetchFunc: func(ctx context.Context, symbol string) models.RawTable {
		panic("provider exploded")
	}}

	var view *models.DashboardView
	require.NotPanics(t, func() {
		view = newDashboard(f, nil).Update(context.Background(), models.DashboardParams{Symbol: "ADBE"})
	})

	require.NotNil(t, view)
	assert.Equal(t, models.StatusError, view.Status)
	assert.Contains(t, view.Message, "provider exploded")
	assert.Equal(t, RetryHint, view.Hint)
}

func TestUpdate_ResolvesSymbolAndDefaults(t *testing.T) {
	f := &fakeFetcher{FetchFunc: func(ctx context.Context, symbol string) models.RawTable {
		return models.EmptyTable(symbol, models.ReasonEmpty)
	}}
	uc := newDashboard(f, nil)

	view := uc.Update(context.Background(), models.DashboardParams{Symbol: "   "})
	assert.Equal(t, "ADBE", view.Symbol)
	assert.Equal(t, "1d", view.Period)
	assert.Equal(t, "1m", view.Interval)
	assert.Equal(t, models.ChartCandlestick, view.ChartType)

	view = uc.Update(context.Background(), models.DashboardParams{Symbol: "  googl ", Period: "max"})
	assert.Equal(t, "GOOGL", view.Symbol)
	assert.Equal(t, "1wk", view.Interval)
}
