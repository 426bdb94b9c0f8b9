package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockDash/internal/domain/models"
	domrepo "StockDash/internal/domain/repository"
	"StockDash/internal/services/normalizer"
	"StockDash/internal/usecase"
	xhttp "StockDash/pkg/http"
	xlogger "StockDash/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetcherFunc func(ctx context.Context, symbol string, period domrepo.Period, interval domrepo.Interval) models.RawTable

func (f fetcherFunc) Fetch(ctx context.Context, symbol string, period domrepo.Period, interval domrepo.Interval) models.RawTable {
	return f(ctx, symbol, period, interval)
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func bars(symbol string, n int) models.RawTable {
	start := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	t := models.RawTable{Symbol: symbol, Index: make([]time.Time, n), Columns: map[models.ColumnKey][]any{}}
	cols := make(map[string][]any)
	for i := 0; i < n; i++ {
		c := 100 + float64(i)
		t.Index[i] = start.Add(time.Duration(i) * time.Minute)
		cols[models.FieldOpen] = append(cols[models.FieldOpen], c)
		cols[models.FieldHigh] = append(cols[models.FieldHigh], c+1)
		cols[models.FieldLow] = append(cols[models.FieldLow], c-1)
		cols[models.FieldClose] = append(cols[models.FieldClose], c)
		cols[models.FieldVolume] = append(cols[models.FieldVolume], 10.0)
	}
	for f, v := range cols {
		t.Columns[models.ColumnKey{Field: f}] = v
	}
	return t
}

func newTestServer(f fetcherFunc) *xhttp.Server {
	n := normalizer.New(time.UTC)
	log := xlogger.NewNop()
	dash := usecase.NewDashboardUseCase(f, n, nil, log, usecase.DashboardConfig{DefaultSymbol: "ADBE", IndicatorWindow: 20})
	watch := usecase.NewWatchlistUseCase(f, n, nil, log, usecase.WatchlistConfig{Symbols: []string{"AAPL", "GOOGL", "AMZN", "MSFT"}, Concurrency: 4})
	return xhttp.NewServer(NewDashboardEchoHandler(log, dash, watch), xhttp.WithMetrics("", 0))
}

func get(t *testing.T, s *xhttp.Server, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestDashboard_OK(t *testing.T) {
	var gotPeriod domrepo.Period
	s := newTestServer(func(ctx context.Context, symbol string, p domrepo.Period, iv domrepo.Interval) models.RawTable {
		gotPeriod = p
		return bars(symbol, 25)
	})

	rec, env := get(t, s, "/api/dashboard?symbol=adbe&period=1mo&chart=Line&indicators=SMA+20")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var view models.DashboardView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, models.StatusOK, view.Status)
	assert.Equal(t, "ADBE", view.Symbol)
	assert.Equal(t, "1d", view.Interval)
	assert.Equal(t, domrepo.Period1M, gotPeriod)
	assert.Equal(t, []string{"SMA 20"}, view.Indicators)
	require.NotNil(t, view.Summary)
	assert.Equal(t, 124.0, view.Summary.LastClose)
	require.NotNil(t, view.Technical)
	assert.False(t, view.Technical.SMA[0].Valid)
	require.NotNil(t, view.Chart)
	assert.Len(t, view.Chart.Traces, 2)
}

func TestDashboard_DefaultsApply(t *testing.T) {
	var gotSymbol string
	s := newTestServer(func(ctx context.Context, symbol string, p domrepo.Period, iv domrepo.Interval) models.RawTable {
		gotSymbol = symbol
		return models.EmptyTable(symbol, models.ReasonEmpty)
	})

	rec, env := get(t, s, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ADBE", gotSymbol)

	var view models.DashboardView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, models.StatusNoData, view.Status)
	assert.Equal(t, "No data available for ADBE in the selected time period.", view.Message)
	assert.Equal(t, "1d", view.Period)
	assert.Equal(t, models.ChartCandlestick, view.ChartType)
}

func TestDashboard_ValidationErrors(t *testing.T) {
	s := newTestServer(func(ctx context.Context, symbol string, p domrepo.Period, iv domrepo.Interval) models.RawTable {
		t.Fatal("fetch must not run on invalid input")
		return models.RawTable{}
	})

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"period", "period=2d", "period"},
		{"chart", "chart=Bars", "chart"},
		{"indicator", "indicators=RSI+14", "indicators[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := get(t, s, "/api/dashboard?"+tt.query)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var verrs []xhttp.ValidationError
			require.NoError(t, json.Unmarshal(env.Data, &verrs))
			require.NotEmpty(t, verrs)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestDashboard_PipelineFailure(t *testing.T) {
	s := newTestServer(func(ctx context.Context, symbol string, p domrepo.Period, iv domrepo.Interval) models.RawTable {
		panic("decoder blew up")
	})

	rec, env := get(t, s, "/api/dashboard?symbol=ADBE")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var view models.DashboardView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, models.StatusError, view.Status)
	assert.Contains(t, view.Message, "Error updating dashboard")
	assert.Equal(t, usecase.RetryHint, view.Hint)
}

func TestWatchlist(t *testing.T) {
	s := newTestServer(func(ctx context.Context, symbol string, p domrepo.Period, iv domrepo.Interval) models.RawTable {
		if symbol == "AMZN" {
			return models.EmptyTable(symbol, models.ReasonRateLimited)
		}
		return bars(symbol, 3)
	})

	rec, env := get(t, s, "/api/watchlist")
	require.Equal(t, http.StatusOK, rec.Code)

	var wl models.Watchlist
	require.NoError(t, json.Unmarshal(env.Data, &wl))
	require.Len(t, wl.Quotes, 4)
	assert.Equal(t, "AAPL", wl.Quotes[0].Symbol)
	assert.Equal(t, 102.0, wl.Quotes[0].LastPrice)
	assert.Equal(t, 2.0, wl.Quotes[0].Change)
	assert.Equal(t, "Error loading AMZN: rate limited by data provider", wl.Quotes[2].Error)
	assert.Empty(t, wl.Quotes[3].Error)
}

func TestPeriodsAndHealth(t *testing.T) {
	s := newTestServer(func(ctx context.Context, symbol string, p domrepo.Period, iv domrepo.Interval) models.RawTable {
		return models.RawTable{}
	})

	rec, env := get(t, s, "/api/periods")
	require.Equal(t, http.StatusOK, rec.Code)
	var specs []domrepo.PeriodSpec
	require.NoError(t, json.Unmarshal(env.Data, &specs))
	assert.Equal(t, []domrepo.PeriodSpec{
		{Period: "1d", Interval: "1m"},
		{Period: "1wk", Interval: "30m"},
		{Period: "1mo", Interval: "1d"},
		{Period: "1y", Interval: "1wk"},
		{Period: "max", Interval: "1wk"},
	}, specs)

	rec, _ = get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}
