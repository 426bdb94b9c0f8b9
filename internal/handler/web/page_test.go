package web

import (
	"context"
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

type fetcherFunc func(ctx context.Context, symbol string) models.RawTable

func (f fetcherFunc) Fetch(ctx context.Context, symbol string, _ domrepo.Period, _ domrepo.Interval) models.RawTable {
	return f(ctx, symbol)
}

func bars(symbol string, n int) models.RawTable {
	start := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	t := models.RawTable{Symbol: symbol, Index: make([]time.Time, n), Columns: map[models.ColumnKey][]any{}}
	cols := make(map[string][]any)
	for i := 0; i < n; i++ {
		c := 1000 + float64(i)
		t.Index[i] = start.Add(time.Duration(i) * time.Minute)
		cols[models.FieldOpen] = append(cols[models.FieldOpen], c-0.5)
		cols[models.FieldHigh] = append(cols[models.FieldHigh], c+1)
		cols[models.FieldLow] = append(cols[models.FieldLow], c-1)
		cols[models.FieldClose] = append(cols[models.FieldClose], c)
		cols[models.FieldVolume] = append(cols[models.FieldVolume], 1500.0)
	}
	for f, v := range cols {
		t.Columns[models.ColumnKey{Field: f}] = v
	}
	return t
}

func newTestServer(t *testing.T, f fetcherFunc) *xhttp.Server {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	n := normalizer.New(time.UTC)
	log := xlogger.NewNop()
	dash := usecase.NewDashboardUseCase(f, n, nil, log, usecase.DashboardConfig{DefaultSymbol: "ADBE", IndicatorWindow: 20})
	watch := usecase.NewWatchlistUseCase(f, n, nil, log, usecase.WatchlistConfig{Symbols: []string{"AAPL", "GOOGL", "AMZN", "MSFT"}, Concurrency: 2})
	return xhttp.NewServer(NewHandler(log, r, dash, watch), xhttp.WithMetrics("", 0))
}

func get(s *xhttp.Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndex_WithoutUpdateShowsFormAndWatchlist(t *testing.T) {
	var dashboardFetches int
	s := newTestServer(t, func(ctx context.Context, symbol string) models.RawTable {
		if symbol == "ADBE" {
			dashboardFetches++
		}
		if symbol == "GOOGL" {
			return models.EmptyTable(symbol, models.ReasonNotFound)
		}
		return bars(symbol, 3)
	})

	rec := get(s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Zero(t, dashboardFetches)
	assert.Contains(t, body, `value="ADBE"`)
	assert.Contains(t, body, `<option value="1d" selected>1d</option>`)
	assert.Contains(t, body, `<option value="Candlestick" selected>Candlestick</option>`)
	assert.Contains(t, body, "1002.00 USD")
	assert.Contains(t, body, "2.50 (0.25%)")
	assert.Contains(t, body, "Error loading GOOGL: symbol not found")
	assert.Contains(t, body, "Pick a ticker and press Update.")
	assert.NotContains(t, body, "Historical Data")
}

func TestIndex_UpdateRendersDashboard(t *testing.T) {
	s := newTestServer(t, func(ctx context.Context, symbol string) models.RawTable {
		return bars(symbol, 30)
	})

	rec := get(s, "/?symbol=adbe&period=1mo&chart=Line&indicators=SMA+20&indicators=EMA+20&update=1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "ADBE Last Price")
	assert.Contains(t, body, "1029.00 USD")
	assert.Contains(t, body, "29.00 (2.90%)")
	assert.Contains(t, body, "1030.00 USD")
	assert.Contains(t, body, "45,000")
	assert.Contains(t, body, "Historical Data")
	assert.Contains(t, body, "Technical Indicators")
	assert.Contains(t, body, "<td>1009.50</td>")
	assert.Contains(t, body, "window.chartSpec = ")
	assert.Contains(t, body, `"title":"ADBE 1MO Chart"`)
	assert.Contains(t, body, `<option value="Line" selected>Line</option>`)
	assert.Contains(t, body, `value="SMA 20" checked`)
}

func TestIndex_UpdateWithNoData(t *testing.T) {
	s := newTestServer(t, func(ctx context.Context, symbol string) models.RawTable {
		return models.EmptyTable(symbol, models.ReasonEmpty)
	})

	rec := get(s, "/?symbol=ZZZZ&update=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data available for ZZZZ in the selected time period.")
	assert.NotContains(t, rec.Body.String(), "window.chartSpec")
}

func TestIndex_UpdateFailureShowsHint(t *testing.T) {
	s := newTestServer(t, func(ctx context.Context, symbol string) models.RawTable {
		if symbol == "BOOM" {
			panic("bad frame")
		}
		return bars(symbol, 2)
	})

	rec := get(s, "/?symbol=BOOM&update=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error updating dashboard: unexpected failure: bad frame")
	assert.Contains(t, rec.Body.String(), usecase.RetryHint)
}

func TestIndex_InvalidInput(t *testing.T) {
	s := newTestServer(t, func(ctx context.Context, symbol string) models.RawTable {
		return bars(symbol, 2)
	})

	rec := get(s, "/?period=5y&update=1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "period must be one of: 1d, 1wk, 1mo, 1y, max")
	assert.NotContains(t, rec.Body.String(), "Last Price")
}

func TestAssetsAreServed(t *testing.T) {
	s := newTestServer(t, func(ctx context.Context, symbol string) models.RawTable { return models.RawTable{} })

	rec := get(s, "/assets/dashboard.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Plotly.newPlot")

	rec = get(s, "/assets/dashboard.css")
	assert.Equal(t, http.StatusOK, rec.Code)
}
