package usecase

import (
	"context"
	"sync"
	"time"

	"StockDash/internal/domain/models"
	domrepo "StockDash/internal/domain/repository"
)

type fetchCall struct {
	Symbol   string
	Period   domrepo.Period
	Interval domrepo.Interval
}

type fakeFetcher struct {
	FetchFunc func(ctx context.Context, symbol string) models.RawTable

	mu    sync.Mutex
	calls []fetchCall
}

func (f *fakeFetcher) Fetch(ctx context.Context, symbol string, period domrepo.Period, interval domrepo.Interval) models.RawTable {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{Symbol: symbol, Period: period, Interval: interval})
	f.mu.Unlock()
	return f.FetchFunc(ctx, symbol)
}

func (f *fakeFetcher) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}

type fakeNormalizer struct {
	NormalizeFunc func(raw models.RawTable) (models.PriceSeries, error)
	calls         int
}

func (n *fakeNormalizer) Normalize(raw models.RawTable) (models.PriceSeries, error) {
	n.calls++
	return n.NormalizeFunc(raw)
}

// rawBars builds a UTC raw table with one bar per minute. Open sits one below
// close.
func rawBars(symbol string, closes ...float64) models.RawTable {
	start := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	t := models.RawTable{
		Symbol:  symbol,
		Index:   make([]time.Time, len(closes)),
		Columns: map[models.ColumnKey][]any{},
		Reason:  models.ReasonOK,
	}
	cols := map[string][]any{}
	for i, c := range closes {
		t.Index[i] = start.Add(time.Duration(i) * time.Minute)
		cols[models.FieldOpen] = append(cols[models.FieldOpen], c-1)
		cols[models.FieldHigh] = append(cols[models.FieldHigh], c+2)
		cols[models.FieldLow] = append(cols[models.FieldLow], c-2)
		cols[models.FieldClose] = append(cols[models.FieldClose], c)
		cols[models.FieldVolume] = append(cols[models.FieldVolume], float64(100))
	}
	for f, v := range cols {
		t.Columns[models.ColumnKey{Field: f}] = v
	}
	return t
}

func rampCloses(from float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)
	}
	return out
}
