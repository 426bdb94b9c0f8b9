package features

import (
	"errors"
	"math"

	"StockDash/internal/domain/models"

	"github.com/guregu/null/v6"
)

var (
	// ErrInsufficientData is returned when a series is too short for a computation.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrMalformedClose is returned when close values are not finite numbers.
	ErrMalformedClose = errors.New("malformed close values")
)

// ComputeSummary reduces a series to its six summary metrics.
// The change basis is the first close of the window, not the prior session close.
func ComputeSummary(series models.PriceSeries) (models.SummaryMetrics, error) {
	if series.Len() == 0 {
		return models.SummaryMetrics{}, ErrInsufficientData
	}

	first := series.First().Close
	last := series.Last().Close
	change := last - first

	high := math.Inf(-1)
	low := math.Inf(1)
	var volume int64
	for _, o := range series.Observations {
		if o.High > high {
			high = o.High
		}
		if o.Low < low {
			low = o.Low
		}
		volume += o.Volume
	}

	return models.SummaryMetrics{
		LastClose:   last,
		PriceChange: change,
		PctChange:   PercentChange(change, first),
		PeriodHigh:  high,
		PeriodLow:   low,
		TotalVolume: volume,
	}, nil
}

// PercentChange returns change/basis*100, or an invalid value when the basis is
// zero or the result is not finite.
func PercentChange(change, basis float64) null.Float {
	if basis == 0 {
		return null.Float{}
	}
	pct := change / basis * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return null.Float{}
	}
	return null.FloatFrom(pct)
}
