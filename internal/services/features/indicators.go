package features

import (
	"fmt"
	"math"

	"StockDash/internal/domain/models"

	"github.com/guregu/null/v6"
)

// DefaultWindow is the moving average window used by the dashboard.
const DefaultWindow = 20

// ComputeIndicators derives SMA and EMA of the close over window.
//
// On failure both series are returned fully undefined, one entry per
// observation, together with the reason. Callers treat the error as non-fatal.
func ComputeIndicators(series models.PriceSeries, window int) (models.IndicatorSeries, error) {
	n := series.Len()
	out := models.IndicatorSeries{
		Window:     window,
		Timestamps: series.Timestamps(),
	}

	closes := series.Closes()
	var err error
	switch {
	case window < 1:
		err = fmt.Errorf("window %d: %w", window, ErrInsufficientData)
	case n < window:
		err = fmt.Errorf("%d observations for window %d: %w", n, window, ErrInsufficientData)
	default:
		for i, c := range closes {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				err = fmt.Errorf("close at position %d: %w", i, ErrMalformedClose)
				break
			}
		}
	}
	if err != nil {
		out.SMA = make([]null.Float, n)
		out.EMA = make([]null.Float, n)
		return out, err
	}

	out.SMA = SMA(closes, window)
	out.EMA = EMA(closes, window)
	return out, nil
}

// SMA returns the trailing simple moving average; positions before window-1 are undefined.
func SMA(values []float64, window int) []null.Float {
	out := make([]null.Float, len(values))
	if window < 1 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += values[j]
		}
		out[i] = null.FloatFrom(sum / float64(window))
	}
	return out
}

// EMA returns the exponential moving average with alpha = 2/(window+1), seeded at
// position window-1 with the SMA of the first window values. Earlier positions
// are undefined.
func EMA(values []float64, window int) []null.Float {
	out := make([]null.Float, len(values))
	if window < 1 || len(values) < window {
		return out
	}

	alpha := 2.0 / float64(window+1)
	seed := 0.0
	for _, v := range values[:window] {
		seed += v
	}
	prev := seed / float64(window)
	out[window-1] = null.FloatFrom(prev)

	for i := window; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out[i] = null.FloatFrom(prev)
	}
	return out
}
