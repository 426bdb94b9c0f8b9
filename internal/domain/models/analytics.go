package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// SummaryMetrics are the six scalars shown above the chart.
// PctChange is invalid (JSON null) when the first close is zero.
type SummaryMetrics struct {
	LastClose   float64    `json:"last_close"`
	PriceChange float64    `json:"price_change"`
	PctChange   null.Float `json:"pct_change"`
	PeriodHigh  float64    `json:"period_high"`
	PeriodLow   float64    `json:"period_low"`
	TotalVolume int64      `json:"total_volume"`
}

// IndicatorSeries holds moving averages aligned 1:1 with a PriceSeries.
type IndicatorSeries struct {
	Window     int          `json:"window"`
	Timestamps []time.Time  `json:"timestamps"`
	SMA        []null.Float `json:"sma"`
	EMA        []null.Float `json:"ema"`
}

func (s IndicatorSeries) Len() int { return len(s.Timestamps) }

// HasSMA reports whether at least one SMA value is defined.
func (s IndicatorSeries) HasSMA() bool { return anyValid(s.SMA) }

// HasEMA reports whether at least one EMA value is defined.
func (s IndicatorSeries) HasEMA() bool { return anyValid(s.EMA) }

func anyValid(values []null.Float) bool {
	for _, v := range values {
		if v.Valid {
			return true
		}
	}
	return false
}
