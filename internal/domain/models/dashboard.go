package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// Chart styles.
const (
	ChartCandlestick = "Candlestick"
	ChartLine        = "Line"
)

// Overlay indicator labels as offered to the user.
const (
	IndicatorSMA20 = "SMA 20"
	IndicatorEMA20 = "EMA 20"
)

// DashboardParams are the request parameters of one Update action.
type DashboardParams struct {
	Symbol     string
	Period     string
	ChartType  string
	Indicators []string
}

// HasIndicator reports whether label was selected.
func (p DashboardParams) HasIndicator(label string) bool {
	for _, l := range p.Indicators {
		if l == label {
			return true
		}
	}
	return false
}

type DashboardStatus string

const (
	StatusOK     DashboardStatus = "ok"
	StatusNoData DashboardStatus = "no_data"
	StatusError  DashboardStatus = "error"
)

// ChartTrace is one plotted series. Field names follow Plotly's trace schema.
type ChartTrace struct {
	Type  string       `json:"type"`
	Mode  string       `json:"mode,omitempty"`
	Name  string       `json:"name"`
	X     []time.Time  `json:"x"`
	Open  []float64    `json:"open,omitempty"`
	High  []float64    `json:"high,omitempty"`
	Low   []float64    `json:"low,omitempty"`
	Close []float64    `json:"close,omitempty"`
	Y     []null.Float `json:"y,omitempty"`
}

type ChartLayout struct {
	Title      string `json:"title"`
	XAxisTitle string `json:"xaxis_title"`
	YAxisTitle string `json:"yaxis_title"`
	Height     int    `json:"height"`
}

type ChartSpec struct {
	Traces []ChartTrace `json:"traces"`
	Layout ChartLayout  `json:"layout"`
}

// DashboardView is the outcome of one Update action.
type DashboardView struct {
	RunID      string          `json:"run_id"`
	Symbol     string          `json:"symbol"`
	Period     string          `json:"period"`
	Interval   string          `json:"interval"`
	ChartType  string          `json:"chart_type"`
	Indicators []string        `json:"indicators"`
	Status     DashboardStatus `json:"status"`
	Message    string          `json:"message,omitempty"`
	Hint       string          `json:"hint,omitempty"`
	Warning    string          `json:"warning,omitempty"`

	Series    *PriceSeries     `json:"series,omitempty"`
	Summary   *SummaryMetrics  `json:"summary,omitempty"`
	Technical *IndicatorSeries `json:"technical,omitempty"`
	Chart     *ChartSpec       `json:"chart,omitempty"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// WatchQuote is one entry of the watch-list panel. Error is set instead of the
// prices when the symbol could not be loaded.
type WatchQuote struct {
	Symbol    string     `json:"symbol"`
	LastPrice float64    `json:"last_price"`
	Change    float64    `json:"change"`
	PctChange null.Float `json:"pct_change"`
	Error     string     `json:"error,omitempty"`
}

func (q WatchQuote) OK() bool { return q.Error == "" }

type Watchlist struct {
	Quotes      []WatchQuote `json:"quotes"`
	RefreshedAt time.Time    `json:"refreshed_at"`
}
