package models

import "time"

// Column names of a market data table.
const (
	FieldOpen   = "Open"
	FieldHigh   = "High"
	FieldLow    = "Low"
	FieldClose  = "Close"
	FieldVolume = "Volume"
)

// OHLCVFields lists the columns every table must carry, in display order.
var OHLCVFields = []string{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// FetchReason explains the state of a fetched table. Only used for logs and metrics;
// callers decide on success by row count alone.
type FetchReason string

const (
	ReasonOK            FetchReason = "ok"
	ReasonEmpty         FetchReason = "empty"
	ReasonNotFound      FetchReason = "not_found"
	ReasonRateLimited   FetchReason = "rate_limited"
	ReasonProviderError FetchReason = "provider_error"
	ReasonCanceled      FetchReason = "canceled"
)

// Describe returns a short human readable explanation of the reason.
func (r FetchReason) Describe() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonNotFound:
		return "symbol not found"
	case ReasonRateLimited:
		return "rate limited by data provider"
	case ReasonCanceled:
		return "request canceled"
	case ReasonProviderError:
		return "data provider unavailable"
	default:
		return "no data returned"
	}
}

// ColumnKey addresses a column. Ticker is the optional secondary level some
// providers add when a download may cover several symbols.
type ColumnKey struct {
	Field  string
	Ticker string
}

// RawTable is the provider-shaped table handed from the fetcher to the normalizer.
// Cells are dynamically typed: numbers, nil, or nested containers.
type RawTable struct {
	Symbol  string
	Index   []time.Time
	Naive   bool // Index carries no offset; wall clock values are UTC
	Columns map[ColumnKey][]any
	Reason  FetchReason
}

// Len returns the number of rows.
func (t RawTable) Len() int { return len(t.Index) }

// EmptyTable builds a zero-row table for symbol.
func EmptyTable(symbol string, reason FetchReason) RawTable {
	return RawTable{Symbol: symbol, Reason: reason}
}

// ChartQuery describes one provider request. Either Range is set, or Start/End
// bound an explicit window.
type ChartQuery struct {
	Symbol   string
	Interval string
	Range    string
	Start    time.Time
	End      time.Time
}
