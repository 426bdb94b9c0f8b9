package models

import "time"

// Observation is one normalized OHLCV row.
type Observation struct {
	Timestamp time.Time `json:"datetime"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// PriceSeries is a normalized, strictly time-ascending series for one symbol.
type PriceSeries struct {
	Symbol       string        `json:"symbol"`
	Observations []Observation `json:"observations"`
}

func (s PriceSeries) Len() int { return len(s.Observations) }

// First returns the earliest observation. The series must not be empty.
func (s PriceSeries) First() Observation { return s.Observations[0] }

// Last returns the latest observation. The series must not be empty.
func (s PriceSeries) Last() Observation { return s.Observations[len(s.Observations)-1] }

func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Close
	}
	return out
}

func (s PriceSeries) Timestamps() []time.Time {
	out := make([]time.Time, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Timestamp
	}
	return out
}

// Raw converts the series back to a single-level, offset-aware RawTable.
func (s PriceSeries) Raw() RawTable {
	n := len(s.Observations)
	t := RawTable{
		Symbol:  s.Symbol,
		Index:   make([]time.Time, n),
		Columns: make(map[ColumnKey][]any, len(OHLCVFields)),
		Reason:  ReasonOK,
	}
	cols := make(map[string][]any, len(OHLCVFields))
	for _, f := range OHLCVFields {
		cols[f] = make([]any, n)
	}
	for i, o := range s.Observations {
		t.Index[i] = o.Timestamp
		cols[FieldOpen][i] = o.Open
		cols[FieldHigh][i] = o.High
		cols[FieldLow][i] = o.Low
		cols[FieldClose][i] = o.Close
		cols[FieldVolume][i] = o.Volume
	}
	for f, v := range cols {
		t.Columns[ColumnKey{Field: f}] = v
	}
	return t
}
