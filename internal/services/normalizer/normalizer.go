// Package normalizer turns provider tables into canonical price series.
package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
	_ "time/tzdata"

	"StockDash/internal/domain/models"
)

// DefaultTimezone is the display timezone (US/Eastern).
const DefaultTimezone = "America/New_York"

var (
	ErrMissingColumn   = errors.New("missing column")
	ErrAmbiguousColumn = errors.New("ambiguous column")
	ErrMalformedCell   = errors.New("malformed cell")
	ErrColumnLength    = errors.New("column length does not match index")
)

// Normalizer converts RawTables into PriceSeries in a fixed display location.
type Normalizer struct {
	loc *time.Location
}

// New returns a Normalizer for loc. A nil loc means UTC.
func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

// NewForZone loads the named IANA zone.
func NewForZone(name string) (*Normalizer, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return New(loc), nil
}

// Location returns the display location.
func (n *Normalizer) Location() *time.Location { return n.loc }

// Normalize returns a new series; raw is not modified.
//
// Rows whose open, high, low or close is missing are dropped. A missing volume
// counts as zero. Rows are sorted by time and a repeated timestamp keeps its
// last row. A zero-row table yields a zero-row series without error.
func (n *Normalizer) Normalize(raw models.RawTable) (models.PriceSeries, error) {
	out := models.PriceSeries{Symbol: raw.Symbol}
	if raw.Len() == 0 {
		return out, nil
	}

	cols := make(map[string][]any, len(models.OHLCVFields))
	for _, f := range models.OHLCVFields {
		col, err := pickColumn(raw, f)
		if err != nil {
			return out, err
		}
		if len(col) != raw.Len() {
			return out, fmt.Errorf("%s has %d cells for %d rows: %w", f, len(col), raw.Len(), ErrColumnLength)
		}
		cols[f] = col
	}

	obs := make([]models.Observation, 0, raw.Len())
	for i, ts := range raw.Index {
		var vals [4]float64
		missing := false
		for k, f := range models.OHLCVFields[:4] {
			v, ok, err := scalar(cols[f][i])
			if err != nil {
				return out, fmt.Errorf("%s row %d: %w", f, i, err)
			}
			if !ok {
				missing = true
			}
			vals[k] = v
		}
		vol, ok, err := scalar(cols[models.FieldVolume][i])
		if err != nil {
			return out, fmt.Errorf("%s row %d: %w", models.FieldVolume, i, err)
		}
		if missing {
			continue
		}
		if !ok {
			vol = 0
		}

		obs = append(obs, models.Observation{
			Timestamp: n.localize(ts, raw.Naive),
			Open:      vals[0],
			High:      vals[1],
			Low:       vals[2],
			Close:     vals[3],
			Volume:    int64(math.Round(vol)),
		})
	}

	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Timestamp.Before(obs[j].Timestamp) })
	out.Observations = dedupe(obs)
	return out, nil
}

func (n *Normalizer) localize(ts time.Time, naive bool) time.Time {
	if naive {
		ts = time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), time.UTC)
	}
	return ts.In(n.loc)
}

// pickColumn resolves field to a single column, collapsing the secondary
// ticker level when present.
func pickColumn(raw models.RawTable, field string) ([]any, error) {
	if col, ok := raw.Columns[models.ColumnKey{Field: field}]; ok {
		return col, nil
	}
	var candidates []models.ColumnKey
	for k := range raw.Columns {
		if k.Field == field {
			candidates = append(candidates, k)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%s: %w", field, ErrMissingColumn)
	case 1:
		return raw.Columns[candidates[0]], nil
	}
	if col, ok := raw.Columns[models.ColumnKey{Field: field, Ticker: raw.Symbol}]; ok {
		return col, nil
	}
	return nil, fmt.Errorf("%s has %d ticker levels: %w", field, len(candidates), ErrAmbiguousColumn)
}

func dedupe(obs []models.Observation) []models.Observation {
	if len(obs) < 2 {
		return obs
	}
	out := obs[:0:0]
	for i, o := range obs {
		if i+1 < len(obs) && obs[i+1].Timestamp.Equal(o.Timestamp) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// scalar reduces a cell to a float. ok is false for missing values (nil, NaN).
// Singleton containers are unwrapped; anything else is ErrMalformedCell.
func scalar(cell any) (v float64, ok bool, err error) {
	switch x := cell.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x), true, nil
	case int64:
		return float64(x), true, nil
	case int32:
		return float64(x), true, nil
	case json.Number:
		f, perr := x.Float64()
		if perr != nil {
			return 0, false, fmt.Errorf("%q: %w", x.String(), ErrMalformedCell)
		}
		return finite(f)
	case string:
		f, perr := strconv.ParseFloat(x, 64)
		if perr != nil {
			return 0, false, fmt.Errorf("%q: %w", x, ErrMalformedCell)
		}
		return finite(f)
	case []any:
		if len(x) != 1 {
			return 0, false, fmt.Errorf("container of %d values: %w", len(x), ErrMalformedCell)
		}
		return scalar(x[0])
	case []float64:
		if len(x) != 1 {
			return 0, false, fmt.Errorf("container of %d values: %w", len(x), ErrMalformedCell)
		}
		return finite(x[0])
	default:
		return 0, false, fmt.Errorf("type %T: %w", cell, ErrMalformedCell)
	}
}

func finite(f float64) (float64, bool, error) {
	if math.IsNaN(f) {
		return 0, false, nil
	}
	if math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("infinite value: %w", ErrMalformedCell)
	}
	return f, true, nil
}
