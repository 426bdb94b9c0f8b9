package web

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

const (
	notAvailable    = "n/a"
	timestampLayout = "2006-01-02 15:04:05-07:00"
)

// FormatPrice renders v with two decimals, rounding half away from zero.
func FormatPrice(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatUSD renders v as "123.45 USD".
func FormatUSD(v float64) string {
	return FormatPrice(v) + " USD"
}

// FormatDelta renders "change (pct%)". An undefined pct renders as n/a.
func FormatDelta(change float64, pct null.Float) string {
	p := notAvailable
	if pct.Valid {
		p = FormatPrice(pct.Float64) + "%"
	}
	return fmt.Sprintf("%s (%s)", FormatPrice(change), p)
}

// FormatVolume renders v with thousands separators.
func FormatVolume(v int64) string {
	return humanize.Comma(v)
}

// FormatOptional renders undefined values as an empty cell.
func FormatOptional(v null.Float) string {
	if !v.Valid {
		return ""
	}
	return FormatPrice(v.Float64)
}

func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// deltaClass picks the css class of a delta.
func deltaClass(change float64) string {
	switch {
	case change > 0:
		return "up"
	case change < 0:
		return "down"
	default:
		return "flat"
	}
}
