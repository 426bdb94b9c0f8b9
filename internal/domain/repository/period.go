package repository

// Period is the lookback window offered to the user.
type Period string

// Interval is the provider sampling interval.
type Interval string

const (
	Period1D  Period = "1d"
	Period1W  Period = "1wk"
	Period1M  Period = "1mo"
	Period1Y  Period = "1y"
	PeriodMax Period = "max"
)

const (
	Interval1m  Interval = "1m"
	Interval30m Interval = "30m"
	Interval1d  Interval = "1d"
	Interval1wk Interval = "1wk"
)

// TrailingDays is the explicit window requested for the 1wk period.
const TrailingDays = 7

var periodIntervals = map[Period]Interval{
	Period1D:  Interval1m,
	Period1W:  Interval30m,
	Period1M:  Interval1d,
	Period1Y:  Interval1wk,
	PeriodMax: Interval1wk,
}

// Periods returns the supported periods in display order.
func Periods() []Period {
	return []Period{Period1D, Period1W, Period1M, Period1Y, PeriodMax}
}

// IsValidPeriod returns true if p is a supported period.
func IsValidPeriod(p Period) bool {
	_, ok := periodIntervals[p]
	return ok
}

// DefaultPeriod returns the default period.
func DefaultPeriod() Period { return Period1D }

// NormalizePeriod converts raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// IntervalFor returns the fixed sampling interval of a period.
func IntervalFor(p Period) Interval {
	if iv, ok := periodIntervals[p]; ok {
		return iv
	}
	return periodIntervals[DefaultPeriod()]
}

// UsesExplicitWindow reports whether the period is fetched as an explicit
// start/end window instead of the provider's range keyword.
func UsesExplicitWindow(p Period) bool { return p == Period1W }

// PeriodSpec pairs a period with its interval for clients.
type PeriodSpec struct {
	Period   Period   `json:"period"`
	Interval Interval `json:"interval"`
}

// PeriodCatalogue returns every period with its interval.
func PeriodCatalogue() []PeriodSpec {
	out := make([]PeriodSpec, 0, len(periodIntervals))
	for _, p := range Periods() {
		out = append(out, PeriodSpec{Period: p, Interval: periodIntervals[p]})
	}
	return out
}
