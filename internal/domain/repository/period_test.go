package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalFor_FixedMapping(t *testing.T) {
	cases := map[Period]Interval{
		"1d":  "1m",
		"1wk": "30m",
		"1mo": "1d",
		"1y":  "1wk",
		"max": "1wk",
	}
	for p, want := range cases {
		assert.Equal(t, want, IntervalFor(p), "period %s", p)
	}
}

func TestNormalizePeriod(t *testing.T) {
	assert.Equal(t, Period1M, NormalizePeriod("1mo"))
	assert.Equal(t, Period1D, NormalizePeriod(""))
	assert.Equal(t, Period1D, NormalizePeriod("5y"))
	assert.False(t, IsValidPeriod("2d"))
}

func TestUsesExplicitWindow(t *testing.T) {
	for _, p := range Periods() {
		assert.Equal(t, p == Period1W, UsesExplicitWindow(p), "period %s", p)
	}
}

func TestPeriodCatalogue_Order(t *testing.T) {
	cat := PeriodCatalogue()
	if assert.Len(t, cat, 5) {
		assert.Equal(t, PeriodSpec{Period: "1d", Interval: "1m"}, cat[0])
		assert.Equal(t, PeriodSpec{Period: "max", Interval: "1wk"}, cat[4])
	}
}
