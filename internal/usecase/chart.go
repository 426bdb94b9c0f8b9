package usecase

import (
	"fmt"
	"strings"

	"StockDash/internal/domain/models"

	"github.com/guregu/null/v6"
)

const chartHeight = 600

// BuildChart lays out the main price chart and the selected overlays. An
// overlay is skipped when its series has no defined value.
func BuildChart(symbol, period, chartType string, indicators []string, series models.PriceSeries, tech models.IndicatorSeries) models.ChartSpec {
	x := series.Timestamps()
	spec := models.ChartSpec{
		Layout: models.ChartLayout{
			Title:      fmt.Sprintf("%s %s Chart", symbol, strings.ToUpper(period)),
			XAxisTitle: "Time",
			YAxisTitle: "Price (USD)",
			Height:     chartHeight,
		},
	}

	if chartType == models.ChartLine {
		spec.Traces = append(spec.Traces, models.ChartTrace{
			Type: "scatter",
			Mode: "lines",
			Name: symbol,
			X:    x,
			Y:    defined(series.Closes()),
		})
	} else {
		n := series.Len()
		t := models.ChartTrace{
			Type:  "candlestick",
			Name:  symbol,
			X:     x,
			Open:  make([]float64, n),
			High:  make([]float64, n),
			Low:   make([]float64, n),
			Close: make([]float64, n),
		}
		for i, o := range series.Observations {
			t.Open[i], t.High[i], t.Low[i], t.Close[i] = o.Open, o.High, o.Low, o.Close
		}
		spec.Traces = append(spec.Traces, t)
	}

	overlays := []struct {
		label  string
		values []null.Float
		ok     bool
	}{
		{models.IndicatorSMA20, tech.SMA, tech.HasSMA()},
		{models.IndicatorEMA20, tech.EMA, tech.HasEMA()},
	}
	selected := models.DashboardParams{Indicators: indicators}
	for _, ov := range overlays {
		if !ov.ok || !selected.HasIndicator(ov.label) {
			continue
		}
		spec.Traces = append(spec.Traces, models.ChartTrace{
			Type: "scatter",
			Mode: "lines",
			Name: ov.label,
			X:    x,
			Y:    ov.values,
		})
	}

	return spec
}

func defined(values []float64) []null.Float {
	out := make([]null.Float, len(values))
	for i, v := range values {
		out[i] = null.FloatFrom(v)
	}
	return out
}
