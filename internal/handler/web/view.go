package web

import (
	"encoding/json"
	"html/template"

	"StockDash/internal/domain/models"
	domrepo "StockDash/internal/domain/repository"
	xhttp "StockDash/pkg/http"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type metric struct {
	Label string
	Value string
	Delta string
	Class string
}

type historyRow struct {
	Datetime string
	Open     string
	High     string
	Low      string
	Close    string
	Volume   string
}

type indicatorRow struct {
	Datetime string
	SMA      string
	EMA      string
}

type watchRow struct {
	Symbol string
	Price  string
	Delta  string
	Class  string
	Error  string
}

type dashboardSection struct {
	Status     models.DashboardStatus
	Message    string
	Hint       string
	Warning    string
	Metrics    []metric
	ChartJSON  template.JS
	History    []historyRow
	Indicators []indicatorRow
}

// page is the data handed to index.tmpl.
type page struct {
	Symbol     string
	Periods    []option
	ChartTypes []option
	Indicators []option
	Errors     []xhttp.ValidationError
	Dashboard  *dashboardSection
	Watchlist  []watchRow
}

func newPage(req *models.DashboardRequest) *page {
	p := &page{Symbol: req.Symbol}
	for _, spec := range domrepo.PeriodCatalogue() {
		v := string(spec.Period)
		p.Periods = append(p.Periods, option{Value: v, Label: v, Selected: v == req.Period})
	}
	for _, ct := range []string{models.ChartCandlestick, models.ChartLine} {
		p.ChartTypes = append(p.ChartTypes, option{Value: ct, Label: ct, Selected: ct == req.Chart})
	}
	params := req.Params()
	for _, ind := range []string{models.IndicatorSMA20, models.IndicatorEMA20} {
		p.Indicators = append(p.Indicators, option{Value: ind, Label: ind, Selected: params.HasIndicator(ind)})
	}
	return p
}

func buildDashboardSection(v *models.DashboardView) (*dashboardSection, error) {
	d := &dashboardSection{
		Status:  v.Status,
		Message: v.Message,
		Hint:    v.Hint,
		Warning: v.Warning,
	}
	if v.Status != models.StatusOK || v.Summary == nil || v.Series == nil {
		return d, nil
	}

	s := v.Summary
	d.Metrics = []metric{
		{Label: v.Symbol + " Last Price", Value: FormatUSD(s.LastClose), Delta: FormatDelta(s.PriceChange, s.PctChange), Class: deltaClass(s.PriceChange)},
		{Label: "High", Value: FormatUSD(s.PeriodHigh)},
		{Label: "Low", Value: FormatUSD(s.PeriodLow)},
		{Label: "Volume", Value: FormatVolume(s.TotalVolume)},
	}

	if v.Chart != nil {
		b, err := json.Marshal(v.Chart)
		if err != nil {
			return nil, err
		}
		d.ChartJSON = template.JS(b)
	}

	for _, o := range v.Series.Observations {
		d.History = append(d.History, historyRow{
			Datetime: FormatTimestamp(o.Timestamp),
			Open:     FormatPrice(o.Open),
			High:     FormatPrice(o.High),
			Low:      FormatPrice(o.Low),
			Close:    FormatPrice(o.Close),
			Volume:   FormatVolume(o.Volume),
		})
	}

	if t := v.Technical; t != nil {
		for i, ts := range t.Timestamps {
			d.Indicators = append(d.Indicators, indicatorRow{
				Datetime: FormatTimestamp(ts),
				SMA:      FormatOptional(t.SMA[i]),
				EMA:      FormatOptional(t.EMA[i]),
			})
		}
	}
	return d, nil
}

func buildWatchRows(wl models.Watchlist) []watchRow {
	rows := make([]watchRow, 0, len(wl.Quotes))
	for _, q := range wl.Quotes {
		if !q.OK() {
			rows = append(rows, watchRow{Symbol: q.Symbol, Error: q.Error})
			continue
		}
		rows = append(rows, watchRow{
			Symbol: q.Symbol,
			Price:  FormatUSD(q.LastPrice),
			Delta:  FormatDelta(q.Change, q.PctChange),
			Class:  deltaClass(q.Change),
		})
	}
	return rows
}
