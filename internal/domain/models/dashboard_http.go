package models

import "strings"

// Requests for dashboard HTTP endpoints.

type DashboardRequest struct {
	Symbol     string   `query:"symbol" json:"symbol" default:"ADBE" validate:"required,max=20"`
	Period     string   `query:"period" json:"period" default:"1d" validate:"oneof=1d 1wk 1mo 1y max"`
	Chart      string   `query:"chart" json:"chart" default:"Candlestick" validate:"oneof=Candlestick Line"`
	Indicators []string `query:"indicators" json:"indicators" validate:"omitempty,max=2,dive,oneof='SMA 20' 'EMA 20'"`
	Update     bool     `query:"update" json:"update"`
}

// Params converts the request into pipeline parameters.
func (r *DashboardRequest) Params() DashboardParams {
	inds := make([]string, 0, len(r.Indicators))
	seen := make(map[string]bool, len(r.Indicators))
	for _, ind := range r.Indicators {
		if !seen[ind] {
			seen[ind] = true
			inds = append(inds, ind)
		}
	}
	return DashboardParams{
		Symbol:     strings.ToUpper(strings.TrimSpace(r.Symbol)),
		Period:     r.Period,
		ChartType:  r.Chart,
		Indicators: inds,
	}
}
