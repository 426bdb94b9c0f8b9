package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"StockDash/internal/domain/models"
	domrepo "StockDash/internal/domain/repository"
	xhttp "StockDash/pkg/http"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Config configures the Yahoo chart client.
type Config struct {
	BaseURL    string
	UserAgent  string
	RatePerSec float64 // 0 disables client side limiting
	Burst      int
}

// Client fetches OHLCV tables from the Yahoo Finance v8 chart API.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	limiter *rate.Limiter
}

func NewClient(cfg Config, hc *xhttp.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0"
	}
	if hc == nil {
		hc = xhttp.NewClient()
	}

	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{cfg: cfg, http: hc, limiter: rate.NewLimiter(limit, burst)}
}

func (c *Client) Name() string { return "yahoo" }

// Chart fetches one symbol. Failures wrap domrepo.ErrSymbolNotFound,
// domrepo.ErrRateLimited or domrepo.ErrNoData where they apply.
func (c *Client) Chart(ctx context.Context, q models.ChartQuery) (models.RawTable, error) {
	empty := models.EmptyTable(q.Symbol, models.ReasonEmpty)
	if strings.TrimSpace(q.Symbol) == "" {
		return empty, fmt.Errorf("yahoo: empty symbol: %w", domrepo.ErrSymbolNotFound)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return empty, fmt.Errorf("yahoo rate wait: %w", err)
	}

	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.cfg.BaseURL + "/v8/finance/chart/" + url.PathEscape(q.Symbol),
		Headers:     map[string]string{"User-Agent": c.cfg.UserAgent, "Accept": "application/json"},
		QueryParams: queryParams(q),
	}, &resp)
	if err != nil {
		return empty, classify(q.Symbol, err)
	}

	if e := resp.Chart.Error; e != nil {
		if strings.EqualFold(e.Code, "Not Found") {
			return empty, fmt.Errorf("yahoo %s: %s: %w", q.Symbol, e.Description, domrepo.ErrSymbolNotFound)
		}
		return empty, fmt.Errorf("yahoo %s: api error %s: %s", q.Symbol, e.Code, e.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return empty, fmt.Errorf("yahoo %s: %w", q.Symbol, domrepo.ErrNoData)
	}

	return toRawTable(q.Symbol, resp.Chart.Result[0])
}

func queryParams(q models.ChartQuery) map[string][]string {
	params := map[string][]string{
		"interval":       {q.Interval},
		"includePrePost": {"false"},
	}
	if q.Range != "" {
		params["range"] = []string{q.Range}
		return params
	}
	params["period1"] = []string{strconv.FormatInt(q.Start.Unix(), 10)}
	params["period2"] = []string{strconv.FormatInt(q.End.Unix(), 10)}
	return params
}

func classify(symbol string, err error) error {
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusNotFound:
			return fmt.Errorf("yahoo %s: %w", symbol, domrepo.ErrSymbolNotFound)
		case http.StatusTooManyRequests:
			return fmt.Errorf("yahoo %s: %w", symbol, domrepo.ErrRateLimited)
		}
	}
	return fmt.Errorf("yahoo %s: %w", symbol, err)
}

func toRawTable(symbol string, r chartResult) (models.RawTable, error) {
	if len(r.Timestamp) == 0 || len(r.Indicators.Quote) == 0 {
		return models.EmptyTable(symbol, models.ReasonEmpty), fmt.Errorf("yahoo %s: %w", symbol, domrepo.ErrNoData)
	}

	quote := r.Indicators.Quote[0]
	index := make([]time.Time, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		index[i] = time.Unix(ts, 0).UTC()
	}

	return models.RawTable{
		Symbol: symbol,
		Index:  index,
		Columns: map[models.ColumnKey][]any{
			{Field: models.FieldOpen}:   quote.Open,
			{Field: models.FieldHigh}:   quote.High,
			{Field: models.FieldLow}:    quote.Low,
			{Field: models.FieldClose}:  quote.Close,
			{Field: models.FieldVolume}: quote.Volume,
		},
		Reason: models.ReasonOK,
	}, nil
}
