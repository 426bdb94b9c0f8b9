package di

import (
	"fmt"

	"StockDash/internal/domain/repository"
	"StockDash/internal/handler/api"
	"StockDash/internal/handler/web"
	"StockDash/internal/service/marketdata"
	"StockDash/internal/service/yahoo"
	"StockDash/internal/services/normalizer"
	"StockDash/internal/usecase"
	"StockDash/pkg/config"
	xhttp "StockDash/pkg/http"
	applogger "StockDash/pkg/logger"
	"StockDash/pkg/metrics"
	"StockDash/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder, or a no-op one when
// metrics are disabled.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return repository.NopMetrics{}
	}
	return metrics.New(prometheus.DefaultRegisterer, cfg.Dashboard.Watchlist...)
}

// ProvideHTTPClient creates the outbound HTTP client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.Provider.Timeout))
}

// ProvideChartProvider creates the Yahoo Finance adapter.
func ProvideChartProvider(cfg *config.Config, hc *xhttp.Client) repository.ChartProvider {
	return yahoo.NewClient(yahoo.Config{
		BaseURL:    cfg.Provider.BaseURL,
		UserAgent:  cfg.Provider.UserAgent,
		RatePerSec: cfg.Provider.RatePerSec,
		Burst:      cfg.Provider.Burst,
	}, hc)
}

func ProvideFetcher(p repository.ChartProvider, m repository.Metrics, l *applogger.Logger) repository.MarketFetcher {
	return marketdata.NewFetcher(p, m, l)
}

func ProvideNormalizer(cfg *config.Config) (repository.SeriesNormalizer, error) {
	n, err := normalizer.NewForZone(cfg.Dashboard.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("normalizer: %w", err)
	}
	return n, nil
}

func ProvideDashboardUseCase(
	f repository.MarketFetcher,
	n repository.SeriesNormalizer,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(f, n, m, l, usecase.DashboardConfig{
		DefaultSymbol:   cfg.Dashboard.DefaultSymbol,
		IndicatorWindow: cfg.Dashboard.IndicatorWindow,
		Timeout:         cfg.Dashboard.Timeout,
	})
}

func ProvideWatchlistUseCase(
	f repository.MarketFetcher,
	n repository.SeriesNormalizer,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.WatchlistUseCase {
	return usecase.NewWatchlistUseCase(f, n, m, l, usecase.WatchlistConfig{
		Symbols:     cfg.Dashboard.Watchlist,
		Concurrency: cfg.Dashboard.WatchlistConcurrency,
	})
}

func ProvideAPIHandler(l *applogger.Logger, d *usecase.DashboardUseCase, w *usecase.WatchlistUseCase) *api.DashboardEchoHandler {
	return api.NewDashboardEchoHandler(l, d, w)
}

func ProvideWebHandler(l *applogger.Logger, d *usecase.DashboardUseCase, w *usecase.WatchlistUseCase) (*web.Handler, error) {
	r, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("web renderer: %w", err)
	}
	return web.NewHandler(l, r, d, w), nil
}

// ProvideHTTPServer builds the echo server with both the JSON API and the page.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, a *api.DashboardEchoHandler, w *web.Handler) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(xhttp.Handlers{a, w},
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORSOrigins...),
		xhttp.WithLogger(l),
		xhttp.WithMetrics(metricsPath, cfg.Server.SlowRequest),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, s *xhttp.Server) *server.App {
	return server.New(cfg, l, s)
}
