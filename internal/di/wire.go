//go:build wireinject
// +build wireinject

package di

import (
	"StockDash/pkg/config"
	"StockDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Market data
		ProvideHTTPClient,
		ProvideChartProvider,
		ProvideFetcher,
		ProvideNormalizer,

		// Use cases
		ProvideDashboardUseCase,
		ProvideWatchlistUseCase,

		// Transport
		ProvideAPIHandler,
		ProvideWebHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
