package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"StockDash/pkg/config"
	xhttp "StockDash/pkg/http"
	applogger "StockDash/pkg/logger"
)

// App encapsulates the application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, log *applogger.Logger, httpServer *xhttp.Server) *App {
	return &App{cfg: cfg, log: log, httpServer: httpServer}
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the HTTP server and blocks until ctx is done, then shuts
// down gracefully.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return fmt.Errorf("start http server: %w", err)
	}
	a.log.Info("stockdash started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("addr", a.httpServer.Addr()),
		applogger.String("default_symbol", a.cfg.Dashboard.DefaultSymbol),
		applogger.Strings("watchlist", a.cfg.Dashboard.Watchlist),
	)

	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-a.httpServer.Errors():
		a.log.Error("http server stopped unexpectedly", applogger.Error(err))
		_ = a.shutdown()
		return fmt.Errorf("serve http: %w", err)
	}
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return fmt.Errorf("stop http server: %w", err)
	}

	a.log.Info("shutdown complete")
	return nil
}
