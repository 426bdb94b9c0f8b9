package api

import (
	"net/http"
	"time"

	"StockDash/internal/domain/models"
	domrepo "StockDash/internal/domain/repository"
	"StockDash/internal/usecase"
	xhttp "StockDash/pkg/http"
	xlogger "StockDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler serves the JSON API.
type DashboardEchoHandler struct {
	logger    *xlogger.Logger
	dashboard *usecase.DashboardUseCase
	watchlist *usecase.WatchlistUseCase
	started   time.Time
}

func NewDashboardEchoHandler(logger *xlogger.Logger, dashboard *usecase.DashboardUseCase, watchlist *usecase.WatchlistUseCase) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, dashboard: dashboard, watchlist: watchlist, started: time.Now()}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
	g.GET("/watchlist", h.Watchlist)
	g.GET("/periods", h.Periods)
	e.GET("/healthz", h.Health)
}

// Dashboard runs the update pipeline. A failed pipeline still answers with
// the view so clients can show its message.
func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	req := &models.DashboardRequest{Symbol: h.dashboard.DefaultSymbol()}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	view := h.dashboard.Update(c.Request().Context(), req.Params())
	if view.Status == models.StatusError {
		h.logger.Error("dashboard update failed",
			xlogger.String("run_id", view.RunID),
			xlogger.String("symbol", view.Symbol),
			xlogger.String("message", view.Message),
		)
		return xhttp.DataResponse(c, http.StatusBadGateway, view)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, view)
}

func (h *DashboardEchoHandler) Watchlist(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.watchlist.Refresh(c.Request().Context()))
}

func (h *DashboardEchoHandler) Periods(c echo.Context) error {
	return xhttp.SuccessResponse(c, domrepo.PeriodCatalogue())
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
